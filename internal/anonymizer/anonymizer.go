package anonymizer

import (
	"fmt"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/suyashkumar/dicom/pkg/tag"

	dcm "dicom-deident/internal/dicom"
	"dicom-deident/internal/identity"
)

// SkipRecorder receives every file that could not be anonymized.
type SkipRecorder interface {
	Log(filePath, reason string)
}

// Config holds the anonymization configuration
type Config struct {
	Workers     int    // batch worker pool size, defaults to runtime.NumCPU()
	Extension   string // naming-convention file extension, defaults to "dcm"
	StationName string // replacement StationName, defaults to the host name
	Hostname    func() (string, error)
	Logger      *zerolog.Logger
	Skips       SkipRecorder
}

// Anonymizer rewrites DICOM files with derived pseudonymous identifiers.
// It holds no per-file state and is safe for concurrent use.
type Anonymizer struct {
	workers   int
	extension string
	station   string
	log       zerolog.Logger
	skips     SkipRecorder
}

// rawAttributes are all values read from a file before anything is modified.
type rawAttributes struct {
	identity.Attributes
	Modality       string
	InstanceNumber string
	ImageType      string
}

// New creates an Anonymizer. The host name is resolved once here when no
// StationName is configured.
func New(cfg Config) (*Anonymizer, error) {
	a := &Anonymizer{
		workers:   cfg.Workers,
		extension: cfg.Extension,
		station:   cfg.StationName,
		log:       zerolog.Nop(),
		skips:     cfg.Skips,
	}
	if cfg.Logger != nil {
		a.log = *cfg.Logger
	}
	if a.workers <= 0 {
		a.workers = runtime.NumCPU()
	}
	if a.extension == "" {
		a.extension = DefaultExtension
	}

	if a.station == "" {
		hostname := cfg.Hostname
		if hostname == nil {
			hostname = os.Hostname
		}
		name, err := hostname()
		if err != nil {
			return nil, fmt.Errorf("could not resolve station name: %w", err)
		}
		a.station = name
	}

	return a, nil
}

// StationName returns the value written to StationName in every file.
func (a *Anonymizer) StationName() string {
	return a.station
}

// AnonymizeFile anonymizes one file. In naming-convention mode outputPath is
// the destination base directory; otherwise it is the output file path.
// It reports whether the file was written; the error explains why not.
func (a *Anonymizer) AnonymizeFile(inputPath, outputPath string, useNamingConvention bool) (bool, error) {
	written, err := a.anonymize(inputPath, outputPath, useNamingConvention)
	if err != nil {
		a.log.Warn().Str("file", inputPath).Err(err).Msg("file not anonymized")
		if a.skips != nil {
			a.skips.Log(inputPath, err.Error())
		}
		return false, err
	}

	a.log.Debug().Str("file", inputPath).Str("output", written).Msg("file anonymized")
	return true, nil
}

func (a *Anonymizer) anonymize(inputPath, outputPath string, naming bool) (string, error) {
	ds, err := dcm.ReadDicom(inputPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", identity.ErrIO, err)
	}

	raw := readAttributes(ds)

	ids, err := identity.Derive(raw.Attributes, a.station, naming)
	if err != nil {
		return "", err
	}

	var fileName string
	if naming {
		instance, err := FormatInstanceNumber(raw.InstanceNumber)
		if err != nil {
			return "", err
		}
		fileName = FileName(raw.Modality, ImageTypeComponent(raw.ImageType), instance, a.extension)
	}

	if err := Apply(ds, BuildPlan(ids)); err != nil {
		return "", err
	}

	target := outputPath
	if naming {
		target, err = BuildPath(outputPath, ids, fileName)
		if err != nil {
			return "", err
		}
	}

	if err := ds.Save(target); err != nil {
		return "", fmt.Errorf("%w: %v", identity.ErrIO, err)
	}

	return target, nil
}

// readAttributes reads every value the derivation and naming steps need.
func readAttributes(store TagStore) rawAttributes {
	text := func(t tag.Tag) string {
		s, _ := store.ReadText(t)
		return s
	}

	return rawAttributes{
		Attributes: identity.Attributes{
			SerialNumber:      text(tag.DeviceSerialNumber),
			StudyDate:         text(tag.StudyDate),
			StudyTime:         text(tag.StudyTime),
			StudyInstanceUID:  text(tag.StudyInstanceUID),
			BirthDate:         text(tag.PatientBirthDate),
			SeriesInstanceUID: text(tag.SeriesInstanceUID),
		},
		Modality:       text(tag.Modality),
		InstanceNumber: text(tag.InstanceNumber),
		ImageType:      text(tag.ImageType),
	}
}
