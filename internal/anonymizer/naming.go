package anonymizer

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"dicom-deident/internal/identity"
)

// DefaultImageType is used when ImageType has fewer than three components.
const DefaultImageType = "UNK"

// DefaultExtension is the file extension of naming-convention outputs.
const DefaultExtension = "dcm"

// ImageTypeComponent returns the third `/`-separated component of an
// ImageType value. A value read from a standard multi-valued element is
// `\`-delimited and therefore yields DefaultImageType.
func ImageTypeComponent(raw string) string {
	parts := strings.Split(raw, "/")
	if len(parts) > 2 {
		return parts[2]
	}
	return DefaultImageType
}

// FormatInstanceNumber zero-pads an InstanceNumber to five digits. A single
// leading `+` is accepted.
func FormatInstanceNumber(raw string) (string, error) {
	n, err := strconv.ParseUint(strings.TrimPrefix(strings.TrimSpace(raw), "+"), 10, 32)
	if err != nil {
		return "", fmt.Errorf("%w: InstanceNumber <%s> is not a non-negative integer", identity.ErrParse, raw)
	}
	return fmt.Sprintf("%05d", n), nil
}

// FileName builds `<modality>_<imageType>_<instance>.<ext>`.
func FileName(modality, imageType, instance, ext string) string {
	return fmt.Sprintf("%s_%s_%s.%s", pathSafe(modality), pathSafe(imageType), instance, ext)
}

// BuildPath creates base/PatientID/StudyID/SeriesID and returns the full
// output file path inside it. Creating an existing or concurrently created
// directory chain is not an error.
func BuildPath(base string, ids identity.Identifiers, fileName string) (string, error) {
	dir := filepath.Join(base, ids.PatientID, ids.StudyID, ids.SeriesID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("%w: could not create directory %s: %v", identity.ErrIO, dir, err)
	}
	return filepath.Join(dir, fileName), nil
}

func pathSafe(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == os.PathSeparator {
			return '-'
		}
		return r
	}, s)
}
