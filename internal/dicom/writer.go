package dicom

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"
)

// PutString sets a string value for a tag, creating the element with the
// given value representation when the dataset does not carry it yet.
func (d *Dataset) PutString(t tag.Tag, vr, value string) error {
	newValue, err := dicom.NewValue([]string{value})
	if err != nil {
		return fmt.Errorf("could not create value for %s: %w", t, err)
	}

	newElem := &dicom.Element{
		Tag:                    t,
		ValueRepresentation:    tag.GetVRKind(t, vr),
		RawValueRepresentation: vr,
		ValueLength:            uint32(len(value)),
		Value:                  newValue,
	}

	// Replace element in dataset
	for i, e := range d.Data.Elements {
		if e.Tag == t {
			d.Data.Elements[i] = newElem
			return nil
		}
	}

	// Keep ascending tag order so the written file stays well-formed
	idx := len(d.Data.Elements)
	for i, e := range d.Data.Elements {
		if tagLess(t, e.Tag) {
			idx = i
			break
		}
	}
	d.Data.Elements = append(d.Data.Elements, nil)
	copy(d.Data.Elements[idx+1:], d.Data.Elements[idx:])
	d.Data.Elements[idx] = newElem

	return nil
}

// Remove deletes a top-level element. It reports whether the tag was present.
func (d *Dataset) Remove(t tag.Tag) bool {
	kept := d.Data.Elements[:0]
	removed := false
	for _, e := range d.Data.Elements {
		if e.Tag == t {
			removed = true
			continue
		}
		kept = append(kept, e)
	}
	d.Data.Elements = kept
	return removed
}

// Save writes the DICOM dataset to a file. The dataset is written to a
// temporary file next to outputPath and renamed into place, so a failed
// write never leaves a partial file behind.
func (d *Dataset) Save(outputPath string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("could not create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".deident-*.tmp")
	if err != nil {
		return fmt.Errorf("could not create output file: %w", err)
	}
	tmpPath := tmp.Name()

	// Write DICOM with relaxed verification (many real-world DICOM files
	// don't strictly follow VR specifications)
	if err := dicom.Write(tmp, d.Data,
		dicom.SkipVRVerification(),
		dicom.SkipValueTypeVerification(),
		dicom.DefaultMissingTransferSyntax(),
	); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("could not write DICOM: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("could not close output file: %w", err)
	}

	if err := os.Rename(tmpPath, outputPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("could not move output file into place: %w", err)
	}

	return nil
}

func tagLess(a, b tag.Tag) bool {
	if a.Group != b.Group {
		return a.Group < b.Group
	}
	return a.Element < b.Element
}
