package dicom

import (
	"fmt"
	"os"
	"strings"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"
)

// Dataset wraps a DICOM dataset for easier access
type Dataset struct {
	Data     dicom.Dataset
	FilePath string
}

// ReadDicom reads a DICOM file and returns the dataset.
func ReadDicom(path string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("could not stat file: %w", err)
	}

	ds, err := dicom.Parse(file, info.Size(), nil)
	if err != nil {
		return nil, fmt.Errorf("could not parse DICOM: %w", err)
	}

	return &Dataset{
		Data:     ds,
		FilePath: path,
	}, nil
}

// ReadText returns the text form of a tag value. Multi-valued elements are
// joined with the DICOM value delimiter `\`. The second return value is false
// when the tag is absent or carries no value; a missing tag is never an error.
func (d *Dataset) ReadText(t tag.Tag) (string, bool) {
	elem, err := d.Data.FindElementByTag(t)
	if err != nil || elem.Value == nil {
		return "", false
	}

	raw := elem.Value.GetValue()
	if raw == nil {
		return "", false
	}

	var text string
	switch v := raw.(type) {
	case []string:
		parts := make([]string, len(v))
		for i, s := range v {
			parts[i] = strings.Trim(s, " \x00")
		}
		text = strings.Join(parts, `\`)
	case string:
		text = strings.Trim(v, " \x00")
	case []byte:
		text = strings.Trim(string(v), " \x00")
	default:
		text = fmt.Sprintf("%v", raw)
	}

	return text, text != ""
}

// GetString returns a string value for a tag, or empty string if not found.
func (d *Dataset) GetString(t tag.Tag) string {
	s, _ := d.ReadText(t)
	return s
}

// Has reports whether a top-level element with the given tag exists.
func (d *Dataset) Has(t tag.Tag) bool {
	_, err := d.Data.FindElementByTag(t)
	return err == nil
}
