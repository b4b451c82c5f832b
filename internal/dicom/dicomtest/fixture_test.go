package dicomtest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"
)

func TestWriteFileParses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "study.dcm")
	WriteFile(t, path, Study().With(Attrs{tag.PatientComments: ""}))

	ds, err := dicom.ParseFile(path, nil)
	require.NoError(t, err)

	for _, tg := range []tag.Tag{tag.TransferSyntaxUID, tag.MediaStorageSOPInstanceUID, tag.DeviceSerialNumber} {
		_, err := ds.FindElementByTag(tg)
		assert.NoError(t, err, tg.String())
	}

	_, err = ds.FindElementByTag(tag.PatientComments)
	assert.Error(t, err)
}
