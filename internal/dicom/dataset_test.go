package dicom_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suyashkumar/dicom/pkg/tag"

	dcm "dicom-deident/internal/dicom"
	"dicom-deident/internal/dicom/dicomtest"
)

func TestReadText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.dcm")
	dicomtest.WriteFile(t, path, dicomtest.Study())

	ds, err := dcm.ReadDicom(path)
	require.NoError(t, err)

	v, ok := ds.ReadText(tag.DeviceSerialNumber)
	assert.True(t, ok)
	assert.Equal(t, "123456", v)

	// multi-valued elements come back joined with the value delimiter
	v, ok = ds.ReadText(tag.ImageType)
	assert.True(t, ok)
	assert.Equal(t, `ORIGINAL\PRIMARY\AXIAL`, v)

	v, ok = ds.ReadText(tag.ContentSequence)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestPutRemoveSave(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.dcm")
	dicomtest.WriteFile(t, in, dicomtest.Study().With(dicomtest.Attrs{tag.StationName: ""}))

	ds, err := dcm.ReadDicom(in)
	require.NoError(t, err)

	require.NoError(t, ds.PutString(tag.PatientID, "LO", "ABC"))
	require.NoError(t, ds.PutString(tag.StationName, "SH", "host-1"))
	assert.True(t, ds.Remove(tag.InstitutionName))
	assert.False(t, ds.Remove(tag.InstitutionName))

	out := filepath.Join(dir, "nested", "out.dcm")
	require.NoError(t, ds.Save(out))

	back, err := dcm.ReadDicom(out)
	require.NoError(t, err)
	assert.Equal(t, "ABC", back.GetString(tag.PatientID))
	assert.Equal(t, "host-1", back.GetString(tag.StationName))
	assert.False(t, back.Has(tag.InstitutionName))

	// no temp files left behind
	entries, err := os.ReadDir(filepath.Dir(out))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestPutStringKeepsTagOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.dcm")
	dicomtest.WriteFile(t, path, dicomtest.Attrs{tag.Modality: "CT", tag.InstanceNumber: "1"})

	ds, err := dcm.ReadDicom(path)
	require.NoError(t, err)
	require.NoError(t, ds.PutString(tag.PatientName, "PN", "X"))

	for i := 1; i < len(ds.Data.Elements); i++ {
		prev, cur := ds.Data.Elements[i-1].Tag, ds.Data.Elements[i].Tag
		assert.True(t, prev.Group < cur.Group || (prev.Group == cur.Group && prev.Element < cur.Element),
			"%s before %s", prev, cur)
	}
}

func TestExpandInputs(t *testing.T) {
	root := t.TempDir()
	dicomtest.WriteFile(t, filepath.Join(root, "a.dcm"), dicomtest.Study())
	dicomtest.WriteFile(t, filepath.Join(root, "sub", "noext"), dicomtest.Study())
	dicomtest.WriteFile(t, filepath.Join(root, "out", "skip.dcm"), dicomtest.Study())
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("hello"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "DICOMDIR"), []byte("x"), 0644))

	files, err := dcm.ExpandInputs([]string{root}, true, filepath.Join(root, "out"))
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.dcm"),
		filepath.Join(root, "sub", "noext"),
	}, files)

	files, err = dcm.ExpandInputs([]string{root, filepath.Join(root, "a.dcm")}, false, "")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "a.dcm")}, files)
}
