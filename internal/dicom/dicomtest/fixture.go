// Package dicomtest writes small synthetic DICOM files for tests.
package dicomtest

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"
)

// Secondary Capture Image Storage, Explicit VR Little Endian
const (
	SOPClassUID       = "1.2.840.10008.5.1.4.1.1.7"
	TransferSyntaxUID = "1.2.840.10008.1.2.1"
)

// Attrs maps tags to single text values.
type Attrs map[tag.Tag]string

// Study returns a fully populated attribute set for a CT instance.
func Study() Attrs {
	return Attrs{
		tag.ImageType:                   `ORIGINAL\PRIMARY\AXIAL`,
		tag.StudyDate:                   "20230615",
		tag.SeriesDate:                  "20230615",
		tag.StudyTime:                   "143000",
		tag.Modality:                    "CT",
		tag.StationName:                 "CT-SCANNER-3",
		tag.InstitutionName:             "General Hospital",
		tag.ReferringPhysicianName:      "House^Gregory",
		tag.AccessionNumber:             "ACC0001",
		tag.PatientName:                 "Doe^John",
		tag.PatientID:                   "MRN-42",
		tag.PatientBirthDate:            "19800512",
		tag.PatientComments:             "allergic to penicillin",
		tag.DeviceSerialNumber:          "123456",
		tag.StudyInstanceUID:            "1.2.840.10008.5.1",
		tag.SeriesInstanceUID:           "1.2.840.10008.5.1.2",
		tag.StudyID:                     "S1",
		tag.InstanceNumber:              "7",
		tag.OperatorsName:               "Tech^Terry",
		tag.InstitutionalDepartmentName: "Radiology",
	}
}

// With returns a copy of a with the given overrides applied. An empty value
// drops the tag.
func (a Attrs) With(overrides Attrs) Attrs {
	out := make(Attrs, len(a)+len(overrides))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range overrides {
		if v == "" {
			delete(out, k)
			continue
		}
		out[k] = v
	}
	return out
}

// WriteFile writes attrs as a DICOM Part 10 file at path.
func WriteFile(t testing.TB, path string, attrs Attrs) {
	t.Helper()

	elems := []*dicom.Element{
		newElement(t, tag.MediaStorageSOPClassUID, SOPClassUID),
		newElement(t, tag.MediaStorageSOPInstanceUID, "1.2.3.4.5."+filepath.Base(path)),
		newElement(t, tag.TransferSyntaxUID, TransferSyntaxUID),
	}
	for tg, v := range attrs {
		elems = append(elems, newElement(t, tg, v))
	}
	sort.Slice(elems, func(i, j int) bool {
		a, b := elems[i].Tag, elems[j].Tag
		if a.Group != b.Group {
			return a.Group < b.Group
		}
		return a.Element < b.Element
	})

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("could not create fixture dir: %v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("could not create fixture: %v", err)
	}
	defer f.Close()

	if err := dicom.Write(f, dicom.Dataset{Elements: elems},
		dicom.SkipVRVerification(),
		dicom.SkipValueTypeVerification(),
	); err != nil {
		t.Fatalf("could not write fixture: %v", err)
	}
}

func newElement(t testing.TB, tg tag.Tag, value string) *dicom.Element {
	t.Helper()
	elem, err := dicom.NewElement(tg, []string{value})
	if err != nil {
		t.Fatalf("could not build element %s: %v", tg, err)
	}
	return elem
}
