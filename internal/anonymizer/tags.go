package anonymizer

import (
	"github.com/suyashkumar/dicom/pkg/tag"

	"dicom-deident/internal/identity"
)

// Replacement is one entry of a replacement plan: the tag to write, its value
// representation and the new value.
type Replacement struct {
	Tag   tag.Tag
	VR    string
	Value string
}

type replacementRule struct {
	tag   tag.Tag
	vr    string
	value func(identity.Identifiers) string
}

func stationName(ids identity.Identifiers) string { return ids.StationName }
func studyDate(ids identity.Identifiers) string   { return ids.StudyDate }
func studyID(ids identity.Identifiers) string     { return ids.StudyID }
func patientID(ids identity.Identifiers) string   { return ids.PatientID }
func birthDate(ids identity.Identifiers) string   { return ids.BirthDate }

// replacementRules are the tags overwritten (or created) in every file, in
// write order.
var replacementRules = []replacementRule{
	{tag.StationName, "SH", stationName},
	{tag.InstanceCreationDate, "DA", studyDate},
	{tag.StudyDate, "DA", studyDate},
	{tag.SeriesDate, "DA", studyDate},
	{tag.AcquisitionDate, "DA", studyDate},
	{tag.ContentDate, "DA", studyDate},
	{tag.AccessionNumber, "SH", studyID},
	{tag.PatientName, "PN", patientID},
	{tag.PatientID, "LO", patientID},
	{tag.PatientBirthDate, "DA", birthDate},
	{tag.StudyID, "SH", studyID},
}

// RemovedTags are stripped from every file after the replacements are written.
var RemovedTags = []tag.Tag{
	// Institution
	tag.InstitutionName,
	tag.InstitutionAddress,
	tag.InstitutionalDepartmentName,

	// Physicians and staff
	tag.ReferringPhysicianName,
	tag.ReferringPhysicianAddress,
	tag.ReferringPhysicianTelephoneNumbers,
	tag.PhysiciansOfRecord,
	tag.PhysiciansOfRecordIdentificationSequence,
	tag.PerformingPhysicianName,
	tag.NameOfPhysiciansReadingStudy,
	tag.OperatorsName,
	tag.RequestingPhysician,
	tag.ScheduledPerformingPhysicianName,

	// Patient
	tag.AdmittingDiagnosesDescription,
	tag.OtherPatientIDs,
	tag.OtherPatientNames,
	tag.MedicalRecordLocator,
	tag.EthnicGroup,
	tag.Occupation,
	tag.AdditionalPatientHistory,
	tag.PatientComments,

	// Request and workflow
	tag.RequestingService,
	tag.RequestedProcedureDescription,
	tag.PerformedStationAETitle,
	tag.RequestAttributesSequence,
	tag.RequestedProcedureID,
	tag.IssueDateOfImagingServiceRequest,
	tag.ContentSequence,
}

// ReplacedTags lists the tags written by every replacement plan.
func ReplacedTags() []tag.Tag {
	out := make([]tag.Tag, len(replacementRules))
	for i, r := range replacementRules {
		out[i] = r.tag
	}
	return out
}

// BuildPlan fills the fixed replacement rules with derived identifiers.
func BuildPlan(ids identity.Identifiers) []Replacement {
	plan := make([]Replacement, len(replacementRules))
	for i, r := range replacementRules {
		plan[i] = Replacement{Tag: r.tag, VR: r.vr, Value: r.value(ids)}
	}
	return plan
}
