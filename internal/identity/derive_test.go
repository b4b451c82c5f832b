package identity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAttributes() Attributes {
	return Attributes{
		SerialNumber:      "123456",
		StudyDate:         "20230615",
		StudyTime:         "143000",
		StudyInstanceUID:  "1.2.840.10008.5.1",
		BirthDate:         "19800512",
		SeriesInstanceUID: "1.2.840.10008.5.1.2",
	}
}

func TestPatientID(t *testing.T) {
	// "123456" + "230615" + "1430" = 1234562306151430
	pid, err := PatientID("123456", "20230615", "143000")
	require.NoError(t, err)
	assert.Equal(t, "462D3EFB61406", pid)

	pid, err = PatientID("987654", "19991231", "081500.123")
	require.NoError(t, err)
	assert.Equal(t, "2316AB7921341F", pid)
}

func TestPatientIDLongSerialDoesNotOverflow(t *testing.T) {
	pid, err := PatientID("99999999999999999999", "20230615", "1430")
	require.NoError(t, err)
	assert.NotEmpty(t, pid)
}

func TestPatientIDParseErrors(t *testing.T) {
	cases := map[string][3]string{
		"short date":  {"123", "2023", "143000"},
		"short time":  {"123", "20230615", "14"},
		"alpha date":  {"123", "2023-6-15", "143000"},
		"alpha time":  {"123", "20230615", "14:30"},
		"empty input": {"", "", ""},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := PatientID(c[0], c[1], c[2])
			assert.ErrorIs(t, err, ErrParse)
		})
	}
}

func TestCoarsenDate(t *testing.T) {
	d, err := CoarsenDate("20230615")
	require.NoError(t, err)
	assert.Equal(t, "20230101", d)

	d, err = CoarsenDate("19800512")
	require.NoError(t, err)
	assert.Equal(t, "19800101", d)

	_, err = CoarsenDate("")
	assert.ErrorIs(t, err, ErrParse)
	_, err = CoarsenDate("19x0")
	assert.ErrorIs(t, err, ErrParse)
}

func TestStudyID(t *testing.T) {
	// 1+2+840+10008+5+1 = 10857
	id, err := StudyID("1.2.840.10008.5.1")
	require.NoError(t, err)
	assert.Equal(t, "2A69", id)

	for _, uid := range []string{"", "1..2", "1.2.x", "1.2."} {
		_, err := StudyID(uid)
		assert.ErrorIs(t, err, ErrEvaluation, uid)
	}
}

func TestSeriesID(t *testing.T) {
	// 10859 has no trailing zero
	assert.Equal(t, "2A6B", SeriesID("1.2.840.10008.5.1.2"))
	assert.Equal(t, "2E", SeriesID("1.2.3.40"))
	// trailing zeros are stripped: 10 -> 1, 700 -> 7
	assert.Equal(t, "1", SeriesID("4.6"))
	assert.Equal(t, "7", SeriesID("500.200"))
	assert.Equal(t, "0", SeriesID("0.0"))
}

func TestSeriesIDIsExactAbove53Bits(t *testing.T) {
	// 2^53 + 1 is not representable as a float64
	assert.Equal(t, "20000000000001", SeriesID("9007199254740993"))
	assert.Equal(t, "20000000000001", SeriesID("9007199254740992.1"))
}

func TestSeriesIDFallback(t *testing.T) {
	assert.Equal(t, "462D53C9BAF07", SeriesID("not-a-uid"))
	assert.Equal(t, "462D53C9BAF07", SeriesID(""))
}

func TestValidateSerialNumber(t *testing.T) {
	require.NoError(t, ValidateSerialNumber("0042"))

	for _, s := range []string{"", "AB12", "12 34", "12.3", "-12"} {
		err := ValidateSerialNumber(s)
		assert.ErrorIs(t, err, ErrValidation, s)
	}
}

func TestDerive(t *testing.T) {
	ids, err := Derive(sampleAttributes(), "station-1", true)
	require.NoError(t, err)
	assert.Equal(t, Identifiers{
		PatientID:   "462D3EFB61406",
		StudyID:     "2A69",
		SeriesID:    "2A6B",
		StudyDate:   "20230101",
		BirthDate:   "19800101",
		StationName: "station-1",
	}, ids)

	flat, err := Derive(sampleAttributes(), "station-1", false)
	require.NoError(t, err)
	assert.Empty(t, flat.SeriesID)
}

func TestDeriveIsDeterministic(t *testing.T) {
	first, err := Derive(sampleAttributes(), "h", true)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Derive(sampleAttributes(), "h", true)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestDeriveFailures(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Attributes)
		want   error
	}{
		{"non numeric serial", func(a *Attributes) { a.SerialNumber = "AB12" }, ErrValidation},
		{"absent serial", func(a *Attributes) { a.SerialNumber = "" }, ErrValidation},
		{"short study date", func(a *Attributes) { a.StudyDate = "2023" }, ErrParse},
		{"absent birth date", func(a *Attributes) { a.BirthDate = "" }, ErrParse},
		{"bad study uid", func(a *Attributes) { a.StudyInstanceUID = "1.2.abc" }, ErrEvaluation},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			attrs := sampleAttributes()
			c.mutate(&attrs)
			_, err := Derive(attrs, "h", true)
			require.Error(t, err)
			assert.True(t, errors.Is(err, c.want), "got %v", err)
		})
	}
}

func TestDeriveSeriesFallbackDoesNotFail(t *testing.T) {
	attrs := sampleAttributes()
	attrs.SeriesInstanceUID = "garbage"
	ids, err := Derive(attrs, "h", true)
	require.NoError(t, err)
	assert.Equal(t, "462D53C9BAF07", ids.SeriesID)
}
