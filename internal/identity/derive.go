package identity

import (
	"fmt"
	"math/big"
	"strings"
)

// SeriesFallback replaces the series sum when a SeriesInstanceUID cannot be
// evaluated. Every such series of a study lands in the same directory.
const SeriesFallback int64 = 1234567891234567

// Attributes are the raw identifying values read once from a file. Absent
// tags are empty strings.
type Attributes struct {
	SerialNumber      string
	StudyDate         string
	StudyTime         string
	StudyInstanceUID  string
	BirthDate         string
	SeriesInstanceUID string
}

// Identifiers are the pseudonymous replacements derived from Attributes.
// The same Attributes always yield the same Identifiers.
type Identifiers struct {
	PatientID   string
	StudyID     string
	SeriesID    string // only set in naming-convention mode
	StudyDate   string
	BirthDate   string
	StationName string
}

// Derive computes the Identifiers for one file. The station name is passed
// through untouched. SeriesID is only computed when withSeries is set.
func Derive(attrs Attributes, station string, withSeries bool) (Identifiers, error) {
	if err := ValidateSerialNumber(attrs.SerialNumber); err != nil {
		return Identifiers{}, err
	}

	pid, err := PatientID(attrs.SerialNumber, attrs.StudyDate, attrs.StudyTime)
	if err != nil {
		return Identifiers{}, err
	}

	studyDate, err := CoarsenDate(attrs.StudyDate)
	if err != nil {
		return Identifiers{}, fmt.Errorf("StudyDate: %w", err)
	}

	birthDate, err := CoarsenDate(attrs.BirthDate)
	if err != nil {
		return Identifiers{}, fmt.Errorf("PatientBirthDate: %w", err)
	}

	studyID, err := StudyID(attrs.StudyInstanceUID)
	if err != nil {
		return Identifiers{}, err
	}

	ids := Identifiers{
		PatientID:   pid,
		StudyID:     studyID,
		StudyDate:   studyDate,
		BirthDate:   birthDate,
		StationName: station,
	}
	if withSeries {
		ids.SeriesID = SeriesID(attrs.SeriesInstanceUID)
	}

	return ids, nil
}

// PatientID concatenates the serial number, StudyDate[2:8] and StudyTime[0:4],
// reads the result as a base-10 integer and returns it in uppercase hex.
func PatientID(serial, studyDate, studyTime string) (string, error) {
	if len(studyDate) < 8 {
		return "", fmt.Errorf("%w: StudyDate <%s> is shorter than 8 characters", ErrParse, studyDate)
	}
	if len(studyTime) < 4 {
		return "", fmt.Errorf("%w: StudyTime <%s> is shorter than 4 characters", ErrParse, studyTime)
	}

	digits := serial + studyDate[2:8] + studyTime[0:4]
	if !isDigits(digits) {
		return "", fmt.Errorf("%w: <%s> is not a base-10 integer", ErrParse, digits)
	}

	n, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return "", fmt.Errorf("%w: <%s> is not a base-10 integer", ErrParse, digits)
	}

	return hexUpper(n), nil
}

// CoarsenDate keeps the year of a DICOM date and resets month and day to
// January 1st.
func CoarsenDate(date string) (string, error) {
	if len(date) < 4 || !isDigits(date[:4]) {
		return "", fmt.Errorf("%w: date <%s> has no year", ErrParse, date)
	}
	return date[:4] + "0101", nil
}

// StudyID sums the numeric components of a StudyInstanceUID and returns the
// sum in uppercase hex. There is no fallback: a UID that cannot be summed
// fails the file.
func StudyID(uid string) (string, error) {
	sum, err := SumUID(uid)
	if err != nil {
		return "", fmt.Errorf("%w: StudyInstanceUID <%s>: %v", ErrEvaluation, uid, err)
	}
	return hexUpper(sum), nil
}

// SeriesID sums the numeric components of a SeriesInstanceUID, falling back
// to SeriesFallback when that is impossible, strips trailing decimal zeros
// and returns the result in uppercase hex.
func SeriesID(uid string) string {
	sum, err := SumUID(uid)
	if err != nil {
		sum = big.NewInt(SeriesFallback)
	}
	return hexUpper(stripTrailingZeros(sum))
}

// SumUID evaluates a dotted UID as the sum of its components.
func SumUID(uid string) (*big.Int, error) {
	if strings.TrimSpace(uid) == "" {
		return nil, fmt.Errorf("empty UID")
	}

	sum := new(big.Int)
	for _, part := range strings.Split(uid, ".") {
		part = strings.TrimSpace(part)
		if part == "" || !isDigits(part) {
			return nil, fmt.Errorf("invalid component <%s>", part)
		}
		n, ok := new(big.Int).SetString(part, 10)
		if !ok {
			return nil, fmt.Errorf("invalid component <%s>", part)
		}
		sum.Add(sum, n)
	}

	return sum, nil
}

// stripTrailingZeros divides by ten while the value is a non-zero multiple of ten.
func stripTrailingZeros(n *big.Int) *big.Int {
	ten := big.NewInt(10)
	out := new(big.Int).Set(n)
	q, r := new(big.Int), new(big.Int)
	for out.Sign() != 0 {
		q.QuoRem(out, ten, r)
		if r.Sign() != 0 {
			break
		}
		out.Set(q)
	}
	return out
}

func hexUpper(n *big.Int) string {
	return strings.ToUpper(n.Text(16))
}
