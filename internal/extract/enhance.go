package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sungmin-oh/claimform-extractor/constants"
)

var (
	reMoney      = regexp.MustCompile(`[0-9,.]+`)
	rePhoneChars = regexp.MustCompile(`[0-9\s()-]+`)
	reNonPhone   = regexp.MustCompile(`[^0-9-]`)
	reCapsToken  = regexp.MustCompile(`\b[A-Z]{1,2}\b`)
	reWordCaps   = regexp.MustCompile(`\b[A-Z]{1,2}\s`)
	reDigits     = regexp.MustCompile(`\d+`)
	reDateShape  = regexp.MustCompile(`\d{4}[\s\-/]?\d{1,2}[\s\-/]?\d{1,2}|\d{1,2}[\s\-/]\d{1,2}[\s\-/]\d{4}`)
	reSpaces     = regexp.MustCompile(`\s+`)
)

// departmentTerms maps Korean medical department names to their English
// gloss, appended in parentheses so bilingual reviewers can read either.
var departmentTerms = []struct {
	korean  string
	english string
}{
	{"정형외과", "Orthopedics"},
	{"내과", "Internal Medicine"},
	{"외과", "Surgery"},
	{"소아과", "Pediatrics"},
	{"산부인과", "Obstetrics and Gynecology"},
	{"이비인후과", "ENT"},
	{"피부과", "Dermatology"},
	{"안과", "Ophthalmology"},
	{"치과", "Dentistry"},
	{"신경과", "Neurology"},
	{"정신과", "Psychiatry"},
	{"가정의학과", "Family Medicine"},
	{"응급의학과", "Emergency Medicine"},
}

// Enhance applies the field-specific cleanup transform to a raw captured
// value. Every branch is total: when a narrowing finds nothing stricter,
// the trimmed raw value is returned rather than discarded.
func Enhance(name constants.FieldName, raw string) string {
	value := strings.TrimSpace(raw)

	switch name {
	case constants.TotalCost, constants.PatientPayment, constants.InsuranceClaim:
		// Keep the leading numeric run, strip thousands separators.
		if num := reMoney.FindString(value); num != "" {
			return strings.ReplaceAll(num, ",", "")
		}
		return value

	case constants.Phone:
		if ph := rePhoneChars.FindString(value); ph != "" {
			return reNonPhone.ReplaceAllString(ph, "")
		}
		return value

	case constants.PatientName, constants.DoctorName:
		s := reCapsToken.ReplaceAllString(value, "")
		s = reDigits.ReplaceAllString(s, "")
		return strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))

	case constants.HospitalName:
		s := reWordCaps.ReplaceAllString(value, "")
		return strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))

	case constants.TreatmentDate:
		if d := reDateShape.FindString(value); d != "" {
			return d
		}
		return value

	case constants.Department:
		for _, term := range departmentTerms {
			if strings.Contains(value, term.korean) {
				return fmt.Sprintf("%s (%s)", term.korean, term.english)
			}
		}
		return value

	default:
		return value
	}
}
