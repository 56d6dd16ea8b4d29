package extract

import (
	"strings"

	"github.com/sungmin-oh/claimform-extractor/constants"
)

// FieldCoverage counts present fields per validation tier.
type FieldCoverage struct {
	Required  int `json:"required"`
	Important int `json:"important"`
	Optional  int `json:"optional"`
	Total     int `json:"total"`
}

// ValidationResult is an independent quality judgement over one
// ExtractionResult, recomputed fresh on every call and never cached.
type ValidationResult struct {
	IsValid       bool          `json:"isValid"`
	Score         int           `json:"score"`
	Issues        []string      `json:"issues"`
	Suggestions   []string      `json:"suggestions"`
	FieldCoverage FieldCoverage `json:"fieldCoverage"`
}

// Validate scores an extraction result on field coverage, accuracy, and
// language signal. It never fails: a nil or unsuccessful result
// short-circuits to isValid=false, score=0 with a fixed issue/suggestion
// pair. A high score can never compensate for a missing required field.
func Validate(res *ExtractionResult) *ValidationResult {
	if res == nil || !res.Success || res.Data == nil {
		return &ValidationResult{
			IsValid: false,
			Score:   0,
			Issues:  []string{"Extraction failed or returned no result"},
			Suggestions: []string{
				"Try re-uploading the document",
				"Ensure the document is a Korean medical insurance form",
			},
		}
	}

	data := res.Data
	accuracy := res.Accuracy
	score := 0
	issues := make([]string, 0, 4)
	suggestions := make([]string, 0, 4)

	// Required fields: all-or-nothing 40 points.
	missingRequired := missingOf(data, constants.RequiredFields)
	if len(missingRequired) > 0 {
		issues = append(issues, "Missing required fields: "+joinNames(missingRequired))
		suggestions = append(suggestions, "Ensure the document contains patient name and hospital information")
	} else {
		score += 40
	}

	// Important fields: tiered 30/20/10.
	missingImportant := missingOf(data, constants.ImportantFields)
	switch {
	case len(missingImportant) == 0:
		score += 30
	case len(missingImportant) == 1:
		score += 20
		issues = append(issues, "Missing some important fields: "+joinNames(missingImportant))
	default:
		score += 10
		issues = append(issues, "Missing multiple important fields: "+joinNames(missingImportant))
		suggestions = append(suggestions, "Ensure the document is clear and contains medical treatment information")
	}

	// Optional fields: 7 points each, capped at 20.
	presentOptional := 0
	for _, f := range constants.OptionalFields {
		if data[f] != "" {
			presentOptional++
		}
	}
	score += min(20, presentOptional*7)

	// Accuracy bonus. The [40,60) band deliberately contributes nothing and
	// raises no issue.
	switch {
	case accuracy >= 80:
		score += 10
	case accuracy >= 60:
		score += 5
	case accuracy < 40:
		issues = append(issues, "Low extraction accuracy detected")
		suggestions = append(suggestions, "Document quality may be poor - try a clearer scan or photo")
	}

	// Language bonus.
	switch {
	case res.Metadata.Language.MedicalContent():
		score += 5
	case res.Metadata.Language == constants.LangEnglish:
		score += 3
	default:
		issues = append(issues, "Document does not appear to contain recognizable medical text")
		suggestions = append(suggestions, "Ensure this is a medical insurance form (Korean or English)")
	}

	score = clampInt(score, 0, 100)
	isValid := score >= 50 && len(missingRequired) == 0

	// General suggestions by score band, on top of the per-stage ones.
	if score < 30 {
		suggestions = append(suggestions, "Consider uploading a different document or improving image quality")
	} else if score < 60 {
		suggestions = append(suggestions, "Document partially processed - some information may be missing")
	}

	return &ValidationResult{
		IsValid:     isValid,
		Score:       score,
		Issues:      issues,
		Suggestions: suggestions,
		FieldCoverage: FieldCoverage{
			Required:  len(constants.RequiredFields) - len(missingRequired),
			Important: len(constants.ImportantFields) - len(missingImportant),
			Optional:  presentOptional,
			Total:     len(data),
		},
	}
}

func missingOf(data FieldMap, names []constants.FieldName) []constants.FieldName {
	var missing []constants.FieldName
	for _, n := range names {
		if data[n] == "" {
			missing = append(missing, n)
		}
	}
	return missing
}

func joinNames(names []constants.FieldName) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = string(n)
	}
	return strings.Join(parts, ", ")
}
