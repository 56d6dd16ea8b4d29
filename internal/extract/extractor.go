package extract

import (
	"log/slog"
	"math"
	"strings"

	"github.com/sungmin-oh/claimform-extractor/constants"
)

// baseConfidence is assigned to every successful rule match. The rules are
// deliberately permissive, so per-match confidence is flat and quality is
// expressed through the weighted aggregate instead.
const baseConfidence = 0.85

// FieldMatch is the raw outcome of matching one field against the text.
type FieldMatch struct {
	Value      string
	Confidence float64
	Pattern    string // source pattern of the winning rule
}

// FieldMap holds the final enhanced values keyed by field name. Absence
// means "not found"; an empty string is never stored on purpose.
type FieldMap map[constants.FieldName]string

// ParseOutcome summarizes one pass over a document.
type ParseOutcome struct {
	Fields      FieldMap
	Accuracy    int     // 0-100, weighted coverage over all registered fields
	Confidence  float64 // 0-1, weighted score over the field count
	FieldsFound int
	TotalFields int
	Language    constants.Language
	FormType    string
}

// Extractor applies the pattern registry to normalized claim-form text.
// It is stateless apart from the shared immutable registry; concurrent use
// is safe.
type Extractor struct {
	logger *slog.Logger
}

func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{logger: logger}
}

// ExtractField tries the field's rules in order and returns the first match
// with a non-empty capture, or nil when no rule matches. A winning rule is
// never retried; later rules are never consulted after a success.
func (e *Extractor) ExtractField(text string, name constants.FieldName) *FieldMatch {
	def := Lookup(name)
	if def == nil {
		return nil
	}
	for _, r := range def.Rules {
		groups := r.re.FindStringSubmatch(text)
		if groups == nil || len(groups) <= r.group {
			continue
		}
		value := strings.TrimSpace(groups[r.group])
		if value == "" {
			continue
		}
		return &FieldMatch{
			Value:      value,
			Confidence: baseConfidence,
			Pattern:    r.Pattern(),
		}
	}
	return nil
}

// ExtractAll runs ExtractField for every registered field. Fields are
// independent, so evaluation order never changes the outcome; a miss is
// recorded as absence, never as an error.
func (e *Extractor) ExtractAll(text string) map[constants.FieldName]FieldMatch {
	matches := make(map[constants.FieldName]FieldMatch)
	for _, def := range Registry {
		if m := e.ExtractField(text, def.Name); m != nil {
			matches[def.Name] = *m
		}
	}
	return matches
}

// Parse normalizes the text, extracts and enhances every field, and computes
// the aggregate accuracy and confidence signals plus the language class.
func (e *Extractor) Parse(raw string) ParseOutcome {
	cleaned := Normalize(raw)

	fields := make(FieldMap)
	var totalScore, maxScore float64

	for _, def := range Registry {
		match := e.ExtractField(cleaned, def.Name)
		weight := WeightOf(def.Name)
		maxScore += weight
		if match == nil {
			continue
		}
		enhanced := Enhance(def.Name, match.Value)
		if enhanced == "" {
			// Upstream noise can reduce a match to nothing; treat as absent.
			continue
		}
		fields[def.Name] = enhanced
		totalScore += match.Confidence * weight
	}

	accuracy := 0
	if maxScore > 0 {
		accuracy = int(math.Round(totalScore / maxScore * 100))
	}

	outcome := ParseOutcome{
		Fields:      fields,
		Accuracy:    clampInt(accuracy, 0, 100),
		Confidence:  clampFloat(totalScore/float64(TotalFields()), 0, 1),
		FieldsFound: len(fields),
		TotalFields: TotalFields(),
		Language:    DetectLanguage(cleaned),
		FormType:    constants.FormTypeKoreanMedical,
	}

	e.logger.Debug("extract.parse",
		"fields_found", outcome.FieldsFound,
		"total_fields", outcome.TotalFields,
		"accuracy", outcome.Accuracy,
		"language", outcome.Language,
	)
	return outcome
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
