package constants

// Language is the detected language class of a normalized document.
type Language string

// Stable values (serialized into result metadata and the archive).
const (
	LangKorean         Language = "korean"
	LangMixed          Language = "mixed"
	LangEnglishMedical Language = "english_medical"
	LangEnglish        Language = "english"
	LangUnknown        Language = "unknown"
)

// MedicalContent reports whether a language class indicates recognizable
// medical or insurance content (used by the validation bonus).
func (l Language) MedicalContent() bool {
	switch l {
	case LangKorean, LangMixed, LangEnglishMedical:
		return true
	default:
		return false
	}
}
