package extract

import (
	"regexp"

	"github.com/sungmin-oh/claimform-extractor/constants"
)

var (
	reKoreanMedicalTerms  = regexp.MustCompile(`병원|의원|환자|진료|치료|보험|청구`)
	reEnglishMedicalTerms = regexp.MustCompile(`(?i)hospital|medical|patient|treatment|insurance|claim|benefit`)
)

// DetectLanguage classifies text by the ratio of Korean syllables to Latin
// letters, with medical keyword checks as a secondary signal. Keyword
// presence can pull a low-Korean-ratio text into the korean class but can
// never override a high ratio: when in doubt the classifier leans Korean,
// since the target domain is predominantly Korean forms.
func DetectLanguage(text string) constants.Language {
	var korean, latin int
	for _, r := range text {
		switch {
		case r >= '가' && r <= '힣':
			korean++
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			latin++
		}
	}

	total := korean + latin
	if total == 0 {
		return constants.LangUnknown
	}
	ratio := float64(korean) / float64(total)

	switch {
	case ratio > 0.3 || reKoreanMedicalTerms.MatchString(text):
		return constants.LangKorean
	case ratio > 0.1:
		return constants.LangMixed
	case reEnglishMedicalTerms.MatchString(text):
		return constants.LangEnglishMedical
	default:
		return constants.LangEnglish
	}
}
