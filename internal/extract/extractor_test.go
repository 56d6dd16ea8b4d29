package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sungmin-oh/claimform-extractor/constants"
)

func TestExtractFieldFirstMatchWins(t *testing.T) {
	e := NewExtractor(nil)

	// The labeled rule and the bare city-prefix rule both match; the labeled
	// rule is declared first and must win.
	m := e.ExtractField("주소: 부산광역시 해운대구", constants.Address)
	require.NotNil(t, m)
	assert.Contains(t, m.Pattern, "ADDRESS")
	assert.Equal(t, "부산광역시 해운대구", m.Value)
}

func TestExtractFieldNoMatch(t *testing.T) {
	e := NewExtractor(nil)
	assert.Nil(t, e.ExtractField("아무 내용 없음", constants.Phone))
	assert.Nil(t, e.ExtractField("", constants.PatientName))
	assert.Nil(t, e.ExtractField("환자명: 김철수", constants.FieldName("noSuchField")))
}

func TestExtractFieldConfidence(t *testing.T) {
	e := NewExtractor(nil)
	m := e.ExtractField("전화번호: 02-1234-5678", constants.Phone)
	require.NotNil(t, m)
	assert.Equal(t, baseConfidence, m.Confidence)
}

func TestParseMinimalKoreanForm(t *testing.T) {
	e := NewExtractor(nil)
	out := e.Parse("환자명: 홍길동 병원명: 서울병원")

	assert.NotEmpty(t, out.Fields[constants.PatientName])
	assert.Equal(t, "서울병원", out.Fields[constants.HospitalName])
	assert.Empty(t, out.Fields[constants.Diagnosis])
	assert.Empty(t, out.Fields[constants.TreatmentDate])
	assert.Equal(t, constants.LangKorean, out.Language)
	assert.Equal(t, constants.FormTypeKoreanMedical, out.FormType)
	assert.Equal(t, len(out.Fields), out.FieldsFound)
}

func TestParseEmptyInput(t *testing.T) {
	e := NewExtractor(nil)
	out := e.Parse("")

	assert.Empty(t, out.Fields)
	assert.Equal(t, 0, out.Accuracy)
	assert.Equal(t, 0.0, out.Confidence)
	assert.Equal(t, 0, out.FieldsFound)
	assert.Equal(t, TotalFields(), out.TotalFields)
	assert.Equal(t, constants.LangUnknown, out.Language)
}

func TestParseFullKoreanForm(t *testing.T) {
	text := strings.Join([]string{
		"환자명: 김철수",
		"병원명: 서울대학교병원",
		"진료일자: 2024-01-15",
		"진료과목: 정형외과",
		"진료비 총액: 150,000원",
		"전화번호: 010-1234-5678",
		"진단명: 염좌",
	}, "\n")

	e := NewExtractor(nil)
	out := e.Parse(text)

	assert.Equal(t, "2024-01-15", out.Fields[constants.TreatmentDate])
	assert.Equal(t, "정형외과 (Orthopedics)", out.Fields[constants.Department])
	assert.Equal(t, "150000", out.Fields[constants.TotalCost])
	assert.Equal(t, "010-1234-5678", out.Fields[constants.Phone])
	assert.NotEmpty(t, out.Fields[constants.PatientName])
	assert.NotEmpty(t, out.Fields[constants.HospitalName])
	assert.NotEmpty(t, out.Fields[constants.Diagnosis])
	assert.Equal(t, constants.LangKorean, out.Language)
	assert.Greater(t, out.Accuracy, 0)
}

func TestParseTotalCostEndToEnd(t *testing.T) {
	e := NewExtractor(nil)
	out := e.Parse("총액: 1,234,500원")
	assert.Equal(t, "1234500", out.Fields[constants.TotalCost])
}

func TestParseBounds(t *testing.T) {
	inputs := []string{
		"",
		"환자명: 홍길동 병원명: 서울병원",
		"random english text with no structure",
		"HOSPITAL NAME: General Hospital PATIENT NAME: John Doe Total: $1,234.50",
		strings.Repeat("진료 병원 환자 2024-01-15 150,000원 ", 50),
	}
	e := NewExtractor(nil)
	for _, in := range inputs {
		out := e.Parse(in)
		assert.GreaterOrEqual(t, out.Accuracy, 0, "input: %q", in)
		assert.LessOrEqual(t, out.Accuracy, 100, "input: %q", in)
		assert.GreaterOrEqual(t, out.Confidence, 0.0, "input: %q", in)
		assert.LessOrEqual(t, out.Confidence, 1.0, "input: %q", in)
		assert.LessOrEqual(t, out.FieldsFound, out.TotalFields, "input: %q", in)
	}
}

func TestParseIdempotent(t *testing.T) {
	e := NewExtractor(nil)
	text := "환자명: 김철수 병원명: 서울대학교병원 진료일자: 2024-01-15 총액: 89,000원"

	first := e.Parse(text)
	second := e.Parse(text)
	assert.Equal(t, first, second)
}

func TestExtractAllMatchesParseFieldSet(t *testing.T) {
	e := NewExtractor(nil)
	text := Normalize("환자명: 김철수 병원명: 서울병원 진료과목: 내과")

	matches := e.ExtractAll(text)
	out := e.Parse(text)

	// Parse can drop a match whose enhanced value is empty, never add one.
	assert.LessOrEqual(t, len(out.Fields), len(matches))
	for name := range out.Fields {
		_, ok := matches[name]
		assert.True(t, ok, "field %s in parse output but not in raw matches", name)
	}
}
