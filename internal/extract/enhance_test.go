package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sungmin-oh/claimform-extractor/constants"
)

func TestEnhance(t *testing.T) {
	testCases := []struct {
		name     string
		field    constants.FieldName
		raw      string
		expected string
	}{
		{
			name:     "total cost strips separators",
			field:    constants.TotalCost,
			raw:      "1,234,500",
			expected: "1234500",
		},
		{
			name:     "patient payment keeps decimal point",
			field:    constants.PatientPayment,
			raw:      "1,234.50",
			expected: "1234.50",
		},
		{
			name:     "insurance claim with trailing unit text",
			field:    constants.InsuranceClaim,
			raw:      "89,000 won approx",
			expected: "89000",
		},
		{
			name:     "money fallback when no digits",
			field:    constants.TotalCost,
			raw:      "미상",
			expected: "미상",
		},
		{
			name:     "phone keeps digits and dashes",
			field:    constants.Phone,
			raw:      "02-1234-5678 call",
			expected: "02-1234-5678",
		},
		{
			name:     "phone strips spaces and parens",
			field:    constants.Phone,
			raw:      "(02) 1234 5678",
			expected: "0212345678",
		},
		{
			name:     "patient name drops OCR cap tokens and digits",
			field:    constants.PatientName,
			raw:      "김철수 AB 12",
			expected: "김철수",
		},
		{
			name:     "doctor name cleanup",
			field:    constants.DoctorName,
			raw:      "X 이영희",
			expected: "이영희",
		},
		{
			name:     "hospital name drops leading cap artifact",
			field:    constants.HospitalName,
			raw:      "B 서울대학교병원",
			expected: "서울대학교병원",
		},
		{
			name:     "treatment date narrowed from trailing text",
			field:    constants.TreatmentDate,
			raw:      "2024-01-15 외래",
			expected: "2024-01-15",
		},
		{
			name:     "treatment date day-first form",
			field:    constants.TreatmentDate,
			raw:      "15/01/2024",
			expected: "15/01/2024",
		},
		{
			name:     "treatment date fallback",
			field:    constants.TreatmentDate,
			raw:      "없음",
			expected: "없음",
		},
		{
			name:     "department korean gloss",
			field:    constants.Department,
			raw:      "정형외과",
			expected: "정형외과 (Orthopedics)",
		},
		{
			name:     "department gloss inside longer capture",
			field:    constants.Department,
			raw:      "내과 외래 진료",
			expected: "내과 (Internal Medicine)",
		},
		{
			name:     "department passthrough for unknown value",
			field:    constants.Department,
			raw:      "Cardiology",
			expected: "Cardiology",
		},
		{
			name:     "default branch trims only",
			field:    constants.Occupation,
			raw:      "  회사원  ",
			expected: "회사원",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Enhance(tc.field, tc.raw))
		})
	}
}
