package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sungmin-oh/claimform-extractor/constants"
)

func TestRegistryCoversAllFields(t *testing.T) {
	assert.Equal(t, 29, TotalFields())

	seen := make(map[constants.FieldName]bool)
	for _, def := range Registry {
		assert.False(t, seen[def.Name], "duplicate field %s", def.Name)
		seen[def.Name] = true
		assert.NotEmpty(t, def.Rules, "field %s has no rules", def.Name)
		assert.Greater(t, def.Weight, 0.0)
		assert.LessOrEqual(t, def.Weight, 1.0)
	}

	for _, f := range constants.RequiredFields {
		assert.True(t, seen[f], "required field %s not registered", f)
	}
	for _, f := range constants.ImportantFields {
		assert.True(t, seen[f], "important field %s not registered", f)
	}
	for _, f := range constants.OptionalFields {
		assert.True(t, seen[f], "optional field %s not registered", f)
	}
}

func TestWeightOf(t *testing.T) {
	assert.Equal(t, 1.0, WeightOf(constants.PatientName))
	assert.Equal(t, 1.0, WeightOf(constants.HospitalName))
	assert.Equal(t, 1.0, WeightOf(constants.TotalCost))
	assert.Equal(t, 0.9, WeightOf(constants.TreatmentDate))
	assert.Equal(t, 0.5, WeightOf(constants.Prescription))

	// Unknown names fall back instead of failing.
	assert.Equal(t, defaultWeight, WeightOf(constants.FieldName("noSuchField")))
}

func TestLookup(t *testing.T) {
	def := Lookup(constants.HospitalName)
	require.NotNil(t, def)
	assert.Equal(t, constants.HospitalName, def.Name)

	assert.Nil(t, Lookup(constants.FieldName("noSuchField")))
}

func TestRuleOrderEncodesPriority(t *testing.T) {
	// Label-specific rules must win over bare format rules when both match.
	e := NewExtractor(nil)

	m := e.ExtractField("요양기관번호: 12345678 기타 87654321", constants.HospitalID)
	require.NotNil(t, m)
	assert.Equal(t, "12345678", m.Value)
	assert.Contains(t, m.Pattern, "요양기관번호")

	m = e.ExtractField("진료비 총액: 150,000원", constants.TotalCost)
	require.NotNil(t, m)
	assert.Equal(t, "150,000", m.Value)
	assert.Contains(t, m.Pattern, "진료비")
}
