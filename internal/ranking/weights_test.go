package ranking

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultWeights(t *testing.T) {
	w := DefaultWeights()
	assert.Equal(t, 0.40, w.Skills())
	assert.Equal(t, 0.30, w.Experience())
	assert.Equal(t, 0.15, w.Location())
	assert.Equal(t, 0.15, w.Education())
	assert.InDelta(t, 1.0, w.Sum(), 1e-9)
	assert.True(t, w.Normalized())
}

func TestNewWeights_Validation(t *testing.T) {
	_, err := NewWeights(-0.1, 0.5, 0.3, 0.3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "skills")

	_, err = NewWeights(0.5, 0.5, math.NaN(), 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "location")

	_, err = NewWeights(0.5, 0.5, 0, math.Inf(1))
	require.Error(t, err)

	w, err := NewWeights(0.2, 0.2, 0.2, 0.2)
	require.NoError(t, err)
	assert.False(t, w.Normalized())
}

func TestParseWeights(t *testing.T) {
	w, err := ParseWeights([]byte(`{"skills":0.5,"experience":0.2,"location":0.2,"education":0.1}`))
	require.NoError(t, err)
	assert.Equal(t, 0.5, w.Skills())
	assert.True(t, w.Normalized())

	_, err = ParseWeights([]byte(`{"skills":-1}`))
	assert.Error(t, err)

	_, err = ParseWeights([]byte(`not json`))
	assert.Error(t, err)
}

func TestWeights_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(DefaultWeights())
	require.NoError(t, err)

	var raw map[string]float64
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, map[string]float64{"skills": 0.4, "experience": 0.3, "location": 0.15, "education": 0.15}, raw)
}

func TestTuning_Validate(t *testing.T) {
	assert.NoError(t, DefaultTuning().Validate())

	negative := DefaultTuning()
	negative.EducationFloor = -50
	err := negative.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "education_floor")

	tooHigh := DefaultTuning()
	tooHigh.LocationPartial = 120
	err = tooHigh.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "location_partial")

	nan := DefaultTuning()
	nan.ExperienceBonusPerYear = math.NaN()
	assert.Error(t, nan.Validate())
}
