package ranking

import (
	"encoding/json"
	"fmt"
	"math"
)

// weightSumTolerance is how far the weight sum may drift from 1.0 before a warning is logged.
const weightSumTolerance = 0.01

// Weights is an immutable weight vector over the four ranking dimensions.
// Weights are non-negative and are expected to sum to 1.0; only then does the overall score
// stay on the 0-100 scale. The sum is not enforced.
type Weights struct {
	skills     float64
	experience float64
	location   float64
	education  float64
}

// DefaultWeights returns the default vector: skills 0.40, experience 0.30, location 0.15,
// education 0.15.
func DefaultWeights() Weights {
	return Weights{skills: 0.40, experience: 0.30, location: 0.15, education: 0.15}
}

// NewWeights builds a weight vector, rejecting negative or non-finite values.
func NewWeights(skills, experience, location, education float64) (Weights, error) {
	values := map[string]float64{
		"skills":     skills,
		"experience": experience,
		"location":   location,
		"education":  education,
	}
	for _, name := range []string{"skills", "experience", "location", "education"} {
		v := values[name]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Weights{}, fmt.Errorf("weight %q must be a finite number", name)
		}
		if v < 0 {
			return Weights{}, fmt.Errorf("weight %q must be non-negative, got %v", name, v)
		}
	}
	return Weights{skills: skills, experience: experience, location: location, education: education}, nil
}

// Skills returns the skills weight.
func (w Weights) Skills() float64 { return w.skills }

// Experience returns the experience weight.
func (w Weights) Experience() float64 { return w.experience }

// Location returns the location weight.
func (w Weights) Location() float64 { return w.location }

// Education returns the education weight.
func (w Weights) Education() float64 { return w.education }

// Sum returns the total of all four weights.
func (w Weights) Sum() float64 {
	return w.skills + w.experience + w.location + w.education
}

// Normalized reports whether the weights sum to 1.0 within tolerance.
func (w Weights) Normalized() bool {
	return math.Abs(w.Sum()-1.0) <= weightSumTolerance
}

type weightsJSON struct {
	Skills     float64 `json:"skills"`
	Experience float64 `json:"experience"`
	Location   float64 `json:"location"`
	Education  float64 `json:"education"`
}

// MarshalJSON implements json.Marshaler.
func (w Weights) MarshalJSON() ([]byte, error) {
	return json.Marshal(weightsJSON{
		Skills:     w.skills,
		Experience: w.experience,
		Location:   w.location,
		Education:  w.education,
	})
}

// ParseWeights decodes a JSON object with skills, experience, location and education keys.
// Missing keys are zero.
func ParseWeights(data []byte) (Weights, error) {
	var raw weightsJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return Weights{}, fmt.Errorf("failed to parse weights JSON: %w", err)
	}
	return NewWeights(raw.Skills, raw.Experience, raw.Location, raw.Education)
}
