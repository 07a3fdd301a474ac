// Package ranking scores candidate profiles against job requirements.
//
// Four dimension scorers (skills, experience, location, education) each produce a 0-100
// sub-score. The aggregator combines them with a weight vector into an overall score and a
// recommendation verdict. Every scorer is a pure function and safe for concurrent use.
package ranking

import (
	"fmt"
	"math"
)

// Tuning holds the heuristic constants used by the dimension scorers.
// The zero value is not useful; start from DefaultTuning.
type Tuning struct {
	// ExperienceBonusPerYear is added per year above the requirement.
	ExperienceBonusPerYear float64 `json:"experience_bonus_per_year"`
	// ExperienceBonusCap caps the overqualification bonus.
	ExperienceBonusCap float64 `json:"experience_bonus_cap"`

	LocationNoData   float64 `json:"location_no_data"`
	LocationPartial  float64 `json:"location_partial"`
	LocationMismatch float64 `json:"location_mismatch"`

	EducationMissing     float64 `json:"education_missing"`
	EducationUnparseable float64 `json:"education_unparseable"`
	EducationAdjacent    float64 `json:"education_adjacent"`
	EducationFloor       float64 `json:"education_floor"`
}

// DefaultTuning returns the constants the ranking model has always shipped with.
func DefaultTuning() Tuning {
	return Tuning{
		ExperienceBonusPerYear: 2,
		ExperienceBonusCap:     10,
		LocationNoData:         50,
		LocationPartial:        85,
		LocationMismatch:       30,
		EducationMissing:       60,
		EducationUnparseable:   80,
		EducationAdjacent:      85,
		EducationFloor:         50,
	}
}

const fullScore = 100.0

// Validate rejects negative or non-finite constants, and scores above 100 for the
// location and education defaults.
func (t Tuning) Validate() error {
	fields := []struct {
		name   string
		value  float64
		scored bool
	}{
		{"experience_bonus_per_year", t.ExperienceBonusPerYear, false},
		{"experience_bonus_cap", t.ExperienceBonusCap, false},
		{"location_no_data", t.LocationNoData, true},
		{"location_partial", t.LocationPartial, true},
		{"location_mismatch", t.LocationMismatch, true},
		{"education_missing", t.EducationMissing, true},
		{"education_unparseable", t.EducationUnparseable, true},
		{"education_adjacent", t.EducationAdjacent, true},
		{"education_floor", t.EducationFloor, true},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("tuning %q must be a finite number", f.name)
		}
		if f.value < 0 {
			return fmt.Errorf("tuning %q must be non-negative, got %v", f.name, f.value)
		}
		if f.scored && f.value > fullScore {
			return fmt.Errorf("tuning %q must not exceed %v, got %v", f.name, fullScore, f.value)
		}
	}
	return nil
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
