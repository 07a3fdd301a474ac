//nolint:revive // types is a standard Go package name pattern
package types

import "github.com/go-playground/validator/v10"

// CandidateProfile is the structured part of an application used for ranking.
type CandidateProfile struct {
	ID                 string            `json:"id,omitempty"`
	Name               string            `json:"name,omitempty"`
	PrimarySkills      []string          `json:"primary_skills"`
	ExperienceYears    int               `json:"experience_years" validate:"gte=0"`
	PreferredLocations []string          `json:"preferred_locations"`
	WillingToRelocate  bool              `json:"willing_to_relocate"`
	Education          []EducationRecord `json:"education,omitempty" validate:"dive"`
}

// EducationRecord is a single education entry. Only Degree takes part in scoring.
type EducationRecord struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution,omitempty"`
	Field       string `json:"field,omitempty"`
}

// Validate validates the CandidateProfile using the validator.
func (c *CandidateProfile) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}
