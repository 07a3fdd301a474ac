// Package types provides type definitions for structured data used throughout the ats-ranker system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// JobRequirement represents what a job posting asks of a candidate.
// An empty Location means any location is acceptable.
type JobRequirement struct {
	ID                string   `json:"id,omitempty"`
	Title             string   `json:"title,omitempty"`
	RequiredSkills    []string `json:"required_skills"`
	MinExperience     int      `json:"min_experience" validate:"gte=0"`
	Location          string   `json:"location"`
	EducationRequired *string  `json:"education_required,omitempty"`
}

// Validate validates the JobRequirement using the validator.
func (j *JobRequirement) Validate() error {
	validate := validator.New()
	return validate.Struct(j)
}

// StringPtr returns a pointer to s. Handy for optional fields such as EducationRequired.
func StringPtr(s string) *string {
	return &s
}
