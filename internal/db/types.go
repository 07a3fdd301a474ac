package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/ats-ranker/internal/types"
)

// UserCreateInput holds the fields for inserting a user.
type UserCreateInput struct {
	Name         string
	Email        string
	Phone        string
	Role         types.UserRole
	IsVerified   bool
	IsActive     bool
	CreditsFree  int
	CreditsPaid  int
	PasswordHash string // empty for magic-link accounts
}

// Ranking is a stored audit copy of one job/candidate score.
type Ranking struct {
	ID           uuid.UUID            `json:"id"`
	JobID        string               `json:"job_id"`
	CandidateID  string               `json:"candidate_id"`
	OverallScore float64              `json:"overall_score"`
	Category     types.Category       `json:"category"`
	Breakdown    types.ScoreBreakdown `json:"breakdown"`
	ResumeRef    string               `json:"resume_ref,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
}
