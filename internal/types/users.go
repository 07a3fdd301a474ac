//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// UserRole is the role of a platform account.
type UserRole string

// Known roles.
const (
	RoleAdmin       UserRole = "admin"
	RoleEmployer    UserRole = "employer"
	RoleCandidate   UserRole = "candidate"
	RoleInterviewer UserRole = "interviewer"
)

// BootstrapAdminRequest describes the privileged account created on first setup.
// Password is optional; without it the admin signs in through a magic link.
type BootstrapAdminRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password,omitempty" validate:"omitempty,min=8"`
}

// User represents a user profile for API responses (avoids import cycle with db package).
type User struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name,omitempty"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	Role        UserRole  `json:"role"`
	IsVerified  bool      `json:"is_verified"`
	IsActive    bool      `json:"is_active"`
	CreditsFree int       `json:"credits_free"`
	CreditsPaid int       `json:"credits_paid"`
	PasswordSet bool      `json:"password_set"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Validate validates the BootstrapAdminRequest using the validator.
func (r *BootstrapAdminRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
