package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/ats-ranker/internal/types"
)

const userColumns = `id, name, email, phone, role, is_verified, is_active, credits_free, credits_paid,
	password_set, created_at, updated_at`

func scanUser(row pgx.Row) (*types.User, error) {
	var u types.User
	var role string
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &role, &u.IsVerified, &u.IsActive,
		&u.CreditsFree, &u.CreditsPaid, &u.PasswordSet, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.Role = types.UserRole(role)
	return &u, nil
}

// NormalizeEmail lowercases and trims an email address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// GetUserByEmail retrieves a user by email. Returns nil, nil when no user matches.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*types.User, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, nil
	}
	u, err := scanUser(db.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return u, nil
}

// CreateUser inserts a user and returns the stored row.
func (db *DB) CreateUser(ctx context.Context, in UserCreateInput) (*types.User, error) {
	email := NormalizeEmail(in.Email)
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	role := in.Role
	if role == "" {
		role = types.RoleCandidate
	}

	u, err := scanUser(db.pool.QueryRow(ctx,
		`INSERT INTO users (name, email, phone, role, is_verified, is_active, credits_free, credits_paid,
			password_hash, password_set)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING `+userColumns,
		in.Name, email, in.Phone, string(role), in.IsVerified, in.IsActive, in.CreditsFree, in.CreditsPaid,
		in.PasswordHash, in.PasswordHash != "",
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return u, nil
}
