// Package admin bootstraps the privileged administrator account.
package admin

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/ats-ranker/internal/config"
	"github.com/jonathan/ats-ranker/internal/db"
	"github.com/jonathan/ats-ranker/internal/logger"
	"github.com/jonathan/ats-ranker/internal/types"
)

// UserStore is the persistence the bootstrapper needs. *db.DB implements it.
type UserStore interface {
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)
	CreateUser(ctx context.Context, in db.UserCreateInput) (*types.User, error)
}

// Bootstrapper creates the admin account on first setup.
type Bootstrapper struct {
	store          UserStore
	passwordConfig *config.PasswordConfig
	logger         *zap.Logger
}

// NewBootstrapper creates a Bootstrapper. passwordConfig may be nil when admins only sign in
// through magic links; a request carrying a password then fails.
func NewBootstrapper(store UserStore, passwordConfig *config.PasswordConfig, log *zap.Logger) *Bootstrapper {
	return &Bootstrapper{
		store:          store,
		passwordConfig: passwordConfig,
		logger:         logger.OrNop(log),
	}
}

// EnsureAdmin creates the admin described by req unless its email is already registered.
// It returns the stored user and whether it was created by this call. An existing account is
// returned untouched, whatever its role.
func (b *Bootstrapper) EnsureAdmin(ctx context.Context, req types.BootstrapAdminRequest) (*types.User, bool, error) {
	req.Email = db.NormalizeEmail(req.Email)
	if err := req.Validate(); err != nil {
		return nil, false, &ErrInvalidRequest{Cause: err}
	}

	existing, err := b.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, false, fmt.Errorf("failed to check for existing admin: %w", err)
	}
	if existing != nil {
		if existing.Role != types.RoleAdmin {
			b.logger.Warn("bootstrap email belongs to a non-admin account",
				zap.String("email", existing.Email), zap.String("role", string(existing.Role)))
		}
		b.logger.Info("admin already exists", zap.String("email", existing.Email))
		return existing, false, nil
	}

	var passwordHash string
	if req.Password != "" {
		if b.passwordConfig == nil {
			return nil, false, &ErrPasswordUnsupported{}
		}
		passwordHash, err = b.passwordConfig.HashPassword(req.Password)
		if err != nil {
			return nil, false, fmt.Errorf("failed to hash password: %w", err)
		}
	}

	user, err := b.store.CreateUser(ctx, db.UserCreateInput{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Role:         types.RoleAdmin,
		IsVerified:   true,
		IsActive:     true,
		CreditsFree:  0,
		CreditsPaid:  0,
		PasswordHash: passwordHash,
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to create admin: %w", err)
	}

	b.logger.Info("admin created",
		zap.String("email", user.Email),
		zap.Bool("password_set", user.PasswordSet))
	return user, true, nil
}
