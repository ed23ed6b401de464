package service

import (
	"context"
	"errors"
	"time"

	"github.com/hollyburn/noteboard/internal/board/domain"
	"github.com/hollyburn/noteboard/internal/board/store"
	"github.com/hollyburn/noteboard/pkg/cryptox"
	"github.com/hollyburn/noteboard/pkg/idx"
	"github.com/hollyburn/noteboard/pkg/slogx"
)

// BootstrapService creates the configured superadmin account at startup.
// This is the only path that assigns role superadmin inside the server;
// promote never reaches it.
type BootstrapService struct {
	Store        store.Store
	RootUsername string
	RootPassword string
}

// EnsureRoot creates the superadmin if configured and missing. Calling it
// again is a no-op, so restarts are safe.
func (s *BootstrapService) EnsureRoot(ctx context.Context) error {
	if s.RootUsername == "" || s.RootPassword == "" {
		return nil
	}

	_, err := s.Store.Users().GetUserByUsername(ctx, s.RootUsername)
	switch {
	case err == nil:
		return nil
	case !errors.Is(err, store.ErrNotFound):
		return err
	}

	hash, err := cryptox.HashPassword(s.RootPassword)
	if err != nil {
		return err
	}

	u := domain.User{
		ID:           idx.New().String(),
		Username:     s.RootUsername,
		Email:        s.RootUsername + "@local",
		PasswordHash: hash,
		Role:         domain.RoleSuperadmin,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		// Lost a race with another instance creating the same account.
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil
		}
		return err
	}

	slogx.FromContext(ctx).Info("superadmin bootstrapped", "user_id", u.ID, "username", u.Username)
	return nil
}
