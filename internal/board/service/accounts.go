package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/hollyburn/noteboard/internal/board/domain"
	"github.com/hollyburn/noteboard/internal/board/store"
	"github.com/hollyburn/noteboard/pkg/cryptox"
	"github.com/hollyburn/noteboard/pkg/idx"
	"github.com/hollyburn/noteboard/pkg/slogx"
)

const (
	minUsernameLen = 3
	minPasswordLen = 6
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// AccountService owns registration, login verification and profile edits.
// The form layer validates field shapes first; everything is re-checked
// here because the store must never trust the caller.
type AccountService struct {
	Store store.Store
}

// Register creates a new user with role none. Username and email must both
// be free; the collision is detected with a single pre-flight lookup and the
// unique constraints stay as a backstop against concurrent registration.
func (s *AccountService) Register(ctx context.Context, username, email, password string) (domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if len(username) < minUsernameLen || !emailRe.MatchString(email) || len(password) < minPasswordLen {
		return domain.User{}, ErrValidationFailed
	}

	_, err := s.Store.Users().FindByUsernameOrEmail(ctx, username, email)
	switch {
	case err == nil:
		return domain.User{}, ErrDuplicateIdentity
	case !errors.Is(err, store.ErrNotFound):
		return domain.User{}, err
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleNone,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrDuplicateIdentity
		}
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user registered", "user_id", u.ID)
	return u, nil
}

// Authenticate verifies a username/password pair. A missing user and a hash
// mismatch both return ErrInvalidCredentials so callers cannot enumerate
// accounts.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (domain.User, error) {
	username = strings.TrimSpace(username)

	u, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		return domain.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// Get returns a user by id.
func (s *AccountService) Get(ctx context.Context, userID string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return u, nil
}

// UpdateProfile renames the user and optionally rotates their password. An
// empty newPassword keeps the current hash. The rename and the password
// change commit together or not at all.
func (s *AccountService) UpdateProfile(ctx context.Context, userID, newUsername, newPassword string) error {
	newUsername = strings.TrimSpace(newUsername)
	if len(newUsername) < minUsernameLen {
		return ErrValidationFailed
	}
	if newPassword != "" && len(newPassword) < minPasswordLen {
		return ErrPasswordTooShort
	}

	taken, err := s.Store.Users().UsernameTakenByOther(ctx, newUsername, userID)
	if err != nil {
		return err
	}
	if taken {
		return ErrUsernameTaken
	}

	var newHash string
	if newPassword != "" {
		if newHash, err = cryptox.HashPassword(newPassword); err != nil {
			return err
		}
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Users().GetUserByID(ctx, userID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if err := tx.Users().UpdateUsername(ctx, userID, newUsername); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrUsernameTaken
			}
			return err
		}
		if newHash != "" {
			return tx.Users().UpdatePasswordHash(ctx, userID, newHash)
		}
		return nil
	})
}
