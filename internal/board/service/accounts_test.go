package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hollyburn/noteboard/internal/board/domain"
)

func TestRegister(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &AccountService{Store: st}

	t.Run("creates user with no role", func(t *testing.T) {
		u, err := svc.Register(ctx, "alice", "alice@example.com", "secret1")
		require.NoError(t, err)
		require.Equal(t, domain.RoleNone, u.Role)
		require.NotEmpty(t, u.ID)

		got, err := st.Users().GetUserByUsername(ctx, "alice")
		require.NoError(t, err)
		require.Equal(t, u.ID, got.ID)
	})

	t.Run("rejects duplicate username", func(t *testing.T) {
		_, err := svc.Register(ctx, "alice", "other@example.com", "secret1")
		require.ErrorIs(t, err, ErrDuplicateIdentity)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		_, err := svc.Register(ctx, "someone", "alice@example.com", "secret1")
		require.ErrorIs(t, err, ErrDuplicateIdentity)
	})

	t.Run("rejects short username", func(t *testing.T) {
		_, err := svc.Register(ctx, "ab", "ab@example.com", "secret1")
		require.ErrorIs(t, err, ErrValidationFailed)
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		_, err := svc.Register(ctx, "bob", "not-an-email", "secret1")
		require.ErrorIs(t, err, ErrValidationFailed)
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := svc.Register(ctx, "bob", "bob@example.com", "12345")
		require.ErrorIs(t, err, ErrValidationFailed)
	})
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &AccountService{Store: st}
	seedUser(t, st, "alice", domain.RoleNone)

	t.Run("accepts correct password", func(t *testing.T) {
		u, err := svc.Authenticate(ctx, "alice", "password123")
		require.NoError(t, err)
		require.Equal(t, "alice", u.Username)
	})

	t.Run("wrong password and missing user look identical", func(t *testing.T) {
		_, errWrong := svc.Authenticate(ctx, "alice", "not-it")
		_, errMissing := svc.Authenticate(ctx, "nobody", "password123")
		require.ErrorIs(t, errWrong, ErrInvalidCredentials)
		require.ErrorIs(t, errMissing, ErrInvalidCredentials)
	})
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &AccountService{Store: st}

	alice := seedUser(t, st, "alice", domain.RoleNone)
	seedUser(t, st, "bob", domain.RoleNone)

	t.Run("renames without touching password", func(t *testing.T) {
		require.NoError(t, svc.UpdateProfile(ctx, alice.ID, "alicia", ""))

		got, err := st.Users().GetUserByID(ctx, alice.ID)
		require.NoError(t, err)
		require.Equal(t, "alicia", got.Username)
		require.Equal(t, alice.PasswordHash, got.PasswordHash)
	})

	t.Run("rotates password when provided", func(t *testing.T) {
		require.NoError(t, svc.UpdateProfile(ctx, alice.ID, "alicia", "newsecret"))

		_, err := svc.Authenticate(ctx, "alicia", "newsecret")
		require.NoError(t, err)
		_, err = svc.Authenticate(ctx, "alicia", "password123")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("rejects username held by another user", func(t *testing.T) {
		require.ErrorIs(t, svc.UpdateProfile(ctx, alice.ID, "bob", ""), ErrUsernameTaken)
	})

	t.Run("keeping own username is allowed", func(t *testing.T) {
		require.NoError(t, svc.UpdateProfile(ctx, alice.ID, "alicia", ""))
	})

	t.Run("rejects short new password", func(t *testing.T) {
		require.ErrorIs(t, svc.UpdateProfile(ctx, alice.ID, "alicia", "12345"), ErrPasswordTooShort)
	})

	t.Run("rejects short username", func(t *testing.T) {
		require.ErrorIs(t, svc.UpdateProfile(ctx, alice.ID, "ab", ""), ErrValidationFailed)
	})

	t.Run("unknown user", func(t *testing.T) {
		require.ErrorIs(t, svc.UpdateProfile(ctx, "missing", "charlie", ""), ErrUserNotFound)
	})
}
