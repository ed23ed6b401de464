package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/hollyburn/noteboard/internal/board/domain"
	"github.com/hollyburn/noteboard/internal/board/store"
	"github.com/hollyburn/noteboard/pkg/idx"
)

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &SessionService{Store: st, Secret: []byte("test-signing-secret")}
	alice := seedUser(t, st, "alice", domain.RoleNone)

	t.Run("issue and resolve round trip", func(t *testing.T) {
		token, err := svc.Issue(ctx, alice.ID)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		userID, err := svc.Resolve(ctx, token)
		require.NoError(t, err)
		require.Equal(t, alice.ID, userID)
	})

	t.Run("invalidate revokes server side", func(t *testing.T) {
		token, err := svc.Issue(ctx, alice.ID)
		require.NoError(t, err)

		require.NoError(t, svc.Invalidate(ctx, token))

		_, err = svc.Resolve(ctx, token)
		require.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("invalidating garbage is a no-op", func(t *testing.T) {
		require.NoError(t, svc.Invalidate(ctx, "not-a-token"))
	})

	t.Run("tampered token is rejected", func(t *testing.T) {
		token, err := svc.Issue(ctx, alice.ID)
		require.NoError(t, err)

		_, err = svc.Resolve(ctx, token+"x")
		require.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("token signed with another key is rejected", func(t *testing.T) {
		other := &SessionService{Store: st, Secret: []byte("different-secret")}
		token, err := other.Issue(ctx, alice.ID)
		require.NoError(t, err)

		_, err = svc.Resolve(ctx, token)
		require.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("expired session is rejected and swept at next issue", func(t *testing.T) {
		// A token whose signature is still valid but whose row has expired.
		sess := domain.Session{
			ID:        idx.New().String(),
			UserID:    alice.ID,
			ExpiresAt: time.Now().UTC().Add(-time.Hour),
			CreatedAt: time.Now().UTC().Add(-2 * time.Hour),
		}
		require.NoError(t, st.Sessions().CreateSession(ctx, sess))

		claims := jwt.RegisteredClaims{
			Subject:   alice.ID,
			ID:        sess.ID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(svc.Secret)
		require.NoError(t, err)

		_, err = svc.Resolve(ctx, token)
		require.ErrorIs(t, err, ErrUnauthenticated)

		// The next issue deletes the expired row entirely.
		_, err = svc.Issue(ctx, alice.ID)
		require.NoError(t, err)
		_, err = st.Sessions().GetSessionByID(ctx, sess.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}
