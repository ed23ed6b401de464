package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hollyburn/noteboard/internal/board/domain"
)

func TestEnsureRoot(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the superadmin once", func(t *testing.T) {
		st := newTestStore(t)
		svc := &BootstrapService{Store: st, RootUsername: "root", RootPassword: "rootpass"}

		require.NoError(t, svc.EnsureRoot(ctx))

		u, err := st.Users().GetUserByUsername(ctx, "root")
		require.NoError(t, err)
		require.Equal(t, domain.RoleSuperadmin, u.Role)
		require.Equal(t, "root@local", u.Email)

		// Idempotent across restarts.
		require.NoError(t, svc.EnsureRoot(ctx))
		again, err := st.Users().GetUserByUsername(ctx, "root")
		require.NoError(t, err)
		require.Equal(t, u.ID, again.ID)
	})

	t.Run("no-op without credentials", func(t *testing.T) {
		st := newTestStore(t)
		svc := &BootstrapService{Store: st}

		require.NoError(t, svc.EnsureRoot(ctx))

		users, err := st.Users().ListUsers(ctx)
		require.NoError(t, err)
		require.Empty(t, users)
	})

	t.Run("existing account keeps its role", func(t *testing.T) {
		st := newTestStore(t)
		existing := seedUser(t, st, "root", domain.RoleNone)

		svc := &BootstrapService{Store: st, RootUsername: "root", RootPassword: "rootpass"}
		require.NoError(t, svc.EnsureRoot(ctx))

		u, err := st.Users().GetUserByID(ctx, existing.ID)
		require.NoError(t, err)
		require.Equal(t, domain.RoleNone, u.Role)
	})
}
