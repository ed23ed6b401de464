package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hollyburn/noteboard/internal/board/domain"
	"github.com/hollyburn/noteboard/internal/board/store"
)

func newAdminService(st store.Store, pin string) *AdminService {
	roles := &RoleService{Store: st, SuperadminUsername: pin}
	return &AdminService{Store: st, Roles: roles}
}

func TestPromoteOrDemote(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newAdminService(st, "root")

	root := seedUser(t, st, "root", domain.RoleSuperadmin)
	admin := seedUser(t, st, "admin", domain.RoleAdmin)
	member := seedUser(t, st, "member", domain.RoleNone)

	t.Run("superadmin promotes a member", func(t *testing.T) {
		require.NoError(t, svc.PromoteOrDemote(ctx, root.ID, member.ID, ActionPromote))

		got, err := st.Users().GetUserByID(ctx, member.ID)
		require.NoError(t, err)
		require.Equal(t, domain.RoleAdmin, got.Role)
	})

	t.Run("superadmin demotes an admin", func(t *testing.T) {
		require.NoError(t, svc.PromoteOrDemote(ctx, root.ID, admin.ID, ActionDemote))

		got, err := st.Users().GetUserByID(ctx, admin.ID)
		require.NoError(t, err)
		require.Equal(t, domain.RoleNone, got.Role)
	})

	t.Run("plain admin may not change roles", func(t *testing.T) {
		require.NoError(t, svc.PromoteOrDemote(ctx, root.ID, admin.ID, ActionPromote))
		require.ErrorIs(t, svc.PromoteOrDemote(ctx, admin.ID, member.ID, ActionDemote), ErrForbidden)
	})

	t.Run("superadmin target is protected", func(t *testing.T) {
		require.ErrorIs(t, svc.PromoteOrDemote(ctx, root.ID, root.ID, ActionDemote), ErrProtectedAccount)

		got, err := st.Users().GetUserByID(ctx, root.ID)
		require.NoError(t, err)
		require.Equal(t, domain.RoleSuperadmin, got.Role)
	})

	t.Run("anonymous actor", func(t *testing.T) {
		require.ErrorIs(t, svc.PromoteOrDemote(ctx, "", member.ID, ActionPromote), ErrUnauthenticated)
	})

	t.Run("unknown target", func(t *testing.T) {
		require.ErrorIs(t, svc.PromoteOrDemote(ctx, root.ID, "missing", ActionPromote), ErrUserNotFound)
	})

	t.Run("unknown action", func(t *testing.T) {
		require.ErrorIs(t, svc.PromoteOrDemote(ctx, root.ID, member.ID, AdminAction("elevate")), ErrValidationFailed)
	})
}

func TestSuperadminDesignation(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	root := seedUser(t, st, "root", domain.RoleSuperadmin)
	impostor := seedUser(t, st, "impostor", domain.RoleSuperadmin)
	member := seedUser(t, st, "member", domain.RoleNone)

	t.Run("pinned username is required when configured", func(t *testing.T) {
		svc := newAdminService(st, "root")
		require.NoError(t, svc.PromoteOrDemote(ctx, root.ID, member.ID, ActionPromote))
		require.ErrorIs(t, svc.PromoteOrDemote(ctx, impostor.ID, member.ID, ActionDemote), ErrForbidden)
	})

	t.Run("any superadmin row qualifies without a pin", func(t *testing.T) {
		svc := newAdminService(st, "")
		require.NoError(t, svc.PromoteOrDemote(ctx, impostor.ID, member.ID, ActionDemote))
	})
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newAdminService(st, "root")

	root := seedUser(t, st, "root", domain.RoleSuperadmin)
	member := seedUser(t, st, "member", domain.RoleNone)
	note := seedNote(t, st, member.ID, nil, "mine", time.Now().UTC())

	t.Run("deleting a member cascades to their notes", func(t *testing.T) {
		require.NoError(t, svc.DeleteUser(ctx, root.ID, member.ID))

		_, err := st.Users().GetUserByID(ctx, member.ID)
		require.ErrorIs(t, err, store.ErrNotFound)

		_, err = st.Notes().GetNoteByID(ctx, note.ID)
		require.Error(t, err)
	})

	t.Run("superadmin cannot be deleted", func(t *testing.T) {
		require.ErrorIs(t, svc.DeleteUser(ctx, root.ID, root.ID), ErrProtectedAccount)
	})
}

func TestAdminListUsers(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newAdminService(st, "root")

	seedUser(t, st, "root", domain.RoleSuperadmin)
	admin := seedUser(t, st, "admin", domain.RoleAdmin)
	member := seedUser(t, st, "member", domain.RoleNone)

	t.Run("admins may list", func(t *testing.T) {
		users, err := svc.ListUsers(ctx, admin.ID)
		require.NoError(t, err)
		require.Len(t, users, 3)
	})

	t.Run("members may not", func(t *testing.T) {
		_, err := svc.ListUsers(ctx, member.ID)
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("anonymous may not", func(t *testing.T) {
		_, err := svc.ListUsers(ctx, "")
		require.ErrorIs(t, err, ErrUnauthenticated)
	})
}
