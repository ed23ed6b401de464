package service

import (
	"context"
	"errors"

	"github.com/hollyburn/noteboard/internal/board/domain"
	"github.com/hollyburn/noteboard/internal/board/store"
	"github.com/hollyburn/noteboard/pkg/slogx"
)

// AdminAction is a role mutation requested through the web interface.
type AdminAction string

const (
	ActionPromote AdminAction = "promote"
	ActionDemote  AdminAction = "demote"
)

// AdminService composes the role gate with user mutations. Every mutation
// resolves the actor, re-checks the target and writes inside one
// transaction, so a rejected mutation commits nothing.
type AdminService struct {
	Store store.Store
	Roles *RoleService
}

// ListUsers returns all users for the admin page. Requires at least admin.
func (s *AdminService) ListUsers(ctx context.Context, actorID string) ([]domain.User, error) {
	if _, err := s.Roles.RequireRole(ctx, actorID, domain.RoleAdmin); err != nil {
		return nil, err
	}
	return s.Store.Users().ListUsers(ctx)
}

// PromoteOrDemote toggles the target between none and admin. Promote never
// reaches superadmin; that tier is only assignable at bootstrap or via the
// local CLI. Targets already holding superadmin are untouchable.
func (s *AdminService) PromoteOrDemote(ctx context.Context, actorID, targetID string, action AdminAction) error {
	if action != ActionPromote && action != ActionDemote {
		return ErrValidationFailed
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		target, err := s.resolveActorAndTarget(ctx, tx, actorID, targetID)
		if err != nil {
			return err
		}

		role := domain.RoleNone
		if action == ActionPromote {
			role = domain.RoleAdmin
		}
		return tx.Users().UpdateRole(ctx, target.ID, role)
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("admin role change",
		"actor_id", actorID, "target_id", targetID, "action", string(action))
	return nil
}

// DeleteUser removes the target account. Superadmin accounts cannot be
// deleted through the web interface.
func (s *AdminService) DeleteUser(ctx context.Context, actorID, targetID string) error {
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		target, err := s.resolveActorAndTarget(ctx, tx, actorID, targetID)
		if err != nil {
			return err
		}
		return tx.Users().DeleteUser(ctx, target.ID)
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("admin deleted user",
		"actor_id", actorID, "target_id", targetID)
	return nil
}

// resolveActorAndTarget runs the guard sequence inside the mutation's
// transaction: the actor must hold the superadmin designation and the
// target must exist and not be superadmin itself.
func (s *AdminService) resolveActorAndTarget(ctx context.Context, tx store.Tx, actorID, targetID string) (domain.User, error) {
	if actorID == "" {
		return domain.User{}, ErrUnauthenticated
	}

	actor, err := tx.Users().GetUserByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUnauthenticated
		}
		return domain.User{}, err
	}
	if !s.Roles.Designated(actor) {
		return domain.User{}, ErrForbidden
	}

	target, err := tx.Users().GetUserByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	if target.Role == domain.RoleSuperadmin {
		return domain.User{}, ErrProtectedAccount
	}
	return target, nil
}
