package service

import (
	"context"
	"errors"

	"github.com/hollyburn/noteboard/internal/board/domain"
	"github.com/hollyburn/noteboard/internal/board/store"
)

// RoleService gates operations on the role tier. SuperadminUsername is the
// optional pinned superadmin: when set, holding role=superadmin is not
// enough for destructive admin actions, the username must match too.
type RoleService struct {
	Store              store.Store
	SuperadminUsername string
}

// RequireRole resolves the session identity and checks it against the
// minimum tier. An empty or unknown user id is ErrUnauthenticated; a known
// user below the tier is ErrForbidden.
func (s *RoleService) RequireRole(ctx context.Context, userID string, min domain.Role) (domain.User, error) {
	if userID == "" {
		return domain.User{}, ErrUnauthenticated
	}

	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUnauthenticated
		}
		return domain.User{}, err
	}

	if !u.Role.AtLeast(min) {
		return domain.User{}, ErrForbidden
	}
	return u, nil
}

// Designated reports whether u holds the superadmin designation: role
// superadmin AND, when a username is pinned, that exact username. A role=2
// row with a different username is not superadmin for mutation purposes.
func (s *RoleService) Designated(u domain.User) bool {
	if u.Role != domain.RoleSuperadmin {
		return false
	}
	return s.SuperadminUsername == "" || u.Username == s.SuperadminUsername
}
