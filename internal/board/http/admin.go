package http

import (
	"net/http"

	"github.com/hollyburn/noteboard/internal/board/domain"
	"github.com/hollyburn/noteboard/internal/board/service"
	"github.com/hollyburn/noteboard/pkg/httpx"
)

type AdminHandler struct {
	Admin *service.AdminService
	Roles *service.RoleService
}

// ListUsers serves the admin page data: every account plus whether the
// viewer holds the superadmin designation (the UI hides the mutation
// buttons otherwise; the server side re-checks regardless).
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actorID := httpx.UserID(ctx)

	users, err := h.Admin.ListUsers(ctx, actorID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	actor, err := h.Roles.RequireRole(ctx, actorID, domain.RoleAdmin)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, userResponse(u))
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"users":         out,
		"is_superadmin": h.Roles.Designated(actor),
	})
}

func (h *AdminHandler) Promote(w http.ResponseWriter, r *http.Request) {
	h.mutateRole(w, r, service.ActionPromote)
}

func (h *AdminHandler) Demote(w http.ResponseWriter, r *http.Request) {
	h.mutateRole(w, r, service.ActionDemote)
}

func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.Admin.DeleteUser(ctx, httpx.UserID(ctx), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) mutateRole(w http.ResponseWriter, r *http.Request, action service.AdminAction) {
	ctx := r.Context()
	if err := h.Admin.PromoteOrDemote(ctx, httpx.UserID(ctx), r.PathValue("id"), action); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
