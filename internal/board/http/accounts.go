package http

import (
	"net/http"
	"time"

	"github.com/hollyburn/noteboard/internal/board/domain"
	"github.com/hollyburn/noteboard/internal/board/service"
	"github.com/hollyburn/noteboard/pkg/httpx"
	"github.com/hollyburn/noteboard/pkg/slogx"
)

type AccountsHandler struct {
	Accounts      *service.AccountService
	Sessions      *service.SessionService
	SecureCookies bool
}

type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func userResponse(u domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role.String(),
		CreatedAt: u.CreatedAt,
	}
}

func (h *AccountsHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username        string `json:"username"`
		Email           string `json:"email"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirm_password"`
	}
	if !readJSON(w, r, &req) {
		return
	}
	if req.ConfirmPassword != "" && req.ConfirmPassword != req.Password {
		writeServiceError(w, r, service.ErrValidationFailed)
		return
	}

	u, err := h.Accounts.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, userResponse(u))
}

func (h *AccountsHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !readJSON(w, r, &req) {
		return
	}

	ctx := r.Context()
	u, err := h.Accounts.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	token, err := h.Sessions.Issue(ctx, u.ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	h.setSessionCookie(w, token, h.Sessions.TTL)
	slogx.FromContext(ctx).Info("login", "user_id", u.ID)
	httpx.WriteJSON(w, http.StatusOK, userResponse(u))
}

func (h *AccountsHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		if err := h.Sessions.Invalidate(r.Context(), cookie.Value); err != nil {
			writeServiceError(w, r, err)
			return
		}
	}

	h.setSessionCookie(w, "", -time.Hour)
	w.WriteHeader(http.StatusNoContent)
}

func (h *AccountsHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserID(ctx)
	if userID == "" {
		writeServiceError(w, r, service.ErrUnauthenticated)
		return
	}

	u, err := h.Accounts.Get(ctx, userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, userResponse(u))
}

func (h *AccountsHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserID(ctx)
	if userID == "" {
		writeServiceError(w, r, service.ErrUnauthenticated)
		return
	}

	var req struct {
		Username        string `json:"username"`
		NewPassword     string `json:"new_password"`
		ConfirmPassword string `json:"confirm_password"`
	}
	if !readJSON(w, r, &req) {
		return
	}
	if req.NewPassword != req.ConfirmPassword && req.ConfirmPassword != "" {
		writeServiceError(w, r, service.ErrValidationFailed)
		return
	}

	if err := h.Accounts.UpdateProfile(ctx, userID, req.Username, req.NewPassword); err != nil {
		writeServiceError(w, r, err)
		return
	}

	u, err := h.Accounts.Get(ctx, userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, userResponse(u))
}

func (h *AccountsHandler) setSessionCookie(w http.ResponseWriter, value string, maxAge time.Duration) {
	if maxAge == 0 {
		maxAge = service.DefaultSessionTTL
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge / time.Second),
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
