package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/hollyburn/noteboard/internal/board/service"
	"github.com/hollyburn/noteboard/internal/board/store"
	"github.com/hollyburn/noteboard/pkg/httpx"
	"github.com/hollyburn/noteboard/pkg/slogx"
)

// SessionCookieName is the cookie the browser holds between requests.
const SessionCookieName = "board_session"

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion  string
	startTime     time.Time
	logger        *slog.Logger
	store         store.Store
	secureCookies bool

	Accounts  *service.AccountService
	Roles     *service.RoleService
	Threads   *service.ThreadService
	Reactions *service.ReactionService
	Admin     *service.AdminService
	Sessions  *service.SessionService
}

func NewRouter(buildVersion string, secureCookies bool, st store.Store, logger *slog.Logger) *Router {
	return &Router{
		Mux:           http.NewServeMux(),
		buildVersion:  buildVersion,
		startTime:     time.Now(),
		logger:        logger,
		store:         st,
		secureCookies: secureCookies,
	}
}

func (r *Router) ApplyRoutes() {
	// Session resolution runs for every route; handlers decide whether an
	// anonymous request is acceptable.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.SessionMiddleware(r.Sessions, SessionCookieName),
	}

	r.registerAccounts()
	r.registerNotes()
	r.registerAdmin()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAccounts() {
	h := &AccountsHandler{
		Accounts:      r.Accounts,
		Sessions:      r.Sessions,
		SecureCookies: r.secureCookies,
	}

	r.Mux.HandleFunc("POST /v1/register", h.Register)
	r.Mux.HandleFunc("POST /v1/login", h.Login)
	r.Mux.HandleFunc("POST /v1/logout", h.Logout)
	r.Mux.HandleFunc("GET /v1/profile", h.GetProfile)
	r.Mux.HandleFunc("PUT /v1/profile", h.UpdateProfile)
}

func (r *Router) registerNotes() {
	h := &NotesHandler{
		Threads:   r.Threads,
		Reactions: r.Reactions,
	}

	r.Mux.HandleFunc("GET /v1/notes", h.List)
	r.Mux.HandleFunc("GET /v1/notes/preview", h.Preview)
	r.Mux.HandleFunc("POST /v1/notes", h.Create)
	r.Mux.HandleFunc("GET /v1/notes/{id}/replies", h.ListReplies)
	r.Mux.HandleFunc("POST /v1/notes/{id}/replies", h.CreateReply)
	r.Mux.HandleFunc("GET /v1/notes/{id}/reactions", h.ListReactions)
	r.Mux.HandleFunc("POST /v1/notes/{id}/reactions", h.ToggleReaction)
}

func (r *Router) registerAdmin() {
	h := &AdminHandler{
		Admin: r.Admin,
		Roles: r.Roles,
	}

	r.Mux.HandleFunc("GET /v1/admin/users", h.ListUsers)
	r.Mux.HandleFunc("POST /v1/admin/users/{id}/promote", h.Promote)
	r.Mux.HandleFunc("POST /v1/admin/users/{id}/demote", h.Demote)
	r.Mux.HandleFunc("DELETE /v1/admin/users/{id}", h.Delete)
}

func (r *Router) registerSystem() {
	r.Mux.HandleFunc("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.HandleFunc("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
