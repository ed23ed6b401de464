package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/hollyburn/noteboard/internal/board/http"
	"github.com/hollyburn/noteboard/internal/board/service"
	"github.com/hollyburn/noteboard/internal/board/store"
	"github.com/hollyburn/noteboard/internal/board/store/drivers/sqlite"
	"github.com/hollyburn/noteboard/pkg/cryptox"
	"github.com/hollyburn/noteboard/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the board service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	db store.Store

	accountService   *service.AccountService
	roleService      *service.RoleService
	threadService    *service.ThreadService
	reactionService  *service.ReactionService
	adminService     *service.AdminService
	sessionService   *service.SessionService
	bootstrapService *service.BootstrapService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "board-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	// Create the superadmin before accepting traffic so a fresh deployment
	// is administrable from the first request.
	if err := app.bootstrapService.EnsureRoot(context.Background()); err != nil {
		return fmt.Errorf("superadmin bootstrap failed: %w", err)
	}

	app.logger.Info("board service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down board service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("board service stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() error {
	secret, err := cryptox.LoadOrCreateSecret(app.cfg.SessionSecretFile)
	if err != nil {
		return fmt.Errorf("failed to load session signing key: %w", err)
	}

	app.accountService = &service.AccountService{Store: app.db}
	app.roleService = &service.RoleService{
		Store:              app.db,
		SuperadminUsername: app.cfg.RootUsername,
	}
	app.threadService = &service.ThreadService{Store: app.db}
	app.reactionService = &service.ReactionService{Store: app.db}
	app.adminService = &service.AdminService{
		Store: app.db,
		Roles: app.roleService,
	}
	app.sessionService = &service.SessionService{
		Store:  app.db,
		Secret: secret,
		TTL:    app.cfg.SessionTTL,
	}
	app.bootstrapService = &service.BootstrapService{
		Store:        app.db,
		RootUsername: app.cfg.RootUsername,
		RootPassword: app.cfg.RootPassword,
	}

	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		BuildVersion,
		app.cfg.Env != "dev",
		app.db,
		app.logger,
	)

	// Wire services to router
	router.Accounts = app.accountService
	router.Roles = app.roleService
	router.Threads = app.threadService
	router.Reactions = app.reactionService
	router.Admin = app.adminService
	router.Sessions = app.sessionService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
