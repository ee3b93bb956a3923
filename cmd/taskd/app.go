package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/smarttask/internal/api"
	"github.com/phrazzld/smarttask/internal/config"
	"github.com/phrazzld/smarttask/internal/platform/memory"
	"github.com/phrazzld/smarttask/internal/platform/postgres"
	"github.com/phrazzld/smarttask/internal/service"
	"github.com/phrazzld/smarttask/internal/service/auth"
	"github.com/phrazzld/smarttask/internal/store"
)

// application holds the server's shared dependencies.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore store.UserStore
	taskStore store.TaskStore

	jwtService  auth.JWTService
	userService service.UserService
	taskService service.TaskService
}

// newApplication wires stores and services. Storage is in memory unless a
// database URL is configured, in which case migrations are applied first.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	if err := app.setupStorage(ctx); err != nil {
		app.cleanup()
		return nil, err
	}

	app.userService = service.NewUserService(app.userStore, auth.NewBcryptVerifier(), logger)
	app.taskService = service.NewTaskService(app.taskStore, nil, logger)

	logger.Info("application initialized")
	return app, nil
}

func (app *application) setupStorage(ctx context.Context) error {
	if app.config.Database.URL == "" {
		storage := memory.NewStorage()
		app.userStore = storage
		app.taskStore = storage.Tasks()
		app.logger.Warn("no database configured, tasks are kept in memory")
		return nil
	}

	db, err := postgres.Open(ctx, app.config.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	app.db = db

	if err := postgres.Migrate(ctx, db, app.logger); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	app.userStore = postgres.NewPostgresUserStore(db, app.logger)
	app.taskStore = postgres.NewPostgresTaskStore(db, app.logger)
	app.logger.Info("using PostgreSQL storage")
	return nil
}

func (app *application) router() http.Handler {
	return api.NewRouter(api.RouterDeps{
		Users:      app.userService,
		Tasks:      app.taskService,
		JWTService: app.jwtService,
		Logger:     app.logger,
	})
}

// Run serves HTTP until ctx is cancelled.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.router()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
		app.db = nil
	}
}
