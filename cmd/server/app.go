package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/taskward/taskward-api/internal/api"
	apimiddleware "github.com/taskward/taskward-api/internal/api/middleware"
	"github.com/taskward/taskward-api/internal/config"
	"github.com/taskward/taskward-api/internal/platform/postgres"
	"github.com/taskward/taskward-api/internal/service"
	"github.com/taskward/taskward-api/internal/service/auth"
	"github.com/taskward/taskward-api/migrations"
)

// application holds the wired dependencies of one server process.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	credentialService service.CredentialService
	taskService       service.TaskService
	jwtService        auth.JWTService
}

// newApplication opens the database, optionally applies migrations, and
// constructs the stores and services.
func newApplication(cfg *config.Config, log *slog.Logger) (*application, error) {
	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if cfg.Database.MigrateOnStart {
		if err := runMigrations(db, log); err != nil {
			return nil, err
		}
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create jwt service: %w", err)
	}

	verifier, err := auth.NewPasswordVerifier(cfg.Auth.PasswordScheme)
	if err != nil {
		return nil, fmt.Errorf("failed to create password verifier: %w", err)
	}

	userStore := postgres.NewUserStore(db, log)
	taskStore := postgres.NewTaskStore(db, log)

	return &application{
		config:            cfg,
		logger:            log,
		db:                db,
		jwtService:        jwtService,
		credentialService: service.NewCredentialService(userStore, jwtService, verifier, db, log),
		taskService:       service.NewTaskService(taskStore, userStore, db, log),
	}, nil
}

// runMigrations applies the embedded goose migrations.
func runMigrations(db *sql.DB, log *slog.Logger) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	log.Info("database migrations applied")
	return nil
}

// setupRouter configures the application router with all routes and
// middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.Trace)

	authHandler := api.NewAuthHandler(app.credentialService)
	taskHandler := api.NewTaskHandler(app.taskService)
	authMiddleware := apimiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Task reads are public; mutations require an authenticated owner.
		r.Get("/tasks", taskHandler.ListTasks)
		r.Get("/tasks/{id}", taskHandler.GetTask)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Post("/tasks", taskHandler.CreateTask)
			r.Put("/tasks/{id}", taskHandler.UpdateTask)
			r.Delete("/tasks/{id}", taskHandler.DeleteTask)
			r.Patch("/tasks/{id}/complete", taskHandler.CompleteTask)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}

// close releases the application's resources.
func (app *application) close() {
	if err := app.db.Close(); err != nil {
		app.logger.Error("failed to close database", "error", err)
	}
}
