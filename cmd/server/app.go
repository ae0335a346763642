package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/taskdeck/taskdeck-api/internal/config"
	"github.com/taskdeck/taskdeck-api/internal/platform/email"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/platform/postgres"
	"github.com/taskdeck/taskdeck-api/internal/service"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// application holds the initialized dependencies of the server: the
// configuration, logger, database handle, stores and services. Handlers
// and middleware are created from it when the router is set up.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore         store.UserStore
	taskStore         store.TaskStore
	notificationStore store.NotificationStore
	tokenStore        store.TokenStore

	jwtService       auth.JWTService
	passwordHasher   auth.PasswordHasher
	passwordVerifier auth.PasswordVerifier

	userService service.UserService
	taskService service.TaskService
}

// initializeApp loads configuration, sets up logging and the database
// connection, and wires the store and service layers together.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := setupAppDatabase(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to set up database: %w", err)
	}

	app := &application{
		config: cfg,
		logger: log,
		db:     db,
	}

	app.userStore = postgres.NewPostgresUserStore(db, log)
	app.taskStore = postgres.NewPostgresTaskStore(db, log)
	app.notificationStore = postgres.NewPostgresNotificationStore(db, log)
	app.tokenStore = postgres.NewPostgresTokenStore(db, log)

	app.jwtService, err = auth.NewJWTService(cfg.Auth, app.tokenStore)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}
	app.passwordHasher = auth.NewBcryptHasher(0)
	app.passwordVerifier = auth.NewBcryptVerifier()

	txRunner := store.NewSQLTxRunner(db)
	mailer := email.NewSMTPMailer(cfg.Email, log)

	app.userService = service.NewUserService(txRunner, app.userStore, app.passwordHasher, log)
	app.taskService = service.NewTaskService(
		txRunner,
		app.taskStore,
		app.notificationStore,
		app.userStore,
		mailer,
		log,
	)

	return app, nil
}

// cleanup releases resources held by the application. Called after the
// HTTP server has shut down.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Failed to close database connection", "error", err)
		}
	}
}
