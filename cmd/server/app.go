package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/utn-progav/autos-api/internal/config"
	"github.com/utn-progav/autos-api/internal/platform/postgres"
	"github.com/utn-progav/autos-api/internal/service"
	"github.com/utn-progav/autos-api/internal/service/auth"
	"github.com/utn-progav/autos-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	jwtService     auth.JWTService
	autoService    service.AutoService
	ventaService   service.VentaService
	paisService    service.PaisService
	personaService service.PersonaService
	userService    service.UserService
}

// newApplication creates a new application instance with all dependencies initialized.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	tx := store.NewTransactor(db)
	autos := postgres.NewPostgresAutoStore(db, logger)
	ventas := postgres.NewPostgresVentaStore(db, logger)
	paises := postgres.NewPostgresPaisStore(db, logger)
	personas := postgres.NewPostgresPersonaStore(db, logger)
	users := postgres.NewPostgresUserStore(db, logger)

	if app.autoService, err = service.NewAutoService(tx, autos, ventas, logger); err != nil {
		return nil, fmt.Errorf("failed to create auto service: %w", err)
	}
	if app.ventaService, err = service.NewVentaService(tx, autos, ventas, logger); err != nil {
		return nil, fmt.Errorf("failed to create venta service: %w", err)
	}
	if app.paisService, err = service.NewPaisService(tx, paises, personas, logger); err != nil {
		return nil, fmt.Errorf("failed to create pais service: %w", err)
	}
	if app.personaService, err = service.NewPersonaService(tx, personas, paises, logger); err != nil {
		return nil, fmt.Errorf("failed to create persona service: %w", err)
	}
	app.userService, err = service.NewUserService(
		tx,
		users,
		auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		auth.NewBcryptVerifier(),
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", slog.String("error", err.Error()))
		}
	}
	app.logger.Info("Application shutdown completed")
}
