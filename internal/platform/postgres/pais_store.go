package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/utn-progav/autos-api/internal/domain"
	"github.com/utn-progav/autos-api/internal/platform/logger"
	"github.com/utn-progav/autos-api/internal/store"
)

// PostgresPaisStore implements the store.PaisStore interface
// using a PostgreSQL database as the storage backend.
type PostgresPaisStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPaisStore creates a new PostgreSQL implementation of the PaisStore interface.
func NewPostgresPaisStore(db store.DBTX, logger *slog.Logger) *PostgresPaisStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresPaisStore{
		db:     db,
		logger: logger.With(slog.String("component", "pais_store")),
	}
}

var _ store.PaisStore = (*PostgresPaisStore)(nil)

// WithTx implements store.PaisStore.WithTx
func (s *PostgresPaisStore) WithTx(tx *sql.Tx) store.PaisStore {
	return &PostgresPaisStore{db: tx, logger: s.logger}
}

// List implements store.PaisStore.List
func (s *PostgresPaisStore) List(ctx context.Context) ([]*domain.Pais, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `SELECT id, nombre FROM pais ORDER BY id`)
	if err != nil {
		log.Error("failed to list paises", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	paises := make([]*domain.Pais, 0)
	for rows.Next() {
		var p domain.Pais
		if err := rows.Scan(&p.ID, &p.Nombre); err != nil {
			return nil, fmt.Errorf("failed to scan pais: %w", err)
		}
		paises = append(paises, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return paises, nil
}

// Create implements store.PaisStore.Create
func (s *PostgresPaisStore) Create(ctx context.Context, p *domain.Pais) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := p.Validate(); err != nil {
		return err
	}

	err := s.db.QueryRowContext(ctx,
		`INSERT INTO pais (nombre) VALUES ($1) RETURNING id`, p.Nombre).Scan(&p.ID)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("pais nombre already taken", slog.String("nombre", p.Nombre))
			return MapUniqueViolation(err, store.ErrPaisNombreExists)
		}
		log.Error("failed to create pais", slog.String("error", err.Error()))
		return MapError(err)
	}

	log.Info("pais created", slog.Int64("pais_id", p.ID))
	return nil
}

// GetByID implements store.PaisStore.GetByID
func (s *PostgresPaisStore) GetByID(ctx context.Context, id int64) (*domain.Pais, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var p domain.Pais
	err := s.db.QueryRowContext(ctx,
		`SELECT id, nombre FROM pais WHERE id = $1`, id).Scan(&p.ID, &p.Nombre)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrPaisNotFound
		}
		log.Error("failed to get pais by ID",
			slog.String("error", err.Error()),
			slog.Int64("pais_id", id))
		return nil, MapError(err)
	}
	return &p, nil
}

// Update implements store.PaisStore.Update
func (s *PostgresPaisStore) Update(ctx context.Context, p *domain.Pais) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := p.Validate(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE pais SET nombre = $1 WHERE id = $2`, p.Nombre, p.ID)
	if err != nil {
		if IsUniqueViolation(err) {
			return MapUniqueViolation(err, store.ErrPaisNombreExists)
		}
		log.Error("failed to update pais",
			slog.String("error", err.Error()),
			slog.Int64("pais_id", p.ID))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrPaisNotFound); err != nil {
		return err
	}

	log.Info("pais updated", slog.Int64("pais_id", p.ID))
	return nil
}

// Delete implements store.PaisStore.Delete
func (s *PostgresPaisStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM pais WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete pais",
			slog.String("error", err.Error()),
			slog.Int64("pais_id", id))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrPaisNotFound); err != nil {
		return err
	}

	log.Info("pais deleted", slog.Int64("pais_id", id))
	return nil
}
