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

const personaColumns = "id, nombre, apellido, edad, pais_id"

// PostgresPersonaStore implements the store.PersonaStore interface
// using a PostgreSQL database as the storage backend.
type PostgresPersonaStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPersonaStore creates a new PostgreSQL implementation of the PersonaStore interface.
func NewPostgresPersonaStore(db store.DBTX, logger *slog.Logger) *PostgresPersonaStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresPersonaStore{
		db:     db,
		logger: logger.With(slog.String("component", "persona_store")),
	}
}

var _ store.PersonaStore = (*PostgresPersonaStore)(nil)

// WithTx implements store.PersonaStore.WithTx
func (s *PostgresPersonaStore) WithTx(tx *sql.Tx) store.PersonaStore {
	return &PostgresPersonaStore{db: tx, logger: s.logger}
}

func scanPersona(row rowScanner) (*domain.Persona, error) {
	var p domain.Persona
	var paisID sql.NullInt64
	if err := row.Scan(&p.ID, &p.Nombre, &p.Apellido, &p.Edad, &paisID); err != nil {
		return nil, err
	}
	if paisID.Valid {
		id := paisID.Int64
		p.PaisID = &id
	}
	return &p, nil
}

func nullablePaisID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}

func (s *PostgresPersonaStore) queryPersonas(ctx context.Context, query string, args ...any) ([]*domain.Persona, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	personas := make([]*domain.Persona, 0)
	for rows.Next() {
		p, err := scanPersona(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan persona: %w", err)
		}
		personas = append(personas, p)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return personas, nil
}

// List implements store.PersonaStore.List
func (s *PostgresPersonaStore) List(ctx context.Context, skip, limit int) ([]*domain.Persona, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	personas, err := s.queryPersonas(ctx,
		"SELECT "+personaColumns+" FROM persona ORDER BY id LIMIT $1 OFFSET $2", limit, skip)
	if err != nil {
		log.Error("failed to list personas", slog.String("error", err.Error()))
		return nil, err
	}
	return personas, nil
}

// ListByPais implements store.PersonaStore.ListByPais
func (s *PostgresPersonaStore) ListByPais(ctx context.Context, paisID int64) ([]*domain.Persona, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	personas, err := s.queryPersonas(ctx,
		"SELECT "+personaColumns+" FROM persona WHERE pais_id = $1 ORDER BY id", paisID)
	if err != nil {
		log.Error("failed to list personas by pais",
			slog.String("error", err.Error()),
			slog.Int64("pais_id", paisID))
		return nil, err
	}
	return personas, nil
}

func mapPersonaWriteError(err error) error {
	if IsForeignKeyViolation(err) {
		return fmt.Errorf("%w: %v", domain.ErrPaisReferenceMissing, err)
	}
	return MapWriteError(err, "edad")
}

// Create implements store.PersonaStore.Create
func (s *PostgresPersonaStore) Create(ctx context.Context, p *domain.Persona) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := p.Validate(); err != nil {
		return err
	}

	err := s.db.QueryRowContext(ctx,
		`INSERT INTO persona (nombre, apellido, edad, pais_id) VALUES ($1, $2, $3, $4) RETURNING id`,
		p.Nombre, p.Apellido, p.Edad, nullablePaisID(p.PaisID),
	).Scan(&p.ID)
	if err != nil {
		log.Error("failed to create persona", slog.String("error", err.Error()))
		return mapPersonaWriteError(err)
	}

	log.Info("persona created", slog.Int64("persona_id", p.ID))
	return nil
}

// GetByID implements store.PersonaStore.GetByID
func (s *PostgresPersonaStore) GetByID(ctx context.Context, id int64) (*domain.Persona, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	p, err := scanPersona(s.db.QueryRowContext(ctx,
		"SELECT "+personaColumns+" FROM persona WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrPersonaNotFound
		}
		log.Error("failed to get persona by ID",
			slog.String("error", err.Error()),
			slog.Int64("persona_id", id))
		return nil, MapError(err)
	}
	return p, nil
}

// Update implements store.PersonaStore.Update
func (s *PostgresPersonaStore) Update(ctx context.Context, p *domain.Persona) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := p.Validate(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE persona SET nombre = $1, apellido = $2, edad = $3, pais_id = $4 WHERE id = $5`,
		p.Nombre, p.Apellido, p.Edad, nullablePaisID(p.PaisID), p.ID)
	if err != nil {
		log.Error("failed to update persona",
			slog.String("error", err.Error()),
			slog.Int64("persona_id", p.ID))
		return mapPersonaWriteError(err)
	}
	if err := CheckRowsAffected(result, store.ErrPersonaNotFound); err != nil {
		return err
	}

	log.Info("persona updated", slog.Int64("persona_id", p.ID))
	return nil
}

// Delete implements store.PersonaStore.Delete
func (s *PostgresPersonaStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM persona WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete persona",
			slog.String("error", err.Error()),
			slog.Int64("persona_id", id))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrPersonaNotFound); err != nil {
		return err
	}

	log.Info("persona deleted", slog.Int64("persona_id", id))
	return nil
}
