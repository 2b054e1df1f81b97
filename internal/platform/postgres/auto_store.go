package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/utn-progav/autos-api/internal/domain"
	"github.com/utn-progav/autos-api/internal/platform/logger"
	"github.com/utn-progav/autos-api/internal/store"
)

const autoColumns = "id, marca, modelo, anio, precio"

// likeEscaper escapes the LIKE metacharacters so a search term matches
// literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// PostgresAutoStore implements the store.AutoStore interface
// using a PostgreSQL database as the storage backend.
type PostgresAutoStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAutoStore creates a new PostgreSQL implementation of the AutoStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresAutoStore(db store.DBTX, logger *slog.Logger) *PostgresAutoStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresAutoStore{
		db:     db,
		logger: logger.With(slog.String("component", "auto_store")),
	}
}

// Ensure PostgresAutoStore implements store.AutoStore interface
var _ store.AutoStore = (*PostgresAutoStore)(nil)

// WithTx implements store.AutoStore.WithTx
func (s *PostgresAutoStore) WithTx(tx *sql.Tx) store.AutoStore {
	return &PostgresAutoStore{db: tx, logger: s.logger}
}

func scanAuto(row rowScanner) (*domain.Auto, error) {
	var a domain.Auto
	if err := row.Scan(&a.ID, &a.Marca, &a.Modelo, &a.Anio, &a.Precio); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *PostgresAutoStore) queryAutos(ctx context.Context, query string, args ...any) ([]*domain.Auto, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	autos := make([]*domain.Auto, 0)
	for rows.Next() {
		a, err := scanAuto(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan auto: %w", err)
		}
		autos = append(autos, a)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return autos, nil
}

// List implements store.AutoStore.List
func (s *PostgresAutoStore) List(ctx context.Context, skip, limit int) ([]*domain.Auto, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	autos, err := s.queryAutos(ctx,
		"SELECT "+autoColumns+" FROM auto ORDER BY id LIMIT $1 OFFSET $2",
		limit, skip)
	if err != nil {
		log.Error("failed to list autos",
			slog.String("error", err.Error()),
			slog.Int("skip", skip),
			slog.Int("limit", limit))
		return nil, err
	}

	log.Debug("autos listed", slog.Int("count", len(autos)))
	return autos, nil
}

// buildSearch turns f into a WHERE clause and its positional arguments.
func buildSearch(f store.AutoFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.Marca != nil {
		add(`marca ILIKE '%%' || $%d || '%%'`, likeEscaper.Replace(*f.Marca))
	}
	if f.Modelo != nil {
		add(`modelo ILIKE '%%' || $%d || '%%'`, likeEscaper.Replace(*f.Modelo))
	}
	if f.AnioMin != nil {
		add("anio >= $%d", *f.AnioMin)
	}
	if f.AnioMax != nil {
		add("anio <= $%d", *f.AnioMax)
	}
	if f.PrecioMin != nil {
		add("precio >= $%d", *f.PrecioMin)
	}
	if f.PrecioMax != nil {
		add("precio <= $%d", *f.PrecioMax)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// Search implements store.AutoStore.Search
func (s *PostgresAutoStore) Search(ctx context.Context, f store.AutoFilter) ([]*domain.Auto, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	where, args := buildSearch(f)
	autos, err := s.queryAutos(ctx,
		"SELECT "+autoColumns+" FROM auto"+where+" ORDER BY id", args...)
	if err != nil {
		log.Error("failed to search autos", slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("autos searched",
		slog.Int("criteria", len(args)),
		slog.Int("count", len(autos)))
	return autos, nil
}

// Create implements store.AutoStore.Create. a is refreshed with the row as
// stored.
func (s *PostgresAutoStore) Create(ctx context.Context, a *domain.Auto) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := a.Validate(); err != nil {
		log.Warn("auto validation failed during create", slog.String("error", err.Error()))
		return err
	}

	stored, err := scanAuto(s.db.QueryRowContext(ctx,
		`INSERT INTO auto (marca, modelo, anio, precio) VALUES ($1, $2, $3, $4) RETURNING `+autoColumns,
		a.Marca, a.Modelo, a.Anio, a.Precio,
	))
	if err != nil {
		log.Error("failed to create auto", slog.String("error", err.Error()))
		return MapWriteError(err, "precio")
	}
	*a = *stored

	log.Info("auto created", slog.Int64("auto_id", a.ID))
	return nil
}

func (s *PostgresAutoStore) getByID(ctx context.Context, id int64, lock string) (*domain.Auto, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	a, err := scanAuto(s.db.QueryRowContext(ctx,
		"SELECT "+autoColumns+" FROM auto WHERE id = $1"+lock, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("auto not found", slog.Int64("auto_id", id))
			return nil, store.ErrAutoNotFound
		}
		log.Error("failed to get auto by ID",
			slog.String("error", err.Error()),
			slog.Int64("auto_id", id))
		return nil, MapError(err)
	}
	return a, nil
}

// GetByID implements store.AutoStore.GetByID
func (s *PostgresAutoStore) GetByID(ctx context.Context, id int64) (*domain.Auto, error) {
	return s.getByID(ctx, id, "")
}

// GetByIDForShare implements store.AutoStore.GetByIDForShare
func (s *PostgresAutoStore) GetByIDForShare(ctx context.Context, id int64) (*domain.Auto, error) {
	return s.getByID(ctx, id, " FOR SHARE")
}

// Update implements store.AutoStore.Update. a is refreshed with the row as
// stored.
func (s *PostgresAutoStore) Update(ctx context.Context, a *domain.Auto) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := a.Validate(); err != nil {
		log.Warn("auto validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("auto_id", a.ID))
		return err
	}

	stored, err := scanAuto(s.db.QueryRowContext(ctx,
		`UPDATE auto SET marca = $1, modelo = $2, anio = $3, precio = $4 WHERE id = $5 RETURNING `+autoColumns,
		a.Marca, a.Modelo, a.Anio, a.Precio, a.ID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.ErrAutoNotFound
		}
		log.Error("failed to update auto",
			slog.String("error", err.Error()),
			slog.Int64("auto_id", a.ID))
		return MapWriteError(err, "precio")
	}
	*a = *stored

	log.Info("auto updated", slog.Int64("auto_id", a.ID))
	return nil
}

// Delete implements store.AutoStore.Delete
func (s *PostgresAutoStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM auto WHERE id = $1`, id)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Debug("auto delete refused, ventas reference it", slog.Int64("auto_id", id))
			return store.ErrAutoHasVentas
		}
		log.Error("failed to delete auto",
			slog.String("error", err.Error()),
			slog.Int64("auto_id", id))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrAutoNotFound); err != nil {
		return err
	}

	log.Info("auto deleted", slog.Int64("auto_id", id))
	return nil
}
