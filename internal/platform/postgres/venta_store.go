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

const ventaColumns = "id, fecha, cantidad, total, auto_id"

// PostgresVentaStore implements the store.VentaStore interface
// using a PostgreSQL database as the storage backend.
type PostgresVentaStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresVentaStore creates a new PostgreSQL implementation of the VentaStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresVentaStore(db store.DBTX, logger *slog.Logger) *PostgresVentaStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresVentaStore{
		db:     db,
		logger: logger.With(slog.String("component", "venta_store")),
	}
}

// Ensure PostgresVentaStore implements store.VentaStore interface
var _ store.VentaStore = (*PostgresVentaStore)(nil)

// WithTx implements store.VentaStore.WithTx
func (s *PostgresVentaStore) WithTx(tx *sql.Tx) store.VentaStore {
	return &PostgresVentaStore{db: tx, logger: s.logger}
}

func scanVenta(row rowScanner) (*domain.Venta, error) {
	var v domain.Venta
	if err := row.Scan(&v.ID, &v.Fecha, &v.Cantidad, &v.Total, &v.AutoID); err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *PostgresVentaStore) queryVentas(ctx context.Context, query string, args ...any) ([]*domain.Venta, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	ventas := make([]*domain.Venta, 0)
	for rows.Next() {
		v, err := scanVenta(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan venta: %w", err)
		}
		ventas = append(ventas, v)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return ventas, nil
}

// List implements store.VentaStore.List
func (s *PostgresVentaStore) List(ctx context.Context) ([]*domain.Venta, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ventas, err := s.queryVentas(ctx, "SELECT "+ventaColumns+" FROM venta ORDER BY id")
	if err != nil {
		log.Error("failed to list ventas", slog.String("error", err.Error()))
		return nil, err
	}
	return ventas, nil
}

// ListByAuto implements store.VentaStore.ListByAuto
func (s *PostgresVentaStore) ListByAuto(ctx context.Context, autoID int64) ([]*domain.Venta, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ventas, err := s.queryVentas(ctx,
		"SELECT "+ventaColumns+" FROM venta WHERE auto_id = $1 ORDER BY id", autoID)
	if err != nil {
		log.Error("failed to list ventas by auto",
			slog.String("error", err.Error()),
			slog.Int64("auto_id", autoID))
		return nil, err
	}
	return ventas, nil
}

// mapVentaWriteError turns a foreign key violation on auto_id into the
// domain reference error. cantidad is range checked by Validate, so only the
// total can overflow.
func mapVentaWriteError(err error) error {
	if IsForeignKeyViolation(err) {
		return fmt.Errorf("%w: %v", domain.ErrAutoReferenceMissing, err)
	}
	return MapWriteError(err, "total")
}

// Create implements store.VentaStore.Create. v is refreshed with the row as
// stored.
func (s *PostgresVentaStore) Create(ctx context.Context, v *domain.Venta) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := v.Validate(); err != nil {
		log.Warn("venta validation failed during create", slog.String("error", err.Error()))
		return err
	}

	stored, err := scanVenta(s.db.QueryRowContext(ctx,
		`INSERT INTO venta (fecha, cantidad, total, auto_id) VALUES ($1, $2, $3, $4) RETURNING `+ventaColumns,
		v.Fecha, v.Cantidad, v.Total, v.AutoID,
	))
	if err != nil {
		log.Error("failed to create venta",
			slog.String("error", err.Error()),
			slog.Int64("auto_id", v.AutoID))
		return mapVentaWriteError(err)
	}
	*v = *stored

	log.Info("venta created",
		slog.Int64("venta_id", v.ID),
		slog.Int64("auto_id", v.AutoID))
	return nil
}

// GetByID implements store.VentaStore.GetByID
func (s *PostgresVentaStore) GetByID(ctx context.Context, id int64) (*domain.Venta, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	v, err := scanVenta(s.db.QueryRowContext(ctx,
		"SELECT "+ventaColumns+" FROM venta WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("venta not found", slog.Int64("venta_id", id))
			return nil, store.ErrVentaNotFound
		}
		log.Error("failed to get venta by ID",
			slog.String("error", err.Error()),
			slog.Int64("venta_id", id))
		return nil, MapError(err)
	}
	return v, nil
}

// Update implements store.VentaStore.Update. v is refreshed with the row as
// stored.
func (s *PostgresVentaStore) Update(ctx context.Context, v *domain.Venta) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := v.Validate(); err != nil {
		log.Warn("venta validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("venta_id", v.ID))
		return err
	}

	stored, err := scanVenta(s.db.QueryRowContext(ctx,
		`UPDATE venta SET fecha = $1, cantidad = $2, total = $3, auto_id = $4 WHERE id = $5 RETURNING `+ventaColumns,
		v.Fecha, v.Cantidad, v.Total, v.AutoID, v.ID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.ErrVentaNotFound
		}
		log.Error("failed to update venta",
			slog.String("error", err.Error()),
			slog.Int64("venta_id", v.ID))
		return mapVentaWriteError(err)
	}
	*v = *stored

	log.Info("venta updated", slog.Int64("venta_id", v.ID))
	return nil
}

// Delete implements store.VentaStore.Delete
func (s *PostgresVentaStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM venta WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete venta",
			slog.String("error", err.Error()),
			slog.Int64("venta_id", id))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrVentaNotFound); err != nil {
		return err
	}

	log.Info("venta deleted", slog.Int64("venta_id", id))
	return nil
}
