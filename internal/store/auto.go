package store

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"
	"github.com/utn-progav/autos-api/internal/domain"
)

// AutoFilter holds the optional search criteria for autos. Nil fields impose
// no constraint; set fields are combined with AND.
type AutoFilter struct {
	// Marca and Modelo match case-insensitively anywhere in the value.
	Marca  *string
	Modelo *string
	// Bounds are inclusive.
	AnioMin   *int
	AnioMax   *int
	PrecioMin *decimal.Decimal
	PrecioMax *decimal.Decimal
}

// AutoStore defines the interface for auto data persistence.
type AutoStore interface {
	// List returns up to limit autos ordered by id, skipping the first skip.
	List(ctx context.Context, skip, limit int) ([]*domain.Auto, error)

	// Search returns every auto matching f, ordered by id.
	Search(ctx context.Context, f AutoFilter) ([]*domain.Auto, error)

	// Create inserts a and sets a.ID to the assigned id.
	Create(ctx context.Context, a *domain.Auto) error

	// GetByID returns ErrAutoNotFound if the auto does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Auto, error)

	// GetByIDForShare is GetByID that also holds a share lock on the row
	// until the surrounding transaction ends, so its precio cannot change
	// underneath a venta being written.
	GetByIDForShare(ctx context.Context, id int64) (*domain.Auto, error)

	// Update overwrites every column of the auto with id a.ID.
	// Returns ErrAutoNotFound if the auto does not exist.
	Update(ctx context.Context, a *domain.Auto) error

	// Delete returns ErrAutoNotFound if the auto does not exist and
	// ErrAutoHasVentas if ventas still reference it.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a store bound to tx.
	WithTx(tx *sql.Tx) AutoStore
}
