package store

import (
	"context"
	"database/sql"

	"github.com/utn-progav/autos-api/internal/domain"
)

// VentaStore defines the interface for venta data persistence.
type VentaStore interface {
	// List returns every venta ordered by id.
	List(ctx context.Context) ([]*domain.Venta, error)

	// ListByAuto returns the ventas referencing autoID ordered by id.
	ListByAuto(ctx context.Context, autoID int64) ([]*domain.Venta, error)

	// Create inserts v and sets v.ID to the assigned id.
	Create(ctx context.Context, v *domain.Venta) error

	// GetByID returns ErrVentaNotFound if the venta does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Venta, error)

	// Update overwrites every column of the venta with id v.ID.
	Update(ctx context.Context, v *domain.Venta) error

	// Delete returns ErrVentaNotFound if the venta does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a store bound to tx.
	WithTx(tx *sql.Tx) VentaStore
}
