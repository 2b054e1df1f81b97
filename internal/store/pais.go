package store

import (
	"context"
	"database/sql"

	"github.com/utn-progav/autos-api/internal/domain"
)

// PaisStore defines the interface for pais data persistence.
type PaisStore interface {
	List(ctx context.Context) ([]*domain.Pais, error)

	// Create returns ErrPaisNombreExists when the nombre is taken.
	Create(ctx context.Context, p *domain.Pais) error

	GetByID(ctx context.Context, id int64) (*domain.Pais, error)

	// Update returns ErrPaisNombreExists when the nombre is taken.
	Update(ctx context.Context, p *domain.Pais) error

	// Delete removes the pais; personas referencing it keep existing with
	// no pais.
	Delete(ctx context.Context, id int64) error

	WithTx(tx *sql.Tx) PaisStore
}
