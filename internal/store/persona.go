package store

import (
	"context"
	"database/sql"

	"github.com/utn-progav/autos-api/internal/domain"
)

// PersonaStore defines the interface for persona data persistence.
type PersonaStore interface {
	List(ctx context.Context, skip, limit int) ([]*domain.Persona, error)

	// ListByPais returns the personas of a pais ordered by id.
	ListByPais(ctx context.Context, paisID int64) ([]*domain.Persona, error)

	Create(ctx context.Context, p *domain.Persona) error

	// GetByID returns ErrPersonaNotFound if the persona does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Persona, error)

	Update(ctx context.Context, p *domain.Persona) error

	Delete(ctx context.Context, id int64) error

	WithTx(tx *sql.Tx) PersonaStore
}
