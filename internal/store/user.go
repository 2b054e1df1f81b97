package store

import (
	"context"
	"database/sql"

	"github.com/utn-progav/autos-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create inserts u, setting its id and created_at.
	// Returns ErrUsernameExists if the username is taken.
	Create(ctx context.Context, u *domain.User) error

	// GetByID returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByUsername returns ErrUserNotFound if the user does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	WithTx(tx *sql.Tx) UserStore
}
