package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/utn-progav/autos-api/internal/domain"
	"github.com/utn-progav/autos-api/internal/platform/logger"
	"github.com/utn-progav/autos-api/internal/store"
)

const userColumns = "id, username, email, is_active, hashed_password, created_at"

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
// Passwords arrive already hashed; the store never sees plaintext.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// WithTx implements store.UserStore.WithTx
func (s *PostgresUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &PostgresUserStore{db: tx, logger: s.logger}
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.IsActive, &u.HashedPassword, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create implements store.UserStore.Create
func (s *PostgresUserStore) Create(ctx context.Context, u *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := u.Validate(); err != nil {
		return err
	}

	err := s.db.QueryRowContext(ctx,
		`INSERT INTO usuario (username, email, is_active, hashed_password)
		 VALUES ($1, $2, $3, $4) RETURNING id, created_at`,
		u.Username, u.Email, u.IsActive, u.HashedPassword,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("username already taken", slog.String("username", u.Username))
			return MapUniqueViolation(err, store.ErrUsernameExists)
		}
		log.Error("failed to create user", slog.String("error", err.Error()))
		return MapError(err)
	}

	log.Info("user created", slog.Int64("user_id", u.ID))
	return nil
}

func (s *PostgresUserStore) getOne(ctx context.Context, where string, arg any) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	u, err := scanUser(s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM usuario WHERE "+where+" = $1", arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user",
			slog.String("error", err.Error()),
			slog.String("by", where))
		return nil, MapError(err)
	}
	return u, nil
}

// GetByID implements store.UserStore.GetByID
func (s *PostgresUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.getOne(ctx, "id", id)
}

// GetByUsername implements store.UserStore.GetByUsername
func (s *PostgresUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.getOne(ctx, "username", username)
}
