package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/utn-progav/autos-api/internal/domain"
	"github.com/utn-progav/autos-api/internal/platform/logger"
	"github.com/utn-progav/autos-api/internal/service/auth"
	"github.com/utn-progav/autos-api/internal/store"
)

// UserService provides registration and credential checks.
type UserService interface {
	// Register creates an active user, storing only the password hash.
	// Returns store.ErrUsernameExists when the username is taken.
	Register(ctx context.Context, username, email, password string) (*domain.User, error)

	// Authenticate returns the user owning the credentials, or
	// ErrInvalidCredentials.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)

	// GetUser retrieves a user by their ID
	GetUser(ctx context.Context, id int64) (*domain.User, error)
}

type userServiceImpl struct {
	tx       store.Transactor
	users    store.UserStore
	hasher   auth.PasswordHasher
	verifier auth.PasswordVerifier
	logger   *slog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(
	tx store.Transactor,
	users store.UserStore,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	logger *slog.Logger,
) (UserService, error) {
	if tx == nil {
		return nil, domain.NewValidationError("tx", "cannot be nil")
	}
	if users == nil {
		return nil, domain.NewValidationError("users", "cannot be nil")
	}
	if hasher == nil {
		return nil, domain.NewValidationError("hasher", "cannot be nil")
	}
	if verifier == nil {
		return nil, domain.NewValidationError("verifier", "cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &userServiceImpl{
		tx:       tx,
		users:    users,
		hasher:   hasher,
		verifier: verifier,
		logger:   logger.With(slog.String("component", "user_service")),
	}, nil
}

func (s *userServiceImpl) fail(ctx context.Context, op string, err error) error {
	if isExpected(err) || errors.Is(err, ErrInvalidCredentials) {
		return err
	}
	logger.FromContextOrDefault(ctx, s.logger).Error("user operation failed",
		slog.String("operation", op),
		slog.String("error", err.Error()))
	return NewServiceError("user", op, "unexpected error", err)
}

func (s *userServiceImpl) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := domain.ValidatePassword(password); err != nil {
		return nil, err
	}
	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, s.fail(ctx, "register", err)
	}
	user, err := domain.NewUser(username, email, hashed)
	if err != nil {
		return nil, err
	}

	err = s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.users.WithTx(tx).Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrUsernameExists) {
			log.Debug("attempted to register an existing username", slog.String("username", username))
		}
		return nil, s.fail(ctx, "register", err)
	}

	log.Info("user registered", slog.Int64("user_id", user.ID))
	return user, nil
}

func (s *userServiceImpl) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var user *domain.User
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		user, err = s.users.WithTx(tx).GetByUsername(ctx, username)
		return err
	})
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("authentication failed: unknown username")
			return nil, ErrInvalidCredentials
		}
		return nil, s.fail(ctx, "authenticate", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		log.Debug("authentication failed: password mismatch", slog.Int64("user_id", user.ID))
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		log.Debug("authentication failed: inactive user", slog.Int64("user_id", user.ID))
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *userServiceImpl) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	var user *domain.User
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		user, err = s.users.WithTx(tx).GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, s.fail(ctx, "get", err)
	}
	return user, nil
}
