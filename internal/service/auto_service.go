package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/utn-progav/autos-api/internal/domain"
	"github.com/utn-progav/autos-api/internal/platform/logger"
	"github.com/utn-progav/autos-api/internal/store"
)

// AutoService provides the auto inventory operations.
type AutoService interface {
	// List returns a page of autos ordered by id.
	List(ctx context.Context, skip, limit int) ([]*domain.Auto, error)

	// Search returns every auto matching all set criteria of f.
	Search(ctx context.Context, f store.AutoFilter) ([]*domain.Auto, error)

	Create(ctx context.Context, a *domain.Auto) (*domain.Auto, error)

	// Get returns store.ErrAutoNotFound when the auto does not exist.
	Get(ctx context.Context, id int64) (*domain.Auto, error)

	// Update replaces every field of the auto with those of a.
	Update(ctx context.Context, id int64, a *domain.Auto) (*domain.Auto, error)

	// Delete returns store.ErrAutoHasVentas while ventas reference the auto.
	Delete(ctx context.Context, id int64) error

	// ListVentas returns the ventas of an existing auto.
	ListVentas(ctx context.Context, id int64) ([]*domain.Venta, error)
}

type autoServiceImpl struct {
	tx     store.Transactor
	autos  store.AutoStore
	ventas store.VentaStore
	logger *slog.Logger
}

// NewAutoService creates a new AutoService.
// It returns an error if any of the required dependencies are nil.
func NewAutoService(
	tx store.Transactor,
	autos store.AutoStore,
	ventas store.VentaStore,
	logger *slog.Logger,
) (AutoService, error) {
	if tx == nil {
		return nil, domain.NewValidationError("tx", "cannot be nil")
	}
	if autos == nil {
		return nil, domain.NewValidationError("autos", "cannot be nil")
	}
	if ventas == nil {
		return nil, domain.NewValidationError("ventas", "cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &autoServiceImpl{
		tx:     tx,
		autos:  autos,
		ventas: ventas,
		logger: logger.With(slog.String("component", "auto_service")),
	}, nil
}

// isExpected reports errors that are part of an operation's contract and are
// returned to the caller unwrapped.
func isExpected(err error) bool {
	var mismatch *domain.TotalMismatchError
	return errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, store.ErrNotFound) ||
		errors.Is(err, store.ErrDuplicate) ||
		errors.Is(err, store.ErrHasDependents) ||
		errors.Is(err, domain.ErrAutoReferenceMissing) ||
		errors.Is(err, domain.ErrPaisReferenceMissing) ||
		errors.As(err, &mismatch)
}

func (s *autoServiceImpl) fail(ctx context.Context, op string, err error) error {
	if isExpected(err) {
		return err
	}
	logger.FromContextOrDefault(ctx, s.logger).Error("auto operation failed",
		slog.String("operation", op),
		slog.String("error", err.Error()))
	return NewServiceError("auto", op, "unexpected error", err)
}

func (s *autoServiceImpl) List(ctx context.Context, skip, limit int) ([]*domain.Auto, error) {
	var autos []*domain.Auto
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		autos, err = s.autos.WithTx(tx).List(ctx, skip, limit)
		return err
	})
	if err != nil {
		return nil, s.fail(ctx, "list", err)
	}
	return autos, nil
}

func (s *autoServiceImpl) Search(ctx context.Context, f store.AutoFilter) ([]*domain.Auto, error) {
	var autos []*domain.Auto
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		autos, err = s.autos.WithTx(tx).Search(ctx, f)
		return err
	})
	if err != nil {
		return nil, s.fail(ctx, "search", err)
	}
	return autos, nil
}

func (s *autoServiceImpl) Create(ctx context.Context, a *domain.Auto) (*domain.Auto, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.autos.WithTx(tx).Create(ctx, a)
	})
	if err != nil {
		return nil, s.fail(ctx, "create", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("auto created",
		slog.Int64("auto_id", a.ID),
		slog.String("marca", a.Marca))
	return a, nil
}

func (s *autoServiceImpl) Get(ctx context.Context, id int64) (*domain.Auto, error) {
	var a *domain.Auto
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		a, err = s.autos.WithTx(tx).GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, s.fail(ctx, "get", err)
	}
	return a, nil
}

func (s *autoServiceImpl) Update(ctx context.Context, id int64, a *domain.Auto) (*domain.Auto, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.Auto
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		autos := s.autos.WithTx(tx)
		current, err := autos.GetByID(ctx, id)
		if err != nil {
			return err
		}
		current.Replace(a)
		if err := autos.Update(ctx, current); err != nil {
			return err
		}
		updated = current
		return nil
	})
	if err != nil {
		return nil, s.fail(ctx, "update", err)
	}
	return updated, nil
}

func (s *autoServiceImpl) Delete(ctx context.Context, id int64) error {
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.autos.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		return s.fail(ctx, "delete", err)
	}
	return nil
}

func (s *autoServiceImpl) ListVentas(ctx context.Context, id int64) ([]*domain.Venta, error) {
	var ventas []*domain.Venta
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := s.autos.WithTx(tx).GetByID(ctx, id); err != nil {
			return err
		}
		var err error
		ventas, err = s.ventas.WithTx(tx).ListByAuto(ctx, id)
		return err
	})
	if err != nil {
		return nil, s.fail(ctx, "list_ventas", err)
	}
	return ventas, nil
}
