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

// VentaService provides the sales operations. Every write checks the total
// against the current price of the referenced auto.
type VentaService interface {
	List(ctx context.Context) ([]*domain.Venta, error)

	// Create returns domain.ErrAutoReferenceMissing when v.AutoID does not
	// resolve and a *domain.TotalMismatchError when the total is inconsistent.
	Create(ctx context.Context, v *domain.Venta) (*domain.Venta, error)

	// Get returns store.ErrVentaNotFound when the venta does not exist.
	Get(ctx context.Context, id int64) (*domain.Venta, error)

	// Update replaces every field of the venta, re-checking the total even
	// when the auto is unchanged.
	Update(ctx context.Context, id int64, v *domain.Venta) (*domain.Venta, error)

	Delete(ctx context.Context, id int64) error
}

type ventaServiceImpl struct {
	tx     store.Transactor
	autos  store.AutoStore
	ventas store.VentaStore
	logger *slog.Logger
}

// NewVentaService creates a new VentaService.
// It returns an error if any of the required dependencies are nil.
func NewVentaService(
	tx store.Transactor,
	autos store.AutoStore,
	ventas store.VentaStore,
	logger *slog.Logger,
) (VentaService, error) {
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

	return &ventaServiceImpl{
		tx:     tx,
		autos:  autos,
		ventas: ventas,
		logger: logger.With(slog.String("component", "venta_service")),
	}, nil
}

func (s *ventaServiceImpl) fail(ctx context.Context, op string, err error) error {
	if isExpected(err) {
		return err
	}
	logger.FromContextOrDefault(ctx, s.logger).Error("venta operation failed",
		slog.String("operation", op),
		slog.String("error", err.Error()))
	return NewServiceError("venta", op, "unexpected error", err)
}

// checkAgainstAuto resolves the referenced auto with a share lock, so its
// precio stays fixed until the transaction ends, and checks the total.
func checkAgainstAuto(ctx context.Context, autos store.AutoStore, v *domain.Venta) error {
	auto, err := autos.GetByIDForShare(ctx, v.AutoID)
	if err != nil {
		if errors.Is(err, store.ErrAutoNotFound) {
			return domain.ErrAutoReferenceMissing
		}
		return err
	}
	return domain.CheckTotal(auto, v.Cantidad, v.Total)
}

func (s *ventaServiceImpl) List(ctx context.Context) ([]*domain.Venta, error) {
	var ventas []*domain.Venta
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		ventas, err = s.ventas.WithTx(tx).List(ctx)
		return err
	})
	if err != nil {
		return nil, s.fail(ctx, "list", err)
	}
	return ventas, nil
}

func (s *ventaServiceImpl) Create(ctx context.Context, v *domain.Venta) (*domain.Venta, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}

	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := checkAgainstAuto(ctx, s.autos.WithTx(tx), v); err != nil {
			return err
		}
		return s.ventas.WithTx(tx).Create(ctx, v)
	})
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Debug("venta rejected",
			slog.Int64("auto_id", v.AutoID),
			slog.String("error", err.Error()))
		return nil, s.fail(ctx, "create", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("venta created",
		slog.Int64("venta_id", v.ID),
		slog.Int64("auto_id", v.AutoID),
		slog.String("total", v.Total.StringFixed(2)))
	return v, nil
}

func (s *ventaServiceImpl) Get(ctx context.Context, id int64) (*domain.Venta, error) {
	var v *domain.Venta
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		v, err = s.ventas.WithTx(tx).GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, s.fail(ctx, "get", err)
	}
	return v, nil
}

func (s *ventaServiceImpl) Update(ctx context.Context, id int64, v *domain.Venta) (*domain.Venta, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.Venta
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		ventas := s.ventas.WithTx(tx)
		current, err := ventas.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := checkAgainstAuto(ctx, s.autos.WithTx(tx), v); err != nil {
			return err
		}
		current.Replace(v)
		if err := ventas.Update(ctx, current); err != nil {
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

func (s *ventaServiceImpl) Delete(ctx context.Context, id int64) error {
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.ventas.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		return s.fail(ctx, "delete", err)
	}
	return nil
}
