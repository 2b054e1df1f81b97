package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/utn-progav/autos-api/internal/domain"
	"github.com/utn-progav/autos-api/internal/platform/logger"
	"github.com/utn-progav/autos-api/internal/store"
)

// PaisService provides the pais operations.
type PaisService interface {
	List(ctx context.Context) ([]*domain.Pais, error)
	// Create returns store.ErrPaisNombreExists when the nombre is taken.
	Create(ctx context.Context, p *domain.Pais) (*domain.Pais, error)
	Get(ctx context.Context, id int64) (*domain.Pais, error)
	// Patch applies the set fields of patch to the pais.
	Patch(ctx context.Context, id int64, patch domain.PaisPatch) (*domain.Pais, error)
	// Delete removes the pais and detaches its personas.
	Delete(ctx context.Context, id int64) error
	// ListPersonas returns the personas of an existing pais.
	ListPersonas(ctx context.Context, id int64) ([]*domain.Persona, error)
}

type paisServiceImpl struct {
	tx       store.Transactor
	paises   store.PaisStore
	personas store.PersonaStore
	logger   *slog.Logger
}

// NewPaisService creates a new PaisService.
func NewPaisService(
	tx store.Transactor,
	paises store.PaisStore,
	personas store.PersonaStore,
	logger *slog.Logger,
) (PaisService, error) {
	if tx == nil {
		return nil, domain.NewValidationError("tx", "cannot be nil")
	}
	if paises == nil {
		return nil, domain.NewValidationError("paises", "cannot be nil")
	}
	if personas == nil {
		return nil, domain.NewValidationError("personas", "cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &paisServiceImpl{
		tx:       tx,
		paises:   paises,
		personas: personas,
		logger:   logger.With(slog.String("component", "pais_service")),
	}, nil
}

func (s *paisServiceImpl) fail(ctx context.Context, op string, err error) error {
	if isExpected(err) {
		return err
	}
	logger.FromContextOrDefault(ctx, s.logger).Error("pais operation failed",
		slog.String("operation", op),
		slog.String("error", err.Error()))
	return NewServiceError("pais", op, "unexpected error", err)
}

func (s *paisServiceImpl) List(ctx context.Context) ([]*domain.Pais, error) {
	var paises []*domain.Pais
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		paises, err = s.paises.WithTx(tx).List(ctx)
		return err
	})
	if err != nil {
		return nil, s.fail(ctx, "list", err)
	}
	return paises, nil
}

func (s *paisServiceImpl) Create(ctx context.Context, p *domain.Pais) (*domain.Pais, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.paises.WithTx(tx).Create(ctx, p)
	})
	if err != nil {
		return nil, s.fail(ctx, "create", err)
	}
	return p, nil
}

func (s *paisServiceImpl) Get(ctx context.Context, id int64) (*domain.Pais, error) {
	var p *domain.Pais
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		p, err = s.paises.WithTx(tx).GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, s.fail(ctx, "get", err)
	}
	return p, nil
}

func (s *paisServiceImpl) Patch(ctx context.Context, id int64, patch domain.PaisPatch) (*domain.Pais, error) {
	var p *domain.Pais
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		paises := s.paises.WithTx(tx)
		var err error
		p, err = paises.GetByID(ctx, id)
		if err != nil {
			return err
		}
		p.Apply(patch)
		if err := p.Validate(); err != nil {
			return err
		}
		return paises.Update(ctx, p)
	})
	if err != nil {
		return nil, s.fail(ctx, "patch", err)
	}
	return p, nil
}

func (s *paisServiceImpl) Delete(ctx context.Context, id int64) error {
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.paises.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		return s.fail(ctx, "delete", err)
	}
	return nil
}

func (s *paisServiceImpl) ListPersonas(ctx context.Context, id int64) ([]*domain.Persona, error) {
	var personas []*domain.Persona
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := s.paises.WithTx(tx).GetByID(ctx, id); err != nil {
			return err
		}
		var err error
		personas, err = s.personas.WithTx(tx).ListByPais(ctx, id)
		return err
	})
	if err != nil {
		return nil, s.fail(ctx, "list_personas", err)
	}
	return personas, nil
}
