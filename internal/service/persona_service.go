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

// PersonaDetail is a persona together with its resolved pais, if any.
type PersonaDetail struct {
	Persona *domain.Persona
	Pais    *domain.Pais
}

// PersonaService provides the persona operations.
type PersonaService interface {
	List(ctx context.Context, skip, limit int) ([]*domain.Persona, error)
	// Create returns domain.ErrPaisReferenceMissing when PaisID does not resolve.
	Create(ctx context.Context, p *domain.Persona) (*domain.Persona, error)
	// Get returns the persona with its pais embedded.
	Get(ctx context.Context, id int64) (*PersonaDetail, error)
	Patch(ctx context.Context, id int64, patch domain.PersonaPatch) (*domain.Persona, error)
	Delete(ctx context.Context, id int64) error
}

type personaServiceImpl struct {
	tx       store.Transactor
	personas store.PersonaStore
	paises   store.PaisStore
	logger   *slog.Logger
}

// NewPersonaService creates a new PersonaService.
func NewPersonaService(
	tx store.Transactor,
	personas store.PersonaStore,
	paises store.PaisStore,
	logger *slog.Logger,
) (PersonaService, error) {
	if tx == nil {
		return nil, domain.NewValidationError("tx", "cannot be nil")
	}
	if personas == nil {
		return nil, domain.NewValidationError("personas", "cannot be nil")
	}
	if paises == nil {
		return nil, domain.NewValidationError("paises", "cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &personaServiceImpl{
		tx:       tx,
		personas: personas,
		paises:   paises,
		logger:   logger.With(slog.String("component", "persona_service")),
	}, nil
}

func (s *personaServiceImpl) fail(ctx context.Context, op string, err error) error {
	if isExpected(err) {
		return err
	}
	logger.FromContextOrDefault(ctx, s.logger).Error("persona operation failed",
		slog.String("operation", op),
		slog.String("error", err.Error()))
	return NewServiceError("persona", op, "unexpected error", err)
}

// resolvePais checks that a referenced pais exists.
func resolvePais(ctx context.Context, paises store.PaisStore, id *int64) (*domain.Pais, error) {
	if id == nil {
		return nil, nil
	}
	p, err := paises.GetByID(ctx, *id)
	if err != nil {
		if errors.Is(err, store.ErrPaisNotFound) {
			return nil, domain.ErrPaisReferenceMissing
		}
		return nil, err
	}
	return p, nil
}

func (s *personaServiceImpl) List(ctx context.Context, skip, limit int) ([]*domain.Persona, error) {
	var personas []*domain.Persona
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		personas, err = s.personas.WithTx(tx).List(ctx, skip, limit)
		return err
	})
	if err != nil {
		return nil, s.fail(ctx, "list", err)
	}
	return personas, nil
}

func (s *personaServiceImpl) Create(ctx context.Context, p *domain.Persona) (*domain.Persona, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := resolvePais(ctx, s.paises.WithTx(tx), p.PaisID); err != nil {
			return err
		}
		return s.personas.WithTx(tx).Create(ctx, p)
	})
	if err != nil {
		return nil, s.fail(ctx, "create", err)
	}
	return p, nil
}

func (s *personaServiceImpl) Get(ctx context.Context, id int64) (*PersonaDetail, error) {
	var detail PersonaDetail
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		p, err := s.personas.WithTx(tx).GetByID(ctx, id)
		if err != nil {
			return err
		}
		detail.Persona = p
		if p.PaisID != nil {
			pais, err := s.paises.WithTx(tx).GetByID(ctx, *p.PaisID)
			if err != nil {
				return err
			}
			detail.Pais = pais
		}
		return nil
	})
	if err != nil {
		return nil, s.fail(ctx, "get", err)
	}
	return &detail, nil
}

func (s *personaServiceImpl) Patch(ctx context.Context, id int64, patch domain.PersonaPatch) (*domain.Persona, error) {
	var p *domain.Persona
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		personas := s.personas.WithTx(tx)
		var err error
		p, err = personas.GetByID(ctx, id)
		if err != nil {
			return err
		}
		p.Apply(patch)
		if err := p.Validate(); err != nil {
			return err
		}
		if patch.PaisID != nil {
			if _, err := resolvePais(ctx, s.paises.WithTx(tx), p.PaisID); err != nil {
				return err
			}
		}
		return personas.Update(ctx, p)
	})
	if err != nil {
		return nil, s.fail(ctx, "patch", err)
	}
	return p, nil
}

func (s *personaServiceImpl) Delete(ctx context.Context, id int64) error {
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.personas.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		return s.fail(ctx, "delete", err)
	}
	return nil
}
