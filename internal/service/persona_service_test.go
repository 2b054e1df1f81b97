package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/utn-progav/autos-api/internal/domain"
	"github.com/utn-progav/autos-api/internal/service"
	"github.com/utn-progav/autos-api/internal/store"
)

func int64Ptr(v int64) *int64 { return &v }

func TestPersonaService_CreateUnknownPais(t *testing.T) {
	personas := &MockPersonaStore{}
	paises := &MockPaisStore{}
	svc, err := service.NewPersonaService(&fakeTransactor{}, personas, paises, nil)
	require.NoError(t, err)

	paises.On("GetByID", mock.Anything, int64(42)).Return(nil, store.ErrPaisNotFound)

	_, err = svc.Create(context.Background(), &domain.Persona{
		Nombre: "Ana", Apellido: "Gómez", Edad: 30, PaisID: int64Ptr(42),
	})
	assert.ErrorIs(t, err, domain.ErrPaisReferenceMissing)
	personas.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPersonaService_CreateWithoutPais(t *testing.T) {
	personas := &MockPersonaStore{}
	paises := &MockPaisStore{}
	svc, err := service.NewPersonaService(&fakeTransactor{}, personas, paises, nil)
	require.NoError(t, err)

	personas.On("Create", mock.Anything, mock.AnythingOfType("*domain.Persona")).Return(nil)

	p, err := svc.Create(context.Background(), &domain.Persona{Nombre: "Ana", Apellido: "Gómez", Edad: 30})
	require.NoError(t, err)
	assert.Nil(t, p.PaisID)
	paises.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestPersonaService_GetEmbedsPais(t *testing.T) {
	personas := &MockPersonaStore{}
	paises := &MockPaisStore{}
	svc, err := service.NewPersonaService(&fakeTransactor{}, personas, paises, nil)
	require.NoError(t, err)

	personas.On("GetByID", mock.Anything, int64(1)).Return(&domain.Persona{
		ID: 1, Nombre: "Ana", Apellido: "Gómez", Edad: 30, PaisID: int64Ptr(2),
	}, nil)
	paises.On("GetByID", mock.Anything, int64(2)).Return(&domain.Pais{ID: 2, Nombre: "Argentina"}, nil)

	detail, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, detail.Pais)
	assert.Equal(t, "Argentina", detail.Pais.Nombre)
}

func TestPersonaService_PatchClearsPais(t *testing.T) {
	personas := &MockPersonaStore{}
	paises := &MockPaisStore{}
	svc, err := service.NewPersonaService(&fakeTransactor{}, personas, paises, nil)
	require.NoError(t, err)

	personas.On("GetByID", mock.Anything, int64(1)).Return(&domain.Persona{
		ID: 1, Nombre: "Ana", Apellido: "Gómez", Edad: 30, PaisID: int64Ptr(2),
	}, nil)
	personas.On("Update", mock.Anything, mock.MatchedBy(func(p *domain.Persona) bool {
		return p.PaisID == nil && p.Edad == 31
	})).Return(nil)

	edad := 31
	p, err := svc.Patch(context.Background(), 1, domain.PersonaPatch{Edad: &edad, ClearPais: true})
	require.NoError(t, err)
	assert.Nil(t, p.PaisID)
	paises.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestPersonaService_PatchInvalidEdad(t *testing.T) {
	personas := &MockPersonaStore{}
	svc, err := service.NewPersonaService(&fakeTransactor{}, personas, &MockPaisStore{}, nil)
	require.NoError(t, err)

	personas.On("GetByID", mock.Anything, int64(1)).Return(&domain.Persona{
		ID: 1, Nombre: "Ana", Apellido: "Gómez", Edad: 30,
	}, nil)

	edad := 200
	_, err = svc.Patch(context.Background(), 1, domain.PersonaPatch{Edad: &edad})
	assert.ErrorIs(t, err, domain.ErrValidation)
	personas.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestPaisService_CreateDuplicate(t *testing.T) {
	paises := &MockPaisStore{}
	svc, err := service.NewPaisService(&fakeTransactor{}, paises, &MockPersonaStore{}, nil)
	require.NoError(t, err)

	paises.On("Create", mock.Anything, mock.Anything).Return(store.ErrPaisNombreExists)

	_, err = svc.Create(context.Background(), &domain.Pais{Nombre: "Argentina"})
	assert.ErrorIs(t, err, store.ErrPaisNombreExists)
	assert.ErrorIs(t, err, store.ErrDuplicate)
}

func TestPaisService_PatchAndListPersonas(t *testing.T) {
	paises := &MockPaisStore{}
	personas := &MockPersonaStore{}
	svc, err := service.NewPaisService(&fakeTransactor{}, paises, personas, nil)
	require.NoError(t, err)

	paises.On("GetByID", mock.Anything, int64(2)).Return(&domain.Pais{ID: 2, Nombre: "Argentina"}, nil)
	paises.On("Update", mock.Anything, mock.MatchedBy(func(p *domain.Pais) bool {
		return p.Nombre == "Uruguay"
	})).Return(nil)
	personas.On("ListByPais", mock.Anything, int64(2)).Return([]*domain.Persona{{ID: 1}}, nil)

	nombre := "Uruguay"
	p, err := svc.Patch(context.Background(), 2, domain.PaisPatch{Nombre: &nombre})
	require.NoError(t, err)
	assert.Equal(t, "Uruguay", p.Nombre)

	list, err := svc.ListPersonas(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
