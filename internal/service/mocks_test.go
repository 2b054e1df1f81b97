package service_test

import (
	"context"
	"database/sql"

	"github.com/stretchr/testify/mock"
	"github.com/utn-progav/autos-api/internal/domain"
	"github.com/utn-progav/autos-api/internal/store"
)

// fakeTransactor runs fn directly, without a real transaction.
type fakeTransactor struct {
	calls int
}

func (f *fakeTransactor) RunInTransaction(ctx context.Context, fn store.TxFn) error {
	f.calls++
	return fn(ctx, nil)
}

// MockAutoStore mocks store.AutoStore
type MockAutoStore struct {
	mock.Mock
}

func (m *MockAutoStore) List(ctx context.Context, skip, limit int) ([]*domain.Auto, error) {
	args := m.Called(ctx, skip, limit)
	return args.Get(0).([]*domain.Auto), args.Error(1)
}

func (m *MockAutoStore) Search(ctx context.Context, f store.AutoFilter) ([]*domain.Auto, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]*domain.Auto), args.Error(1)
}

func (m *MockAutoStore) Create(ctx context.Context, a *domain.Auto) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAutoStore) GetByID(ctx context.Context, id int64) (*domain.Auto, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Auto), args.Error(1)
}

func (m *MockAutoStore) GetByIDForShare(ctx context.Context, id int64) (*domain.Auto, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Auto), args.Error(1)
}

func (m *MockAutoStore) Update(ctx context.Context, a *domain.Auto) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAutoStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAutoStore) WithTx(*sql.Tx) store.AutoStore {
	return m
}

// MockVentaStore mocks store.VentaStore
type MockVentaStore struct {
	mock.Mock
}

func (m *MockVentaStore) List(ctx context.Context) ([]*domain.Venta, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*domain.Venta), args.Error(1)
}

func (m *MockVentaStore) ListByAuto(ctx context.Context, autoID int64) ([]*domain.Venta, error) {
	args := m.Called(ctx, autoID)
	return args.Get(0).([]*domain.Venta), args.Error(1)
}

func (m *MockVentaStore) Create(ctx context.Context, v *domain.Venta) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVentaStore) GetByID(ctx context.Context, id int64) (*domain.Venta, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Venta), args.Error(1)
}

func (m *MockVentaStore) Update(ctx context.Context, v *domain.Venta) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVentaStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVentaStore) WithTx(*sql.Tx) store.VentaStore {
	return m
}

// MockPaisStore mocks store.PaisStore
type MockPaisStore struct {
	mock.Mock
}

func (m *MockPaisStore) List(ctx context.Context) ([]*domain.Pais, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*domain.Pais), args.Error(1)
}

func (m *MockPaisStore) Create(ctx context.Context, p *domain.Pais) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPaisStore) GetByID(ctx context.Context, id int64) (*domain.Pais, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pais), args.Error(1)
}

func (m *MockPaisStore) Update(ctx context.Context, p *domain.Pais) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPaisStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPaisStore) WithTx(*sql.Tx) store.PaisStore {
	return m
}

// MockPersonaStore mocks store.PersonaStore
type MockPersonaStore struct {
	mock.Mock
}

func (m *MockPersonaStore) List(ctx context.Context, skip, limit int) ([]*domain.Persona, error) {
	args := m.Called(ctx, skip, limit)
	return args.Get(0).([]*domain.Persona), args.Error(1)
}

func (m *MockPersonaStore) ListByPais(ctx context.Context, paisID int64) ([]*domain.Persona, error) {
	args := m.Called(ctx, paisID)
	return args.Get(0).([]*domain.Persona), args.Error(1)
}

func (m *MockPersonaStore) Create(ctx context.Context, p *domain.Persona) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPersonaStore) GetByID(ctx context.Context, id int64) (*domain.Persona, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Persona), args.Error(1)
}

func (m *MockPersonaStore) Update(ctx context.Context, p *domain.Persona) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPersonaStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPersonaStore) WithTx(*sql.Tx) store.PersonaStore {
	return m
}

// MockUserStore mocks store.UserStore
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserStore) WithTx(*sql.Tx) store.UserStore {
	return m
}
