package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"github.com/utn-progav/autos-api/internal/api/shared"
	"github.com/utn-progav/autos-api/internal/domain"
	"github.com/utn-progav/autos-api/internal/service"
	"github.com/utn-progav/autos-api/internal/store"
)

// mockAutoService is a mock implementation of the AutoService interface
type mockAutoService struct {
	listFn       func(ctx context.Context, skip, limit int) ([]*domain.Auto, error)
	searchFn     func(ctx context.Context, f store.AutoFilter) ([]*domain.Auto, error)
	createFn     func(ctx context.Context, a *domain.Auto) (*domain.Auto, error)
	getFn        func(ctx context.Context, id int64) (*domain.Auto, error)
	updateFn     func(ctx context.Context, id int64, a *domain.Auto) (*domain.Auto, error)
	deleteFn     func(ctx context.Context, id int64) error
	listVentasFn func(ctx context.Context, id int64) ([]*domain.Venta, error)
}

func (m *mockAutoService) List(ctx context.Context, skip, limit int) ([]*domain.Auto, error) {
	return m.listFn(ctx, skip, limit)
}

func (m *mockAutoService) Search(ctx context.Context, f store.AutoFilter) ([]*domain.Auto, error) {
	return m.searchFn(ctx, f)
}

func (m *mockAutoService) Create(ctx context.Context, a *domain.Auto) (*domain.Auto, error) {
	return m.createFn(ctx, a)
}

func (m *mockAutoService) Get(ctx context.Context, id int64) (*domain.Auto, error) {
	return m.getFn(ctx, id)
}

func (m *mockAutoService) Update(ctx context.Context, id int64, a *domain.Auto) (*domain.Auto, error) {
	return m.updateFn(ctx, id, a)
}

func (m *mockAutoService) Delete(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

func (m *mockAutoService) ListVentas(ctx context.Context, id int64) ([]*domain.Venta, error) {
	return m.listVentasFn(ctx, id)
}

// mockVentaService is a mock implementation of the VentaService interface
type mockVentaService struct {
	listFn   func(ctx context.Context) ([]*domain.Venta, error)
	createFn func(ctx context.Context, v *domain.Venta) (*domain.Venta, error)
	getFn    func(ctx context.Context, id int64) (*domain.Venta, error)
	updateFn func(ctx context.Context, id int64, v *domain.Venta) (*domain.Venta, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (m *mockVentaService) List(ctx context.Context) ([]*domain.Venta, error) {
	return m.listFn(ctx)
}

func (m *mockVentaService) Create(ctx context.Context, v *domain.Venta) (*domain.Venta, error) {
	return m.createFn(ctx, v)
}

func (m *mockVentaService) Get(ctx context.Context, id int64) (*domain.Venta, error) {
	return m.getFn(ctx, id)
}

func (m *mockVentaService) Update(ctx context.Context, id int64, v *domain.Venta) (*domain.Venta, error) {
	return m.updateFn(ctx, id, v)
}

func (m *mockVentaService) Delete(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

// mockPaisService is a mock implementation of the PaisService interface
type mockPaisService struct {
	listFn         func(ctx context.Context) ([]*domain.Pais, error)
	createFn       func(ctx context.Context, p *domain.Pais) (*domain.Pais, error)
	getFn          func(ctx context.Context, id int64) (*domain.Pais, error)
	patchFn        func(ctx context.Context, id int64, patch domain.PaisPatch) (*domain.Pais, error)
	deleteFn       func(ctx context.Context, id int64) error
	listPersonasFn func(ctx context.Context, id int64) ([]*domain.Persona, error)
}

func (m *mockPaisService) List(ctx context.Context) ([]*domain.Pais, error) {
	return m.listFn(ctx)
}

func (m *mockPaisService) Create(ctx context.Context, p *domain.Pais) (*domain.Pais, error) {
	return m.createFn(ctx, p)
}

func (m *mockPaisService) Get(ctx context.Context, id int64) (*domain.Pais, error) {
	return m.getFn(ctx, id)
}

func (m *mockPaisService) Patch(ctx context.Context, id int64, patch domain.PaisPatch) (*domain.Pais, error) {
	return m.patchFn(ctx, id, patch)
}

func (m *mockPaisService) Delete(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

func (m *mockPaisService) ListPersonas(ctx context.Context, id int64) ([]*domain.Persona, error) {
	return m.listPersonasFn(ctx, id)
}

// mockPersonaService is a mock implementation of the PersonaService interface
type mockPersonaService struct {
	listFn   func(ctx context.Context, skip, limit int) ([]*domain.Persona, error)
	createFn func(ctx context.Context, p *domain.Persona) (*domain.Persona, error)
	getFn    func(ctx context.Context, id int64) (*service.PersonaDetail, error)
	patchFn  func(ctx context.Context, id int64, patch domain.PersonaPatch) (*domain.Persona, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (m *mockPersonaService) List(ctx context.Context, skip, limit int) ([]*domain.Persona, error) {
	return m.listFn(ctx, skip, limit)
}

func (m *mockPersonaService) Create(ctx context.Context, p *domain.Persona) (*domain.Persona, error) {
	return m.createFn(ctx, p)
}

func (m *mockPersonaService) Get(ctx context.Context, id int64) (*service.PersonaDetail, error) {
	return m.getFn(ctx, id)
}

func (m *mockPersonaService) Patch(ctx context.Context, id int64, patch domain.PersonaPatch) (*domain.Persona, error) {
	return m.patchFn(ctx, id, patch)
}

func (m *mockPersonaService) Delete(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

// mockUserService is a mock implementation of the UserService interface
type mockUserService struct {
	registerFn     func(ctx context.Context, username, email, password string) (*domain.User, error)
	authenticateFn func(ctx context.Context, username, password string) (*domain.User, error)
	getUserFn      func(ctx context.Context, id int64) (*domain.User, error)
}

func (m *mockUserService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	return m.registerFn(ctx, username, email, password)
}

func (m *mockUserService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	return m.authenticateFn(ctx, username, password)
}

func (m *mockUserService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return m.getUserFn(ctx, id)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// serve routes a single request through a chi router so URL params resolve.
func serve(t *testing.T, method, pattern, target string, body string, h http.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()

	r := chi.NewRouter()
	r.MethodFunc(method, pattern, h)

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()
	var resp shared.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp), "error body should be JSON")
	return resp
}

func ptr[T any](v T) *T {
	return &v
}
