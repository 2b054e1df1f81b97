package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/utn-progav/autos-api/internal/api/shared"
	"github.com/utn-progav/autos-api/internal/domain"
	"github.com/utn-progav/autos-api/internal/store"
)

// Pagination defaults for list endpoints.
const (
	DefaultLimit = 100
	MaxLimit     = 200
)

// getPathID extracts a positive integer id from the URL path parameters.
func getPathID(r *http.Request, paramName string) (int64, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, domain.NewValidationError(paramName, "is required")
	}

	id, err := strconv.ParseInt(pathParam, 10, 64)
	if err != nil {
		return 0, domain.NewValidationError(paramName, "must be an integer")
	}
	if id <= 0 {
		return 0, domain.NewValidationError(paramName, "must be greater than 0")
	}
	return id, nil
}

// PageParams are the skip/limit query parameters of list endpoints.
type PageParams struct {
	Skip  int `json:"skip"  validate:"gte=0"`
	Limit int `json:"limit" validate:"gte=0,lte=200"`
}

// parsePage reads skip and limit, applying the defaults for absent values.
func parsePage(r *http.Request) (PageParams, error) {
	q := r.URL.Query()
	p := PageParams{Skip: 0, Limit: DefaultLimit}

	var err error
	if p.Skip, err = queryInt(q, "skip", p.Skip); err != nil {
		return PageParams{}, err
	}
	if p.Limit, err = queryInt(q, "limit", p.Limit); err != nil {
		return PageParams{}, err
	}
	if err := shared.ValidateRequest(&p); err != nil {
		return PageParams{}, err
	}
	return p, nil
}

// AutoSearchParams are the query parameters of GET /autos/buscar.
type AutoSearchParams struct {
	Marca     *string          `json:"marca"`
	Modelo    *string          `json:"modelo"`
	AnioMin   *int             `json:"anio_min"   validate:"omitempty,gte=1900"`
	AnioMax   *int             `json:"anio_max"   validate:"omitempty,lte=2030"`
	PrecioMin *decimal.Decimal `json:"precio_min" validate:"omitempty,gte=0"`
	PrecioMax *decimal.Decimal `json:"precio_max" validate:"omitempty,gte=0"`
}

// Filter converts the parameters into a store filter.
func (p AutoSearchParams) Filter() store.AutoFilter {
	return store.AutoFilter{
		Marca:     p.Marca,
		Modelo:    p.Modelo,
		AnioMin:   p.AnioMin,
		AnioMax:   p.AnioMax,
		PrecioMin: p.PrecioMin,
		PrecioMax: p.PrecioMax,
	}
}

// parseAutoSearch reads the search filters. Absent or blank parameters impose
// no constraint.
func parseAutoSearch(r *http.Request) (AutoSearchParams, error) {
	q := r.URL.Query()
	var p AutoSearchParams

	p.Marca = queryString(q, "marca")
	p.Modelo = queryString(q, "modelo")

	var err error
	if p.AnioMin, err = queryIntPtr(q, "anio_min"); err != nil {
		return p, err
	}
	if p.AnioMax, err = queryIntPtr(q, "anio_max"); err != nil {
		return p, err
	}
	if p.PrecioMin, err = queryDecimalPtr(q, "precio_min"); err != nil {
		return p, err
	}
	if p.PrecioMax, err = queryDecimalPtr(q, "precio_max"); err != nil {
		return p, err
	}
	if err := shared.ValidateRequest(&p); err != nil {
		return p, err
	}
	return p, nil
}

// queryString returns the raw value of name. Only an empty value is absent;
// whitespace is part of a search term.
func queryString(q url.Values, name string) *string {
	v := q.Get(name)
	if v == "" {
		return nil
	}
	return &v
}

func queryInt(q url.Values, name string, fallback int) (int, error) {
	v := strings.TrimSpace(q.Get(name))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, domain.NewValidationError(name, "must be an integer")
	}
	return n, nil
}

func queryIntPtr(q url.Values, name string) (*int, error) {
	if strings.TrimSpace(q.Get(name)) == "" {
		return nil, nil
	}
	n, err := queryInt(q, name, 0)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func queryDecimalPtr(q url.Values, name string) (*decimal.Decimal, error) {
	v := strings.TrimSpace(q.Get(name))
	if v == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return nil, domain.NewValidationError(name, "must be a number")
	}
	return &d, nil
}

// decodeBody decodes and validates a JSON request body. Malformed bodies are
// reported as validation errors on "body".
func decodeBody(r *http.Request, v interface{}) error {
	if err := shared.DecodeJSON(r, v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return domain.NewValidationError(typeErr.Field, "has an invalid type")
		}
		return domain.NewValidationError("body", "must be a valid JSON object")
	}
	return shared.ValidateRequest(v)
}
