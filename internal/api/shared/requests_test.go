package shared

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type priced struct {
	Name   string          `json:"name"   validate:"required"`
	Precio decimal.Decimal `json:"precio" validate:"gt=0"`
}

func TestValidateRequest_DecimalAndJSONNames(t *testing.T) {
	err := ValidateRequest(&priced{Name: "x", Precio: decimal.RequireFromString("-0.01")})

	var fieldErrs validator.ValidationErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "precio", fieldErrs[0].Field())
	assert.Equal(t, "gt", fieldErrs[0].Tag())

	assert.NoError(t, ValidateRequest(&priced{Name: "x", Precio: decimal.RequireFromString("0.01")}))
}

func TestDecodeJSON(t *testing.T) {
	var p priced
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a","precio":"12.50"}`))
	require.NoError(t, DecodeJSON(req, &p))
	assert.True(t, p.Precio.Equal(decimal.RequireFromString("12.5")))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	assert.ErrorIs(t, DecodeJSON(req, &p), ErrEmptyBody)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{"))
	assert.Error(t, DecodeJSON(req, &p))
}
