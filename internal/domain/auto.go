package domain

import (
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Field limits for Auto.
const (
	MaxMarcaLength  = 50
	MaxModeloLength = 50
	// AnioFloor is exclusive: a 1900 model is rejected.
	AnioFloor = 1900
	AnioCeil  = 2030
)

// Auto is a car inventory record.
// Ventas referencing an auto are reached through a query on auto_id; the
// auto itself holds no back-reference.
type Auto struct {
	ID     int64           `json:"id"`
	Marca  string          `json:"marca"`
	Modelo string          `json:"modelo"`
	Anio   int             `json:"anio"`
	Precio decimal.Decimal `json:"precio"`
}

// NewAuto builds an Auto without an id and validates it.
func NewAuto(marca, modelo string, anio int, precio decimal.Decimal) (*Auto, error) {
	a := &Auto{
		Marca:  marca,
		Modelo: modelo,
		Anio:   anio,
		Precio: precio,
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Validate checks the field rules of an Auto and returns the first
// violation as a *ValidationError.
func (a *Auto) Validate() error {
	if err := validateLength("marca", a.Marca, 1, MaxMarcaLength); err != nil {
		return err
	}
	if err := validateLength("modelo", a.Modelo, 1, MaxModeloLength); err != nil {
		return err
	}
	if a.Anio <= AnioFloor || a.Anio > AnioCeil {
		return NewValidationError("anio", "must be greater than 1900 and at most 2030")
	}
	if !a.Precio.IsPositive() {
		return NewValidationError("precio", "must be greater than 0")
	}
	return nil
}

// Replace overwrites every mutable field of a with the ones of src.
func (a *Auto) Replace(src *Auto) {
	a.Marca = src.Marca
	a.Modelo = src.Modelo
	a.Anio = src.Anio
	a.Precio = src.Precio
}

// validateLength counts characters, not bytes.
func validateLength(field, value string, minLen, maxLen int) error {
	n := utf8.RuneCountInString(value)
	if n < minLen {
		return NewValidationError(field, "must not be empty")
	}
	if n > maxLen {
		return NewValidationError(field, "is too long")
	}
	return nil
}
