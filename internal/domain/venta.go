package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the ISO calendar date format accepted and emitted for fecha.
const DateLayout = "2006-01-02"

// totalPlaces is the number of decimal places totals are compared at.
const totalPlaces = 2

// MaxCantidad is the largest cantidad the INTEGER column holds.
const MaxCantidad = math.MaxInt32

// Venta is a sale of Cantidad units of one Auto.
type Venta struct {
	ID       int64           `json:"id"`
	Fecha    time.Time       `json:"fecha"`
	Cantidad int             `json:"cantidad"`
	Total    decimal.Decimal `json:"total"`
	AutoID   int64           `json:"auto_id"`
}

// ParseFecha parses an ISO YYYY-MM-DD date into a UTC midnight time.
func ParseFecha(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, NewValidationError("fecha", "must be a valid date in YYYY-MM-DD format")
	}
	return t, nil
}

// Validate checks the field rules of a Venta. It does not check the total
// against the auto price; see CheckTotal.
func (v *Venta) Validate() error {
	if v.Fecha.IsZero() {
		return NewValidationError("fecha", "is required")
	}
	if v.Cantidad <= 0 {
		return NewValidationError("cantidad", "must be greater than 0")
	}
	if v.Cantidad > MaxCantidad {
		return NewValidationError("cantidad", "is too large")
	}
	if !v.Total.IsPositive() {
		return NewValidationError("total", "must be greater than 0")
	}
	if v.AutoID <= 0 {
		return NewValidationError("auto_id", "is required")
	}
	return nil
}

// Replace overwrites every mutable field of v with the ones of src.
func (v *Venta) Replace(src *Venta) {
	v.Fecha = src.Fecha
	v.Cantidad = src.Cantidad
	v.Total = src.Total
	v.AutoID = src.AutoID
}

// ExpectedTotal returns precio*cantidad rounded to two decimal places.
func ExpectedTotal(precio decimal.Decimal, cantidad int) decimal.Decimal {
	return precio.Mul(decimal.NewFromInt(int64(cantidad))).Round(totalPlaces)
}

// CheckTotal verifies that total, rounded to two places, equals the auto's
// current precio times cantidad. A mismatch is reported, never corrected.
func CheckTotal(auto *Auto, cantidad int, total decimal.Decimal) error {
	expected := ExpectedTotal(auto.Precio, cantidad)
	given := total.Round(totalPlaces)
	if !given.Equal(expected) {
		return &TotalMismatchError{Expected: expected, Given: given}
	}
	return nil
}

// TotalMismatchError reports the total a venta should have had.
type TotalMismatchError struct {
	Expected decimal.Decimal
	Given    decimal.Decimal
}

func (e *TotalMismatchError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s",
		ErrTotalMismatch, FormatAmount(e.Expected), FormatAmount(e.Given))
}

// Is makes errors.Is(err, ErrTotalMismatch) succeed.
func (e *TotalMismatchError) Is(target error) bool {
	return target == ErrTotalMismatch
}

// FormatAmount renders an amount the way clients of the API have always
// seen it: shortest form, always with a fractional part ("40000.0", "19.99").
func FormatAmount(d decimal.Decimal) string {
	s := d.String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
