package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/utn-progav/autos-api/internal/api/shared"
	"github.com/utn-progav/autos-api/internal/domain"
	"github.com/utn-progav/autos-api/internal/service"
	"github.com/utn-progav/autos-api/internal/service/auth"
	"github.com/utn-progav/autos-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var mismatch *domain.TotalMismatchError
	var fieldErrs validator.ValidationErrors

	switch {
	// Authentication errors
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	// Field validation errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity),
		errors.As(err, &fieldErrs):
		return http.StatusUnprocessableEntity

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Unresolvable references and inconsistent totals
	case errors.Is(err, domain.ErrAutoReferenceMissing),
		errors.Is(err, domain.ErrPaisReferenceMissing),
		errors.As(err, &mismatch):
		return http.StatusBadRequest

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate),
		errors.Is(err, store.ErrHasDependents):
		return http.StatusConflict

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "Error inesperado"
	}

	var mismatch *domain.TotalMismatchError
	var fieldErrs validator.ValidationErrors

	switch {
	case errors.As(err, &mismatch):
		return fmt.Sprintf("Total inconsistente. Debería ser %s (= precio*cantidad)",
			domain.FormatAmount(mismatch.Expected))

	case errors.Is(err, domain.ErrAutoReferenceMissing):
		return "El auto_id no existe"
	case errors.Is(err, domain.ErrPaisReferenceMissing):
		return "El pais_id no existe"

	// Authentication errors
	case errors.Is(err, service.ErrInvalidCredentials):
		return "Usuario o contraseña incorrectos"
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expirado"
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrTokenNotYetValid):
		return "Token inválido"
	case errors.Is(err, auth.ErrMissingToken):
		return "No autenticado"

	// Validation errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity),
		errors.As(err, &fieldErrs):
		return "Datos de entrada inválidos"

	// Not found errors
	case errors.Is(err, store.ErrAutoNotFound):
		return "Auto no encontrado"
	case errors.Is(err, store.ErrVentaNotFound):
		return "Venta no encontrada"
	case errors.Is(err, store.ErrPersonaNotFound):
		return "Persona no encontrada"
	case errors.Is(err, store.ErrPaisNotFound):
		return "Pais no encontrado"
	case errors.Is(err, store.ErrUserNotFound):
		return "Usuario no encontrado"
	case errors.Is(err, store.ErrNotFound):
		return "Recurso no encontrado"

	// Conflict errors
	case errors.Is(err, store.ErrAutoHasVentas):
		return "El auto tiene ventas asociadas"
	case errors.Is(err, store.ErrPaisNombreExists):
		return "Ya existe un pais con ese nombre"
	case errors.Is(err, store.ErrUsernameExists):
		return "El nombre de usuario ya existe"
	case errors.Is(err, store.ErrDuplicate):
		return "El recurso ya existe"

	default:
		return "Error interno del servidor"
	}
}

// ValidationDetails lists the rejected fields of a validation error, or nil
// when err carries no field information.
func ValidationDetails(err error) []shared.FieldError {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		details := make([]shared.FieldError, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			details = append(details, shared.FieldError{
				Field:   fe.Field(),
				Message: getValidationTagMessage(fe),
			})
		}
		return details
	}

	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return []shared.FieldError{{Field: vErr.Field, Message: vErr.Message}}
	}
	return nil
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters long"
	case "max":
		return "must be at most " + fe.Param() + " characters long"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lt":
		return "must be less than " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	default:
		return "is invalid"
	}
}

// HandleAPIError writes the response for err: status and message come from
// MapErrorToStatusCode and GetSafeErrorMessage, 422s carry field details.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)

	var opts []shared.ResponseOption
	switch status {
	case http.StatusUnprocessableEntity:
		opts = append(opts, shared.WithDetails(ValidationDetails(err)))
	case http.StatusUnauthorized:
		w.Header().Set("WWW-Authenticate", "Bearer")
		opts = append(opts, shared.WithElevatedLogLevel())
	}

	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}
