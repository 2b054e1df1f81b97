package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/utn-progav/autos-api/internal/api/shared"
	"github.com/utn-progav/autos-api/internal/service/auth"
)

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// Authenticate validates the bearer token of the Authorization header and
// adds the user id to the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := bearerToken(r)
		if err != nil {
			unauthorized(w, r, "No autenticado", err)
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				unauthorized(w, r, "Token expirado", err)
			case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrTokenNotYetValid):
				unauthorized(w, r, "Token inválido", err)
			default:
				shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
					"Error de autenticación", err)
			}
			return
		}

		ctx := shared.SetUserID(r.Context(), claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerToken extracts the token of an "Authorization: Bearer <token>" header.
// The scheme is matched case-insensitively.
func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", auth.ErrMissingToken
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", auth.ErrInvalidToken
	}
	return strings.TrimSpace(token), nil
}

func unauthorized(w http.ResponseWriter, r *http.Request, message string, err error) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, message, err,
		shared.WithElevatedLogLevel())
}
