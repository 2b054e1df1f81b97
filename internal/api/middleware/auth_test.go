package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/utn-progav/autos-api/internal/api/shared"
	"github.com/utn-progav/autos-api/internal/service/auth"
)

func TestAuthenticate(t *testing.T) {
	jwtService := &auth.MockJWTService{
		ValidateTokenFunc: func(ctx context.Context, token string) (*auth.Claims, error) {
			switch token {
			case "valid":
				return &auth.Claims{UserID: 42}, nil
			case "expired":
				return nil, auth.ErrExpiredToken
			case "early":
				return nil, auth.ErrTokenNotYetValid
			case "broken":
				return nil, errors.New("key lookup failed")
			default:
				return nil, auth.ErrInvalidToken
			}
		},
	}
	m := NewAuthMiddleware(jwtService)

	tests := []struct {
		name           string
		header         string
		expectedStatus int
		wantUserID     int64
	}{
		{name: "valid", header: "Bearer valid", expectedStatus: http.StatusOK, wantUserID: 42},
		{name: "missing header", header: "", expectedStatus: http.StatusUnauthorized},
		{name: "no token", header: "Bearer ", expectedStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Token valid", expectedStatus: http.StatusUnauthorized},
		{name: "expired", header: "Bearer expired", expectedStatus: http.StatusUnauthorized},
		{name: "not yet valid", header: "Bearer early", expectedStatus: http.StatusUnauthorized},
		{name: "invalid", header: "Bearer forged", expectedStatus: http.StatusUnauthorized},
		{name: "validation failure", header: "Bearer broken", expectedStatus: http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var gotUserID int64
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUserID, _ = shared.GetUserID(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/usuarios/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()

			m.Authenticate(next).ServeHTTP(rec, req)

			assert.Equal(t, tc.expectedStatus, rec.Code)
			assert.Equal(t, tc.wantUserID, gotUserID)
			if tc.expectedStatus == http.StatusUnauthorized {
				assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
			}
		})
	}
}
