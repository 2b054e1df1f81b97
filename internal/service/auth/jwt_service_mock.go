package auth

import (
	"context"
)

// MockJWTService is a mock implementation of the JWTService interface for testing.
type MockJWTService struct {
	GenerateTokenFunc func(ctx context.Context, userID int64) (string, error)
	ValidateTokenFunc func(ctx context.Context, tokenString string) (*Claims, error)

	// Fixed fields for simple cases
	Token           string
	TokenError      error
	ValidationError error
	Claims          *Claims
}

var _ JWTService = (*MockJWTService)(nil)

// GenerateToken implements JWTService.
func (m *MockJWTService) GenerateToken(ctx context.Context, userID int64) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(ctx, userID)
	}
	return m.Token, m.TokenError
}

// ValidateToken implements JWTService.
func (m *MockJWTService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	if m.ValidateTokenFunc != nil {
		return m.ValidateTokenFunc(ctx, tokenString)
	}
	if m.ValidationError != nil {
		return nil, m.ValidationError
	}
	return m.Claims, nil
}
