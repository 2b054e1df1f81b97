package domain

import (
	"errors"
	"fmt"
	"net/mail"
	"time"
)

// User field limits.
const (
	MaxUsernameLength = 50
	MaxEmailLength    = 100
	MinPasswordLength = 6
	// MaxPasswordLength is bcrypt's input limit in bytes.
	MaxPasswordLength = 72
)

// Password errors wrap ErrValidation.
var (
	ErrPasswordTooShort    = fmt.Errorf("%w: password must be at least 6 characters long", ErrValidation)
	ErrPasswordTooLong     = fmt.Errorf("%w: password must be at most 72 bytes long", ErrValidation)
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// User is a registered account. HashedPassword is never serialized.
type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	IsActive       bool      `json:"is_active"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewUser creates an active user. The caller provides the already hashed
// password; use ValidatePassword on the plaintext before hashing.
func NewUser(username, email, hashedPassword string) (*User, error) {
	u := &User{
		Username:       username,
		Email:          email,
		IsActive:       true,
		HashedPassword: hashedPassword,
		CreatedAt:      time.Now().UTC(),
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// Validate checks the field rules of a User.
func (u *User) Validate() error {
	if err := validateLength("username", u.Username, 1, MaxUsernameLength); err != nil {
		return err
	}
	if err := validateLength("email", u.Email, 1, MaxEmailLength); err != nil {
		return err
	}
	if _, err := mail.ParseAddress(u.Email); err != nil {
		return NewValidationError("email", "is not a valid email address")
	}
	if u.HashedPassword == "" {
		return ErrEmptyHashedPassword
	}
	return nil
}

// ValidatePassword checks a plaintext password before it is hashed.
func ValidatePassword(password string) error {
	if len([]rune(password)) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > MaxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}
