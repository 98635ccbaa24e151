// internal/domain/auth/dto.go
package auth

import (
	domain "blxck-client/internal/domain/session"
)

// Credentials for the three role login endpoints.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration for trainer/user sign-up. ConfirmPassword never goes on
// the wire; it only exists for client-side validation.
type Registration struct {
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"-"`
}

// LoginResult is the normalized outcome of any successful login flow:
// the opaque identity object, the bearer token, and the role tag the
// session will carry.
type LoginResult struct {
	Identity domain.Identity
	Token    string
	Role     domain.Role
}

// RegisterResult is the outcome of a successful registration. Some
// backends confirm with a message only; others also return a token and
// identity so the new principal is logged in immediately.
type RegisterResult struct {
	Message  string
	Token    string
	Identity domain.Identity
}
