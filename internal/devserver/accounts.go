// internal/devserver/accounts.go
package devserver

import (
	"fmt"
	"sync"

	"github.com/oklog/ulid/v2"
	"golang.org/x/crypto/bcrypt"

	domain "blxck-client/internal/domain/session"
	xerrors "blxck-client/internal/pkg/errors"
)

// Account is one credentialed principal in the dev registry.
type Account struct {
	ID           string
	FullName     string
	Email        string
	Role         domain.Role
	passwordHash []byte
}

// Identity builds the wire identity object for the account, shaped like
// the real backend's per-role payloads.
func (a *Account) Identity() domain.Identity {
	return domain.Identity{
		"id":       a.ID,
		"email":    a.Email,
		"fullName": a.FullName,
		"role":     string(a.Role),
		"isActive": true,
	}
}

// Registry is the in-memory account table. Each role is its own
// namespace, mirroring the three separate login endpoints.
type Registry struct {
	mu       sync.RWMutex
	accounts map[string]*Account // key: role|email
}

func NewRegistry() *Registry {
	return &Registry{accounts: make(map[string]*Account)}
}

func accountKey(role domain.Role, email string) string {
	return string(role) + "|" + email
}

// Create registers a new account, hashing the password. Returns
// ErrConflict when the email is already taken for that role.
func (r *Registry) Create(role domain.Role, fullName, email, password string) (*Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := accountKey(role, email)
	if _, exists := r.accounts[key]; exists {
		return nil, xerrors.ErrConflict
	}

	acc := &Account{
		ID:           idPrefix(role) + "_" + ulid.Make().String(),
		FullName:     fullName,
		Email:        email,
		Role:         role,
		passwordHash: hash,
	}
	r.accounts[key] = acc
	return acc, nil
}

// Authenticate checks credentials. Unknown email and wrong password are
// indistinguishable to the caller.
func (r *Registry) Authenticate(role domain.Role, email, password string) (*Account, error) {
	r.mu.RLock()
	acc, ok := r.accounts[accountKey(role, email)]
	r.mu.RUnlock()

	if !ok {
		return nil, xerrors.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(password)); err != nil {
		return nil, xerrors.ErrUnauthorized
	}
	return acc, nil
}

// Find returns the account behind a role/email pair.
func (r *Registry) Find(role domain.Role, email string) (*Account, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	acc, ok := r.accounts[accountKey(role, email)]
	return acc, ok
}

func idPrefix(role domain.Role) string {
	switch role {
	case domain.RoleTrainer:
		return "trn"
	case domain.RoleAdmin:
		return "adm"
	default:
		return "usr"
	}
}

// SeedDefaults installs one working account per role so a fresh devserver
// is immediately usable.
func (r *Registry) SeedDefaults() {
	seeds := []struct {
		role     domain.Role
		fullName string
		email    string
		password string
	}{
		{domain.RoleTrainee, "Demo Trainee", "trainee@blxck.local", "trainee-pass"},
		{domain.RoleTrainer, "Demo Trainer", "trainer@blxck.local", "trainer-pass"},
		{domain.RoleAdmin, "Demo Admin", "admin@blxck.local", "admin-pass"},
	}
	for _, s := range seeds {
		// Ignore conflicts: seeding twice is harmless.
		_, _ = r.Create(s.role, s.fullName, s.email, s.password)
	}
}
