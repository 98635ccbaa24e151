// internal/domain/session/entity.go
package session

import (
	"encoding/json"
	"fmt"
)

// Role is the closed set of principal kinds the platform knows about.
// It drives which landing route and which capabilities apply.
type Role string

const (
	RoleTrainee Role = "trainee"
	RoleTrainer Role = "trainer"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is one of the known role tags.
func (r Role) Valid() bool {
	switch r {
	case RoleTrainee, RoleTrainer, RoleAdmin:
		return true
	}
	return false
}

// ParseRole converts a stored or wire tag into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// Identity is the backend-provided object describing who is authenticated.
// Its shape differs per role, so it stays an opaque JSON document; the
// accessors below read the fields every role shape carries.
type Identity map[string]interface{}

// ID returns the principal identifier, tolerating string or numeric ids.
func (i Identity) ID() string {
	switch v := i["id"].(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	case json.Number:
		return v.String()
	}
	return ""
}

// Email returns the principal's email address, if present.
func (i Identity) Email() string {
	s, _ := i["email"].(string)
	return s
}

// FullName returns the display name. Backend payloads are inconsistent
// about the key, so both spellings are checked.
func (i Identity) FullName() string {
	if s, ok := i["fullName"].(string); ok {
		return s
	}
	s, _ := i["full_name"].(string)
	return s
}

// Clone returns a shallow copy so callers cannot mutate shared state.
func (i Identity) Clone() Identity {
	if i == nil {
		return nil
	}
	out := make(Identity, len(i))
	for k, v := range i {
		out[k] = v
	}
	return out
}
