// Package store persists the authenticated session across process restarts.
// The session manager is the only writer; implementations are passive
// mirrors and never authoritative on their own.
package store

import (
	"context"

	domain "blxck-client/internal/domain/session"
)

// Record is the durable form of a session: the three fields are written
// and read as one atomic blob so partial state can never be observed.
type Record struct {
	Identity domain.Identity `json:"identity"`
	Token    string          `json:"token"`
	Role     domain.Role     `json:"role"`
}

// Complete reports whether all three fields are present. A record failing
// this check is treated the same as an absent one.
func (r Record) Complete() bool {
	return len(r.Identity) > 0 && r.Token != "" && r.Role.Valid()
}

// Store is the persistence boundary injected into the session manager.
type Store interface {
	// Save writes the record, replacing any previous one.
	Save(ctx context.Context, rec Record) error

	// Load reads the stored record. It returns ok=false for an absent,
	// incomplete, or unreadable record; corruption is reported through
	// ok=false, never as an error, so hydration can self-heal.
	Load(ctx context.Context) (Record, bool, error)

	// Clear removes the stored record. Clearing an empty store is a no-op.
	Clear(ctx context.Context) error
}
