// Package session owns the in-memory authenticated session: who is logged
// in, with which token and role. It is the single source of truth; the
// injected store is only a mirror that survives process restarts.
package session

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	domain "blxck-client/internal/domain/session"
	"blxck-client/internal/store"
)

// Snapshot is an immutable view of the session handed to observers.
type Snapshot struct {
	Identity  domain.Identity
	Token     string
	Role      domain.Role
	Hydrating bool
}

// IsAuthenticated is derived: true iff identity and token are both present.
func (s Snapshot) IsAuthenticated() bool {
	return len(s.Identity) > 0 && s.Token != ""
}

// Manager holds session state and mirrors every transition into the store.
type Manager struct {
	st     store.Store
	logger *zap.Logger

	mu       sync.RWMutex
	identity domain.Identity
	token    string
	role     domain.Role

	hydrating   bool
	hydrateOnce sync.Once

	subMu  sync.Mutex
	subs   map[int]func(Snapshot)
	nextID int
}

// NewManager returns an empty session in the hydrating state. Call Hydrate
// before serving user actions.
func NewManager(st store.Store, logger *zap.Logger) *Manager {
	return &Manager{
		st:        st,
		logger:    logger,
		hydrating: true,
		subs:      make(map[int]func(Snapshot)),
	}
}

// Hydrate restores the session from the store. It runs once; later calls
// are no-ops. Incomplete or unreadable stored state is discarded (and the
// store cleared) rather than trusted; the hydrating flag always drops,
// whatever the outcome.
func (m *Manager) Hydrate(ctx context.Context) {
	m.hydrateOnce.Do(func() {
		rec, ok, err := m.st.Load(ctx)

		m.mu.Lock()
		switch {
		case err != nil:
			m.logger.Warn("session hydration failed, starting empty", zap.Error(err))
		case ok:
			m.identity = rec.Identity
			m.token = rec.Token
			m.role = rec.Role
		}
		m.hydrating = false
		m.mu.Unlock()

		if err != nil || !ok {
			if cerr := m.st.Clear(ctx); cerr != nil {
				m.logger.Warn("failed to clear stale session", zap.Error(cerr))
			}
		} else {
			m.logger.Info("session restored",
				zap.String("role", string(rec.Role)),
				zap.String("email", rec.Identity.Email()),
			)
		}

		m.notify()
	})
}

// Login commits an authenticated session. Memory state is updated before
// the store write and before observers run, so a caller reading
// IsAuthenticated immediately after Login sees true. Login is total: a
// store failure is logged, never returned.
//
// Passing an empty identity, token, or invalid role violates the
// all-or-nothing session invariant and panics; login must only be called
// with the complete result of a successful authentication.
func (m *Manager) Login(identity domain.Identity, token string, role domain.Role) {
	if len(identity) == 0 || token == "" || !role.Valid() {
		panic(fmt.Sprintf("session: Login called with partial session state (identity=%d fields, token=%t, role=%q)",
			len(identity), token != "", role))
	}

	id := identity.Clone()

	m.mu.Lock()
	m.identity = id
	m.token = token
	m.role = role
	m.mu.Unlock()

	if err := m.st.Save(context.Background(), store.Record{
		Identity: id,
		Token:    token,
		Role:     role,
	}); err != nil {
		m.logger.Warn("failed to persist session", zap.Error(err))
	}

	m.logger.Info("logged in",
		zap.String("role", string(role)),
		zap.String("email", id.Email()),
	)

	m.notify()
}

// Logout resets the session and clears the store. Total and idempotent.
func (m *Manager) Logout() {
	m.mu.Lock()
	m.identity = nil
	m.token = ""
	m.role = ""
	m.mu.Unlock()

	if err := m.st.Clear(context.Background()); err != nil {
		m.logger.Warn("failed to clear persisted session", zap.Error(err))
	}

	m.notify()
}

// Snapshot returns a consistent view of the current session.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Snapshot{
		Identity:  m.identity.Clone(),
		Token:     m.token,
		Role:      m.role,
		Hydrating: m.hydrating,
	}
}

func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.identity) > 0 && m.token != ""
}

func (m *Manager) IsHydrating() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hydrating
}

func (m *Manager) IsTrainee() bool { return m.is(domain.RoleTrainee) }
func (m *Manager) IsTrainer() bool { return m.is(domain.RoleTrainer) }
func (m *Manager) IsAdmin() bool   { return m.is(domain.RoleAdmin) }

func (m *Manager) is(role domain.Role) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.role == role
}

// Identity returns the current principal, or nil when logged out.
func (m *Manager) Identity() domain.Identity {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.identity.Clone()
}

// Token returns the current bearer credential, empty when logged out.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// Role returns the current role tag, empty when logged out.
func (m *Manager) Role() domain.Role {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.role
}

// Subscribe registers an observer called after every session transition
// with the post-transition snapshot. The returned func unsubscribes.
func (m *Manager) Subscribe(fn func(Snapshot)) func() {
	m.subMu.Lock()
	id := m.nextID
	m.nextID++
	m.subs[id] = fn
	m.subMu.Unlock()

	return func() {
		m.subMu.Lock()
		delete(m.subs, id)
		m.subMu.Unlock()
	}
}

func (m *Manager) notify() {
	snap := m.Snapshot()

	m.subMu.Lock()
	fns := make([]func(Snapshot), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.subMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
