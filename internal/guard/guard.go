// Package guard translates session transitions into navigation. It is an
// explicit state machine (unauthenticated -> authenticating -> authenticated)
// so that the at-most-once landing redirect is structural, not an accident
// of render ordering.
package guard

import (
	"sync"

	"go.uber.org/zap"

	domain "blxck-client/internal/domain/session"
	xerrors "blxck-client/internal/pkg/errors"
	"blxck-client/internal/session"
)

// Route names a screen the client can land on.
type Route string

const (
	RouteLogin            Route = "/login"
	RouteAdminLogin       Route = "/admin/login"
	RouteTraineeDashboard Route = "/user/dashboard"
	RouteTrainerDashboard Route = "/trainer/dashboard"
	RouteAdminDashboard   Route = "/admin/dashboard"
)

// LandingRoute returns the screen a principal is sent to right after
// authenticating.
func LandingRoute(role domain.Role) Route {
	switch role {
	case domain.RoleTrainer:
		return RouteTrainerDashboard
	case domain.RoleAdmin:
		return RouteAdminDashboard
	default:
		return RouteTraineeDashboard
	}
}

// Navigator performs the actual screen change. The CLI prints and switches
// command context; a UI shell would swap views.
type Navigator interface {
	NavigateTo(route Route)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(route Route)

func (f NavigatorFunc) NavigateTo(route Route) { f(route) }

// State is the guard's position in the authentication lifecycle.
type State int

const (
	StateUnauthenticated State = iota
	StateAuthenticating
	StateAuthenticated
)

// Guard watches the session and fires the landing navigation exactly once
// per empty->populated transition. Logout re-arms it.
type Guard struct {
	nav    Navigator
	logger *zap.Logger

	mu    sync.Mutex
	state State
}

func New(nav Navigator, logger *zap.Logger) *Guard {
	return &Guard{nav: nav, logger: logger}
}

// Attach subscribes the guard to the session manager and applies the
// current snapshot immediately, so a session restored by hydration before
// Attach still routes to its landing screen. Returns the unsubscribe func.
func (g *Guard) Attach(m *session.Manager) func() {
	unsub := m.Subscribe(g.apply)
	g.apply(m.Snapshot())
	return unsub
}

// Begin marks a login attempt in flight. Purely informational for state
// introspection; the authenticated edge is still driven by the session.
func (g *Guard) Begin() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == StateUnauthenticated {
		g.state = StateAuthenticating
	}
}

// State returns the guard's current lifecycle position.
func (g *Guard) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

func (g *Guard) apply(snap session.Snapshot) {
	if snap.Hydrating {
		return
	}

	g.mu.Lock()
	var target Route
	if snap.IsAuthenticated() {
		if g.state != StateAuthenticated {
			g.state = StateAuthenticated
			target = LandingRoute(snap.Role)
		}
	} else {
		g.state = StateUnauthenticated
	}
	g.mu.Unlock()

	if target != "" {
		g.logger.Info("routing to landing screen",
			zap.String("role", string(snap.Role)),
			zap.String("route", string(target)),
		)
		g.nav.NavigateTo(target)
	}
}

// RedirectFromLogin sends an already-authenticated visitor away from the
// login screen to their landing route. Reports whether a redirect fired.
func (g *Guard) RedirectFromLogin(m *session.Manager) bool {
	snap := m.Snapshot()
	if snap.Hydrating || !snap.IsAuthenticated() {
		return false
	}
	g.nav.NavigateTo(LandingRoute(snap.Role))
	return true
}

// Require gates entry to a role-restricted screen. It returns
// ErrUnauthorized for anonymous visitors and ErrForbidden for a principal
// of the wrong role.
func (g *Guard) Require(m *session.Manager, role domain.Role) error {
	snap := m.Snapshot()
	if !snap.IsAuthenticated() {
		return xerrors.ErrUnauthorized
	}
	if snap.Role != role {
		return xerrors.ErrForbidden
	}
	return nil
}
