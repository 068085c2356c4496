package navigation

import (
	"context"
	"errors"

	"github.com/masterchefhck/transportdf-mvp-sub001/internal/domain/user"
	"github.com/masterchefhck/transportdf-mvp-sub001/internal/session"
	"github.com/masterchefhck/transportdf-mvp-sub001/pkg/logger"
)

// State is the outcome of the session check on a screen mount
type State string

const (
	StateUnknown                State = "unknown"
	StateUnauthenticated        State = "unauthenticated"
	StateAuthenticatedPassenger State = "authenticated_passenger"
	StateAuthenticatedDriver    State = "authenticated_driver"
	StateAuthenticatedAdmin     State = "authenticated_admin"
	StateInvalidCleared         State = "invalid_cleared"
)

// Authenticated reports whether the state carries a usable session
func (s State) Authenticated() bool {
	switch s {
	case StateAuthenticatedPassenger, StateAuthenticatedDriver, StateAuthenticatedAdmin:
		return true
	}
	return false
}

// SessionReader is the part of the session accessor the gate needs
type SessionReader interface {
	Read(ctx context.Context) (*session.Session, error)
	Clear(ctx context.Context) error
}

// Result of a Gate evaluation
type Result struct {
	State   State
	Session *session.Session
}

// Gate runs the role-gated routing check. It has no retries and never fails.
type Gate struct {
	sessions SessionReader
	nav      Navigator
	logger   *logger.Logger
}

func NewGate(sessions SessionReader, nav Navigator, log *logger.Logger) *Gate {
	return &Gate{sessions: sessions, nav: nav, logger: log.Named("router")}
}

// Check reads the session and, for a known role, replaces the current route
// with that role's dashboard. An unknown role or corrupt record clears the
// session; the caller then renders its unauthenticated UI.
func (g *Gate) Check(ctx context.Context) Result {
	res := g.Resolve(ctx)
	if res.State.Authenticated() {
		route, _ := DashboardFor(res.Session.User.UserType)
		g.nav.Replace(route)
	}
	return res
}

// Resolve is Check without navigation, for screens that are themselves a
// role destination and only need to know who is signed in.
func (g *Gate) Resolve(ctx context.Context) Result {
	s, err := g.sessions.Read(ctx)
	switch {
	case errors.Is(err, session.ErrCorruptSession):
		return g.clear(ctx, "corrupt user record")
	case err != nil:
		return Result{State: StateUnauthenticated}
	}

	switch s.User.UserType {
	case user.TypePassenger:
		return Result{State: StateAuthenticatedPassenger, Session: s}
	case user.TypeDriver:
		return Result{State: StateAuthenticatedDriver, Session: s}
	case user.TypeAdmin:
		return Result{State: StateAuthenticatedAdmin, Session: s}
	}
	return g.clear(ctx, "unknown user type "+string(s.User.UserType))
}

func (g *Gate) clear(ctx context.Context, reason string) Result {
	g.logger.Warn("Invalid session, clearing", logger.String("reason", reason))
	if err := g.sessions.Clear(ctx); err != nil {
		g.logger.Error("Failed to clear invalid session", logger.Err(err))
	}
	return Result{State: StateInvalidCleared}
}
