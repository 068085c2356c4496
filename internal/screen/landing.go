package screen

import (
	"context"
	"sync"

	"github.com/masterchefhck/transportdf-mvp-sub001/internal/navigation"
	"github.com/masterchefhck/transportdf-mvp-sub001/pkg/logger"
)

// Landing is the root screen. A signed-in user is sent straight to their
// dashboard; everyone else picks between passenger and admin access.
type Landing struct {
	deps   Deps
	logger *logger.Logger

	mu    sync.Mutex
	state navigation.State
}

func NewLanding(deps Deps) *Landing {
	deps = withDefaults(deps)
	return &Landing{
		deps:   deps,
		logger: deps.Logger.ForScreen("landing"),
		state:  navigation.StateUnknown,
	}
}

// Mount runs the session check once.
func (l *Landing) Mount(ctx context.Context) navigation.Result {
	res := l.deps.gate().Check(ctx)
	l.deps.Monitor.RecordSessionRoute(string(res.State))
	l.logger.Debug("Session checked", logger.String("state", string(res.State)))

	l.mu.Lock()
	l.state = res.State
	l.mu.Unlock()
	return res
}

// State returns the result of the last check
func (l *Landing) State() navigation.State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// ShowModeSelection reports whether the passenger/admin choice renders.
// Nothing renders before the check has finished.
func (l *Landing) ShowModeSelection() bool {
	s := l.State()
	return s == navigation.StateUnauthenticated || s == navigation.StateInvalidCleared
}

// ChoosePassenger opens the passenger landing
func (l *Landing) ChoosePassenger() {
	l.deps.Nav.Push(navigation.RoutePassenger)
}

// ChooseAdmin opens the login form; admins are not self-registered.
func (l *Landing) ChooseAdmin() {
	l.deps.Nav.Push(navigation.RouteLogin)
}

// PassengerLanding offers login and sign-up to passengers.
type PassengerLanding struct {
	*Landing
}

func NewPassengerLanding(deps Deps) *PassengerLanding {
	l := NewLanding(deps)
	l.logger = l.deps.Logger.ForScreen("passenger_landing")
	return &PassengerLanding{Landing: l}
}

// ShowAuthOptions reports whether login and sign-up buttons render
func (p *PassengerLanding) ShowAuthOptions() bool {
	return p.ShowModeSelection()
}

func (p *PassengerLanding) OpenLogin() {
	p.deps.Nav.Push(navigation.RouteLogin)
}

func (p *PassengerLanding) OpenRegister() {
	p.deps.Nav.Push(navigation.RouteRegister)
}
