package navigation

import (
	"sync"

	"github.com/masterchefhck/transportdf-mvp-sub001/internal/domain/user"
)

// Route is a named destination
type Route string

const (
	RouteIndex              Route = "/"
	RouteAdmin              Route = "/admin"
	RouteDriver             Route = "/driver"
	RoutePassenger          Route = "/passenger"
	RoutePassengerDashboard Route = "/passenger/dashboard"
	RoutePassengerHistory   Route = "/passenger/history"
	RouteLogin              Route = "/auth/login"
	RouteRegister           Route = "/auth/register"
)

// DashboardFor returns the dashboard route of a role.
func DashboardFor(t user.Type) (Route, bool) {
	switch t {
	case user.TypePassenger:
		return RoutePassengerDashboard, true
	case user.TypeDriver:
		return RouteDriver, true
	case user.TypeAdmin:
		return RouteAdmin, true
	}
	return "", false
}

// Navigator moves between routes
type Navigator interface {
	Push(r Route)
	// Replace swaps the current entry so Back never returns to it.
	Replace(r Route)
	// Reset drops the whole history and lands on r.
	Reset(r Route)
	Back() bool
	Current() Route
}

// Listener is notified after every navigation
type Listener func(from, to Route)

// Stack is a history-stack Navigator. It starts at RouteIndex.
type Stack struct {
	mu        sync.Mutex
	stack     []Route
	listeners []Listener
}

func NewStack() *Stack {
	return &Stack{stack: []Route{RouteIndex}}
}

// OnChange registers a listener
func (s *Stack) OnChange(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

func (s *Stack) Push(r Route) {
	s.mu.Lock()
	from := s.stack[len(s.stack)-1]
	s.stack = append(s.stack, r)
	s.mu.Unlock()
	s.notify(from, r)
}

func (s *Stack) Replace(r Route) {
	s.mu.Lock()
	from := s.stack[len(s.stack)-1]
	s.stack[len(s.stack)-1] = r
	s.mu.Unlock()
	s.notify(from, r)
}

func (s *Stack) Reset(r Route) {
	s.mu.Lock()
	from := s.stack[len(s.stack)-1]
	s.stack = []Route{r}
	s.mu.Unlock()
	s.notify(from, r)
}

func (s *Stack) Back() bool {
	s.mu.Lock()
	if len(s.stack) < 2 {
		s.mu.Unlock()
		return false
	}
	from := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	to := s.stack[len(s.stack)-1]
	s.mu.Unlock()
	s.notify(from, to)
	return true
}

func (s *Stack) Current() Route {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stack[len(s.stack)-1]
}

// History returns a copy of the stack, oldest first
func (s *Stack) History() []Route {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Route, len(s.stack))
	copy(out, s.stack)
	return out
}

func (s *Stack) notify(from, to Route) {
	s.mu.Lock()
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()
	for _, l := range listeners {
		l(from, to)
	}
}
