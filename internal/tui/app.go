// Package tui hosts the Bubble Tea program that renders the client screens.
package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/masterchefhck/transportdf-mvp-sub001/internal/alert"
	"github.com/masterchefhck/transportdf-mvp-sub001/internal/navigation"
	"github.com/masterchefhck/transportdf-mvp-sub001/internal/realtime"
	"github.com/masterchefhck/transportdf-mvp-sub001/internal/screen"
	"github.com/masterchefhck/transportdf-mvp-sub001/pkg/logger"
)

// Deps wires the TUI to the screens. Screen.Alerts must be Modals so the
// program can host every dialog.
type Deps struct {
	Screen    screen.Deps
	Nav       *navigation.Stack
	Modals    *alert.ModalFacade
	Admin     screen.AdminAPI
	Passenger screen.PassengerAPI
	Auth      screen.AuthAPI
	// Realtime is optional; when set the admin dashboard refreshes on push events.
	Realtime *realtime.Listener
}

type (
	wakeMsg    struct{}
	modalMsg   struct{ modal *alert.Modal }
	mountedMsg struct {
		route navigation.Route
		err   error
	}
	doneMsg struct{ err error }
)

// lifecycle is what every data screen shares
type lifecycle interface {
	Mount(ctx context.Context) error
	Refresh() error
	Unmount()
	Observe(fn func(screen.LoadState))
	State() screen.LoadState
}

// Model is the root tea.Model
type Model struct {
	deps   Deps
	ctx    context.Context
	cancel context.CancelFunc
	logger *logger.Logger
	wake   chan struct{}

	route          navigation.Route
	landing        *screen.Landing
	passengerEntry *screen.PassengerLanding
	auth           *screen.Auth
	form           *form
	admin          *screen.AdminDashboard
	passenger      *screen.PassengerDashboard
	history        *screen.PassengerHistory
	driver         *screen.DriverDashboard
	active         lifecycle
	stopRealtime   context.CancelFunc

	modal   *alert.Modal
	spinner spinner.Model
	width   int
	height  int
}

// New creates the root model. The route starts empty so Init mounts
// whatever the navigator currently shows.
func New(ctx context.Context, deps Deps) *Model {
	ctx, cancel := context.WithCancel(ctx)
	deps.Screen.Nav = deps.Nav
	deps.Screen.Alerts = deps.Modals
	if deps.Screen.Logger == nil {
		deps.Screen.Logger = logger.NewNop()
	}

	m := &Model{
		deps:    deps,
		ctx:     ctx,
		cancel:  cancel,
		logger:  deps.Screen.Logger.Named("tui"),
		wake:    make(chan struct{}, 1),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	m.auth = screen.NewAuth(deps.Auth, deps.Screen)
	deps.Nav.OnChange(func(from, to navigation.Route) { m.signal() })
	return m
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, deps Deps) error {
	m := New(ctx, deps)
	defer m.cancel()
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (m *Model) signal() {
	select {
	case m.wake <- struct{}{}:
	default:
	}
}

func (m *Model) waitWake() tea.Msg {
	select {
	case <-m.wake:
		return wakeMsg{}
	case <-m.ctx.Done():
		return nil
	}
}

func (m *Model) nextModal() tea.Msg {
	modal, err := m.deps.Modals.Next(m.ctx)
	if err != nil {
		return nil
	}
	return modalMsg{modal}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.waitWake, m.nextModal, m.spinner.Tick, m.sync())
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case wakeMsg:
		return m, tea.Batch(m.waitWake, m.sync())

	case modalMsg:
		m.modal = msg.modal
		return m, nil

	case mountedMsg:
		if msg.route == m.route && msg.err == nil {
			return m, tea.Batch(m.startRealtime(), m.sync())
		}
		return m, m.sync()

	case doneMsg:
		if m.form != nil {
			m.form.busy = false
		}
		return m, m.sync()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, m.quit()
		}
		if m.modal != nil {
			return m, m.handleModalKey(msg)
		}
		if m.form != nil {
			return m, m.handleFormKey(msg)
		}
		return m, m.handleKey(msg)
	}
	if m.form != nil {
		return m, m.form.update(msg)
	}
	return m, nil
}

func (m *Model) quit() tea.Cmd {
	m.teardown()
	m.cancel()
	return tea.Quit
}

func (m *Model) handleModalKey(msg tea.KeyMsg) tea.Cmd {
	modal := m.modal
	switch msg.String() {
	case "y", "s", "enter":
		m.modal = nil
		modal.Confirm()
	case "n", "esc", "q":
		m.modal = nil
		modal.Dismiss()
	default:
		return nil
	}
	return tea.Batch(m.nextModal, m.sync())
}

func (m *Model) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	f := m.form
	switch msg.String() {
	case "esc":
		if !m.deps.Nav.Back() {
			m.deps.Nav.Replace(navigation.RouteIndex)
		}
		return m.sync()
	case "tab", "down":
		f.move(1)
		return nil
	case "shift+tab", "up":
		f.move(-1)
		return nil
	case "ctrl+t":
		if f.kind == formRegister {
			f.toggleType()
		}
		return nil
	case "enter":
		if f.busy {
			return nil
		}
		f.busy = true
		ctx := m.ctx
		if f.kind == formLogin {
			email, password := f.loginRequest()
			return func() tea.Msg {
				_, err := m.auth.Login(ctx, email, password)
				return doneMsg{err}
			}
		}
		req := f.registerRequest()
		return func() tea.Msg {
			_, err := m.auth.Register(ctx, req)
			return doneMsg{err}
		}
	}
	return f.update(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if key == "q" && m.route != navigation.RoutePassengerHistory {
		return m.quit()
	}

	switch m.route {
	case navigation.RouteIndex:
		switch key {
		case "p":
			if m.landing.ShowModeSelection() {
				m.landing.ChoosePassenger()
			}
		case "a":
			if m.landing.ShowModeSelection() {
				m.landing.ChooseAdmin()
			}
		}

	case navigation.RoutePassenger:
		switch key {
		case "l":
			m.passengerEntry.OpenLogin()
		case "c":
			m.passengerEntry.OpenRegister()
		case "esc":
			m.deps.Nav.Back()
		}

	case navigation.RouteAdmin:
		switch key {
		case "tab", "right":
			m.admin.NextTab()
		case "1", "2", "3", "4":
			m.admin.SetTab(screen.AdminTab(key[0] - '1'))
		case "r":
			return m.refresh()
		case "x":
			m.admin.Logout(m.ctx)
		}

	case navigation.RoutePassengerDashboard:
		switch key {
		case "h":
			m.passenger.OpenHistory()
		case "x":
			m.passenger.Logout(m.ctx)
		}

	case navigation.RoutePassengerHistory:
		switch key {
		case "r":
			return m.refresh()
		case "esc", "q":
			m.history.Back()
		}

	case navigation.RouteDriver:
		if key == "x" {
			m.driver.Logout(m.ctx)
		}
	}
	return m.sync()
}

func (m *Model) refresh() tea.Cmd {
	active := m.active
	if active == nil {
		return nil
	}
	return func() tea.Msg {
		err := active.Refresh()
		if errors.Is(err, screen.ErrInFlight) {
			err = nil
		}
		return doneMsg{err}
	}
}

// sync mounts the screen for the navigator's current route if it changed.
func (m *Model) sync() tea.Cmd {
	to := m.deps.Nav.Current()
	if to == m.route {
		return nil
	}
	m.teardown()
	m.route = to
	m.logger.Debug("Route changed", logger.Route(string(to)))

	d := m.deps.Screen
	ctx := m.ctx
	switch to {
	case navigation.RouteIndex:
		m.landing = screen.NewLanding(d)
		l := m.landing
		return func() tea.Msg {
			l.Mount(ctx)
			return mountedMsg{route: to}
		}
	case navigation.RoutePassenger:
		m.passengerEntry = screen.NewPassengerLanding(d)
		p := m.passengerEntry
		return func() tea.Msg {
			p.Mount(ctx)
			return mountedMsg{route: to}
		}
	case navigation.RouteLogin:
		m.form = newLoginForm()
		return textinput.Blink
	case navigation.RouteRegister:
		m.form = newRegisterForm()
		return textinput.Blink
	case navigation.RouteAdmin:
		m.admin = screen.NewAdminDashboard(m.deps.Admin, d)
		m.active = m.admin
	case navigation.RoutePassengerDashboard:
		m.passenger = screen.NewPassengerDashboard(d)
		m.active = m.passenger
	case navigation.RoutePassengerHistory:
		m.history = screen.NewPassengerHistory(m.deps.Passenger, d)
		m.active = m.history
	case navigation.RouteDriver:
		m.driver = screen.NewDriverDashboard(d)
		m.active = m.driver
	default:
		m.logger.Warn("Unknown route", logger.Route(string(to)))
		return nil
	}

	active := m.active
	active.Observe(func(screen.LoadState) { m.signal() })
	return func() tea.Msg {
		return mountedMsg{route: to, err: active.Mount(ctx)}
	}
}

func (m *Model) teardown() {
	if m.stopRealtime != nil {
		m.stopRealtime()
		m.stopRealtime = nil
	}
	if m.active != nil {
		m.active.Unmount()
	}
	m.active = nil
	m.form = nil
}

// startRealtime subscribes the admin dashboard to push events.
func (m *Model) startRealtime() tea.Cmd {
	if m.deps.Realtime == nil || m.route != navigation.RouteAdmin || m.admin == nil {
		return nil
	}
	s := m.admin.Session()
	if s == nil {
		return nil
	}
	ctx, cancel := context.WithCancel(m.ctx)
	m.stopRealtime = cancel
	listener, target, log := m.deps.Realtime, m.admin, m.logger
	go func() {
		if err := listener.Run(ctx, s.Token, target); err != nil && ctx.Err() == nil {
			log.Warn("Realtime listener stopped", logger.Err(err))
		}
	}()
	return nil
}
