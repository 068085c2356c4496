package screen

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/masterchefhck/transportdf-mvp-sub001/internal/alert"
	"github.com/masterchefhck/transportdf-mvp-sub001/internal/domain/user"
	"github.com/masterchefhck/transportdf-mvp-sub001/internal/navigation"
	"github.com/masterchefhck/transportdf-mvp-sub001/internal/session"
	apperrors "github.com/masterchefhck/transportdf-mvp-sub001/pkg/errors"
	"github.com/masterchefhck/transportdf-mvp-sub001/pkg/logger"
	"github.com/masterchefhck/transportdf-mvp-sub001/pkg/monitoring"
)

var (
	// ErrUnmounted is returned when a load finishes after its screen went away.
	// Nothing was written to screen state.
	ErrUnmounted = errors.New("screen unmounted")
	// ErrInFlight is returned by Refresh while a load is still running.
	ErrInFlight = errors.New("load already in flight")
	// ErrNotAuthorized means the stored session does not grant this screen.
	ErrNotAuthorized = errors.New("session does not grant this screen")
)

const alertTitleError = "Erro"

// Deps are the collaborators every screen shares
type Deps struct {
	Sessions *session.Accessor
	Nav      navigation.Navigator
	Alerts   alert.Facade
	Logger   *logger.Logger
	Monitor  *monitoring.NewRelicApp
	Policy   Policy
}

func (d Deps) gate() *navigation.Gate {
	return navigation.NewGate(d.Sessions, d.Nav, d.Logger)
}

// Controller implements the shared load/refresh contract. Concrete screens
// supply the fetch set and read their data under View.
type Controller struct {
	name      string
	role      user.Type
	errorText string
	fetches   []Fetch
	deps      Deps
	logger    *logger.Logger

	mu        sync.Mutex
	state     LoadState
	session   *session.Session
	mounted   bool
	gen       uint64
	ctx       context.Context
	cancel    context.CancelFunc
	inFlight  bool
	observers []func(LoadState)
}

func withDefaults(d Deps) Deps {
	if d.Monitor == nil {
		d.Monitor = monitoring.Disabled()
	}
	if d.Logger == nil {
		d.Logger = logger.NewNop()
	}
	return d
}

func newController(name string, role user.Type, errorText string, deps Deps) *Controller {
	deps = withDefaults(deps)
	return &Controller{
		name:      name,
		role:      role,
		errorText: errorText,
		deps:      deps,
		logger:    deps.Logger.ForScreen(name),
		state:     LoadState{Phase: PhaseIdle, Loaded: map[string]bool{}},
	}
}

// Observe registers fn to receive every state transition, in order.
func (c *Controller) Observe(fn func(LoadState)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, fn)
}

// State returns a copy of the current state
func (c *Controller) State() LoadState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Session returns the session the last load ran with
func (c *Controller) Session() *session.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// View runs fn while screen data cannot change.
func (c *Controller) View(fn func(LoadState)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(c.state.clone())
}

// Mount starts the screen's lifetime and performs the first load.
func (c *Controller) Mount(ctx context.Context) error {
	c.mu.Lock()
	if c.mounted {
		c.cancel()
	}
	c.gen++
	c.mounted = true
	c.inFlight = false
	c.ctx, c.cancel = context.WithCancel(ctx)
	c.mu.Unlock()

	return c.load(false)
}

// Refresh re-issues the same fetch set. Previously loaded data stays visible.
func (c *Controller) Refresh() error {
	return c.load(true)
}

// Unmount cancels in-flight requests. Late results are dropped.
func (c *Controller) Unmount() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.mounted {
		return
	}
	c.mounted = false
	c.gen++
	c.cancel()
}

func (c *Controller) load(refresh bool) error {
	c.mu.Lock()
	if !c.mounted {
		c.mu.Unlock()
		return ErrUnmounted
	}
	if c.inFlight {
		c.mu.Unlock()
		return ErrInFlight
	}
	c.inFlight = true
	gen, ctx := c.gen, c.ctx
	c.mu.Unlock()

	res := c.deps.gate().Resolve(ctx)
	if !res.State.Authenticated() || res.Session.User.UserType != c.role {
		c.logger.Info("Session does not grant screen", logger.String("state", string(res.State)))
		c.deps.Monitor.RecordSessionRoute(string(res.State))
		c.mu.Lock()
		stale := gen != c.gen
		if !stale {
			c.inFlight = false
		}
		c.mu.Unlock()
		if !stale {
			c.deps.Nav.Replace(navigation.RouteIndex)
		}
		return ErrNotAuthorized
	}

	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return ErrUnmounted
	}
	c.session = res.Session
	c.state.Phase = PhaseLoading
	if refresh {
		c.state.Refreshing = true
	} else {
		c.state.Loading = !c.state.HasData()
	}
	snapshot := c.state.clone()
	observers := c.observers
	c.mu.Unlock()
	notify(observers, snapshot)

	txnCtx, txn := c.deps.Monitor.StartTransaction(ctx, "screen/"+c.name)
	start := time.Now()
	out := RunBatch(txnCtx, res.Session.Token, c.fetches, c.deps.Policy)
	latency := time.Since(start)
	if err := out.FirstError(); err != nil {
		txn.NoticeError(err)
	}
	txn.End()

	c.mu.Lock()
	if gen != c.gen {
		// unmounted (or remounted) while in flight
		c.mu.Unlock()
		c.logger.Debug("Dropping results for unmounted screen")
		return ErrUnmounted
	}
	c.inFlight = false
	for name, commit := range out.Commits {
		commit()
		c.state.Loaded[name] = true
	}
	if len(out.Commits) > 0 {
		c.state.Version++
	}
	c.state.Loading = false
	c.state.Refreshing = false
	c.state.Err = out.FirstError()
	switch {
	case !out.Failed():
		c.state.Phase = PhaseLoaded
	case len(out.Commits) > 0:
		c.state.Phase = PhaseLoaded
	default:
		c.state.Phase = PhaseFailed
	}
	snapshot = c.state.clone()
	observers = c.observers
	c.mu.Unlock()
	notify(observers, snapshot)

	if !out.Failed() {
		c.logger.Info("Screen loaded",
			logger.Bool("refresh", refresh),
			logger.Duration("latency", latency),
		)
		c.deps.Monitor.RecordScreenLoaded(c.name, refresh, latency)
		return nil
	}

	return c.fail(out)
}

func (c *Controller) fail(out Outcome) error {
	err := out.FirstError()
	c.logger.Warn("Screen load failed",
		logger.Strings("failed", out.FailedNames()),
		logger.String("policy", c.deps.Policy.String()),
		logger.Err(err),
	)
	c.deps.Monitor.RecordBatchFailed(c.name, out.FailedNames())

	for _, e := range out.Errors {
		if apperrors.IsSessionInvalid(e) {
			c.expire()
			return err
		}
	}

	msg := c.errorText
	if len(out.Commits) > 0 {
		msg = "Alguns dados não puderam ser carregados. Puxe para atualizar."
	}
	c.deps.Alerts.Alert(alertTitleError, msg)
	return err
}

// expire handles a 401-class answer: the stored session is dropped and the
// user goes back to the unauthenticated landing.
func (c *Controller) expire() {
	c.mu.Lock()
	ctx := c.ctx
	c.mu.Unlock()

	if err := c.deps.Sessions.Clear(ctx); err != nil {
		c.logger.Error("Failed to clear expired session", logger.Err(err))
	}
	c.deps.Alerts.Alert("Sessão expirada", apperrors.ErrSessionInvalid.UserMessage())
	c.deps.Nav.Replace(navigation.RouteIndex)
}

func notify(observers []func(LoadState), s LoadState) {
	for _, fn := range observers {
		fn(s)
	}
}
