package screen

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/masterchefhck/transportdf-mvp-sub001/internal/domain/chat"
	"github.com/masterchefhck/transportdf-mvp-sub001/internal/domain/stats"
	"github.com/masterchefhck/transportdf-mvp-sub001/internal/domain/trip"
	"github.com/masterchefhck/transportdf-mvp-sub001/internal/domain/user"
	"github.com/masterchefhck/transportdf-mvp-sub001/internal/navigation"
	"github.com/masterchefhck/transportdf-mvp-sub001/internal/session"
	"github.com/masterchefhck/transportdf-mvp-sub001/pkg/logger"
)

type shown struct {
	Title   string
	Message string
}

// fakeAlerts records dialogs and answers confirmations with answer.
type fakeAlerts struct {
	mu       sync.Mutex
	alerts   []shown
	confirms []shown
	answer   bool
}

func (f *fakeAlerts) Alert(title, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alerts = append(f.alerts, shown{title, message})
}

func (f *fakeAlerts) Confirm(title, message string, onConfirm, onCancel func()) {
	f.mu.Lock()
	f.confirms = append(f.confirms, shown{title, message})
	answer := f.answer
	f.mu.Unlock()

	if answer {
		onConfirm()
	} else if onCancel != nil {
		onCancel()
	}
}

func (f *fakeAlerts) Alerts() []shown {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]shown(nil), f.alerts...)
}

// fakeAdmin serves canned admin data. With release set, every call blocks
// until it is closed; ignoreCtx makes calls deaf to cancellation.
type fakeAdmin struct {
	mu        sync.Mutex
	errs      map[string]error
	release   chan struct{}
	ignoreCtx bool
	calls     atomic.Int32
	trips     []trip.Trip
	users     []user.User
	chats     []chat.Summary
}

func newFakeAdmin() *fakeAdmin {
	return &fakeAdmin{
		errs:  map[string]error{},
		trips: makeTrips(12),
		users: []user.User{
			{ID: "u1", Name: "Ana", UserType: user.TypePassenger},
			{ID: "u2", Name: "Carlos", UserType: user.TypeDriver},
		},
		chats: []chat.Summary{{TripID: "trip-01", MessageCount: 2}},
	}
}

func (f *fakeAdmin) setErr(name string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[name] = err
}

func (f *fakeAdmin) wait(ctx context.Context, name string) error {
	f.calls.Add(1)
	if f.release != nil {
		if f.ignoreCtx {
			<-f.release
		} else {
			select {
			case <-f.release:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errs[name]
}

func (f *fakeAdmin) AdminStats(ctx context.Context, token string) (*stats.Stats, error) {
	if err := f.wait(ctx, FetchStats); err != nil {
		return nil, err
	}
	return &stats.Stats{TotalUsers: 2, TotalTrips: 12, CompletedTrips: 4, CompletionRate: 33.33}, nil
}

func (f *fakeAdmin) AdminUsers(ctx context.Context, token string) ([]user.User, error) {
	if err := f.wait(ctx, FetchUsers); err != nil {
		return nil, err
	}
	return f.users, nil
}

func (f *fakeAdmin) AdminTrips(ctx context.Context, token string) ([]trip.Trip, error) {
	if err := f.wait(ctx, FetchTrips); err != nil {
		return nil, err
	}
	return f.trips, nil
}

func (f *fakeAdmin) AdminChats(ctx context.Context, token string) ([]chat.Summary, error) {
	if err := f.wait(ctx, FetchChats); err != nil {
		return nil, err
	}
	return f.chats, nil
}

type fakePassenger struct {
	entries []trip.HistoryEntry
	err     error
	calls   atomic.Int32
}

func (f *fakePassenger) PassengerTripHistory(ctx context.Context, token string) ([]trip.HistoryEntry, error) {
	f.calls.Add(1)
	return f.entries, f.err
}

// oldest first, so trip-12 is the most recent
func makeTrips(n int) []trip.Trip {
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	out := make([]trip.Trip, n)
	for i := range out {
		out[i] = trip.Trip{
			ID:          fmt.Sprintf("trip-%02d", i+1),
			Status:      trip.StatusCompleted,
			RequestedAt: base.Add(time.Duration(i) * time.Hour),
		}
	}
	return out
}

type failingClearStore struct {
	*session.MemoryStore
	panics bool
}

func (f failingClearStore) Clear(ctx context.Context) error {
	if f.panics {
		panic("storage driver crashed")
	}
	return errors.New("disk full")
}

type fixture struct {
	deps   Deps
	nav    *navigation.Stack
	alerts *fakeAlerts
	store  *session.MemoryStore
}

func newFixture(t *testing.T, role user.Type) *fixture {
	t.Helper()
	store := session.NewMemoryStore()
	return newFixtureWithStore(t, store, store, role)
}

func newFixtureWithStore(t *testing.T, mem *session.MemoryStore, store session.Store, role user.Type) *fixture {
	t.Helper()
	acc := session.NewAccessor(store, logger.NewNop())
	if role != "" {
		require.NoError(t, acc.Write(context.Background(), "tok-"+string(role), user.User{ID: "1", Name: "Teste", UserType: role}))
	}
	nav := navigation.NewStack()
	alerts := &fakeAlerts{answer: true}
	return &fixture{
		deps: Deps{
			Sessions: acc,
			Nav:      nav,
			Alerts:   alerts,
			Logger:   logger.NewNop(),
		},
		nav:    nav,
		alerts: alerts,
		store:  mem,
	}
}

// recorder collects observed states
type recorder struct {
	mu     sync.Mutex
	states []LoadState
}

func (r *recorder) observe(s LoadState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, s)
}

func (r *recorder) all() []LoadState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]LoadState(nil), r.states...)
}
