package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masterchefhck/transportdf-mvp-sub001/internal/alert"
	"github.com/masterchefhck/transportdf-mvp-sub001/internal/apiclient"
	"github.com/masterchefhck/transportdf-mvp-sub001/internal/domain/chat"
	"github.com/masterchefhck/transportdf-mvp-sub001/internal/domain/stats"
	"github.com/masterchefhck/transportdf-mvp-sub001/internal/domain/trip"
	"github.com/masterchefhck/transportdf-mvp-sub001/internal/domain/user"
	"github.com/masterchefhck/transportdf-mvp-sub001/internal/navigation"
	"github.com/masterchefhck/transportdf-mvp-sub001/internal/screen"
	"github.com/masterchefhck/transportdf-mvp-sub001/internal/session"
	"github.com/masterchefhck/transportdf-mvp-sub001/pkg/logger"
)

type stubBackend struct {
	history []trip.HistoryEntry
}

func (s *stubBackend) AdminStats(ctx context.Context, token string) (*stats.Stats, error) {
	return &stats.Stats{TotalUsers: 3, TotalTrips: 12, CompletedTrips: 4, CompletionRate: 33.33}, nil
}

func (s *stubBackend) AdminUsers(ctx context.Context, token string) ([]user.User, error) {
	return []user.User{{ID: "u1", Name: "Ana Souza", UserType: user.TypePassenger}}, nil
}

func (s *stubBackend) AdminTrips(ctx context.Context, token string) ([]trip.Trip, error) {
	return []trip.Trip{{ID: "t1", Status: trip.StatusCancelled, RequestedAt: time.Now()}}, nil
}

func (s *stubBackend) AdminChats(ctx context.Context, token string) ([]chat.Summary, error) {
	return nil, nil
}

func (s *stubBackend) PassengerTripHistory(ctx context.Context, token string) ([]trip.HistoryEntry, error) {
	return s.history, nil
}

func (s *stubBackend) Login(ctx context.Context, req apiclient.LoginRequest) (*apiclient.AuthResponse, error) {
	return &apiclient.AuthResponse{AccessToken: "jwt", User: user.User{ID: "admin-1", UserType: user.TypeAdmin}}, nil
}

func (s *stubBackend) Register(ctx context.Context, req apiclient.RegisterRequest) (*apiclient.AuthResponse, error) {
	return &apiclient.AuthResponse{AccessToken: "jwt", User: user.User{ID: "p-1", UserType: req.UserType}}, nil
}

func newModel(t *testing.T, role user.Type, backend *stubBackend) (*Model, *session.MemoryStore) {
	t.Helper()
	store := session.NewMemoryStore()
	acc := session.NewAccessor(store, logger.NewNop())
	if role != "" {
		require.NoError(t, acc.Write(context.Background(), "tok", user.User{ID: "1", Name: "Ana", UserType: role}))
	}
	m := New(context.Background(), Deps{
		Screen:    screen.Deps{Sessions: acc, Logger: logger.NewNop()},
		Nav:       navigation.NewStack(),
		Modals:    alert.NewModalFacade(),
		Admin:     backend,
		Passenger: backend,
		Auth:      backend,
	})
	t.Cleanup(m.cancel)
	return m, store
}

// drive runs cmd and feeds mount results back until the route settles.
// It must not be handed commands that wait for dialogs.
func drive(m *Model, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			drive(m, c)
		}
	case mountedMsg:
		_, next := m.Update(msg)
		drive(m, next)
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// TestModel_LandingModeSelection tests the unauthenticated root screen
func TestModel_LandingModeSelection(t *testing.T) {
	m, _ := newModel(t, "", &stubBackend{})

	drive(m, m.sync())
	assert.Contains(t, m.View(), "Sou passageiro")

	_, cmd := m.Update(key("p"))
	drive(m, cmd)
	assert.Equal(t, navigation.RoutePassenger, m.route)
	assert.Contains(t, m.View(), "Criar conta")
}

// TestModel_AdminDashboardRenders tests routing and the overview tab
func TestModel_AdminDashboardRenders(t *testing.T) {
	m, _ := newModel(t, user.TypeAdmin, &stubBackend{})

	drive(m, m.sync())

	require.Equal(t, navigation.RouteAdmin, m.route)
	view := m.View()
	assert.Contains(t, view, "Painel administrativo")
	assert.Contains(t, view, "33.3%")

	_, cmd := m.Update(key("3"))
	drive(m, cmd)
	assert.Contains(t, m.View(), "Cancelada")

	_, cmd = m.Update(key("4"))
	drive(m, cmd)
	view = m.View()
	assert.Contains(t, view, "💬  Nenhuma conversa encontrada")
	assert.Contains(t, view, screen.EmptyStateFor(screen.FetchChats).Subtext)
}

// TestModel_HistoryEmptyState tests the empty history message
func TestModel_HistoryEmptyState(t *testing.T) {
	m, _ := newModel(t, user.TypePassenger, &stubBackend{history: []trip.HistoryEntry{}})
	drive(m, m.sync())
	require.Equal(t, navigation.RoutePassengerDashboard, m.route)

	_, cmd := m.Update(key("h"))
	drive(m, cmd)

	require.Equal(t, navigation.RoutePassengerHistory, m.route)
	view := m.View()
	assert.Contains(t, view, "Nenhuma viagem encontrada")
	assert.Contains(t, view, screen.EmptyHistorySubtext)
}

// TestRenderAdminLists_EmptyAndFailed tests that each admin list shows its
// empty state only after a successful load with zero items
func TestRenderAdminLists_EmptyAndFailed(t *testing.T) {
	renders := map[string]func(screen.AdminSnapshot) string{
		screen.FetchUsers: renderUsers,
		screen.FetchTrips: renderTrips,
		screen.FetchChats: renderChats,
	}

	for name, render := range renders {
		t.Run(name, func(t *testing.T) {
			es := screen.EmptyStateFor(name)
			require.NotEmpty(t, es.Icon)
			require.NotEmpty(t, es.Subtext)

			loaded := screen.AdminSnapshot{State: screen.LoadState{Loaded: map[string]bool{name: true}}}
			out := render(loaded)
			assert.Contains(t, out, es.Icon)
			assert.Contains(t, out, es.Title)
			assert.Contains(t, out, es.Subtext)

			failed := screen.AdminSnapshot{State: screen.LoadState{Phase: screen.PhaseFailed}}
			assert.Empty(t, render(failed))
		})
	}
}

// TestModel_LogoutThroughModal tests the confirmation dialog host
func TestModel_LogoutThroughModal(t *testing.T) {
	m, store := newModel(t, user.TypeDriver, &stubBackend{})
	drive(m, m.sync())
	require.Equal(t, navigation.RouteDriver, m.route)

	m.Update(key("x"))
	msg := m.nextModal()
	_, _ = m.Update(msg)
	require.NotNil(t, m.modal)
	assert.Contains(t, m.View(), "Tem certeza que deseja sair?")

	m.Update(key("s"))
	assert.Nil(t, m.modal)

	_, ok := store.Get(session.KeyAccessToken)
	assert.False(t, ok)
	assert.Equal(t, navigation.RouteIndex, m.route)
}

// TestModel_LoginForm tests submitting the login form
func TestModel_LoginForm(t *testing.T) {
	m, store := newModel(t, "", &stubBackend{})
	drive(m, m.sync())
	_, cmd := m.Update(key("a"))
	drive(m, cmd)
	require.NotNil(t, m.form)

	for _, r := range "admin@transportdf.com" {
		m.Update(key(string(r)))
	}
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	for _, r := range "senha123" {
		m.Update(key(string(r)))
	}
	_, cmd = m.Update(key("enter"))
	require.NotNil(t, cmd)
	_, cmd = m.Update(cmd())
	drive(m, cmd)

	token, _ := store.Get(session.KeyAccessToken)
	assert.Equal(t, "jwt", token)
	assert.Equal(t, navigation.RouteAdmin, m.route)
}

// TestStatusBadge tests localized status labels
func TestStatusBadge(t *testing.T) {
	assert.Contains(t, statusBadge(trip.StatusCompleted), "Concluída")
	assert.Contains(t, statusBadge(trip.StatusInProgress), "Em andamento")
}
