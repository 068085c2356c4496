package screen

import (
	"context"

	"github.com/masterchefhck/transportdf-mvp-sub001/internal/domain/trip"
	"github.com/masterchefhck/transportdf-mvp-sub001/internal/domain/user"
	"github.com/masterchefhck/transportdf-mvp-sub001/internal/navigation"
)

const FetchHistory = "history"

// Empty-state copy for the trip history list
const (
	EmptyHistoryTitle   = "Nenhuma viagem encontrada"
	EmptyHistorySubtext = "Suas viagens concluídas aparecerão aqui."
)

// PassengerAPI is the backend surface the passenger screens use
type PassengerAPI interface {
	PassengerTripHistory(ctx context.Context, token string) ([]trip.HistoryEntry, error)
}

// PassengerHistory lists the signed-in passenger's past trips.
type PassengerHistory struct {
	*Controller

	entries []trip.HistoryEntry
}

func NewPassengerHistory(api PassengerAPI, deps Deps) *PassengerHistory {
	h := &PassengerHistory{
		Controller: newController("passenger_history", user.TypePassenger,
			"Não foi possível carregar o histórico de viagens.", deps),
	}
	h.fetches = []Fetch{
		Collect(FetchHistory, api.PassengerTripHistory, func(e []trip.HistoryEntry) { h.entries = e }),
	}
	return h
}

// Entries returns the state and the last loaded history
func (h *PassengerHistory) Entries() (LoadState, []trip.HistoryEntry) {
	var (
		state LoadState
		out   []trip.HistoryEntry
	)
	h.View(func(s LoadState) {
		state = s
		out = append([]trip.HistoryEntry(nil), h.entries...)
	})
	return state, out
}

// ShowEmpty reports whether "Nenhuma viagem encontrada" should render
func (h *PassengerHistory) ShowEmpty() bool {
	state, entries := h.Entries()
	return state.ShowEmpty(FetchHistory, len(entries))
}

// Back returns to the passenger dashboard
func (h *PassengerHistory) Back() {
	if !h.deps.Nav.Back() {
		h.deps.Nav.Replace(navigation.RoutePassengerDashboard)
	}
}

// PassengerDashboard is the signed-in passenger's home. It has no remote
// collections; mounting it only verifies the role.
type PassengerDashboard struct {
	*Controller
}

func NewPassengerDashboard(deps Deps) *PassengerDashboard {
	return &PassengerDashboard{
		Controller: newController("passenger_dashboard", user.TypePassenger, "", deps),
	}
}

// OpenHistory pushes the history screen
func (p *PassengerDashboard) OpenHistory() {
	p.deps.Nav.Push(navigation.RoutePassengerHistory)
}

func (p *PassengerDashboard) Logout(ctx context.Context) {
	ConfirmLogout(ctx, p.deps)
}

// DriverDashboard is the driver role destination. Like the passenger
// dashboard it only verifies the role.
type DriverDashboard struct {
	*Controller
}

func NewDriverDashboard(deps Deps) *DriverDashboard {
	return &DriverDashboard{
		Controller: newController("driver_dashboard", user.TypeDriver, "", deps),
	}
}

func (d *DriverDashboard) Logout(ctx context.Context) {
	ConfirmLogout(ctx, d.deps)
}
