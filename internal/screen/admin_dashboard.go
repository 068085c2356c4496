package screen

import (
	"context"

	"github.com/masterchefhck/transportdf-mvp-sub001/internal/domain/chat"
	"github.com/masterchefhck/transportdf-mvp-sub001/internal/domain/stats"
	"github.com/masterchefhck/transportdf-mvp-sub001/internal/domain/trip"
	"github.com/masterchefhck/transportdf-mvp-sub001/internal/domain/user"
)

// Fetch names of the admin dashboard batch
const (
	FetchStats = "stats"
	FetchUsers = "users"
	FetchTrips = "trips"
	FetchChats = "chats"
)

// RecentTripsLimit is how many trips the dashboard keeps
const RecentTripsLimit = 10

// AdminAPI is the backend surface the admin screens use
type AdminAPI interface {
	AdminStats(ctx context.Context, token string) (*stats.Stats, error)
	AdminUsers(ctx context.Context, token string) ([]user.User, error)
	AdminTrips(ctx context.Context, token string) ([]trip.Trip, error)
	AdminChats(ctx context.Context, token string) ([]chat.Summary, error)
}

// AdminTab is a tab of the admin dashboard
type AdminTab int

const (
	TabOverview AdminTab = iota
	TabUsers
	TabTrips
	TabChats
)

var adminTabs = []AdminTab{TabOverview, TabUsers, TabTrips, TabChats}

func (t AdminTab) Title() string {
	switch t {
	case TabUsers:
		return "Usuários"
	case TabTrips:
		return "Viagens"
	case TabChats:
		return "Chats"
	}
	return "Visão geral"
}

// AdminDashboard loads stats, users, trips and chats as one batch.
type AdminDashboard struct {
	*Controller

	stats *stats.Stats
	users []user.User
	trips []trip.Trip
	chats []chat.Summary
	tab   AdminTab
}

// AdminSnapshot is a consistent copy of the dashboard for rendering
type AdminSnapshot struct {
	State LoadState
	Tab   AdminTab
	Stats *stats.Stats
	Users []user.User
	Trips []trip.Trip
	Chats []chat.Summary
}

func NewAdminDashboard(api AdminAPI, deps Deps) *AdminDashboard {
	d := &AdminDashboard{
		Controller: newController("admin_dashboard", user.TypeAdmin,
			"Não foi possível carregar os dados do painel.", deps),
	}
	d.fetches = []Fetch{
		Collect(FetchStats, api.AdminStats, func(s *stats.Stats) { d.stats = s }),
		Collect(FetchUsers, api.AdminUsers, func(u []user.User) { d.users = u }),
		Collect(FetchTrips, api.AdminTrips, func(t []trip.Trip) { d.trips = trip.MostRecent(t, RecentTripsLimit) }),
		Collect(FetchChats, api.AdminChats, func(c []chat.Summary) { d.chats = c }),
	}
	return d
}

// Snapshot returns the data to render
func (d *AdminDashboard) Snapshot() AdminSnapshot {
	var snap AdminSnapshot
	d.View(func(s LoadState) {
		snap = AdminSnapshot{
			State: s,
			Tab:   d.tab,
			Stats: d.stats,
			Users: append([]user.User(nil), d.users...),
			Trips: append([]trip.Trip(nil), d.trips...),
			Chats: append([]chat.Summary(nil), d.chats...),
		}
	})
	return snap
}

// SetTab switches the visible tab; no fetch is issued.
func (d *AdminDashboard) SetTab(t AdminTab) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tab = t
}

// NextTab cycles through the tabs
func (d *AdminDashboard) NextTab() AdminTab {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tab = adminTabs[(int(d.tab)+1)%len(adminTabs)]
	return d.tab
}

// Logout asks for confirmation and signs out
func (d *AdminDashboard) Logout(ctx context.Context) {
	ConfirmLogout(ctx, d.deps)
}
