package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/masterchefhck/transportdf-mvp-sub001/internal/alert"
	"github.com/masterchefhck/transportdf-mvp-sub001/internal/domain/trip"
	"github.com/masterchefhck/transportdf-mvp-sub001/internal/navigation"
	"github.com/masterchefhck/transportdf-mvp-sub001/internal/screen"
)

const appTitle = "TransportDF"

// View implements tea.Model
func (m *Model) View() string {
	body := m.body()
	if m.modal != nil {
		dialog := m.renderModal()
		if m.width > 0 && m.height > 0 {
			return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, dialog)
		}
		return body + "\n\n" + dialog
	}
	return body
}

func (m *Model) body() string {
	if m.form != nil {
		return m.form.view()
	}

	switch m.route {
	case navigation.RouteIndex:
		return m.viewLanding()
	case navigation.RoutePassenger:
		return m.viewPassengerLanding()
	case navigation.RouteAdmin:
		return m.viewAdmin()
	case navigation.RoutePassengerDashboard:
		return m.viewPassengerDashboard()
	case navigation.RoutePassengerHistory:
		return m.viewHistory()
	case navigation.RouteDriver:
		return m.viewDriver()
	}
	return ""
}

func (m *Model) renderModal() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.modal.Title))
	if m.modal.Message != "" {
		b.WriteString("\n\n" + m.modal.Message)
	}
	b.WriteString("\n\n")
	if m.modal.Type == alert.ModalConfirm {
		b.WriteString(helpStyle.Render("s confirmar • n cancelar"))
	} else {
		b.WriteString(helpStyle.Render("enter OK"))
	}
	return modalStyle.Render(b.String())
}

// loadingView returns the full-screen indicator while nothing has loaded yet
func (m *Model) loadingView(s screen.LoadState) (string, bool) {
	if s.Loading {
		return m.spinner.View() + " Carregando...", true
	}
	return "", false
}

func (m *Model) refreshLine(s screen.LoadState) string {
	if s.Refreshing {
		return m.spinner.View() + " Atualizando..."
	}
	return ""
}

func (m *Model) viewLanding() string {
	if m.landing == nil || !m.landing.ShowModeSelection() {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(appTitle),
		subtitleStyle.Render("Transporte por aplicativo no Distrito Federal"),
		"",
		"[p] Sou passageiro",
		"[a] Acesso administrativo",
		"",
		helpStyle.Render("q sair"),
	)
}

func (m *Model) viewPassengerLanding() string {
	if m.passengerEntry == nil || !m.passengerEntry.ShowAuthOptions() {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Passageiro"),
		"",
		"[l] Entrar",
		"[c] Criar conta",
		"",
		helpStyle.Render("esc voltar • q sair"),
	)
}

func (m *Model) viewAdmin() string {
	snap := m.admin.Snapshot()
	if v, ok := m.loadingView(snap.State); ok {
		return v
	}

	var tabs []string
	for i, t := range []screen.AdminTab{screen.TabOverview, screen.TabUsers, screen.TabTrips, screen.TabChats} {
		label := fmt.Sprintf("%d %s", i+1, t.Title())
		if t == snap.Tab {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}

	var content string
	switch snap.Tab {
	case screen.TabOverview:
		content = renderStats(snap)
	case screen.TabUsers:
		content = renderUsers(snap)
	case screen.TabTrips:
		content = renderTrips(snap)
	case screen.TabChats:
		content = renderChats(snap)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Painel administrativo"),
		strings.Join(tabs, "   "),
		m.refreshLine(snap.State),
		content,
		"",
		helpStyle.Render("tab alternar • r atualizar • x sair da conta • q fechar"),
	)
}

func renderStats(snap screen.AdminSnapshot) string {
	if snap.Stats == nil {
		return ""
	}
	st := snap.Stats
	card := func(label string, value string) string {
		return cardStyle.Render(subtitleStyle.Render(label) + "\n" + statValueStyle.Render(value))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		card("Usuários", fmt.Sprint(st.TotalUsers)),
		card("Motoristas", fmt.Sprint(st.TotalDrivers)),
		card("Passageiros", fmt.Sprint(st.TotalPassengers)),
		card("Viagens", fmt.Sprint(st.TotalTrips)),
		card("Concluídas", fmt.Sprint(st.CompletedTrips)),
		card("Taxa de conclusão", fmt.Sprintf("%.1f%%", st.CompletionRate)),
	)
}

func renderEmpty(name string) string {
	es := screen.EmptyStateFor(name)
	return lipgloss.JoinVertical(lipgloss.Left,
		emptyTitleStyle.Render(es.Icon+"  "+es.Title),
		subtitleStyle.Render(es.Subtext),
	)
}

func renderUsers(snap screen.AdminSnapshot) string {
	if snap.State.ShowEmpty(screen.FetchUsers, len(snap.Users)) {
		return renderEmpty(screen.FetchUsers)
	}
	if !snap.State.ShowList(screen.FetchUsers, len(snap.Users)) {
		return ""
	}
	var b strings.Builder
	for _, u := range snap.Users {
		line := fmt.Sprintf("%-24s %-28s %s", u.Name, u.Email, u.UserType.Label())
		if label := u.StatusLabel(); label != "" {
			line += "  " + subtitleStyle.Render(label)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func renderTrips(snap screen.AdminSnapshot) string {
	if snap.State.ShowEmpty(screen.FetchTrips, len(snap.Trips)) {
		return renderEmpty(screen.FetchTrips)
	}
	if !snap.State.ShowList(screen.FetchTrips, len(snap.Trips)) {
		return ""
	}
	var b strings.Builder
	for _, t := range snap.Trips {
		fmt.Fprintf(&b, "%s  %s → %s  %s  R$ %.2f\n",
			trip.FormatDate(t.RequestedAt), t.PickupAddress, t.DestinationAddress,
			statusBadge(t.Status), t.EstimatedPrice)
	}
	return b.String()
}

func renderChats(snap screen.AdminSnapshot) string {
	if snap.State.ShowEmpty(screen.FetchChats, len(snap.Chats)) {
		return renderEmpty(screen.FetchChats)
	}
	if !snap.State.ShowList(screen.FetchChats, len(snap.Chats)) {
		return ""
	}
	var b strings.Builder
	for _, c := range snap.Chats {
		fmt.Fprintf(&b, "%s → %s  %s\n", c.TripPickupAddress, c.TripDestinationAddress, statusBadge(c.TripStatus))
		fmt.Fprintf(&b, "  %s e %s • %d mensagens\n", c.PassengerName, c.DriverName, c.MessageCount)
		if c.LastMessage != "" {
			b.WriteString("  " + subtitleStyle.Render(c.Preview(60)) + "\n")
		}
	}
	return b.String()
}

func (m *Model) viewPassengerDashboard() string {
	if v, ok := m.loadingView(m.passenger.State()); ok {
		return v
	}
	name := ""
	if s := m.passenger.Session(); s != nil {
		name = s.User.Name
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Olá, "+name),
		"",
		"[h] Histórico de viagens",
		"",
		helpStyle.Render("x sair da conta • q fechar"),
	)
}

func (m *Model) viewHistory() string {
	state, entries := m.history.Entries()
	if v, ok := m.loadingView(state); ok {
		return v
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Histórico de viagens") + "\n")
	if line := m.refreshLine(state); line != "" {
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")

	switch {
	case m.history.ShowEmpty():
		b.WriteString(renderEmpty(screen.FetchHistory) + "\n")
	case state.Phase == screen.PhaseFailed && !state.HasData():
		b.WriteString(errorStyle.Render("Não foi possível carregar. Pressione r para tentar novamente.") + "\n")
	case state.ShowList(screen.FetchHistory, len(entries)):
		for _, e := range entries {
			fmt.Fprintf(&b, "%s  %s\n", statusBadge(e.Status), trip.FormatDate(e.RequestedAt))
			fmt.Fprintf(&b, "  %s → %s\n", e.PickupAddress, e.DestinationAddress)
			fmt.Fprintf(&b, "  R$ %.2f", e.FinalPrice)
			if e.DriverName != "" {
				b.WriteString(" • " + e.DriverName)
			}
			if e.DurationMinutes != nil {
				fmt.Fprintf(&b, " • %d min", *e.DurationMinutes)
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n" + helpStyle.Render("r atualizar • esc voltar"))
	return b.String()
}

func (m *Model) viewDriver() string {
	if v, ok := m.loadingView(m.driver.State()); ok {
		return v
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Motorista"),
		subtitleStyle.Render("Use o aplicativo móvel para aceitar corridas."),
		"",
		helpStyle.Render("x sair da conta • q fechar"),
	)
}
