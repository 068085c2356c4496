package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/masterchefhck/transportdf-mvp-sub001/internal/domain/trip"
	"github.com/masterchefhck/transportdf-mvp-sub001/internal/navigation"
	"github.com/masterchefhck/transportdf-mvp-sub001/internal/screen"
)

func newLoginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Entra com email e senha",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := bootstrap(ctx, false)
			if err != nil {
				return err
			}
			defer a.close()
			a.withPrompts()

			if email == "" {
				fmt.Print("Email: ")
				line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
				email = strings.TrimSpace(line)
			}
			if password == "" {
				if password, err = readPassword(); err != nil {
					return err
				}
			}

			res, err := screen.NewAuth(a.client, a.deps).Login(ctx, email, password)
			if err != nil {
				return err
			}
			if !res.State.Authenticated() {
				return errors.New("tipo de conta não suportado")
			}
			fmt.Printf("Bem-vindo, %s (%s). Destino: %s\n",
				res.Session.User.Name, res.Session.User.UserType.Label(), a.nav.Current())
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email da conta")
	cmd.Flags().StringVar(&password, "password", "", "senha (solicitada se omitida)")
	return cmd
}

func readPassword() (string, error) {
	fd := int(os.Stdin.Fd())
	fmt.Print("Senha: ")
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Println()
		return string(raw), err
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func newLogoutCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Encerra a sessão",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := bootstrap(ctx, false)
			if err != nil {
				return err
			}
			defer a.close()
			a.withPrompts()

			if yes {
				screen.SignOut(ctx, a.deps)
			} else {
				screen.ConfirmLogout(ctx, a.deps)
			}
			if a.nav.Current() == navigation.RouteIndex {
				fmt.Println("Sessão encerrada.")
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "não pedir confirmação")
	return cmd
}

func runWhoami(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := bootstrap(ctx, false)
	if err != nil {
		return err
	}
	defer a.close()

	res := navigation.NewGate(a.deps.Sessions, a.nav, a.logger).Resolve(ctx)
	if !res.State.Authenticated() {
		fmt.Println("Nenhuma sessão ativa.")
		return nil
	}
	u := res.Session.User
	route, _ := navigation.DashboardFor(u.UserType)
	fmt.Printf("%s <%s>\nTipo: %s\nPainel: %s\n", u.Name, u.Email, u.UserType.Label(), route)
	return nil
}

func newAdminCmd() *cobra.Command {
	admin := &cobra.Command{
		Use:   "admin",
		Short: "Consultas do painel administrativo",
	}
	for _, tab := range []struct {
		use   string
		short string
		tab   screen.AdminTab
	}{
		{"stats", "Estatísticas gerais", screen.TabOverview},
		{"users", "Usuários cadastrados", screen.TabUsers},
		{"trips", "Viagens mais recentes", screen.TabTrips},
		{"chats", "Conversas por viagem", screen.TabChats},
	} {
		tab := tab
		admin.AddCommand(&cobra.Command{
			Use:   tab.use,
			Short: tab.short,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runAdmin(cmd, tab.tab)
			},
		})
	}
	return admin
}

func runAdmin(cmd *cobra.Command, tab screen.AdminTab) error {
	ctx := cmd.Context()
	a, err := bootstrap(ctx, false)
	if err != nil {
		return err
	}
	defer a.close()
	a.withPrompts()

	if tab == screen.TabChats {
		s := screen.NewAdminChats(a.client, a.deps)
		defer s.Unmount()
		if err := s.Mount(ctx); err != nil {
			return mountError(err)
		}
		state, chats := s.Chats()
		if s.ShowEmpty() {
			printEmpty(screen.FetchChats)
			return nil
		}
		if !state.ShowList(screen.FetchChats, len(chats)) {
			return nil
		}
		t := newTable("Viagem", "Trajeto", "Status", "Participantes", "Mensagens", "Última")
		for _, c := range chats {
			t.Row(c.TripID, c.TripPickupAddress+" → "+c.TripDestinationAddress, c.TripStatus.Label(),
				c.PassengerName+" / "+c.DriverName, fmt.Sprint(c.MessageCount), c.Preview(40))
		}
		fmt.Println(t)
		return nil
	}

	d := screen.NewAdminDashboard(a.client, a.deps)
	defer d.Unmount()
	if err := d.Mount(ctx); err != nil {
		return mountError(err)
	}
	snap := d.Snapshot()

	switch tab {
	case screen.TabOverview:
		st := snap.Stats
		if st == nil {
			return nil
		}
		t := newTable("Métrica", "Valor")
		t.Row("Usuários", fmt.Sprint(st.TotalUsers))
		t.Row("Motoristas", fmt.Sprint(st.TotalDrivers))
		t.Row("Passageiros", fmt.Sprint(st.TotalPassengers))
		t.Row("Viagens", fmt.Sprint(st.TotalTrips))
		t.Row("Concluídas", fmt.Sprint(st.CompletedTrips))
		t.Row("Taxa de conclusão", fmt.Sprintf("%.1f%%", st.CompletionRate))
		fmt.Println(t)
	case screen.TabUsers:
		if snap.State.ShowEmpty(screen.FetchUsers, len(snap.Users)) {
			printEmpty(screen.FetchUsers)
			return nil
		}
		if !snap.State.ShowList(screen.FetchUsers, len(snap.Users)) {
			return nil
		}
		t := newTable("Nome", "Email", "Tipo", "Status")
		for _, u := range snap.Users {
			t.Row(u.Name, u.Email, u.UserType.Label(), u.StatusLabel())
		}
		fmt.Println(t)
	case screen.TabTrips:
		if snap.State.ShowEmpty(screen.FetchTrips, len(snap.Trips)) {
			printEmpty(screen.FetchTrips)
			return nil
		}
		if !snap.State.ShowList(screen.FetchTrips, len(snap.Trips)) {
			return nil
		}
		t := newTable("Data", "Origem", "Destino", "Status", "Preço")
		for _, tr := range snap.Trips {
			t.Row(trip.FormatDate(tr.RequestedAt), tr.PickupAddress, tr.DestinationAddress,
				tr.Status.Label(), fmt.Sprintf("R$ %.2f", tr.EstimatedPrice))
		}
		fmt.Println(t)
	}
	return nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := bootstrap(ctx, false)
	if err != nil {
		return err
	}
	defer a.close()
	a.withPrompts()

	h := screen.NewPassengerHistory(a.client, a.deps)
	defer h.Unmount()
	if err := h.Mount(ctx); err != nil {
		return mountError(err)
	}
	state, entries := h.Entries()
	if h.ShowEmpty() {
		printEmpty(screen.FetchHistory)
		return nil
	}
	if !state.ShowList(screen.FetchHistory, len(entries)) {
		return nil
	}

	t := newTable("Data", "Origem", "Destino", "Status", "Valor", "Motorista")
	for _, e := range entries {
		t.Row(trip.FormatDate(e.RequestedAt), e.PickupAddress, e.DestinationAddress,
			e.Status.Label(), fmt.Sprintf("R$ %.2f", e.FinalPrice), e.DriverName)
	}
	fmt.Println(t)
	return nil
}

func printEmpty(name string) {
	es := screen.EmptyStateFor(name)
	fmt.Println(es.Icon + "  " + es.Title)
	fmt.Println(es.Subtext)
}

// mountError turns a failed screen load into the command's exit error. The
// user already saw the alert, so the message stays short.
func mountError(err error) error {
	if errors.Is(err, screen.ErrNotAuthorized) {
		return errors.New("sessão não permite esta consulta; use 'ridehail login'")
	}
	return errors.New("não foi possível carregar os dados")
}

func newTable(headers ...string) *table.Table {
	return table.New().Headers(headers...)
}
