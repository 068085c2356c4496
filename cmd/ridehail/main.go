package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ridehail",
		Short:         "Cliente TransportDF para passageiros e administradores",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "tui",
			Short: "Abre a interface interativa",
			RunE:  runTUI,
		},
		newLoginCmd(),
		newLogoutCmd(),
		&cobra.Command{
			Use:   "whoami",
			Short: "Mostra a sessão armazenada",
			RunE:  runWhoami,
		},
		newAdminCmd(),
		&cobra.Command{
			Use:   "history",
			Short: "Lista o histórico de viagens do passageiro",
			RunE:  runHistory,
		},
	)
	return root
}
