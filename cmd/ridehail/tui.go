package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/masterchefhck/transportdf-mvp-sub001/internal/alert"
	"github.com/masterchefhck/transportdf-mvp-sub001/internal/realtime"
	"github.com/masterchefhck/transportdf-mvp-sub001/internal/tui"
)

func runTUI(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := bootstrap(ctx, true)
	if err != nil {
		return err
	}
	defer a.close()

	if alert.Detect(a.cfg.Alert.Mode, os.Stdout.Fd()) != alert.KindModal {
		return errors.New("a interface interativa requer um terminal; use os subcomandos")
	}

	var listener *realtime.Listener
	if a.cfg.Realtime.Enabled {
		listener = realtime.NewListener(realtime.Config{URL: a.cfg.Realtime.URL}, a.logger)
	}

	return tui.Run(ctx, tui.Deps{
		Screen:    a.deps,
		Nav:       a.nav,
		Modals:    alert.NewModalFacade(),
		Admin:     a.client,
		Passenger: a.client,
		Auth:      a.client,
		Realtime:  listener,
	})
}
