package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"radar-sim/internal/admin"
	"radar-sim/internal/logging"
	"radar-sim/internal/sim"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the simulation headless behind the admin HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("addr") {
			cfg.Admin.Addr = serveAddr
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		log := logging.FromContext(ctx)

		sink, cleanup, err := newSink(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		simulator := sim.NewSimulator(cfg, sink, newRand(cfg))
		coord := newAnalyst(ctx, cfg, simulator)
		defer coord.Stop()
		coord.OnUpdate(func(text string, busy bool) {
			if !busy {
				log.Info("analysis updated", "text", text)
			}
		})

		go simulator.Run(ctx)

		srv := admin.NewServer(simulator, coord)
		if err := srv.Start(ctx, cfg.Admin.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		log.Info("radar simulation stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Admin HTTP listen address")
}
