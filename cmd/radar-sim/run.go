package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"radar-sim/internal/admin"
	"radar-sim/internal/config"
	"radar-sim/internal/logging"
	"radar-sim/internal/sim"
	"radar-sim/internal/tui"
)

var (
	runLogFile string
	runAdmin   bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the interactive terminal radar dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("run needs an interactive terminal; use serve for headless mode")
		}
		if s := cfg.Telemetry.Sink; s == config.SinkStdout || s == config.SinkColor {
			return fmt.Errorf("sink %q would draw over the dashboard; use file or greptime", s)
		}

		level, err := logging.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		log, closeLog, err := logging.NewFile(runLogFile, level)
		if err != nil {
			return err
		}
		defer closeLog()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		ctx = logging.NewContext(ctx, log)

		sink, cleanup, err := newSink(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		tw := tui.NewWriter()
		simulator := sim.NewSimulator(cfg, combine(sink, tw), newRand(cfg))
		coord := newAnalyst(ctx, cfg, simulator)
		defer coord.Stop()

		if runAdmin {
			srv := admin.NewServer(simulator, coord)
			go func() {
				tw.SetAdminStatus(true)
				if err := srv.Start(ctx, cfg.Admin.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("admin server failed", "err", err)
				}
				tw.SetAdminStatus(false)
			}()
		}

		return tui.Run(ctx, simulator, coord, tw, cfg.TickInterval())
	},
}

func init() {
	runCmd.Flags().StringVar(&runLogFile, "log-file", "radar-sim.log", "Log file path (the dashboard owns the terminal)")
	runCmd.Flags().BoolVar(&runAdmin, "admin", true, "Serve the admin HTTP API alongside the dashboard")
}
