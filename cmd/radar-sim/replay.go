package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"radar-sim/internal/config"
	"radar-sim/internal/sim"
)

var (
	replayInput string
	replaySpeed float64
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay an exported target log",
	Long:  "replay feeds target rows from a JSONL log back into the configured sink, STDOUT by default.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if replayInput == "" {
			return errors.New("input file required")
		}
		if !cmd.Flags().Changed("sink") {
			cfg.Telemetry.Sink = config.SinkStdout
		}
		writer, cleanup, err := newSink(cfg)
		if err != nil {
			return err
		}
		defer cleanup()
		if writer == nil {
			return errors.New("replay needs a sink other than none")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		n, err := sim.ReplayLogFile(ctx, replayInput, writer, replaySpeed)
		if err != nil {
			return fmt.Errorf("replay stopped after %d rows: %w", n, err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "replayed %d rows\n", n)
		return nil
	},
}

func init() {
	replayCmd.Flags().StringVar(&replayInput, "input", "", "Path to target log file")
	replayCmd.Flags().Float64Var(&replaySpeed, "speed", 1.0, "Playback speed multiplier (0 replays without delay)")
	replayCmd.MarkFlagRequired("input")
}
