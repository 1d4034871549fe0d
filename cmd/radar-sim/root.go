package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"radar-sim/internal/analysis"
	"radar-sim/internal/config"
	"radar-sim/internal/logging"
	"radar-sim/internal/sim"
	"radar-sim/internal/target"
)

var (
	configPath string
	logLevel   string
	sinkFlag   string
	outFlag    string
	seedFlag   int64
	targetsN   int
)

// cfg is loaded once by the root command before any subcommand runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:           "radar-sim",
	Short:         "Simulated air-defense radar",
	Long:          "radar-sim runs a rotating-beam radar simulation with a terminal dashboard, an HTTP admin API and telemetry export.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logging.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		slog.SetDefault(logging.NewWriter(os.Stderr, level))

		c, err := config.Load(configPath)
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		if flags.Changed("sink") {
			c.Telemetry.Sink = sinkFlag
		}
		if flags.Changed("out") {
			c.Telemetry.File = outFlag
		}
		if flags.Changed("seed") {
			c.Seed = seedFlag
		}
		if flags.Changed("targets") {
			c.InitialTargets = targetsN
		}
		if err := config.Validate(c); err != nil {
			return err
		}
		cfg = c
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Path to radar configuration YAML (defaults apply when empty)")
	pf.StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	pf.StringVar(&sinkFlag, "sink", config.SinkNone, "Telemetry sink: none, stdout, color, file or greptime")
	pf.StringVar(&outFlag, "out", "", "Telemetry JSONL path for the file sink")
	pf.Int64Var(&seedFlag, "seed", 0, "Random seed (0 uses the clock)")
	pf.IntVar(&targetsN, "targets", 5, "Number of initial targets")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(statsCmd)
}

func newRand(c *config.Config) *rand.Rand {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// newAnalyst wires the assessment service to s. Without an API key the
// offline service is used.
func newAnalyst(ctx context.Context, c *config.Config, s *sim.Simulator) *analysis.Coordinator {
	log := logging.FromContext(ctx)
	var svc analysis.Service = analysis.StaticService{}
	if key := c.Analysis.APIKey(); key != "" {
		gc, err := analysis.NewGeminiClient(ctx, c.Analysis.Endpoint, c.Analysis.Model, key, c.Analysis.Timeout)
		if err != nil {
			log.Warn("remote analysis unavailable, using offline service", "err", err)
		} else {
			svc = gc
			log.Info("analysis using remote model", "model", c.Analysis.Model)
		}
	} else {
		log.Info("analysis using offline service", "api_key_env", c.Analysis.APIKeyEnv)
	}
	coord := analysis.NewCoordinator(ctx, svc, func() []target.Target { return s.Snapshot().Targets },
		c.Analysis.Debounce, c.Analysis.Timeout)
	s.OnTargetsChanged(coord.TargetsChanged)
	coord.TargetsChanged(len(s.Snapshot().Targets))
	return coord
}
