package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"radar-sim/internal/sim"
	"radar-sim/internal/stats"
)

var (
	statsTicks int
	statsDir   string
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Write speed and altitude charts for a simulated target set",
	RunE: func(cmd *cobra.Command, args []string) error {
		simulator := sim.NewSimulator(cfg, nil, newRand(cfg))
		ctx := context.Background()
		for i := 0; i < statsTicks; i++ {
			simulator.Step(ctx)
		}
		if err := stats.RenderFiles(statsDir, simulator.Snapshot()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s and %s\n",
			filepath.Join(statsDir, stats.PageFile), filepath.Join(statsDir, stats.SummaryFile))
		return nil
	},
}

func init() {
	statsCmd.Flags().IntVar(&statsTicks, "ticks", 0, "Simulation ticks to run before charting")
	statsCmd.Flags().StringVar(&statsDir, "dir", "build", "Output directory")
}
