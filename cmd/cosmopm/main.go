// Command cosmopm runs one particle-mesh simulation and prints its
// two-point correlation vector. Argument parsing, filesystem layout, and
// any image/CSV encoding of the result are deliberately outside the core
// library's scope; this command is the thin, replaceable shell around it.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"cosmopm/internal/config"
	"cosmopm/internal/simulation"
	"cosmopm/internal/snapshot"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logrus.WithError(err).Fatal("cosmopm failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := config.Default()
	var verbose bool

	cmd := &cobra.Command{
		Use:   "cosmopm",
		Short: "Run a periodic particle-mesh cosmological simulation",
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.InfoLevel)
			}

			sim, err := simulation.New(cfg)
			if err != nil {
				return err
			}
			if cfg.OutputDir != "" {
				sim.Snapshot = snapshot.Writer(snapshot.PlainTextWriter)
			}

			sim.Run()

			result := sim.Correlate()
			for _, v := range result.Values {
				fmt.Printf("%g\n", v)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.Float64Var(&cfg.TimeMax, "t-max", cfg.TimeMax, "total simulated time")
	flags.Float64Var(&cfg.DT, "dt", cfg.DT, "time step")
	flags.Float64Var(&cfg.BoxWidth, "box-width", cfg.BoxWidth, "initial physical box width")
	flags.IntVar(&cfg.CellCount, "cells", cfg.CellCount, "mesh cells per axis")
	flags.Float64Var(&cfg.Expansion, "expansion", cfg.Expansion, "per-step box expansion factor")
	flags.IntVar(&cfg.Particles, "particles", cfg.Particles, "particle count")
	flags.Float64Var(&cfg.Mass, "mass", cfg.Mass, "shared particle mass")
	flags.Int64Var(&cfg.Seed, "seed", cfg.Seed, "deterministic RNG seed")
	flags.StringVar(&cfg.OutputDir, "output-dir", cfg.OutputDir, "directory for periodic density snapshots (disabled if empty)")
	flags.IntVar(&cfg.CorrBins, "bins", cfg.CorrBins, "correlation estimator bin count")
	flags.IntVar(&cfg.NumWorkers, "workers", cfg.NumWorkers, "fine-grained worker pool size (0 = GOMAXPROCS)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug-level logging")

	return cmd
}
