// Package config validates and holds the construction-time parameters of
// a particle-mesh simulation run.
package config

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// MaxRecommendedCells is the per-axis cell count above which construction
// emits an advisory warning rather than failing outright.
const MaxRecommendedCells = 400

// ErrInvalidConfig wraps every fatal configuration failure so callers can
// test for the category with errors.Is without parsing messages.
var ErrInvalidConfig = errors.New("invalid simulation configuration")

// Config holds every parameter needed to construct a simulation.
type Config struct {
	TimeMax    float64 // t_max, total simulated time
	DT         float64 // Δt, time step
	BoxWidth   float64 // W, current physical box width
	CellCount  int     // N_c, mesh cells per axis
	Expansion  float64 // a, per-step box expansion factor
	Particles  int     // N_p, particle count
	Mass       float64 // shared particle mass
	Seed       int64   // deterministic RNG seed for initial positions
	OutputDir  string  // optional snapshot directory; "" disables snapshotting
	CorrBins   int     // correlation estimator bin count; 0 selects the default
	NumWorkers int     // fine-grained worker pool size; 0 selects GOMAXPROCS
}

// Default returns a small, valid configuration suitable for smoke tests.
func Default() *Config {
	return &Config{
		TimeMax:    1.0,
		DT:         0.01,
		BoxWidth:   1.0,
		CellCount:  32,
		Expansion:  1.0,
		Particles:  1000,
		Mass:       1.0,
		Seed:       1,
		CorrBins:   101,
		NumWorkers: 0,
	}
}

// Validate checks construction-time invariants. Fatal problems are
// returned as a wrapped error; non-fatal oddities are logged as
// warnings and do not prevent construction.
func (c *Config) Validate() error {
	if c.TimeMax <= 0 {
		return fmt.Errorf("%w: t_max must be positive, got %v", ErrInvalidConfig, c.TimeMax)
	}
	if c.DT <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %v", ErrInvalidConfig, c.DT)
	}
	if c.BoxWidth <= 0 {
		return fmt.Errorf("%w: box width must be positive, got %v", ErrInvalidConfig, c.BoxWidth)
	}
	if c.Expansion <= 0 {
		return fmt.Errorf("%w: expansion factor must be positive, got %v", ErrInvalidConfig, c.Expansion)
	}
	if c.CellCount <= 0 {
		return fmt.Errorf("%w: cell count must be positive, got %d", ErrInvalidConfig, c.CellCount)
	}
	if c.Particles <= 0 {
		return fmt.Errorf("%w: particle count must be positive, got %d", ErrInvalidConfig, c.Particles)
	}

	if c.Expansion < 1 {
		logrus.WithField("expansion", c.Expansion).Warn("expansion factor below 1: box will contract")
	}
	if c.CellCount > MaxRecommendedCells {
		logrus.WithField("cell_count", c.CellCount).Warn("cell count exceeds recommended maximum")
	}

	return nil
}

// Clone returns a deep copy (Config has no reference fields, so a value
// copy suffices, but the method is kept to mirror sweep-worker usage
// where each peer mutates its own copy's Expansion field).
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
