// Package simulation sequences the particle-mesh passes into the fixed
// per-step pipeline and drives it to completion.
package simulation

import (
	"fmt"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"cosmopm/internal/compute"
	"cosmopm/internal/config"
	"cosmopm/internal/correlation"
	"cosmopm/internal/mesh"
	"cosmopm/internal/physics"
	"cosmopm/internal/snapshot"
	"cosmopm/pkg/fft"
)

// Simulation holds the entire state of one particle-mesh run: the
// particle group, mesh buffers, and the FFT plan bound to those buffers.
// Mesh buffers are reused every step; the particle group is mutated in
// place by the integrator and expander.
type Simulation struct {
	Config *config.Config

	Group *physics.Group
	Mesh  *mesh.Mesh
	plan  *fft.Plan3D

	// modes decides, per pass, whether the serial or worker-pool path is
	// worth taking: at small Nc/particle counts the goroutine dispatch
	// in compute.ForEachChunk can cost more than it saves.
	modes *compute.ModeSelector

	boxWidth float64
	t        float64

	// Snapshot, if non-nil, is invoked every snapshot.Every steps with
	// the real part of the density buffer. It is a pure side effect and
	// must never influence simulation state.
	Snapshot snapshot.Writer
}

// New constructs a simulation from cfg. It returns an error for any
// fatal configuration or resource failure; advisory warnings are logged
// by cfg.Validate and do not prevent construction.
func New(cfg *config.Config) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m, err := mesh.New(cfg.CellCount)
	if err != nil {
		return nil, fmt.Errorf("simulation: allocate mesh: %w", err)
	}

	plan, err := fft.NewPlan3D(m)
	if err != nil {
		return nil, fmt.Errorf("simulation: build fft plan: %w", err)
	}

	return &Simulation{
		Config:   cfg,
		Group:    physics.NewGroup(cfg.Particles, cfg.Mass, cfg.Seed),
		Mesh:     m,
		plan:     plan,
		modes:    compute.NewModeSelector(),
		boxWidth: cfg.BoxWidth,
	}, nil
}

// BoxWidth returns the current physical box width, which grows or
// shrinks every step per the configured expansion factor.
func (s *Simulation) BoxWidth() float64 {
	return s.boxWidth
}

// Run advances the simulation from t=0 to t_max, one step at a time, in
// the strict, non-reorderable order: deposit, forward FFT, Poisson
// scale, backward FFT, gradient, integrate, expand. No two steps
// overlap.
func (s *Simulation) Run() {
	cfg := s.Config
	workers := cfg.NumWorkers
	step := 0

	for s.t = 0; s.t < cfg.TimeMax; s.t += cfg.DT {
		s.runStep(workers)

		if s.Snapshot != nil && step%snapshot.Every == 0 {
			s.emitSnapshot()
		}
		step++
	}

	logrus.WithFields(logrus.Fields{
		"t_max":           cfg.TimeMax,
		"steps":           step,
		"final_box_width": s.boxWidth,
	}).Info("simulation run complete")
}

func (s *Simulation) runStep(workers int) {
	s.runPass("deposit",
		func() { physics.Deposit(s.Group, s.Mesh, s.boxWidth) },
		func() { physics.ParallelDeposit(s.Group, s.Mesh, s.boxWidth, workers) })

	s.plan.Forward()
	s.runPass("poisson",
		func() { physics.SolvePoisson(s.Mesh, s.boxWidth) },
		func() { physics.ParallelSolvePoisson(s.Mesh, s.boxWidth, workers) })
	s.plan.Backward()

	var field *physics.Field
	s.runPass("gradient",
		func() { field = physics.Gradient(s.Mesh, s.boxWidth) },
		func() { field = physics.ParallelGradient(s.Mesh, s.boxWidth, workers) })

	s.runPass("integrate",
		func() { physics.Step(s.Group, field, s.Mesh.Nc, s.Config.DT) },
		func() { physics.ParallelStep(s.Group, field, s.Mesh.Nc, s.Config.DT, workers) })

	s.runPass("expansion",
		func() { s.boxWidth = physics.Expand(s.Group, s.boxWidth, s.Config.Expansion) },
		func() { s.boxWidth = physics.ParallelExpand(s.Group, s.boxWidth, s.Config.Expansion, workers) })
}

// runPass executes serialFn or parallelFn for the named inner pass,
// whichever s.modes currently recommends, and feeds the measured wall
// clock back into the selector so later steps can adapt.
func (s *Simulation) runPass(name string, serialFn, parallelFn func()) {
	kind := compute.PassParallel
	fn := parallelFn
	if !s.modes.ShouldParallelize(name) {
		kind = compute.PassSerial
		fn = serialFn
	}

	start := time.Now()
	fn()
	s.modes.Record(name, kind, float64(time.Since(start).Nanoseconds()))
}

func (s *Simulation) emitSnapshot() {
	field := make([]float64, s.Mesh.Len())
	for i, v := range s.Mesh.Density {
		field[i] = real(v)
	}
	path := fmt.Sprintf("%s/density.txt", s.Config.OutputDir)
	if err := s.Snapshot(field, s.Mesh.Nc, path); err != nil {
		logrus.WithError(err).WithField("path", path).Error("snapshot write failed")
	}
}

// Correlate runs the two-point correlation estimator over the current
// particle group using the configured bin count, in parallel across the
// configured worker count.
func (s *Simulation) Correlate() correlation.Result {
	bins := s.Config.CorrBins
	if bins <= 0 {
		bins = correlation.DefaultBins
	}
	return correlation.ParallelEstimate(s.Group, bins, s.Config.NumWorkers)
}

// WorkerCount resolves the configured worker count, defaulting to
// GOMAXPROCS the same way compute.ForEachChunk does, so callers outside
// this package can report the concurrency level a run will actually use.
func WorkerCount(cfg *config.Config) int {
	if cfg.NumWorkers > 0 {
		return cfg.NumWorkers
	}
	return runtime.GOMAXPROCS(0)
}
