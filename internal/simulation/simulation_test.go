package simulation

import (
	"math"
	"testing"

	"cosmopm/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		TimeMax:    0.05,
		DT:         0.01,
		BoxWidth:   1.0,
		CellCount:  4,
		Expansion:  1.0,
		Particles:  64,
		Mass:       1.0,
		Seed:       1,
		CorrBins:   11,
		NumWorkers: 2,
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.TimeMax = 0
	if _, err := New(cfg); err == nil {
		t.Fatal("expected error for non-positive t_max")
	}
}

func TestRunKeepsPositionsInUnitBox(t *testing.T) {
	sim, err := New(testConfig())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	sim.Run()

	for i, p := range sim.Group.Particles {
		if p.Position.X < 0 || p.Position.X >= 1 ||
			p.Position.Y < 0 || p.Position.Y >= 1 ||
			p.Position.Z < 0 || p.Position.Z >= 1 {
			t.Fatalf("particle %d left the unit box: %+v", i, p.Position)
		}
	}
}

func TestRunWithExpansionGrowsBoxWidth(t *testing.T) {
	cfg := testConfig()
	cfg.Expansion = 1.02

	sim, err := New(cfg)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	sim.Run()

	if sim.BoxWidth() <= cfg.BoxWidth {
		t.Errorf("expected box width to grow, started at %v ended at %v", cfg.BoxWidth, sim.BoxWidth())
	}
}

func TestRunWithContractionShrinksBoxWidth(t *testing.T) {
	cfg := testConfig()
	cfg.Expansion = 0.98

	sim, err := New(cfg)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	sim.Run()

	if sim.BoxWidth() >= cfg.BoxWidth {
		t.Errorf("expected box width to shrink, started at %v ended at %v", cfg.BoxWidth, sim.BoxWidth())
	}
}

func TestCorrelateReturnsConfiguredBinCount(t *testing.T) {
	cfg := testConfig()
	sim, err := New(cfg)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	sim.Run()

	result := sim.Correlate()
	if len(result.Values) != cfg.CorrBins {
		t.Errorf("expected %d correlation bins, got %d", cfg.CorrBins, len(result.Values))
	}
	for b, v := range result.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("bin %d: correlation value is not finite: %v", b, v)
		}
	}
}

func TestSingleParticleCorrelationIsAllMinusOne(t *testing.T) {
	cfg := testConfig()
	cfg.Particles = 1
	sim, err := New(cfg)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	result := sim.Correlate()
	for b, v := range result.Values {
		if v != -1 {
			t.Errorf("bin %d: expected -1 for a single-particle group (no pairs), got %v", b, v)
		}
	}
}

func TestWorkerCountDefaultsWhenUnset(t *testing.T) {
	cfg := testConfig()
	cfg.NumWorkers = 0
	if WorkerCount(cfg) <= 0 {
		t.Error("expected a positive default worker count")
	}
}
