package compute

import "testing"

func TestModeSelectorDefaultsToParallelWithNoHistory(t *testing.T) {
	s := NewModeSelector()
	if !s.ShouldParallelize("deposit") {
		t.Error("expected ModeAuto with no history to favor parallel")
	}
}

func TestModeSelectorOverrides(t *testing.T) {
	s := NewModeSelector()

	s.SetMode(ModeSerial)
	if s.ShouldParallelize("deposit") {
		t.Error("expected ModeSerial to force serial regardless of history")
	}

	s.SetMode(ModeParallel)
	if !s.ShouldParallelize("deposit") {
		t.Error("expected ModeParallel to force parallel regardless of history")
	}
}

func TestModeSelectorAutoPicksFasterPath(t *testing.T) {
	s := NewModeSelector()
	s.Record("gradient", PassSerial, 100)
	s.Record("gradient", PassParallel, 900)

	if s.ShouldParallelize("gradient") {
		t.Error("expected auto mode to prefer the faster serial path")
	}

	s2 := NewModeSelector()
	s2.Record("gradient", PassSerial, 900)
	s2.Record("gradient", PassParallel, 100)

	if !s2.ShouldParallelize("gradient") {
		t.Error("expected auto mode to prefer the faster parallel path")
	}
}

func TestModeSelectorStatsAreIndependentPerPass(t *testing.T) {
	s := NewModeSelector()
	s.Record("deposit", PassParallel, 50)
	s.Record("deposit", PassParallel, 150)

	_, parallel := s.Stats("deposit")
	if parallel.Count != 2 || parallel.AverageNanos != 100 {
		t.Errorf("expected count=2 average=100, got %+v", parallel)
	}

	serialOther, parallelOther := s.Stats("poisson")
	if serialOther.Count != 0 || parallelOther.Count != 0 {
		t.Error("expected an unrelated pass to have no recorded history")
	}
}
