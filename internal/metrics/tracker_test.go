package metrics

import (
	"testing"
	"time"
)

func TestTrackerEmpty(t *testing.T) {
	tr := NewTracker(10)
	if tr.StepTime() != 0 {
		t.Errorf("expected zero step time, got %v", tr.StepTime())
	}
	if tr.Energy() != 0 {
		t.Errorf("expected zero energy, got %g", tr.Energy())
	}
	if len(tr.EnergyHistory()) != 0 {
		t.Errorf("expected empty history, got %d samples", len(tr.EnergyHistory()))
	}
}

func TestTrackerStepTime(t *testing.T) {
	tr := NewTracker(10)
	tr.ObserveStep(2 * time.Millisecond)
	tr.ObserveStep(4 * time.Millisecond)
	if got := tr.StepTime(); got != 3*time.Millisecond {
		t.Errorf("expected 3ms mean, got %v", got)
	}
}

func TestTrackerWindow(t *testing.T) {
	tr := NewTracker(3)
	for i := 0; i < 5; i++ {
		tr.ObserveEnergy(float64(i))
	}
	hist := tr.EnergyHistory()
	if len(hist) != 3 {
		t.Fatalf("expected window of 3, got %d", len(hist))
	}
	if hist[0] != 2 || hist[2] != 4 {
		t.Errorf("expected oldest-first [2 3 4], got %v", hist)
	}
	if tr.Energy() != 4 {
		t.Errorf("expected latest energy 4, got %g", tr.Energy())
	}
}

func TestTrackerReset(t *testing.T) {
	tr := NewTracker(10)
	tr.ObserveStep(time.Millisecond)
	tr.ObserveEnergy(5)
	tr.Reset()
	if tr.StepTime() != 0 || tr.Energy() != 0 {
		t.Error("expected cleared samples after reset")
	}
}

func TestTrackerHistoryIsCopy(t *testing.T) {
	tr := NewTracker(10)
	tr.ObserveEnergy(1)
	hist := tr.EnergyHistory()
	hist[0] = 99
	if tr.Energy() != 1 {
		t.Error("mutating the returned history must not affect the tracker")
	}
}
