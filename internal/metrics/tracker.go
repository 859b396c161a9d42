// Package metrics tracks per-frame simulation statistics for the HUDs.
package metrics

import "time"

const defaultWindow = 120

// Tracker keeps rolling windows of step durations and kinetic energy. Both
// back-ends feed it once per frame and read it when drawing their HUD.
type Tracker struct {
	window int
	steps  []time.Duration
	energy []float64
}

// NewTracker builds a tracker holding the last window samples. A window of
// zero or less picks a default of two seconds at 60 fps.
func NewTracker(window int) *Tracker {
	if window <= 0 {
		window = defaultWindow
	}
	return &Tracker{window: window}
}

// ObserveStep records how long one physics step took.
func (t *Tracker) ObserveStep(d time.Duration) {
	t.steps = append(t.steps, d)
	if len(t.steps) > t.window {
		t.steps = t.steps[1:]
	}
}

// ObserveEnergy records the world's kinetic energy after a step.
func (t *Tracker) ObserveEnergy(e float64) {
	t.energy = append(t.energy, e)
	if len(t.energy) > t.window {
		t.energy = t.energy[1:]
	}
}

// StepTime returns the mean step duration over the window, zero before the
// first observation.
func (t *Tracker) StepTime() time.Duration {
	if len(t.steps) == 0 {
		return 0
	}
	var sum time.Duration
	for _, d := range t.steps {
		sum += d
	}
	return sum / time.Duration(len(t.steps))
}

// EnergyHistory returns a copy of the recorded energy samples, oldest first.
func (t *Tracker) EnergyHistory() []float64 {
	out := make([]float64, len(t.energy))
	copy(out, t.energy)
	return out
}

// Energy returns the most recent energy sample, zero before the first.
func (t *Tracker) Energy() float64 {
	if len(t.energy) == 0 {
		return 0
	}
	return t.energy[len(t.energy)-1]
}

// Reset drops all samples but keeps the window size.
func (t *Tracker) Reset() {
	t.steps = t.steps[:0]
	t.energy = t.energy[:0]
}
