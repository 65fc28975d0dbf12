// Package metrics provides run-level aggregates over simulation traces.
package metrics

import (
	"math"

	"github.com/san-kum/chargesim/internal/world"
)

// NetCharge tracks the mean absolute total charge of the world, in
// elementary units. Constant for an isolated system; decays toward zero
// when a grounded conductor is bleeding charge off.
type NetCharge struct {
	sum     float64
	samples int
}

func NewNetCharge() *NetCharge { return &NetCharge{} }

func (m *NetCharge) Name() string { return "net_charge" }

func (m *NetCharge) Observe(w *world.World, t float64) {
	m.sum += math.Abs(float64(w.NetCharge()))
	m.samples++
}

func (m *NetCharge) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *NetCharge) Reset() {
	m.sum = 0
	m.samples = 0
}

// PauseFraction reports the fraction of observed ticks spent in the
// contact pause.
type PauseFraction struct {
	paused  int
	samples int
}

func NewPauseFraction() *PauseFraction { return &PauseFraction{} }

func (m *PauseFraction) Name() string { return "pause_fraction" }

func (m *PauseFraction) Observe(w *world.World, t float64) {
	m.samples++
	if w.ContactPaused {
		m.paused++
	}
}

func (m *PauseFraction) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return float64(m.paused) / float64(m.samples)
}

func (m *PauseFraction) Reset() {
	m.paused = 0
	m.samples = 0
}

// MaxSwing tracks the largest per-tick angular move of any electron,
// wrap-aware, across the whole run. Under the integrator clamp this can
// only exceed the clamp when a relayout replaces angles wholesale.
type MaxSwing struct {
	prev map[int][]float64
	max  float64
}

func NewMaxSwing() *MaxSwing { return &MaxSwing{prev: make(map[int][]float64)} }

func (m *MaxSwing) Name() string { return "max_swing" }

func (m *MaxSwing) Observe(w *world.World, t float64) {
	next := make(map[int][]float64, len(w.Bodies))
	for i, b := range w.Bodies {
		c, ok := b.(*world.Conductor)
		if !ok {
			continue
		}
		next[i] = append([]float64(nil), c.Angles...)

		last, ok := m.prev[i]
		if !ok || len(last) != len(c.Angles) {
			continue
		}
		for j, a := range c.Angles {
			d := math.Abs(world.WrapAngle(a - last[j]))
			if d > m.max {
				m.max = d
			}
		}
	}
	m.prev = next
}

func (m *MaxSwing) Value() float64 { return m.max }

func (m *MaxSwing) Reset() {
	m.prev = make(map[int][]float64)
	m.max = 0
}
