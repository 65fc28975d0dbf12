package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/chargesim/internal/world"
)

// Config holds run parameters.
type Config struct {
	Dt    float64
	Ticks int
	Seed  int64
}

func DefaultConfig() Config {
	return Config{Dt: 1.0 / 60, Ticks: 600, Seed: 1}
}

func (c Config) validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("%w, got %g", ErrInvalidDt, c.Dt)
	}
	if c.Ticks <= 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidTicks, c.Ticks)
	}
	return nil
}

// Metric aggregates a scalar over a run, observing the world after each
// tick.
type Metric interface {
	Name() string
	Observe(w *world.World, t float64)
	Value() float64
	Reset()
}

// Observer is notified after each tick; used by live views.
type Observer interface {
	OnTick(w *world.World, t float64)
}

// Result captures the per-tick traces of a run.
type Result struct {
	Times       []float64
	NetCharge   []float64
	MinOffset   []float64
	MaxOffset   []float64
	Paused      []bool
	PausedTicks int
	Metrics     map[string]float64

	// Fingerprint digests the final world state.
	Fingerprint uint64
}

// Runner executes a stepper over a world for a fixed number of ticks,
// recording traces and feeding metrics and observers.
type Runner struct {
	stepper   *Stepper
	metrics   []Metric
	observers []Observer
}

func NewRunner(stepper *Stepper) *Runner {
	return &Runner{stepper: stepper}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Run advances w by cfg.Ticks steps of cfg.Dt seconds each, mutating w
// in place. The context is checked between ticks; on cancellation the
// partial result is returned along with the context error.
func (r *Runner) Run(ctx context.Context, w *world.World, cfg Config) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if len(w.Bodies) == 0 {
		return nil, ErrEmptyWorld
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	res := &Result{
		Times:     make([]float64, 0, cfg.Ticks),
		NetCharge: make([]float64, 0, cfg.Ticks),
		MinOffset: make([]float64, 0, cfg.Ticks),
		MaxOffset: make([]float64, 0, cfg.Ticks),
		Paused:    make([]bool, 0, cfg.Ticks),
		Metrics:   make(map[string]float64),
	}

	t := 0.0
	for i := 0; i < cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			res.finish(r.metrics, w)
			return res, ctx.Err()
		default:
		}

		r.stepper.Step(w, cfg.Dt)
		t += cfg.Dt

		res.record(w, t)
		for _, m := range r.metrics {
			m.Observe(w, t)
		}
		for _, o := range r.observers {
			o.OnTick(w, t)
		}
	}

	res.finish(r.metrics, w)
	return res, nil
}

func (res *Result) record(w *world.World, t float64) {
	res.Times = append(res.Times, t)
	res.NetCharge = append(res.NetCharge, float64(w.NetCharge()))
	res.Paused = append(res.Paused, w.ContactPaused)
	if w.ContactPaused {
		res.PausedTicks++
	}

	lo, hi := 0.0, 0.0
	first := true
	for _, b := range w.Bodies {
		c, ok := b.(*world.Conductor)
		if !ok {
			continue
		}
		v := float64(c.Offset)
		if first {
			lo, hi = v, v
			first = false
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	res.MinOffset = append(res.MinOffset, lo)
	res.MaxOffset = append(res.MaxOffset, hi)
}

func (res *Result) finish(metrics []Metric, w *world.World) {
	for _, m := range metrics {
		res.Metrics[m.Name()] = m.Value()
	}
	res.Fingerprint = w.Fingerprint()
}
