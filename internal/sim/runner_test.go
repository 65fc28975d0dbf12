package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/chargesim/internal/world"
)

func testWorld(s *Stepper) *world.World {
	w := world.New()
	w.Bodies = append(w.Bodies,
		world.NewConductor(world.Vec2{X: 0}, 50, 4, false, s.Rand()),
		world.NewConductor(world.Vec2{X: 160}, 50, -2, false, s.Rand()),
	)
	return w
}

func TestRunnerRun(t *testing.T) {
	s := NewStepper(1, nil)
	r := NewRunner(s)
	w := testWorld(s)

	res, err := r.Run(context.Background(), w, Config{Dt: 1.0 / 60, Ticks: 30, Seed: 1})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(res.Times) != 30 || len(res.NetCharge) != 30 {
		t.Fatalf("trace lengths = %d/%d, want 30", len(res.Times), len(res.NetCharge))
	}
	for _, q := range res.NetCharge {
		if q != 2 {
			t.Fatalf("net charge = %v, want 2 (charge is conserved without grounding)", q)
		}
	}
	if res.Fingerprint != w.Fingerprint() {
		t.Error("result fingerprint must match the final world")
	}
}

func TestRunnerValidation(t *testing.T) {
	s := NewStepper(2, nil)
	r := NewRunner(s)
	w := testWorld(s)

	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{"zero dt", Config{Dt: 0, Ticks: 10}, ErrInvalidDt},
		{"negative dt", Config{Dt: -0.1, Ticks: 10}, ErrInvalidDt},
		{"zero ticks", Config{Dt: 0.01, Ticks: 0}, ErrInvalidTicks},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := r.Run(context.Background(), w, tt.cfg); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := r.Run(context.Background(), world.New(), Config{Dt: 0.01, Ticks: 10}); !errors.Is(err, ErrEmptyWorld) {
		t.Errorf("err = %v, want %v", err, ErrEmptyWorld)
	}
}

func TestRunnerCancellation(t *testing.T) {
	s := NewStepper(3, nil)
	r := NewRunner(s)
	w := testWorld(s)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := r.Run(ctx, w, Config{Dt: 1.0 / 60, Ticks: 1000})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if res == nil {
		t.Fatal("cancellation must still return the partial result")
	}
}

type countingMetric struct {
	n int
}

func (m *countingMetric) Name() string                      { return "count" }
func (m *countingMetric) Observe(w *world.World, t float64) { m.n++ }
func (m *countingMetric) Value() float64                    { return float64(m.n) }
func (m *countingMetric) Reset()                            { m.n = 0 }

func TestRunnerMetrics(t *testing.T) {
	s := NewStepper(4, nil)
	r := NewRunner(s)
	m := &countingMetric{}
	r.AddMetric(m)

	res, err := r.Run(context.Background(), testWorld(s), Config{Dt: 1.0 / 60, Ticks: 25})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if got := res.Metrics["count"]; got != 25 {
		t.Errorf("metric observed %v ticks, want 25", got)
	}
}

func TestEnsembleDeterminism(t *testing.T) {
	s := NewStepper(5, nil)
	base := testWorld(s)

	cfg := Config{Dt: 1.0 / 60, Ticks: 40}
	e := NewEnsemble(4, 100)

	first, err := e.Run(context.Background(), base, cfg)
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}
	second, err := e.Run(context.Background(), base, cfg)
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}

	if len(first) != 4 {
		t.Fatalf("results = %d, want 4", len(first))
	}
	for i := range first {
		if first[i].Fingerprint != second[i].Fingerprint {
			t.Errorf("seed %d: reruns diverged", 100+i)
		}
	}

	// The base world is cloned per run and must survive untouched.
	if base.ContactPaused {
		t.Error("ensemble mutated the base world")
	}
}
