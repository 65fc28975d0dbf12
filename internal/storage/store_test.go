package storage

import (
	"strings"
	"testing"

	"github.com/san-kum/chargesim/internal/sim"
)

func sampleResult() *sim.Result {
	return &sim.Result{
		Times:       []float64{1.0 / 60, 2.0 / 60, 3.0 / 60},
		NetCharge:   []float64{2, 2, 2},
		MinOffset:   []float64{-2, 1, 1},
		MaxOffset:   []float64{4, 1, 1},
		Paused:      []bool{false, true, true},
		PausedTicks: 2,
		Metrics:     map[string]float64{"net_charge": 2},
		Fingerprint: 0xdeadbeef,
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg := sim.Config{Dt: 1.0 / 60, Ticks: 3, Seed: 42}
	id, err := st.Save("merge", cfg, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(id, "merge_") {
		t.Errorf("run id = %q, want merge_ prefix", id)
	}

	meta, err := st.Load(id)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Seed != 42 || meta.Ticks != 3 || meta.PausedTicks != 2 {
		t.Errorf("metadata mismatch: %+v", meta)
	}
	if meta.Fingerprint != 0xdeadbeef {
		t.Errorf("fingerprint = %x, want deadbeef", meta.Fingerprint)
	}

	traces, err := st.LoadTraces(id)
	if err != nil {
		t.Fatalf("load traces failed: %v", err)
	}
	byName := map[string][]float64{}
	for _, tr := range traces {
		byName[tr.Name] = tr.Values
	}
	if len(byName["net_charge"]) != 3 || byName["net_charge"][0] != 2 {
		t.Errorf("net_charge trace = %v", byName["net_charge"])
	}
	if byName["paused"][0] != 0 || byName["paused"][1] != 1 {
		t.Errorf("paused trace = %v, want 0,1,1", byName["paused"])
	}
}

func TestListSkipsJunk(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg := sim.Config{Dt: 1.0 / 60, Ticks: 3, Seed: 7}
	if _, err := st.Save("grounded", cfg, sampleResult()); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := st.Save("merge", cfg, sampleResult()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("runs = %d, want 2", len(runs))
	}
}

func TestListMissingDir(t *testing.T) {
	st := New("/nonexistent/chargesim-test")
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("runs = %d, want 0", len(runs))
	}
}
