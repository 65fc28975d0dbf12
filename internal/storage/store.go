// Package storage persists simulation runs: one directory per run with
// JSON metadata and CSV traces.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/chargesim/internal/sim"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Scenario    string             `json:"scenario"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        int64              `json:"seed"`
	Dt          float64            `json:"dt"`
	Ticks       int                `json:"ticks"`
	PausedTicks int                `json:"paused_ticks"`
	Metrics     map[string]float64 `json:"metrics"`
	Fingerprint uint64             `json:"fingerprint"`
}

// Save writes one run to disk and returns its ID.
func (s *Store) Save(scenario string, cfg sim.Config, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%s", scenario, uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Scenario:    scenario,
		Timestamp:   time.Now(),
		Seed:        cfg.Seed,
		Dt:          cfg.Dt,
		Ticks:       cfg.Ticks,
		PausedTicks: result.PausedTicks,
		Metrics:     result.Metrics,
		Fingerprint: result.Fingerprint,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "traces.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := []string{"time", "net_charge", "min_offset", "max_offset", "paused"}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i := range result.Times {
		row := []string{
			strconv.FormatFloat(result.Times[i], 'f', 6, 64),
			strconv.FormatFloat(result.NetCharge[i], 'f', 0, 64),
			strconv.FormatFloat(result.MinOffset[i], 'f', 0, 64),
			strconv.FormatFloat(result.MaxOffset[i], 'f', 0, 64),
			strconv.FormatBool(result.Paused[i]),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// Trace is one named column of a stored run.
type Trace struct {
	Name   string
	Values []float64
}

// LoadTraces reads the per-tick columns of a run. The boolean pause
// column comes back as 0/1.
func (s *Store) LoadTraces(runID string) ([]Trace, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "traces.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("storage: run %s has no trace data", runID)
	}

	header := records[0]
	traces := make([]Trace, len(header))
	for i, name := range header {
		traces[i] = Trace{Name: name, Values: make([]float64, 0, len(records)-1)}
	}

	for _, record := range records[1:] {
		for i, cell := range record {
			if i >= len(traces) {
				break
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				if b, berr := strconv.ParseBool(cell); berr == nil {
					if b {
						v = 1
					}
				} else {
					continue
				}
			}
			traces[i].Values = append(traces[i].Values, v)
		}
	}
	return traces, nil
}
