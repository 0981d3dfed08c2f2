// Package storage persists evaluated runs as a metadata file and a
// trajectory CSV under one directory per run.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/fbio/internal/config"
	"github.com/san-kum/fbio/internal/dynamo"
	"github.com/san-kum/fbio/internal/pbtk"
)

const (
	metadataFile = "metadata.json"
	statesFile   = "states.csv"
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
	ID         string             `json:"id"`
	Chemical   pbtk.Chemical      `json:"chemical"`
	Timestamp  time.Time          `json:"timestamp"`
	BodyWeight float64            `json:"body_weight"`
	Horizon    float64            `json:"horizon"`
	GridPoints int                `json:"grid_points"`
	Integrator string             `json:"integrator"`
	Fbio       float64            `json:"fbio"`
	Factors    pbtk.Factors       `json:"factors"`
	Stats      dynamo.Stats       `json:"stats"`
	Metrics    map[string]float64 `json:"metrics"`
}

// NewMetadata describes an outcome produced from cfg. Non-finite metric
// values are dropped since JSON cannot carry them.
func NewMetadata(cfg *config.Config, out *pbtk.Outcome) RunMetadata {
	meta := RunMetadata{
		Chemical:   out.Chemical,
		BodyWeight: cfg.Physiology.BodyWeight,
		Horizon:    cfg.Horizon,
		GridPoints: cfg.GridPoints,
		Integrator: cfg.Integrator,
		Fbio:       out.Fbio,
		Factors:    out.Factors,
		Metrics:    make(map[string]float64),
	}
	if out.Result != nil {
		meta.Stats = out.Result.Stats
		for k, v := range out.Result.Metrics {
			if !math.IsNaN(v) && !math.IsInf(v, 0) {
				meta.Metrics[k] = v
			}
		}
	}
	return meta
}

func runName(chemical string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '-'
		}
	}, chemical)
	if name == "" {
		name = "run"
	}
	return name
}

// Save writes meta and the trajectory of result and returns the new run ID.
func (s *Store) Save(meta RunMetadata, result *dynamo.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", runName(meta.Chemical.Name), now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, statesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := writeStates(w, result); err != nil {
		return "", err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return runID, nil
}

func header(width int) []string {
	h := []string{"time"}
	for i := 0; i < width; i++ {
		if width == pbtk.NumStates {
			h = append(h, pbtk.StateNames[i])
		} else {
			h = append(h, fmt.Sprintf("x%d", i))
		}
	}
	return h
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func writeStates(w *csv.Writer, result *dynamo.Result) error {
	if result == nil || len(result.States) == 0 {
		return nil
	}

	if err := w.Write(header(len(result.States[0]))); err != nil {
		return err
	}

	for i, x := range result.States {
		row := make([]string, 0, len(x)+1)
		row = append(row, formatFloat(result.Times[i]))
		for _, val := range x {
			row = append(row, formatFloat(val))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// List returns every readable run, newest first.
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

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	return &meta, nil
}

func (s *Store) LoadStates(runID string) ([]dynamo.State, []float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, statesFile))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) < 2 {
		return []dynamo.State{}, []float64{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	states := make([]dynamo.State, 0, len(records)-1)

	for i := 1; i < len(records); i++ {
		record := records[i]

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("run %s line %d: %w", runID, i+1, err)
		}

		state := make(dynamo.State, len(record)-1)
		for j := 1; j < len(record); j++ {
			state[j-1], err = strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, nil, fmt.Errorf("run %s line %d: %w", runID, i+1, err)
			}
		}

		times = append(times, t)
		states = append(states, state)
	}

	return states, times, nil
}
