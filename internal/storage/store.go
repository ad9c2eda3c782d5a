package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/particlelife/internal/config"
	"github.com/san-kum/particlelife/internal/sim"
)

const (
	metadataFile = "metadata.json"
	metricsFile  = "metrics.csv"
)

// Store keeps one directory per run holding its metadata and metric
// series. Particle frames are never written.
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
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Timestamp      time.Time          `json:"timestamp"`
	Seed           int64              `json:"seed"`
	TicksRun       int                `json:"ticks_run"`
	ElapsedSeconds float64            `json:"elapsed_seconds"`
	TicksPerSecond float64            `json:"ticks_per_second"`
	Config         config.Config      `json:"config"`
	Metrics        map[string]float64 `json:"metrics"`
	Errors         []string           `json:"errors,omitempty"`
}

// Save writes a run under a fresh ID derived from name and the current
// time, and returns the ID.
func (s *Store) Save(name string, cfg *config.Config, result *sim.Result) (string, error) {
	now := time.Now()
	runID, runDir, err := s.allocate(fmt.Sprintf("%s_%d", name, now.Unix()))
	if err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:             runID,
		Name:           name,
		Timestamp:      now,
		Seed:           result.Seed,
		TicksRun:       result.TicksRun,
		ElapsedSeconds: result.Elapsed.Seconds(),
		TicksPerSecond: result.TicksPerSecond(),
		Config:         *cfg,
		Metrics:        result.Metrics,
	}
	for _, e := range result.Errors {
		meta.Errors = append(meta.Errors, e.Error())
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeSeries(filepath.Join(runDir, metricsFile), result.Samples, result.Series); err != nil {
		return "", err
	}
	return runID, nil
}

// allocate creates a run directory, suffixing the ID if it is taken.
func (s *Store) allocate(base string) (string, string, error) {
	if err := s.Init(); err != nil {
		return "", "", err
	}
	id := base
	for n := 2; ; n++ {
		dir := filepath.Join(s.baseDir, id)
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return id, dir, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", "", err
		}
		id = fmt.Sprintf("%s-%d", base, n)
	}
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeSeries(path string, ticks []int, series map[string][]float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}
	sort.Strings(names)

	if err := w.Write(append([]string{"tick"}, names...)); err != nil {
		return err
	}
	for i, tick := range ticks {
		row := make([]string, 0, len(names)+1)
		row = append(row, strconv.Itoa(tick))
		for _, name := range names {
			v := 0.0
			if i < len(series[name]) {
				v = series[name][i]
			}
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first.
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

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
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
		return nil, fmt.Errorf("storage: %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadSeries reads a run's metric series back, keyed by metric name.
func (s *Store) LoadSeries(runID string) ([]int, map[string][]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, metricsFile))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("storage: %s: %w", runID, err)
	}

	series := make(map[string][]float64)
	if len(records) < 1 {
		return []int{}, series, nil
	}

	header := records[0]
	ticks := make([]int, 0, len(records)-1)
	for _, name := range header[1:] {
		series[name] = make([]float64, 0, len(records)-1)
	}

	for i, record := range records[1:] {
		tick, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, nil, fmt.Errorf("storage: %s: row %d: %w", runID, i+1, err)
		}
		ticks = append(ticks, tick)
		for j, name := range header[1:] {
			v, err := strconv.ParseFloat(record[j+1], 64)
			if err != nil {
				return nil, nil, fmt.Errorf("storage: %s: row %d: %w", runID, i+1, err)
			}
			series[name] = append(series[name], v)
		}
	}
	return ticks, series, nil
}
