package storage

import (
	"encoding/json"
	"io"
	"os"
)

type ExportData struct {
	Run    RunMetadata          `json:"run"`
	Ticks  []int                `json:"ticks"`
	Series map[string][]float64 `json:"series"`
}

// Export gathers everything stored for a run.
func (s *Store) Export(runID string) (*ExportData, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	ticks, series, err := s.LoadSeries(runID)
	if err != nil {
		return nil, err
	}
	return &ExportData{Run: *meta, Ticks: ticks, Series: series}, nil
}

func (d *ExportData) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

func ExportJSON(path string, d *ExportData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return d.Write(file)
}

func ExportJSONStdout(d *ExportData) error {
	return d.Write(os.Stdout)
}
