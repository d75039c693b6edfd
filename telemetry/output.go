package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/gambino19/perlin-art/config"
)

// TrailPoint is one visited position of one traced line, flattened for CSV
// export.
type TrailPoint struct {
	Line  int     `csv:"line"`
	Index int     `csv:"index"`
	X     float64 `csv:"x"`
	Y     float64 `csv:"y"`
}

// OutputManager handles structured run output: windowed telemetry CSV, an
// optional trail dump, and a snapshot of the effective config.
type OutputManager struct {
	dir           string
	telemetryFile *os.File

	telemetryHeaderWritten bool
}

// NewOutputManager creates an output manager rooted at dir. Returns nil if
// dir is empty (output disabled); all methods are nil-safe.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating telemetry.csv: %w", err)
	}

	return &OutputManager{dir: dir, telemetryFile: f}, nil
}

// WriteConfig saves the effective configuration as YAML alongside the CSVs.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteWindow appends a window stats record to telemetry.csv.
func (om *OutputManager) WriteWindow(ws WindowStats) error {
	if om == nil {
		return nil
	}

	records := []WindowStats{ws}

	if !om.telemetryHeaderWritten {
		if err := gocsv.Marshal(records, om.telemetryFile); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
		om.telemetryHeaderWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, om.telemetryFile); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	return nil
}

// WriteTrails dumps every trail point to trails.csv in one shot.
func (om *OutputManager) WriteTrails(points []TrailPoint) error {
	if om == nil {
		return nil
	}

	f, err := os.Create(filepath.Join(om.dir, "trails.csv"))
	if err != nil {
		return fmt.Errorf("creating trails.csv: %w", err)
	}
	defer f.Close()

	if err := gocsv.Marshal(points, f); err != nil {
		return fmt.Errorf("writing trails: %w", err)
	}
	return nil
}

// Close flushes and closes open files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	return om.telemetryFile.Close()
}
