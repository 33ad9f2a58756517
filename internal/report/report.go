// Package report holds the persisted sweep report: one aggregated entry per
// configuration and strategy.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"dirtybench/internal/aggregate"
	"dirtybench/internal/config"
	"dirtybench/internal/strategy"
)

// StrategyResults maps each strategy to its aggregate. It encodes as a JSON
// object keyed by canonical strategy name.
type StrategyResults map[strategy.Strategy]aggregate.Metrics

// ConfigurationResult is one entry of the persisted report.
type ConfigurationResult struct {
	N       int             `json:"n"`
	D       float64         `json:"d"`
	Results StrategyResults `json:"results"`
}

func (c ConfigurationResult) Point() config.Point {
	return config.Point{N: c.N, D: c.D}
}

// Write stores the report at path atomically: it is written to a temporary
// file next to path and renamed into place.
func Write(path string, results []ConfigurationResult) error {
	if results == nil {
		results = []ConfigurationResult{}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	ok := false
	defer func() {
		_ = tmp.Close()
		if !ok {
			_ = os.Remove(tmpPath)
		}
	}()

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return err
	}
	ok = true
	return nil
}

// Load reads a report written by Write.
func Load(path string) ([]ConfigurationResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var results []ConfigurationResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("failed to parse report %s: %w", path, err)
	}
	return results, nil
}
