package scan

import (
	"encoding/json"
	"fmt"

	"dirtybench/internal/strategy"
)

// ScanResult is the outcome of one page table walk. WalkStart and WalkEnd are
// kept verbatim for diagnostics and never interpreted.
type ScanResult struct {
	WalkStart json.RawMessage `json:"walk_start,omitempty"`
	WalkEnd   json.RawMessage `json:"walk_end,omitempty"`
	Regions   []PageRange     `json:"regions"`
}

// Equal reports whether both scans list the same regions in the same order.
func (s ScanResult) Equal(other ScanResult) bool {
	if len(s.Regions) != len(other.Regions) {
		return false
	}
	for i := range s.Regions {
		if s.Regions[i] != other.Regions[i] {
			return false
		}
	}
	return true
}

func (s ScanResult) PageSet() PageSet {
	return NewPageSet(s.Regions)
}

// RunResult is one repetition of one strategy.
type RunResult struct {
	Scan            ScanResult `json:"scan"`
	ScanDuration    *Duration  `json:"scan_duration"`
	HarnessDuration *Duration  `json:"harness_duration"`
}

func (r *RunResult) UnmarshalJSON(b []byte) error {
	var raw struct {
		Scan            *ScanResult `json:"scan"`
		ScanDuration    *Duration   `json:"scan_duration"`
		HarnessDuration *Duration   `json:"harness_duration"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw.Scan == nil {
		return fmt.Errorf("result is missing \"scan\"")
	}
	r.Scan = *raw.Scan
	r.ScanDuration = raw.ScanDuration
	r.HarnessDuration = raw.HarnessDuration
	return nil
}

// StrategyReport is the payload one invocation of the binary writes.
type StrategyReport struct {
	Strategy strategy.Strategy `json:"strategy"`
	Results  []RunResult       `json:"results"`
}

func (r *StrategyReport) Runs() int {
	return len(r.Results)
}

// Run returns the result of run i, or nil when the report is absent or has no
// such run.
func (r *StrategyReport) Run(i int) *RunResult {
	if r == nil || i < 0 || i >= len(r.Results) {
		return nil
	}
	return &r.Results[i]
}
