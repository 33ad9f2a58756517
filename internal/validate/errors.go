package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	"dirtybench/internal/scan"
	"dirtybench/internal/strategy"

	"github.com/google/go-cmp/cmp"
)

// RunCountError reports two inputs with a different number of runs.
type RunCountError struct {
	Left      string
	LeftRuns  int
	Right     string
	RightRuns int
}

func (e *RunCountError) Error() string {
	return fmt.Sprintf("inputs have different number of runs: %s: %d, %s: %d",
		e.Left, e.LeftRuns, e.Right, e.RightRuns)
}

// MismatchError reports a run where Uffd and EmulatedSoftDirty disagree.
type MismatchError struct {
	Run      int
	Uffd     scan.ScanResult
	Emulated scan.ScanResult
}

func (e *MismatchError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "scan mismatch at run index %d between %s and %s", e.Run, strategy.Uffd, strategy.EmulatedSoftDirty)
	fmt.Fprintf(&b, "\n  %s: %s", strategy.Uffd, compactJSON(e.Uffd))
	fmt.Fprintf(&b, "\n  %s: %s", strategy.EmulatedSoftDirty, compactJSON(e.Emulated))
	if d := e.Diff(); d != "" {
		fmt.Fprintf(&b, "\n  regions diff (-%s +%s):\n%s", strategy.Uffd, strategy.EmulatedSoftDirty, d)
	}
	return b.String()
}

// Diff renders the region-level difference between the two scans.
func (e *MismatchError) Diff() string {
	return cmp.Diff(e.Uffd.Regions, e.Emulated.Regions)
}

// SupersetError reports reference pages that SoftDirty failed to flag.
type SupersetError struct {
	Run       int
	Reference strategy.Strategy
	Missing   []uint64
}

func (e *SupersetError) Error() string {
	return fmt.Sprintf("%s is not a superset of %s at run index %d: missing pages %v",
		strategy.SoftDirty, e.Reference, e.Run, e.Missing)
}

func compactJSON(s scan.ScanResult) string {
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Sprintf("%+v", s)
	}
	return string(b)
}
