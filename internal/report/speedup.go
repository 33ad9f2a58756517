package report

import (
	"fmt"
	"io"
	"strings"

	"dirtybench/internal/aggregate"
	"dirtybench/internal/scan"
	"dirtybench/internal/strategy"
)

type Phase int

const (
	PhaseScan Phase = iota
	PhaseHarness
)

func (p Phase) String() string {
	if p == PhaseScan {
		return "Scan"
	}
	return "Harness"
}

func (p Phase) avg(m aggregate.Metrics) float64 {
	if p == PhaseScan {
		return m.ScanAvg
	}
	return m.HarnessAvg
}

// Micros returns the phase duration of every run in microseconds.
func (p Phase) Micros(results []scan.RunResult) []float64 {
	if p == PhaseScan {
		return aggregate.ScanMicros(results)
	}
	return aggregate.HarnessMicros(results)
}

// SpeedupPair compares Target against Baseline in one phase. A value above 1
// means Target is faster.
type SpeedupPair struct {
	Name     string
	Phase    Phase
	Baseline strategy.Strategy
	Target   strategy.Strategy
}

// SpeedupPairs are the comparisons reported for every configuration.
var SpeedupPairs = []SpeedupPair{
	{Name: "Scan (Uffd over SoftDirty)", Phase: PhaseScan, Baseline: strategy.SoftDirty, Target: strategy.Uffd},
	{Name: "Harness (Uffd over SoftDirty)", Phase: PhaseHarness, Baseline: strategy.SoftDirty, Target: strategy.Uffd},
	{Name: "Harness (Uffd over ESD)", Phase: PhaseHarness, Baseline: strategy.EmulatedSoftDirty, Target: strategy.Uffd},
	{Name: "Harness (SoftDirty over ESD)", Phase: PhaseHarness, Baseline: strategy.EmulatedSoftDirty, Target: strategy.SoftDirty},
}

// Of returns baseline average divided by target average, or 0 when either
// strategy is absent or the target average is 0.
func (p SpeedupPair) Of(results StrategyResults) float64 {
	base, ok := results[p.Baseline]
	if !ok {
		return 0
	}
	target, ok := results[p.Target]
	if !ok {
		return 0
	}
	t := p.Phase.avg(target)
	if t <= 0 {
		return 0
	}
	return p.Phase.avg(base) / t
}

// ComparePairs compares the per-run samples of every speedup pair whose two
// strategies are both present.
func ComparePairs(reports map[strategy.Strategy]*scan.StrategyReport) []PairComparison {
	var comparisons []PairComparison
	for _, pair := range SpeedupPairs {
		base, target := reports[pair.Baseline], reports[pair.Target]
		if base == nil || target == nil {
			continue
		}
		comparisons = append(comparisons, PairComparison{
			Pair:   pair,
			Result: aggregate.Compare(pair.Phase.Micros(base.Results), pair.Phase.Micros(target.Results)),
		})
	}
	return comparisons
}

// PrintSpeedups writes one row per configuration with every speedup pair.
func PrintSpeedups(w io.Writer, results []ConfigurationResult) {
	fmt.Fprintln(w, "\nSpeedups (baseline / target):")
	header := fmt.Sprintf("%-10s | %-10s", "N", "D")
	for _, p := range SpeedupPairs {
		header += fmt.Sprintf(" | %-29s", p.Name)
	}
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, strings.Repeat("-", len(header)))
	for _, res := range results {
		row := fmt.Sprintf("%-10d | %-10g", res.N, res.D)
		for _, p := range SpeedupPairs {
			row += fmt.Sprintf(" | %-29s", fmt.Sprintf("%.2fx", p.Of(res.Results)))
		}
		fmt.Fprintln(w, row)
	}
}
