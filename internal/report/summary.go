package report

import (
	"fmt"
	"io"
	"strings"

	"dirtybench/internal/aggregate"
	"dirtybench/internal/strategy"
)

// PrintSummary writes one row per configuration and strategy.
func PrintSummary(w io.Writer, results []ConfigurationResult) {
	fmt.Fprintln(w, "\nSummary Results (Avg µs):")
	fmt.Fprintf(w, "%-10s | %-10s | %-20s | %-10s | %-10s\n", "N", "D", "Strategy", "Scan", "Harness")
	fmt.Fprintln(w, strings.Repeat("-", 70))
	for _, res := range results {
		for _, s := range strategy.All() {
			m, ok := res.Results[s]
			if !ok {
				continue
			}
			fmt.Fprintf(w, "%-10d | %-10g | %-20s | %-10.2f | %-10.2f\n", res.N, res.D, s, m.ScanAvg, m.HarnessAvg)
		}
	}
}

// PrintStrategyTable writes one row per strategy, in canonical order.
func PrintStrategyTable(w io.Writer, results StrategyResults) {
	fmt.Fprintln(w, strings.Repeat("-", 90))
	fmt.Fprintf(w, "%-30s | %-20s | %-20s | %-10s\n", "Strategy", "Avg Scan (µs)", "Avg Harness (µs)", "Runs")
	fmt.Fprintln(w, strings.Repeat("-", 90))
	for _, s := range strategy.All() {
		m, ok := results[s]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "%-30s | %-20s | %-20s | %-10d\n", s, withStdev(m.ScanAvg, m.ScanStdev), withStdev(m.HarnessAvg, m.HarnessStdev), m.Runs)
	}
}

func withStdev(avg, stdev float64) string {
	return fmt.Sprintf("%.2f ± %.2f", avg, stdev)
}

// PrintComparisons writes the statistical comparison of each speedup pair.
func PrintComparisons(w io.Writer, comparisons []PairComparison) {
	if len(comparisons) == 0 {
		return
	}
	fmt.Fprintln(w, strings.Repeat("-", 90))
	fmt.Fprintf(w, "%-32s | %-14s | %-14s | %-9s | %s\n", "Comparison", "Baseline (µs)", "Target (µs)", "Delta", "p")
	fmt.Fprintln(w, strings.Repeat("-", 90))
	for _, c := range comparisons {
		delta := "~"
		if c.Result.Significant {
			delta = fmt.Sprintf("%+.2f%%", c.Result.Delta)
		}
		fmt.Fprintf(w, "%-32s | %-14.2f | %-14.2f | %-9s | p=%.3f n=%d+%d\n",
			c.Pair.Name, c.Result.Baseline.Center, c.Result.Target.Center, delta, c.Result.P, c.Result.N1, c.Result.N2)
	}
}

// PairComparison is a speedup pair together with the comparison of its samples.
type PairComparison struct {
	Pair   SpeedupPair
	Result aggregate.Comparison
}
