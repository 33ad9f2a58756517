// Package aggregate reduces per-run timings to summary statistics.
package aggregate

import (
	"dirtybench/internal/scan"

	"gonum.org/v1/gonum/stat"
)

// Metrics summarizes the runs of one strategy. All values are microseconds.
type Metrics struct {
	ScanAvg      float64 `json:"scan_avg"`
	ScanStdev    float64 `json:"scan_stdev"`
	HarnessAvg   float64 `json:"harness_avg"`
	HarnessStdev float64 `json:"harness_stdev"`

	Runs int `json:"-"`
	// Runs whose duration was absent and counted as zero.
	ScanMissing    int `json:"-"`
	HarnessMissing int `json:"-"`
}

// Aggregate computes mean and sample standard deviation of both measured phases.
func Aggregate(results []scan.RunResult) Metrics {
	m := Metrics{Runs: len(results)}
	for _, r := range results {
		if r.ScanDuration == nil {
			m.ScanMissing++
		}
		if r.HarnessDuration == nil {
			m.HarnessMissing++
		}
	}
	m.ScanAvg, m.ScanStdev = MeanStdev(ScanMicros(results))
	m.HarnessAvg, m.HarnessStdev = MeanStdev(HarnessMicros(results))
	return m
}

// MeanStdev returns the arithmetic mean and the Bessel-corrected standard
// deviation. The deviation of fewer than two samples is zero, and so is the
// mean of none.
func MeanStdev(xs []float64) (mean, stdev float64) {
	switch len(xs) {
	case 0:
		return 0, 0
	case 1:
		return xs[0], 0
	}
	return stat.MeanStdDev(xs, nil)
}

func ScanMicros(results []scan.RunResult) []float64 {
	xs := make([]float64, len(results))
	for i, r := range results {
		xs[i] = scan.Micros(r.ScanDuration)
	}
	return xs
}

func HarnessMicros(results []scan.RunResult) []float64 {
	xs := make([]float64, len(results))
	for i, r := range results {
		xs[i] = scan.Micros(r.HarnessDuration)
	}
	return xs
}
