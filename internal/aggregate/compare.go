package aggregate

import (
	"golang.org/x/perf/benchmath"
)

const confidence = 0.95

// Comparison is a distribution-free comparison of two timing samples.
type Comparison struct {
	Baseline benchmath.Summary
	Target   benchmath.Summary
	// Relative change of the target median against the baseline median, in percent.
	Delta       float64
	P           float64
	N1, N2      int
	Significant bool
}

// Compare runs a Mann-Whitney U test of target against baseline and reports
// both medians with their confidence intervals.
func Compare(baseline, target []float64) Comparison {
	s1 := benchmath.NewSample(baseline, &benchmath.DefaultThresholds)
	s2 := benchmath.NewSample(target, &benchmath.DefaultThresholds)

	assumption := benchmath.AssumeNothing
	c := assumption.Compare(s1, s2)

	out := Comparison{
		Baseline:    assumption.Summary(s1, confidence),
		Target:      assumption.Summary(s2, confidence),
		P:           c.P,
		N1:          c.N1,
		N2:          c.N2,
		Significant: c.P < c.Alpha,
	}
	if out.Baseline.Center != 0 {
		out.Delta = (out.Target.Center - out.Baseline.Center) / out.Baseline.Center * 100
	}
	return out
}
