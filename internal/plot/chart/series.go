// Package chart turns sweep results into the panels and speedup grids the
// renderers draw.
package chart

import (
	"fmt"
	"sort"

	"dirtybench/internal/report"
	"dirtybench/internal/strategy"
)

// Point is one x/y coordinate with a symmetric error.
type Point struct {
	X, Y, Err float64
}

type Series struct {
	Strategy strategy.Strategy
	Points   []Point
}

// Panel is one chart: a phase of every strategy against one sweep axis, with
// the other axis held fixed.
type Panel struct {
	Name     string
	Title    string
	XLabel   string
	YLabel   string
	XLogBase int
	Series   []Series
}

// Grid holds a speedup pair for every configuration. Rows follow D, columns
// follow N, both ascending. Missing configurations are 0.
type Grid struct {
	Pair   report.SpeedupPair
	N      []int
	D      []float64
	Values [][]float64
}

type index struct {
	byPoint map[[2]float64]report.StrategyResults
	n       []int
	d       []float64
}

func newIndex(results []report.ConfigurationResult) index {
	idx := index{byPoint: make(map[[2]float64]report.StrategyResults)}
	seenN := make(map[int]bool)
	seenD := make(map[float64]bool)
	for _, r := range results {
		idx.byPoint[[2]float64{float64(r.N), r.D}] = r.Results
		if !seenN[r.N] {
			seenN[r.N] = true
			idx.n = append(idx.n, r.N)
		}
		if !seenD[r.D] {
			seenD[r.D] = true
			idx.d = append(idx.d, r.D)
		}
	}
	sort.Ints(idx.n)
	sort.Float64s(idx.d)
	return idx
}

func (idx index) get(n int, d float64) (report.StrategyResults, bool) {
	r, ok := idx.byPoint[[2]float64{float64(n), d}]
	return r, ok
}

func phaseValues(p report.Phase, results report.StrategyResults, s strategy.Strategy) (avg, stdev float64, ok bool) {
	m, ok := results[s]
	if !ok {
		return 0, 0, false
	}
	if p == report.PhaseScan {
		return m.ScanAvg, m.ScanStdev, true
	}
	return m.HarnessAvg, m.HarnessStdev, true
}

// Panels returns, for every D, the time of each phase against N, and for every
// N, the time of each phase against D.
func Panels(results []report.ConfigurationResult) []Panel {
	idx := newIndex(results)
	phases := []report.Phase{report.PhaseScan, report.PhaseHarness}

	var panels []Panel
	for _, d := range idx.d {
		for _, phase := range phases {
			p := Panel{
				Name:     fmt.Sprintf("benchmark_d_%g_%s", d, lower(phase)),
				Title:    fmt.Sprintf("%s Time vs N (d=%g)", phase, d),
				XLabel:   "N (ops)",
				YLabel:   "Time (µs)",
				XLogBase: 10,
			}
			for _, s := range strategy.All() {
				series := Series{Strategy: s}
				for _, n := range idx.n {
					res, ok := idx.get(n, d)
					if !ok {
						continue
					}
					if avg, stdev, ok := phaseValues(phase, res, s); ok {
						series.Points = append(series.Points, Point{X: float64(n), Y: avg, Err: stdev})
					}
				}
				p.Series = append(p.Series, series)
			}
			panels = append(panels, p)
		}
	}

	for _, n := range idx.n {
		for _, phase := range phases {
			p := Panel{
				Name:     fmt.Sprintf("benchmark_n_%d_%s", n, lower(phase)),
				Title:    fmt.Sprintf("%s Time vs D (n=%d)", phase, n),
				XLabel:   "D (stddev)",
				YLabel:   "Time (µs)",
				XLogBase: 2,
			}
			for _, s := range strategy.All() {
				series := Series{Strategy: s}
				for _, d := range idx.d {
					res, ok := idx.get(n, d)
					if !ok {
						continue
					}
					if avg, stdev, ok := phaseValues(phase, res, s); ok {
						series.Points = append(series.Points, Point{X: d, Y: avg, Err: stdev})
					}
				}
				p.Series = append(p.Series, series)
			}
			panels = append(panels, p)
		}
	}
	return panels
}

// SpeedupGrids returns one grid per speedup pair.
func SpeedupGrids(results []report.ConfigurationResult) []Grid {
	idx := newIndex(results)

	grids := make([]Grid, 0, len(report.SpeedupPairs))
	for _, pair := range report.SpeedupPairs {
		g := Grid{Pair: pair, N: idx.n, D: idx.d, Values: make([][]float64, len(idx.d))}
		for r, d := range idx.d {
			g.Values[r] = make([]float64, len(idx.n))
			for c, n := range idx.n {
				if res, ok := idx.get(n, d); ok {
					g.Values[r][c] = pair.Of(res)
				}
			}
		}
		grids = append(grids, g)
	}
	return grids
}

// Max returns the largest value across all grids, at least floor.
func Max(grids []Grid, floor float64) float64 {
	max := floor
	for _, g := range grids {
		for _, row := range g.Values {
			for _, v := range row {
				if v > max {
					max = v
				}
			}
		}
	}
	return max
}

func lower(p report.Phase) string {
	if p == report.PhaseScan {
		return "scan"
	}
	return "harness"
}
