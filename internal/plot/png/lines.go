// Package png renders sweep charts to PNG files with gonum/plot.
package png

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"dirtybench/internal/plot/chart"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// errPoints satisfies both XYer and YErrorer for plotter.NewYErrorBars.
type errPoints struct {
	plotter.XYs
	plotter.YErrors
}

// RenderPanel draws one line per strategy with standard deviation error bars.
func RenderPanel(panel chart.Panel, path string) error {
	p := plot.New()
	p.Title.Text = panel.Title
	p.X.Label.Text = panel.XLabel
	p.Y.Label.Text = panel.YLabel
	p.Add(plotter.NewGrid())
	p.Legend.Top = true

	xs := map[float64]bool{}
	for i, series := range panel.Series {
		if len(series.Points) == 0 {
			continue
		}
		pts := errPoints{
			XYs:     make(plotter.XYs, len(series.Points)),
			YErrors: make(plotter.YErrors, len(series.Points)),
		}
		for j, pt := range series.Points {
			pts.XYs[j].X = pt.X
			pts.XYs[j].Y = pt.Y
			pts.YErrors[j].Low = pt.Err
			pts.YErrors[j].High = pt.Err
			xs[pt.X] = true
		}

		line, points, err := plotter.NewLinePoints(pts.XYs)
		if err != nil {
			return fmt.Errorf("series %s: %w", series.Strategy, err)
		}
		bars, err := plotter.NewYErrorBars(pts)
		if err != nil {
			return fmt.Errorf("series %s: %w", series.Strategy, err)
		}

		color := plotutil.Color(i)
		line.Color = color
		points.Color = color
		points.Shape = plotutil.Shape(i)
		bars.Color = color
		bars.CapWidth = vg.Points(5)

		p.Add(line, points, bars)
		p.Legend.Add(series.Strategy.Name(), line, points)
	}

	if panel.XLogBase > 0 && len(xs) > 0 {
		p.X.Scale = plot.LogScale{}
		p.X.Tick.Marker = valueTicks(xs)
	}

	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}

// valueTicks labels exactly the measured x values, which reads better than
// decade ticks for short sweeps.
func valueTicks(xs map[float64]bool) plot.ConstantTicks {
	ticks := make(plot.ConstantTicks, 0, len(xs))
	for x := range xs {
		ticks = append(ticks, plot.Tick{Value: x, Label: strconv.FormatFloat(x, 'g', -1, 64)})
	}
	sort.Slice(ticks, func(i, j int) bool { return ticks[i].Value < ticks[j].Value })
	return ticks
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
