package png

import (
	"fmt"
	"strconv"

	"dirtybench/internal/plot/chart"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// gridXYZ adapts a speedup grid to plotter.GridXYZ using cell indices as
// coordinates.
type gridXYZ struct {
	grid chart.Grid
}

func (g gridXYZ) Dims() (c, r int) {
	return len(g.grid.N), len(g.grid.D)
}

func (g gridXYZ) Z(c, r int) float64 {
	return g.grid.Values[r][c]
}

func (g gridXYZ) X(c int) float64 {
	return float64(c)
}

func (g gridXYZ) Y(r int) float64 {
	return float64(r)
}

// RenderHeatmap draws one speedup grid with every cell annotated. max is the
// upper end of the color scale, shared between grids so they compare.
func RenderHeatmap(grid chart.Grid, max float64, path string) error {
	if len(grid.N) == 0 || len(grid.D) == 0 {
		return fmt.Errorf("speedup grid %q is empty", grid.Pair.Name)
	}

	colors := moreland.SmoothBlueRed()
	colors.SetMin(0)
	colors.SetMax(max)

	hm := plotter.NewHeatMap(gridXYZ{grid: grid}, colors.Palette(255))
	hm.Min = 0
	hm.Max = max

	p := plot.New()
	p.Title.Text = grid.Pair.Name
	p.X.Label.Text = "N (ops)"
	p.Y.Label.Text = "D (stddev)"
	p.Add(hm)

	var labels plotter.XYLabels
	for r := range grid.D {
		for c := range grid.N {
			v := grid.Values[r][c]
			if !finite(v) {
				continue
			}
			labels.XYs = append(labels.XYs, plotter.XY{X: float64(c), Y: float64(r)})
			labels.Labels = append(labels.Labels, fmt.Sprintf("%.2fx", v))
		}
	}
	if len(labels.Labels) > 0 {
		l, err := plotter.NewLabels(labels)
		if err != nil {
			return err
		}
		p.Add(l)
	}

	xTicks := make(plot.ConstantTicks, len(grid.N))
	for c, n := range grid.N {
		xTicks[c] = plot.Tick{Value: float64(c), Label: strconv.Itoa(n)}
	}
	yTicks := make(plot.ConstantTicks, len(grid.D))
	for r, d := range grid.D {
		yTicks[r] = plot.Tick{Value: float64(r), Label: strconv.FormatFloat(d, 'g', -1, 64)}
	}
	p.X.Tick.Marker = xTicks
	p.Y.Tick.Marker = yTicks

	return p.Save(6*vg.Inch, 5*vg.Inch, path)
}
