// Package tikz renders sweep charts as pgfplots TikZ pictures plus a LaTeX
// figure wrapper for each.
package tikz

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"text/template"
	"time"

	"dirtybench/internal/plot/chart"
	"dirtybench/internal/plot/tikz/mappings"
	plotTemplate "dirtybench/internal/plot/tikz/templates/plot"
	wrapperTemplate "dirtybench/internal/plot/tikz/templates/wrapper"

	"github.com/sirupsen/logrus"
)

type Generator struct {
	logger *logrus.Logger
	// ReportFile and Configurations are recorded in the generated header.
	ReportFile     string
	Configurations int
	now            func() time.Time
}

func NewGenerator(logger *logrus.Logger, reportFile string, configurations int) *Generator {
	return &Generator{
		logger:         logger,
		ReportFile:     reportFile,
		Configurations: configurations,
		now:            time.Now,
	}
}

// Generate returns the TikZ picture and the wrapper for one panel. The wrapper
// expects the picture at plotFileName.
func (g *Generator) Generate(panel chart.Panel, plotFileName string) (string, string, error) {
	g.logger.WithField("panel", panel.Name).Debug("Generating TikZ plot")

	plotOutput, err := g.renderPlot(g.preparePlotData(panel))
	if err != nil {
		return "", "", fmt.Errorf("failed to render plot: %w", err)
	}

	wrapperOutput, err := g.renderWrapper(wrapperTemplate.WrapperData{
		GeneratedDate: g.now().Format(time.RFC3339),
		Name:          panel.Name,
		PlotFileName:  plotFileName,
		ShortCaption:  panel.Title,
		Caption:       panel.Title + ". Error bars show the sample standard deviation.",
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to render wrapper: %w", err)
	}

	return plotOutput, wrapperOutput, nil
}

func (g *Generator) preparePlotData(panel chart.Panel) *plotTemplate.PlotData {
	xs := map[float64]bool{}
	var plots []plotTemplate.PlotSeries
	for _, series := range panel.Series {
		if len(series.Points) == 0 {
			continue
		}
		ps := plotTemplate.PlotSeries{
			Strategy:    series.Strategy.Name(),
			Style:       mappings.GetStrategyStyle(series.Strategy).ToTikzOptions(),
			LegendEntry: series.Strategy.Name(),
		}
		for _, pt := range series.Points {
			xs[pt.X] = true
			ps.Coordinates = append(ps.Coordinates, fmt.Sprintf("(%s, %.4f) +- (0, %.4f)", formatFloat(pt.X), pt.Y, pt.Err))
		}
		plots = append(plots, ps)
	}

	ticks := make([]float64, 0, len(xs))
	for x := range xs {
		ticks = append(ticks, x)
	}
	sort.Float64s(ticks)
	tickLabels := make([]string, len(ticks))
	for i, x := range ticks {
		tickLabels[i] = formatFloat(x)
	}

	return &plotTemplate.PlotData{
		GeneratedDate:  g.now().Format(time.RFC3339),
		ReportFile:     g.ReportFile,
		Configurations: g.Configurations,
		Name:           panel.Name,
		Title:          panel.Title,
		XLabel:         panel.XLabel,
		YLabel:         strings.ReplaceAll(panel.YLabel, "µs", `$\mu$s`),
		XLogBase:       panel.XLogBase,
		XTicks:         strings.Join(tickLabels, ","),
		Plots:          plots,
	}
}

func (g *Generator) renderPlot(data *plotTemplate.PlotData) (string, error) {
	tmpl, err := template.New("plot").Parse(plotTemplate.PlotTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (g *Generator) renderWrapper(data wrapperTemplate.WrapperData) (string, error) {
	tmpl, err := template.New("wrapper").Parse(wrapperTemplate.WrapperTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
