package plot

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dirtybench/internal/logging"
	"dirtybench/internal/plot/chart"
	"dirtybench/internal/plot/png"
	"dirtybench/internal/plot/tikz"
	"dirtybench/internal/report"

	"github.com/sirupsen/logrus"
)

type Format string

const (
	FormatPNG  Format = "png"
	FormatTikz Format = "tikz"
)

// heatmapFloor keeps the shared color scale from collapsing when no pair
// shows a speedup.
const heatmapFloor = 1.01

func ParseFormat(v string) (Format, error) {
	switch Format(strings.ToLower(v)) {
	case FormatPNG:
		return FormatPNG, nil
	case FormatTikz:
		return FormatTikz, nil
	}
	return "", fmt.Errorf("unknown plot format %q (want png or tikz)", v)
}

type PlotManager struct {
	reportFile string
	logger     *logrus.Logger
}

func NewPlotManager(reportFile string) *PlotManager {
	return &PlotManager{
		reportFile: reportFile,
		logger:     logging.GetLogger(),
	}
}

// Generate writes every chart for results into outDir and returns the written
// paths. PNG output adds one heatmap per speedup pair; TikZ output writes a
// picture and a LaTeX wrapper per panel.
func (pm *PlotManager) Generate(results []report.ConfigurationResult, outDir string, format Format) ([]string, error) {
	if len(results) == 0 {
		return nil, fmt.Errorf("no configurations in %s", pm.reportFile)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	switch format {
	case FormatPNG:
		return pm.generatePNG(results, outDir)
	case FormatTikz:
		return pm.generateTikz(results, outDir)
	}
	return nil, fmt.Errorf("unknown plot format %q", format)
}

func (pm *PlotManager) generatePNG(results []report.ConfigurationResult, outDir string) ([]string, error) {
	var written []string
	for _, panel := range chart.Panels(results) {
		path := filepath.Join(outDir, panel.Name+".png")
		if err := png.RenderPanel(panel, path); err != nil {
			return written, fmt.Errorf("failed to render %s: %w", panel.Name, err)
		}
		pm.logger.WithField("file", path).Debug("Saved plot")
		written = append(written, path)
	}

	grids := chart.SpeedupGrids(results)
	max := chart.Max(grids, heatmapFloor)
	for _, grid := range grids {
		path := filepath.Join(outDir, "speedup_"+slug(grid.Pair.Name)+".png")
		if err := png.RenderHeatmap(grid, max, path); err != nil {
			return written, fmt.Errorf("failed to render heatmap %s: %w", grid.Pair.Name, err)
		}
		pm.logger.WithField("file", path).Debug("Saved heatmap")
		written = append(written, path)
	}
	return written, nil
}

func (pm *PlotManager) generateTikz(results []report.ConfigurationResult, outDir string) ([]string, error) {
	gen := tikz.NewGenerator(pm.logger, filepath.Base(pm.reportFile), len(results))

	var written []string
	for _, panel := range chart.Panels(results) {
		plotFile := panel.Name + ".tikz"
		plotTikz, wrapperTex, err := gen.Generate(panel, plotFile)
		if err != nil {
			return written, fmt.Errorf("failed to generate %s: %w", panel.Name, err)
		}

		plotPath := filepath.Join(outDir, plotFile)
		if err := os.WriteFile(plotPath, []byte(plotTikz), 0o644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", plotPath, err)
		}
		wrapperPath := filepath.Join(outDir, panel.Name+"-wrapper.tex")
		if err := os.WriteFile(wrapperPath, []byte(wrapperTex), 0o644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", wrapperPath, err)
		}
		written = append(written, plotPath, wrapperPath)
	}
	pm.logger.WithField("files", len(written)).Debug("Saved TikZ plots")
	return written, nil
}

// slug turns a speedup pair name into a file name fragment.
func slug(name string) string {
	var b strings.Builder
	underscore := false
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			underscore = false
			continue
		}
		if !underscore && b.Len() > 0 {
			b.WriteByte('_')
			underscore = true
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
