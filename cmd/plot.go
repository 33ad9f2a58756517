package cmd

import (
	"fmt"

	"dirtybench/internal/config"
	"dirtybench/internal/logging"
	"dirtybench/internal/plot"
	"dirtybench/internal/report"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newPlotCommand() *cobra.Command {
	var input, outDir, format string

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "Render charts from a sweep report",
		Long: "Render time-vs-n and time-vs-d charts with standard deviation error bars for\n" +
			"every strategy, and speedup heatmaps, from a report written by run.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return generatePlots(cmd, input, outDir, format)
		},
	}

	plotCmd.Flags().StringVarP(&input, "input", "i", config.DefaultOutput, "Report file to plot")
	plotCmd.Flags().StringVarP(&outDir, "output", "o", "plots", "Directory for the generated files")
	plotCmd.Flags().StringVar(&format, "format", string(plot.FormatPNG), "Output format (png, tikz)")

	return plotCmd
}

func generatePlots(cmd *cobra.Command, input, outDir, format string) error {
	logger := logging.GetLogger()

	f, err := plot.ParseFormat(format)
	if err != nil {
		return err
	}

	results, err := report.Load(input)
	if err != nil {
		return fmt.Errorf("failed to load report: %w", err)
	}

	written, err := plot.NewPlotManager(input).Generate(results, outDir, f)
	if err != nil {
		return err
	}
	for _, path := range written {
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}

	logger.WithFields(logrus.Fields{
		"report": input,
		"format": f,
		"files":  len(written),
	}).Info("Plots generated")
	return nil
}
