package cmd

import (
	"fmt"
	"io"

	"dirtybench/internal/aggregate"
	"dirtybench/internal/logging"
	"dirtybench/internal/report"
	"dirtybench/internal/scan"
	"dirtybench/internal/strategy"
	"dirtybench/internal/validate"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newCompareCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "compare FILE...",
		Short: "Validate and tabulate existing strategy result files",
		Long: "Load strategy result files written by the measurement binary, run the same\n" +
			"cross-strategy validation as a sweep and print the aggregated timings.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return compareReports(cmd.OutOrStdout(), args)
		},
	}
}

func compareReports(out io.Writer, files []string) error {
	logger := logging.GetLogger()

	inputs := make([]validate.Input, 0, len(files))
	for _, file := range files {
		rep, err := scan.LoadReport(file)
		if err != nil {
			return err
		}
		logger.WithFields(logrus.Fields{
			"file":     file,
			"strategy": rep.Strategy.Name(),
			"runs":     rep.Runs(),
		}).Debug("Loaded strategy results")
		inputs = append(inputs, validate.Input{Name: file, Report: rep})
	}

	if err := validate.CheckRunCounts(inputs...); err != nil {
		return err
	}
	fmt.Fprintf(out, "Number of runs to compare: %d\n", inputs[0].Report.Runs())

	reports := make(map[strategy.Strategy]*scan.StrategyReport, len(inputs))
	sources := make(map[strategy.Strategy]string, len(inputs))
	for _, in := range inputs {
		s := in.Report.Strategy
		if prev, ok := sources[s]; ok {
			return &scan.ShapeError{
				Source: in.Name,
				Reason: fmt.Sprintf("strategy %s already loaded from %s", s.Name(), prev),
			}
		}
		sources[s] = in.Name
		reports[s] = in.Report
	}

	if err := validate.Validate(reports); err != nil {
		return err
	}
	fmt.Fprintln(out, "Validation Successful.")

	results := make(report.StrategyResults, len(reports))
	for s, rep := range reports {
		m := aggregate.Aggregate(rep.Results)
		if m.ScanMissing > 0 || m.HarnessMissing > 0 {
			logger.WithFields(logrus.Fields{
				"file":            sources[s],
				"strategy":        s.Name(),
				"scan_missing":    m.ScanMissing,
				"harness_missing": m.HarnessMissing,
			}).Warn("Missing durations counted as zero")
		}
		results[s] = m
	}

	report.PrintStrategyTable(out, results)
	report.PrintComparisons(out, report.ComparePairs(reports))
	return nil
}
