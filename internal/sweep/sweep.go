// Package sweep drives the orchestrator over every configuration of a sweep
// and persists the report.
package sweep

import (
	"context"
	"fmt"
	"io"
	"time"

	"dirtybench/internal/config"
	"dirtybench/internal/logging"
	"dirtybench/internal/report"

	"github.com/sirupsen/logrus"
)

// Evaluator produces the aggregated results of one configuration.
type Evaluator interface {
	Evaluate(ctx context.Context, point config.Point) (report.StrategyResults, error)
}

type Driver struct {
	config    *config.SweepConfig
	evaluator Evaluator
}

func NewDriver(cfg *config.SweepConfig, evaluator Evaluator) *Driver {
	return &Driver{config: cfg, evaluator: evaluator}
}

// Run evaluates every configuration in order. The first failure aborts the
// sweep and no results are returned, not even those of earlier configurations.
func (d *Driver) Run(ctx context.Context) ([]report.ConfigurationResult, error) {
	logger := logging.GetLogger()

	points := d.config.Points()
	results := make([]report.ConfigurationResult, 0, len(points))
	start := time.Now()

	for i, point := range points {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := d.evaluator.Evaluate(ctx, point)
		if err != nil {
			logger.WithFields(logrus.Fields{"n": point.N, "d": point.D}).WithError(err).Error("Benchmark failed")
			return nil, err
		}
		results = append(results, report.ConfigurationResult{N: point.N, D: point.D, Results: res})

		logger.WithFields(logrus.Fields{
			"n":        point.N,
			"d":        point.D,
			"progress": fmt.Sprintf("%d/%d", i+1, len(points)),
		}).Info("Configuration validated")
	}

	logger.WithFields(logrus.Fields{
		"configurations": len(results),
		"elapsed":        time.Since(start).Round(time.Millisecond),
	}).Info("Sweep finished")
	return results, nil
}

// Execute runs the sweep and, only if every configuration succeeded, prints
// the summary to out and writes the report to the configured output path.
func (d *Driver) Execute(ctx context.Context, out io.Writer) error {
	results, err := d.Run(ctx)
	if err != nil {
		return err
	}

	report.PrintSummary(out, results)
	report.PrintSpeedups(out, results)

	if err := report.Write(d.config.Output, results); err != nil {
		return fmt.Errorf("failed to write report %s: %w", d.config.Output, err)
	}
	fmt.Fprintf(out, "\nResults saved to %s\n", d.config.Output)
	return nil
}
