// Package orchestrator evaluates a single sweep configuration: it runs the
// measurement binary for every strategy, validates the results against each
// other and aggregates them.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"dirtybench/internal/aggregate"
	"dirtybench/internal/config"
	"dirtybench/internal/logging"
	"dirtybench/internal/report"
	"dirtybench/internal/runner"
	"dirtybench/internal/scan"
	"dirtybench/internal/strategy"
	"dirtybench/internal/validate"

	"github.com/sirupsen/logrus"
)

type Orchestrator struct {
	config *config.SweepConfig
	runner runner.Runner
	// prefix of the per-configuration temporary directory
	tempPrefix string
}

func New(cfg *config.SweepConfig, r runner.Runner) *Orchestrator {
	prefix := "dirtybench"
	if sum, err := config.SweepChecksum(cfg); err == nil && sum != "" {
		prefix += "-" + sum
	}
	return &Orchestrator{config: cfg, runner: r, tempPrefix: prefix}
}

// Evaluate measures all strategies for one configuration. Strategies run one
// after another; nothing is aggregated unless every run validates.
func (o *Orchestrator) Evaluate(ctx context.Context, point config.Point) (report.StrategyResults, error) {
	logger := logging.GetLogger().WithFields(logrus.Fields{"n": point.N, "d": point.D})
	logger.Info("Running benchmark")

	dir, err := os.MkdirTemp(o.config.WorkDir, fmt.Sprintf("%s-n%d-d%g-*", o.tempPrefix, point.N, point.D))
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary directory: %w", err)
	}
	defer os.RemoveAll(dir)

	paths := make(map[strategy.Strategy]string, len(strategy.All()))
	for _, s := range strategy.All() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := filepath.Join(dir, s.Selector()+".json")
		inv := runner.Invocation{
			Binary:   o.config.Binary,
			Point:    point,
			Runs:     o.config.Runs,
			Strategy: s,
			Output:   path,
		}
		if err := o.runner.Run(ctx, inv); err != nil {
			return nil, &ExecutionError{Strategy: s, Point: point, Err: err}
		}
		paths[s] = path
	}

	reports, err := loadReports(paths)
	if err != nil {
		return nil, err
	}

	if err := o.checkRunCounts(reports); err != nil {
		return nil, &ValidationError{Point: point, Run: -1, Err: err}
	}
	if err := validate.Validate(reports); err != nil {
		return nil, &ValidationError{Point: point, Run: failedRun(err), Err: err}
	}

	results := make(report.StrategyResults, len(reports))
	for s, rep := range reports {
		m := aggregate.Aggregate(rep.Results)
		warnMissing(logger, s, m)
		results[s] = m
	}

	if logger.Logger.IsLevelEnabled(logrus.DebugLevel) {
		for _, c := range report.ComparePairs(reports) {
			logger.WithFields(logrus.Fields{
				"pair":        c.Pair.Name,
				"speedup":     c.Pair.Of(results),
				"p":           c.Result.P,
				"significant": c.Result.Significant,
			}).Debug("Strategy comparison")
		}
	}

	return results, nil
}

// loadReports reads every artifact and keys it by the strategy named inside the
// payload, which need not match the selector it was produced with. Artifacts
// are removed as soon as they have been read, whether parsing succeeded or not.
func loadReports(paths map[strategy.Strategy]string) (map[strategy.Strategy]*scan.StrategyReport, error) {
	logger := logging.GetLogger()

	reports := make(map[strategy.Strategy]*scan.StrategyReport, len(paths))
	sources := make(map[strategy.Strategy]string, len(paths))
	for _, selector := range strategy.All() {
		path, ok := paths[selector]
		if !ok {
			continue
		}
		rep, err := loadAndRemove(path)
		if err != nil {
			return nil, err
		}
		if rep.Strategy != selector {
			logger.WithFields(logrus.Fields{
				"selector": selector.Selector(),
				"reported": rep.Strategy.Name(),
			}).Warn("Binary reported a different strategy than requested")
		}
		if prev, dup := sources[rep.Strategy]; dup {
			return nil, &scan.ShapeError{
				Source: path,
				Reason: fmt.Sprintf("strategy %s already reported by %s", rep.Strategy, prev),
			}
		}
		reports[rep.Strategy] = rep
		sources[rep.Strategy] = path
	}
	return reports, nil
}

func loadAndRemove(path string) (*scan.StrategyReport, error) {
	defer func() {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			logging.GetLogger().WithField("file", path).WithError(err).Warn("Failed to remove artifact")
		}
	}()
	return scan.LoadReport(path)
}

// checkRunCounts requires every report to hold exactly the configured number
// of runs.
func (o *Orchestrator) checkRunCounts(reports map[strategy.Strategy]*scan.StrategyReport) error {
	for _, s := range strategy.All() {
		rep, ok := reports[s]
		if !ok {
			continue
		}
		if rep.Runs() != o.config.Runs {
			return &validate.RunCountError{
				Left:      "configured runs",
				LeftRuns:  o.config.Runs,
				Right:     s.Name(),
				RightRuns: rep.Runs(),
			}
		}
	}
	return nil
}

func failedRun(err error) int {
	var mismatch *validate.MismatchError
	if errors.As(err, &mismatch) {
		return mismatch.Run
	}
	var superset *validate.SupersetError
	if errors.As(err, &superset) {
		return superset.Run
	}
	return -1
}

func warnMissing(logger *logrus.Entry, s strategy.Strategy, m aggregate.Metrics) {
	if m.ScanMissing == 0 && m.HarnessMissing == 0 {
		return
	}
	logger.WithFields(logrus.Fields{
		"strategy":        s.Name(),
		"scan_missing":    m.ScanMissing,
		"harness_missing": m.HarnessMissing,
		"runs":            m.Runs,
	}).Warn("Missing durations counted as zero")
}
