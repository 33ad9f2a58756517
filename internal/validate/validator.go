// Package validate checks that the dirty page sets reported by the different
// tracking strategies are consistent with each other.
//
// Uffd and EmulatedSoftDirty detect exactly the written pages and must report
// identical scans, region order included. Kernel soft-dirty may flag pages
// spuriously but may never miss one, so its page set must contain the page set
// of the reference strategy (Uffd, or EmulatedSoftDirty when Uffd is absent).
package validate

import (
	"dirtybench/internal/logging"
	"dirtybench/internal/scan"
	"dirtybench/internal/strategy"

	"github.com/sirupsen/logrus"
)

// Input is a named report taking part in a run count comparison. Name is what
// appears in errors, e.g. a file path or a strategy name.
type Input struct {
	Name   string
	Report *scan.StrategyReport
}

// CheckRunCounts fails with a RunCountError on the first input whose run count
// differs from the first input's.
func CheckRunCounts(inputs ...Input) error {
	if len(inputs) == 0 {
		return nil
	}
	first := inputs[0]
	for _, in := range inputs[1:] {
		if in.Report.Runs() != first.Report.Runs() {
			return &RunCountError{
				Left:      first.Name,
				LeftRuns:  first.Report.Runs(),
				Right:     in.Name,
				RightRuns: in.Report.Runs(),
			}
		}
	}
	return nil
}

// CheckRun validates a single run index. Any of the results may be nil, in
// which case the checks involving that strategy are skipped.
func CheckRun(run int, uffd, emulated, softDirty *scan.RunResult) error {
	if uffd != nil && emulated != nil {
		if !uffd.Scan.Equal(emulated.Scan) {
			return &MismatchError{Run: run, Uffd: uffd.Scan, Emulated: emulated.Scan}
		}
	}

	reference, refName := uffd, strategy.Uffd
	if reference == nil {
		reference, refName = emulated, strategy.EmulatedSoftDirty
	}
	if reference == nil || softDirty == nil {
		return nil
	}

	sd := softDirty.Scan.PageSet()
	ref := reference.Scan.PageSet()
	if !sd.IsSupersetOf(ref) {
		return &SupersetError{Run: run, Reference: refName, Missing: sd.Missing(ref)}
	}
	return nil
}

// Validate checks every run of the given reports and stops at the first
// violation. Reports must all have the same number of runs.
func Validate(reports map[strategy.Strategy]*scan.StrategyReport) error {
	var inputs []Input
	for _, s := range strategy.All() {
		if rep, ok := reports[s]; ok && rep != nil {
			inputs = append(inputs, Input{Name: s.Name(), Report: rep})
		}
	}
	if len(inputs) == 0 {
		return nil
	}
	if err := CheckRunCounts(inputs...); err != nil {
		return err
	}

	runs := inputs[0].Report.Runs()
	for i := 0; i < runs; i++ {
		err := CheckRun(i,
			reports[strategy.Uffd].Run(i),
			reports[strategy.EmulatedSoftDirty].Run(i),
			reports[strategy.SoftDirty].Run(i),
		)
		if err != nil {
			return err
		}
	}

	logging.GetLogger().WithFields(logrus.Fields{
		"runs":       runs,
		"strategies": len(inputs),
	}).Debug("Scan results consistent across strategies")
	return nil
}
