package orchestrator

import (
	"fmt"

	"dirtybench/internal/config"
	"dirtybench/internal/strategy"
)

// ExecutionError reports a failed invocation of the measurement binary.
type ExecutionError struct {
	Strategy strategy.Strategy
	Point    config.Point
	Err      error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("benchmark failed for %s, strategy %s: %v", e.Point, e.Strategy, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// ValidationError reports inconsistent scan results for a configuration. Run
// is -1 when the failure is not tied to a single run, e.g. a run count mismatch.
type ValidationError struct {
	Point config.Point
	Run   int
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Run < 0 {
		return fmt.Sprintf("validation failed for %s: %v", e.Point, e.Err)
	}
	return fmt.Sprintf("validation failed for %s, run=%d: %v", e.Point, e.Run, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
