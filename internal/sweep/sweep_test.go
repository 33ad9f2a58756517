package sweep

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"dirtybench/internal/aggregate"
	"dirtybench/internal/config"
	"dirtybench/internal/report"
	"dirtybench/internal/strategy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEvaluator struct {
	failOn *config.Point
	seen   []config.Point
}

func (f *fakeEvaluator) Evaluate(ctx context.Context, point config.Point) (report.StrategyResults, error) {
	f.seen = append(f.seen, point)
	if f.failOn != nil && *f.failOn == point {
		return nil, errors.New("validation failed")
	}
	return report.StrategyResults{
		strategy.Uffd:      {ScanAvg: float64(point.N), HarnessAvg: point.D},
		strategy.SoftDirty: {ScanAvg: 2 * float64(point.N), HarnessAvg: 2 * point.D},
	}, nil
}

func sweepConfig(t *testing.T) *config.SweepConfig {
	return &config.SweepConfig{
		Binary: "snapshot",
		N:      []int{10},
		D:      []float64{1, 2},
		Runs:   3,
		Output: filepath.Join(t.TempDir(), "report.json"),
	}
}

func TestExecute_WritesOrderedReport(t *testing.T) {
	cfg := sweepConfig(t)
	cfg.N = []int{100, 10}
	ev := &fakeEvaluator{}

	var out bytes.Buffer
	require.NoError(t, NewDriver(cfg, ev).Execute(context.Background(), &out))

	assert.Equal(t, []config.Point{{N: 100, D: 1}, {N: 100, D: 2}, {N: 10, D: 1}, {N: 10, D: 2}}, ev.seen)

	loaded, err := report.Load(cfg.Output)
	require.NoError(t, err)
	require.Len(t, loaded, 4)
	assert.Equal(t, config.Point{N: 100, D: 1}, loaded[0].Point())
	assert.Equal(t, aggregate.Metrics{ScanAvg: 20, HarnessAvg: 4}, loaded[3].Results[strategy.SoftDirty])

	assert.Contains(t, out.String(), "Summary Results")
	assert.Contains(t, out.String(), "Results saved to "+cfg.Output)
}

func TestExecute_FailFastWritesNothing(t *testing.T) {
	cfg := sweepConfig(t)
	ev := &fakeEvaluator{failOn: &config.Point{N: 10, D: 2}}

	var out bytes.Buffer
	err := NewDriver(cfg, ev).Execute(context.Background(), &out)
	require.Error(t, err)

	_, statErr := os.Stat(cfg.Output)
	assert.True(t, os.IsNotExist(statErr), "report must not be written")
	assert.Empty(t, out.String())

	entries, err := os.ReadDir(filepath.Dir(cfg.Output))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRun_StopsAtFirstFailure(t *testing.T) {
	cfg := sweepConfig(t)
	cfg.D = []float64{1, 2, 3}
	ev := &fakeEvaluator{failOn: &config.Point{N: 10, D: 2}}

	results, err := NewDriver(cfg, ev).Run(context.Background())
	require.Error(t, err)
	assert.Nil(t, results)
	assert.Len(t, ev.seen, 2)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ev := &fakeEvaluator{}
	_, err := NewDriver(sweepConfig(t), ev).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, ev.seen)
}
