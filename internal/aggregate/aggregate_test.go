package aggregate

import (
	"testing"

	"dirtybench/internal/scan"

	"github.com/stretchr/testify/assert"
)

func micros(us ...uint32) []scan.RunResult {
	var out []scan.RunResult
	for _, u := range us {
		out = append(out, scan.RunResult{
			ScanDuration:    &scan.Duration{Nanos: u * 1000},
			HarnessDuration: &scan.Duration{Secs: 1},
		})
	}
	return out
}

func TestAggregate_MeanAndSampleStdev(t *testing.T) {
	m := Aggregate(micros(1000, 2000, 3000))

	assert.InDelta(t, 2000.0, m.ScanAvg, 1e-9)
	assert.InDelta(t, 1000.0, m.ScanStdev, 1e-9)
	assert.InDelta(t, 1_000_000.0, m.HarnessAvg, 1e-9)
	assert.Equal(t, 0.0, m.HarnessStdev)
	assert.Equal(t, 3, m.Runs)
}

func TestAggregate_SingleRunHasZeroStdev(t *testing.T) {
	m := Aggregate(micros(1500))
	assert.Equal(t, 1500.0, m.ScanAvg)
	assert.Equal(t, 0.0, m.ScanStdev)
}

func TestAggregate_Empty(t *testing.T) {
	m := Aggregate(nil)
	assert.Equal(t, Metrics{}, m)
}

func TestAggregate_CountsMissingDurations(t *testing.T) {
	results := micros(1000, 3000)
	results[1].HarnessDuration = nil

	m := Aggregate(results)
	assert.Equal(t, 0, m.ScanMissing)
	assert.Equal(t, 1, m.HarnessMissing)
	assert.InDelta(t, 500_000.0, m.HarnessAvg, 1e-9)
}

func TestCompare_DetectsShift(t *testing.T) {
	fast := []float64{10, 11, 12, 10, 11, 12, 10, 11}
	slow := []float64{20, 21, 22, 20, 21, 22, 20, 21}

	c := Compare(slow, fast)
	assert.True(t, c.Significant)
	assert.Less(t, c.Delta, 0.0)
	assert.Equal(t, 8, c.N1)
	assert.Equal(t, 8, c.N2)
}

func TestCompare_IdenticalSamples(t *testing.T) {
	xs := []float64{5, 5, 5, 5, 5}
	c := Compare(xs, xs)
	assert.False(t, c.Significant)
	assert.Equal(t, 0.0, c.Delta)
}
