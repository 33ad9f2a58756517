package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dirtybench/internal/aggregate"
	"dirtybench/internal/scan"
	"dirtybench/internal/scan/scantest"
	"dirtybench/internal/strategy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() []ConfigurationResult {
	return []ConfigurationResult{
		{N: 10, D: 1, Results: StrategyResults{
			strategy.Uffd:              {ScanAvg: 100, ScanStdev: 1, HarnessAvg: 200, HarnessStdev: 2},
			strategy.SoftDirty:         {ScanAvg: 300, ScanStdev: 3, HarnessAvg: 400, HarnessStdev: 4},
			strategy.EmulatedSoftDirty: {ScanAvg: 500, ScanStdev: 5, HarnessAvg: 800, HarnessStdev: 6},
		}},
		{N: 10, D: 2.5, Results: StrategyResults{
			strategy.Uffd: {ScanAvg: 50},
		}},
	}
}

func TestWriteLoad_Schema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "report.json")
	require.NoError(t, Write(path, sample()[:1]))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"n":10,"d":1,"results":{
		"Uffd":{"scan_avg":100,"scan_stdev":1,"harness_avg":200,"harness_stdev":2},
		"SoftDirty":{"scan_avg":300,"scan_stdev":3,"harness_avg":400,"harness_stdev":4},
		"EmulatedSoftDirty":{"scan_avg":500,"scan_stdev":5,"harness_avg":800,"harness_stdev":6}}}]`, string(data))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, sample()[:1], loaded)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestWrite_EmptyIsArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, Write(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(string(data)))
}

func TestPrintSummary_CanonicalOrder(t *testing.T) {
	var buf bytes.Buffer
	PrintSummary(&buf, sample())

	out := buf.String()
	uffd := strings.Index(out, "Uffd")
	sd := strings.Index(out, "| SoftDirty")
	esd := strings.Index(out, "EmulatedSoftDirty")
	assert.True(t, uffd < sd && sd < esd, out)
	assert.Contains(t, out, "2.5")
	assert.Contains(t, out, "100.00")
}

func TestSpeedupPairs(t *testing.T) {
	res := sample()[0].Results

	assert.InDelta(t, 3.0, SpeedupPairs[0].Of(res), 1e-9)
	assert.InDelta(t, 2.0, SpeedupPairs[1].Of(res), 1e-9)
	assert.InDelta(t, 4.0, SpeedupPairs[2].Of(res), 1e-9)
	assert.InDelta(t, 2.0, SpeedupPairs[3].Of(res), 1e-9)

	partial := sample()[1].Results
	for _, p := range SpeedupPairs {
		assert.Equal(t, 0.0, p.Of(partial), p.Name)
	}

	zero := StrategyResults{strategy.Uffd: {}, strategy.SoftDirty: {ScanAvg: 1}}
	assert.Equal(t, 0.0, SpeedupPairs[0].Of(zero))
}

func TestPrintComparisons(t *testing.T) {
	var buf bytes.Buffer
	PrintComparisons(&buf, []PairComparison{{
		Pair:   SpeedupPairs[0],
		Result: aggregate.Compare([]float64{30, 31, 32, 30, 31, 32}, []float64{10, 11, 12, 10, 11, 12}),
	}})
	assert.Contains(t, buf.String(), "Scan (Uffd over SoftDirty)")
	assert.Contains(t, buf.String(), "n=6+6")
}

func TestComparePairs(t *testing.T) {
	reports := scantest.Consistent(5)

	all := ComparePairs(reports)
	require.Len(t, all, len(SpeedupPairs))
	for _, c := range all {
		assert.Equal(t, 5, c.Result.N1, c.Pair.Name)
		assert.Equal(t, 5, c.Result.N2, c.Pair.Name)
	}
	// harness of SoftDirty over ESD: 3000+i against 2000+i
	assert.InDelta(t, 3002, all[3].Result.Baseline.Center, 1e-9)
	assert.InDelta(t, 2002, all[3].Result.Target.Center, 1e-9)

	partial := ComparePairs(map[strategy.Strategy]*scan.StrategyReport{
		strategy.Uffd:      reports[strategy.Uffd],
		strategy.SoftDirty: reports[strategy.SoftDirty],
	})
	require.Len(t, partial, 2)
	assert.Equal(t, PhaseScan, partial[0].Pair.Phase)
}
