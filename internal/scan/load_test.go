package scan

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dirtybench/internal/strategy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleArtifact = `{
  "strategy": "EmulatedSoftDirty",
  "results": [
    {
      "scan": {"walk_start": 0, "walk_end": 4096, "regions": [{"start": [2], "end": [4]}]},
      "scan_duration": {"secs": 0, "nanos": 1500},
      "harness_duration": null
    },
    {
      "scan": {"walk_start": 0, "walk_end": 4096},
      "scan_duration": {"secs": 1, "nanos": 0},
      "harness_duration": {"secs": 0, "nanos": 2000}
    }
  ]
}`

func TestDecodeReport(t *testing.T) {
	rep, err := DecodeReport(strings.NewReader(sampleArtifact), "sample")
	require.NoError(t, err)

	assert.Equal(t, strategy.EmulatedSoftDirty, rep.Strategy)
	require.Equal(t, 2, rep.Runs())
	assert.Equal(t, []PageRange{rng(2, 4)}, rep.Results[0].Scan.Regions)
	assert.Nil(t, rep.Results[0].HarnessDuration)
	assert.Empty(t, rep.Results[1].Scan.Regions)
	assert.Equal(t, 1.5, Micros(rep.Results[0].ScanDuration))
	assert.Nil(t, rep.Run(2))
}

func TestDecodeReport_ShapeErrors(t *testing.T) {
	for name, in := range map[string]string{
		"array":            `[]`,
		"missing strategy": `{"results": []}`,
		"missing results":  `{"strategy": "Uffd"}`,
		"unknown strategy": `{"strategy": "Pagemap", "results": []}`,
		"missing scan":     `{"strategy": "Uffd", "results": [{"scan_duration": null}]}`,
		"bad region":       `{"strategy": "Uffd", "results": [{"scan": {"regions": [{"start": 3, "end": 1}]}}]}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeReport(strings.NewReader(in), "input.json")
			var shapeErr *ShapeError
			require.True(t, errors.As(err, &shapeErr), "got %v", err)
			assert.Contains(t, err.Error(), "input.json")
		})
	}
}

func TestLoadReport_IOErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadReport(filepath.Join(dir, "missing.json"))
	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Contains(t, err.Error(), "missing.json")

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"strategy": `), 0o644))
	_, err = LoadReport(bad)
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, bad, loadErr.Path)
}
