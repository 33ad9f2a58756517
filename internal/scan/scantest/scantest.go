// Package scantest builds measurement artifacts for tests.
package scantest

import (
	"encoding/json"
	"os"
	"testing"

	"dirtybench/internal/scan"
	"dirtybench/internal/strategy"
)

// Duration converts microseconds to a binary-style duration.
func Duration(micros uint64) *scan.Duration {
	return &scan.Duration{
		Secs:  micros / scan.MicrosPerSecond,
		Nanos: uint32(micros%scan.MicrosPerSecond) * scan.NanosPerMicro,
	}
}

// Run builds a run result covering the given [start, end) page ranges.
func Run(scanMicros, harnessMicros uint64, ranges ...[2]uint64) scan.RunResult {
	r := scan.RunResult{
		Scan: scan.ScanResult{
			WalkStart: json.RawMessage(`{"addr":0}`),
			WalkEnd:   json.RawMessage(`{"addr":1073741824}`),
			Regions:   []scan.PageRange{},
		},
		ScanDuration:    Duration(scanMicros),
		HarnessDuration: Duration(harnessMicros),
	}
	for _, p := range ranges {
		r.Scan.Regions = append(r.Scan.Regions, scan.PageRange{Start: scan.PageIndex(p[0]), End: scan.PageIndex(p[1])})
	}
	return r
}

func Report(s strategy.Strategy, runs ...scan.RunResult) *scan.StrategyReport {
	return &scan.StrategyReport{Strategy: s, Results: runs}
}

// Marshal encodes rep the way the binary does. With wrapped set, page indices
// are emitted as single-element arrays.
func Marshal(rep *scan.StrategyReport, wrapped bool) []byte {
	if !wrapped {
		b, err := json.Marshal(rep)
		if err != nil {
			panic(err)
		}
		return b
	}

	type region struct {
		Start []uint64 `json:"start"`
		End   []uint64 `json:"end"`
	}
	type scanResult struct {
		WalkStart json.RawMessage `json:"walk_start,omitempty"`
		WalkEnd   json.RawMessage `json:"walk_end,omitempty"`
		Regions   []region        `json:"regions"`
	}
	type runResult struct {
		Scan            scanResult     `json:"scan"`
		ScanDuration    *scan.Duration `json:"scan_duration"`
		HarnessDuration *scan.Duration `json:"harness_duration"`
	}
	out := struct {
		Strategy strategy.Strategy `json:"strategy"`
		Results  []runResult       `json:"results"`
	}{Strategy: rep.Strategy}
	for _, r := range rep.Results {
		rr := runResult{
			Scan:            scanResult{WalkStart: r.Scan.WalkStart, WalkEnd: r.Scan.WalkEnd, Regions: []region{}},
			ScanDuration:    r.ScanDuration,
			HarnessDuration: r.HarnessDuration,
		}
		for _, p := range r.Scan.Regions {
			rr.Scan.Regions = append(rr.Scan.Regions, region{Start: []uint64{uint64(p.Start)}, End: []uint64{uint64(p.End)}})
		}
		out.Results = append(out.Results, rr)
	}
	b, err := json.Marshal(out)
	if err != nil {
		panic(err)
	}
	return b
}

// Consistent returns reports for all three strategies over the given number of
// runs. Uffd and EmulatedSoftDirty are identical; SoftDirty reports, in every
// run, the union of all reference pages plus one extra page of its own.
func Consistent(runs int) map[strategy.Strategy]*scan.StrategyReport {
	uffd := Report(strategy.Uffd)
	esd := Report(strategy.EmulatedSoftDirty)
	sd := Report(strategy.SoftDirty)

	const extra = 4096
	union := [][2]uint64{}
	for i := 0; i < runs; i++ {
		base := uint64(i * 16)
		ranges := [][2]uint64{{base, base + 2}, {base + 8, base + 9}}
		union = append(union, ranges...)

		uffd.Results = append(uffd.Results, Run(uint64(100+i), uint64(1000+i), ranges...))
		esd.Results = append(esd.Results, Run(uint64(300+i), uint64(3000+i), ranges...))
	}
	for i := 0; i < runs; i++ {
		ranges := append([][2]uint64{{extra + uint64(i), extra + uint64(i) + 1}}, union...)
		sd.Results = append(sd.Results, Run(uint64(200+i), uint64(2000+i), ranges...))
	}

	return map[strategy.Strategy]*scan.StrategyReport{
		strategy.Uffd:              uffd,
		strategy.EmulatedSoftDirty: esd,
		strategy.SoftDirty:         sd,
	}
}

// WriteFile writes data to path or fails the test.
func WriteFile(tb testing.TB, path string, data []byte) {
	tb.Helper()
	if err := os.WriteFile(path, data, 0o644); err != nil {
		tb.Fatalf("write %s: %v", path, err)
	}
}
