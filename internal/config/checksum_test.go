package config

import "testing"

func TestSweepChecksum_IgnoresOutputLocation(t *testing.T) {
	cfg1 := &SweepConfig{Binary: "snapshot", N: []int{10, 100}, D: []float64{1, 2}, Runs: 5, Output: "a.json"}
	cfg2 := *cfg1
	cfg2.Output = "b.json"
	cfg2.WorkDir = "/tmp/elsewhere"

	s1, err := SweepChecksum(cfg1)
	if err != nil {
		t.Fatalf("SweepChecksum(cfg1): %v", err)
	}
	s2, err := SweepChecksum(&cfg2)
	if err != nil {
		t.Fatalf("SweepChecksum(cfg2): %v", err)
	}
	if s1 != s2 {
		t.Fatalf("expected same checksum, got %q vs %q", s1, s2)
	}
	if len(s1) != 6 {
		t.Fatalf("expected 6-char checksum, got %q (len=%d)", s1, len(s1))
	}
}

func TestSweepChecksum_ChangesWhenSweepChanges(t *testing.T) {
	cfg := &SweepConfig{Binary: "snapshot", N: []int{10}, D: []float64{1}, Runs: 5}
	s1, err := SweepChecksum(cfg)
	if err != nil {
		t.Fatalf("SweepChecksum: %v", err)
	}

	cfg.Runs = 6
	s2, err := SweepChecksum(cfg)
	if err != nil {
		t.Fatalf("SweepChecksum after change: %v", err)
	}
	if s1 == s2 {
		t.Fatalf("expected checksum to change, got %q", s1)
	}
}
