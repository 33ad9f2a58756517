package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	DefaultRuns   = 20
	DefaultOutput = "benchmark_results.json"

	BinaryEnvVar = "DIRTYBENCH_BINARY"
)

type Config struct {
	Sweep SweepConfig `yaml:"sweep"`
}

// SweepConfig describes one full benchmark sweep. It is passed explicitly to
// everything that needs it.
type SweepConfig struct {
	Binary   string        `yaml:"binary"`
	N        []int         `yaml:"n"`
	D        []float64     `yaml:"d"`
	Runs     int           `yaml:"runs"`
	Output   string        `yaml:"output"`
	WorkDir  string        `yaml:"work_dir,omitempty"`
	Timeout  time.Duration `yaml:"timeout,omitempty"`
	LogLevel string        `yaml:"log_level,omitempty"`
}

// Point is one configuration of the sweep: an operation count and the spread
// of the access distribution.
type Point struct {
	N int
	D float64
}

func (p Point) String() string {
	return fmt.Sprintf("n=%d d=%g", p.N, p.D)
}

// Default returns a sweep config with every optional value filled in.
func Default() SweepConfig {
	return SweepConfig{
		Binary: strings.TrimSpace(os.Getenv(BinaryEnvVar)),
		Runs:   DefaultRuns,
		Output: DefaultOutput,
	}
}

// Points expands the cartesian product of N and D, N outermost, each in the
// order given.
func (c *SweepConfig) Points() []Point {
	points := make([]Point, 0, len(c.N)*len(c.D))
	for _, n := range c.N {
		for _, d := range c.D {
			points = append(points, Point{N: n, D: d})
		}
	}
	return points
}
