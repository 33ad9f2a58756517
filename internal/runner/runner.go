// Package runner invokes the external measurement binary.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"dirtybench/internal/config"
	"dirtybench/internal/logging"
	"dirtybench/internal/strategy"

	"github.com/sirupsen/logrus"
)

// stderrTail bounds how much of the binary's stderr ends up in an error.
const stderrTail = 4096

// Invocation is one run of the binary for one strategy and configuration.
type Invocation struct {
	Binary   string
	Point    config.Point
	Runs     int
	Strategy strategy.Strategy
	Output   string
}

// Args renders the command line: -d <spread> -n <ops> -r <runs> <selector> -o <output>.
func (inv Invocation) Args() []string {
	return []string{
		"-d", strconv.FormatFloat(inv.Point.D, 'g', -1, 64),
		"-n", strconv.Itoa(inv.Point.N),
		"-r", strconv.Itoa(inv.Runs),
		inv.Strategy.Selector(),
		"-o", inv.Output,
	}
}

// Runner runs the binary to completion. Implementations other than ExecRunner
// exist for tests.
type Runner interface {
	Run(ctx context.Context, inv Invocation) error
}

type ExecRunner struct {
	// Timeout bounds a single invocation; zero waits forever.
	Timeout time.Duration
	// Stdout and Stderr receive the binary's output; nil discards it.
	Stdout io.Writer
	Stderr io.Writer
}

func NewExecRunner(timeout time.Duration) *ExecRunner {
	return &ExecRunner{Timeout: timeout}
}

func (r *ExecRunner) Run(ctx context.Context, inv Invocation) error {
	logger := logging.GetLogger()

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	args := inv.Args()
	cmd := exec.CommandContext(ctx, inv.Binary, args...)
	// children of a killed binary may hold its output pipes open
	cmd.WaitDelay = 2 * time.Second

	tail := &tailBuffer{max: stderrTail}
	cmd.Stdout = r.Stdout
	if r.Stderr != nil {
		cmd.Stderr = io.MultiWriter(r.Stderr, tail)
	} else {
		cmd.Stderr = tail
	}

	logger.WithFields(logrus.Fields{
		"binary":   inv.Binary,
		"args":     strings.Join(args, " "),
		"strategy": inv.Strategy.Name(),
	}).Debug("Invoking measurement binary")

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%s timed out after %s", inv.Binary, r.Timeout)
		}
		if msg := strings.TrimSpace(tail.String()); msg != "" {
			return fmt.Errorf("%s: %w: %s", inv.Binary, err, msg)
		}
		return fmt.Errorf("%s: %w", inv.Binary, err)
	}

	logger.WithFields(logrus.Fields{
		"strategy": inv.Strategy.Name(),
		"elapsed":  elapsed.Round(time.Millisecond),
	}).Debug("Measurement binary finished")
	return nil
}

// tailBuffer keeps the last max bytes written to it.
type tailBuffer struct {
	buf bytes.Buffer
	max int
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	n := len(p)
	if len(p) > t.max {
		p = p[len(p)-t.max:]
	}
	if over := t.buf.Len() + len(p) - t.max; over > 0 {
		t.buf.Next(over)
	}
	t.buf.Write(p)
	return n, nil
}

func (t *tailBuffer) String() string {
	return t.buf.String()
}
