package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dirtybench/internal/config"
	"dirtybench/internal/host"
	"dirtybench/internal/logging"
	"dirtybench/internal/orchestrator"
	"dirtybench/internal/runner"
	"dirtybench/internal/sweep"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type runOptions struct {
	configFile string
	n          []int
	d          []float64
	runs       int
	output     string
	binary     string
	workDir    string
	timeout    time.Duration
}

func newRunCommand() *cobra.Command {
	opts := &runOptions{}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run a benchmark sweep",
		Long: "Run every strategy for each combination of --n and --d, validate the results\n" +
			"against each other and write the aggregated report. Any failure aborts the\n" +
			"sweep without writing a report.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.sweepConfig(cmd)
			if err != nil {
				return err
			}
			return runSweep(cmd, cfg)
		},
	}

	runCmd.Flags().StringVarP(&opts.configFile, "config", "c", "", "Path to sweep configuration file")
	runCmd.Flags().IntSliceVar(&opts.n, "n", nil, "Comma-separated list of operation counts")
	runCmd.Flags().Float64SliceVar(&opts.d, "d", nil, "Comma-separated list of distribution spreads")
	runCmd.Flags().IntVarP(&opts.runs, "runs", "r", config.DefaultRuns, "Repetitions per strategy and configuration")
	runCmd.Flags().StringVarP(&opts.output, "output", "o", config.DefaultOutput, "Path of the report file")
	runCmd.Flags().StringVarP(&opts.binary, "binary", "b", "", "Measurement binary (default $"+config.BinaryEnvVar+")")
	runCmd.Flags().StringVar(&opts.workDir, "work-dir", "", "Directory for temporary artifacts (default system temp)")
	runCmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Timeout per binary invocation (0 = none)")

	return runCmd
}

// sweepConfig merges the config file, if any, with the flags set on the
// command line and validates the result.
func (o *runOptions) sweepConfig(cmd *cobra.Command) (*config.SweepConfig, error) {
	cfg := config.Default()
	if o.configFile != "" {
		loaded, err := config.LoadConfig(o.configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", o.configFile, err)
		}
		cfg = loaded.Sweep
	}

	flags := cmd.Flags()
	if flags.Changed("n") {
		cfg.N = o.n
	}
	if flags.Changed("d") {
		cfg.D = o.d
	}
	if flags.Changed("runs") {
		cfg.Runs = o.runs
	}
	if flags.Changed("output") {
		cfg.Output = o.output
	}
	if flags.Changed("binary") {
		cfg.Binary = o.binary
	}
	if flags.Changed("work-dir") {
		cfg.WorkDir = o.workDir
	}
	if flags.Changed("timeout") {
		cfg.Timeout = o.timeout
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sweep configuration: %w", err)
	}
	return &cfg, nil
}

func runSweep(cmd *cobra.Command, cfg *config.SweepConfig) error {
	logger := logging.GetLogger()

	if cfg.LogLevel != "" && !cmd.Flags().Changed("log-level") {
		if err := logging.SetLogLevel(cfg.LogLevel); err != nil {
			return fmt.Errorf("invalid log level in config: %w", err)
		}
	}

	checksum, err := config.SweepChecksum(cfg)
	if err != nil {
		logger.WithError(err).Warn("Failed to compute sweep checksum")
	}
	logger.WithFields(logrus.Fields{
		"binary":         cfg.Binary,
		"configurations": len(cfg.Points()),
		"runs":           cfg.Runs,
		"checksum":       checksum,
	}).Info("Starting sweep")

	if hc, err := host.GetHostConfig(); err != nil {
		logger.WithError(err).Warn("Failed to detect host configuration")
	} else {
		host.LogHostConfig(hc)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := runner.NewExecRunner(cfg.Timeout)
	// keep stdout for the summary table
	r.Stdout = cmd.ErrOrStderr()

	driver := sweep.NewDriver(cfg, orchestrator.New(cfg, r))
	return driver.Execute(ctx, cmd.OutOrStdout())
}
