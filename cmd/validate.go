package cmd

import (
	"dirtybench/internal/config"
	"dirtybench/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newValidateCommand() *cobra.Command {
	var configFile string

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a sweep configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateConfig(configFile)
		},
	}

	validateCmd.Flags().StringVarP(&configFile, "config", "c", "", "Path to sweep configuration file")
	validateCmd.MarkFlagRequired("config")

	return validateCmd
}

func validateConfig(configFile string) error {
	logger := logging.GetLogger()

	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		logger.WithField("config_file", configFile).WithError(err).Error("Configuration validation failed")
		return err
	}
	if err := cfg.Sweep.Validate(); err != nil {
		logger.WithField("config_file", configFile).WithError(err).Error("Configuration validation failed")
		return err
	}

	checksum, _ := config.SweepChecksum(&cfg.Sweep)
	logger.WithFields(logrus.Fields{
		"config_file":    configFile,
		"configurations": len(cfg.Sweep.Points()),
		"checksum":       checksum,
	}).Info("Configuration is valid")
	return nil
}
