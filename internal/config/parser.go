package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"dirtybench/internal/logging"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

func LoadConfig(filepath string) (*Config, error) {
	config, _, err := LoadConfigWithContent(filepath)
	return config, err
}

// LoadConfigWithContent loads a sweep file on top of the defaults. The config is
// not validated here because command line flags may still fill in values.
func LoadConfigWithContent(filepath string) (*Config, string, error) {
	logger := logging.GetLogger()

	data, err := os.ReadFile(filepath)
	if err != nil {
		logger.WithField("filepath", filepath).WithError(err).Error("Failed to read config file")
		return nil, "", err
	}

	originalContent := string(data)

	// Expand environment variables
	expanded := expandEnvVars(originalContent)

	config := Config{Sweep: Default()}
	if err := yaml.Unmarshal([]byte(expanded), &config); err != nil {
		logger.WithField("filepath", filepath).WithError(err).Error("Failed to parse config file")
		return nil, "", err
	}

	return &config, originalContent, nil
}

func expandEnvVars(content string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	return re.ReplaceAllStringFunc(content, func(match string) string {
		envVar := strings.Trim(match, "${}")
		if value := os.Getenv(envVar); value != "" {
			return value
		}
		return match
	})
}

// Validate reports every problem with the sweep config at once.
func (c *SweepConfig) Validate() error {
	var result *multierror.Error

	if c.Binary == "" {
		result = multierror.Append(result, fmt.Errorf("binary is required (flag --binary or $%s)", BinaryEnvVar))
	}
	if len(c.N) == 0 {
		result = multierror.Append(result, fmt.Errorf("at least one n value is required"))
	}
	for _, n := range c.N {
		if n <= 0 {
			result = multierror.Append(result, fmt.Errorf("n must be greater than 0, got %d", n))
		}
	}
	if len(c.D) == 0 {
		result = multierror.Append(result, fmt.Errorf("at least one d value is required"))
	}
	for _, d := range c.D {
		if d <= 0 {
			result = multierror.Append(result, fmt.Errorf("d must be greater than 0, got %g", d))
		}
	}
	if c.Runs <= 0 {
		result = multierror.Append(result, fmt.Errorf("runs must be greater than 0, got %d", c.Runs))
	}
	if c.Output == "" {
		result = multierror.Append(result, fmt.Errorf("output path is required"))
	}
	if c.Timeout < 0 {
		result = multierror.Append(result, fmt.Errorf("timeout must not be negative, got %s", c.Timeout))
	}

	return result.ErrorOrNil()
}
