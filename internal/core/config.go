// Package core provides configuration management for symbot.
//
// Configuration is loaded from a YAML file with the following sections:
//
//   - symphony: pod host and certificate material (all fields required)
//   - adapter: datafeed retry tuning
//   - logging: log configuration
//
// ${VAR_NAME} patterns in the file are expanded from the environment, so
// secrets like the key passphrase can stay out of the file itself:
//
//	symphony:
//	  host: "foundation.symphony.com"
//	  public_key: "/etc/symbot/bot.cert.pem"
//	  private_key: "/etc/symbot/bot.key.pem"
//	  passphrase: "${SYMBOT_PASSPHRASE}"
package core

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/keepmind9/symbot/pkg/constants"
)

const (
	DefaultLogLevel        = "info"
	DefaultLogCompress     = true
	DefaultLogEnableStdout = true
)

// LoadConfig loads configuration from file and expands environment variables
func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expandedData, err := expandEnv(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to expand environment variables: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := ValidateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// expandEnv replaces ${VAR_NAME} patterns with environment variable values
func expandEnv(input string) (string, error) {
	var missingVars []string

	result := os.Expand(input, func(key string) string {
		if val := os.Getenv(key); val != "" {
			return val
		}
		missingVars = append(missingVars, key)
		return ""
	})

	if len(missingVars) > 0 {
		return "", fmt.Errorf("missing required environment variables: %s",
			strings.Join(missingVars, ", "))
	}

	return result, nil
}

// ValidateConfig checks required fields and applies defaults.
// It must run before any network activity: a config missing a connection
// parameter never reaches the platform.
func ValidateConfig(config *Config) error {
	if err := ValidateSymphony(&config.Symphony); err != nil {
		return err
	}

	if config.Adapter.FailConnectAfter == 0 {
		config.Adapter.FailConnectAfter = constants.DefaultFailConnectAfter
	}

	if config.Logging.Level == "" {
		config.Logging.Level = DefaultLogLevel
	}
	if config.Logging.MaxSize == 0 {
		config.Logging.MaxSize = constants.DefaultLogMaxSize
	}
	if config.Logging.MaxBackups == 0 {
		config.Logging.MaxBackups = constants.DefaultLogMaxBackups
	}
	if config.Logging.MaxAge == 0 {
		config.Logging.MaxAge = constants.DefaultLogMaxAge
	}

	return nil
}

// ValidateSymphony checks that every required connection parameter is set.
// Each missing field yields its own "<name> undefined" error so the operator
// sees the full list in one pass.
func ValidateSymphony(sc *SymphonyConfig) error {
	var errs []error
	for _, f := range []struct {
		name  string
		value string
	}{
		{"host", sc.Host},
		{"public_key", sc.PublicKey},
		{"private_key", sc.PrivateKey},
		{"passphrase", sc.Passphrase},
	} {
		if f.value == "" {
			errs = append(errs, fmt.Errorf("%s undefined", f.name))
		}
	}
	return errors.Join(errs...)
}
