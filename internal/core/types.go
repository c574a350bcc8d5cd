package core

import (
	"time"

	"github.com/keepmind9/symbot/pkg/constants"
)

// Config represents the complete symbot configuration structure
type Config struct {
	Symphony SymphonyConfig `yaml:"symphony"`
	Adapter  AdapterConfig  `yaml:"adapter"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// SymphonyConfig holds the connection parameters for the Symphony pod.
// All four fields are required; validation fails with "<name> undefined"
// for each missing one before any network activity happens.
type SymphonyConfig struct {
	Host       string `yaml:"host"`        // pod host, e.g. "foundation.symphony.com"
	PublicKey  string `yaml:"public_key"`  // path to the bot certificate PEM
	PrivateKey string `yaml:"private_key"` // path to the bot private key PEM
	Passphrase string `yaml:"passphrase"`  // passphrase for the private key
}

// AdapterConfig tunes the datafeed polling behaviour
type AdapterConfig struct {
	FailConnectAfter int    `yaml:"fail_connect_after"` // failed connect attempts tolerated before shutdown (default: 10)
	RetryDelay       string `yaml:"retry_delay"`        // delay between failed poll cycles (e.g. "800ms")
}

// RetryDelayDuration returns the parsed retry delay, falling back to the
// default when unset or unparseable.
func (a AdapterConfig) RetryDelayDuration() time.Duration {
	d, err := time.ParseDuration(a.RetryDelay)
	if err != nil || d <= 0 {
		return constants.DefaultRetryDelay
	}
	return d
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level        string `yaml:"level"`         // debug, info, warn, error
	File         string `yaml:"file"`          // Log file path
	MaxSize      int    `yaml:"max_size"`      // Single file max size in MB (default: 100)
	MaxBackups   int    `yaml:"max_backups"`   // Number of backups to keep (default: 5)
	MaxAge       int    `yaml:"max_age"`       // Maximum days to retain (default: 30)
	Compress     bool   `yaml:"compress"`      // Whether to compress old logs
	EnableStdout bool   `yaml:"enable_stdout"` // Also output to stdout
}
