package constants

import "time"

// Message length limits
const (
	// MaxMessageMLLength is a conservative cap on an outbound MessageML body
	MaxMessageMLLength = 20000
)

// Timeouts and delays
const (
	// DefaultHTTPTimeout is the timeout for ordinary REST calls (auth, send, lookup)
	DefaultHTTPTimeout = 15 * time.Second
	// DefaultReadTimeout is the timeout for a single datafeed long read.
	// The server holds the request open until events arrive or its own
	// window elapses, so this must be comfortably above the server window.
	DefaultReadTimeout = 60 * time.Second
	// DefaultRetryDelay is the delay between failed poll cycles
	DefaultRetryDelay = 800 * time.Millisecond
)

// Retry configuration
const (
	// DefaultFailConnectAfter is the default number of failed connect
	// attempts (datafeed creation or read cycles) tolerated before the
	// adapter gives up and invokes the shutdown hook
	DefaultFailConnectAfter = 10
)

// Secret masking
const (
	// MinSecretLengthForMasking is the minimum secret length to apply partial masking
	MinSecretLengthForMasking = 10
	// SecretMaskPrefixLength is the length of prefix to show before masking
	SecretMaskPrefixLength = 4
	// SecretMaskSuffixLength is the length of suffix to show after masking
	SecretMaskSuffixLength = 2
)

// Logging defaults
const (
	// DefaultLogMaxSize is the default maximum log file size in MB
	DefaultLogMaxSize = 100
	// DefaultLogMaxBackups is the default number of rotated files to keep
	DefaultLogMaxBackups = 5
	// DefaultLogMaxAge is the default maximum number of days to retain old logs
	DefaultLogMaxAge = 30
)
