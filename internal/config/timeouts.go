package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds all configurable timeout values.
// These values can be customized via environment variables.
type Timeouts struct {
	ServerCreate      time.Duration // Timeout for server creation
	ServerRunning     time.Duration // Timeout for waiting on a running server
	Delete            time.Duration // Timeout for all delete operations
	TunnelReady       time.Duration // Timeout for tunnel provisioning
	RetryMaxAttempts  int           // Maximum number of retry attempts
	RetryInitialDelay time.Duration // Initial delay between retries
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - EDGESHIP_TIMEOUT_SERVER_CREATE (default: 10m)
//   - EDGESHIP_TIMEOUT_SERVER_RUNNING (default: 3m)
//   - EDGESHIP_TIMEOUT_DELETE (default: 5m)
//   - EDGESHIP_TIMEOUT_TUNNEL_READY (default: 2m)
//   - EDGESHIP_RETRY_MAX_ATTEMPTS (default: 5)
//   - EDGESHIP_RETRY_INITIAL_DELAY (default: 1s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		ServerCreate:      parseDuration("EDGESHIP_TIMEOUT_SERVER_CREATE", 10*time.Minute),
		ServerRunning:     parseDuration("EDGESHIP_TIMEOUT_SERVER_RUNNING", 3*time.Minute),
		Delete:            parseDuration("EDGESHIP_TIMEOUT_DELETE", 5*time.Minute),
		TunnelReady:       parseDuration("EDGESHIP_TIMEOUT_TUNNEL_READY", 2*time.Minute),
		RetryMaxAttempts:  parseInt("EDGESHIP_RETRY_MAX_ATTEMPTS", 5),
		RetryInitialDelay: parseDuration("EDGESHIP_RETRY_INITIAL_DELAY", 1*time.Second),
	}
}

func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}

func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return i
}
