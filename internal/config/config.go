/*
SPDX-License-Identifier: Apache-2.0
*/

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config aggregates process configuration values.
type Config struct {
	Chaincode ChaincodeConfig
	Logging   LoggingConfig
}

// ChaincodeConfig controls how the chaincode process is hosted. When
// ServerAddress is empty the peer launches the chaincode; otherwise it runs
// as an external chaincode service listening on that address.
type ChaincodeConfig struct {
	ID            string
	ServerAddress string
	TLSDisabled   bool
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level  string
	Format string // text|json
}

const (
	defaultLoggingLevel  = "info"
	defaultLoggingFormat = "text"
)

// External reports whether the chaincode runs as a service.
func (c ChaincodeConfig) External() bool {
	return c.ServerAddress != ""
}

// Load reads configuration from environment variables, applying defaults.
func Load() (Config, error) {
	cfg := Config{
		Chaincode: ChaincodeConfig{
			ID:            os.Getenv("CHAINCODE_ID"),
			ServerAddress: os.Getenv("CHAINCODE_SERVER_ADDRESS"),
		},
		Logging: LoggingConfig{
			Level:  strings.ToLower(valueOrDefault("LOG_LEVEL", defaultLoggingLevel)),
			Format: strings.ToLower(valueOrDefault("LOG_FORMAT", defaultLoggingFormat)),
		},
	}

	tlsDisabled, err := parseBool("CHAINCODE_TLS_DISABLED", true)
	if err != nil {
		return Config{}, err
	}
	cfg.Chaincode.TLSDisabled = tlsDisabled

	if cfg.Chaincode.External() && cfg.Chaincode.ID == "" {
		return Config{}, fmt.Errorf("CHAINCODE_ID is required when CHAINCODE_SERVER_ADDRESS is set")
	}
	if cfg.Chaincode.External() && !cfg.Chaincode.TLSDisabled {
		return Config{}, fmt.Errorf("TLS for the chaincode server is not supported; set CHAINCODE_TLS_DISABLED=true")
	}
	switch cfg.Logging.Format {
	case "text", "json":
	default:
		return Config{}, fmt.Errorf("invalid LOG_FORMAT %q: want text or json", cfg.Logging.Format)
	}

	return cfg, nil
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	val, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, v, err)
	}
	return val, nil
}
