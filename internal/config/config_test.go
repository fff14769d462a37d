package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{"CHAINCODE_ID", "CHAINCODE_SERVER_ADDRESS", "CHAINCODE_TLS_DISABLED", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.Chaincode.External())
	assert.True(t, cfg.Chaincode.TLSDisabled)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoadExternalService(t *testing.T) {
	clearEnv(t)
	t.Setenv("CHAINCODE_SERVER_ADDRESS", "0.0.0.0:9999")
	t.Setenv("CHAINCODE_ID", "wastechain_1.0:abc")
	t.Setenv("LOG_FORMAT", "JSON")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Chaincode.External())
	assert.Equal(t, "wastechain_1.0:abc", cfg.Chaincode.ID)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadErrors(t *testing.T) {
	t.Run("external without id", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CHAINCODE_SERVER_ADDRESS", ":9999")
		_, err := Load()
		require.Error(t, err)
	})
	t.Run("bad bool", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CHAINCODE_TLS_DISABLED", "maybe")
		_, err := Load()
		require.ErrorContains(t, err, "CHAINCODE_TLS_DISABLED")
	})
	t.Run("tls requested", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CHAINCODE_SERVER_ADDRESS", ":9999")
		t.Setenv("CHAINCODE_ID", "cc")
		t.Setenv("CHAINCODE_TLS_DISABLED", "false")
		_, err := Load()
		require.Error(t, err)
	})
	t.Run("bad format", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("LOG_FORMAT", "xml")
		_, err := Load()
		require.ErrorContains(t, err, "LOG_FORMAT")
	})
}
