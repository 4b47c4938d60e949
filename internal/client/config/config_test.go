package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, DefaultServerAddress, cfg.ServerAddress)
	require.Equal(t, "prod", cfg.Env)
	require.Equal(t, 30*time.Second, cfg.RequestTimeout)
	require.NotEmpty(t, cfg.DataDir)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SIAP_API_URL", "https://arsip.pareparekota.go.id")
	t.Setenv("SIAP_ENV", "dev")
	t.Setenv("SIAP_REQUEST_TIMEOUT", "5s")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "https://arsip.pareparekota.go.id", cfg.ServerAddress)
	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, 5*time.Second, cfg.RequestTimeout)
}

func TestLoad_WebClientEnvNameWins(t *testing.T) {
	t.Setenv("SIAP_API_URL", "http://from-api-url:5000")
	t.Setenv("SIAP_SERVER_ADDRESS", "http://from-server-address:5000")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://from-api-url:5000", cfg.ServerAddress)
}
