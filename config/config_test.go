package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "pup-exporter", cfg.AppName)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "puplookup.csv", cfg.OutputFilename)
	assert.Equal(t, time.Hour, cfg.SyncInterval())
	assert.Equal(t, 60*time.Second, cfg.RequestTimeout())
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout())
	assert.Contains(t, cfg.LastUpdatedURL, "lastUpdated.json")
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SYNC_INTERVAL_SECONDS", "60")
	t.Setenv("OUTPUT_FILENAME", "lookup.csv")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, time.Minute, cfg.SyncInterval())
	assert.Equal(t, "lookup.csv", cfg.OutputFilename)
}

func TestLoadRejectsInvalidURL(t *testing.T) {
	t.Setenv("VPSDB_URL", "not a url")

	_, err := Load()
	require.Error(t, err)
}
