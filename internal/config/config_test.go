package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("data", "day.csv"), cfg.GetDatasetPath())
	assert.Equal(t, "info", cfg.GetLogLevel())
	assert.False(t, cfg.MQTT.Enabled)
	assert.Equal(t, "bike_rentals", cfg.MQTT.GetTopicPrefix())
	assert.Equal(t, "bikereport", cfg.MQTT.GetClientID())
}

func TestLoad(t *testing.T) {
	content := `
dataset_path: /srv/bikes/day.csv
log_level: debug
env: production
mqtt:
  enabled: true
  broker: "mqtt.local:1883"
  username: bikes
  password: secret
  topic_prefix: dashboards/bikes
output:
  html: out/report.html
  xlsx: out/report.xlsx
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/bikes/day.csv", cfg.GetDatasetPath())
	assert.Equal(t, "debug", cfg.GetLogLevel())
	assert.Equal(t, "production", cfg.Env)
	assert.True(t, cfg.MQTT.Enabled)
	assert.Equal(t, "mqtt.local:1883", cfg.MQTT.Broker)
	assert.Equal(t, "dashboards/bikes", cfg.MQTT.GetTopicPrefix())
	assert.Equal(t, "out/report.html", cfg.Output.HTML)
	assert.Equal(t, "", cfg.Output.PDF)
	assert.Equal(t, "out/report.xlsx", cfg.Output.XLSX)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mqtt: [unterminated"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := &Config{
		DatasetPath: "day.csv",
		MQTT:        MQTTConfig{Enabled: true, Broker: "localhost:1883"},
	}

	require.NoError(t, Save(path, cfg))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
