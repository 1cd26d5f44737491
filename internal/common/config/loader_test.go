package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile_Defaults(t *testing.T) {
	path := writeConfig(t, `
camunda:
  broker_address: localhost:26500
workers:
  validate-card-application:
    enabled: true
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "card-application-workers", cfg.App.Name)
	assert.Equal(t, 10, cfg.Camunda.MaxJobsActive)
	assert.Equal(t, 5, cfg.Camunda.ConnectRetries)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 9090, cfg.Metrics.Port)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "abort_early", cfg.Validation.Aggregation)
	assert.Equal(t, "fixed365", cfg.Validation.AgeCutoff)
	assert.Equal(t, 18, cfg.Validation.MinimumAge)

	w := GetWorkerConfig(cfg, "validate-card-application")
	assert.True(t, w.Enabled)
	assert.Equal(t, 5, w.MaxJobsActive)
	assert.Equal(t, 30000, w.Timeout)
	assert.Equal(t, 3, w.MaxRetries)
}

func TestLoadFromFile_ExplicitValues(t *testing.T) {
	path := writeConfig(t, `
app:
  environment: production
camunda:
  broker_address: zeebe:26500
  max_jobs_active: 32
logging:
  level: debug
  format: console
validation:
  aggregation: All
  age_cutoff: calendar
  minimum_age: 21
workers:
  validate-card-application:
    enabled: false
    max_jobs_active: 8
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Environment)
	assert.Equal(t, 32, cfg.Camunda.MaxJobsActive)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "all", cfg.Validation.Aggregation)
	assert.Equal(t, "calendar", cfg.Validation.AgeCutoff)
	assert.Equal(t, 21, cfg.Validation.MinimumAge)
	assert.False(t, IsWorkerEnabled(cfg, "validate-card-application"))
	assert.Equal(t, 8, GetWorkerConfig(cfg, "validate-card-application").MaxJobsActive)
}

func TestLoadFromFile_EnvOverrides(t *testing.T) {
	t.Setenv("CAMUNDA_BROKER_ADDRESS", "broker.internal:26500")
	t.Setenv("VALIDATION_AGGREGATION", "first")
	t.Setenv("ZEEBE_PORT", "26501")

	path := writeConfig(t, `
camunda:
  broker_address: localhost:26500
app:
  name: cards-${ZEEBE_PORT}
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "broker.internal:26500", cfg.Camunda.BrokerAddress)
	assert.Equal(t, "first", cfg.Validation.Aggregation)
	assert.Equal(t, "cards-26501", cfg.App.Name)
}

func TestLoadFromFile_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "missing broker address",
			body: `logging: {level: info}`,
		},
		{
			name: "unknown aggregation policy",
			body: `
camunda: {broker_address: "localhost:26500"}
validation: {aggregation: loudest}
`,
		},
		{
			name: "unknown age cutoff",
			body: `
camunda: {broker_address: "localhost:26500"}
validation: {age_cutoff: lunar}
`,
		},
		{
			name: "bad log level",
			body: `
camunda: {broker_address: "localhost:26500"}
logging: {level: verbose}
`,
		},
		{
			name: "metrics port out of range",
			body: `
camunda: {broker_address: "localhost:26500"}
metrics: {port: 70000}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid configuration")
		})
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestWorkerHelpers_UnlistedWorker(t *testing.T) {
	cfg := &Config{}
	assert.True(t, IsWorkerEnabled(cfg, "anything"))
	assert.Equal(t, 5, GetWorkerConfig(cfg, "anything").MaxJobsActive)
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 1500*time.Millisecond, GetDuration(1500))
}
