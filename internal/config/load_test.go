package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdeck/task-api/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)

	assert.Equal(t, 4, cfg.Worker.Count)
	assert.Equal(t, 64, cfg.Worker.QueueSize)
	assert.Equal(t, time.Second, cfg.Worker.StepInterval)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("TASKAPI_SERVER_PORT", "9090")
	t.Setenv("TASKAPI_SERVER_LOG_LEVEL", "debug")
	t.Setenv("TASKAPI_WORKER_COUNT", "8")
	t.Setenv("TASKAPI_WORKER_STEP_INTERVAL", "250ms")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, 8, cfg.Worker.Count)
	assert.Equal(t, 250*time.Millisecond, cfg.Worker.StepInterval)

	// untouched settings keep their defaults
	assert.Equal(t, 64, cfg.Worker.QueueSize)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad_log_level", "TASKAPI_SERVER_LOG_LEVEL", "verbose"},
		{"port_out_of_range", "TASKAPI_SERVER_PORT", "70000"},
		{"zero_workers", "TASKAPI_WORKER_COUNT", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := config.Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid configuration")
		})
	}
}
