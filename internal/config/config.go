package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	Worker WorkerConfig `mapstructure:"worker" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// ShutdownTimeout bounds how long graceful shutdown waits for
	// in-flight requests.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required"`
}

// WorkerConfig contains the background runner settings.
type WorkerConfig struct {
	// Count is the number of concurrent background workers.
	Count int `mapstructure:"count" validate:"required,gt=0"`

	// QueueSize bounds the in-memory job queue; submissions beyond it
	// are rejected rather than spawning unbounded work.
	QueueSize int `mapstructure:"queue_size" validate:"required,gt=0"`

	// StepInterval is the duration of one unit of simulated work.
	// Configurable so tests can run simulations in milliseconds.
	StepInterval time.Duration `mapstructure:"step_interval" validate:"required"`
}
