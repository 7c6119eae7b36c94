// Package config loads server and worker settings from an optional YAML
// file and TASKAPI_-prefixed environment variables, applying defaults and
// validating the result so the rest of the application sees a consistent,
// typed configuration.
package config
