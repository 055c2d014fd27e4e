package config

import (
	"encoding/json"
	"os"
)

// Config is the top-level configuration loaded from file/env.
type Config struct {
	// HTTPAddr is the listen address for the HTTP server.
	HTTPAddr string `json:"httpAddr"`
	// Tokens is the credential table: a comma-separated list of
	// "token" or "token:channel" entries. A bare token authorizes the
	// "default" channel.
	Tokens string `json:"tokens"`
	// QueueCapacity bounds each channel's delivery queue. Zero means
	// unbounded.
	QueueCapacity int `json:"queueCapacity"`
	// PayloadMaxBytes caps the accepted webhook body size.
	PayloadMaxBytes int `json:"payloadMaxBytes"`
	// EnableStatus exposes the /v1/statusz summary endpoint.
	EnableStatus bool `json:"enableStatus"`
	// EnableMetrics exposes Prometheus metrics at /metrics.
	EnableMetrics bool `json:"enableMetrics"`
}

// Default returns built-in defaults. Tokens has no default: a usable
// credential table must come from the file, the environment, or flags.
func Default() Config {
	return Config{
		HTTPAddr:        ":8080",
		QueueCapacity:   0,
		PayloadMaxBytes: 1 << 20,
		EnableStatus:    false,
		EnableMetrics:   false,
	}
}

// Load reads configuration from a JSON file. If path is empty, returns
// defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	if err := json.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
