package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads a .env file into the process environment before the
// HOOKNSOCK_* overlay runs. Missing files are not an error; an explicit
// path that fails to parse is.
func LoadDotEnv(path string) error {
	if path == "" {
		if _, err := os.Stat(".env"); err != nil {
			return nil
		}
		return godotenv.Load()
	}
	return godotenv.Load(path)
}

// FromEnv overlays HOOKNSOCK_* environment variables onto cfg.
func FromEnv(cfg *Config) {
	if v := os.Getenv("HOOKNSOCK_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("HOOKNSOCK_TOKENS"); v != "" {
		cfg.Tokens = v
	}
	if v := os.Getenv("HOOKNSOCK_QUEUE_CAPACITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.QueueCapacity = n
		}
	}
	if v := os.Getenv("HOOKNSOCK_PAYLOAD_MAX_BYTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.PayloadMaxBytes = n
		}
	}
	if v := os.Getenv("HOOKNSOCK_ENABLE_STATUS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.EnableStatus = b
		}
	}
	if v := os.Getenv("HOOKNSOCK_ENABLE_METRICS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.EnableMetrics = b
		}
	}
}
