// Package config provides loading and environment overlay for HooknSock
// runtime configuration. It exposes a Default() baseline, JSON file
// loading, a HOOKNSOCK_* environment overlay, and optional .env file
// support.
//
// Example:
//
//	cfg := config.Default()
//	if fileCfg, err := config.Load("/etc/hooknsock.json"); err == nil {
//	    cfg = fileCfg
//	}
//	config.LoadDotEnv("")
//	config.FromEnv(&cfg)
package config
