package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the process environment. A .env
// file in the working directory is loaded first if present; real environment
// variables win over it (godotenv never overrides existing keys).
//
// Recognized variables:
//
//	ORACLE_DATA_DIR       — data directory
//	ORACLE_FLAT_DB        — flat store file name
//	ORACLE_DOC_DIR        — document store directory name
//	ORACLE_AUTH_LATENCY   — signup/login delay, time.ParseDuration format
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("ORACLE_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("ORACLE_FLAT_DB"); v != "" {
		cfg.FlatDBFile = v
	}
	if v := os.Getenv("ORACLE_DOC_DIR"); v != "" {
		cfg.DocumentDBDir = v
	}
	if v := os.Getenv("ORACLE_AUTH_LATENCY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.AuthLatency = d
		}
	}
}
