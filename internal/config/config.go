// Package config loads runtime settings for the Oracle CLI. Values are
// layered: compiled-in defaults, then environment (including a local .env
// file), then a JSON config file, then command-line flags — later sources
// take precedence.
package config

import "time"

// Config holds runtime settings for the Oracle CLI.
//
// Fields:
//   - DataDir: directory that holds both local databases.
//   - FlatDBFile: SQLite file name for the flat record store, inside DataDir.
//   - DocumentDBDir: Badger directory for the study-session store, inside DataDir.
//   - AuthLatency: artificial delay applied to signup/login. Purely cosmetic,
//     kept for parity with the hosted UI; zero disables it.
type Config struct {
	DataDir       string
	FlatDBFile    string
	DocumentDBDir string
	AuthLatency   time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DataDir = "."
	c.FlatDBFile = "oracle.db"
	c.DocumentDBDir = "oracle-docs"
	c.AuthLatency = 0
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, a JSON file (if present), and command-line flags (if
// present). Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
