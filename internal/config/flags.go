package config

import (
	"flag"
	"os"
	"time"

	"github.com/kpetrova/oracle/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   data directory (default from Config)
//	-l string   auth latency, time.ParseDuration format (default from Config)
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	authLatency := fs.String("l", cfg.AuthLatency.String(), "signup/login delay (e.g. 800ms)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	if d, err := time.ParseDuration(*authLatency); err == nil {
		cfg.AuthLatency = d
	}
}
