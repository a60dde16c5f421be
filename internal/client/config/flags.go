package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/trackit/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the backend API (default from Config)
//	-d int      filter debounce delay in milliseconds (default from Config)
//
// Note: The function filters os.Args to only include the flags it knows
// about, using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "base URL of the backend API")
	debounceMs := fs.Int("d", int(cfg.DebounceDelay.Milliseconds()), "filter debounce delay (in milliseconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.DebounceDelay = time.Duration(*debounceMs) * time.Millisecond
}
