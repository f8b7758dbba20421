package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/kiview/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the backend server (default from Config)
//	-r int      object URL revoke delay in seconds (default from Config)
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-r"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the backend server")
	revokeDelay := fs.Int("r", int(cfg.RevokeDelay.Seconds()), "object URL revoke delay (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RevokeDelay = time.Duration(*revokeDelay) * time.Second
}
