package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/journly/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   path to the local vault database (default from Config)
//	-l int      auto-lock timeout in seconds (default from Config)
//	-s string   backup transport, "drive" or "s3" (default from Config)
//	-e string   directory for local backup exports (default from Config)
//
// Note: The function filters os.Args to only include the flags it knows
// about, using flagx.FilterArgs, to avoid interference with other
// components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-l", "-s", "-e"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local vault database")
	autoLockSeconds := fs.Int("l", int(cfg.AutoLockTimeout.Seconds()), "auto-lock timeout (in seconds)")
	fs.StringVar(&cfg.SyncTransport, "s", cfg.SyncTransport, "backup transport (drive or s3)")
	fs.StringVar(&cfg.ExportDir, "e", cfg.ExportDir, "directory for local backup exports")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.AutoLockTimeout = time.Duration(*autoLockSeconds) * time.Second
}
