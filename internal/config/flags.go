package config

import (
	"flag"
	"os"
	"strings"

	"github.com/progrestian/izin/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   PostgreSQL DSN
//	-a string   HTTP bind address (e.g., "127.0.0.1:8080")
//	-s string   token signing secret
//	-o string   comma-separated CORS origins
//	-l          enable request logging
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, so the CLI's own subcommand arguments pass through
// untouched.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-a", "-s", "-o", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.Address, "a", config.Address, "address and port to run server")
	fs.StringVar(&config.Secret, "s", config.Secret, "token signing secret")

	origins := fs.String("o", strings.Join(config.Origins, ","), "comma-separated CORS origins")
	fs.BoolVar(&config.Logging, "l", config.Logging, "enable request logging")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	if *origins != "" {
		config.Origins = strings.Split(*origins, ",")
	}
}
