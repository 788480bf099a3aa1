package config

import (
	"flag"
	"os"
	"time"

	"github.com/salespilots/platform/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-d string     PostgreSQL DSN
//	-dir string   data directory for flat-file collections
//	-s string     session signing secret (enables stateless tokens)
//	-ttl int      session lifetime, hours
//	-b string     S3 bucket name
//	-g string     S3 region
//	-e string     S3 base endpoint (e.g. "http://127.0.0.1:9000/")
//	-u string     S3 access key
//	-p string     S3 secret key
//
// os.Args is filtered to only these flags first, so subcommand arguments and
// the -c/-config flags of the JSON overlay do not collide.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-dir", "-s", "-ttl", "-b", "-g", "-e", "-u", "-p"})

	fs := flag.NewFlagSet("config", flag.ContinueOnError)

	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.DataDir, "dir", config.DataDir, "data directory")
	fs.StringVar(&config.SessionSecret, "s", config.SessionSecret, "session signing secret")

	sessionTTLHours := fs.Int("ttl", int(config.SessionTTL.Hours()), "session lifetime (in hours)")

	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.S3AccessKey, "u", config.S3AccessKey, "S3 access key")
	fs.StringVar(&config.S3SecretKey, "p", config.S3SecretKey, "S3 secret key")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// Only an explicit -ttl overrides the configured duration; the flag is
	// hour-granular and would otherwise truncate a sub-hour TTL from the
	// JSON overlay.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "ttl" {
			config.SessionTTL = time.Duration(*sessionTTLHours) * time.Hour
		}
	})
}
