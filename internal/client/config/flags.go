package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/fraudcheck/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   address and port of the backend server
//	-s string   session database path
//	-w string   download directory
//	-i int      ping timeout (in seconds)
//	-l string   log level
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s", "-w", "-i", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	fs.StringVar(&cfg.SessionDBPath, "s", cfg.SessionDBPath, "session database path")
	fs.StringVar(&cfg.DownloadDir, "w", cfg.DownloadDir, "download directory")
	pingTimeout := fs.Int("i", int(cfg.PingTimeout.Seconds()), "ping timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "i" {
			cfg.PingTimeout = time.Duration(*pingTimeout) * time.Second
		}
	})
}
