package main

import (
	"flag"
	"time"
)

// serverFlags holds the command-line settings of the API server. The listen
// address, when set, overrides the one from the configuration file.
type serverFlags struct {
	ConfigPath      string
	ListenAddr      string
	LogLevel        string
	ShutdownTimeout time.Duration
}

func parseFlags() *serverFlags {
	flags := &serverFlags{}

	flag.StringVar(&flags.ConfigPath, "config", "config.yaml", "Path to the YAML configuration file")
	flag.StringVar(&flags.ListenAddr, "listen", "", "Address to listen on (overrides server.listen from the config)")
	flag.StringVar(&flags.LogLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")
	flag.DurationVar(&flags.ShutdownTimeout, "shutdown-timeout", 10*time.Second, "Graceful shutdown timeout")

	flag.Parse()

	return flags
}
