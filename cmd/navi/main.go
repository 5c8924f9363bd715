package main

import (
	"fmt"
	"os"

	"futarinavi/internal/cli"
	"futarinavi/internal/config"
	"futarinavi/internal/logger"
)

// Set by ldflags at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	config.Load()
	logger.SetLevel(config.Cfg.LogLevel)
	cli.SetVersionInfo(version, commit)

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
