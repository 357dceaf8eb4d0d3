package main

import (
	"fmt"
	"os"

	"github.com/lectern-app/lectern/internal/config"
	"github.com/lectern-app/lectern/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	// If no arguments or "serve" command, run the HTTP server
	if len(os.Args) < 2 || os.Args[1] == "serve" {
		cfg := config.NewConfig()
		entrypoint.Run(cfg, Version)
		return
	}

	switch os.Args[1] {
	case "version":
		fmt.Printf("lectern %s (%s)\n", Version, Commit)

	case "-h", "--help", "help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`lectern - reading position and annotation persistence engine

Usage:
  lectern [serve]    Run the HTTP server (default)
  lectern version    Print version information
  lectern help       Show this help

Configuration is read from the environment:
  PORT, HOST, DATABASE_PATH, LOG_LEVEL, SHUTDOWN_TIMEOUT_IN_SECONDS`)
}
