package main

import (
	"fmt"
	"os"

	"github.com/ironsheep/pixel-canvas-mcp/cmd/pixel-canvas-mcp/commands"
)

// Version information - set by ldflags during build
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)

	if err := commands.Execute(); err != nil {
		// stdout carries the MCP protocol, so errors go to stderr
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
