package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/sinkisle/internal/config"
	islemcp "github.com/peterkuimelis/sinkisle/internal/mcp"
)

func main() {
	settings, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	settings.RegisterFlags(flag.CommandLine)
	flag.Parse()

	// stdout carries the protocol; process logs go to stderr.
	logger := settings.Logger()

	base, err := settings.GameConfig()
	if err != nil {
		logger.WithError(err).Fatal("load game config")
	}

	s := server.NewMCPServer("sinkisle", "1.0.0")
	islemcp.RegisterTools(s, islemcp.NewTables(base, settings.MaxTurns))

	logger.Info("serving MCP over stdio")
	if err := server.ServeStdio(s); err != nil {
		logger.WithError(err).Fatal("serve stdio")
	}
}
