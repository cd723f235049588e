package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"wordcharts/internal/config"
	"wordcharts/internal/mcptools"
	"wordcharts/internal/pipeline"
)

const (
	version    = "0.1.0"
	serverName = "wordcharts-mcp"
)

func main() {
	// Handle version flag
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Printf("%s version %s\n", serverName, version)
		os.Exit(0)
	}

	// MCP uses stdout for protocol
	log.SetOutput(os.Stderr)
	cfg := config.Load()
	slog.SetDefault(cfg.Logger(os.Stderr))

	yamlCfg, err := config.LoadYAMLConfig()
	if err != nil {
		log.Fatalf("Failed to load config file: %v", err)
	}
	p, err := pipeline.FromConfig(cfg, yamlCfg, nil)
	if err != nil {
		log.Fatalf("Failed to initialize pipeline: %v", err)
	}

	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    serverName,
			Version: version,
		},
		nil,
	)
	mcptools.New(p).Register(server)
	log.Printf("%s v%s ready", serverName, version)

	if err := server.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
