// cmd/mcp-server/main.go — MCP server for gopoly
//
// Exposes gopoly tools to AI agent frameworks over stdio (default) or
// streamable HTTP.
//
// Usage:
//   go run ./cmd/mcp-server                          # stdio
//   go run ./cmd/mcp-server -transport http -http-addr :8080
//
// HTTP endpoints:
//   POST /tool   — execute a tool call
//   GET  /schema — tool schema for agent registration
//   GET  /health — health check
//   /mcp         — streamable MCP endpoint
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/njchilds90/gopoly/internal/log"
	"github.com/njchilds90/gopoly/internal/mcpserver"
)

func main() {
	cfg, err := mcpserver.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Default().Error("parse config", "err", err)
		os.Exit(2)
	}
	logger := log.New(log.ParseLevel(cfg.LogLevel)).Module("mcp-server")
	log.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := mcpserver.Run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
