package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	mcpcmd "github.com/hkopenai/hk-food-mcp-server/internal/cmd/mcp"
	"github.com/rs/zerolog/log"
)

// main starts the MCP server on stdio or HTTP.
func main() {
	cfg, err := mcpcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("parse flags")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := mcpcmd.Run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to serve MCP")
	}
}
