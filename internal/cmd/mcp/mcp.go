// Package mcp parses MCP command flags and selects stdio or HTTP transport.
package mcp

import (
	"context"
	"flag"
	"time"

	entrypoint "github.com/hkopenai/hk-food-mcp-server/internal/platform/cmd"
	"github.com/hkopenai/hk-food-mcp-server/internal/platform/logging"
	"github.com/hkopenai/hk-food-mcp-server/internal/services/food/wholesale"
	"github.com/hkopenai/hk-food-mcp-server/internal/services/mcp/service"
	"github.com/rs/zerolog/log"
)

// Config holds MCP command configuration.
type Config struct {
	Transport    string        `env:"HK_FOOD_MCP_TRANSPORT"        envDefault:"stdio"`
	HTTPAddr     string        `env:"HK_FOOD_MCP_HTTP_ADDR"        envDefault:"localhost:8081"`
	AllowedHosts []string      `env:"HK_FOOD_MCP_ALLOWED_HOSTS"    envSeparator:","`
	AuthToken    string        `env:"HK_FOOD_MCP_AUTH_TOKEN"`
	SourceURL    string        `env:"HK_FOOD_WHOLESALE_PRICES_URL" envDefault:"https://www.afcd.gov.hk/english/agriculture/agr_fresh/files/Wholesale_Prices.csv"`
	FetchTimeout time.Duration `env:"HK_FOOD_FETCH_TIMEOUT"        envDefault:"30s"`
	LogLevel     string        `env:"HK_FOOD_LOG_LEVEL"            envDefault:"info"`
	LogFormat    string        `env:"HK_FOOD_LOG_FORMAT"           envDefault:"json"`
}

// ParseConfig parses dotenv, environment and flags into a Config. Flags win.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.StringVar(&cfg.SourceURL, "source-url", cfg.SourceURL, "wholesale prices CSV URL")
	fs.DurationVar(&cfg.FetchTimeout, "fetch-timeout", cfg.FetchTimeout, "timeout for each CSV download")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: trace, debug, info, warn, error")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: json or console")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if cfg.SourceURL == "" {
		cfg.SourceURL = wholesale.DefaultSourceURL
	}
	return cfg, nil
}

// Run starts the MCP protocol adapter.
func Run(ctx context.Context, cfg Config) error {
	if err := logging.Setup(cfg.LogLevel, logging.Format(cfg.LogFormat)); err != nil {
		return err
	}
	log.Info().
		Str("transport", cfg.Transport).
		Str("service", entrypoint.ServiceMCP).
		Msg("starting MCP server")

	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMCP, func(ctx context.Context) error {
		return service.Run(ctx, service.Config{
			Transport:    service.TransportKind(cfg.Transport),
			HTTPAddr:     cfg.HTTPAddr,
			AllowedHosts: cfg.AllowedHosts,
			AuthToken:    cfg.AuthToken,
			SourceURL:    cfg.SourceURL,
			FetchTimeout: cfg.FetchTimeout,
		})
	})
}
