package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hkopenai/hk-food-mcp-server/internal/services/food/csvfetch"
	"github.com/hkopenai/hk-food-mcp-server/internal/services/food/wholesale"
	"github.com/hkopenai/hk-food-mcp-server/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

const (
	// serverName identifies this MCP server to clients.
	serverName = "HK OpenAI food Server"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
	// defaultHTTPAddr keeps the HTTP transport local unless configured otherwise.
	defaultHTTPAddr = "localhost:8081"
)

// TransportKind identifies the MCP transport implementation.
type TransportKind string

const (
	// TransportStdio uses standard input/output for MCP.
	TransportStdio TransportKind = "stdio"
	// TransportHTTP runs MCP over streamable HTTP for remote clients.
	TransportHTTP TransportKind = "http"
)

// Config configures the MCP server.
type Config struct {
	Transport TransportKind
	// HTTPAddr is the listen address for the HTTP transport. Defaults to
	// localhost:8081.
	HTTPAddr string
	// AllowedHosts extends the loopback-only Host/Origin allow list.
	AllowedHosts []string
	// AuthToken, when set, is required as a bearer token on /mcp.
	AuthToken string
	// SourceURL overrides the wholesale prices CSV location.
	SourceURL string
	// FetchTimeout bounds each CSV download.
	FetchTimeout time.Duration
}

// Server hosts the MCP server.
type Server struct {
	mcpServer *mcp.Server
}

// New creates a configured MCP server backed by the AFCD CSV source.
func New(cfg Config) (*Server, error) {
	fetcher := csvfetch.New(csvfetch.WithTimeout(cfg.FetchTimeout))
	prices, err := wholesale.NewService(fetcher, wholesale.WithSourceURL(cfg.SourceURL))
	if err != nil {
		return nil, fmt.Errorf("create wholesale price service: %w", err)
	}
	log.Info().
		Str("source_url", prices.SourceURL()).
		Msg("wholesale price source configured")
	return newServer(prices)
}

// newServer creates the MCP tool bindings once for the lifetime of the server.
func newServer(prices domain.WholesalePriceService) (*Server, error) {
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, &mcp.ServerOptions{
		CompletionHandler: completionHandler,
	})

	for _, module := range newMCPRegistrationModules(mcpRegistrationServices{wholesalePrices: prices}) {
		if err := module.register(mcpServerRegistrationAdapter{server: mcpServer}); err != nil {
			return nil, fmt.Errorf("register MCP module %q: %w", module.name, err)
		}
		log.Debug().Str("module", module.name).Msg("registered MCP module")
	}

	return &Server{mcpServer: mcpServer}, nil
}

// completionHandler handles completion/complete requests with empty results.
// No tool argument has a completion source.
func completionHandler(ctx context.Context, req *mcp.CompleteRequest) (*mcp.CompleteResult, error) {
	return &mcp.CompleteResult{
		Completion: mcp.CompletionResultDetails{
			Values: []string{},
		},
	}, nil
}

// Run is the service entrypoint for MCP and blocks until context cancellation.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}

	switch cfg.Transport {
	case TransportStdio:
		return runWithTransport(ctx, cfg, &mcp.StdioTransport{})
	case TransportHTTP:
		return runWithHTTPTransport(ctx, cfg)
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
}

// runWithHTTPTransport creates a server and serves it over streamable HTTP.
func runWithHTTPTransport(ctx context.Context, cfg Config) error {
	server, err := New(cfg)
	if err != nil {
		return err
	}

	httpAddr := cfg.HTTPAddr
	if httpAddr == "" {
		httpAddr = defaultHTTPAddr
	}
	httpTransport := NewHTTPTransport(httpAddr, server.mcpServer, HTTPOptions{
		AllowedHosts: cfg.AllowedHosts,
		AuthToken:    cfg.AuthToken,
	})
	return httpTransport.Start(ctx)
}

// runWithTransport creates a server and serves it over the provided transport.
func runWithTransport(ctx context.Context, cfg Config, transport mcp.Transport) error {
	server, err := New(cfg)
	if err != nil {
		return err
	}
	return server.serveWithTransport(ctx, transport)
}

// Serve starts the MCP server on stdio and blocks until it stops or the context ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

// serveWithTransport starts the MCP server using the provided transport.
// Cancellation is a clean stop.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}
