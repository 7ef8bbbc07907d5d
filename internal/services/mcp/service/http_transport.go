package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/hkopenai/hk-food-mcp-server/internal/platform/timeouts"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

var listenTCP = net.Listen

// HTTPOptions configures request admission for the HTTP transport.
type HTTPOptions struct {
	// AllowedHosts lists non-loopback hostnames accepted in Host and Origin
	// headers.
	AllowedHosts []string
	// AuthToken, when set, must be presented as a bearer token on /mcp.
	AuthToken string
}

// HTTPTransport serves MCP over the streamable HTTP transport at /mcp, with a
// health check at /mcp/health. Requests are accepted only from loopback or
// explicitly allowed hosts.
type HTTPTransport struct {
	addr         string
	allowedHosts map[string]struct{}
	apiToken     string
	server       *mcp.Server
	httpServer   *http.Server
}

// NewHTTPTransport creates an HTTP transport for server. An empty addr binds
// localhost only.
func NewHTTPTransport(addr string, server *mcp.Server, opts HTTPOptions) *HTTPTransport {
	if addr == "" {
		addr = defaultHTTPAddr
	}
	return &HTTPTransport{
		addr:         addr,
		allowedHosts: parseAllowedHosts(opts.AllowedHosts),
		apiToken:     strings.TrimSpace(opts.AuthToken),
		server:       server,
	}
}

// Handler returns the HTTP handler serving the MCP and health endpoints.
func (t *HTTPTransport) Handler() http.Handler {
	streamable := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return t.server
	}, nil)

	mux := http.NewServeMux()
	mux.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if err := t.validateLocalRequest(r); err != nil {
			http.Error(w, err.Error(), http.StatusForbidden)
			return
		}
		if !t.authorizeRequest(w, r) {
			return
		}
		streamable.ServeHTTP(w, r)
	})
	mux.HandleFunc("/mcp/health", t.handleHealth)
	return mux
}

// Start serves HTTP until ctx is cancelled, then shuts the server down
// gracefully.
func (t *HTTPTransport) Start(ctx context.Context) error {
	if t == nil || t.server == nil {
		return fmt.Errorf("MCP server is not configured")
	}

	listener, err := listenTCP("tcp", t.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", t.addr, err)
	}

	t.httpServer = &http.Server{
		Handler:           t.Handler(),
		ReadHeaderTimeout: timeouts.ReadHeader,
	}

	log.Info().Str("addr", listener.Addr().String()).Msg("starting MCP HTTP server")

	errChan := make(chan error, 1)
	go func() {
		if err := t.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down MCP HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := t.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown HTTP server: %w", err)
		}
		return nil
	case err := <-errChan:
		return fmt.Errorf("HTTP server error: %w", err)
	}
}
