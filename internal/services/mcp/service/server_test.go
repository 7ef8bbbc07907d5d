package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/hkopenai/hk-food-mcp-server/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type failingTransport struct{}

func (failingTransport) Connect(context.Context) (mcp.Connection, error) {
	return nil, errors.New("transport failed")
}

func newTestServer(t *testing.T, sourceURL string) *Server {
	t.Helper()
	server, err := New(Config{SourceURL: sourceURL, FetchTimeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return server
}

func callWholesalePrices(t *testing.T, session *mcp.ClientSession, args map[string]any) (*mcp.CallToolResult, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return session.CallTool(ctx, &mcp.CallToolParams{
		Name:      domain.WholesalePricesToolName,
		Arguments: args,
	})
}

// TestRunWithTransportServesAndStops ensures runWithTransport connects, serves, and exits on cancel.
func TestRunWithTransportServesAndStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- runWithTransport(ctx, Config{SourceURL: "http://127.0.0.1:0/prices.csv"}, serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	clientCtx, clientCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer clientCancel()

	session, err := client.Connect(clientCtx, clientTransport, nil)
	if err != nil {
		t.Fatalf("connect client: %v", err)
	}
	defer session.Close()

	cancel()

	select {
	case err := <-serveErr:
		if err != nil {
			t.Fatalf("run returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("run did not stop after cancel")
	}
}

// TestRunUnsupportedTransport ensures Run rejects unknown transport kinds.
func TestRunUnsupportedTransport(t *testing.T) {
	err := Run(context.Background(), Config{Transport: "websocket"})
	if err == nil {
		t.Fatal("expected error for unsupported transport")
	}
	if !strings.Contains(err.Error(), "not supported") {
		t.Errorf("expected 'not supported' in error, got: %v", err)
	}
}

func TestServeWithTransportErrors(t *testing.T) {
	var nilServer *Server
	if err := nilServer.serveWithTransport(context.Background(), failingTransport{}); err == nil {
		t.Fatal("expected error for nil server")
	}

	emptyServer := &Server{}
	if err := emptyServer.serveWithTransport(context.Background(), failingTransport{}); err == nil {
		t.Fatal("expected error for missing mcp server")
	}

	server := newTestServer(t, "")
	if err := server.serveWithTransport(nil, failingTransport{}); err == nil {
		t.Fatal("expected error from failing transport")
	}
}

func TestAddMCPToolRejectsUnknownHandler(t *testing.T) {
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: "test", Version: "1.0"}, nil)
	err := addMCPTool(mcpServer, &mcp.Tool{Name: "other"}, func() {})
	if err == nil {
		t.Fatal("expected error for unsupported handler type")
	}
	if !strings.Contains(err.Error(), `"other"`) {
		t.Errorf("expected tool name in error, got: %v", err)
	}
}

func TestRegisterFoodToolsRequiresService(t *testing.T) {
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: "test", Version: "1.0"}, nil)
	if err := registerFoodTools(mcpServerRegistrationAdapter{server: mcpServer}, nil); err == nil {
		t.Fatal("expected error for missing price service")
	}
	if err := registerTool(nil, domain.WholesalePricesTool(), nil); err == nil {
		t.Fatal("expected error for missing registrar")
	}
}

func TestCompletionHandlerReturnsEmptyValues(t *testing.T) {
	result, err := completionHandler(context.Background(), nil)
	if err != nil {
		t.Fatalf("completion: %v", err)
	}
	if result.Completion.Values == nil || len(result.Completion.Values) != 0 {
		t.Fatalf("expected empty completion values, got %v", result.Completion.Values)
	}
}

func TestListToolsAdvertisesWholesalePrices(t *testing.T) {
	session := connectInMemory(t, newTestServer(t, ""))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	tools, err := session.ListTools(ctx, nil)
	if err != nil {
		t.Fatalf("list tools: %v", err)
	}
	if len(tools.Tools) != 1 {
		t.Fatalf("expected 1 tool, got %d", len(tools.Tools))
	}
	tool := tools.Tools[0]
	if tool.Name != "get_wholesale_prices" {
		t.Errorf("expected get_wholesale_prices, got %q", tool.Name)
	}
	if !strings.Contains(tool.Description, "Agriculture, Fisheries and Conservation Department") {
		t.Errorf("unexpected description %q", tool.Description)
	}
}

func TestWholesalePricesToolEndToEnd(t *testing.T) {
	source := startPriceSource(t, http.StatusOK, pricesCSV(t, fixturePriceRows))
	session := connectInMemory(t, newTestServer(t, source.URL))

	t.Run("english default", func(t *testing.T) {
		result, err := callWholesalePrices(t, session, map[string]any{})
		if err != nil {
			t.Fatalf("call tool: %v", err)
		}
		if result.IsError {
			t.Fatalf("unexpected tool error: %+v", result.Content)
		}
		if _, ok := result.Meta[domain.InvocationIDMetaKey]; !ok {
			t.Error("expected invocation id in result meta")
		}

		var payload domain.WholesalePricesResult
		decodeToolPayload(t, result, &payload)
		if len(payload.Records) != 3 {
			t.Fatalf("expected 3 records, got %d", len(payload.Records))
		}
		if got := payload.Records[0]["category"]; got != "Average Wholesale Prices" {
			t.Errorf("category = %q", got)
		}
		if got := payload.Records[1]["food_type"]; got != "Live cattle" {
			t.Errorf("food_type = %q", got)
		}
		if got := payload.Records[2]["price"]; got != "80" {
			t.Errorf("price = %q", got)
		}
	})

	t.Run("chinese within range", func(t *testing.T) {
		result, err := callWholesalePrices(t, session, map[string]any{
			"start_date": "30/05/2025",
			"end_date":   "31/05/2025",
			"language":   "zh",
		})
		if err != nil {
			t.Fatalf("call tool: %v", err)
		}
		var payload domain.WholesalePricesResult
		decodeToolPayload(t, result, &payload)
		if len(payload.Records) != 1 {
			t.Fatalf("expected 1 record, got %d", len(payload.Records))
		}
		if got := payload.Records[0]["食品種類"]; got != "活牛" {
			t.Errorf("食品種類 = %q", got)
		}
		if got := payload.Records[0]["類別"]; got != "平均批發價" {
			t.Errorf("類別 = %q", got)
		}
	})

	t.Run("unsupported language", func(t *testing.T) {
		result, err := callWholesalePrices(t, session, map[string]any{"language": "fr"})
		if err == nil && (result == nil || !result.IsError) {
			t.Fatal("expected unsupported language to fail")
		}
	})

	t.Run("malformed date", func(t *testing.T) {
		result, err := callWholesalePrices(t, session, map[string]any{"start_date": "2025-05-30"})
		if err == nil && (result == nil || !result.IsError) {
			t.Fatal("expected malformed date to fail")
		}
	})
}

func TestWholesalePricesToolSourceFailure(t *testing.T) {
	source := startPriceSource(t, http.StatusInternalServerError, []byte("boom"))
	session := connectInMemory(t, newTestServer(t, source.URL))

	result, err := callWholesalePrices(t, session, map[string]any{"language": "en"})
	if err != nil {
		t.Fatalf("call tool: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected error result")
	}

	var payload struct {
		Type  string `json:"type"`
		Error string `json:"error"`
	}
	decodeToolPayload(t, result, &payload)
	if payload.Type != "Error" {
		t.Errorf("type = %q, want Error", payload.Type)
	}
	if !strings.Contains(payload.Error, "500") {
		t.Errorf("expected status in error message, got %q", payload.Error)
	}
}
