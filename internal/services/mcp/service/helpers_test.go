package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hkopenai/hk-food-mcp-server/internal/services/food/wholesale"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type priceRow struct {
	foodType   string
	foodTypeZH string
	price      string
	revised    string
}

var fixturePriceRows = []priceRow{
	{foodType: "Live pig", foodTypeZH: "活豬", price: "12.44", revised: "29/05/2025"},
	{foodType: "Live cattle", foodTypeZH: "活牛", price: "是日沒有供應", revised: "30/05/2025"},
	{foodType: "Golden thread", foodTypeZH: "紅衫", price: "80", revised: "01/06/2025"},
}

func pricesCSV(t *testing.T, rows []priceRow) []byte {
	t.Helper()

	header := wholesale.SourceColumns()
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(header); err != nil {
		t.Fatalf("write header: %v", err)
	}
	for _, row := range rows {
		values := map[string]string{
			"ENGLISH CATEGORY":                 "Average Wholesale Prices",
			"中文類別":                             "平均批發價",
			"FOOD TYPE":                        row.foodType,
			"食品種類":                             row.foodTypeZH,
			"PRICE (THIS MORNING)":             row.price,
			"價錢 (今早)":                          row.price,
			wholesale.ColumnLastRevisionDate:   row.revised,
			wholesale.ColumnLastRevisionDateZH: row.revised,
		}
		record := make([]string, len(header))
		for i, name := range header {
			value, ok := values[name]
			if !ok {
				value = "-"
			}
			record[i] = value
		}
		if err := writer.Write(record); err != nil {
			t.Fatalf("write record: %v", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		t.Fatalf("flush csv: %v", err)
	}
	return buf.Bytes()
}

// startPriceSource serves body as the wholesale prices CSV.
func startPriceSource(t *testing.T, status int, body []byte) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}))
	t.Cleanup(ts.Close)
	return ts
}

// connectInMemory serves server over in-memory transports and returns a
// connected client session.
func connectInMemory(t *testing.T, server *Server) *mcp.ClientSession {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.serveWithTransport(ctx, serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	connectCtx, connectCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer connectCancel()
	session, err := client.Connect(connectCtx, clientTransport, nil)
	if err != nil {
		cancel()
		t.Fatalf("connect client: %v", err)
	}

	t.Cleanup(func() {
		_ = session.Close()
		cancel()
		select {
		case <-serveErr:
		case <-time.After(2 * time.Second):
			t.Error("server did not stop after cancel")
		}
	})
	return session
}

// decodeToolPayload decodes the structured content of a tool result, falling
// back to its first text block.
func decodeToolPayload(t *testing.T, result *mcp.CallToolResult, target any) {
	t.Helper()

	if result.StructuredContent != nil {
		raw, err := json.Marshal(result.StructuredContent)
		if err != nil {
			t.Fatalf("marshal structured content: %v", err)
		}
		if err := json.Unmarshal(raw, target); err != nil {
			t.Fatalf("decode structured content: %v", err)
		}
		return
	}
	if len(result.Content) == 0 {
		t.Fatal("tool result has no content")
	}
	text, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}
	if err := json.Unmarshal([]byte(text.Text), target); err != nil {
		t.Fatalf("decode text content: %v", err)
	}
}
