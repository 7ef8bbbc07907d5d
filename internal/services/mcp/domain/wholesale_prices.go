package domain

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/hkopenai/hk-food-mcp-server/internal/platform/requestctx"
	"github.com/hkopenai/hk-food-mcp-server/internal/services/food/wholesale"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// WholesalePricesToolName is the MCP tool name for the wholesale price query.
const WholesalePricesToolName = "get_wholesale_prices"

// datePattern accepts a blank string or D/M/YYYY with one or two digit day
// and month.
const datePattern = `^(\d{1,2}/\d{1,2}/\d{4})?$`

var tracer = otel.Tracer("github.com/hkopenai/hk-food-mcp-server/internal/services/mcp/domain")

// WholesalePricesInput represents the MCP tool input for the wholesale price
// query.
type WholesalePricesInput struct {
	StartDate string `json:"start_date,omitempty" jsonschema:"start date in DD/MM/YYYY format"`
	EndDate   string `json:"end_date,omitempty" jsonschema:"end date in DD/MM/YYYY format"`
	Language  string `json:"language,omitempty" jsonschema:"language for output (en or zh)"`
}

// WholesalePricesResult represents the MCP tool output for a successful query.
type WholesalePricesResult struct {
	Records []wholesale.OutputRecord `json:"records" jsonschema:"projected price records in source order"`
}

// WholesalePriceService answers wholesale price queries.
type WholesalePriceService interface {
	GetWholesalePrices(ctx context.Context, q wholesale.Query) (wholesale.Result, error)
}

// WholesalePricesTool defines the MCP tool schema for the wholesale price
// query.
func WholesalePricesTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        WholesalePricesToolName,
		Description: "Daily wholesale prices of major fresh food in Hong Kong from Agriculture, Fisheries and Conservation Department",
		InputSchema: wholesalePricesInputSchema(),
	}
}

func wholesalePricesInputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"start_date": {
				Type:        "string",
				Description: "Start date in DD/MM/YYYY format",
				Pattern:     datePattern,
			},
			"end_date": {
				Type:        "string",
				Description: "End date in DD/MM/YYYY format",
				Pattern:     datePattern,
			},
			"language": {
				Type:        "string",
				Description: "Language for output (en/zh)",
				Enum:        []any{string(wholesale.LanguageEnglish), string(wholesale.LanguageChinese)},
				Default:     json.RawMessage(`"en"`),
			},
		},
		AdditionalProperties: &jsonschema.Schema{Not: &jsonschema.Schema{}},
	}
}

// WholesalePricesHandler executes a wholesale price query.
//
// A fetch failure is returned as an error-flagged result whose structured
// content is the {type, error} payload. Invalid input is returned as an error.
func WholesalePricesHandler(prices WholesalePriceService) mcp.ToolHandlerFor[WholesalePricesInput, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input WholesalePricesInput) (*mcp.CallToolResult, any, error) {
		if prices == nil {
			return nil, nil, fmt.Errorf("wholesale price service is not configured")
		}

		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, nil, fmt.Errorf("generate invocation id: %w", err)
		}

		ctx, span := tracer.Start(ctx, "mcp.tool "+WholesalePricesToolName,
			trace.WithAttributes(
				attribute.String("mcp.tool.name", WholesalePricesToolName),
				attribute.String("mcp.invocation_id", invocationID),
			),
		)
		defer span.End()
		ctx = requestctx.WithInvocationID(ctx, invocationID)

		logger := log.With().
			Str("tool", WholesalePricesToolName).
			Str("invocation_id", invocationID).
			Logger()

		result, err := prices.GetWholesalePrices(ctx, wholesale.Query{
			StartDate: input.StartDate,
			EndDate:   input.EndDate,
			Language:  input.Language,
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "invalid input")
			logger.Debug().Err(err).Msg("rejected tool call")
			return nil, nil, fmt.Errorf("get wholesale prices: %w", err)
		}

		toolResult := CallToolResultWithMetadata(ToolCallMetadata{InvocationID: invocationID})
		if result.Error != nil {
			span.SetStatus(codes.Error, result.Error.Error)
			payload, err := json.Marshal(result.Error)
			if err != nil {
				return nil, nil, fmt.Errorf("marshal error result: %w", err)
			}
			toolResult.IsError = true
			toolResult.Content = []mcp.Content{&mcp.TextContent{Text: string(payload)}}
			return toolResult, result.Error, nil
		}

		records := result.Records
		if records == nil {
			records = []wholesale.OutputRecord{}
		}
		span.SetAttributes(attribute.Int("wholesale.records", len(records)))
		logger.Info().Int("records", len(records)).Msg("tool call complete")
		return toolResult, WholesalePricesResult{Records: records}, nil
	}
}
