package domain

import (
	"github.com/hkopenai/hk-food-mcp-server/internal/platform/id"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// InvocationIDMetaKey is the _meta key carrying the tool invocation id.
const InvocationIDMetaKey = "x-invocation-id"

// ToolCallMetadata captures identifiers attached to a tool result.
type ToolCallMetadata struct {
	InvocationID string
}

// NewInvocationID generates an invocation identifier for a tool call.
func NewInvocationID() (string, error) {
	return id.NewID()
}

// CallToolResultWithMetadata builds a tool result whose _meta carries the
// call identifiers.
func CallToolResultWithMetadata(meta ToolCallMetadata) *mcp.CallToolResult {
	result := &mcp.CallToolResult{
		Meta: map[string]any{},
	}
	if meta.InvocationID != "" {
		result.Meta[InvocationIDMetaKey] = meta.InvocationID
	}
	return result
}
