package service

import (
	"fmt"

	"github.com/hkopenai/hk-food-mcp-server/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type mcpRegistrationTarget interface {
	AddTool(*mcp.Tool, any) error
}

// registerFoodTools registers the food price MCP tools.
func registerFoodTools(registrar mcpRegistrationTarget, prices domain.WholesalePriceService) error {
	if prices == nil {
		return fmt.Errorf("wholesale price service is required")
	}
	return registerTool(registrar, domain.WholesalePricesTool(), domain.WholesalePricesHandler(prices))
}

func registerTool(registrar mcpRegistrationTarget, tool *mcp.Tool, handler any) error {
	if registrar == nil {
		return fmt.Errorf("mcp registrar is not configured")
	}
	return registrar.AddTool(tool, handler)
}
