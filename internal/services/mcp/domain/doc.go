// Package domain maps MCP tool calls onto the food data services.
//
// Each tool lives in its own file and exposes a Tool definition plus a typed
// handler constructor. Handlers parse MCP input into service queries, call the
// service, and shape the result into structured content that MCP clients can
// render. Caller mistakes are returned as Go errors; upstream failures are
// returned as error-flagged results so the client still sees the payload.
package domain
