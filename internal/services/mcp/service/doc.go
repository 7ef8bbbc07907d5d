// Package service wires protocol transport to the food domain tools.
//
// It is the transport adapter layer: the package knows how to run MCP over stdio
// or streamable HTTP and delegates business meaning to domain handlers.
package service
