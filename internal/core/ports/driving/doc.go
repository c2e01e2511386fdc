// Package driving defines what the CLI, the MCP server and the TUI may ask
// of docask: build an index, rank documents, answer questions and manage
// settings.
//
// Implementations live in internal/core/services.
package driving
