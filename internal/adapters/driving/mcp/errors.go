// Package mcp provides an MCP (Model Context Protocol) server adapter for docask.
// It lets AI assistants query the local document index over stdio or HTTP.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")

// ErrMissingAskService is returned by the ask tool when no ask service is wired.
var ErrMissingAskService = errors.New("mcp: ask service is not configured")
