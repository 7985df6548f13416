// Package server implements the MCP (Model Context Protocol) server for the
// photo watermark compositor.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - watermark_list_layouts: Layout ids and display names
//   - watermark_inspect: Dimensions and camera metadata of a photo
//   - watermark_compose: Run a layout over a photo and save the result
//   - watermark_preview: Run a layout and return a downscaled base64 PNG
//
// Every call builds its own container and processor chain; only the decoded
// source photos (an LRU cache keyed by path), the fonts and the logo cache
// are shared between calls.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string, naming the failing stage for chain errors
//
// # Logging
//
// Each tool call is tagged with a request_id field. Stage timings are logged
// at debug level under the same id.
//
// # Usage
//
//	srv, err := server.New(cfg, server.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	return srv.Run()
package server
