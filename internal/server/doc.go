// Package server exposes scanning over a JSON-RPC 2.0 stdio protocol.
//
// The UI layer runs the scanner as a subprocess and speaks one request per
// line on stdin, receiving one response per line on stdout. Log output goes
// to stderr so it never corrupts the protocol stream.
//
// # Protocol
//
// Supported methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - coin_scan: capture one frame and classify the coins in it
//   - coin_classify_file: classify a saved image instead of a live capture
//   - rules_list: return the active denomination table in evaluation order
//
// Scan results carry both the raw coin data and pre-formatted display rows
// in the server's configured language, so a thin client can render them
// without knowing the money formatting conventions.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// A scan that finds no coins is not an error; it returns an empty coin list
// with a zero total. Capture failures (device unavailable, timeout) and a
// rejected concurrent scan surface as tool execution errors.
package server
