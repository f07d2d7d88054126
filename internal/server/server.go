package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"

	"github.com/ironsheep/coinscan/internal/classify"
)

// protocolVersion is the JSON-RPC tool protocol revision we speak.
const protocolVersion = "2024-11-05"

// Scanner runs one scan pass per call. Satisfied by *scan.Scanner.
type Scanner interface {
	Scan(ctx context.Context) (*classify.Result, error)
}

// Server exposes scanning over JSON-RPC 2.0, one request per line on stdin
// and one response per line on stdout. Log output goes to stderr so it never
// corrupts the protocol stream.
type Server struct {
	scanner    Scanner
	classifier *classify.Classifier
	lang       string

	in  io.Reader
	out io.Writer
}

// Request is an incoming JSON-RPC request.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response is an outgoing JSON-RPC response.
type Response struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

// Error is a JSON-RPC error object.
type Error struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// New creates a server bound to the given transport streams. lang selects
// the language for formatted result rows.
func New(scanner Scanner, classifier *classify.Classifier, lang string, in io.Reader, out io.Writer) *Server {
	return &Server{
		scanner:    scanner,
		classifier: classifier,
		lang:       lang,
		in:         in,
		out:        out,
	}
}

// Run serves requests until the input stream closes.
func (s *Server) Run() error {
	reader := bufio.NewScanner(s.in)
	// Room for large requests
	buf := make([]byte, 0, 64*1024)
	reader.Buffer(buf, 1024*1024)

	encoder := json.NewEncoder(s.out)

	for reader.Scan() {
		line := reader.Bytes()
		if len(line) == 0 {
			continue
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			log.Printf("Failed to parse request: %v", err)
			continue
		}

		resp := s.handleRequest(&req)
		if resp != nil {
			if err := encoder.Encode(resp); err != nil {
				log.Printf("Failed to encode response: %v", err)
			}
		}
	}

	if err := reader.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	return nil
}

// handleRequest routes requests to the appropriate handler.
func (s *Server) handleRequest(req *Request) *Response {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return &Response{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return &Response{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &Error{
				Code:    -32601,
				Message: fmt.Sprintf("Method not found: %s", req.Method),
			},
		}
	}
}

// handleInitialize responds to the initialize handshake.
func (s *Server) handleInitialize(req *Request) *Response {
	return &Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": protocolVersion,
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "coinscan",
				"version": "0.1.0",
			},
		},
	}
}

// handleToolsList returns the tool catalog.
func (s *Server) handleToolsList(req *Request) *Response {
	return &Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
