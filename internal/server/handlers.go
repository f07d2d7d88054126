package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ironsheep/coinscan/internal/capture"
	"github.com/ironsheep/coinscan/internal/classify"
	"github.com/ironsheep/coinscan/internal/locale"
)

// ToolCallParams represents the parameters for a tools/call request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "coin_scan").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified
// tool.
//
// The response wraps the tool result in the protocol's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *Request) *Response {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the matching handler.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "coin_scan":
		return s.handleCoinScan()
	case "coin_classify_file":
		return s.handleCoinClassifyFile(args)
	case "rules_list":
		return s.handleRulesList()
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// scanPayload is the wire shape of a scan or file-classification result. The
// rows and total line are pre-formatted in the server's language so the UI
// layer can render them verbatim.
type scanPayload struct {
	Coins      []classify.Coin `json:"coins"`
	TotalCents int             `json:"total_cents"`
	Rows       []string        `json:"rows"`
	TotalText  string          `json:"total_text"`
}

func (s *Server) newScanPayload(result *classify.Result) scanPayload {
	rows := make([]string, 0, len(result.Coins))
	for _, coin := range result.Coins {
		rows = append(rows, locale.FormatCoin(s.lang, coin.Label, coin.ValueCents))
	}
	return scanPayload{
		Coins:      result.Coins,
		TotalCents: result.TotalCents,
		Rows:       rows,
		TotalText:  locale.FormatTotal(s.lang, result.TotalCents),
	}
}

func (s *Server) handleCoinScan() (interface{}, error) {
	result, err := s.scanner.Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return s.newScanPayload(result), nil
}

type classifyFileArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleCoinClassifyFile(args json.RawMessage) (interface{}, error) {
	var a classifyFileArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}

	frame, err := capture.Load(a.Path)
	if err != nil {
		return nil, err
	}

	result, err := s.classifier.Classify(frame)
	if err != nil {
		return nil, err
	}
	return s.newScanPayload(result), nil
}

func (s *Server) handleRulesList() (interface{}, error) {
	return map[string]interface{}{
		"rules": s.classifier.Rules(),
	}, nil
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *Response {
	return &Response{
		JSONRPC: "2.0",
		ID:      id,
		Error: &Error{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON. Marshal failures
// yield an empty string rather than a panic.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}
