package server

// Tool is a tool definition exposed through tools/list.
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "coin_scan",
			Description: "Capture one frame from the configured camera and classify the Euro coins in it. Returns the coins, the total in cents, and localized display rows.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "coin_classify_file",
			Description: "Classify the Euro coins in an image file on disk instead of a live capture. Useful for calibration shots and replaying saved frames.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file (PNG, JPEG, or GIF)",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "rules_list",
			Description: "Return the active denomination rule table in evaluation order: radius and hue windows with labels and face values in cents.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}
}
