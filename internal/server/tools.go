package server

import (
	"github.com/ironsheep/photo-watermark-mcp/internal/layout"
)

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the source photo (JPEG or PNG)",
	}
}

func layoutProperty() map[string]interface{} {
	ids := make([]string, 0)
	for _, l := range layout.List() {
		ids = append(ids, l.ID)
	}
	return map[string]interface{}{
		"type":        "string",
		"enum":        ids,
		"description": "Layout id (see watermark_list_layouts). Defaults to the configured layout",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "watermark_list_layouts",
			Description: "List the available watermark layouts with their ids and display names, plus the configured default layout.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "watermark_inspect",
			Description: "Read a photo's dimensions and camera metadata (make, model, lens, shooting parameters, capture time, orientation) as the watermark layouts will see them.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "watermark_compose",
			Description: "Compose a photo with a watermark layout and save the result. Returns the output path, the output dimensions and the stages that ran.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   pathProperty(),
					"layout": layoutProperty(),
					"output": map[string]interface{}{
						"type":        "string",
						"description": "Output path. The extension picks the format (.png for PNG, otherwise JPEG). Defaults to <source>_watermark next to the source",
					},
					"quality": map[string]interface{}{
						"type":        "integer",
						"minimum":     1,
						"maximum":     100,
						"description": "JPEG quality. Defaults to the configured quality",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "watermark_preview",
			Description: "Compose a photo with a watermark layout without saving it and return a downscaled base64-encoded PNG of the result.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   pathProperty(),
					"layout": layoutProperty(),
					"max_width": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum preview width in pixels. Default 1024",
						"default":     DefaultPreviewWidth,
					},
				},
				"required": []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
