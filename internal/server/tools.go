package server

import "github.com/ironsheep/pixel-canvas-mcp/internal/canvas"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// canvasIDProperty is the schema shared by every tool that targets an open canvas.
var canvasIDProperty = map[string]interface{}{
	"type":        "string",
	"description": "Canvas ID returned by canvas_new",
}

// colorProperties are the two accepted ways of passing a brush color.
var colorProperties = map[string]interface{}{
	"color": map[string]interface{}{
		"type":        "string",
		"description": "Brush color as hex \"#RRGGBB\" or \"#RGB\"",
	},
	"rgb": map[string]interface{}{
		"type":        "array",
		"items":       map[string]interface{}{"type": "integer", "minimum": 0, "maximum": 255},
		"minItems":    3,
		"maxItems":    3,
		"description": "Brush color as [r, g, b]. Takes precedence over color.",
	},
}

// canvasOnlySchema is the input schema for tools that take nothing but a canvas ID.
func canvasOnlySchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"canvas_id": canvasIDProperty,
		},
		"required": []string{"canvas_id"},
	}
}

// withColor returns props extended with the color properties.
func withColor(props map[string]interface{}) map[string]interface{} {
	for k, v := range colorProperties {
		props[k] = v
	}
	return props
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Session Management
		{
			Name:        "canvas_new",
			Description: "Create a new pixel canvas filled with the default color #1F5F6F. Returns the canvas ID used by every other tool.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Number of columns (default from server config, usually 10)",
						"minimum":     1,
						"maximum":     canvas.MaxDimension,
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Number of rows (default from server config, usually 10)",
						"minimum":     1,
						"maximum":     canvas.MaxDimension,
					},
				},
			},
		},
		{
			Name:        "canvas_close",
			Description: "Close a canvas and discard its undo history.",
			InputSchema: canvasOnlySchema(),
		},
		{
			Name:        "canvas_list",
			Description: "List the IDs of all open canvases.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},

		// Painting
		{
			Name:        "canvas_brush",
			Description: "Paint one cell. Painting a cell with the color it already has is a no-op and does not add an undo step.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withColor(map[string]interface{}{
					"canvas_id": canvasIDProperty,
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "Column (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Row (0-based, from top)",
					},
				}),
				"required": []string{"canvas_id", "x", "y"},
			},
		},
		{
			Name:        "canvas_stroke",
			Description: "Paint a sequence of cells as one gesture. The whole stroke becomes a single undo step. Inside an open undo block the stroke joins that block instead.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withColor(map[string]interface{}{
					"canvas_id": canvasIDProperty,
					"points": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"x": map[string]interface{}{"type": "integer"},
								"y": map[string]interface{}{"type": "integer"},
							},
							"required": []string{"x", "y"},
						},
						"description": "Cells to paint, in order",
					},
				}),
				"required": []string{"canvas_id", "points"},
			},
		},

		// History
		{
			Name:        "canvas_undo",
			Description: "Step back one undo step. Does nothing at the initial canvas.",
			InputSchema: canvasOnlySchema(),
		},
		{
			Name:        "canvas_redo",
			Description: "Step forward one undo step. Does nothing at the newest state.",
			InputSchema: canvasOnlySchema(),
		},
		{
			Name:        "canvas_start_undo_block",
			Description: "Start grouping subsequent brush calls into a single undo step (e.g. at mouse-down).",
			InputSchema: canvasOnlySchema(),
		},
		{
			Name:        "canvas_close_undo_block",
			Description: "Stop grouping brush calls (e.g. at mouse-up).",
			InputSchema: canvasOnlySchema(),
		},

		// Inspection
		{
			Name:        "canvas_status",
			Description: "Get canvas dimensions, history cursor, entry count and block mode.",
			InputSchema: canvasOnlySchema(),
		},
		{
			Name:        "canvas_pixels",
			Description: "Get the current canvas as row-major RGB bytes (3 per cell), base64-encoded.",
			InputSchema: canvasOnlySchema(),
		},
		{
			Name:        "canvas_sample_color",
			Description: "Get the color of one cell in hex, RGB and HSL.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"canvas_id": canvasIDProperty,
					"x":         map[string]interface{}{"type": "integer", "description": "Column (0-based)"},
					"y":         map[string]interface{}{"type": "integer", "description": "Row (0-based)"},
				},
				"required": []string{"canvas_id", "x", "y"},
			},
		},
		{
			Name:        "canvas_render",
			Description: "Render the current canvas as a base64-encoded PNG with square cells and optional grid lines.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"canvas_id": canvasIDProperty,
					"cell_size": map[string]interface{}{
						"type":        "integer",
						"description": "Pixels per cell (default 50)",
						"minimum":     1,
					},
					"show_grid": map[string]interface{}{
						"type":        "boolean",
						"description": "Draw grid lines between cells (default true)",
					},
					"grid_color": map[string]interface{}{
						"type":        "string",
						"description": "Grid line color as hex (default #000000)",
					},
				},
				"required": []string{"canvas_id"},
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
