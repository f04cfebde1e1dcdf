package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ironsheep/pixel-canvas-mcp/internal/canvas"
	"github.com/ironsheep/pixel-canvas-mcp/internal/editor"
	"github.com/ironsheep/pixel-canvas-mcp/internal/metrics"
	"github.com/ironsheep/pixel-canvas-mcp/internal/render"
)

// ErrTooManySessions is returned by canvas_new when the session cap is reached.
var ErrTooManySessions = errors.New("too many open canvases")

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "canvas_new", "canvas_brush").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	start := time.Now()
	result, err := s.executeTool(params.Name, params.Arguments)
	s.metrics.ObserveTool(params.Name, time.Since(start))

	if err != nil {
		s.logger.Debug("tool failed", "tool", params.Name, "error", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}
	s.logger.Debug("tool ok", "tool", params.Name, "elapsed", time.Since(start))

	return &MCPResponse{
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

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Looks up the target canvas session
//  4. Calls the editor or render operation
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Session Management
	case "canvas_new":
		return s.handleCanvasNew(args)
	case "canvas_close":
		return s.handleCanvasClose(args)
	case "canvas_list":
		return s.handleCanvasList()

	// Painting
	case "canvas_brush":
		return s.handleCanvasBrush(args)
	case "canvas_stroke":
		return s.handleCanvasStroke(args)

	// History
	case "canvas_undo":
		return s.handleHistory(args, "undo", (*editor.Editor).Undo)
	case "canvas_redo":
		return s.handleHistory(args, "redo", (*editor.Editor).Redo)
	case "canvas_start_undo_block":
		return s.handleHistory(args, "start_block", (*editor.Editor).StartUndoBlock)
	case "canvas_close_undo_block":
		return s.handleHistory(args, "close_block", (*editor.Editor).CloseUndoBlock)

	// Inspection
	case "canvas_status":
		return s.handleCanvasStatus(args)
	case "canvas_pixels":
		return s.handleCanvasPixels(args)
	case "canvas_sample_color":
		return s.handleCanvasSampleColor(args)
	case "canvas_render":
		return s.handleCanvasRender(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// canvasArgs is embedded by every tool that targets an open canvas.
type canvasArgs struct {
	CanvasID string `json:"canvas_id"`
}

// editorFor decodes args into dst and returns the editor named by its canvas_id.
func (s *Server) editorFor(args json.RawMessage, dst interface{ canvasID() string }) (*editor.Editor, error) {
	if err := json.Unmarshal(args, dst); err != nil {
		return nil, err
	}
	return s.sessions.Get(dst.canvasID())
}

func (a *canvasArgs) canvasID() string { return a.CanvasID }

// colorArgs carries a brush color as either a hex string or an [r, g, b] array.
type colorArgs struct {
	Color string `json:"color"`
	RGB   []int  `json:"rgb"`
}

// resolve returns the color as an r, g, b byte vector. A vector of the wrong
// length is passed through so that the editor reports it as invalid.
func (a colorArgs) resolve() ([]byte, error) {
	if a.RGB != nil {
		out := make([]byte, len(a.RGB))
		for i, v := range a.RGB {
			if v < 0 || v > 255 {
				return nil, fmt.Errorf("%w: component %d = %d not in 0..255", canvas.ErrInvalidColor, i, v)
			}
			out[i] = byte(v)
		}
		return out, nil
	}
	if a.Color == "" {
		return nil, fmt.Errorf("%w: color or rgb is required", canvas.ErrInvalidColor)
	}
	c, err := canvas.ParseColor(a.Color)
	if err != nil {
		return nil, err
	}
	return c.Bytes(), nil
}

// === Session Management Handlers ===

type canvasNewArgs struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// CanvasCreated is the result of canvas_new.
type CanvasCreated struct {
	CanvasID string        `json:"canvas_id"`
	Status   editor.Status `json:"status"`
}

func (s *Server) handleCanvasNew(args json.RawMessage) (interface{}, error) {
	var a canvasNewArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Width == 0 {
		a.Width = s.defaultWidth
	}
	if a.Height == 0 {
		a.Height = s.defaultHeight
	}
	if s.maxSessions > 0 && s.sessions.Len() >= s.maxSessions {
		return nil, fmt.Errorf("%w: limit is %d", ErrTooManySessions, s.maxSessions)
	}

	id, ed, err := s.sessions.Create(a.Width, a.Height)
	if err != nil {
		return nil, err
	}
	s.metrics.SetSessions(s.sessions.Len())
	s.logger.Info("canvas created", "canvas_id", id, "width", a.Width, "height", a.Height)

	return &CanvasCreated{CanvasID: id, Status: ed.Status()}, nil
}

func (s *Server) handleCanvasClose(args json.RawMessage) (interface{}, error) {
	var a canvasArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := s.sessions.Close(a.CanvasID); err != nil {
		return nil, err
	}
	s.metrics.SetSessions(s.sessions.Len())
	s.logger.Info("canvas closed", "canvas_id", a.CanvasID)

	return map[string]interface{}{"closed": a.CanvasID}, nil
}

// CanvasList is the result of canvas_list.
type CanvasList struct {
	CanvasIDs []string `json:"canvas_ids"`
}

func (s *Server) handleCanvasList() (interface{}, error) {
	return &CanvasList{CanvasIDs: s.sessions.IDs()}, nil
}

// === Painting Handlers ===

type canvasBrushArgs struct {
	canvasArgs
	colorArgs
	X int `json:"x"`
	Y int `json:"y"`
}

// BrushResult is the result of canvas_brush.
type BrushResult struct {
	Changed bool          `json:"changed"`
	Status  editor.Status `json:"status"`
}

func (s *Server) handleCanvasBrush(args json.RawMessage) (interface{}, error) {
	var a canvasBrushArgs
	ed, err := s.editorFor(args, &a)
	if err != nil {
		return nil, err
	}

	color, err := a.resolve()
	if err != nil {
		s.metrics.Brush(metrics.ResultError)
		return nil, err
	}

	changed, err := ed.BrushBytes(a.X, a.Y, color)
	if err != nil {
		s.metrics.Brush(metrics.ResultError)
		return nil, err
	}
	if changed {
		s.metrics.Brush(metrics.ResultChanged)
	} else {
		s.metrics.Brush(metrics.ResultNoop)
	}

	return &BrushResult{Changed: changed, Status: ed.Status()}, nil
}

type canvasStrokeArgs struct {
	canvasArgs
	colorArgs
	Points []editor.Point `json:"points"`
}

// StrokeResult is the result of canvas_stroke.
type StrokeResult struct {
	Painted int           `json:"painted"`
	Status  editor.Status `json:"status"`
}

func (s *Server) handleCanvasStroke(args json.RawMessage) (interface{}, error) {
	var a canvasStrokeArgs
	ed, err := s.editorFor(args, &a)
	if err != nil {
		return nil, err
	}

	raw, err := a.resolve()
	if err != nil {
		s.metrics.Brush(metrics.ResultError)
		return nil, err
	}
	color, err := canvas.ColorFromBytes(raw)
	if err != nil {
		s.metrics.Brush(metrics.ResultError)
		return nil, err
	}

	painted, err := ed.Stroke(a.Points, color)
	for i := 0; i < painted; i++ {
		s.metrics.Brush(metrics.ResultChanged)
	}
	if err != nil {
		s.metrics.Brush(metrics.ResultError)
		return nil, err
	}

	return &StrokeResult{Painted: painted, Status: ed.Status()}, nil
}

// === History Handlers ===

func (s *Server) handleHistory(args json.RawMessage, op string, apply func(*editor.Editor)) (interface{}, error) {
	var a canvasArgs
	ed, err := s.editorFor(args, &a)
	if err != nil {
		return nil, err
	}

	apply(ed)
	s.metrics.History(op)

	return ed.Status(), nil
}

// === Inspection Handlers ===

func (s *Server) handleCanvasStatus(args json.RawMessage) (interface{}, error) {
	var a canvasArgs
	ed, err := s.editorFor(args, &a)
	if err != nil {
		return nil, err
	}
	return ed.Status(), nil
}

// PixelsResult is the result of canvas_pixels.
type PixelsResult struct {
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	PixelsBase64 string `json:"pixels_base64"`
	Format       string `json:"format"`
}

func (s *Server) handleCanvasPixels(args json.RawMessage) (interface{}, error) {
	var a canvasArgs
	ed, err := s.editorFor(args, &a)
	if err != nil {
		return nil, err
	}

	img := ed.Image()
	return &PixelsResult{
		Width:        img.Width(),
		Height:       img.Height(),
		PixelsBase64: base64.StdEncoding.EncodeToString(img.Flatten()),
		Format:       "rgb8",
	}, nil
}

type canvasSampleColorArgs struct {
	canvasArgs
	X int `json:"x"`
	Y int `json:"y"`
}

// SampleResult contains one cell's color in multiple representations.
type SampleResult struct {
	X   int             `json:"x"`
	Y   int             `json:"y"`
	Hex string          `json:"hex"`
	RGB canvas.Color    `json:"rgb"`
	HSL canvas.HSLColor `json:"hsl"`
}

func (s *Server) handleCanvasSampleColor(args json.RawMessage) (interface{}, error) {
	var a canvasSampleColorArgs
	ed, err := s.editorFor(args, &a)
	if err != nil {
		return nil, err
	}

	c, err := ed.Image().At(a.X, a.Y)
	if err != nil {
		return nil, err
	}

	return &SampleResult{
		X:   a.X,
		Y:   a.Y,
		Hex: c.Hex(),
		RGB: c,
		HSL: c.HSL(),
	}, nil
}

type canvasRenderArgs struct {
	canvasArgs
	CellSize  int    `json:"cell_size"`
	ShowGrid  *bool  `json:"show_grid"`
	GridColor string `json:"grid_color"`
}

func (s *Server) handleCanvasRender(args json.RawMessage) (interface{}, error) {
	var a canvasRenderArgs
	ed, err := s.editorFor(args, &a)
	if err != nil {
		return nil, err
	}

	opts := s.renderOpts
	if a.CellSize != 0 {
		opts.CellSize = a.CellSize
	}
	if a.ShowGrid != nil {
		opts.ShowGrid = *a.ShowGrid
	}
	if a.GridColor != "" {
		c, err := canvas.ParseColor(a.GridColor)
		if err != nil {
			return nil, err
		}
		opts.GridColor = c
	}

	return render.Render(ed.Image(), opts)
}
