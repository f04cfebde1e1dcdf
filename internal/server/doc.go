// Package server implements the MCP (Model Context Protocol) server for pixel canvases.
//
// This package provides a JSON-RPC 2.0 server that lets an MCP client open
// pixel canvases, paint cells, and walk their undo history. It is the caller
// boundary of the editor: every tool call maps onto one editor operation.
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
// Session Management:
//   - canvas_new: Open a canvas, returns its ID
//   - canvas_close: Discard a canvas and its history
//   - canvas_list: List open canvas IDs
//
// Painting:
//   - canvas_brush: Paint one cell
//   - canvas_stroke: Paint a gesture as one undo step
//
// History:
//   - canvas_undo, canvas_redo: Move through history
//   - canvas_start_undo_block, canvas_close_undo_block: Bracket a gesture
//
// Inspection:
//   - canvas_status: Dimensions and history position
//   - canvas_pixels: Row-major RGB bytes
//   - canvas_sample_color: One cell in hex, RGB and HSL
//   - canvas_render: PNG with square cells and grid lines
//
// # Gestures
//
// A client translating pointer input should call canvas_start_undo_block on
// press, canvas_brush for every cell the pointer crosses, and
// canvas_close_undo_block on release. The whole drag then undoes in one step.
// canvas_stroke does the same in a single call when all cells are known.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string, e.g. "cell index out of bounds: (9,0) outside 4x4 canvas"
//
// A failed brush never changes the canvas or its history.
//
// # Usage
//
//	srv := server.New(server.WithLogger(logger))
//	if err := srv.Serve(os.Stdin, os.Stdout); err != nil {
//	    log.Fatal(err)
//	}
package server
