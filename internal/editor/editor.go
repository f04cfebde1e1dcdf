// Package editor ties the persistent canvas to its undo history.
//
// An Editor translates "paint (x, y) with color C" into "derive the next
// snapshot; if anything changed, push it into history". Undo, redo and block
// control delegate straight to the history manager.
//
// An Editor is not safe for concurrent use. Sessions, which hands out
// editors by ID, is.
package editor

import (
	"fmt"

	"github.com/ironsheep/pixel-canvas-mcp/internal/canvas"
	"github.com/ironsheep/pixel-canvas-mcp/internal/history"
)

// Point is a cell coordinate on the canvas.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Status summarizes the editor's current snapshot and history position.
type Status struct {
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Cursor  int    `json:"cursor"`
	Entries int    `json:"entries"`
	Mode    string `json:"mode"`
	CanUndo bool   `json:"can_undo"`
	CanRedo bool   `json:"can_redo"`
}

// Editor owns one canvas history.
type Editor struct {
	history *history.Manager[*canvas.Snapshot]
}

// New creates an editor over a width x height canvas filled with
// canvas.DefaultColor.
func New(width, height int) (*Editor, error) {
	initial, err := canvas.New(width, height)
	if err != nil {
		return nil, err
	}
	return &Editor{history: history.New(initial)}, nil
}

// Image returns the current snapshot. Snapshots are immutable, so the caller
// may keep it across later edits.
func (e *Editor) Image() *canvas.Snapshot {
	return e.history.Current()
}

// Brush paints one cell and reports whether the canvas changed.
//
// Painting a cell with the color it already has leaves history untouched. An
// out-of-bounds coordinate returns canvas.ErrIndexOutOfBounds and also leaves
// history untouched.
func (e *Editor) Brush(x, y int, c canvas.Color) (bool, error) {
	next, changed, err := e.Image().Brush(x, y, c)
	if err != nil {
		return false, err
	}
	if !changed {
		return false, nil
	}
	e.history.Push(next)
	return true, nil
}

// BrushBytes is Brush with the color given as an r, g, b byte vector.
func (e *Editor) BrushBytes(x, y int, color []byte) (bool, error) {
	c, err := canvas.ColorFromBytes(color)
	if err != nil {
		return false, err
	}
	return e.Brush(x, y, c)
}

// Stroke paints points in order as a single gesture, bracketed by one undo
// block so the whole stroke undoes in one step. It returns the number of
// cells that changed.
//
// If the caller already has an undo block open, the stroke joins it and the
// block stays open. Otherwise Stroke opens its own block and always closes it
// on return, even when it stops at an invalid point.
func (e *Editor) Stroke(points []Point, c canvas.Color) (int, error) {
	if e.history.Mode() == history.Normal {
		e.StartUndoBlock()
		defer e.CloseUndoBlock()
	}

	painted := 0
	for i, p := range points {
		changed, err := e.Brush(p.X, p.Y, c)
		if err != nil {
			return painted, fmt.Errorf("stroke point %d: %w", i, err)
		}
		if changed {
			painted++
		}
	}
	return painted, nil
}

// Undo steps back one history entry, stopping at the initial canvas.
func (e *Editor) Undo() {
	e.history.Undo()
}

// Redo steps forward one history entry, stopping at the newest.
func (e *Editor) Redo() {
	e.history.Redo()
}

// StartUndoBlock begins coalescing edits into a single undo step.
func (e *Editor) StartUndoBlock() {
	e.history.StartBlock()
}

// CloseUndoBlock ends the current undo block.
func (e *Editor) CloseUndoBlock() {
	e.history.CloseBlock()
}

// Status reports the current dimensions and history position.
func (e *Editor) Status() Status {
	img := e.Image()
	return Status{
		Width:   img.Width(),
		Height:  img.Height(),
		Cursor:  e.history.Cursor(),
		Entries: e.history.Len(),
		Mode:    e.history.Mode().String(),
		CanUndo: e.history.CanUndo(),
		CanRedo: e.history.CanRedo(),
	}
}
