// Package canvas provides the persistent pixel grid behind the editor.
//
// A Snapshot is an immutable width x height grid of RGB colors stored in
// row-major order (index = y*width + x). Painting a cell never mutates the
// receiver: Brush returns a new Snapshot that shares every untouched part of
// the grid with the one it was derived from, so a stroke costs O(log N)
// regardless of canvas size and old snapshots stay valid for undo history.
//
// # Coordinate System
//
// Coordinates are 0-based with the origin at the top-left cell:
//   - X: column, 0 to width-1
//   - Y: row, 0 to height-1
//
// # Thread Safety
//
// Snapshots are immutable once constructed and can be read from any number of
// goroutines without locking, including while newer snapshots are derived
// from them.
//
// # Error Handling
//
// Invalid input is reported with wrapped sentinel errors so callers can use
// errors.Is:
//   - ErrInvalidDimensions: width or height is not positive
//   - ErrIndexOutOfBounds: a cell coordinate outside the grid
//   - ErrInvalidColor: a color that is not exactly three 8-bit components
package canvas
