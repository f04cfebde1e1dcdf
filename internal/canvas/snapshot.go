package canvas

import (
	"errors"
	"fmt"

	"github.com/benbjohnson/immutable"
)

// MaxDimension is the largest width or height a canvas may have.
const MaxDimension = 4096

var (
	// ErrInvalidDimensions is returned when a canvas is constructed with a
	// width or height outside 1..MaxDimension.
	ErrInvalidDimensions = errors.New("invalid canvas dimensions")

	// ErrIndexOutOfBounds is returned when a cell coordinate falls outside
	// [0,width) x [0,height).
	ErrIndexOutOfBounds = errors.New("cell index out of bounds")
)

// Snapshot is one immutable state of the canvas.
//
// Cells live in a persistent list, so snapshots derived from each other by
// Brush share all unchanged cell storage. Each snapshot is still logically a
// complete, independent grid.
type Snapshot struct {
	width  int
	height int
	cells  *immutable.List[Color]
}

// New creates a width x height snapshot with every cell set to DefaultColor.
//
// Returns ErrInvalidDimensions if either dimension is outside 1..MaxDimension.
func New(width, height int) (*Snapshot, error) {
	if width <= 0 || height <= 0 || width > MaxDimension || height > MaxDimension {
		return nil, fmt.Errorf("%w: %dx%d not within 1..%d", ErrInvalidDimensions, width, height, MaxDimension)
	}

	b := immutable.NewListBuilder[Color]()
	for i := 0; i < width*height; i++ {
		b.Append(DefaultColor)
	}

	return &Snapshot{
		width:  width,
		height: height,
		cells:  b.List(),
	}, nil
}

// Width returns the number of columns.
func (s *Snapshot) Width() int {
	return s.width
}

// Height returns the number of rows.
func (s *Snapshot) Height() int {
	return s.height
}

// Len returns the number of cells, always Width()*Height().
func (s *Snapshot) Len() int {
	return s.cells.Len()
}

// At returns the color of the cell at (x, y).
func (s *Snapshot) At(x, y int) (Color, error) {
	index, err := s.index(x, y)
	if err != nil {
		return Color{}, err
	}
	return s.cells.Get(index), nil
}

// Flatten returns the grid in row-major order as three bytes (r, g, b) per
// cell. The result is a fresh slice; writing to it does not affect the
// snapshot.
func (s *Snapshot) Flatten() []byte {
	out := make([]byte, 0, s.cells.Len()*3)
	itr := s.cells.Iterator()
	for !itr.Done() {
		_, c := itr.Next()
		out = append(out, c.R, c.G, c.B)
	}
	return out
}

// Brush paints the cell at (x, y) with c.
//
// If the cell already holds c, Brush reports no change and returns a nil
// snapshot, so repeated identical strokes never reach the undo history.
// Otherwise it returns a new snapshot that differs from the receiver only at
// (x, y). The receiver is never modified.
//
// Returns ErrIndexOutOfBounds if (x, y) lies outside the grid.
func (s *Snapshot) Brush(x, y int, c Color) (*Snapshot, bool, error) {
	index, err := s.index(x, y)
	if err != nil {
		return nil, false, err
	}

	if s.cells.Get(index) == c {
		return nil, false, nil
	}

	return &Snapshot{
		width:  s.width,
		height: s.height,
		cells:  s.cells.Set(index, c),
	}, true, nil
}

// Equal reports whether both snapshots have the same dimensions and cells.
func (s *Snapshot) Equal(other *Snapshot) bool {
	if s == nil || other == nil {
		return s == other
	}
	if s.width != other.width || s.height != other.height {
		return false
	}
	if s.cells == other.cells {
		return true
	}

	a, b := s.cells.Iterator(), other.cells.Iterator()
	for !a.Done() && !b.Done() {
		_, ca := a.Next()
		_, cb := b.Next()
		if ca != cb {
			return false
		}
	}
	return a.Done() && b.Done()
}

func (s *Snapshot) index(x, y int) (int, error) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return 0, fmt.Errorf("%w: (%d,%d) outside %dx%d canvas", ErrIndexOutOfBounds, x, y, s.width, s.height)
	}
	return y*s.width + x, nil
}
