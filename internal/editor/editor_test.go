package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/pixel-canvas-mcp/internal/canvas"
)

var (
	red   = canvas.Color{R: 255}
	green = canvas.Color{G: 255}
)

func mustEditor(t *testing.T, width, height int) *Editor {
	t.Helper()
	ed, err := New(width, height)
	require.NoError(t, err)
	return ed
}

func TestNew(t *testing.T) {
	ed := mustEditor(t, 10, 10)

	status := ed.Status()
	assert.Equal(t, Status{
		Width:   10,
		Height:  10,
		Cursor:  0,
		Entries: 1,
		Mode:    "normal",
	}, status)
}

func TestNew_InvalidDimensions(t *testing.T) {
	ed, err := New(0, 10)
	assert.ErrorIs(t, err, canvas.ErrInvalidDimensions)
	assert.Nil(t, ed)
}

func TestBrush_UndoRedoScenario(t *testing.T) {
	ed := mustEditor(t, 2, 2)
	original := ed.Image()

	changed, err := ed.BrushBytes(0, 0, []byte{255, 0, 0})
	require.NoError(t, err)
	require.True(t, changed)

	redCorner := ed.Image()
	assert.Equal(t, []byte{
		255, 0, 0,
		31, 95, 111,
		31, 95, 111,
		31, 95, 111,
	}, redCorner.Flatten())

	ed.Undo()
	assert.True(t, ed.Image().Equal(original))
	assert.Equal(t, 0, ed.Status().Cursor)

	ed.Redo()
	assert.True(t, ed.Image().Equal(redCorner))
	assert.Equal(t, redCorner.Flatten(), ed.Image().Flatten())
}

func TestBrush_NoOpLeavesHistory(t *testing.T) {
	ed := mustEditor(t, 3, 3)
	_, err := ed.Brush(1, 1, red)
	require.NoError(t, err)
	ed.Undo()

	// Painting the default color onto a default cell changes nothing, and the
	// redo entry must survive it.
	changed, err := ed.Brush(2, 2, canvas.DefaultColor)
	require.NoError(t, err)
	assert.False(t, changed)

	status := ed.Status()
	assert.Equal(t, 2, status.Entries)
	assert.True(t, status.CanRedo)
}

func TestBrush_InvalidInputLeavesHistory(t *testing.T) {
	ed := mustEditor(t, 3, 3)
	_, err := ed.Brush(0, 0, red)
	require.NoError(t, err)
	before := ed.Status()
	img := ed.Image()

	_, err = ed.Brush(3, 0, green)
	assert.ErrorIs(t, err, canvas.ErrIndexOutOfBounds)

	_, err = ed.BrushBytes(0, 0, []byte{1, 2})
	assert.ErrorIs(t, err, canvas.ErrInvalidColor)

	assert.Equal(t, before, ed.Status())
	assert.Same(t, img, ed.Image())
}

func TestBrush_EachEditIsOneStep(t *testing.T) {
	ed := mustEditor(t, 4, 1)

	for x := 0; x < 4; x++ {
		_, err := ed.Brush(x, 0, red)
		require.NoError(t, err)
	}
	assert.Equal(t, 5, ed.Status().Entries)

	ed.Undo()
	c, err := ed.Image().At(3, 0)
	require.NoError(t, err)
	assert.Equal(t, canvas.DefaultColor, c)

	c, err = ed.Image().At(2, 0)
	require.NoError(t, err)
	assert.Equal(t, red, c)
}

func TestUndoBlock_Coalesces(t *testing.T) {
	ed := mustEditor(t, 4, 4)
	original := ed.Image()

	ed.StartUndoBlock()
	for x := 0; x < 4; x++ {
		_, err := ed.Brush(x, x, red)
		require.NoError(t, err)
	}
	ed.CloseUndoBlock()

	assert.Equal(t, 2, ed.Status().Entries)
	painted := ed.Image()

	ed.Undo()
	assert.True(t, ed.Image().Equal(original))

	ed.Redo()
	assert.True(t, ed.Image().Equal(painted))
}

func TestUndoBlock_NoOpsDoNotOpenStep(t *testing.T) {
	ed := mustEditor(t, 2, 2)

	ed.StartUndoBlock()
	_, err := ed.Brush(0, 0, canvas.DefaultColor)
	require.NoError(t, err)
	ed.CloseUndoBlock()

	assert.Equal(t, 1, ed.Status().Entries)
}

func TestStroke(t *testing.T) {
	ed := mustEditor(t, 5, 5)

	points := []Point{{0, 0}, {1, 0}, {1, 0}, {2, 1}}
	n, err := ed.Stroke(points, green)
	require.NoError(t, err)
	assert.Equal(t, 3, n, "repeated point paints once")

	status := ed.Status()
	assert.Equal(t, 2, status.Entries)
	assert.Equal(t, "normal", status.Mode)

	ed.Undo()
	assert.Equal(t, 0, ed.Status().Cursor)
}

func TestStroke_InvalidPointClosesBlock(t *testing.T) {
	ed := mustEditor(t, 3, 3)

	n, err := ed.Stroke([]Point{{0, 0}, {9, 9}, {1, 1}}, red)
	assert.ErrorIs(t, err, canvas.ErrIndexOutOfBounds)
	assert.Equal(t, 1, n)
	assert.Equal(t, "normal", ed.Status().Mode)

	// The next edit is a separate step
	_, err = ed.Brush(2, 2, red)
	require.NoError(t, err)
	assert.Equal(t, 3, ed.Status().Entries)
}

func TestStroke_JoinsOpenBlock(t *testing.T) {
	ed := mustEditor(t, 4, 4)

	ed.StartUndoBlock()
	_, err := ed.Brush(0, 0, red)
	require.NoError(t, err)

	n, err := ed.Stroke([]Point{{1, 1}, {2, 2}}, green)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "in_block", ed.Status().Mode, "caller's block stays open")

	_, err = ed.Brush(3, 3, red)
	require.NoError(t, err)
	ed.CloseUndoBlock()

	assert.Equal(t, 2, ed.Status().Entries, "brushes and stroke form one step")
	ed.Undo()
	assert.Equal(t, 0, ed.Status().Cursor)
}

func TestStatus_AfterUndo(t *testing.T) {
	ed := mustEditor(t, 2, 2)
	_, err := ed.Brush(0, 0, red)
	require.NoError(t, err)
	_, err = ed.Brush(1, 1, red)
	require.NoError(t, err)
	ed.Undo()

	status := ed.Status()
	assert.Equal(t, 1, status.Cursor)
	assert.Equal(t, 3, status.Entries)
	assert.True(t, status.CanUndo)
	assert.True(t, status.CanRedo)
}
