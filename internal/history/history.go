// Package history implements a linear undo/redo queue with undo blocks.
//
// A Manager holds an ordered list of states and a cursor. Pushing a state
// discards anything after the cursor (there is no redo tree). Between
// StartBlock and CloseBlock, every push after the first overwrites the same
// slot, so a whole gesture collapses into a single undo step.
//
// Managers are not safe for concurrent use; exactly one caller drives a
// Manager at a time.
package history

// Mode is the block-coalescing state of a Manager.
type Mode int

const (
	// Normal: every push becomes its own undo step.
	Normal Mode = iota

	// StartBlock: the next push opens a new slot and enters InBlock.
	StartBlock

	// InBlock: pushes overwrite the current slot in place.
	InBlock
)

// String returns the lower-case name of the mode.
func (m Mode) String() string {
	switch m {
	case Normal:
		return "normal"
	case StartBlock:
		return "start_block"
	case InBlock:
		return "in_block"
	default:
		return "unknown"
	}
}

// Manager is the undo queue. The zero value is not usable; create one with
// New.
type Manager[T any] struct {
	entries []T
	cursor  int
	mode    Mode
}

// New creates a Manager whose only entry is initial.
func New[T any](initial T) *Manager[T] {
	return &Manager[T]{
		entries: []T{initial},
		cursor:  0,
		mode:    Normal,
	}
}

// Current returns the entry at the cursor.
//
// T is returned by value. For pointer types the pointee must be immutable
// (as canvas snapshots are) for history to stay independent of the caller.
func (m *Manager[T]) Current() T {
	return m.entries[m.cursor]
}

// Push records a new state according to the current mode.
//
//   - Normal: drop the redo tail, append, advance the cursor.
//   - StartBlock: same as Normal, then switch to InBlock.
//   - InBlock: overwrite the entry at the cursor; nothing else changes.
func (m *Manager[T]) Push(value T) {
	switch m.mode {
	case InBlock:
		m.entries[m.cursor] = value
	case StartBlock:
		m.appendEntry(value)
		m.mode = InBlock
	default:
		m.appendEntry(value)
	}
}

func (m *Manager[T]) appendEntry(value T) {
	// Clear the discarded tail so it can be collected.
	var zero T
	for i := m.cursor + 1; i < len(m.entries); i++ {
		m.entries[i] = zero
	}
	m.entries = append(m.entries[:m.cursor+1], value)
	m.cursor++
}

// Undo moves the cursor back one entry. It is a no-op at the oldest entry.
func (m *Manager[T]) Undo() {
	if m.cursor >= 1 {
		m.cursor--
	}
}

// Redo moves the cursor forward one entry. It is a no-op at the newest entry.
func (m *Manager[T]) Redo() {
	if m.cursor < len(m.entries)-1 {
		m.cursor++
	}
}

// StartBlock arms block mode: the next push opens a new undo step and later
// pushes overwrite it until CloseBlock.
//
// Calling StartBlock while already in a block re-arms it, so the next push
// opens another step instead of extending the current one.
func (m *Manager[T]) StartBlock() {
	m.mode = StartBlock
}

// CloseBlock returns to Normal mode.
func (m *Manager[T]) CloseBlock() {
	m.mode = Normal
}

// Cursor returns the index of the current entry.
func (m *Manager[T]) Cursor() int {
	return m.cursor
}

// Len returns the number of entries, including the initial one.
func (m *Manager[T]) Len() int {
	return len(m.entries)
}

// Mode returns the current block mode.
func (m *Manager[T]) Mode() Mode {
	return m.mode
}

// CanUndo reports whether Undo would move the cursor.
func (m *Manager[T]) CanUndo() bool {
	return m.cursor > 0
}

// CanRedo reports whether Redo would move the cursor.
func (m *Manager[T]) CanRedo() bool {
	return m.cursor < len(m.entries)-1
}
