package history

// Manager is a linear undo history of snapshots with a cursor. Entry 0 is
// the initial state and is never dropped.
type Manager struct {
	entries []Snapshot
	cursor  int
}

// NewManager starts a history whose only entry is initial.
func NewManager(initial Snapshot) *Manager {
	return &Manager{entries: []Snapshot{initial}}
}

// Push records s. An overwrite push replaces the entry at the cursor and
// never changes the length of the history. A regular push drops every entry
// after the cursor, appends s and moves the cursor onto it.
func (m *Manager) Push(s Snapshot, overwrite bool) {
	if overwrite {
		m.entries[m.cursor] = s
		return
	}
	m.entries = append(m.entries[:m.cursor+1], s)
	m.cursor++
}

// Undo moves the cursor back one entry. It does nothing at the start.
func (m *Manager) Undo() bool {
	if m.cursor == 0 {
		return false
	}
	m.cursor--
	return true
}

// Redo moves the cursor forward one entry. It does nothing at the end.
func (m *Manager) Redo() bool {
	if m.cursor == len(m.entries)-1 {
		return false
	}
	m.cursor++
	return true
}

// Current returns the snapshot under the cursor.
func (m *Manager) Current() Snapshot { return m.entries[m.cursor] }

func (m *Manager) Len() int { return len(m.entries) }
func (m *Manager) Index() int { return m.cursor }
func (m *Manager) CanUndo() bool { return m.cursor > 0 }
func (m *Manager) CanRedo() bool { return m.cursor < len(m.entries)-1 }

// Reset discards all history and starts over from s.
func (m *Manager) Reset(s Snapshot) {
	m.entries = []Snapshot{s}
	m.cursor = 0
}
