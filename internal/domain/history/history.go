package history

import "seraphmap/internal/domain/tilemap"

type Manager struct {
	// Limit caps the number of stored entries; zero keeps everything.
	Limit int

	entries []tilemap.MapDelta
	cursor  int
}

func (m *Manager) Push(d tilemap.MapDelta) {
	if d.Empty() {
		return
	}
	m.entries = append(m.entries[:m.cursor], d)
	if m.Limit > 0 && len(m.entries) > m.Limit {
		drop := len(m.entries) - m.Limit
		m.entries = append(m.entries[:0:0], m.entries[drop:]...)
	}
	m.cursor = len(m.entries)
}

func (m *Manager) Undo() (tilemap.MapDelta, bool) {
	if m.cursor == 0 {
		return tilemap.MapDelta{}, false
	}
	m.cursor--
	return m.entries[m.cursor], true
}

func (m *Manager) Redo() (tilemap.MapDelta, bool) {
	if m.cursor >= len(m.entries) {
		return tilemap.MapDelta{}, false
	}
	d := m.entries[m.cursor]
	m.cursor++
	return d, true
}

func (m *Manager) Clear() {
	m.entries = nil
	m.cursor = 0
}

func (m *Manager) CanUndo() bool { return m.cursor > 0 }
func (m *Manager) CanRedo() bool { return m.cursor < len(m.entries) }
func (m *Manager) Len() int      { return len(m.entries) }
func (m *Manager) Cursor() int   { return m.cursor }
