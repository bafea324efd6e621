package editor

import "github.com/kobzarvs/richpad/internal/logger"

// SelectionManager keeps the last known selection so that toolbar
// interactions which steal focus do not lose the caret. It holds at most
// one snapshot; every capture overwrites the previous one.
type SelectionManager struct {
	live  Selection
	saved Range
}

func NewSelectionManager(live Selection) *SelectionManager {
	return &SelectionManager{live: live}
}

// Capture copies the first range of the live selection. With no active
// range the previous snapshot is kept.
func (m *SelectionManager) Capture() {
	if m.live == nil || m.live.RangeCount() == 0 {
		return
	}
	m.saved = m.live.RangeAt(0)
}

// Restore re-applies the snapshot to the live selection. It does nothing
// when no snapshot exists or when the snapshot's nodes left the document.
func (m *SelectionManager) Restore() {
	if m.saved == nil || m.live == nil {
		logger.Debug("selection restore skipped", "reason", "no snapshot")
		return
	}
	if !m.saved.Attached() {
		logger.Debug("selection restore skipped", "reason", "detached range")
		return
	}
	m.live.RemoveAllRanges()
	m.live.AddRange(m.saved)
}

// Snapshot returns the stored range, if any.
func (m *SelectionManager) Snapshot() (Range, bool) {
	return m.saved, m.saved != nil
}

// Reset drops the snapshot.
func (m *SelectionManager) Reset() {
	m.saved = nil
}
