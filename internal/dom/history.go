package dom

type snapshot struct {
	html       string
	start, end int
	selected   bool
}

// history is a bounded undo/redo stack of whole-content snapshots.
type history struct {
	undo, redo []snapshot
	limit      int
}

func newHistory(limit int) *history {
	return &history{limit: limit}
}

func (h *history) record(s snapshot) {
	h.undo = append(h.undo, s)
	if len(h.undo) > h.limit {
		h.undo = h.undo[len(h.undo)-h.limit:]
	}
	h.redo = h.redo[:0]
}

func (h *history) reset() {
	h.undo = nil
	h.redo = nil
}

func (d *Document) snapshot() snapshot {
	s := snapshot{html: d.HTML()}
	s.start, s.end, s.selected = d.sel.Offsets()
	return s
}

func (d *Document) restore(s snapshot) {
	nodes, err := parseFragment(s.html)
	if err != nil {
		return
	}
	d.replace(nodes)
	d.sel.rng = nil
	if s.selected {
		d.sel.Select(s.start, s.end)
	}
}

func (d *Document) undo() bool {
	n := len(d.hist.undo)
	if n == 0 {
		return false
	}
	prev := d.hist.undo[n-1]
	d.hist.undo = d.hist.undo[:n-1]
	d.hist.redo = append(d.hist.redo, d.snapshot())
	d.restore(prev)
	return true
}

func (d *Document) redo() bool {
	n := len(d.hist.redo)
	if n == 0 {
		return false
	}
	next := d.hist.redo[n-1]
	d.hist.redo = d.hist.redo[:n-1]
	d.hist.undo = append(d.hist.undo, d.snapshot())
	d.restore(next)
	return true
}

// CanUndo reports whether an undo step exists.
func (d *Document) CanUndo() bool { return len(d.hist.undo) > 0 || d.group != nil }

func (d *Document) CanRedo() bool { return len(d.hist.redo) > 0 }
