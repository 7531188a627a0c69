package timeline

import "sort"

// Selection is the ordered set of selected frames, identified by ID and
// kept sorted by start time after every change. It only ever references
// frames currently present in the sequence.
type Selection struct {
	ids []FrameID
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{}
}

// Len returns the number of selected frames.
func (sel *Selection) Len() int {
	return len(sel.ids)
}

// IsEmpty reports whether nothing is selected.
func (sel *Selection) IsEmpty() bool {
	return len(sel.ids) == 0
}

// Contains reports whether the frame is selected.
func (sel *Selection) Contains(id FrameID) bool {
	for _, have := range sel.ids {
		if have == id {
			return true
		}
	}
	return false
}

// IDs returns the selected frame IDs in time order.
func (sel *Selection) IDs() []FrameID {
	return append([]FrameID(nil), sel.ids...)
}

// IDSet returns the selection as a lookup set.
func (sel *Selection) IDSet() map[FrameID]bool {
	set := make(map[FrameID]bool, len(sel.ids))
	for _, id := range sel.ids {
		set[id] = true
	}
	return set
}

// Frames resolves the selection against the sequence, in time order.
func (sel *Selection) Frames(seq *Sequence) []*Frame {
	frames := make([]*Frame, 0, len(sel.ids))
	for _, id := range sel.ids {
		if f := seq.FrameByID(id); f != nil {
			frames = append(frames, f)
		}
	}
	return frames
}

// First returns the earliest selected frame, nil when empty.
func (sel *Selection) First(seq *Sequence) *Frame {
	if len(sel.ids) == 0 {
		return nil
	}
	return seq.FrameByID(sel.ids[0])
}

// Last returns the latest selected frame, nil when empty.
func (sel *Selection) Last(seq *Sequence) *Frame {
	if len(sel.ids) == 0 {
		return nil
	}
	return seq.FrameByID(sel.ids[len(sel.ids)-1])
}

// Clear empties the selection.
func (sel *Selection) Clear() {
	sel.ids = sel.ids[:0]
}

// Set replaces the selection with the given frames and re-sorts.
func (sel *Selection) Set(seq *Sequence, ids ...FrameID) {
	sel.ids = append(sel.ids[:0], ids...)
	sel.SortByTime(seq)
}

// Add selects a frame without clearing others.
func (sel *Selection) Add(seq *Sequence, id FrameID) {
	if sel.Contains(id) || seq.FrameByID(id) == nil {
		return
	}
	sel.ids = append(sel.ids, id)
	sel.SortByTime(seq)
}

// Toggle flips a frame's membership without clearing others.
func (sel *Selection) Toggle(seq *Sequence, id FrameID) {
	for i, have := range sel.ids {
		if have == id {
			sel.ids = append(sel.ids[:i], sel.ids[i+1:]...)
			return
		}
	}
	sel.Add(seq, id)
}

// AddRange selects the contiguous run of frames between two frames,
// inclusive, in either direction.
func (sel *Selection) AddRange(seq *Sequence, from, to FrameID) {
	a, b := seq.IndexOf(from), seq.IndexOf(to)
	if a < 0 || b < 0 {
		return
	}
	if a > b {
		a, b = b, a
	}
	for i := a; i <= b; i++ {
		if !sel.Contains(seq.Frames[i].ID) {
			sel.ids = append(sel.ids, seq.Frames[i].ID)
		}
	}
	sel.SortByTime(seq)
}

// SelectAll selects every frame in the sequence.
func (sel *Selection) SelectAll(seq *Sequence) {
	sel.ids = sel.ids[:0]
	for _, f := range seq.Frames {
		sel.ids = append(sel.ids, f.ID)
	}
}

// SelectTimeRange replaces the selection with every frame whose interval
// overlaps [from, to]; the bounds may arrive in either order.
func (sel *Selection) SelectTimeRange(seq *Sequence, from, to float64) {
	if from > to {
		from, to = to, from
	}
	sel.ids = sel.ids[:0]
	for _, f := range seq.Frames {
		if f.EndTime() > from && f.Time <= to {
			sel.ids = append(sel.ids, f.ID)
		}
	}
}

// SortByTime restores the time ordering after membership changes. Frames
// no longer present in the sequence are dropped.
func (sel *Selection) SortByTime(seq *Sequence) {
	kept := sel.ids[:0]
	for _, id := range sel.ids {
		if seq.IndexOf(id) >= 0 {
			kept = append(kept, id)
		}
	}
	sel.ids = kept
	sort.SliceStable(sel.ids, func(i, j int) bool {
		return seq.IndexOf(sel.ids[i]) < seq.IndexOf(sel.ids[j])
	})
}

// Purge drops every selected frame contained in the set. Delete and
// replace operations call this so the selection never dangles.
func (sel *Selection) Purge(ids map[FrameID]bool) {
	kept := sel.ids[:0]
	for _, id := range sel.ids {
		if !ids[id] {
			kept = append(kept, id)
		}
	}
	sel.ids = kept
}
