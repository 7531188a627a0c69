package timeline

import "math"

// DragState enumerates the mouse-interaction states of the editor. Every
// drag returns to DragNone on mouse-up.
type DragState int

const (
	DragNone DragState = iota
	DragScrub
	DragResizeFrame
	DragMoveFrame
	DragSelectFrame
)

// ResizeHandleWidth is the hit width, in timeline pixels, of the resize
// handle at a frame's trailing edge.
const ResizeHandleWidth = 6.0

// MouseEvent is one pointer event normalized to timeline pixel space.
type MouseEvent struct {
	X          float64
	OnScrubber bool // pointer is inside the ruler/scrubber band
	Ctrl       bool
	Shift      bool
}

// Effects reports what a transition or editing operation asks of the host:
// Commit means the sequence was mutated and must be pushed to the store,
// Changed means the view needs a redraw.
type Effects struct {
	Commit  bool
	Changed bool
}

func (e Effects) merge(o Effects) Effects {
	return Effects{Commit: e.Commit || o.Commit, Changed: e.Changed || o.Changed}
}

// Session consolidates the editor's transient interaction state: the drag
// state machine, selection, clipboard, viewport, playback cursor and the
// configured defaults for new frames. None of it is ever persisted.
type Session struct {
	Seq  *Sequence
	Sel  *Selection
	View *Viewport
	Play *Playback
	Clip *Clipboard

	Defaults FrameDefaults

	state       DragState
	dragStartX  float64
	dragMoved   bool
	onSelected  bool // mouse-down landed on an already-selected frame body
	resizeID    FrameID
	resizeDirty bool
	moveTarget  int // insertion index shown while moving frames, -1 otherwise
	listIndex   int // position of the last plainly clicked frame
}

// NewSession wraps a sequence in a fresh editing session.
func NewSession(seq *Sequence, defaults FrameDefaults, viewWidth float64) *Session {
	return &Session{
		Seq:        seq,
		Sel:        NewSelection(),
		View:       NewViewport(viewWidth),
		Play:       NewPlayback(),
		Clip:       NewClipboard(),
		Defaults:   defaults,
		moveTarget: -1,
	}
}

// State returns the current drag state.
func (s *Session) State() DragState {
	return s.state
}

// MoveTarget returns the insertion index to indicate during a frame move,
// or -1 when no move is in progress.
func (s *Session) MoveTarget() int {
	if s.state != DragMoveFrame {
		return -1
	}
	return s.moveTarget
}

// ListIndex returns the position of the last plainly clicked frame.
func (s *Session) ListIndex() int {
	return s.listIndex
}

// SetSequence installs a rebuilt sequence. The selection and any drag are
// dropped because frame identities are new; view and playback state are
// reset only when the host asks (a clip switch resets, an undo does not).
func (s *Session) SetSequence(seq *Sequence, resetView bool) {
	s.Seq = seq
	s.Sel.Clear()
	s.abortDrag()
	if resetView {
		s.Play = NewPlayback()
		s.View = NewViewport(s.View.Width)
	} else {
		s.Play.Seek(s.Play.Current, seq.TotalLength())
		s.View.clampOffset(seq.TotalLength())
	}
}

// hitFrame resolves a timeline pixel to the frame under it, reporting
// whether the hit is inside the trailing-edge resize handle.
func (s *Session) hitFrame(x float64) (*Frame, bool) {
	t := s.View.PixelToTime(x)
	if t < 0 || t >= s.Seq.TotalLength() {
		return nil, false
	}
	i := s.Seq.FrameIndexAt(t)
	if i < 0 {
		return nil, false
	}
	f := s.Seq.Frames[i]
	endX := s.View.TimeToPixel(f.EndTime())
	return f, endX-x <= ResizeHandleWidth
}

// MouseDown begins a drag according to the transition table: the scrubber
// starts a scrub, a trailing edge starts a resize, an unselected frame
// body or empty timeline starts a selection, and a selected frame body
// arms a move that engages on the first drag motion.
func (s *Session) MouseDown(ev MouseEvent) Effects {
	s.dragStartX = ev.X
	s.dragMoved = false
	s.onSelected = false
	s.moveTarget = -1
	s.resizeDirty = false

	if ev.OnScrubber {
		s.state = DragScrub
		s.Play.Seek(s.View.PixelToTime(ev.X), s.Seq.TotalLength())
		return Effects{Changed: true}
	}

	f, onHandle := s.hitFrame(ev.X)
	switch {
	case f != nil && onHandle:
		s.state = DragResizeFrame
		s.resizeID = f.ID
	case f != nil && s.Sel.Contains(f.ID):
		// Stay in DragNone: a drag turns this into a frame move, a plain
		// release into a click selection.
		s.onSelected = true
	case f != nil:
		s.state = DragSelectFrame
		s.SelectFrame(f.ID, ev.Ctrl, ev.Shift)
	default:
		s.state = DragSelectFrame
		if !ev.Ctrl && !ev.Shift {
			s.Sel.Clear()
		}
	}
	return Effects{Changed: true}
}

// MouseDrag advances the active drag: scrubbing follows the pointer, box
// selection recomputes the overlapped range, a move updates its insertion
// indicator, and a resize applies single- or multi-frame resizing.
func (s *Session) MouseDrag(ev MouseEvent) Effects {
	if math.Abs(ev.X-s.dragStartX) > 0 {
		s.dragMoved = true
	}

	switch s.state {
	case DragScrub:
		s.Play.Seek(s.View.PixelToTime(ev.X), s.Seq.TotalLength())
	case DragSelectFrame:
		from := s.View.PixelToTime(math.Min(s.dragStartX, ev.X))
		to := s.View.PixelToTime(math.Max(s.dragStartX, ev.X))
		s.Sel.SelectTimeRange(s.Seq, from, to)
	case DragResizeFrame:
		s.applyResize(ev)
	case DragMoveFrame:
		s.moveTarget = InsertIndexAt(s.Seq, s.View, ev.X)
	case DragNone:
		if s.onSelected && s.dragMoved {
			s.state = DragMoveFrame
			s.moveTarget = InsertIndexAt(s.Seq, s.View, ev.X)
		}
	}
	return Effects{Changed: true}
}

// MouseUp finishes the drag and returns to DragNone. A finished resize or
// move commits; a release on a selected frame that never moved is treated
// as a plain click on it.
func (s *Session) MouseUp(ev MouseEvent) Effects {
	eff := Effects{Changed: true}

	switch s.state {
	case DragResizeFrame:
		eff.Commit = s.resizeDirty
	case DragMoveFrame:
		if s.moveTarget >= 0 && s.Seq.MoveFrames(s.Sel.IDSet(), s.moveTarget) {
			s.Sel.SortByTime(s.Seq)
			eff.Commit = true
		}
	case DragNone:
		if s.onSelected && !s.dragMoved {
			if f, _ := s.hitFrame(s.dragStartX); f != nil {
				s.SelectFrame(f.ID, ev.Ctrl, ev.Shift)
			}
		}
	}

	s.abortDrag()
	return eff
}

// abortDrag releases any drag back to DragNone without committing.
func (s *Session) abortDrag() {
	s.state = DragNone
	s.onSelected = false
	s.dragMoved = false
	s.resizeDirty = false
	s.moveTarget = -1
	s.resizeID = ""
}

// SelectFrame applies click selection semantics: a plain click selects
// just the frame, ctrl toggles its membership, and shift extends from the
// single previously selected frame through the clicked one. A non-ctrl
// click also parks the playback cursor on the frame unless playing.
func (s *Session) SelectFrame(id FrameID, ctrl, shift bool) {
	f := s.Seq.FrameByID(id)
	if f == nil {
		return
	}
	switch {
	case shift && s.Sel.Len() == 1:
		prev := s.Sel.ids[0]
		s.Sel.AddRange(s.Seq, prev, id)
	case ctrl:
		s.Sel.Toggle(s.Seq, id)
	default:
		s.Sel.Set(s.Seq, id)
	}
	s.Sel.SortByTime(s.Seq)

	if !ctrl {
		if !s.Play.Playing {
			s.Play.Seek(f.Time, s.Seq.TotalLength())
		}
		s.listIndex = s.Seq.IndexOf(id)
	}
}

// applyResize drags the trailing edge of the grabbed frame. With a
// multi-frame selection that includes the grabbed frame, every selected
// frame gains or loses one sample per step, and a step is taken only while
// the pointer is closer to the candidate end time than to the current one.
func (s *Session) applyResize(ev MouseEvent) {
	f := s.Seq.FrameByID(s.resizeID)
	if f == nil {
		return
	}
	mouseT := s.View.PixelToTime(ev.X)

	if s.Sel.Len() > 1 && s.Sel.Contains(s.resizeID) {
		s.applyMultiResize(f, mouseT)
		return
	}

	if s.Seq.SetFrameLength(f.ID, mouseT-f.Time) {
		s.resizeDirty = true
	}
}

func (s *Session) applyMultiResize(f *Frame, mouseT float64) {
	period := s.Seq.SamplePeriod()
	selected := s.Sel.Frames(s.Seq)

	for {
		curEnd := f.EndTime()
		dir := 0.0
		if mouseT > curEnd {
			dir = 1
		} else if mouseT < curEnd {
			dir = -1
		}
		if dir == 0 {
			return
		}

		// Selected frames at or before the grabbed one each shift its end
		// by one period, so the candidate end moves by that many periods.
		shifts := 0
		for _, sf := range selected {
			if sf.Time <= f.Time {
				shifts++
			}
		}
		candEnd := curEnd + dir*period*float64(shifts)
		if math.Abs(mouseT-candEnd) >= math.Abs(mouseT-curEnd) {
			return
		}

		stepped := false
		for _, sf := range selected {
			next := sf.Length + dir*period
			if next < period-timeEpsilon {
				next = period
			}
			if math.Abs(next-sf.Length) > timeEpsilon {
				sf.Length = next
				stepped = true
			}
		}
		if !stepped {
			return
		}
		s.Seq.RecalcTimes()
		s.resizeDirty = true
	}
}

// DeleteSelected removes the selected frames, purging them from the
// selection. Empty selection is a no-op without a commit.
func (s *Session) DeleteSelected() Effects {
	ids := s.Sel.IDSet()
	if s.Seq.DeleteFrames(ids) == 0 {
		return Effects{}
	}
	s.Sel.Purge(ids)
	s.Play.Seek(s.Play.Current, s.Seq.TotalLength())
	return Effects{Commit: true, Changed: true}
}

// DuplicateSelected deep-copies the selected frames, inserts the copies
// after the last of them and selects the copies.
func (s *Session) DuplicateSelected() Effects {
	copies := s.Seq.DuplicateFrames(s.Sel.IDSet())
	if len(copies) == 0 {
		return Effects{}
	}
	ids := make([]FrameID, len(copies))
	for i, f := range copies {
		ids[i] = f.ID
	}
	s.Sel.Set(s.Seq, ids...)
	return Effects{Commit: true, Changed: true}
}

// CopySelected snapshots the selected frames onto the clipboard.
func (s *Session) CopySelected() Effects {
	if s.Sel.IsEmpty() {
		return Effects{}
	}
	s.Clip.Copy(s.Sel.Frames(s.Seq))
	return Effects{Changed: true}
}

// Paste splices clipboard copies in after the selection, or after the
// frame under the playback cursor when nothing is selected. Pasting with
// an empty clipboard is a no-op.
func (s *Session) Paste() Effects {
	if s.Clip.IsEmpty() {
		return Effects{}
	}
	at := len(s.Seq.Frames)
	if last := s.Sel.Last(s.Seq); last != nil {
		at = s.Seq.IndexOf(last.ID) + 1
	} else if i := s.Seq.FrameIndexAt(s.Play.Current); i >= 0 {
		at = i + 1
	}

	pasted := s.Clip.Frames()
	s.Seq.spliceFrames(pasted, at)
	ids := make([]FrameID, len(pasted))
	for i, f := range pasted {
		ids[i] = f.ID
	}
	s.Sel.Set(s.Seq, ids...)
	return Effects{Commit: true, Changed: true}
}

// SelectAll selects every frame.
func (s *Session) SelectAll() Effects {
	s.Sel.SelectAll(s.Seq)
	return Effects{Changed: true}
}

// ApplyDrop executes a resolved drop plan. Inserted frames become the new
// selection; replaced frames are purged from it.
func (s *Session) ApplyDrop(plan DropPlan) Effects {
	if len(plan.Sprites) == 0 {
		return Effects{}
	}
	var touched []*Frame
	if plan.Mode == DropReplace {
		touched = s.Seq.ReplaceFrames(plan.Sprites, plan.Index, s.Defaults)
		purge := make(map[FrameID]bool, len(touched))
		for _, f := range touched {
			purge[f.ID] = true
		}
		s.Sel.Purge(purge)
	} else {
		touched = s.Seq.InsertFrames(plan.Sprites, plan.Index, s.Defaults)
		ids := make([]FrameID, len(touched))
		for i, f := range touched {
			ids[i] = f.ID
		}
		s.Sel.Set(s.Seq, ids...)
	}
	if len(touched) == 0 {
		return Effects{}
	}
	return Effects{Commit: true, Changed: true}
}

// StepPrev moves the cursor and selection to the previous frame.
func (s *Session) StepPrev() Effects {
	return s.step(-1)
}

// StepNext moves the cursor and selection to the next frame.
func (s *Session) StepNext() Effects {
	return s.step(1)
}

// step moves to the frame boundary adjacent to the selection, or to the
// frame under the cursor when nothing is selected, clamped into range.
func (s *Session) step(dir int) Effects {
	if s.Seq.Len() == 0 {
		return Effects{}
	}
	ref := s.Seq.FrameIndexAt(s.Play.Current)
	if first := s.Sel.First(s.Seq); first != nil {
		ref = s.Seq.IndexOf(first.ID)
	}
	next := ref + dir
	if next < 0 {
		next = 0
	}
	if next > s.Seq.Len()-1 {
		next = s.Seq.Len() - 1
	}
	f := s.Seq.Frames[next]
	s.Sel.Set(s.Seq, f.ID)
	s.Play.Seek(f.Time, s.Seq.TotalLength())
	s.listIndex = next
	return Effects{Changed: true}
}

// Tick advances playback while no scrub is in progress.
func (s *Session) Tick(elapsed float64) Effects {
	if s.state == DragScrub {
		return Effects{}
	}
	was := s.Play.Playing
	s.Play.Advance(elapsed, s.Seq.TotalLength())
	return Effects{Changed: was || s.Play.Playing}
}

// SetSampleRate rescales the whole sequence onto a new sample grid.
func (s *Session) SetSampleRate(rate int) Effects {
	if rate < 1 || rate == s.Seq.SampleRate || s.Seq.Len() == 0 {
		return Effects{}
	}
	s.Seq.SetSampleRate(rate)
	s.Play.Seek(s.Play.Current, s.Seq.TotalLength())
	return Effects{Commit: true, Changed: true}
}

// SetTotalLength stretches the animation to a new duration via an implied
// sample-rate change.
func (s *Session) SetTotalLength(total float64) Effects {
	if total <= 0 || s.Seq.Len() == 0 {
		return Effects{}
	}
	s.Seq.SetTotalLength(total)
	s.Play.Seek(s.Play.Current, s.Seq.TotalLength())
	return Effects{Commit: true, Changed: true}
}
