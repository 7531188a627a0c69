package timeline

import "math"

// timeEpsilon is the tolerance used when deciding that a requested length
// already matches the current one and the mutation can be skipped.
const timeEpsilon = 1e-9

// FrameDefaults configures the first frame inserted into an empty sequence.
// The sequence's sample rate is derived from Samples/Length in that case.
type FrameDefaults struct {
	Length  float64 // seconds
	Samples int
}

// Sequence is the ordered list of frames making up one animation clip and
// the single source of truth for the editor. Every mutation keeps the
// frames contiguous: the first frame starts at zero and each frame starts
// exactly where the previous one ends.
type Sequence struct {
	Frames     []*Frame
	SampleRate int // frames-per-second granularity; minimum frame length is 1/SampleRate
}

// NewSequence creates an empty sequence at the given sample rate.
func NewSequence(sampleRate int) *Sequence {
	if sampleRate < 1 {
		sampleRate = 1
	}
	return &Sequence{SampleRate: sampleRate}
}

// SamplePeriod returns the minimum frame length in seconds.
func (s *Sequence) SamplePeriod() float64 {
	return 1.0 / float64(s.SampleRate)
}

// Len returns the number of frames.
func (s *Sequence) Len() int {
	return len(s.Frames)
}

// TotalLength returns the end time of the last frame, zero when empty.
func (s *Sequence) TotalLength() float64 {
	if len(s.Frames) == 0 {
		return 0
	}
	return s.Frames[len(s.Frames)-1].EndTime()
}

// IsEffectivelyEmpty reports whether the sequence is a freshly created
// placeholder: exactly one frame with no sprite assigned.
func (s *Sequence) IsEffectivelyEmpty() bool {
	return len(s.Frames) == 1 && s.Frames[0].Sprite == ""
}

// RecalcTimes recomputes every frame's start time as the running sum of
// the preceding lengths. Called after any length or order mutation.
func (s *Sequence) RecalcTimes() {
	t := 0.0
	for _, f := range s.Frames {
		f.Time = t
		t += f.Length
	}
}

// Quantize snaps a duration to the nearest multiple of the sample period,
// clamped to no less than one sample.
func (s *Sequence) Quantize(length float64) float64 {
	period := s.SamplePeriod()
	samples := math.Round(length / period)
	if samples < 1 {
		samples = 1
	}
	return samples * period
}

// IndexOf returns the position of the frame with the given ID, or -1.
func (s *Sequence) IndexOf(id FrameID) int {
	for i, f := range s.Frames {
		if f.ID == id {
			return i
		}
	}
	return -1
}

// FrameByID returns the frame with the given ID, or nil.
func (s *Sequence) FrameByID(id FrameID) *Frame {
	if i := s.IndexOf(id); i >= 0 {
		return s.Frames[i]
	}
	return nil
}

// FrameIndexAt returns the index of the frame whose interval contains t.
// Times past the end resolve to the last frame; -1 when empty.
func (s *Sequence) FrameIndexAt(t float64) int {
	if len(s.Frames) == 0 {
		return -1
	}
	for i, f := range s.Frames {
		if t < f.EndTime() {
			return i
		}
	}
	return len(s.Frames) - 1
}

// SetFrameLength snaps the requested length to sample granularity, clamps
// it to at least one sample and applies it. It reports whether anything
// changed; a request approximately equal to the current length is a no-op.
func (s *Sequence) SetFrameLength(id FrameID, length float64) bool {
	f := s.FrameByID(id)
	if f == nil {
		return false
	}
	if math.Abs(length-f.Length) < timeEpsilon {
		return false
	}
	snapped := s.Quantize(length)
	if math.Abs(snapped-f.Length) < timeEpsilon {
		return false
	}
	f.Length = snapped
	s.RecalcTimes()
	return true
}

// InsertFrames splices one new frame per sprite in before the frame at the
// given index, clamped to [0, len]. New frames inherit the length of the
// frame preceding the insertion point (the first frame's length when
// inserting at the front). When the sequence is empty the defaults decide
// the first length and the sample rate itself is derived from
// Samples/Length. Returns the inserted frames.
func (s *Sequence) InsertFrames(sprites []string, at int, def FrameDefaults) []*Frame {
	if len(sprites) == 0 {
		return nil
	}
	if at < 0 {
		at = 0
	}
	if at > len(s.Frames) {
		at = len(s.Frames)
	}

	var length float64
	if len(s.Frames) == 0 {
		rate := 1
		if def.Length > 0 && def.Samples > 0 {
			rate = int(math.Round(float64(def.Samples) / def.Length))
		}
		if rate < 1 {
			rate = 1
		}
		s.SampleRate = rate
		length = s.Quantize(def.Length)
	} else if at == 0 {
		length = s.Frames[0].Length
	} else {
		length = s.Frames[at-1].Length
	}

	inserted := make([]*Frame, len(sprites))
	for i, sprite := range sprites {
		inserted[i] = NewFrame(sprite, length)
	}

	s.Frames = append(s.Frames[:at], append(inserted, s.Frames[at:]...)...)
	s.RecalcTimes()
	return inserted
}

// spliceFrames inserts pre-built frames at the given index, clamped into
// range, quantizing each length to the sequence's sample grid. Paste and
// duplicate go through here because their frames carry their own lengths.
func (s *Sequence) spliceFrames(frames []*Frame, at int) {
	if len(frames) == 0 {
		return
	}
	if at < 0 {
		at = 0
	}
	if at > len(s.Frames) {
		at = len(s.Frames)
	}
	for _, f := range frames {
		f.Length = s.Quantize(f.Length)
	}
	s.Frames = append(s.Frames[:at], append(frames, s.Frames[at:]...)...)
	s.RecalcTimes()
}

// DeleteFrames removes every frame whose ID is in the set and reports how
// many were removed. Callers owning a selection must purge it afterwards.
func (s *Sequence) DeleteFrames(ids map[FrameID]bool) int {
	if len(ids) == 0 || len(s.Frames) == 0 {
		return 0
	}
	kept := s.Frames[:0]
	removed := 0
	for _, f := range s.Frames {
		if ids[f.ID] {
			removed++
			continue
		}
		kept = append(kept, f)
	}
	s.Frames = kept
	if removed > 0 {
		s.RecalcTimes()
	}
	return removed
}

// DuplicateFrames deep-copies the identified frames, preserving their
// relative order, and inserts the copies immediately after the last of
// them. Returns the copies so the caller can select them.
func (s *Sequence) DuplicateFrames(ids map[FrameID]bool) []*Frame {
	if len(ids) == 0 {
		return nil
	}
	var copies []*Frame
	last := -1
	for i, f := range s.Frames {
		if ids[f.ID] {
			copies = append(copies, f.Clone())
			last = i
		}
	}
	if len(copies) == 0 {
		return nil
	}
	s.spliceFrames(copies, last+1)
	return copies
}

// MoveFrames removes the identified frames and reinserts them, preserving
// their relative order, immediately before the frame currently occupying
// beforeIndex (at the end when beforeIndex is past the last frame). The
// insertion point is recomputed by identity after removal so index shifts
// cannot skew it.
func (s *Sequence) MoveFrames(ids map[FrameID]bool, beforeIndex int) bool {
	if len(ids) == 0 || len(s.Frames) == 0 {
		return false
	}

	// Anchor on the first frame at or after beforeIndex that is not itself
	// being moved; nil anchors append at the end.
	var anchor *Frame
	for i := beforeIndex; i >= 0 && i < len(s.Frames); i++ {
		if !ids[s.Frames[i].ID] {
			anchor = s.Frames[i]
			break
		}
	}

	var moved []*Frame
	kept := s.Frames[:0]
	for _, f := range s.Frames {
		if ids[f.ID] {
			moved = append(moved, f)
			continue
		}
		kept = append(kept, f)
	}
	if len(moved) == 0 {
		return false
	}
	s.Frames = kept

	at := len(s.Frames)
	if anchor != nil {
		at = s.IndexOf(anchor.ID)
	}
	s.Frames = append(s.Frames[:at], append(moved, s.Frames[at:]...)...)
	s.RecalcTimes()
	return true
}

// ReplaceFrames overwrites the sprites of the frames starting at the given
// index, leaving their lengths untouched. Sprites beyond the last frame are
// appended as new frames. Returns the frames that were touched.
func (s *Sequence) ReplaceFrames(sprites []string, at int, def FrameDefaults) []*Frame {
	if len(sprites) == 0 {
		return nil
	}
	if at < 0 {
		at = 0
	}
	if at > len(s.Frames) {
		at = len(s.Frames)
	}

	var touched []*Frame
	i := 0
	for ; i < len(sprites) && at+i < len(s.Frames); i++ {
		s.Frames[at+i].Sprite = sprites[i]
		touched = append(touched, s.Frames[at+i])
	}
	if i < len(sprites) {
		touched = append(touched, s.InsertFrames(sprites[i:], len(s.Frames), def)...)
	}
	return touched
}

// SetSampleRate re-quantizes every frame onto the new sample grid, keeping
// each frame's sample count so relative proportions are preserved exactly.
// No frame ever drops below one sample of the new rate.
func (s *Sequence) SetSampleRate(rate int) {
	if rate < 1 || rate == s.SampleRate {
		return
	}
	oldRate := float64(s.SampleRate)
	s.SampleRate = rate
	period := s.SamplePeriod()
	for _, f := range s.Frames {
		samples := math.Round(f.Length * oldRate)
		if samples < 1 {
			samples = 1
		}
		f.Length = samples * period
	}
	s.RecalcTimes()
}

// SetTotalLength stretches or squeezes the whole animation to approximately
// the requested duration by deriving an implied sample rate,
// oldRate * oldLength / newLength rounded to an integer of at least one,
// and rescaling every frame onto that grid.
func (s *Sequence) SetTotalLength(newTotal float64) {
	oldTotal := s.TotalLength()
	if newTotal <= 0 || oldTotal <= 0 {
		return
	}
	rate := int(math.Round(float64(s.SampleRate) * oldTotal / newTotal))
	if rate < 1 {
		rate = 1
	}
	s.SetSampleRate(rate)
}
