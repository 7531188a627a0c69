package timeline

import "github.com/google/uuid"

// FrameID is the stable identity handle of a frame. Selection, removal and
// move operations look frames up by ID, never by position or value.
type FrameID string

func newFrameID() FrameID {
	return FrameID(uuid.NewString())
}

// Frame is one (image, duration) unit of an animation. Time is derived
// from the cumulative lengths of the preceding frames and is only ever
// written by Sequence.RecalcTimes.
type Frame struct {
	ID     FrameID
	Sprite string  // asset ID, empty when no image is assigned
	Time   float64 // start time in seconds, derived
	Length float64 // duration in seconds, at least one sample period
}

// NewFrame creates a frame with a fresh identity.
func NewFrame(sprite string, length float64) *Frame {
	return &Frame{ID: newFrameID(), Sprite: sprite, Length: length}
}

// Clone returns a value copy with a fresh identity, copying exactly the
// sprite and length. Duplicates and clipboard copies go through here so a
// pasted frame never shares identity with a live one.
func (f *Frame) Clone() *Frame {
	return &Frame{ID: newFrameID(), Sprite: f.Sprite, Length: f.Length}
}

// EndTime returns the frame's exclusive end time.
func (f *Frame) EndTime() float64 {
	return f.Time + f.Length
}
