package timeline

// Clipboard holds detached copies of frames. Entries are value copies with
// their own identities, so the clipboard survives switching clips and a
// paste can never alias a live frame.
type Clipboard struct {
	frames []*Frame
}

// NewClipboard returns an empty clipboard.
func NewClipboard() *Clipboard {
	return &Clipboard{}
}

// IsEmpty reports whether nothing has been copied yet.
func (c *Clipboard) IsEmpty() bool {
	return len(c.frames) == 0
}

// Len returns the number of copied frames.
func (c *Clipboard) Len() int {
	return len(c.frames)
}

// Copy replaces the clipboard contents with deep copies of the frames.
func (c *Clipboard) Copy(frames []*Frame) {
	if len(frames) == 0 {
		return
	}
	c.frames = c.frames[:0]
	for _, f := range frames {
		c.frames = append(c.frames, f.Clone())
	}
}

// Frames returns fresh copies for pasting; each call yields new identities
// so the same clipboard can be pasted repeatedly.
func (c *Clipboard) Frames() []*Frame {
	out := make([]*Frame, len(c.frames))
	for i, f := range c.frames {
		out[i] = f.Clone()
	}
	return out
}
