package timeline

// Viewport scale and pan limits. The offset slack is the small positive
// margin the timeline keeps at the left edge of the view.
const (
	MinPixelsPerSecond = 10.0
	MaxPixelsPerSecond = 8000.0
	OffsetSlack        = 8.0
)

// Viewport maps animation time to timeline pixels and back. Offset is the
// pixel position of time zero; Scale is pixels per second.
type Viewport struct {
	Width  float64 // visible timeline width in pixels
	Offset float64
	Scale  float64
}

// NewViewport returns a viewport at the default zoom, panned to the origin.
func NewViewport(width float64) *Viewport {
	return &Viewport{Width: width, Offset: OffsetSlack, Scale: 100}
}

// TimeToPixel converts an animation time to a timeline pixel position.
func (v *Viewport) TimeToPixel(t float64) float64 {
	return v.Offset + t*v.Scale
}

// PixelToTime converts a timeline pixel position to an animation time.
func (v *Viewport) PixelToTime(x float64) float64 {
	return (x - v.Offset) / v.Scale
}

// SetWidth resizes the viewport and re-clamps the pan.
func (v *Viewport) SetWidth(width, totalLength float64) {
	v.Width = width
	v.clampOffset(totalLength)
}

// SetScale applies a zoom level, clamped to the allowed range, keeping the
// pan within bounds.
func (v *Viewport) SetScale(scale, totalLength float64) {
	v.Scale = clampScale(scale)
	v.clampOffset(totalLength)
}

// ZoomAt scales by the given factor keeping the time under the anchor
// pixel fixed, so zooming with the pointer feels pinned to the pointer.
func (v *Viewport) ZoomAt(anchorX, factor, totalLength float64) {
	t := v.PixelToTime(anchorX)
	v.Scale = clampScale(v.Scale * factor)
	v.Offset = anchorX - t*v.Scale
	v.clampOffset(totalLength)
}

// Pan shifts the view by a pixel delta, clamped so the animation cannot be
// dragged fully off-screen.
func (v *Viewport) Pan(dx, totalLength float64) {
	v.Offset += dx
	v.clampOffset(totalLength)
}

// clampOffset bounds the pan. When the animation is wider than half the
// viewport the left bound keeps at least half a viewport of it visible;
// otherwise the offset is pinned to the slack margin.
func (v *Viewport) clampOffset(totalLength float64) {
	animWidth := totalLength * v.Scale
	if animWidth <= v.Width/2 {
		v.Offset = OffsetSlack
		return
	}
	min := v.Width - animWidth - v.Width/2
	if v.Offset < min {
		v.Offset = min
	}
	if v.Offset > OffsetSlack {
		v.Offset = OffsetSlack
	}
}

func clampScale(scale float64) float64 {
	if scale < MinPixelsPerSecond {
		return MinPixelsPerSecond
	}
	if scale > MaxPixelsPerSecond {
		return MaxPixelsPerSecond
	}
	return scale
}
