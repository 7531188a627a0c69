package timeline

import "math"

// Playback owns the cursor position and play state of the editor. Nothing
// else writes Current while playing.
type Playback struct {
	Current float64 // seconds, within [0, totalLength]
	Playing bool
	Loop    bool
	Speed   float64 // multiplier applied to elapsed wall time
}

// NewPlayback returns a stopped playback at normal speed.
func NewPlayback() *Playback {
	return &Playback{Speed: 1}
}

// Advance moves the cursor by elapsed wall seconds scaled by the speed
// multiplier. Reaching the end wraps when looping, otherwise playback
// stops and the cursor resets to zero.
func (p *Playback) Advance(elapsed, totalLength float64) {
	if !p.Playing {
		return
	}
	if totalLength <= 0 {
		p.Playing = false
		p.Current = 0
		return
	}
	p.Current += elapsed * p.Speed
	if p.Current < totalLength {
		return
	}
	if p.Loop {
		p.Current -= totalLength
		if p.Current >= totalLength {
			p.Current = math.Mod(p.Current, totalLength)
		}
	} else {
		p.Playing = false
		p.Current = 0
	}
}

// TogglePlay starts or pauses playback. Starting at or past the end
// restarts from the beginning.
func (p *Playback) TogglePlay(totalLength float64) {
	if p.Playing {
		p.Playing = false
		return
	}
	if p.Current >= totalLength {
		p.Current = 0
	}
	p.Playing = true
}

// Seek moves the cursor, clamped into the animation's range.
func (p *Playback) Seek(t, totalLength float64) {
	if t < 0 {
		t = 0
	}
	if t > totalLength {
		t = totalLength
	}
	p.Current = t
}
