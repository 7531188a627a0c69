package timeline

import "github.com/spriteline/spriteline-cli/pkg/models"

// ToTrack encodes the sequence as a persisted keyframe track: one key at
// every frame's start time, plus a terminal key at the total length
// repeating the last image so the last frame's duration survives the trip.
func (s *Sequence) ToTrack(loop bool) models.KeyframeTrack {
	track := models.KeyframeTrack{SampleRate: s.SampleRate, Loop: loop}
	if len(s.Frames) == 0 {
		return track
	}
	for _, f := range s.Frames {
		track.Keys = append(track.Keys, models.Keyframe{Time: f.Time, Image: f.Sprite})
	}
	last := s.Frames[len(s.Frames)-1]
	track.Keys = append(track.Keys, models.Keyframe{Time: last.EndTime(), Image: last.Sprite})
	return track
}

// SequenceFromTrack rebuilds a sequence from a persisted track. Frame
// lengths come from consecutive key time differences, quantized and
// clamped, so a malformed track with non-monotonic times normalizes to a
// contiguous sequence instead of being rejected. A trailing key repeating
// the previous image is recognized as the end marker; without one the last
// frame falls back to a single sample.
func SequenceFromTrack(track models.KeyframeTrack) *Sequence {
	seq := NewSequence(track.SampleRate)
	n := len(track.Keys)
	if n == 0 {
		return seq
	}

	frames := n
	if n >= 2 && track.Keys[n-1].Image == track.Keys[n-2].Image {
		frames = n - 1
	}
	for i := 0; i < frames; i++ {
		length := seq.SamplePeriod()
		if i+1 < n {
			length = seq.Quantize(track.Keys[i+1].Time - track.Keys[i].Time)
		}
		seq.Frames = append(seq.Frames, NewFrame(track.Keys[i].Image, length))
	}
	seq.RecalcTimes()
	return seq
}
