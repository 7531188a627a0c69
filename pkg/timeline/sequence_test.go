package timeline

import (
	"math"
	"testing"
)

// Test helpers

func checkContiguous(t *testing.T, seq *Sequence) {
	t.Helper()

	if seq.Len() == 0 {
		return
	}
	if seq.Frames[0].Time != 0 {
		t.Errorf("first frame starts at %v, want 0", seq.Frames[0].Time)
	}
	for i := 0; i+1 < seq.Len(); i++ {
		gap := seq.Frames[i+1].Time - seq.Frames[i].EndTime()
		if math.Abs(gap) > 1e-9 {
			t.Errorf("frame %d ends at %v but frame %d starts at %v",
				i, seq.Frames[i].EndTime(), i+1, seq.Frames[i+1].Time)
		}
	}
}

func checkQuantized(t *testing.T, seq *Sequence) {
	t.Helper()

	period := seq.SamplePeriod()
	for i, f := range seq.Frames {
		samples := f.Length / period
		if math.Abs(samples-math.Round(samples)) > 1e-6 {
			t.Errorf("frame %d length %v is not a multiple of the sample period %v", i, f.Length, period)
		}
		if f.Length < period-1e-9 {
			t.Errorf("frame %d length %v is below one sample %v", i, f.Length, period)
		}
	}
}

func seqWithLengths(rate int, lengths ...float64) *Sequence {
	seq := NewSequence(rate)
	for i, l := range lengths {
		seq.Frames = append(seq.Frames, NewFrame(sprite(i), l))
	}
	seq.RecalcTimes()
	return seq
}

func sprite(i int) string {
	return string(rune('A' + i))
}

func spriteOrder(seq *Sequence) string {
	s := ""
	for _, f := range seq.Frames {
		s += f.Sprite
	}
	return s
}

var testDefaults = FrameDefaults{Length: 0.25, Samples: 6}

func TestRecalcTimes(t *testing.T) {
	seq := seqWithLengths(10, 0.1, 0.3, 0.2)

	checkContiguous(t, seq)
	if got := seq.TotalLength(); math.Abs(got-0.6) > 1e-9 {
		t.Errorf("TotalLength() = %v, want 0.6", got)
	}

	// Shuffle lengths and recompute: still contiguous from zero.
	seq.Frames[0].Length = 0.5
	seq.RecalcTimes()
	checkContiguous(t, seq)
	if got := seq.Frames[1].Time; math.Abs(got-0.5) > 1e-9 {
		t.Errorf("frame 1 starts at %v, want 0.5", got)
	}
}

func TestSetFrameLength(t *testing.T) {
	tests := []struct {
		name    string
		request float64
		want    float64
		changed bool
	}{
		{"snaps to nearest sample", 0.34, 0.3, true},
		{"clamps below one sample", 0.01, 0.1, true},
		{"negative clamps to one sample", -2, 0.1, true},
		{"approximately equal is a no-op", 0.2 + 1e-12, 0.2, false},
		{"snapping onto current value is a no-op", 0.21, 0.2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq := seqWithLengths(10, 0.2, 0.3)
			changed := seq.SetFrameLength(seq.Frames[0].ID, tt.request)
			if changed != tt.changed {
				t.Errorf("SetFrameLength changed = %v, want %v", changed, tt.changed)
			}
			if got := seq.Frames[0].Length; math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("length = %v, want %v", got, tt.want)
			}
			checkContiguous(t, seq)
			checkQuantized(t, seq)
		})
	}

	t.Run("unknown frame", func(t *testing.T) {
		seq := seqWithLengths(10, 0.2)
		if seq.SetFrameLength("nope", 0.5) {
			t.Error("resizing an unknown frame should be a no-op")
		}
	})
}

func TestInsertFrames(t *testing.T) {
	t.Run("empty sequence derives rate from defaults", func(t *testing.T) {
		seq := NewSequence(10)
		inserted := seq.InsertFrames([]string{"X", "Y"}, 0, testDefaults)

		if len(inserted) != 2 {
			t.Fatalf("inserted %d frames, want 2", len(inserted))
		}
		// 6 samples over 0.25s implies 24 samples per second.
		if seq.SampleRate != 24 {
			t.Errorf("SampleRate = %d, want 24", seq.SampleRate)
		}
		if got := seq.Frames[0].Length; math.Abs(got-0.25) > 1e-9 {
			t.Errorf("default length = %v, want 0.25", got)
		}
		checkContiguous(t, seq)
		checkQuantized(t, seq)
	})

	t.Run("inherits preceding frame length", func(t *testing.T) {
		seq := seqWithLengths(10, 0.2, 0.5)
		seq.InsertFrames([]string{"X"}, 2, testDefaults)

		if got := seq.Frames[2].Length; math.Abs(got-0.5) > 1e-9 {
			t.Errorf("inserted length = %v, want 0.5 (preceding frame)", got)
		}
		checkContiguous(t, seq)
	})

	t.Run("front insert inherits first frame length", func(t *testing.T) {
		seq := seqWithLengths(10, 0.2, 0.5)
		seq.InsertFrames([]string{"X"}, 0, testDefaults)

		if got := seq.Frames[0].Length; math.Abs(got-0.2) > 1e-9 {
			t.Errorf("inserted length = %v, want 0.2 (first frame)", got)
		}
		if spriteOrder(seq) != "XAB" {
			t.Errorf("order = %q, want XAB", spriteOrder(seq))
		}
	})

	t.Run("index clamped into range", func(t *testing.T) {
		seq := seqWithLengths(10, 0.2)
		seq.InsertFrames([]string{"X"}, 99, testDefaults)
		seq.InsertFrames([]string{"Y"}, -5, testDefaults)

		if spriteOrder(seq) != "YAX" {
			t.Errorf("order = %q, want YAX", spriteOrder(seq))
		}
		checkContiguous(t, seq)
	})
}

func TestDeleteFrames(t *testing.T) {
	seq := seqWithLengths(10, 0.1, 0.2, 0.3)
	ids := map[FrameID]bool{seq.Frames[1].ID: true}

	if n := seq.DeleteFrames(ids); n != 1 {
		t.Fatalf("deleted %d frames, want 1", n)
	}
	if spriteOrder(seq) != "AC" {
		t.Errorf("order = %q, want AC", spriteOrder(seq))
	}
	checkContiguous(t, seq)

	if n := seq.DeleteFrames(nil); n != 0 {
		t.Errorf("deleting an empty set removed %d frames", n)
	}
}

func TestDuplicateFrames(t *testing.T) {
	seq := seqWithLengths(10, 0.1, 0.2, 0.3)
	ids := map[FrameID]bool{seq.Frames[0].ID: true, seq.Frames[2].ID: true}

	copies := seq.DuplicateFrames(ids)
	if len(copies) != 2 {
		t.Fatalf("duplicated %d frames, want 2", len(copies))
	}
	// Copies land right after the last selected frame, in original order.
	if spriteOrder(seq) != "ABCAC" {
		t.Errorf("order = %q, want ABCAC", spriteOrder(seq))
	}
	for i, c := range copies {
		if c.ID == seq.Frames[0].ID || c.ID == seq.Frames[2].ID {
			t.Errorf("copy %d shares identity with its source", i)
		}
	}
	if got := seq.Frames[4].Length; math.Abs(got-0.3) > 1e-9 {
		t.Errorf("copied length = %v, want 0.3", got)
	}
	checkContiguous(t, seq)
}

func TestMoveFrames(t *testing.T) {
	tests := []struct {
		name    string
		moved   []int
		before  int
		want    string
		changed bool
	}{
		{"multi selection to front preserves relative order", []int{0, 2}, 0, "ACB", true},
		{"single frame to end", []int{0}, 3, "BCA", true},
		{"before an unmoved middle frame", []int{2}, 1, "ACB", true},
		{"anchor inside moved set falls through to next survivor", []int{1, 2}, 2, "ABC", true},
		{"past the end appends", []int{0}, 99, "BCA", true},
		{"empty set is a no-op", nil, 0, "ABC", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq := seqWithLengths(10, 0.1, 0.2, 0.3)
			ids := map[FrameID]bool{}
			for _, i := range tt.moved {
				ids[seq.Frames[i].ID] = true
			}
			changed := seq.MoveFrames(ids, tt.before)
			if changed != tt.changed {
				t.Errorf("MoveFrames changed = %v, want %v", changed, tt.changed)
			}
			if spriteOrder(seq) != tt.want {
				t.Errorf("order = %q, want %q", spriteOrder(seq), tt.want)
			}
			checkContiguous(t, seq)
		})
	}
}

func TestReplaceFrames(t *testing.T) {
	t.Run("overwrites sprites in place", func(t *testing.T) {
		seq := seqWithLengths(10, 0.1, 0.2, 0.3)
		seq.ReplaceFrames([]string{"X", "Y"}, 1, testDefaults)

		if spriteOrder(seq) != "AXY" {
			t.Errorf("order = %q, want AXY", spriteOrder(seq))
		}
		if got := seq.Frames[1].Length; math.Abs(got-0.2) > 1e-9 {
			t.Errorf("replaced frame length changed to %v", got)
		}
	})

	t.Run("overflow appends", func(t *testing.T) {
		seq := seqWithLengths(10, 0.1, 0.2)
		seq.ReplaceFrames([]string{"X", "Y", "Z"}, 1, testDefaults)

		if spriteOrder(seq) != "AXYZ" {
			t.Errorf("order = %q, want AXYZ", spriteOrder(seq))
		}
		// Appended frames inherit the length of the last existing frame.
		if got := seq.Frames[3].Length; math.Abs(got-0.2) > 1e-9 {
			t.Errorf("appended length = %v, want 0.2", got)
		}
		checkContiguous(t, seq)
	})
}

func TestSetSampleRate(t *testing.T) {
	seq := seqWithLengths(10, 0.2, 0.4)
	seq.SetSampleRate(20)

	// Sample counts are preserved, so second-lengths stay put on a finer grid.
	if got := seq.Frames[0].Length; math.Abs(got-0.2) > 1e-9 {
		t.Errorf("length after finer rate = %v, want 0.2", got)
	}
	checkQuantized(t, seq)

	seq.SetSampleRate(5)
	// 0.2s was 2 samples at 10fps; it stays 2 samples, now 0.4s.
	if got := seq.Frames[0].Length; math.Abs(got-0.4) > 1e-9 {
		t.Errorf("length after coarser rate = %v, want 0.4", got)
	}
	if got := seq.Frames[1].Length; math.Abs(got-0.8) > 1e-9 {
		t.Errorf("length after coarser rate = %v, want 0.8", got)
	}
	checkContiguous(t, seq)
	checkQuantized(t, seq)
}

func TestSetTotalLength(t *testing.T) {
	seq := seqWithLengths(10, 0.5, 0.5)

	seq.SetTotalLength(2.0)
	// Implied rate = 10 * 1.0/2.0 = 5; sample counts preserved doubles lengths.
	if seq.SampleRate != 5 {
		t.Errorf("SampleRate = %d, want 5", seq.SampleRate)
	}
	if got := seq.TotalLength(); math.Abs(got-2.0) > 1e-9 {
		t.Errorf("TotalLength = %v, want 2.0", got)
	}
	checkContiguous(t, seq)
	checkQuantized(t, seq)

	// Degenerate requests are no-ops.
	seq.SetTotalLength(0)
	if got := seq.TotalLength(); math.Abs(got-2.0) > 1e-9 {
		t.Errorf("TotalLength after zero request = %v, want 2.0", got)
	}
}

func TestIsEffectivelyEmpty(t *testing.T) {
	seq := NewSequence(10)
	if seq.IsEffectivelyEmpty() {
		t.Error("an empty sequence is not the placeholder case")
	}
	seq.Frames = append(seq.Frames, NewFrame("", 0.1))
	seq.RecalcTimes()
	if !seq.IsEffectivelyEmpty() {
		t.Error("a single sprite-less frame should read as effectively empty")
	}
	seq.Frames[0].Sprite = "A"
	if seq.IsEffectivelyEmpty() {
		t.Error("a single frame with a sprite is a real animation")
	}
}

func TestFrameIndexAt(t *testing.T) {
	seq := seqWithLengths(10, 0.5, 0.5)

	tests := []struct {
		name string
		t    float64
		want int
	}{
		{"inside first", 0.25, 0},
		{"boundary belongs to the next frame", 0.5, 1},
		{"past the end clamps to last", 5, 1},
		{"negative clamps to first", -1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := seq.FrameIndexAt(tt.t); got != tt.want {
				t.Errorf("FrameIndexAt(%v) = %d, want %d", tt.t, got, tt.want)
			}
		})
	}
}
