package timeline

import "testing"

func checkSelectionSorted(t *testing.T, sel *Selection, seq *Sequence) {
	t.Helper()

	frames := sel.Frames(seq)
	for i := 0; i+1 < len(frames); i++ {
		if frames[i].Time > frames[i+1].Time {
			t.Errorf("selection out of time order: %v before %v", frames[i].Time, frames[i+1].Time)
		}
	}
}

func TestSelectionAddAndToggle(t *testing.T) {
	seq := seqWithLengths(10, 0.1, 0.2, 0.3)
	sel := NewSelection()

	// Added out of order, read back in time order.
	sel.Add(seq, seq.Frames[2].ID)
	sel.Add(seq, seq.Frames[0].ID)
	checkSelectionSorted(t, sel, seq)
	if sel.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", sel.Len())
	}
	if first := sel.First(seq); first == nil || first.Sprite != "A" {
		t.Errorf("First() = %v, want frame A", first)
	}

	sel.Toggle(seq, seq.Frames[2].ID)
	if sel.Contains(seq.Frames[2].ID) {
		t.Error("toggle should have removed frame C")
	}
	sel.Toggle(seq, seq.Frames[1].ID)
	if !sel.Contains(seq.Frames[1].ID) {
		t.Error("toggle should have added frame B")
	}
	checkSelectionSorted(t, sel, seq)

	// Unknown frames never enter the selection.
	sel.Add(seq, "ghost")
	if sel.Len() != 2 {
		t.Errorf("Len() = %d after adding unknown frame, want 2", sel.Len())
	}
}

func TestSelectionAddRange(t *testing.T) {
	seq := seqWithLengths(10, 0.1, 0.1, 0.1, 0.1)
	sel := NewSelection()

	// Range works in either direction.
	sel.Set(seq, seq.Frames[2].ID)
	sel.AddRange(seq, seq.Frames[2].ID, seq.Frames[0].ID)
	if sel.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", sel.Len())
	}
	if sel.Contains(seq.Frames[3].ID) {
		t.Error("range should not include frame D")
	}
	checkSelectionSorted(t, sel, seq)
}

func TestSelectionTimeRange(t *testing.T) {
	seq := seqWithLengths(10, 0.5, 0.5, 0.5)
	sel := NewSelection()

	tests := []struct {
		name     string
		from, to float64
		want     int
	}{
		{"overlapping two frames", 0.4, 0.6, 2},
		{"inside one frame", 0.6, 0.7, 1},
		{"reversed bounds", 0.6, 0.4, 2},
		{"everything", -1, 99, 3},
		{"past the end", 2.0, 3.0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel.SelectTimeRange(seq, tt.from, tt.to)
			if sel.Len() != tt.want {
				t.Errorf("selected %d frames, want %d", sel.Len(), tt.want)
			}
			checkSelectionSorted(t, sel, seq)
		})
	}
}

func TestSelectionPurge(t *testing.T) {
	seq := seqWithLengths(10, 0.1, 0.2, 0.3)
	sel := NewSelection()
	sel.SelectAll(seq)

	gone := map[FrameID]bool{seq.Frames[1].ID: true}
	seq.DeleteFrames(gone)
	sel.Purge(gone)

	if sel.Len() != 2 {
		t.Fatalf("Len() = %d after purge, want 2", sel.Len())
	}
	if sel.Contains(seq.Frames[0].ID) == false || sel.Contains(seq.Frames[1].ID) == false {
		t.Error("purge removed surviving frames")
	}
	checkSelectionSorted(t, sel, seq)
}

func TestSelectionSortDropsMissing(t *testing.T) {
	seq := seqWithLengths(10, 0.1, 0.2)
	sel := NewSelection()
	sel.SelectAll(seq)

	// Deleting without purging still self-heals on the next sort.
	seq.DeleteFrames(map[FrameID]bool{seq.Frames[0].ID: true})
	sel.SortByTime(seq)
	if sel.Len() != 1 {
		t.Errorf("Len() = %d after sort, want 1", sel.Len())
	}
}
