package timeline

import (
	"math"
	"sort"

	"github.com/spriteline/spriteline-cli/pkg/utils"
)

// DropMode selects what a drop does with the incoming images.
type DropMode int

const (
	// DropInsert splices the images in as new frames.
	DropInsert DropMode = iota
	// DropReplace overwrites sprites in place, appending any overflow.
	DropReplace
)

// DropImage is one incoming image resource, flattened out of whatever
// collection it arrived in. Name decides the natural sort order.
type DropImage struct {
	Name   string
	Sprite string
}

// InsertIndexAt returns the index in [0, len] whose frame boundary is
// time-nearest to the timeline pixel x. Boundaries are scanned in order
// and the scan stops at the first boundary that is no nearer to the cursor
// than the previous one, then backs up a step; ties go to the earlier
// boundary.
func InsertIndexAt(seq *Sequence, v *Viewport, x float64) int {
	t := v.PixelToTime(x)
	prev := math.Inf(1)
	for i := 0; i <= len(seq.Frames); i++ {
		boundary := seq.TotalLength()
		if i < len(seq.Frames) {
			boundary = seq.Frames[i].Time
		}
		d := math.Abs(t - boundary)
		if d >= prev {
			return i - 1
		}
		prev = d
	}
	return len(seq.Frames)
}

// ReplaceIndexAt returns the index of the frame whose interval contains
// the timeline pixel x, or len when the cursor is past the end.
func ReplaceIndexAt(seq *Sequence, v *Viewport, x float64) int {
	t := v.PixelToTime(x)
	if t < 0 {
		return 0
	}
	for i, f := range seq.Frames {
		if t < f.EndTime() {
			return i
		}
	}
	return len(seq.Frames)
}

// DropPlan is the resolved outcome of a drop gesture: where the images go
// and whether they insert or replace.
type DropPlan struct {
	Mode    DropMode
	Index   int
	Sprites []string
}

// PlanDrop natural-sorts the incoming images and resolves the target index
// from the drop position. A replace drop targets the frame under the
// cursor; an insert drop targets the nearest frame boundary.
func PlanDrop(seq *Sequence, v *Viewport, x float64, images []DropImage, mode DropMode) DropPlan {
	sorted := append([]DropImage(nil), images...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return utils.NaturalLess(sorted[i].Name, sorted[j].Name)
	})

	sprites := make([]string, len(sorted))
	for i, img := range sorted {
		sprites[i] = img.Sprite
	}

	index := InsertIndexAt(seq, v, x)
	if mode == DropReplace {
		index = ReplaceIndexAt(seq, v, x)
	}
	return DropPlan{Mode: mode, Index: index, Sprites: sprites}
}
