package timeline

import (
	"strconv"
	"strings"
)

// Ruler cell thresholds in pixels: cells are kept between the minimum and
// maximum width by walking the subdivision levels, and a tick only carries
// a time label when its level's cell is at least labelCellWidth wide.
const (
	minCellWidth   = 10.0
	maxCellWidth   = 80.0
	labelCellWidth = 60.0
)

// maxRulerLevels caps the level-of-detail table handed to the renderer.
const maxRulerLevels = 8

// RulerLevel is one level of detail of the ruler.
type RulerLevel struct {
	Unit    float64 // seconds per cell at this level
	Every   int     // base-level cells per cell of this level
	Width   float64 // cell width in pixels
	Labeled bool    // wide enough to carry time labels
}

// Ruler is the level-of-detail table computed for one zoom level.
// Levels[0] is the finest level actually drawn; coarser levels follow.
type Ruler struct {
	Levels []RulerLevel
}

// Tick is one tick mark to draw. Level indexes Ruler.Levels, so taller
// marks belong to coarser levels; Label is empty for unlabeled ticks.
type Tick struct {
	X     float64
	Time  float64
	Level int
	Label string
}

// subdivisionFactors factors the sample rate into the chain of small
// divisors that defines the ruler's subdivision levels: 3 first for a rate
// of 30, otherwise 2, 5 then 3 in that order while evenly divisible. Once
// no divisor applies, coarser levels repeat the fixed cycle {5,2,3,2,...}.
func subdivisionFactors(sampleRate int) []int {
	rate := sampleRate
	var factors []int
	for rate > 1 {
		var d int
		switch {
		case rate == 30:
			d = 3
		case rate%2 == 0:
			d = 2
		case rate%5 == 0:
			d = 5
		case rate%3 == 0:
			d = 3
		}
		if d == 0 {
			break
		}
		factors = append(factors, d)
		rate /= d
	}
	return append(factors, 5, 2, 3, 2, 5, 2, 3, 2)
}

// BuildRuler computes the ruler for a sample rate and zoom level. The base
// level starts at one-sample granularity and walks coarser while its cell
// is narrower than the minimum, then finer while wider than the maximum,
// never finer than one sample.
func BuildRuler(sampleRate int, pixelsPerSecond float64) Ruler {
	if sampleRate < 1 {
		sampleRate = 1
	}
	factors := subdivisionFactors(sampleRate)

	units := make([]float64, 0, len(factors)+1)
	unit := 1.0 / float64(sampleRate)
	units = append(units, unit)
	for _, d := range factors {
		unit *= float64(d)
		units = append(units, unit)
	}

	base := 0
	for base+1 < len(units) && units[base]*pixelsPerSecond < minCellWidth {
		base++
	}
	for base > 0 && units[base]*pixelsPerSecond > maxCellWidth {
		base--
	}

	var levels []RulerLevel
	every := 1
	for i := base; i < len(units) && len(levels) < maxRulerLevels; i++ {
		if i > base {
			every *= factors[i-1]
		}
		width := units[i] * pixelsPerSecond
		levels = append(levels, RulerLevel{
			Unit:    units[i],
			Every:   every,
			Width:   width,
			Labeled: width >= labelCellWidth,
		})
	}
	return Ruler{Levels: levels}
}

// Ticks lists every visible tick of the base level, tagging each with the
// coarsest level whose cell boundary it falls on.
func (r Ruler) Ticks(v *Viewport, totalLength float64) []Tick {
	if len(r.Levels) == 0 || v.Width <= 0 {
		return nil
	}
	unit := r.Levels[0].Unit

	first := int(v.PixelToTime(0) / unit)
	if first < 0 {
		first = 0
	}

	var ticks []Tick
	for i := first; ; i++ {
		t := float64(i) * unit
		if t > totalLength+timeEpsilon {
			break
		}
		x := v.TimeToPixel(t)
		if x < 0 {
			continue
		}
		if x > v.Width {
			break
		}
		level := 0
		for l := len(r.Levels) - 1; l > 0; l-- {
			if i%r.Levels[l].Every == 0 {
				level = l
				break
			}
		}
		tick := Tick{X: x, Time: t, Level: level}
		if r.Levels[level].Labeled {
			tick.Label = FormatTime(t)
		}
		ticks = append(ticks, tick)
	}
	return ticks
}

// FormatTime renders a ruler or HUD time label, trimming trailing zeros.
func FormatTime(t float64) string {
	s := strconv.FormatFloat(t, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s + "s"
}
