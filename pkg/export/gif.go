package export

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"

	"github.com/spriteline/spriteline-cli/pkg/assets"
	"github.com/spriteline/spriteline-cli/pkg/models"
	"github.com/spriteline/spriteline-cli/pkg/timeline"
)

// canvas describes the shared drawing area for a clip: every sprite is
// placed with its pivot on the common anchor, and the canvas is sized so
// no sprite is clipped.
type canvas struct {
	w, h             int
	anchorX, anchorY float64
}

// layoutCanvas sizes the canvas for every sprite referenced by the frames.
func layoutCanvas(frames []*timeline.Frame, lib *assets.Library) (canvas, error) {
	var left, right, top, bottom float64
	seen := 0
	for _, f := range frames {
		if f.Sprite == "" {
			continue
		}
		a, ok := lib.Get(f.Sprite)
		if !ok {
			return canvas{}, fmt.Errorf("unknown sprite %q", f.Sprite)
		}
		seen++
		left = math.Max(left, a.PivotX*float64(a.Width))
		right = math.Max(right, (1-a.PivotX)*float64(a.Width))
		top = math.Max(top, a.PivotY*float64(a.Height))
		bottom = math.Max(bottom, (1-a.PivotY)*float64(a.Height))
	}
	if seen == 0 {
		return canvas{}, fmt.Errorf("clip references no sprites")
	}
	return canvas{
		w:       int(math.Ceil(left + right)),
		h:       int(math.Ceil(top + bottom)),
		anchorX: left,
		anchorY: top,
	}, nil
}

// drawFrame renders one frame's sprite onto a fresh RGBA canvas.
func drawFrame(cv canvas, f *timeline.Frame, lib *assets.Library) (*image.RGBA, error) {
	dst := image.NewRGBA(image.Rect(0, 0, cv.w, cv.h))
	if f.Sprite == "" {
		return dst, nil
	}
	a, ok := lib.Get(f.Sprite)
	if !ok {
		return nil, fmt.Errorf("unknown sprite %q", f.Sprite)
	}
	src, err := loadImage(a.Path)
	if err != nil {
		return nil, err
	}
	x := int(math.Round(cv.anchorX - a.PivotX*float64(a.Width)))
	y := int(math.Round(cv.anchorY - a.PivotY*float64(a.Height)))
	r := image.Rect(x, y, x+a.Width, y+a.Height)
	draw.Draw(dst, r, src, src.Bounds().Min, draw.Over)
	return dst, nil
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sprite %s: %w", path, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode sprite %s: %w", path, err)
	}
	return img, nil
}

// GIF renders a clip track as an animated GIF. Per-frame delays are the
// frame lengths in centiseconds, floored at one; the track's loop flag
// maps to an infinite GIF loop.
func GIF(track models.KeyframeTrack, lib *assets.Library) (*gif.GIF, error) {
	seq := timeline.SequenceFromTrack(track)
	if seq.Len() == 0 {
		return nil, fmt.Errorf("clip has no frames")
	}
	cv, err := layoutCanvas(seq.Frames, lib)
	if err != nil {
		return nil, err
	}

	out := &gif.GIF{LoopCount: -1}
	if track.Loop {
		out.LoopCount = 0
	}
	for _, f := range seq.Frames {
		rgba, err := drawFrame(cv, f, lib)
		if err != nil {
			return nil, err
		}
		paletted := image.NewPaletted(rgba.Bounds(), palette.Plan9)
		draw.FloydSteinberg.Draw(paletted, rgba.Bounds(), rgba, image.Point{})

		delay := int(math.Round(f.Length * 100))
		if delay < 1 {
			delay = 1
		}
		out.Image = append(out.Image, paletted)
		out.Delay = append(out.Delay, delay)
	}
	return out, nil
}

// WriteGIF renders a clip track and writes the result.
func WriteGIF(path string, track models.KeyframeTrack, lib *assets.Library) error {
	g, err := GIF(track, lib)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	if err := gif.EncodeAll(f, g); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}
