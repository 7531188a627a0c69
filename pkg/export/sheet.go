package export

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"math"
	"os"

	"github.com/spriteline/spriteline-cli/pkg/assets"
	"github.com/spriteline/spriteline-cli/pkg/models"
	"github.com/spriteline/spriteline-cli/pkg/timeline"
)

// ContactSheet lays the clip's frames out on a grid, one tile per frame
// in timeline order. Columns of zero picks a near-square grid.
func ContactSheet(track models.KeyframeTrack, lib *assets.Library, columns int) (image.Image, error) {
	seq := timeline.SequenceFromTrack(track)
	n := seq.Len()
	if n == 0 {
		return nil, fmt.Errorf("clip has no frames")
	}
	cv, err := layoutCanvas(seq.Frames, lib)
	if err != nil {
		return nil, err
	}
	if columns <= 0 {
		columns = int(math.Ceil(math.Sqrt(float64(n))))
	}
	rows := (n + columns - 1) / columns

	sheet := image.NewRGBA(image.Rect(0, 0, columns*cv.w, rows*cv.h))
	for i, f := range seq.Frames {
		tile, err := drawFrame(cv, f, lib)
		if err != nil {
			return nil, err
		}
		x := (i % columns) * cv.w
		y := (i / columns) * cv.h
		r := image.Rect(x, y, x+cv.w, y+cv.h)
		draw.Draw(sheet, r, tile, image.Point{}, draw.Src)
	}
	return sheet, nil
}

// WriteSheet renders a contact sheet and writes it as PNG.
func WriteSheet(path string, track models.KeyframeTrack, lib *assets.Library, columns int) error {
	img, err := ContactSheet(track, lib, columns)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}
