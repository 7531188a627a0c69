// Package export renders clips to shareable image formats.
package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/spriteline/spriteline-cli/pkg/assets"
	"github.com/spriteline/spriteline-cli/pkg/files"
)

// Format selects an output renderer.
type Format string

const (
	FormatGIF   Format = "gif"
	FormatSheet Format = "sheet"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatGIF:
		return FormatGIF, nil
	case FormatSheet:
		return FormatSheet, nil
	default:
		return "", fmt.Errorf("unknown export format %q (expected gif or sheet)", s)
	}
}

// OutputName returns the file name a clip file exports to for a format.
func OutputName(clipPath string, format Format) string {
	base := strings.TrimSuffix(clipPath, ".yaml")
	switch format {
	case FormatSheet:
		return base + ".png"
	default:
		return base + ".gif"
	}
}

// Clip exports a single clip file into outDir.
func Clip(clipPath string, format Format, lib *assets.Library, outDir string, columns int) (string, error) {
	clip, err := files.ReadClip(clipPath)
	if err != nil {
		return "", err
	}
	out := filepath.Join(outDir, OutputName(clipPath, format))
	switch format {
	case FormatSheet:
		err = WriteSheet(out, clip.Track, lib, columns)
	default:
		err = WriteGIF(out, clip.Track, lib)
	}
	if err != nil {
		return "", err
	}
	return out, nil
}

// All exports every clip in the project concurrently. The first failure
// cancels nothing already in flight but is reported; successfully written
// paths are returned in clip order.
func All(format Format, lib *assets.Library, outDir string, columns int) ([]string, error) {
	names, err := files.ListClips()
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no clips to export")
	}

	paths := make([]string, len(names))
	var g errgroup.Group
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			out, err := Clip(name, format, lib, outDir, columns)
			if err != nil {
				return fmt.Errorf("failed to export %s: %w", name, err)
			}
			paths[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}
