package export

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/spriteline/spriteline-cli/pkg/assets"
	"github.com/spriteline/spriteline-cli/pkg/files"
	"github.com/spriteline/spriteline-cli/pkg/models"
)

func setupProject(t *testing.T) {
	t.Helper()
	tmpDir := t.TempDir()
	oldWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}
	t.Cleanup(func() {
		os.Chdir(oldWd)
	})
	if err := files.InitProjectStructure(); err != nil {
		t.Fatalf("failed to init project: %v", err)
	}
}

func writeSprite(t *testing.T, name string, w, h int, c color.Color) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	path := filepath.Join(files.AssetsPath(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create sprite %s: %v", name, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode sprite %s: %v", name, err)
	}
}

func testLibrary(t *testing.T) *assets.Library {
	t.Helper()
	writeSprite(t, "red.png", 8, 8, color.RGBA{R: 255, A: 255})
	writeSprite(t, "blue.png", 16, 4, color.RGBA{B: 255, A: 255})
	lib := assets.NewLibrary(files.AssetsPath())
	if err := lib.Scan(); err != nil {
		t.Fatalf("failed to scan assets: %v", err)
	}
	return lib
}

func testTrack(loop bool) models.KeyframeTrack {
	return models.KeyframeTrack{
		SampleRate: 10,
		Loop:       loop,
		Keys: []models.Keyframe{
			{Time: 0, Image: "red.png"},
			{Time: 0.5, Image: "blue.png"},
			{Time: 0.8, Image: "blue.png"},
		},
	}
}

func TestGIFFramesAndDelays(t *testing.T) {
	setupProject(t)
	lib := testLibrary(t)

	g, err := GIF(testTrack(true), lib)
	if err != nil {
		t.Fatalf("GIF failed: %v", err)
	}
	if len(g.Image) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(g.Image))
	}
	// 0.5s and 0.3s in centiseconds
	wantDelays := []int{50, 30}
	for i, want := range wantDelays {
		if g.Delay[i] != want {
			t.Errorf("frame %d: expected delay %d, got %d", i, want, g.Delay[i])
		}
	}
	if g.LoopCount != 0 {
		t.Errorf("expected looping GIF, got LoopCount %d", g.LoopCount)
	}

	// both sprites are pivot-centered, so the canvas spans the widest
	// and tallest of them
	b := g.Image[0].Bounds()
	if b.Dx() != 16 || b.Dy() != 8 {
		t.Errorf("expected 16x8 canvas, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestGIFNoLoop(t *testing.T) {
	setupProject(t)
	lib := testLibrary(t)

	g, err := GIF(testTrack(false), lib)
	if err != nil {
		t.Fatalf("GIF failed: %v", err)
	}
	if g.LoopCount != -1 {
		t.Errorf("expected play-once GIF, got LoopCount %d", g.LoopCount)
	}
}

func TestGIFUnknownSprite(t *testing.T) {
	setupProject(t)
	lib := testLibrary(t)

	track := models.KeyframeTrack{
		SampleRate: 10,
		Keys: []models.Keyframe{
			{Time: 0, Image: "missing.png"},
			{Time: 0.5, Image: "missing.png"},
		},
	}
	if _, err := GIF(track, lib); err == nil {
		t.Error("expected error for unknown sprite")
	}
}

func TestContactSheetGrid(t *testing.T) {
	setupProject(t)
	lib := testLibrary(t)

	img, err := ContactSheet(testTrack(false), lib, 2)
	if err != nil {
		t.Fatalf("ContactSheet failed: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 32 || b.Dy() != 8 {
		t.Errorf("expected 32x8 sheet for 2 frames in 2 columns, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestContactSheetAutoColumns(t *testing.T) {
	setupProject(t)
	lib := testLibrary(t)

	// 2 frames, auto columns picks ceil(sqrt(2)) = 2
	img, err := ContactSheet(testTrack(false), lib, 0)
	if err != nil {
		t.Fatalf("ContactSheet failed: %v", err)
	}
	if img.Bounds().Dx() != 32 {
		t.Errorf("expected 2-column sheet, got width %d", img.Bounds().Dx())
	}
}

func TestExportAll(t *testing.T) {
	setupProject(t)
	lib := testLibrary(t)

	for _, name := range []string{"walk", "run"} {
		clip := &models.Clip{Name: name, Track: testTrack(true)}
		if err := files.WriteClip(clip); err != nil {
			t.Fatalf("failed to write clip %s: %v", name, err)
		}
	}
	outDir := t.TempDir()

	paths, err := All(FormatGIF, lib, outDir, 0)
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 exports, got %d", len(paths))
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("expected exported file %s: %v", p, err)
		}
	}
}

func TestExportAllNoClips(t *testing.T) {
	setupProject(t)
	lib := testLibrary(t)

	if _, err := All(FormatGIF, lib, t.TempDir(), 0); err == nil {
		t.Error("expected error when project has no clips")
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"gif", FormatGIF, false},
		{"GIF", FormatGIF, false},
		{"sheet", FormatSheet, false},
		{"webm", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseFormat(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFormat(%q): unexpected error %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
