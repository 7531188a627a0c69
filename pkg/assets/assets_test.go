package assets

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeTestPNG(t *testing.T, path string, w, h int) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

func setupLibrary(t *testing.T) *Library {
	t.Helper()

	dir := t.TempDir()
	writeTestPNG(t, filepath.Join(dir, "idle.png"), 16, 16)
	writeTestPNG(t, filepath.Join(dir, "jump_10.png"), 16, 32)
	writeTestPNG(t, filepath.Join(dir, "jump_2.png"), 16, 32)
	writeTestPNG(t, filepath.Join(dir, "walk", "walk_1.png"), 8, 8)
	writeTestPNG(t, filepath.Join(dir, "walk", "walk_2.png"), 8, 8)
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not an image"), 0644)

	lib := NewLibrary(dir)
	if err := lib.Scan(); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	return lib
}

func TestLibraryScan(t *testing.T) {
	lib := setupLibrary(t)

	assets := lib.Assets()
	if len(assets) != 3 {
		t.Fatalf("scanned %d standalone assets, want 3", len(assets))
	}
	// Natural order: idle, jump_2, jump_10.
	wantOrder := []string{"idle.png", "jump_2.png", "jump_10.png"}
	for i, want := range wantOrder {
		if assets[i].Name != want {
			t.Errorf("asset %d = %q, want %q", i, assets[i].Name, want)
		}
	}

	a, ok := lib.Get("jump_2.png")
	if !ok {
		t.Fatal("jump_2.png not found by ID")
	}
	if a.Width != 16 || a.Height != 32 {
		t.Errorf("dimensions = %dx%d, want 16x32", a.Width, a.Height)
	}
	if a.PivotX != 0.5 || a.PivotY != 0.5 {
		t.Errorf("pivot = %v,%v, want centered default", a.PivotX, a.PivotY)
	}

	cols := lib.Collections()
	if len(cols) != 1 || cols[0].Name != "walk" {
		t.Fatalf("collections = %v, want one named walk", cols)
	}
	if len(cols[0].Assets) != 2 {
		t.Errorf("walk collection has %d images, want 2", len(cols[0].Assets))
	}
	if _, ok := lib.Get("walk/walk_1.png"); !ok {
		t.Error("collection images should resolve by slash path")
	}
}

func TestLibraryPivotSidecar(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, filepath.Join(dir, "hero.png"), 10, 10)
	os.WriteFile(filepath.Join(dir, "hero.png.meta.yaml"), []byte("pivot_x: 0.25\npivot_y: 1.0\n"), 0644)

	lib := NewLibrary(dir)
	if err := lib.Scan(); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	a, ok := lib.Get("hero.png")
	if !ok {
		t.Fatal("hero.png not found")
	}
	if a.PivotX != 0.25 || a.PivotY != 1.0 {
		t.Errorf("pivot = %v,%v, want 0.25,1.0", a.PivotX, a.PivotY)
	}
}

func TestLibraryExpand(t *testing.T) {
	lib := setupLibrary(t)

	out := lib.Expand([]string{"walk", "idle.png", "ghost.png"})
	if len(out) != 3 {
		t.Fatalf("expanded to %d assets, want 3 (2 from the collection + 1)", len(out))
	}
	if out[0].Name != "walk_1.png" || out[1].Name != "walk_2.png" || out[2].Name != "idle.png" {
		t.Errorf("expanded order = %q %q %q", out[0].Name, out[1].Name, out[2].Name)
	}
}

func TestLibraryScanMissingDir(t *testing.T) {
	lib := NewLibrary(filepath.Join(t.TempDir(), "nope"))
	if err := lib.Scan(); err != nil {
		t.Errorf("scanning a missing directory should be empty, not an error: %v", err)
	}
	if len(lib.Assets()) != 0 {
		t.Error("missing directory should yield no assets")
	}
}

func TestRenderCache(t *testing.T) {
	calls := 0
	cache := NewRenderCache(func(a *Asset) (string, error) {
		calls++
		return "render:" + a.ID, nil
	})
	a := &Asset{ID: "x.png"}

	first, err := cache.Get(a)
	if err != nil || first != "render:x.png" {
		t.Fatalf("Get = %q, %v", first, err)
	}
	cache.Get(a)
	if calls != 1 {
		t.Errorf("render called %d times, want memoized 1", calls)
	}

	cache.InvalidateAll()
	if cache.Len() != 0 {
		t.Errorf("Len() = %d after InvalidateAll, want 0", cache.Len())
	}
	cache.Get(a)
	if calls != 2 {
		t.Errorf("render called %d times after invalidation, want 2", calls)
	}
}

func TestRenderPreview(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sprite.png")
	writeTestPNG(t, path, 8, 8)

	out, err := RenderPreview(path, 8, 4)
	if err != nil {
		t.Fatalf("RenderPreview failed: %v", err)
	}
	if out == "" {
		t.Error("preview is empty")
	}

	if _, err := RenderPreview(path, 0, 4); err == nil {
		t.Error("zero-width preview should fail")
	}
	if _, err := RenderPreview(filepath.Join(dir, "missing.png"), 4, 4); err == nil {
		t.Error("missing file should fail")
	}
}

func TestWatcherLifecycle(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}
