package assets

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/spriteline/spriteline-cli/pkg/utils"
)

// Asset is one image resource usable as a frame sprite. ID is the
// slash-separated path relative to the asset directory, which is also what
// clip tracks persist, so handles stay stable across sessions.
type Asset struct {
	ID     string
	Name   string
	Path   string // absolute or project-relative file path
	Width  int
	Height int
	PivotX float64 // relative pivot in [0,1], defaults to center
	PivotY float64
}

// assetMeta is the optional "<image>.meta.yaml" sidecar carrying a pivot
// override.
type assetMeta struct {
	PivotX *float64 `yaml:"pivot_x"`
	PivotY *float64 `yaml:"pivot_y"`
}

// Collection groups the images of one subdirectory so a whole numbered
// set can be dropped onto the timeline at once.
type Collection struct {
	Name   string
	Assets []*Asset
}

// Library scans a directory for sprite images and hands out asset handles.
type Library struct {
	dir         string
	byID        map[string]*Asset
	assets      []*Asset
	collections []Collection
}

// NewLibrary creates a library over a directory; call Scan to populate it.
func NewLibrary(dir string) *Library {
	return &Library{dir: dir, byID: make(map[string]*Asset)}
}

// Dir returns the scanned directory.
func (l *Library) Dir() string {
	return l.dir
}

// Scan rebuilds the library from disk: images directly under the asset
// directory stand alone, one level of subdirectories become collections.
func (l *Library) Scan() error {
	l.byID = make(map[string]*Asset)
	l.assets = nil
	l.collections = nil

	entries, err := os.ReadDir(l.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to scan asset directory %s: %w", l.dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			col, err := l.scanCollection(entry.Name())
			if err != nil {
				return err
			}
			if len(col.Assets) > 0 {
				l.collections = append(l.collections, col)
			}
			continue
		}
		if !isImage(entry.Name()) {
			continue
		}
		a, err := l.loadAsset(entry.Name())
		if err != nil {
			return err
		}
		l.assets = append(l.assets, a)
	}

	sort.SliceStable(l.assets, func(i, j int) bool {
		return utils.NaturalLess(l.assets[i].Name, l.assets[j].Name)
	})
	sort.SliceStable(l.collections, func(i, j int) bool {
		return utils.NaturalLess(l.collections[i].Name, l.collections[j].Name)
	})
	return nil
}

func (l *Library) scanCollection(name string) (Collection, error) {
	col := Collection{Name: name}
	entries, err := os.ReadDir(filepath.Join(l.dir, name))
	if err != nil {
		return col, fmt.Errorf("failed to scan collection %s: %w", name, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !isImage(entry.Name()) {
			continue
		}
		a, err := l.loadAsset(filepath.Join(name, entry.Name()))
		if err != nil {
			return col, err
		}
		col.Assets = append(col.Assets, a)
	}
	sort.SliceStable(col.Assets, func(i, j int) bool {
		return utils.NaturalLess(col.Assets[i].Name, col.Assets[j].Name)
	})
	return col, nil
}

func (l *Library) loadAsset(rel string) (*Asset, error) {
	path := filepath.Join(l.dir, rel)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open asset %s: %w", rel, err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode asset %s: %w", rel, err)
	}

	a := &Asset{
		ID:     filepath.ToSlash(rel),
		Name:   filepath.Base(rel),
		Path:   path,
		Width:  cfg.Width,
		Height: cfg.Height,
		PivotX: 0.5,
		PivotY: 0.5,
	}
	applyMeta(a)
	l.byID[a.ID] = a
	return a, nil
}

// applyMeta merges the pivot sidecar if one exists; a missing or broken
// sidecar leaves the default center pivot.
func applyMeta(a *Asset) {
	content, err := os.ReadFile(a.Path + ".meta.yaml")
	if err != nil {
		return
	}
	var meta assetMeta
	if err := yaml.Unmarshal(content, &meta); err != nil {
		return
	}
	if meta.PivotX != nil {
		a.PivotX = *meta.PivotX
	}
	if meta.PivotY != nil {
		a.PivotY = *meta.PivotY
	}
}

// Get resolves an asset handle.
func (l *Library) Get(id string) (*Asset, bool) {
	a, ok := l.byID[id]
	return a, ok
}

// Assets returns the standalone images in natural order.
func (l *Library) Assets() []*Asset {
	return l.assets
}

// Collections returns the image sets in natural order.
func (l *Library) Collections() []Collection {
	return l.collections
}

// Expand flattens a mixed list of asset and collection names into assets:
// a collection name expands to its images, anything else resolves as an
// asset ID. Unknown names are skipped.
func (l *Library) Expand(names []string) []*Asset {
	var out []*Asset
	for _, name := range names {
		if col, ok := l.collection(name); ok {
			out = append(out, col.Assets...)
			continue
		}
		if a, ok := l.byID[name]; ok {
			out = append(out, a)
		}
	}
	return out
}

func (l *Library) collection(name string) (Collection, bool) {
	for _, c := range l.collections {
		if c.Name == name {
			return c, true
		}
	}
	return Collection{}, false
}

func isImage(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg", ".gif":
		return true
	}
	return false
}
