package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/spriteline/spriteline-cli/pkg/models"
	"github.com/spriteline/spriteline-cli/pkg/utils"
)

const (
	SpritelineDir = ".spriteline"
	ClipsDir      = "clips"
	AssetsDir     = "assets"
	SettingsFile  = "settings.yaml"
)

func InitProjectStructure() error {
	dirs := []string{
		SpritelineDir,
		filepath.Join(SpritelineDir, ClipsDir),
		filepath.Join(SpritelineDir, AssetsDir),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	settingsPath := filepath.Join(SpritelineDir, SettingsFile)
	if _, err := os.Stat(settingsPath); os.IsNotExist(err) {
		if err := WriteSettings(models.DefaultSettings()); err != nil {
			return err
		}
	}

	return nil
}

// AssetsPath returns the project's asset directory.
func AssetsPath() string {
	return filepath.Join(SpritelineDir, AssetsDir)
}

// ClipPath returns the project-relative path of a clip file.
func ClipPath(name string) string {
	return filepath.Join(SpritelineDir, ClipsDir, name)
}

func ReadClip(path string) (*models.Clip, error) {
	absPath := filepath.Join(SpritelineDir, ClipsDir, path)

	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read clip %s: %w", path, err)
	}

	var clip models.Clip
	if err := yaml.Unmarshal(content, &clip); err != nil {
		return nil, fmt.Errorf("failed to parse clip YAML %s: %w", path, err)
	}

	clip.Path = path
	if clip.Name == "" {
		clip.Name = strings.TrimSuffix(path, ".yaml")
	}
	if info, err := os.Stat(absPath); err == nil {
		clip.Modified = info.ModTime()
	}

	return &clip, nil
}

func WriteClip(clip *models.Clip) error {
	if clip.Path == "" {
		clip.Path = fmt.Sprintf("%s.yaml", clip.Name)
	}

	absPath := filepath.Join(SpritelineDir, ClipsDir, clip.Path)

	dir := filepath.Dir(absPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory for clip: %w", err)
	}

	content, err := yaml.Marshal(clip)
	if err != nil {
		return fmt.Errorf("failed to marshal clip to YAML: %w", err)
	}

	if err := os.WriteFile(absPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write clip %s: %w", clip.Path, err)
	}

	return nil
}

// ListClips returns the clip file names in the project, natural-sorted.
func ListClips() ([]string, error) {
	clipsPath := filepath.Join(SpritelineDir, ClipsDir)

	entries, err := os.ReadDir(clipsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list clips: %w", err)
	}

	var clips []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".yaml") {
			clips = append(clips, entry.Name())
		}
	}
	sort.SliceStable(clips, func(i, j int) bool {
		return utils.NaturalLess(clips[i], clips[j])
	})

	return clips, nil
}

func DeleteClip(path string) error {
	absPath := filepath.Join(SpritelineDir, ClipsDir, path)
	if err := os.Remove(absPath); err != nil {
		return fmt.Errorf("failed to delete clip %s: %w", path, err)
	}
	return nil
}

func RenameClip(oldPath, newName string) (string, error) {
	clip, err := ReadClip(oldPath)
	if err != nil {
		return "", err
	}

	newPath := fmt.Sprintf("%s.yaml", newName)
	absNew := filepath.Join(SpritelineDir, ClipsDir, newPath)
	if _, err := os.Stat(absNew); err == nil {
		return "", fmt.Errorf("a clip named %s already exists", newName)
	}

	clip.Name = newName
	clip.Path = newPath
	if err := WriteClip(clip); err != nil {
		return "", err
	}
	if err := os.Remove(filepath.Join(SpritelineDir, ClipsDir, oldPath)); err != nil {
		return "", fmt.Errorf("failed to remove old clip %s: %w", oldPath, err)
	}

	return newPath, nil
}

func ReadSettings() (*models.Settings, error) {
	settingsPath := filepath.Join(SpritelineDir, SettingsFile)

	content, err := os.ReadFile(settingsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.DefaultSettings(), nil
		}
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	settings := models.DefaultSettings()
	if err := yaml.Unmarshal(content, settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings YAML: %w", err)
	}

	return settings, nil
}

func WriteSettings(settings *models.Settings) error {
	content, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings to YAML: %w", err)
	}

	settingsPath := filepath.Join(SpritelineDir, SettingsFile)
	if err := os.WriteFile(settingsPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}

	return nil
}
