package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spriteline/spriteline-cli/pkg/files"
	"github.com/spriteline/spriteline-cli/pkg/models"
)

// CommandContext manages project validation and common command context
type CommandContext struct {
	ProjectPath string
	Settings    *models.Settings
	validated   bool
}

// NewCommandContext creates a new command context
func NewCommandContext() (*CommandContext, error) {
	return &CommandContext{
		ProjectPath: files.SpritelineDir,
	}, nil
}

// ValidateProject ensures the project is initialized
func (c *CommandContext) ValidateProject() error {
	if c.validated {
		return nil
	}

	if _, err := os.Stat(c.ProjectPath); os.IsNotExist(err) {
		return fmt.Errorf("no .spriteline directory found. Run 'spriteline init' first")
	}

	c.validated = true
	return nil
}

// LoadSettingsWithDefault loads settings or returns default if error
func (c *CommandContext) LoadSettingsWithDefault() *models.Settings {
	if c.Settings != nil {
		return c.Settings
	}

	settings, err := files.ReadSettings()
	if err != nil {
		// Use default settings if can't read
		settings = models.DefaultSettings()
	}

	c.Settings = settings
	return settings
}

// ClipResolver finds clip files from user-supplied names
type ClipResolver struct {
	ProjectPath string
}

// NewClipResolver creates a new clip resolver
func NewClipResolver(projectPath string) *ClipResolver {
	return &ClipResolver{ProjectPath: projectPath}
}

// Resolve returns the clip file name for a reference, accepting names
// with or without the .yaml extension.
func (r *ClipResolver) Resolve(ref string) (string, error) {
	candidates := []string{ref}
	if !strings.HasSuffix(ref, ".yaml") {
		candidates = []string{ref + ".yaml", ref}
	}

	for _, name := range candidates {
		path := filepath.Join(r.ProjectPath, files.ClipsDir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return name, nil
		}
	}

	return "", fmt.Errorf("clip '%s' not found", strings.TrimSuffix(ref, ".yaml"))
}
