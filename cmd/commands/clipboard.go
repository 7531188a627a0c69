package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/spriteline/spriteline-cli/internal/cli"
	"github.com/spriteline/spriteline-cli/pkg/files"
	"github.com/spriteline/spriteline-cli/pkg/timeline"
)

var (
	clipboardFormat string
)

// NewClipboardCommand creates the clipboard command
func NewClipboardCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clipboard <clip>",
		Short: "Copy a clip to the system clipboard",
		Long: `Copy a clip's content to the system clipboard.

Formats:
  yaml     - The clip's keyframe track as YAML (default)
  sprites  - The frame sprite names, one per line

Examples:
  # Copy a clip's YAML for pasting into another project
  spriteline clipboard walk

  # Copy just the sprite order
  spriteline clipboard walk --format sprites`,
		Args:    cobra.ExactArgs(1),
		Aliases: []string{"clip", "copy"},
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(files.SpritelineDir); os.IsNotExist(err) {
				return fmt.Errorf("no .spriteline directory found. Run 'spriteline init' first")
			}
			return nil
		},
		RunE: runClipboard,
	}

	cmd.Flags().StringVar(&clipboardFormat, "format", "yaml", "Clipboard content format (yaml, sprites)")

	return cmd
}

func runClipboard(cmd *cobra.Command, args []string) error {
	resolver := cli.NewClipResolver(files.SpritelineDir)
	name, err := resolver.Resolve(args[0])
	if err != nil {
		return err
	}

	clip, err := files.ReadClip(name)
	if err != nil {
		return fmt.Errorf("failed to load clip: %w", err)
	}

	var content string
	switch clipboardFormat {
	case "yaml":
		data, err := yaml.Marshal(clip.Track)
		if err != nil {
			return fmt.Errorf("failed to marshal clip: %w", err)
		}
		content = string(data)
	case "sprites":
		seq := timeline.SequenceFromTrack(clip.Track)
		var lines []string
		for _, f := range seq.Frames {
			lines = append(lines, f.Sprite)
		}
		content = strings.Join(lines, "\n")
	default:
		return fmt.Errorf("invalid format %q (expected yaml or sprites)", clipboardFormat)
	}

	if err := clipboard.WriteAll(content); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}

	cli.PrintSuccess("Clip '%s' copied to clipboard", clip.Name)

	// Show a preview of what was copied
	lines := strings.Split(content, "\n")
	preview := lines[0]
	if len(lines) > 1 {
		preview += " ..."
	}
	if len(preview) > 80 {
		preview = preview[:77] + "..."
	}
	cli.PrintInfo("Preview: %s", preview)

	return nil
}
