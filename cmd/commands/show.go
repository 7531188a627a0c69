package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spriteline/spriteline-cli/internal/cli"
	"github.com/spriteline/spriteline-cli/pkg/files"
	"github.com/spriteline/spriteline-cli/pkg/timeline"
)

// ShowResult represents the output structure for show command
type ShowResult struct {
	Name       string      `json:"name" yaml:"name"`
	SampleRate int         `json:"sample_rate" yaml:"sample_rate"`
	Loop       bool        `json:"loop" yaml:"loop"`
	Duration   float64     `json:"duration" yaml:"duration"`
	Frames     []ShowFrame `json:"frames" yaml:"frames"`
}

// ShowFrame is a single frame row in the show output
type ShowFrame struct {
	Index  int     `json:"index" yaml:"index"`
	Sprite string  `json:"sprite" yaml:"sprite"`
	Start  float64 `json:"start" yaml:"start"`
	Length float64 `json:"length" yaml:"length"`
}

// NewShowCommand creates the show command
func NewShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <clip>",
		Short: "Show a clip's frames",
		Long: `Show the frame timeline of a clip.

Examples:
  # Show a clip
  spriteline show walk

  # Show with JSON output
  spriteline show walk -o json`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(files.SpritelineDir); os.IsNotExist(err) {
				return fmt.Errorf("no .spriteline directory found. Run 'spriteline init' first")
			}
			return nil
		},
		RunE: runShow,
	}

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	outputFormat, _ := cmd.Flags().GetString("output")

	resolver := cli.NewClipResolver(files.SpritelineDir)
	name, err := resolver.Resolve(args[0])
	if err != nil {
		return err
	}

	clip, err := files.ReadClip(name)
	if err != nil {
		return fmt.Errorf("failed to load clip: %w", err)
	}

	seq := timeline.SequenceFromTrack(clip.Track)
	result := ShowResult{
		Name:       clip.Name,
		SampleRate: seq.SampleRate,
		Loop:       clip.Track.Loop,
		Duration:   seq.TotalLength(),
	}
	for i, f := range seq.Frames {
		result.Frames = append(result.Frames, ShowFrame{
			Index:  i,
			Sprite: f.Sprite,
			Start:  f.Time,
			Length: f.Length,
		})
	}

	switch outputFormat {
	case "json", "yaml":
		return cli.OutputResults(cmd.OutOrStdout(), outputFormat, result)
	default:
		return outputShowText(cmd, result)
	}
}

func outputShowText(cmd *cobra.Command, result ShowResult) error {
	loop := "no"
	if result.Loop {
		loop = "yes"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n%s  (%d fps, %s, loop: %s)\n",
		result.Name, result.SampleRate, cli.FormatSeconds(result.Duration), loop)
	fmt.Fprintln(cmd.OutOrStdout(), strings.Repeat("-", 80))

	table := cli.NewTableFormatter(cmd.OutOrStdout())
	table.Header("#", "Sprite", "Start", "Length")
	for _, f := range result.Frames {
		sprite := f.Sprite
		if sprite == "" {
			sprite = "(empty)"
		}
		table.Row(
			fmt.Sprintf("%d", f.Index),
			cli.TruncateString(sprite, 48),
			cli.FormatSeconds(f.Start),
			cli.FormatSeconds(f.Length),
		)
	}
	table.Flush()

	return nil
}
