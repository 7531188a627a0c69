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

// ListResult represents the output structure for list command
type ListResult struct {
	Items []ListItem `json:"items" yaml:"items"`
	Count int        `json:"count" yaml:"count"`
}

// ListItem represents a single clip in the list
type ListItem struct {
	Name       string  `json:"name" yaml:"name"`
	Filename   string  `json:"filename" yaml:"filename"`
	Frames     int     `json:"frames" yaml:"frames"`
	Duration   float64 `json:"duration" yaml:"duration"`
	SampleRate int     `json:"sample_rate" yaml:"sample_rate"`
	Loop       bool    `json:"loop" yaml:"loop"`
	Path       string  `json:"path,omitempty" yaml:"path,omitempty"`
}

var (
	listShowPaths bool
)

// NewListCommand creates the list command
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List clips in the project",
		Long: `List all animation clips in the current project.

Examples:
  # List all clips
  spriteline list

  # List clips with JSON output
  spriteline list -o json

  # Show file paths
  spriteline list --paths`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(files.SpritelineDir); os.IsNotExist(err) {
				return fmt.Errorf("no .spriteline directory found. Run 'spriteline init' first")
			}
			return nil
		},
		RunE: runList,
	}

	cmd.Flags().BoolVar(&listShowPaths, "paths", false, "Show file paths")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	outputFormat, _ := cmd.Flags().GetString("output")

	names, err := files.ListClips()
	if err != nil {
		return fmt.Errorf("failed to list clips: %w", err)
	}

	var result ListResult
	for _, name := range names {
		clip, err := files.ReadClip(name)
		if err != nil {
			cli.PrintWarning("Failed to load clip %s: %v", name, err)
			continue
		}

		seq := timeline.SequenceFromTrack(clip.Track)
		item := ListItem{
			Name:       clip.Name,
			Filename:   name,
			Frames:     seq.Len(),
			Duration:   seq.TotalLength(),
			SampleRate: seq.SampleRate,
			Loop:       clip.Track.Loop,
		}
		if listShowPaths {
			item.Path = files.ClipPath(name)
		}
		result.Items = append(result.Items, item)
	}
	result.Count = len(result.Items)

	switch outputFormat {
	case "json", "yaml":
		return cli.OutputResults(cmd.OutOrStdout(), outputFormat, result)
	default:
		return outputListText(cmd, result)
	}
}

func outputListText(cmd *cobra.Command, result ListResult) error {
	if result.Count == 0 {
		cli.PrintInfo("No clips found")
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), "\nCLIPS")
	fmt.Fprintln(cmd.OutOrStdout(), strings.Repeat("-", 80))

	table := cli.NewTableFormatter(cmd.OutOrStdout())
	if listShowPaths {
		table.Header("Name", "Frames", "Duration", "Rate", "Loop", "Path")
	} else {
		table.Header("Name", "Frames", "Duration", "Rate", "Loop")
	}

	for _, item := range result.Items {
		loop := "no"
		if item.Loop {
			loop = "yes"
		}
		row := []string{
			item.Name,
			fmt.Sprintf("%d", item.Frames),
			cli.FormatSeconds(item.Duration),
			fmt.Sprintf("%d fps", item.SampleRate),
			loop,
		}
		if listShowPaths {
			row = append(row, item.Path)
		}
		table.Row(row...)
	}
	table.Flush()

	fmt.Fprintf(cmd.OutOrStdout(), "\nTotal: %d clips\n", result.Count)

	return nil
}
