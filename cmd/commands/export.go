package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spriteline/spriteline-cli/internal/cli"
	"github.com/spriteline/spriteline-cli/pkg/assets"
	"github.com/spriteline/spriteline-cli/pkg/export"
	"github.com/spriteline/spriteline-cli/pkg/files"
)

var (
	exportAll     bool
	exportFormat  string
	exportOutDir  string
	exportColumns int
)

// NewExportCommand creates the export command
func NewExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [clip]",
		Short: "Export clips as animated GIFs or contact sheets",
		Long: `Export a clip to a shareable image file.

Formats:
  gif     - Animated GIF with per-frame timing (default)
  sheet   - PNG contact sheet of all frames

Examples:
  # Export one clip as a GIF
  spriteline export walk

  # Export a contact sheet with 4 columns
  spriteline export walk --format sheet --columns 4

  # Export every clip in the project
  spriteline export --all --out renders/`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(files.SpritelineDir); os.IsNotExist(err) {
				return fmt.Errorf("no .spriteline directory found. Run 'spriteline init' first")
			}
			if exportAll && len(args) > 0 {
				return fmt.Errorf("--all cannot be combined with a clip name")
			}
			if !exportAll && len(args) == 0 {
				return fmt.Errorf("pass a clip name or --all")
			}
			return nil
		},
		RunE: runExport,
	}

	cmd.Flags().BoolVar(&exportAll, "all", false, "Export every clip in the project")
	cmd.Flags().StringVar(&exportFormat, "format", "", "Output format (gif, sheet); defaults to the project setting")
	cmd.Flags().StringVar(&exportOutDir, "out", "", "Output directory; defaults to the project setting")
	cmd.Flags().IntVar(&exportColumns, "columns", 0, "Contact sheet columns (0 picks a square grid)")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx, err := cli.NewCommandContext()
	if err != nil {
		return err
	}
	settings := ctx.LoadSettingsWithDefault()
	if exportFormat == "" {
		exportFormat = settings.Export.Format
	}
	if exportOutDir == "" {
		exportOutDir = settings.Export.ExportPath
		if exportOutDir == "" {
			exportOutDir = "."
		}
	}

	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(exportOutDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	lib := assets.NewLibrary(files.AssetsPath())
	if err := lib.Scan(); err != nil {
		return fmt.Errorf("failed to scan assets: %w", err)
	}

	if exportAll {
		paths, err := export.All(format, lib, exportOutDir, exportColumns)
		if err != nil {
			return err
		}
		for _, p := range paths {
			cli.PrintSuccess("Exported %s", p)
		}
		return nil
	}

	resolver := cli.NewClipResolver(files.SpritelineDir)
	name, err := resolver.Resolve(args[0])
	if err != nil {
		return err
	}

	out, err := export.Clip(name, format, lib, exportOutDir, exportColumns)
	if err != nil {
		return err
	}

	cli.PrintSuccess("Exported %s", out)

	return nil
}
