package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spriteline/spriteline-cli/internal/cli"
	"github.com/spriteline/spriteline-cli/pkg/files"
)

// NewRenameCommand creates the rename command
func NewRenameCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <clip> <new-name>",
		Short: "Rename a clip",
		Long: `Rename a clip, moving its file.

Examples:
  spriteline rename walk walk-cycle`,
		Args: cobra.ExactArgs(2),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(files.SpritelineDir); os.IsNotExist(err) {
				return fmt.Errorf("no .spriteline directory found. Run 'spriteline init' first")
			}
			return nil
		},
		RunE: runRename,
	}

	return cmd
}

func runRename(cmd *cobra.Command, args []string) error {
	newName := args[1]
	if err := cli.ValidateClipName(newName); err != nil {
		return err
	}

	resolver := cli.NewClipResolver(files.SpritelineDir)
	name, err := resolver.Resolve(args[0])
	if err != nil {
		return err
	}

	newPath, err := files.RenameClip(name, newName)
	if err != nil {
		return err
	}

	cli.PrintSuccess("Renamed clip to '%s'", newName)
	cli.PrintInfo("File: %s", files.ClipPath(newPath))

	return nil
}
