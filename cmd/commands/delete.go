package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spriteline/spriteline-cli/internal/cli"
	"github.com/spriteline/spriteline-cli/pkg/files"
)

var (
	deleteForce bool
)

// NewDeleteCommand creates the delete command
func NewDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <clip>",
		Short: "Delete a clip",
		Long: `Permanently delete a clip.

This action cannot be undone.

Examples:
  # Delete a clip (with confirmation)
  spriteline delete walk

  # Force delete without confirmation
  spriteline delete walk --force`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(files.SpritelineDir); os.IsNotExist(err) {
				return fmt.Errorf("no .spriteline directory found. Run 'spriteline init' first")
			}
			return nil
		},
		RunE: runDelete,
	}

	cmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Force deletion without confirmation")

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	resolver := cli.NewClipResolver(files.SpritelineDir)
	name, err := resolver.Resolve(args[0])
	if err != nil {
		return err
	}

	if !deleteForce {
		skipConfirm, _ := cmd.Flags().GetBool("yes")
		if !skipConfirm {
			prompt := fmt.Sprintf("Permanently delete clip '%s'? This cannot be undone.",
				strings.TrimSuffix(name, ".yaml"))
			confirmed, err := cli.Confirm(prompt, false)
			if err != nil {
				return err
			}
			if !confirmed {
				cli.PrintInfo("Deletion cancelled")
				return nil
			}
		}
	}

	if err := files.DeleteClip(name); err != nil {
		return err
	}

	cli.PrintSuccess("Deleted clip '%s'", strings.TrimSuffix(name, ".yaml"))

	return nil
}
