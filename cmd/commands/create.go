package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spriteline/spriteline-cli/internal/cli"
	"github.com/spriteline/spriteline-cli/pkg/files"
	"github.com/spriteline/spriteline-cli/pkg/models"
	"github.com/spriteline/spriteline-cli/pkg/timeline"
)

var (
	createSampleRate  int
	createFrameLength float64
	createLoop        bool
)

// NewCreateCommand creates the create command
func NewCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <name> [sprites...]",
		Short: "Create a new clip",
		Long: `Create a new animation clip, optionally seeded with sprites.

Each sprite argument becomes one frame. The sprite names refer to
images in the project's asset directory.

Examples:
  # Create an empty clip
  spriteline create walk

  # Create a clip from sprites
  spriteline create walk walk1.png walk2.png walk3.png

  # Create a looping clip at 12 fps
  spriteline create walk --sample-rate 12 --loop walk1.png walk2.png`,
		Args: cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(files.SpritelineDir); os.IsNotExist(err) {
				return fmt.Errorf("no .spriteline directory found. Run 'spriteline init' first")
			}
			return nil
		},
		RunE: runCreate,
	}

	cmd.Flags().IntVar(&createSampleRate, "sample-rate", 0, "Frames per second grid (default from settings)")
	cmd.Flags().Float64Var(&createFrameLength, "frame-length", 0, "Initial frame length in seconds (default from settings)")
	cmd.Flags().BoolVar(&createLoop, "loop", false, "Mark the clip as looping")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	name := args[0]
	sprites := args[1:]

	if err := cli.ValidateClipName(name); err != nil {
		return err
	}

	path := name + ".yaml"
	if _, err := os.Stat(files.ClipPath(path)); err == nil {
		return fmt.Errorf("a clip named %s already exists", name)
	}

	ctx, err := cli.NewCommandContext()
	if err != nil {
		return err
	}
	settings := ctx.LoadSettingsWithDefault()

	defaults := timeline.FrameDefaults{
		Length:  settings.Defaults.FrameLength,
		Samples: settings.Defaults.FrameSamples,
	}
	if createFrameLength > 0 {
		defaults.Length = createFrameLength
	}

	rate := createSampleRate
	if rate > 0 {
		if err := cli.ValidateSampleRate(rate); err != nil {
			return err
		}
	} else {
		rate = int(float64(settings.Defaults.FrameSamples)/settings.Defaults.FrameLength + 0.5)
	}

	seq := timeline.NewSequence(rate)
	seq.InsertFrames(sprites, 0, defaults)

	clip := &models.Clip{
		Name:  name,
		Path:  path,
		Track: seq.ToTrack(createLoop),
	}
	if err := files.WriteClip(clip); err != nil {
		return fmt.Errorf("failed to write clip: %w", err)
	}

	if len(sprites) > 0 {
		cli.PrintSuccess("Created clip '%s' with %d frames (%s)",
			name, seq.Len(), cli.FormatSeconds(seq.TotalLength()))
	} else {
		cli.PrintSuccess("Created empty clip '%s'", name)
	}

	return nil
}
