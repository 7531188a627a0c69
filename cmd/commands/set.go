package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spriteline/spriteline-cli/internal/cli"
	"github.com/spriteline/spriteline-cli/pkg/files"
	"github.com/spriteline/spriteline-cli/pkg/timeline"
)

var (
	setSampleRate  int
	setTotalLength float64
	setLoop        string
)

// NewSetCommand creates the set command
func NewSetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <clip>",
		Short: "Change a clip's timing properties",
		Long: `Change a clip's sample rate, total length, or loop flag.

Changing the sample rate keeps each frame's sample count, so the
clip plays faster or slower. Changing the total length picks the
sample rate that stretches the clip to the requested duration.

Examples:
  # Retime a clip to 12 fps
  spriteline set walk --sample-rate 12

  # Stretch a clip to 2 seconds
  spriteline set walk --total-length 2.0

  # Toggle looping
  spriteline set walk --loop on
  spriteline set walk --loop off`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(files.SpritelineDir); os.IsNotExist(err) {
				return fmt.Errorf("no .spriteline directory found. Run 'spriteline init' first")
			}
			return nil
		},
		RunE: runSet,
	}

	cmd.Flags().IntVar(&setSampleRate, "sample-rate", 0, "New frames-per-second grid")
	cmd.Flags().Float64Var(&setTotalLength, "total-length", 0, "New total length in seconds")
	cmd.Flags().StringVar(&setLoop, "loop", "", "Set looping (on/off)")

	return cmd
}

func runSet(cmd *cobra.Command, args []string) error {
	if setSampleRate == 0 && setTotalLength == 0 && setLoop == "" {
		return fmt.Errorf("nothing to change: pass --sample-rate, --total-length, or --loop")
	}
	if setSampleRate != 0 && setTotalLength != 0 {
		return fmt.Errorf("--sample-rate and --total-length are mutually exclusive")
	}

	resolver := cli.NewClipResolver(files.SpritelineDir)
	name, err := resolver.Resolve(args[0])
	if err != nil {
		return err
	}

	clip, err := files.ReadClip(name)
	if err != nil {
		return fmt.Errorf("failed to load clip: %w", err)
	}

	loop := clip.Track.Loop
	switch setLoop {
	case "":
	case "on", "true", "yes":
		loop = true
	case "off", "false", "no":
		loop = false
	default:
		return fmt.Errorf("invalid --loop value %q (expected on or off)", setLoop)
	}

	seq := timeline.SequenceFromTrack(clip.Track)

	if setSampleRate != 0 {
		if err := cli.ValidateSampleRate(setSampleRate); err != nil {
			return err
		}
		seq.SetSampleRate(setSampleRate)
	}
	if setTotalLength != 0 {
		if setTotalLength < 0 {
			return fmt.Errorf("total length must be positive, got %g", setTotalLength)
		}
		if seq.Len() == 0 {
			return fmt.Errorf("cannot retime an empty clip")
		}
		seq.SetTotalLength(setTotalLength)
	}

	clip.Track = seq.ToTrack(loop)
	if err := files.WriteClip(clip); err != nil {
		return fmt.Errorf("failed to write clip: %w", err)
	}

	cli.PrintSuccess("Updated clip '%s' (%d fps, %s)",
		clip.Name, seq.SampleRate, cli.FormatSeconds(seq.TotalLength()))

	return nil
}
