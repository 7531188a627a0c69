package commands

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/spriteline/spriteline-cli/pkg/files"
	"github.com/spriteline/spriteline-cli/pkg/models"
	"github.com/spriteline/spriteline-cli/pkg/timeline"
)

func setupProject(t *testing.T) {
	t.Helper()
	tmpDir := t.TempDir()
	oldWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}
	t.Cleanup(func() {
		os.Chdir(oldWd)
	})
	if err := files.InitProjectStructure(); err != nil {
		t.Fatalf("failed to init project: %v", err)
	}
}

func writeSprite(t *testing.T, name string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	f, err := os.Create(filepath.Join(files.AssetsPath(), name))
	if err != nil {
		t.Fatalf("failed to create sprite: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode sprite: %v", err)
	}
}

func runCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCreateCommand(t *testing.T) {
	setupProject(t)
	createSampleRate = 0
	createFrameLength = 0
	createLoop = false

	_, err := runCommand(t, NewCreateCommand(), "walk", "a.png", "b.png", "c.png")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	clip, err := files.ReadClip("walk.yaml")
	if err != nil {
		t.Fatalf("expected clip file: %v", err)
	}
	seq := timeline.SequenceFromTrack(clip.Track)
	if seq.Len() != 3 {
		t.Errorf("expected 3 frames, got %d", seq.Len())
	}
}

func TestCreateCommandRejectsDuplicate(t *testing.T) {
	setupProject(t)
	createSampleRate = 0
	createFrameLength = 0
	createLoop = false

	if _, err := runCommand(t, NewCreateCommand(), "walk"); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := runCommand(t, NewCreateCommand(), "walk"); err == nil {
		t.Error("expected error creating duplicate clip")
	}
}

func TestCreateCommandRejectsBadName(t *testing.T) {
	setupProject(t)

	if _, err := runCommand(t, NewCreateCommand(), "../escape"); err == nil {
		t.Error("expected error for invalid clip name")
	}
}

func TestListCommandText(t *testing.T) {
	setupProject(t)
	createSampleRate = 0
	createFrameLength = 0
	createLoop = false
	listShowPaths = false

	if _, err := runCommand(t, NewCreateCommand(), "walk", "a.png", "b.png"); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	out, err := runCommand(t, NewListCommand())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out, "walk") {
		t.Errorf("expected clip name in output, got:\n%s", out)
	}
	if !strings.Contains(out, "Total: 1 clips") {
		t.Errorf("expected total line in output, got:\n%s", out)
	}
}

func TestShowCommand(t *testing.T) {
	setupProject(t)
	createSampleRate = 0
	createFrameLength = 0
	createLoop = false

	if _, err := runCommand(t, NewCreateCommand(), "walk", "a.png", "b.png"); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	out, err := runCommand(t, NewShowCommand(), "walk")
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if !strings.Contains(out, "a.png") || !strings.Contains(out, "b.png") {
		t.Errorf("expected frame sprites in output, got:\n%s", out)
	}
}

func TestShowCommandUnknownClip(t *testing.T) {
	setupProject(t)

	if _, err := runCommand(t, NewShowCommand(), "missing"); err == nil {
		t.Error("expected error for unknown clip")
	}
}

func TestSetCommandSampleRate(t *testing.T) {
	setupProject(t)
	createSampleRate = 0
	createFrameLength = 0
	createLoop = false
	setSampleRate = 0
	setTotalLength = 0
	setLoop = ""

	if _, err := runCommand(t, NewCreateCommand(), "walk", "a.png", "b.png"); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := runCommand(t, NewSetCommand(), "walk", "--sample-rate", "12"); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	clip, err := files.ReadClip("walk.yaml")
	if err != nil {
		t.Fatalf("failed to re-read clip: %v", err)
	}
	if clip.Track.SampleRate != 12 {
		t.Errorf("expected sample rate 12, got %d", clip.Track.SampleRate)
	}
}

func TestSetCommandLoop(t *testing.T) {
	setupProject(t)
	createSampleRate = 0
	createFrameLength = 0
	createLoop = false
	setSampleRate = 0
	setTotalLength = 0
	setLoop = ""

	if _, err := runCommand(t, NewCreateCommand(), "walk", "a.png"); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := runCommand(t, NewSetCommand(), "walk", "--loop", "on"); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	clip, err := files.ReadClip("walk.yaml")
	if err != nil {
		t.Fatalf("failed to re-read clip: %v", err)
	}
	if !clip.Track.Loop {
		t.Error("expected loop flag set")
	}
}

func TestSetCommandRequiresChange(t *testing.T) {
	setupProject(t)
	createSampleRate = 0
	createFrameLength = 0
	createLoop = false
	setSampleRate = 0
	setTotalLength = 0
	setLoop = ""

	if _, err := runCommand(t, NewCreateCommand(), "walk", "a.png"); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := runCommand(t, NewSetCommand(), "walk"); err == nil {
		t.Error("expected error when no flags are passed")
	}
}

func TestDeleteCommandForce(t *testing.T) {
	setupProject(t)
	createSampleRate = 0
	createFrameLength = 0
	createLoop = false
	deleteForce = false

	if _, err := runCommand(t, NewCreateCommand(), "walk", "a.png"); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := runCommand(t, NewDeleteCommand(), "walk", "--force"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	names, err := files.ListClips()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("expected no clips after delete, got %v", names)
	}
}

func TestExportCommandUsesSettingsDefaults(t *testing.T) {
	setupProject(t)
	createSampleRate = 0
	createFrameLength = 0
	createLoop = false
	exportAll = false
	exportColumns = 0

	writeSprite(t, "a.png")
	if _, err := runCommand(t, NewCreateCommand(), "walk", "a.png"); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	settings := models.DefaultSettings()
	settings.Export.Format = "sheet"
	settings.Export.ExportPath = "renders"
	if err := files.WriteSettings(settings); err != nil {
		t.Fatalf("failed to write settings: %v", err)
	}

	if _, err := runCommand(t, NewExportCommand(), "walk"); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join("renders", "walk.png")); err != nil {
		t.Errorf("expected contact sheet at renders/walk.png: %v", err)
	}

	// Explicit flags still win over the configured defaults
	if _, err := runCommand(t, NewExportCommand(), "walk", "--format", "gif", "--out", "."); err != nil {
		t.Fatalf("export with flags failed: %v", err)
	}
	if _, err := os.Stat("walk.gif"); err != nil {
		t.Errorf("expected GIF at walk.gif: %v", err)
	}
}

func TestRenameCommand(t *testing.T) {
	setupProject(t)
	createSampleRate = 0
	createFrameLength = 0
	createLoop = false

	if _, err := runCommand(t, NewCreateCommand(), "walk", "a.png"); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := runCommand(t, NewRenameCommand(), "walk", "walk-cycle"); err != nil {
		t.Fatalf("rename failed: %v", err)
	}

	if _, err := files.ReadClip("walk-cycle.yaml"); err != nil {
		t.Errorf("expected renamed clip to load: %v", err)
	}
	if _, err := files.ReadClip("walk.yaml"); err == nil {
		t.Error("expected old clip file to be gone")
	}
}
