package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

// helpLine formats key/action pairs into a single dim help row.
func helpLine(pairs [][2]string) string {
	var parts []string
	for _, p := range pairs {
		parts = append(parts, HelpKeyStyle.Render(p[0])+" "+HelpTextStyle.Render(p[1]))
	}
	return DescriptionStyle.Render(strings.Join(parts, " · "))
}

func renderHelpOverlay(width int) string {
	sections := []struct {
		title string
		keys  [][2]string
	}{
		{"Playback", [][2]string{
			{"space", "play / pause (restarts from the top when the cursor is at the end)"},
			{"o", "toggle looping"},
			{"←/→", "step the playhead frame by frame"},
		}},
		{"Editing", [][2]string{
			{"x / del", "delete selected frames"},
			{"d", "duplicate selected frames after the last one"},
			{"c / v", "copy selected frames / paste after the selection"},
			{"a", "select all frames"},
			{"u / ctrl+r", "undo / redo"},
		}},
		{"Mouse", [][2]string{
			{"click ruler", "scrub the playhead"},
			{"click frame", "select (ctrl toggles, shift extends)"},
			{"drag frame", "move the selection, an arrow shows where it lands"},
			{"drag trailing edge", "resize; with a multi-selection all selected frames step together"},
			{"drag empty space", "box-select a time range"},
			{"wheel", "zoom at the pointer (shift-wheel pans)"},
		}},
		{"Assets", [][2]string{
			{"tab", "focus the asset panel"},
			{"enter / i", "insert the highlighted asset (or collection) at the playhead"},
			{"r", "replace frames starting at the playhead"},
		}},
	}

	contentWidth := width - 6
	if contentWidth < 20 {
		contentWidth = 20
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("KEYS") + "\n\n")
	for _, s := range sections {
		b.WriteString(EmptyStateStyle.Render(s.title) + "\n")
		for _, k := range s.keys {
			line := "  " + HelpKeyStyle.Render(k[0]) + "  " + k[1]
			b.WriteString(wordwrap.String(line, contentWidth) + "\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(DescriptionStyle.Render("press any key to close"))

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(b.String())
}
