package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/spriteline/spriteline-cli/pkg/files"
	"github.com/spriteline/spriteline-cli/pkg/models"
	"github.com/spriteline/spriteline-cli/pkg/timeline"
)

type clipItem struct {
	name     string
	path     string
	frames   int
	duration float64
	rate     int
	loop     bool
}

type listInputMode int

const (
	inputNone listInputMode = iota
	inputCreate
	inputRename
)

type ClipListModel struct {
	clips  []clipItem
	cursor int

	// Name entry for create/rename
	input     textinput.Model
	inputMode listInputMode

	// Delete confirmation
	deleteConfirm *ConfirmationModel

	width  int
	height int

	err error
}

func NewClipListModel() *ClipListModel {
	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = 40

	m := &ClipListModel{
		input:         ti,
		deleteConfirm: NewConfirmation(),
	}
	m.loadClips()
	return m
}

func (m *ClipListModel) Init() tea.Cmd {
	return nil
}

func (m *ClipListModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *ClipListModel) loadClips() {
	names, err := files.ListClips()
	if err != nil {
		m.err = err
		return
	}

	m.clips = nil
	for _, name := range names {
		clip, err := files.ReadClip(name)
		if err != nil {
			continue
		}
		seq := timeline.SequenceFromTrack(clip.Track)
		m.clips = append(m.clips, clipItem{
			name:     clip.Name,
			path:     name,
			frames:   seq.Len(),
			duration: seq.TotalLength(),
			rate:     seq.SampleRate,
			loop:     clip.Track.Loop,
		})
	}
	if m.cursor >= len(m.clips) {
		m.cursor = len(m.clips) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *ClipListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.deleteConfirm.Active() {
		return m, m.deleteConfirm.Update(keyMsg)
	}

	if m.inputMode != inputNone {
		return m.updateInput(keyMsg)
	}

	switch keyMsg.String() {
	case "q":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.clips)-1 {
			m.cursor++
		}

	case "enter":
		if len(m.clips) > 0 {
			clip := m.clips[m.cursor]
			return m, func() tea.Msg {
				return SwitchViewMsg{view: editorView, clip: clip.path}
			}
		}

	case "n":
		m.inputMode = inputCreate
		m.input.SetValue("")
		m.input.Placeholder = "new clip name"
		m.input.Focus()
		return m, textinput.Blink

	case "r":
		if len(m.clips) > 0 {
			m.inputMode = inputRename
			m.input.SetValue(m.clips[m.cursor].name)
			m.input.Placeholder = "new name"
			m.input.Focus()
			return m, textinput.Blink
		}

	case "d":
		if len(m.clips) > 0 {
			clip := m.clips[m.cursor]
			m.deleteConfirm.Show(
				fmt.Sprintf("Delete clip '%s'? This cannot be undone.", clip.name),
				true,
				func() tea.Cmd {
					if err := files.DeleteClip(clip.path); err != nil {
						return func() tea.Msg { return StatusMsg("Delete failed: " + err.Error()) }
					}
					m.loadClips()
					return func() tea.Msg { return StatusMsg("Deleted clip " + clip.name) }
				},
				nil,
			)
		}
	}

	return m, nil
}

func (m *ClipListModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.inputMode = inputNone
		m.input.Blur()
		return m, nil

	case "enter":
		name := strings.TrimSpace(m.input.Value())
		mode := m.inputMode
		m.inputMode = inputNone
		m.input.Blur()
		if name == "" {
			return m, nil
		}

		switch mode {
		case inputCreate:
			return m, m.createClip(name)
		case inputRename:
			return m, m.renameClip(name)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *ClipListModel) createClip(name string) tea.Cmd {
	path := name + ".yaml"
	for _, c := range m.clips {
		if c.path == path {
			return func() tea.Msg { return StatusMsg("A clip named " + name + " already exists") }
		}
	}

	settings, err := files.ReadSettings()
	if err != nil {
		settings = models.DefaultSettings()
	}
	rate := int(float64(settings.Defaults.FrameSamples)/settings.Defaults.FrameLength + 0.5)

	clip := &models.Clip{
		Name:  name,
		Path:  path,
		Track: timeline.NewSequence(rate).ToTrack(false),
	}
	if err := files.WriteClip(clip); err != nil {
		return func() tea.Msg { return StatusMsg("Create failed: " + err.Error()) }
	}
	m.loadClips()
	return func() tea.Msg { return SwitchViewMsg{view: editorView, clip: path} }
}

func (m *ClipListModel) renameClip(name string) tea.Cmd {
	clip := m.clips[m.cursor]
	if _, err := files.RenameClip(clip.path, name); err != nil {
		return func() tea.Msg { return StatusMsg("Rename failed: " + err.Error()) }
	}
	m.loadClips()
	return func() tea.Msg { return StatusMsg("Renamed clip to " + name) }
}

func (m *ClipListModel) View() string {
	var b strings.Builder

	b.WriteString(renderHeader(m.width, "Clips"))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(ErrorStyle.Render(" " + m.err.Error()))
		b.WriteString("\n")
	}

	if len(m.clips) == 0 {
		b.WriteString(EmptyStateStyle.Render("  No clips yet. Press 'n' to create one."))
		b.WriteString("\n")
	} else {
		header := fmt.Sprintf("  %-28s %8s %10s %8s %6s", "NAME", "FRAMES", "DURATION", "RATE", "LOOP")
		b.WriteString(HeaderStyle.Render(header))
		b.WriteString("\n")

		for i, c := range m.clips {
			loop := " "
			if c.loop {
				loop = "∞"
			}
			row := fmt.Sprintf("  %-28s %8d %9.2fs %5d fps %6s",
				c.name, c.frames, c.duration, c.rate, loop)
			if i == m.cursor {
				b.WriteString(SelectedStyle.Render("▸" + row[1:]))
			} else {
				b.WriteString(NormalStyle.Render(row))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")

	switch {
	case m.deleteConfirm.Active():
		b.WriteString(m.deleteConfirm.ViewWithWidth(m.width))
	case m.inputMode != inputNone:
		label := "New clip:"
		if m.inputMode == inputRename {
			label = "Rename to:"
		}
		b.WriteString(" " + label + " " + InputStyle.Render(m.input.View()))
	default:
		help := helpLine([][2]string{
			{"enter", "edit"}, {"n", "new"}, {"r", "rename"},
			{"d", "delete"}, {"q", "quit"},
		})
		b.WriteString(help)
	}

	content := b.String()
	if m.height > 0 {
		content = lipgloss.NewStyle().MaxHeight(m.height).Render(content)
	}
	return content
}
