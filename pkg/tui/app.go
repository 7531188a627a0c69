package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type sessionState int

const (
	clipListView sessionState = iota
	editorView
)

type App struct {
	state     sessionState
	clipList  *ClipListModel
	editor    *EditorModel
	width     int
	height    int
	statusMsg string
}

func NewApp() *App {
	return &App{
		state:    clipListView,
		clipList: NewClipListModel(),
	}
}

func (a *App) Init() tea.Cmd {
	return a.clipList.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Pass window size to all sub-models
		if a.clipList != nil {
			a.clipList.SetSize(msg.Width, msg.Height)
		}
		if a.editor != nil {
			a.editor.SetSize(msg.Width, msg.Height)
		}

	case tea.KeyMsg:
		// Global keybindings
		if msg.Type == tea.KeyCtrlC {
			if a.editor != nil {
				a.editor.Close()
			}
			return a, tea.Quit
		}

	case StatusMsg:
		a.statusMsg = string(msg)
		return a, nil

	case SwitchViewMsg:
		switch msg.view {
		case clipListView:
			a.state = clipListView
			if a.editor != nil {
				a.editor.Close()
				a.editor = nil
			}
			if a.clipList == nil {
				a.clipList = NewClipListModel()
			} else {
				// Reload clips when returning to list
				a.clipList.loadClips()
			}
			return a, a.clipList.Init()
		case editorView:
			a.state = editorView
			if a.editor != nil {
				a.editor.Close()
			}
			editor, err := NewEditorModel(msg.clip)
			if err != nil {
				a.state = clipListView
				a.statusMsg = "Failed to open clip: " + err.Error()
				return a, nil
			}
			a.editor = editor
			a.editor.SetSize(a.width, a.height)
			return a, a.editor.Init()
		}
	}

	// Route updates to the active view
	var cmd tea.Cmd
	switch a.state {
	case clipListView:
		var m tea.Model
		m, cmd = a.clipList.Update(msg)
		if cl, ok := m.(*ClipListModel); ok {
			a.clipList = cl
		}
	case editorView:
		var m tea.Model
		m, cmd = a.editor.Update(msg)
		if ed, ok := m.(*EditorModel); ok {
			a.editor = ed
		}
	}

	return a, cmd
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	var content string
	switch a.state {
	case clipListView:
		content = a.clipList.View()
	case editorView:
		content = a.editor.View()
	default:
		content = "Unknown view"
	}

	// Add status bar if there's a message
	if a.statusMsg != "" {
		statusBar := StatusBarStyle.Render(a.statusMsg)
		content = lipgloss.JoinVertical(lipgloss.Top, content, statusBar)
	}

	return content
}

// Messages for communication between views
type StatusMsg string

type SwitchViewMsg struct {
	view sessionState
	clip string // clip file name for the editor
}
