package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/spriteline/spriteline-cli/pkg/timeline"
)

func (m *EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tickMsg:
		return m.updateTick()

	case assetsChangedMsg:
		if err := m.lib.Scan(); err == nil {
			m.cache.InvalidateAll()
		}
		if m.assetCursor >= len(m.panelItems()) {
			m.assetCursor = 0
		}
		return m, tea.Batch(m.watchAssets(), statusCmd("Assets reloaded"))

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	return m, nil
}

func (m *EditorModel) updateTick() (tea.Model, tea.Cmd) {
	if !m.session.Play.Playing {
		return m, nil
	}
	elapsed := time.Since(m.lastTick).Seconds()
	m.session.Tick(elapsed)
	if m.session.Play.Playing {
		return m, m.scheduleTick()
	}
	return m, nil
}

func (m *EditorModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.assetFocus {
		return m.updateAssetKey(msg)
	}

	total := m.session.Seq.TotalLength()

	switch msg.String() {
	case "esc", "q":
		m.Close()
		return m, func() tea.Msg {
			return SwitchViewMsg{view: clipListView}
		}

	case " ":
		m.session.Play.TogglePlay(total)
		if m.session.Play.Playing {
			return m, m.scheduleTick()
		}
		return m, nil

	case "o":
		m.loop = !m.loop
		m.session.Play.Loop = m.loop
		return m, m.commit()

	case "left":
		return m, m.applyEffects(m.session.StepPrev())

	case "right":
		return m, m.applyEffects(m.session.StepNext())

	case "x", "delete", "backspace":
		return m, m.applyEffects(m.session.DeleteSelected())

	case "a":
		m.session.SelectAll()
		return m, nil

	case "d":
		return m, m.applyEffects(m.session.DuplicateSelected())

	case "c":
		m.session.CopySelected()
		return m, nil

	case "v":
		return m, m.applyEffects(m.session.Paste())

	case "u":
		ok, err := m.store.Undo()
		if err != nil {
			return m, statusCmd("Undo failed: " + err.Error())
		}
		if ok {
			m.reloadFromStore()
			return m, statusCmd("Undone")
		}
		return m, statusCmd("Nothing to undo")

	case "ctrl+r":
		ok, err := m.store.Redo()
		if err != nil {
			return m, statusCmd("Redo failed: " + err.Error())
		}
		if ok {
			m.reloadFromStore()
			return m, statusCmd("Redone")
		}
		return m, statusCmd("Nothing to redo")

	case "+", "=":
		anchor := m.session.View.TimeToPixel(m.session.Play.Current)
		m.session.View.ZoomAt(anchor, 1.25, total)
		return m, nil

	case "-":
		anchor := m.session.View.TimeToPixel(m.session.Play.Current)
		m.session.View.ZoomAt(anchor, 0.8, total)
		return m, nil

	case "h":
		m.session.View.Pan(-20, total)
		return m, nil

	case "l":
		m.session.View.Pan(20, total)
		return m, nil

	case "tab":
		if m.settings.UI.ShowAssets && len(m.panelItems()) > 0 {
			m.assetFocus = true
		}
		return m, nil

	case "?":
		m.showHelp = true
		return m, nil
	}

	return m, nil
}

func (m *EditorModel) updateAssetKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.panelItems()

	switch msg.String() {
	case "esc", "tab":
		m.assetFocus = false
		return m, nil

	case "left", "h", "up", "k":
		if m.assetCursor > 0 {
			m.assetCursor--
		}
		return m, nil

	case "right", "l", "down", "j":
		if m.assetCursor < len(items)-1 {
			m.assetCursor++
		}
		return m, nil

	case "enter", "i":
		return m, m.dropStaged(timeline.DropInsert)

	case "r":
		return m, m.dropStaged(timeline.DropReplace)
	}

	return m, nil
}

// dropStaged drops the highlighted asset (or every image of a collection)
// at the playhead position.
func (m *EditorModel) dropStaged(mode timeline.DropMode) tea.Cmd {
	items := m.panelItems()
	if len(items) == 0 || m.assetCursor >= len(items) {
		return statusCmd("No assets to insert")
	}

	item := items[m.assetCursor]
	members := m.lib.Expand([]string{item.id})
	if len(members) == 0 {
		return statusCmd("Nothing to insert for " + item.label)
	}

	images := make([]timeline.DropImage, 0, len(members))
	for _, a := range members {
		images = append(images, timeline.DropImage{Name: a.Name, Sprite: a.ID})
	}

	x := m.session.View.TimeToPixel(m.session.Play.Current)
	plan := timeline.PlanDrop(m.session.Seq, m.session.View, x, images, mode)
	eff := m.session.ApplyDrop(plan)
	return m.applyEffects(eff)
}

func (m *EditorModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	total := m.session.Seq.TotalLength()
	x := float64(msg.X - timelineOriginX)

	// Wheel zooms around the pointer; shift-wheel pans
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if msg.Shift {
			m.session.View.Pan(-10, total)
		} else {
			m.session.View.ZoomAt(x, 1.15, total)
		}
		return m, nil
	case tea.MouseButtonWheelDown:
		if msg.Shift {
			m.session.View.Pan(10, total)
		} else {
			m.session.View.ZoomAt(x, 0.87, total)
		}
		return m, nil
	}

	onScrubber := msg.Y == rulerLabelRow || msg.Y == rulerTickRow
	inFrames := msg.Y >= framesTopRow && msg.Y < framesTopRow+framesRows
	if !onScrubber && !inFrames && m.session.State() == timeline.DragNone {
		return m, nil
	}

	ev := timeline.MouseEvent{
		X:          x,
		OnScrubber: onScrubber,
		Ctrl:       msg.Ctrl,
		Shift:      msg.Shift,
	}

	var eff timeline.Effects
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		eff = m.session.MouseDown(ev)
	case msg.Action == tea.MouseActionMotion && msg.Button == tea.MouseButtonLeft:
		eff = m.session.MouseDrag(ev)
	case msg.Action == tea.MouseActionRelease:
		eff = m.session.MouseUp(ev)
	default:
		return m, nil
	}

	return m, m.applyEffects(eff)
}
