package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/spriteline/spriteline-cli/pkg/timeline"
)

// textRow is a fixed-width row of styled cells, rendered by grouping
// runs that share a style.
type textRow struct {
	runes  []rune
	styles []*lipgloss.Style
}

func newTextRow(width int) *textRow {
	r := &textRow{
		runes:  make([]rune, width),
		styles: make([]*lipgloss.Style, width),
	}
	for i := range r.runes {
		r.runes[i] = ' '
	}
	return r
}

func (r *textRow) set(x int, ch rune, style *lipgloss.Style) {
	if x < 0 || x >= len(r.runes) {
		return
	}
	r.runes[x] = ch
	r.styles[x] = style
}

func (r *textRow) text(x int, s string, style *lipgloss.Style) {
	for i, ch := range []rune(s) {
		r.set(x+i, ch, style)
	}
}

func (r *textRow) render() string {
	var b strings.Builder
	i := 0
	for i < len(r.runes) {
		j := i
		for j < len(r.runes) && r.styles[j] == r.styles[i] {
			j++
		}
		run := string(r.runes[i:j])
		if r.styles[i] != nil {
			run = r.styles[i].Render(run)
		}
		b.WriteString(run)
		i = j
	}
	return b.String()
}

type panelItem struct {
	id         string
	label      string
	collection bool
}

// panelItems lists the asset panel entries: collections first, then
// loose assets, both in scan order.
func (m *EditorModel) panelItems() []panelItem {
	var items []panelItem
	for _, col := range m.lib.Collections() {
		items = append(items, panelItem{
			id:         col.Name,
			label:      col.Name + "/",
			collection: true,
		})
	}
	for _, a := range m.lib.Assets() {
		items = append(items, panelItem{id: a.ID, label: a.Name})
	}
	return items
}

func (m *EditorModel) View() string {
	if m.showHelp {
		return renderHelpOverlay(m.width)
	}

	w := int(m.timelineWidth())
	pad := strings.Repeat(" ", timelineOriginX)

	var b strings.Builder
	b.WriteString(renderHeader(m.width, m.store.Clip().Name))
	b.WriteString("\n")

	labels, ticks := m.renderRuler(w)
	b.WriteString(pad + labels + "\n")
	b.WriteString(pad + ticks + "\n")

	for _, row := range m.renderFrames(w) {
		b.WriteString(pad + row + "\n")
	}

	b.WriteString(pad + m.renderMarkerRow(w) + "\n")
	b.WriteString("\n")
	if m.settings.UI.ShowAssets {
		b.WriteString(m.renderAssetPanel())
		b.WriteString("\n")
	}
	b.WriteString(m.renderFooter())

	content := b.String()
	if m.height > 0 {
		content = lipgloss.NewStyle().MaxHeight(m.height).Render(content)
	}
	return content
}

func (m *EditorModel) renderRuler(w int) (string, string) {
	labelRow := newTextRow(w)
	tickRow := newTextRow(w)

	view := m.session.View
	total := m.session.Seq.TotalLength()

	ruler := timeline.BuildRuler(m.session.Seq.SampleRate, view.Scale)
	for _, tick := range ruler.Ticks(view, total) {
		x := int(tick.X)
		var ch rune
		switch {
		case tick.Level == 0:
			ch = '·'
		case tick.Level == 1:
			ch = '╵'
		default:
			ch = '│'
		}
		tickRow.set(x, ch, &RulerTickStyle)
		if tick.Label != "" && m.settings.UI.RulerLabels {
			labelRow.text(x, tick.Label, &RulerLabelStyle)
		}
	}

	// Playhead marker sits on the tick row
	px := int(view.TimeToPixel(m.session.Play.Current))
	tickRow.set(px, '▼', &PlayheadStyle)

	return labelRow.render(), tickRow.render()
}

func (m *EditorModel) renderFrames(w int) []string {
	rows := make([]*textRow, framesRows)
	for i := range rows {
		rows[i] = newTextRow(w)
	}

	view := m.session.View
	sel := m.session.Sel

	for i, f := range m.session.Seq.Frames {
		sx := int(view.TimeToPixel(f.Time))
		ex := int(view.TimeToPixel(f.EndTime()))
		if ex <= 0 || sx >= w || ex <= sx {
			continue
		}

		style := &FrameStyle
		if sel.Contains(f.ID) {
			style = &FrameSelectedStyle
		}

		c0, c1 := sx, ex
		if c0 < 0 {
			c0 = 0
		}
		if c1 > w {
			c1 = w
		}
		for _, row := range rows {
			for x := c0; x < c1; x++ {
				row.set(x, ' ', style)
			}
		}

		// Leading edge, sprite name, frame index
		for _, row := range rows {
			row.set(sx, '▏', style)
		}
		name := f.Sprite
		if name == "" {
			name = "(empty)"
		}
		avail := c1 - c0 - 2
		if avail > 0 {
			if len(name) > avail {
				name = name[:avail]
			}
			rows[1].text(c0+1, name, style)
		}
		if avail > 0 {
			rows[0].text(c0+1, fmt.Sprintf("%d", i), style)
		}

		// Trailing resize handle
		handle := &FrameHandleStyle
		if sel.Contains(f.ID) {
			handle = style
		}
		for _, row := range rows {
			row.set(c1-1, '▕', handle)
		}
	}

	// Playhead cuts through the frame band
	px := int(view.TimeToPixel(m.session.Play.Current))
	for _, row := range rows {
		row.set(px, '│', &PlayheadStyle)
	}

	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = row.render()
	}
	return out
}

func (m *EditorModel) renderMarkerRow(w int) string {
	row := newTextRow(w)

	idx := m.session.MoveTarget()
	if idx >= 0 {
		var t float64
		if idx < m.session.Seq.Len() {
			t = m.session.Seq.Frames[idx].Time
		} else {
			t = m.session.Seq.TotalLength()
		}
		row.set(int(m.session.View.TimeToPixel(t)), '▲', &InsertMarkStyle)
	}

	return row.render()
}

func (m *EditorModel) renderAssetPanel() string {
	items := m.panelItems()
	if len(items) == 0 {
		return " " + DescriptionStyle.Render("No assets in .spriteline/assets")
	}

	title := "ASSETS"
	if m.assetFocus {
		title = "ASSETS (tab to leave, enter inserts at playhead, r replaces)"
	}

	var entries []string
	for i, item := range items {
		label := item.label
		if i == m.assetCursor && m.assetFocus {
			entries = append(entries, AssetSelectedStyle.Render("▸"+label))
		} else {
			entries = append(entries, AssetStyle.Render(" "+label))
		}
	}
	listBlock := HeaderStyle.Render(title) + "\n" + strings.Join(entries, "\n")

	// Preview the highlighted asset next to the list
	preview := ""
	if m.settings.UI.ShowPreview && m.assetCursor < len(items) && !items[m.assetCursor].collection {
		if a, ok := m.lib.Get(items[m.assetCursor].id); ok {
			if rendered, err := m.cache.Get(a); err == nil {
				preview = rendered
			}
		}
	}

	panel := listBlock
	if preview != "" {
		panel = lipgloss.JoinHorizontal(lipgloss.Top, listBlock, "  ", preview)
	}

	border := InactiveBorderStyle
	if m.assetFocus {
		border = ActiveBorderStyle
	}
	return border.Padding(0, 1).Render(panel)
}

func (m *EditorModel) renderFooter() string {
	play := m.session.Play
	seq := m.session.Seq

	state := "⏸"
	if play.Playing {
		state = "▶"
	}
	loop := ""
	if m.loop {
		loop = " ∞"
	}
	status := fmt.Sprintf(" %s %s / %s  %d fps%s",
		state,
		timeline.FormatTime(play.Current),
		timeline.FormatTime(seq.TotalLength()),
		seq.SampleRate,
		loop,
	)

	help := helpLine([][2]string{
		{"space", "play"}, {"←/→", "step"}, {"x", "delete"}, {"d", "dup"},
		{"c/v", "copy/paste"}, {"u", "undo"}, {"tab", "assets"},
		{"?", "help"}, {"q", "back"},
	})

	return NormalStyle.Render(status) + "\n " + help
}
