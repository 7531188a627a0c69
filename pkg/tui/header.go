package tui

import (
	"github.com/charmbracelet/lipgloss"
)

func renderHeader(width int, title string) string {
	logo := "SPRITELINE"

	logoStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true)

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorNormal))

	headerPadding := lipgloss.NewStyle().
		PaddingLeft(1).
		PaddingRight(1).
		Width(width)

	logoRendered := logoStyle.Render(logo)

	if title == "" {
		rightAlign := lipgloss.NewStyle().
			Width(width - 2).
			Align(lipgloss.Right)
		return headerPadding.Render(rightAlign.Render(logoRendered))
	}

	titleRendered := titleStyle.Render(title)
	gap := width - 2 - lipgloss.Width(title) - lipgloss.Width(logo)
	if gap < 1 {
		gap = 1
	}
	row := lipgloss.JoinHorizontal(
		lipgloss.Top,
		titleRendered,
		lipgloss.NewStyle().Width(gap).Render(""),
		logoRendered,
	)
	return headerPadding.Render(row)
}
