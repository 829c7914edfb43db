package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typee/internal/render"
)

const wrongSpace = '•'

var (
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cursorStyle    = pendingStyle.Underline(true)
)

func styleCell(cell render.Cell, caretOn bool) string {
	displayed := cell.Char
	style := pendingStyle
	switch cell.Class {
	case render.Correct:
		style = correctStyle
	case render.Incorrect:
		style = incorrectStyle
		if cell.Space {
			displayed = wrongSpace
		}
	}
	if cell.Caret && caretOn {
		style = cursorStyle
	}
	return style.Render(string(displayed))
}

func renderRow(row render.Row, caretOn bool) string {
	var b strings.Builder
	for _, cell := range row.Cells {
		b.WriteString(styleCell(cell, caretOn))
	}
	return b.String()
}

func renderRows(rows []render.Row, caretOn bool) string {
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, renderRow(row, caretOn))
	}
	return strings.Join(lines, "\n")
}
