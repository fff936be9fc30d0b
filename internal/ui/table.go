package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ServerTableRow represents a row in the configured-servers table.
type ServerTableRow struct {
	Name    string
	Host    string
	User    string
	KeyPath string
}

// RenderServerTable renders configured servers as an aligned table.
func RenderServerTable(rows []ServerTableRow) string {
	if len(rows) == 0 {
		return "No servers configured"
	}

	widths := []int{len("NAME"), len("HOST"), len("USER")}
	for _, row := range rows {
		widths[0] = max(widths[0], lipgloss.Width(row.Name))
		widths[1] = max(widths[1], lipgloss.Width(row.Host))
		widths[2] = max(widths[2], lipgloss.Width(row.User))
	}

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary)
	mutedStyle := MutedStyle()

	var output strings.Builder

	header := "  " + padRight("NAME", widths[0]+3) +
		padRight("HOST", widths[1]+3) +
		padRight("USER", widths[2]+3) +
		"KEY"
	output.WriteString(headerStyle.Render(header))
	output.WriteString("\n")

	for _, row := range rows {
		line := "  " + padRight(row.Name, widths[0]+3) +
			padRight(row.Host, widths[1]+3) +
			padRight(row.User, widths[2]+3) +
			mutedStyle.Render(row.KeyPath)
		output.WriteString(line)
		output.WriteString("\n")
	}

	return output.String()
}

// padRight pads a string to the specified width.
func padRight(s string, width int) string {
	// Account for ANSI codes when calculating visible length
	visibleLen := lipgloss.Width(s)
	if visibleLen >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visibleLen)
}
