package ui

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/vitals/internal/util"
)

// TimestampLayout is how run and alert timestamps are printed.
const TimestampLayout = "2006-01-02 15:04:05"

// RenderRunHeader renders the banner printed at the start of a run,
// surrounded by blank lines.
func RenderRunHeader(timestamp string) string {
	title := fmt.Sprintf("=== System Health Check - %s ===", timestamp)
	return "\n" + InfoStyle().Render(title) + "\n\n"
}

// RenderCheckLine renders one metric line, e.g. "  ✓ disk: 42%".
// ok selects the success glyph; anything else gets the failure glyph.
func RenderCheckLine(ok bool, text string) string {
	if ok {
		return "  " + SuccessStyle().Render(SymbolSuccess) + " " + text
	}
	return "  " + ErrorStyle().Render(SymbolFail) + " " + ErrorStyle().Render(text)
}

// RenderError renders an indented "ERROR: ..." line for a failed server.
func RenderError(description string) string {
	return "  " + ErrorStyle().Render("ERROR: "+description)
}

// RenderNote renders an indented informational line.
func RenderNote(text string) string {
	return "  " + text
}

// RenderWarning renders an indented line for work that was skipped.
func RenderWarning(text string) string {
	return "  " + WarningStyle().Render(SymbolWarning+" "+text)
}

// RenderSummary renders the closing line of a run.
func RenderSummary(checked, withIssues, alerts int) string {
	var sb strings.Builder
	sb.WriteString(util.CountOf(checked, "server", "servers") + " checked")
	if withIssues == 0 {
		return SuccessStyle().Render(SymbolSuccess+" "+sb.String()) + MutedStyle().Render(", no issues")
	}
	sb.WriteString(fmt.Sprintf(", %d with issues", withIssues))
	sb.WriteString(", " + util.CountOf(alerts, "alert", "alerts") + " attempted")
	return ErrorStyle().Render(SymbolFail + " " + sb.String())
}

// RenderFailure renders an indented line in the error color.
func RenderFailure(text string) string {
	return "  " + ErrorStyle().Render(text)
}
