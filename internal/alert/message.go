package alert

import (
	"fmt"
	"strings"
	"time"

	"github.com/rileyhilliard/vitals/internal/monitor"
	"github.com/rileyhilliard/vitals/internal/ui"
)

// Message is a composed alert ready for delivery.
type Message struct {
	From    string
	To      []string
	Subject string
	Body    string
}

// Subject returns the alert subject line for a server.
func Subject(serverName string) string {
	return fmt.Sprintf("[ALERT] System Health Issues on %s", serverName)
}

// Body renders the plain-text alert body: a heading with the time, a blank
// line, and one "- METRIC: value" line per issue.
func Body(serverName string, issues []monitor.Result, at time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Critical issues detected on %s at %s:\n\n", serverName, at.Format(ui.TimestampLayout))
	for _, issue := range issues {
		fmt.Fprintf(&b, "- %s: %s\n", strings.ToUpper(string(issue.Metric())), issue.Display())
	}
	return b.String()
}
