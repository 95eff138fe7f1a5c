package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/twiced-technology-gmbh/agegate/internal/activity"
	"github.com/twiced-technology-gmbh/agegate/internal/birthdate"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	acceptedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true)
	rejectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	keyStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
)

// DisableColor strips all styling from text output.
func DisableColor() {
	headerStyle = lipgloss.NewStyle()
	dimStyle = lipgloss.NewStyle()
	acceptedStyle = lipgloss.NewStyle()
	rejectedStyle = lipgloss.NewStyle()
	keyStyle = lipgloss.NewStyle()
}

// Messagef writes a formatted message followed by a newline.
func Messagef(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
}

// Outcome renders the result of an accepted submit.
func Outcome(w io.Writer, o birthdate.Outcome) {
	if o.Accepted {
		fmt.Fprintf(w, "%s %s %s\n",
			acceptedStyle.Render("accepted"), o.Message, dimStyle.Render(fmt.Sprintf("(age %d)", o.Age)))
		return
	}
	fmt.Fprintf(w, "%s %s\n", rejectedStyle.Render("rejected"), o.Message)
}

// Invalid renders a submit that was blocked by validation.
func Invalid(w io.Writer, part, message string) {
	label := "invalid"
	if part != "" {
		label += " " + part
	}
	fmt.Fprintf(w, "%s %s\n", rejectedStyle.Render(label), message)
}

// KeyValues renders aligned key/value pairs in the given order.
func KeyValues(w io.Writer, pairs [][2]string) {
	keyW := 0
	for _, p := range pairs {
		keyW = max(keyW, len(p[0]))
	}
	for _, p := range pairs {
		fmt.Fprintf(w, "%s  %s\n", keyStyle.Render(fmt.Sprintf("%-*s", keyW, p[0])), p[1])
	}
}

// ActivityTable renders activity log entries, oldest first.
func ActivityTable(w io.Writer, entries []activity.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, dimStyle.Render("No activity recorded."))
		return
	}

	const (
		pad   = 2
		timeW = len("2006-01-02 15:04:05") + pad
	)
	sessionW, actionW := len("SESSION")+pad, len("ACTION")+pad
	for _, e := range entries {
		sessionW = max(sessionW, len(shortSession(e.Session))+pad)
		actionW = max(actionW, len(e.Action)+pad)
	}

	header := fmt.Sprintf("%-*s %-*s %-*s %s", timeW, "TIME", sessionW, "SESSION", actionW, "ACTION", "DETAIL")
	fmt.Fprintln(w, headerStyle.Render(strings.TrimRight(header, " ")))

	for _, e := range entries {
		action := fmt.Sprintf("%-*s", actionW, e.Action)
		if e.Action == activity.ActionAccepted {
			action = acceptedStyle.Render(action)
		} else {
			action = rejectedStyle.Render(action)
		}
		line := fmt.Sprintf("%-*s %s %s %s",
			timeW, e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			dimStyle.Render(fmt.Sprintf("%-*s", sessionW, shortSession(e.Session))),
			action, e.Detail)
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
}

// shortSession trims a session UUID to its first group.
func shortSession(s string) string {
	if i := strings.IndexByte(s, '-'); i > 0 {
		return s[:i]
	}
	return s
}
