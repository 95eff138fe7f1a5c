package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/twiced-technology-gmbh/agegate/internal/birthdate"
)

// Layout constants.
const (
	marginTop    = 1
	marginLeft   = 2
	inputPadding = 1
	boxHeight    = 3 // top border, content, bottom border
)

// --- Styles ---

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, inputPadding)

	borderFocused = lipgloss.Color("62")
	borderValid   = lipgloss.Color("34")
	borderInvalid = lipgloss.Color("196")

	placeholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	selectionStyle   = lipgloss.NewStyle().Reverse(true)

	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236")).
			Padding(0, 1)

	activeButtonStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color("62")).
				Padding(0, 1)

	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2) //nolint:mnd // dialog padding

	acceptedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("34"))
	rejectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

// hitTarget identifies a clickable region.
type hitTarget int

const (
	hitNone hitTarget = iota
	hitInput
	hitButton
)

// layout holds the screen positions of the clickable regions.
type layout struct {
	inputRow    int // row of the input's text line
	inputLeft   int // column of the box's left border
	inputText   int // column of the first character
	inputWidth  int // outer width of the box
	buttonRow   int
	buttonLeft  int
	buttonWidth int
}

// layout computes where the field's parts end up in View.
func (a *App) layout() layout {
	row := marginTop + lipgloss.Height(a.renderTitle()) + 1 + 1 // title, gap, label
	l := layout{
		inputRow:   row + 1,
		inputLeft:  marginLeft,
		inputText:  marginLeft + 1 + inputPadding,
		inputWidth: lipgloss.Width(a.renderInput()),
	}
	row += boxHeight + 1 + 1 // box, message, gap
	l.buttonRow = row
	l.buttonLeft = marginLeft
	l.buttonWidth = lipgloss.Width(a.renderButton())
	return l
}

// hit returns the region under (x, y) and, for the input, the character
// offset the column corresponds to.
func (l layout) hit(x, y int) (hitTarget, int) {
	if y >= l.inputRow-1 && y <= l.inputRow+1 && x >= l.inputLeft && x < l.inputLeft+l.inputWidth {
		return hitInput, max(0, x-l.inputText)
	}
	if y == l.buttonRow && x >= l.buttonLeft && x < l.buttonLeft+l.buttonWidth {
		return hitButton, 0
	}
	return hitNone, 0
}

// View implements tea.Model.
func (a *App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	switch a.view {
	case viewAlert:
		return a.viewAlert()
	case viewHelp:
		return a.viewHelp()
	default:
		return a.viewField()
	}
}

func (a *App) viewField() string {
	parts := []string{
		a.renderTitle(),
		"",
		labelStyle.Render(a.labelText()),
		a.renderInput(),
		messageStyle.Render(a.messageText()),
		"",
		a.renderButton(),
		"",
		a.help.View(a.keys),
	}
	if a.err != nil {
		parts = append(parts, errorStyle.Render(truncate("Error: "+a.err.Error(), a.width-marginLeft)))
	}
	body := lipgloss.JoinVertical(lipgloss.Left, parts...)
	return lipgloss.NewStyle().Margin(marginTop, 0, 0, marginLeft).Render(body)
}

func (a *App) renderTitle() string {
	return titleStyle.Render(a.cfg.Title())
}

func (a *App) labelText() string {
	if ui := a.field.UI(); ui != nil {
		if lbl := ui.QuerySelector("." + birthdate.ClassLabel); lbl != nil {
			return lbl.Text()
		}
	}
	return ""
}

func (a *App) messageText() string {
	if msg := a.field.Message(); msg != nil {
		return msg.Text()
	}
	return ""
}

// renderInput draws the input box: the typed value, the rest of the format
// hint dimmed behind it, and the selection or caret when focused.
func (a *App) renderInput() string {
	in := a.field.Input()
	if in == nil {
		return inputStyle.Render("")
	}

	value := []rune(in.Value())
	var hint []rune
	if parent := in.ParentElement(); parent != nil {
		hint = []rune(parent.Dataset()[birthdate.PlaceholderKey])
	}
	width := max(len(hint), in.MaxLength(), len(value)) + 1 // room for a trailing caret

	focused := a.doc.ActiveElement() == in
	start, end := in.SelectionStart(), in.SelectionEnd()

	var b strings.Builder
	for i := 0; i < width; i++ {
		ch, style := " ", lipgloss.NewStyle()
		switch {
		case i < len(value):
			ch = string(value[i])
		case i < len(hint):
			ch, style = string(hint[i]), placeholderStyle
		}
		if focused && ((start != end && i >= start && i < end) || (start == end && i == start)) {
			style = selectionStyle
		}
		b.WriteString(style.Render(ch))
	}

	box := inputStyle
	switch {
	case in.ClassList().Contains(birthdate.ClassInvalid):
		box = box.BorderForeground(borderInvalid)
	case in.ClassList().Contains(birthdate.ClassValid):
		box = box.BorderForeground(borderValid)
	case focused:
		box = box.BorderForeground(borderFocused)
	}
	return box.Render(b.String())
}

func (a *App) renderButton() string {
	ui := a.field.UI()
	if ui == nil {
		return ""
	}
	btn := ui.QuerySelector("." + birthdate.ClassContinue)
	if btn == nil {
		return ""
	}
	style := buttonStyle
	if a.doc.ActiveElement() == btn {
		style = activeButtonStyle
	}
	return style.Render(btn.Text())
}

func (a *App) viewAlert() string {
	heading := acceptedStyle.Render("Welcome")
	if !a.alert.Accepted {
		heading = rejectedStyle.Render("Access denied")
	}
	content := lipgloss.JoinVertical(lipgloss.Left,
		heading,
		"",
		a.alert.Message,
		"",
		dimStyle.Render("Press any key to continue"),
	)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, dialogStyle.Render(content))
}

func (a *App) viewHelp() string {
	style := a.cfg.HelpStyle()
	if a.plain {
		style = "notty"
	}
	out, err := renderHelp(style, a.cfg.Title(), a.field.Format(), a.cfg.Field.MinAge, a.width)
	if err != nil {
		out = errorStyle.Render("Error: " + err.Error())
	}
	return lipgloss.JoinVertical(lipgloss.Left, out, dimStyle.Render("  f1 or esc to close"))
}

func truncate(s string, maxLen int) string {
	if maxLen < 4 { //nolint:mnd // minimum length for truncation
		maxLen = 4
	}
	if lipgloss.Width(s) <= maxLen {
		return s
	}
	// Slice by runes to avoid breaking multi-byte UTF-8 characters.
	runes := []rune(s)
	target := min(maxLen-3, len(runes)) //nolint:mnd // room for "..."
	for target > 0 && lipgloss.Width(string(runes[:target])) > maxLen-3 {
		target--
	}
	return string(runes[:target]) + "..."
}
