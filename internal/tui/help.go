package tui

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `# %s

Type your birth date as **%s**. Characters that cannot be part of a date
are dropped as you type.

Once the date is complete the field turns green when it is valid. When it is
not, it turns red, the part to fix is selected and typing replaces it.

| key | action |
|---|---|
| enter | continue |
| tab / shift+tab | move between the field and the button |
| ctrl+a | select everything |
| left / right / home / end | move the cursor |
| f1 | toggle this help |
| esc | quit |

You must be at least **%d** years old to continue.
`

// renderHelp renders the help screen as markdown with the given glamour style.
func renderHelp(style, title, format string, minAge, width int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(max(width-4, 20))} //nolint:mnd // margins
	if style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("creating help renderer: %w", err)
	}
	return r.Render(fmt.Sprintf(helpMarkdown, title, format, minAge))
}
