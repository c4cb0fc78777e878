package tui

import (
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
// With color disabled it uses the plain "notty" style.
func NewRenderer(color bool) func(string) (string, error) {
	style := glamour.WithStandardStyle("notty")
	if color {
		style = glamour.WithAutoStyle() // Automatically detect light/dark background
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(80))
	if err != nil {
		return func(markdown string) (string, error) {
			return markdown, nil
		}
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// HelpMarkdown is shown when the interactive session starts.
const HelpMarkdown = `## Controls

| Key | Action |
| --- | --- |
| Enter / Space | **СОТВОРИТЬ**: create a cell |
| q / Ctrl-C | quit |

Three *Alive* cells in a row spawn **Life**.
Three *Dead* cells in a row wipe out the Alive cells right before them.
`
