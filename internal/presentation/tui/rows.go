package tui

import (
	"io"
	"strings"

	"github.com/aretw0/cellfill/pkg/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ButtonLabel is the text of the create action.
const ButtonLabel = "СОТВОРИТЬ"

// Theme renders cells as cards, one line per cell.
type Theme struct {
	locale domain.Locale
	width  int
	cards  map[domain.Tag]lipgloss.Style
	button lipgloss.Style
	muted  lipgloss.Style
}

// NewTheme builds a theme for w. With color false no escape codes are emitted.
func NewTheme(w io.Writer, locale domain.Locale, width int, color bool) *Theme {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}
	if width <= 0 {
		width = 40
	}

	t := &Theme{
		locale: locale,
		width:  width,
		cards:  make(map[domain.Tag]lipgloss.Style, len(domain.Tags)),
		button: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#7B1FA2")).
			Width(width).
			Align(lipgloss.Center),
		muted: r.NewStyle().Faint(true),
	}
	for _, tag := range domain.Tags {
		t.cards[tag] = r.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			Background(lipgloss.Color(domain.Info(tag).Color)).
			Width(width).
			PaddingLeft(1)
	}
	return t
}

// Row renders one cell: icon glyph, bold label and description.
func (t *Theme) Row(tag domain.Tag) string {
	info := domain.InfoIn(tag, t.locale)
	line := info.Glyph + "  " + strings.ToUpper(info.Label) + "  " + info.Description
	style, ok := t.cards[tag]
	if !ok {
		return line
	}
	return style.Render(line)
}

// Button renders the create action bar.
func (t *Theme) Button() string {
	return t.button.Render(ButtonLabel)
}

// List renders the visible part of seq, scrolled so that the last cell is on screen.
func (t *Theme) List(seq domain.Sequence, vp *Viewport) string {
	start, end := vp.Follow(len(seq))

	var sb strings.Builder
	if start > 0 {
		sb.WriteString(t.muted.Render("  ↑ " + itoa(start) + " more"))
		sb.WriteString("\n")
	}
	for i := start; i < end; i++ {
		sb.WriteString(t.Row(seq[i]))
		sb.WriteString("\n")
	}
	return sb.String()
}
