package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// Title is the screen heading.
const Title = "Клеточное наполнение"

// PrintBanner outputs the cellfill banner followed by the screen title.
func PrintBanner(w io.Writer, version string) {
	p := termenv.NewOutput(w).ColorProfile()
	// Gradient from the Life violet to the button purple.
	s1 := termenv.String("   ___ ___| | |/ _(_) | |").Foreground(p.Color("#e1bee7"))
	s2 := termenv.String("  / __/ _ \\ | | |_| | | |").Foreground(p.Color("#ce93d8"))
	s3 := termenv.String(" | (_|  __/ | |  _| | | |").Foreground(p.Color("#ba68c8"))
	s4 := termenv.String("  \\___\\___|_|_|_| |_|_|_|").Foreground(p.Color("#7b1fa2"))

	fmt.Fprintln(w)
	fmt.Fprintln(w, s1)
	fmt.Fprintln(w, s2)
	fmt.Fprintln(w, s3)
	fmt.Fprintln(w, s4)
	fmt.Fprintln(w)
	title := termenv.String(fmt.Sprintf("  %s  v%s", Title, strings.TrimSpace(version))).Bold()
	fmt.Fprintln(w, title)
	fmt.Fprintln(w)
}
