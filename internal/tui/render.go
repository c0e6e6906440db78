package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

const maxRenderWidth = 100

// Markdown formats assistant output for a terminal. Plain mode and a
// non-TTY stdout both pass the text through untouched so output stays
// pipe friendly.
func Markdown(text string, plain bool) string {
	if plain || !term.IsTerminal(int(os.Stdout.Fd())) {
		return text
	}
	return renderReply(text, stdoutWidth())
}

// renderReply runs text through glamour at the given wrap width,
// falling back to the raw text if rendering fails.
func renderReply(text string, width int) string {
	if width <= 0 {
		width = 80
	}
	if width > maxRenderWidth {
		width = maxRenderWidth
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}

func stdoutWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}
