package ui

import (
	"fmt"
	"strings"

	"github.com/hijinks/hijinks/internal/keymap"
)

// RenderError formats an error for CLI output
func RenderError(err error) string {
	return Color(Red, "Error: ") + err.Error()
}

// RenderSuccess formats a success line
func RenderSuccess(msg string) string {
	return Color(Green, "✓ ") + msg
}

// RenderDim formats secondary text
func RenderDim(msg string) string {
	return Color(Dim, msg)
}

var groupTitles = []struct {
	group string
	title string
}{
	{"remote", "REMOTE CONTROLS"},
	{"system", "SYSTEM CONTROLS"},
	{"volume", "VOLUME CONTROLS"},
	{"playback", "PLAYBACK CONTROLS"},
}

// Usage renders the key help shown on the remote screen
func Usage(step int) string {
	var sb strings.Builder
	sb.WriteString("HIJINKS BOXEE REMOTE\n\n")
	fmt.Fprintf(&sb, " %-9s | %s\n", keymap.KeyQuit, "quit (typed as text in keyboard mode)")
	fmt.Fprintf(&sb, " %-9s | %s\n", "ctrl+c", "quit from any mode")
	fmt.Fprintf(&sb, " %-9s | %s\n", keymap.KeyModeToggle, "activate/deactivate keyboard mode")

	bindings := keymap.Bindings()
	for _, g := range groupTitles {
		sb.WriteString("\n" + g.title + "\n")
		for _, b := range bindings {
			if b.Group != g.group {
				continue
			}
			desc := b.Description
			if b.Key == 'u' || b.Key == 'd' {
				desc = fmt.Sprintf("%s by %d%%", desc, step)
			}
			fmt.Fprintf(&sb, " %-9s | %s\n", b.Key, desc)
		}
	}
	return sb.String()
}
