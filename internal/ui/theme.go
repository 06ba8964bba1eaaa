// Package ui provides the terminal front end: styled CLI output and the
// interactive remote screen.
package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// ANSI color codes for plain CLI output
const (
	Reset = "\033[0m"
	Dim   = "\033[2m"
	Green = "\033[32m"
	Red   = "\033[31m"
	Cyan  = "\033[36m"
)

var (
	colorEnabled = true
	isTTY        = true
)

func init() {
	// Check NO_COLOR env var (https://no-color.org/)
	if os.Getenv("NO_COLOR") != "" {
		colorEnabled = false
	}
	// Check if stdout is a TTY
	isTTY = term.IsTerminal(int(os.Stdout.Fd()))
	if !isTTY {
		colorEnabled = false
	}
}

// SetNoColor disables color output
func SetNoColor(disable bool) {
	if disable {
		colorEnabled = false
	}
}

// IsInteractive reports whether both stdin and stdout are terminals,
// which the remote screen needs for raw key input.
func IsInteractive() bool {
	return isTTY && term.IsTerminal(int(os.Stdin.Fd()))
}

// Color wraps text with an ANSI color code
func Color(code, text string) string {
	if !colorEnabled {
		return text
	}
	return code + text + Reset
}

// palette holds the remote screen styles. Pair colors follow the classic
// curses remote: green for now playing, blue for volume.
type palette struct {
	title   lipgloss.Style
	playing lipgloss.Style
	volume  lipgloss.Style
	mode    lipgloss.Style
	err     lipgloss.Style
	dim     lipgloss.Style
}

func newPalette() palette {
	fg := func(c string) lipgloss.Style {
		s := lipgloss.NewStyle()
		if colorEnabled {
			s = s.Foreground(lipgloss.Color(c))
		}
		return s
	}
	return palette{
		title:   fg("6").Bold(true),
		playing: fg("2"),
		volume:  fg("4"),
		mode:    fg("3").Bold(true),
		err:     fg("1"),
		dim:     fg("8"),
	}
}
