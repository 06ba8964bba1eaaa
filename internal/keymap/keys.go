// Package keymap turns terminal key events into Boxee commands.
package keymap

import "strconv"

// Key is a raw input event: a character code, or one of the special
// navigation keys below. Special keys use the curses key codes so that
// keyboard-mode offsets match what the box expects from other remotes.
type Key int

// Special keys
const (
	KeyBackspace Key = 8
	KeyEnter     Key = '\n'
	KeyEscape    Key = 27
	KeySpace     Key = ' '
	KeyDelete    Key = 127
	KeyDown      Key = 258
	KeyUp        Key = 259
	KeyLeft      Key = 260
	KeyRight     Key = 261
)

// Keys with a fixed role outside the binding table
const (
	KeyModeToggle Key = '`'
	KeyQuit       Key = 'q'
)

// String returns a short printable name for the key
func (k Key) String() string {
	switch k {
	case KeyBackspace:
		return "backspace"
	case KeyEnter:
		return "enter"
	case KeyEscape:
		return "esc"
	case KeySpace:
		return "space"
	case KeyDelete:
		return "delete"
	case KeyDown:
		return "down"
	case KeyUp:
		return "up"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	}
	if k > ' ' && k < 127 {
		return string(rune(k))
	}
	return "#" + strconv.Itoa(int(k))
}
