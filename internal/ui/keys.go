package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hijinks/hijinks/internal/keymap"
)

// KeysFromMsg converts a terminal key message into raw key events.
// Pasted text yields one key per rune; keys with no equivalent yield none.
func KeysFromMsg(msg tea.KeyMsg) []keymap.Key {
	switch msg.Type {
	case tea.KeyRunes:
		keys := make([]keymap.Key, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			keys = append(keys, keymap.Key(r))
		}
		return keys
	case tea.KeySpace:
		return []keymap.Key{keymap.KeySpace}
	case tea.KeyEnter:
		return []keymap.Key{keymap.KeyEnter}
	case tea.KeyBackspace, tea.KeyDelete:
		return []keymap.Key{keymap.KeyDelete}
	case tea.KeyCtrlH:
		return []keymap.Key{keymap.KeyBackspace}
	case tea.KeyTab:
		return []keymap.Key{keymap.Key('\t')}
	case tea.KeyEsc:
		return []keymap.Key{keymap.KeyEscape}
	case tea.KeyUp:
		return []keymap.Key{keymap.KeyUp}
	case tea.KeyDown:
		return []keymap.Key{keymap.KeyDown}
	case tea.KeyLeft:
		return []keymap.Key{keymap.KeyLeft}
	case tea.KeyRight:
		return []keymap.Key{keymap.KeyRight}
	}
	return nil
}
