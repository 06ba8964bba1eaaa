package keymap

import (
	"context"
	"fmt"

	"github.com/hijinks/hijinks/internal/boxee"
)

// Box key codes sent with SendKey
const (
	codeMenu     = 257
	codeUp       = 270
	codeDown     = 271
	codeLeft     = 272
	codeRight    = 273
	codeBack     = 275
	codeSelect   = 61453
	codeTextBase = 61696 // added to a character code in keyboard mode
	codeTextBack = 61704 // backspace in keyboard mode
)

// ActionKind tells the caller what a translated key means
type ActionKind int

const (
	// ActionCommand carries a command to send to the box
	ActionCommand ActionKind = iota
	// ActionToggle means keyboard mode was switched; nothing is sent
	ActionToggle
	// ActionPassthrough means the key has no binding
	ActionPassthrough
)

func (k ActionKind) String() string {
	switch k {
	case ActionCommand:
		return "command"
	case ActionToggle:
		return "toggle"
	case ActionPassthrough:
		return "passthrough"
	default:
		return fmt.Sprintf("ActionKind(%d)", int(k))
	}
}

// Action is the result of translating one key
type Action struct {
	Kind    ActionKind
	Command boxee.Command
	Key     Key
}

// volumeDir marks bindings that adjust volume relative to its current level
type volumeDir int

const (
	volumeNone volumeDir = 0
	volumeUp   volumeDir = 1
	volumeDown volumeDir = -1
)

// Binding maps one key to what it does outside keyboard mode
type Binding struct {
	Key         Key
	Group       string
	Description string
	Command     boxee.Command

	volume volumeDir
}

// defaultBindings is the static key table, in display order
var defaultBindings = []Binding{
	{Key: KeyUp, Group: "remote", Description: "up", Command: boxee.SendKey(codeUp)},
	{Key: KeyDown, Group: "remote", Description: "down", Command: boxee.SendKey(codeDown)},
	{Key: KeyLeft, Group: "remote", Description: "left", Command: boxee.SendKey(codeLeft)},
	{Key: KeyRight, Group: "remote", Description: "right", Command: boxee.SendKey(codeRight)},
	{Key: 'k', Group: "remote", Description: "up (vim)", Command: boxee.SendKey(codeUp)},
	{Key: 'j', Group: "remote", Description: "down (vim)", Command: boxee.SendKey(codeDown)},
	{Key: 'h', Group: "remote", Description: "left (vim)", Command: boxee.SendKey(codeLeft)},
	{Key: 'l', Group: "remote", Description: "right (vim)", Command: boxee.SendKey(codeRight)},
	{Key: KeyEnter, Group: "remote", Description: "enter", Command: boxee.SendKey(codeSelect)},
	{Key: KeySpace, Group: "remote", Description: "enter", Command: boxee.SendKey(codeSelect)},
	{Key: KeyDelete, Group: "remote", Description: "back", Command: boxee.SendKey(codeBack)},
	{Key: '\\', Group: "remote", Description: "menu", Command: boxee.SendKey(codeMenu)},

	{Key: '1', Group: "system", Description: "shutdown", Command: boxee.Cmd(boxee.CmdShutdown)},
	{Key: '2', Group: "system", Description: "reset", Command: boxee.Cmd(boxee.CmdReset)},

	{Key: 'u', Group: "volume", Description: "volume up", volume: volumeUp},
	{Key: 'd', Group: "volume", Description: "volume down", volume: volumeDown},
	{Key: 'm', Group: "volume", Description: "mute/unmute", Command: boxee.Cmd(boxee.CmdMute)},

	{Key: 'p', Group: "playback", Description: "pause", Command: boxee.Cmd(boxee.CmdPause)},
	{Key: 's', Group: "playback", Description: "stop", Command: boxee.Cmd(boxee.CmdStop)},
	{Key: 'n', Group: "playback", Description: "play next", Command: boxee.Cmd(boxee.CmdPlayNext)},
	{Key: 'r', Group: "playback", Description: "play previous", Command: boxee.Cmd(boxee.CmdPlayPrev)},
	{Key: '>', Group: "playback", Description: "seek forward 1%", Command: boxee.CmdInt(boxee.CmdSeekPercentageRelative, 1)},
	{Key: '<', Group: "playback", Description: "seek backward 1%", Command: boxee.CmdInt(boxee.CmdSeekPercentageRelative, -1)},
}

// CommandText renders what the binding sends, for help output
func (b Binding) CommandText(step int) string {
	switch b.volume {
	case volumeUp:
		return fmt.Sprintf("%s(current+%d)", boxee.CmdSetVolume, step)
	case volumeDown:
		return fmt.Sprintf("%s(current-%d)", boxee.CmdSetVolume, step)
	}
	return b.Command.String()
}

// Bindings returns the static key table in display order
func Bindings() []Binding {
	out := make([]Binding, len(defaultBindings))
	copy(out, defaultBindings)
	return out
}

// VolumeReader reports the current volume of the box
type VolumeReader interface {
	Volume(ctx context.Context) (int, error)
}

// Translator maps keys to commands. It holds the keyboard mode flag and
// is meant to be driven from a single goroutine.
type Translator struct {
	volume   VolumeReader
	step     int
	table    map[Key]Binding
	keyboard bool
}

// NewTranslator creates a translator that changes volume by step per keypress
func NewTranslator(volume VolumeReader, step int) *Translator {
	table := make(map[Key]Binding, len(defaultBindings))
	for _, b := range defaultBindings {
		table[b.Key] = b
	}
	return &Translator{
		volume: volume,
		step:   step,
		table:  table,
	}
}

// KeyboardMode reports whether keys are sent as text entry
func (t *Translator) KeyboardMode() bool {
	return t.keyboard
}

// Translate returns what key means in the current mode. Volume keys query
// the box for its current level first.
func (t *Translator) Translate(ctx context.Context, key Key) (Action, error) {
	if key == KeyModeToggle {
		t.keyboard = !t.keyboard
		return Action{Kind: ActionToggle, Key: key}, nil
	}

	if t.keyboard {
		if key == KeyBackspace || key == KeyDelete {
			return command(key, boxee.SendKey(codeTextBack)), nil
		}
		return command(key, boxee.SendKey(int(key)+codeTextBase)), nil
	}

	b, ok := t.table[key]
	if !ok {
		return Action{Kind: ActionPassthrough, Key: key}, nil
	}
	if b.volume == volumeNone {
		return command(key, b.Command), nil
	}

	vol, err := t.volume.Volume(ctx)
	if err != nil {
		return Action{}, fmt.Errorf("failed to read volume: %w", err)
	}
	return command(key, boxee.SetVolume(vol+int(b.volume)*t.step)), nil
}

func command(key Key, cmd boxee.Command) Action {
	return Action{Kind: ActionCommand, Command: cmd, Key: key}
}
