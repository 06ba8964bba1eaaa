package keymap

import (
	"context"
	"errors"
	"testing"

	"github.com/hijinks/hijinks/internal/boxee"
)

type fakeVolume struct {
	level int
	err   error
	calls int
}

func (f *fakeVolume) Volume(ctx context.Context) (int, error) {
	f.calls++
	return f.level, f.err
}

func mustTranslate(t *testing.T, tr *Translator, key Key) Action {
	t.Helper()
	action, err := tr.Translate(context.Background(), key)
	if err != nil {
		t.Fatalf("Translate(%v) failed: %v", key, err)
	}
	return action
}

func TestTranslateStaticTable(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{KeyUp, "SendKey(270)"},
		{KeyDown, "SendKey(271)"},
		{KeyLeft, "SendKey(272)"},
		{KeyRight, "SendKey(273)"},
		{'k', "SendKey(270)"},
		{'j', "SendKey(271)"},
		{'h', "SendKey(272)"},
		{'l', "SendKey(273)"},
		{KeyEnter, "SendKey(61453)"},
		{KeySpace, "SendKey(61453)"},
		{KeyDelete, "SendKey(275)"},
		{'\\', "SendKey(257)"},
		{'m', "mute()"},
		{'p', "pause()"},
		{'s', "stop()"},
		{'n', "PlayNext()"},
		{'r', "PlayPrev()"},
		{'1', "Shutdown()"},
		{'2', "Reset()"},
		{'>', "SeekPercentageRelative(1)"},
		{'<', "SeekPercentageRelative(-1)"},
	}

	tr := NewTranslator(&fakeVolume{}, 2)
	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			action := mustTranslate(t, tr, tt.key)
			if action.Kind != ActionCommand {
				t.Fatalf("Kind = %v, want command", action.Kind)
			}
			if got := action.Command.String(); got != tt.want {
				t.Errorf("Translate(%v) = %s, want %s", tt.key, got, tt.want)
			}
		})
	}
}

func TestArrowsDistinct(t *testing.T) {
	tr := NewTranslator(&fakeVolume{}, 2)
	seen := make(map[string]Key)
	for _, key := range []Key{KeyUp, KeyDown, KeyLeft, KeyRight} {
		cmd := mustTranslate(t, tr, key).Command.String()
		if other, dup := seen[cmd]; dup {
			t.Errorf("%v and %v both map to %s", key, other, cmd)
		}
		seen[cmd] = key
	}
}

func TestKeyboardModeTakesPrecedence(t *testing.T) {
	tr := NewTranslator(&fakeVolume{}, 2)

	action := mustTranslate(t, tr, KeyModeToggle)
	if action.Kind != ActionToggle {
		t.Fatalf("toggle Kind = %v", action.Kind)
	}
	if !action.Command.IsZero() {
		t.Errorf("toggle carried a command: %v", action.Command)
	}
	if !tr.KeyboardMode() {
		t.Fatal("keyboard mode not enabled")
	}

	tests := []struct {
		key  Key
		want string
	}{
		{'a', "SendKey(61793)"},
		{'q', "SendKey(61809)"},
		{'u', "SendKey(61813)"},
		{KeyUp, "SendKey(61955)"},
		{KeyRight, "SendKey(61957)"},
		{KeyBackspace, "SendKey(61704)"},
		{KeyDelete, "SendKey(61704)"},
		{KeySpace, "SendKey(61728)"},
	}
	for _, tt := range tests {
		action := mustTranslate(t, tr, tt.key)
		if action.Kind != ActionCommand {
			t.Fatalf("Translate(%v) Kind = %v", tt.key, action.Kind)
		}
		if got := action.Command.String(); got != tt.want {
			t.Errorf("keyboard Translate(%v) = %s, want %s", tt.key, got, tt.want)
		}
	}
}

func TestToggleTwiceRestoresMappings(t *testing.T) {
	tr := NewTranslator(&fakeVolume{}, 2)
	before := mustTranslate(t, tr, KeyUp).Command

	mustTranslate(t, tr, KeyModeToggle)
	mustTranslate(t, tr, KeyModeToggle)

	if tr.KeyboardMode() {
		t.Fatal("keyboard mode still enabled after two toggles")
	}
	if after := mustTranslate(t, tr, KeyUp).Command; after != before {
		t.Errorf("up = %v after toggling twice, want %v", after, before)
	}
}

func TestVolumeKeys(t *testing.T) {
	vol := &fakeVolume{level: 50}
	tr := NewTranslator(vol, 2)

	if got := mustTranslate(t, tr, 'u').Command; got != boxee.SetVolume(52) {
		t.Errorf("volume up = %v, want SetVolume(52)", got)
	}
	if got := mustTranslate(t, tr, 'd').Command; got != boxee.SetVolume(48) {
		t.Errorf("volume down = %v, want SetVolume(48)", got)
	}
	if vol.calls != 2 {
		t.Errorf("volume queried %d times, want 2", vol.calls)
	}
}

func TestVolumeNotClamped(t *testing.T) {
	tr := NewTranslator(&fakeVolume{level: 99}, 2)
	if got := mustTranslate(t, tr, 'u').Command; got != boxee.SetVolume(101) {
		t.Errorf("volume up = %v, want SetVolume(101)", got)
	}
}

func TestVolumeError(t *testing.T) {
	tr := NewTranslator(&fakeVolume{err: boxee.ErrUnexpectedResponse}, 2)
	_, err := tr.Translate(context.Background(), 'u')
	if !errors.Is(err, boxee.ErrUnexpectedResponse) {
		t.Fatalf("Translate error = %v, want ErrUnexpectedResponse", err)
	}
}

func TestPassthrough(t *testing.T) {
	tr := NewTranslator(&fakeVolume{}, 2)
	for _, key := range []Key{'x', 'z', KeyEscape, 9999} {
		action := mustTranslate(t, tr, key)
		if action.Kind != ActionPassthrough {
			t.Errorf("Translate(%v) Kind = %v, want passthrough", key, action.Kind)
		}
		if action.Key != key {
			t.Errorf("Translate(%v) Key = %v", key, action.Key)
		}
	}
}

func TestBindingsCommandText(t *testing.T) {
	for _, b := range Bindings() {
		text := b.CommandText(2)
		switch b.Key {
		case 'u':
			if text != "SetVolume(current+2)" {
				t.Errorf("u CommandText = %s", text)
			}
		case 'd':
			if text != "SetVolume(current-2)" {
				t.Errorf("d CommandText = %s", text)
			}
		default:
			if text == "()" {
				t.Errorf("binding %v has no command", b.Key)
			}
		}
	}
}
