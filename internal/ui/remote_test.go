package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hijinks/hijinks/internal/boxee"
	"github.com/hijinks/hijinks/internal/keymap"
	"github.com/hijinks/hijinks/internal/poller"
	"github.com/hijinks/hijinks/internal/remote"
)

func TestKeysFromMsg(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want []keymap.Key
	}{
		{"rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}}, []keymap.Key{'p'}},
		{"paste", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ab")}, []keymap.Key{'a', 'b'}},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, []keymap.Key{keymap.KeySpace}},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, []keymap.Key{keymap.KeyEnter}},
		{"backspace", tea.KeyMsg{Type: tea.KeyBackspace}, []keymap.Key{keymap.KeyDelete}},
		{"ctrl-h", tea.KeyMsg{Type: tea.KeyCtrlH}, []keymap.Key{keymap.KeyBackspace}},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, []keymap.Key{keymap.KeyUp}},
		{"down", tea.KeyMsg{Type: tea.KeyDown}, []keymap.Key{keymap.KeyDown}},
		{"left", tea.KeyMsg{Type: tea.KeyLeft}, []keymap.Key{keymap.KeyLeft}},
		{"right", tea.KeyMsg{Type: tea.KeyRight}, []keymap.Key{keymap.KeyRight}},
		{"unmapped", tea.KeyMsg{Type: tea.KeyF5}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := KeysFromMsg(tt.msg)
			if len(got) != len(tt.want) {
				t.Fatalf("KeysFromMsg() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("key %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func newTestModel(t *testing.T) (Model, chan keymap.Key, chan poller.Result[remote.Status]) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	keys := make(chan keymap.Key, 4)
	status := make(chan poller.Result[remote.Status], 1)
	actions := make(chan actionMsg)
	m := newModel(ctx, Options{Endpoint: "10.0.0.5:8080", VolumeStep: 2}, keys, actions, status)
	return m, keys, status
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestModel_QuitKey(t *testing.T) {
	m, keys, _ := newTestModel(t)

	_, cmd := m.Update(runes("q"))
	if !isQuit(cmd) {
		t.Fatal("q should quit outside keyboard mode")
	}
	if len(keys) != 0 {
		t.Errorf("q was forwarded to the box")
	}
}

func TestModel_CtrlCAlwaysQuits(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.keyboard = true

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !isQuit(cmd) {
		t.Fatal("ctrl+c should quit in keyboard mode")
	}
}

func TestModel_ForwardsKeysInOrder(t *testing.T) {
	m, keys, _ := newTestModel(t)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if cmd != nil {
		t.Fatalf("unexpected command for an arrow key")
	}
	next, _ = next.Update(runes("p"))

	for _, want := range []keymap.Key{keymap.KeyUp, 'p'} {
		select {
		case got := <-keys:
			if got != want {
				t.Errorf("forwarded %v, want %v", got, want)
			}
		default:
			t.Fatalf("key %v was not forwarded", want)
		}
	}
	_ = next
}

func TestModel_KeyboardModeTypesQ(t *testing.T) {
	m, keys, _ := newTestModel(t)

	next, _ := m.Update(runes("`"))
	if !next.(Model).keyboard {
		t.Fatal("toggle did not enter keyboard mode")
	}
	next, cmd := next.Update(runes("q"))
	if isQuit(cmd) {
		t.Fatal("q quit while in keyboard mode")
	}

	<-keys
	if got := <-keys; got != 'q' {
		t.Errorf("forwarded %v, want q", got)
	}
	if !strings.Contains(next.View(), "[keyboard mode]") {
		t.Errorf("view does not show keyboard mode")
	}

	next, _ = next.Update(runes("`"))
	_, cmd = next.Update(runes("q"))
	if !isQuit(cmd) {
		t.Fatal("q should quit after leaving keyboard mode")
	}
}

func TestModel_DroppedKey(t *testing.T) {
	m, keys, _ := newTestModel(t)
	for i := 0; i < cap(keys); i++ {
		keys <- 'x'
	}

	next, _ := m.Update(runes("p"))
	if next.(Model).lastErr == nil {
		t.Fatal("expected an error for a dropped key")
	}
}

func TestModel_StatusView(t *testing.T) {
	m, _, _ := newTestModel(t)

	if !strings.Contains(m.View(), "Waiting for status") {
		t.Errorf("view before first poll:\n%s", m.View())
	}

	next, cmd := m.Update(statusMsg{Value: remote.Status{Volume: 50}, At: time.Now()})
	if cmd == nil {
		t.Error("status message did not re-arm the wait")
	}
	view := next.View()
	for _, want := range []string{"Nothing currently playing", "Volume: 50%", "Boxee @ 10.0.0.5:8080"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	playing := remote.Status{
		NowPlaying: boxee.NowPlaying{Playing: true, Title: "Song", Artist: "Band", Album: "Record"},
		Volume:     30,
	}
	next, _ = next.Update(statusMsg{Value: playing, At: time.Now()})
	view = next.View()
	for _, want := range []string{"Currently playing : Song", "Artist: Band", "Album: Record", "Volume: 30%"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestModel_StatusErrorKeepsLastStatus(t *testing.T) {
	m, _, _ := newTestModel(t)

	next, _ := m.Update(statusMsg{Value: remote.Status{Volume: 40}, At: time.Now()})
	next, _ = next.Update(statusMsg{Err: errors.New("connection refused"), At: time.Now()})

	view := next.View()
	if !strings.Contains(view, "Volume: 40%") {
		t.Errorf("last good status lost:\n%s", view)
	}
	if !strings.Contains(view, "status: connection refused") {
		t.Errorf("poll error not shown:\n%s", view)
	}
}

func TestModel_VolumeUnknown(t *testing.T) {
	m, _, _ := newTestModel(t)

	next, _ := m.Update(statusMsg{Value: remote.Status{VolumeErr: boxee.ErrUnexpectedResponse}})
	if !strings.Contains(next.View(), "Volume: unknown") {
		t.Errorf("view:\n%s", next.View())
	}
}

func TestModel_ActionMessages(t *testing.T) {
	m, _, _ := newTestModel(t)

	next, cmd := m.Update(actionMsg{action: keymap.Action{Kind: keymap.ActionCommand, Command: boxee.Cmd(boxee.CmdPause)}})
	if cmd == nil {
		t.Error("action message did not re-arm the wait")
	}
	if !strings.Contains(next.View(), "sent pause()") {
		t.Errorf("view:\n%s", next.View())
	}

	next, _ = next.Update(actionMsg{err: errors.New("box said no")})
	if !strings.Contains(next.View(), "box said no") {
		t.Errorf("view:\n%s", next.View())
	}
}

type fakeRemote struct {
	got chan keymap.Key
}

func (f *fakeRemote) RunHumanCommand(ctx context.Context, key keymap.Key) (keymap.Action, error) {
	f.got <- key
	return keymap.Action{Kind: keymap.ActionCommand, Command: boxee.SendKey(int(key)), Key: key}, nil
}

func TestRunKeys(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := &fakeRemote{got: make(chan keymap.Key, 3)}
	keys := make(chan keymap.Key, 3)
	out := make(chan actionMsg, 3)
	done := make(chan struct{})
	go func() {
		runKeys(ctx, r, keys, out)
		close(done)
	}()

	keys <- 'a'
	keys <- 'b'
	keys <- 'c'
	for _, want := range []keymap.Key{'a', 'b', 'c'} {
		select {
		case msg := <-out:
			if msg.action.Key != want {
				t.Errorf("action for %v, want %v", msg.action.Key, want)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("no action for %v", want)
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("runKeys did not stop on cancel")
	}
}

func TestUsage(t *testing.T) {
	usage := Usage(2)
	for _, want := range []string{
		"REMOTE CONTROLS",
		"SYSTEM CONTROLS",
		"VOLUME CONTROLS",
		"PLAYBACK CONTROLS",
		"by 2%",
		"keyboard mode",
		"typed as text in keyboard mode",
		"ctrl+c",
	} {
		if !strings.Contains(usage, want) {
			t.Errorf("usage missing %q:\n%s", want, usage)
		}
	}
}
