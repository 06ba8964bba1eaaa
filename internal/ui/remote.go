package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hijinks/hijinks/internal/keymap"
	"github.com/hijinks/hijinks/internal/poller"
	"github.com/hijinks/hijinks/internal/remote"
)

// keyQueueSize bounds keys waiting for the box to answer
const keyQueueSize = 64

// Remote is what the remote screen drives
type Remote interface {
	RunHumanCommand(ctx context.Context, key keymap.Key) (keymap.Action, error)
}

// Options configures the remote screen
type Options struct {
	Endpoint   string
	VolumeStep int
}

type statusMsg poller.Result[remote.Status]

type actionMsg struct {
	action keymap.Action
	err    error
}

// Model is the bubbletea model of the remote screen. Key presses are
// queued to a single worker goroutine so commands reach the box in the
// order they were typed.
type Model struct {
	ctx     context.Context
	opts    Options
	usage   string
	keys    chan<- keymap.Key
	actions <-chan actionMsg
	status  <-chan poller.Result[remote.Status]

	// keyboard mirrors the translator's mode. The worker applies keys in
	// queue order and a toggle cannot fail, so flipping on every queued
	// toggle tracks it exactly without reading the translator.
	keyboard bool

	current  remote.Status
	polled   bool
	pollErr  error
	polledAt time.Time

	last    string
	lastErr error
}

func newModel(ctx context.Context, opts Options, keys chan<- keymap.Key, actions <-chan actionMsg, status <-chan poller.Result[remote.Status]) Model {
	return Model{
		ctx:     ctx,
		opts:    opts,
		usage:   Usage(opts.VolumeStep),
		keys:    keys,
		actions: actions,
		status:  status,
	}
}

// Init starts listening for poll results and command outcomes
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.waitForStatus(), m.waitForAction())
}

func (m Model) waitForStatus() tea.Cmd {
	return func() tea.Msg {
		select {
		case r := <-m.status:
			return statusMsg(r)
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m Model) waitForAction() tea.Cmd {
	return func() tea.Msg {
		select {
		case a := <-m.actions:
			return a
		case <-m.ctx.Done():
			return nil
		}
	}
}

// Update handles one message
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case statusMsg:
		m.polledAt = msg.At
		m.pollErr = msg.Err
		if msg.Err == nil {
			m.current = msg.Value
			m.polled = true
		}
		return m, m.waitForStatus()

	case actionMsg:
		m.lastErr = msg.err
		if msg.err == nil {
			m.last = describeAction(msg.action)
		}
		return m, m.waitForAction()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	for _, key := range KeysFromMsg(msg) {
		if key == keymap.KeyQuit && !m.keyboard {
			return m, tea.Quit
		}
		select {
		case m.keys <- key:
			if key == keymap.KeyModeToggle {
				m.keyboard = !m.keyboard
			}
		default:
			m.lastErr = fmt.Errorf("box is not keeping up, dropped key %v", key)
			return m, nil
		}
	}
	return m, nil
}

func describeAction(a keymap.Action) string {
	switch a.Kind {
	case keymap.ActionToggle:
		return "keyboard mode toggled"
	case keymap.ActionPassthrough:
		if a.Command.IsZero() {
			return fmt.Sprintf("no binding for %v", a.Key)
		}
	}
	return "sent " + a.Command.String()
}

// View renders the screen
func (m Model) View() string {
	p := newPalette()

	var sb strings.Builder
	sb.WriteString(p.title.Render("Boxee @ " + m.opts.Endpoint))
	if m.keyboard {
		sb.WriteString("  " + p.mode.Render("[keyboard mode]"))
	}
	sb.WriteString("\n\n")
	sb.WriteString(m.usage)
	sb.WriteString("\n")

	switch {
	case !m.polled && m.pollErr == nil:
		sb.WriteString(p.dim.Render("Waiting for status...") + "\n")
	case m.current.NowPlaying.Playing:
		np := m.current.NowPlaying
		sb.WriteString(p.playing.Render("Currently playing : "+np.Title) + "\n")
		sb.WriteString(p.playing.Render("Artist: "+np.Artist) + "\n")
		sb.WriteString(p.playing.Render("Album: "+np.Album) + "\n")
	default:
		sb.WriteString(p.playing.Render("Nothing currently playing") + "\n")
	}

	if m.polled {
		if m.current.VolumeErr != nil {
			sb.WriteString(p.volume.Render("Volume: unknown") + "\n")
		} else {
			sb.WriteString(p.volume.Render(fmt.Sprintf("Volume: %d%%", m.current.Volume)) + "\n")
		}
	}

	sb.WriteString("\n")
	if m.pollErr != nil {
		sb.WriteString(p.err.Render("status: "+m.pollErr.Error()) + "\n")
	}
	if m.lastErr != nil {
		sb.WriteString(p.err.Render(m.lastErr.Error()) + "\n")
	} else if m.last != "" {
		sb.WriteString(p.dim.Render(m.last) + "\n")
	}
	return sb.String()
}

// runKeys sends queued keys to the box one at a time
func runKeys(ctx context.Context, r Remote, keys <-chan keymap.Key, out chan<- actionMsg) {
	for {
		select {
		case <-ctx.Done():
			return
		case key := <-keys:
			action, err := r.RunHumanCommand(ctx, key)
			select {
			case out <- actionMsg{action: action, err: err}:
			case <-ctx.Done():
				return
			}
		}
	}
}

// Run shows the remote screen until the user quits or ctx is done.
// Cancellation is a normal exit.
func Run(ctx context.Context, r Remote, status <-chan poller.Result[remote.Status], opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	keys := make(chan keymap.Key, keyQueueSize)
	actions := make(chan actionMsg, keyQueueSize)
	go runKeys(ctx, r, keys, actions)

	m := newModel(ctx, opts, keys, actions, status)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
