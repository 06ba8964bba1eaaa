package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Spinner shows progress while a blocking step such as discovery runs
type Spinner struct {
	out      io.Writer
	message  string
	frames   []string
	interval time.Duration
	running  bool
	stopCh   chan struct{}
	doneCh   chan struct{}
	mu       sync.Mutex
	start    time.Time
}

var defaultFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// NewSpinner creates a spinner writing to out
func NewSpinner(out io.Writer, message string) *Spinner {
	return &Spinner{
		out:      out,
		message:  message,
		frames:   defaultFrames,
		interval: 80 * time.Millisecond,
	}
}

// Start begins the animation. It does nothing when stdout is not a terminal.
func (s *Spinner) Start() {
	if !isTTY {
		return
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.start = time.Now()
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	s.mu.Unlock()

	go s.spin()
}

func (s *Spinner) spin() {
	defer close(s.doneCh)

	i := 0
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			fmt.Fprint(s.out, "\r"+strings.Repeat(" ", 60)+"\r")
			return
		case <-ticker.C:
			s.mu.Lock()
			elapsed := time.Since(s.start)
			message := s.message
			s.mu.Unlock()

			frame := Color(Cyan, s.frames[i%len(s.frames)])
			if elapsed > 2*time.Second {
				fmt.Fprintf(s.out, "\r%s %s (%ds)   ", frame, message, int(elapsed.Seconds()))
			} else {
				fmt.Fprintf(s.out, "\r%s %s   ", frame, message)
			}
			i++
		}
	}
}

// Stop halts the animation and clears the line
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	close(s.stopCh)
	<-s.doneCh
}
