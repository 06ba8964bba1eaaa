// Package poller runs a function at a fixed interval and publishes its
// latest result on a channel.
package poller

import (
	"context"
	"sync"
	"time"
)

// Result is one invocation of the polled function
type Result[T any] struct {
	Value T
	Err   error
	At    time.Time
}

// Poller calls fn, publishes the result, then sleeps interval, until stopped.
// The interval does not account for how long fn takes.
type Poller[T any] struct {
	interval time.Duration
	fn       func(context.Context) (T, error)
	results  chan Result[T]

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// New creates a stopped poller
func New[T any](interval time.Duration, fn func(context.Context) (T, error)) *Poller[T] {
	return &Poller[T]{
		interval: interval,
		fn:       fn,
		results:  make(chan Result[T], 1),
	}
}

// Results delivers the most recent result. Results nobody read are
// replaced by newer ones.
func (p *Poller[T]) Results() <-chan Result[T] {
	return p.results
}

// Start begins polling in a new goroutine. It is a no-op if already running.
func (p *Poller[T]) Start(ctx context.Context) {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.stopCh = make(chan struct{})
	p.doneCh = make(chan struct{})
	p.mu.Unlock()

	go p.loop(ctx, p.stopCh, p.doneCh)
}

func (p *Poller[T]) loop(ctx context.Context, stopCh <-chan struct{}, doneCh chan struct{}) {
	defer func() {
		p.mu.Lock()
		if p.doneCh == doneCh {
			p.running = false
		}
		p.mu.Unlock()
		close(doneCh)
	}()

	timer := time.NewTimer(p.interval)
	defer timer.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ctx.Done():
			return
		default:
		}

		value, err := p.fn(ctx)
		p.publish(Result[T]{Value: value, Err: err, At: time.Now()})

		timer.Reset(p.interval)
		select {
		case <-stopCh:
			return
		case <-ctx.Done():
			return
		case <-timer.C:
		}
	}
}

// publish replaces any unread result with r
func (p *Poller[T]) publish(r Result[T]) {
	select {
	case p.results <- r:
		return
	default:
	}
	select {
	case <-p.results:
	default:
	}
	select {
	case p.results <- r:
	default:
	}
}

// Stop signals the loop and waits for it to exit. A call to fn that is
// already running completes first; no further calls are made.
func (p *Poller[T]) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	stopCh, doneCh := p.stopCh, p.doneCh
	p.mu.Unlock()

	close(stopCh)
	<-doneCh
}

// Running reports whether the polling loop is active. It turns false once
// Stop is called or the Start context is done.
func (p *Poller[T]) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}
