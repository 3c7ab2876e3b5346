// Package poll implements the recurring fetch loop used to approximate
// realtime updates: fetch immediately, then on every tick until cancelled.
package poll

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	ErrAlreadyStarted = errors.New("poller already started")
	ErrCancelled      = errors.New("poller cancelled")
)

// State tracks a subscription's lifecycle. Cancelled is terminal; a new
// Poller must be created to resume polling.
type State int

const (
	Idle State = iota
	Active
	Cancelled
)

// FetchFunc performs one poll. Errors are logged and swallowed: a failing
// tick never stops the loop.
type FetchFunc func(ctx context.Context) error

// Poller runs a FetchFunc once immediately and then on a fixed interval.
// Ticker semantics apply: a slow fetch delays the next tick, ticks never
// stack.
type Poller struct {
	log zerolog.Logger

	// newTicker is swapped in tests to drive the loop from a virtual clock.
	newTicker func(time.Duration) (<-chan time.Time, func())

	mu    sync.Mutex
	state State
	stop  chan struct{}
	done  chan struct{}
}

func New(log zerolog.Logger) *Poller {
	return &Poller{
		log: log,
		newTicker: func(d time.Duration) (<-chan time.Time, func()) {
			t := time.NewTicker(d)
			return t.C, t.Stop
		},
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
}

// Start begins polling. The fetch runs once before the first tick. Start
// fails on a poller that is already active or has been cancelled.
func (p *Poller) Start(ctx context.Context, interval time.Duration, fetch FetchFunc) error {
	p.mu.Lock()
	switch p.state {
	case Active:
		p.mu.Unlock()
		return ErrAlreadyStarted
	case Cancelled:
		p.mu.Unlock()
		return ErrCancelled
	}
	p.state = Active
	p.mu.Unlock()

	go p.run(ctx, interval, fetch)
	return nil
}

// Stop cancels the subscription and waits for the loop goroutine to exit.
// Idempotent. No fetch runs after Stop returns.
func (p *Poller) Stop() {
	p.mu.Lock()
	prev := p.state
	p.state = Cancelled
	if prev != Cancelled {
		close(p.stop)
	}
	p.mu.Unlock()

	if prev == Active {
		<-p.done
	}
}

// CurrentState returns the subscription state.
func (p *Poller) CurrentState() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Poller) run(ctx context.Context, interval time.Duration, fetch FetchFunc) {
	defer close(p.done)

	tick, cleanup := p.newTicker(interval)
	defer cleanup()

	p.invoke(ctx, fetch)

	for {
		select {
		case <-ctx.Done():
			p.mu.Lock()
			p.state = Cancelled
			p.mu.Unlock()
			return
		case <-p.stop:
			return
		case <-tick:
			p.invoke(ctx, fetch)
		}
	}
}

func (p *Poller) invoke(ctx context.Context, fetch FetchFunc) {
	if err := fetch(ctx); err != nil {
		p.log.Warn().Err(err).Msg("poll tick failed")
	}
}
