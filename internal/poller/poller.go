// Package poller drives the progress poll of the rendering backend.
//
// A Poller is either idle or polling. It starts its loop the first time a
// snapshot reports a running job and stops it on the first snapshot that
// does not. Each tick waits for the previous request to finish, and a
// generation counter bumped by Reset discards responses that belong to a
// superseded submission.
package poller

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/handiism/quran-reels/internal/model"
	"golang.org/x/sync/singleflight"
)

// Defaults for Options.
const (
	DefaultInterval = time.Second
	DefaultTimeout  = 10 * time.Second
)

// ErrStale is returned by PollOnce when the response arrived after Reset.
var ErrStale = errors.New("stale progress response")

// FetchFunc retrieves the current snapshot.
type FetchFunc func(ctx context.Context) (*model.ProgressSnapshot, error)

// EventType classifies poller events.
type EventType string

const (
	// EventSnapshot carries a visible snapshot and the log lines not shown yet.
	EventSnapshot EventType = "snapshot"
	// EventStarted is emitted on the idle to polling transition.
	EventStarted EventType = "started"
	// EventStopped is emitted on the polling to idle transition.
	EventStopped EventType = "stopped"
)

// Event is delivered to subscribers.
type Event struct {
	Type       EventType
	Generation uint64
	Snapshot   *model.ProgressSnapshot
	NewLines   []string
}

// Options configures a Poller.
type Options struct {
	// Interval is the fixed delay between the end of one request and the
	// start of the next.
	Interval time.Duration

	// Timeout bounds each request made by the loop.
	Timeout time.Duration

	Logger *slog.Logger
}

// Poller tracks the polling session and the log cursor.
type Poller struct {
	fetch    FetchFunc
	interval time.Duration
	timeout  time.Duration
	logger   *slog.Logger
	group    singleflight.Group

	// emitMu orders state changes with their delivery: listeners see
	// events in the order the transitions were applied.
	emitMu sync.Mutex

	mu         sync.Mutex
	cancel     context.CancelFunc
	closed     bool
	generation uint64
	cursor     int
	listeners  []func(Event)
}

// New creates an idle poller.
func New(fetch FetchFunc, opts Options) *Poller {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Poller{
		fetch:    fetch,
		interval: opts.Interval,
		timeout:  opts.Timeout,
		logger:   opts.Logger,
	}
}

// Subscribe registers a listener. Listeners run on the goroutine that
// applied the snapshot, which may be the poll loop.
func (p *Poller) Subscribe(fn func(Event)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, fn)
}

// IsPolling reports whether the loop is active.
func (p *Poller) IsPolling() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}

// Cursor returns how many log entries have been delivered.
func (p *Poller) Cursor() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cursor
}

// Generation returns the current submission generation.
func (p *Poller) Generation() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.generation
}

// Reset rewinds the log cursor for a new submission and invalidates
// responses to requests issued before the call.
func (p *Poller) Reset() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.generation++
	p.cursor = 0
	return p.generation
}

// Start activates the loop if idle. It reports whether a loop was started.
func (p *Poller) Start() bool {
	p.emitMu.Lock()
	defer p.emitMu.Unlock()

	p.mu.Lock()
	started := p.startLocked()
	gen := p.generation
	p.mu.Unlock()

	if started {
		p.emit([]Event{{Type: EventStarted, Generation: gen}})
	}
	return started
}

// Stop cancels the loop if active. It reports whether a loop was stopped.
func (p *Poller) Stop() bool {
	p.emitMu.Lock()
	defer p.emitMu.Unlock()

	p.mu.Lock()
	stopped := p.stopLocked()
	gen := p.generation
	p.mu.Unlock()

	if stopped {
		p.emit([]Event{{Type: EventStopped, Generation: gen}})
	}
	return stopped
}

// Close stops the loop for good; later snapshots no longer restart it.
func (p *Poller) Close() {
	p.mu.Lock()
	p.closed = true
	p.stopLocked()
	p.mu.Unlock()
}

// PollOnce fetches one snapshot and applies it.
//
// Concurrent calls within the same generation share a single request, and
// each applies and delivers its result before the next one is applied.
// Listeners must not call back into the Poller except for IsPolling,
// Cursor and Generation. Fetch failures are logged and returned without touching the state.
func (p *Poller) PollOnce(ctx context.Context) error {
	gen := p.Generation()

	v, err, shared := p.group.Do(strconv.FormatUint(gen, 10), func() (any, error) {
		return p.fetch(ctx)
	})
	if err != nil {
		if ctx.Err() != nil {
			p.logger.Debug("progress poll cancelled", "error", err)
		} else {
			p.logger.Error("progress poll failed", "error", err)
		}
		return err
	}

	p.emitMu.Lock()
	defer p.emitMu.Unlock()

	events, ok := p.apply(gen, v.(*model.ProgressSnapshot))
	if !ok {
		p.logger.Debug("discarding stale progress response", "generation", gen)
		return ErrStale
	}
	if shared {
		p.logger.Debug("progress response shared", "generation", gen)
	}

	p.emit(events)
	return nil
}

func (p *Poller) apply(gen uint64, snap *model.ProgressSnapshot) ([]Event, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if gen != p.generation {
		return nil, false
	}

	var events []Event
	if snap.Visible() {
		var lines []string
		if p.cursor < len(snap.Log) {
			lines = append([]string(nil), snap.Log[p.cursor:]...)
			p.cursor = len(snap.Log)
		}
		events = append(events, Event{Type: EventSnapshot, Generation: gen, Snapshot: snap, NewLines: lines})
	}

	switch {
	case snap.IsRunning && p.cancel == nil:
		if p.startLocked() {
			events = append(events, Event{Type: EventStarted, Generation: gen})
		}
	case !snap.IsRunning && p.cancel != nil:
		p.stopLocked()
		events = append(events, Event{Type: EventStopped, Generation: gen})
	}

	return events, true
}

func (p *Poller) startLocked() bool {
	if p.cancel != nil || p.closed {
		return false
	}
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	go p.run(ctx)
	p.logger.Debug("polling started", "interval", p.interval)
	return true
}

func (p *Poller) stopLocked() bool {
	if p.cancel == nil {
		return false
	}
	p.cancel()
	p.cancel = nil
	p.logger.Debug("polling stopped")
	return true
}

func (p *Poller) run(ctx context.Context) {
	timer := time.NewTimer(p.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
		if ctx.Err() != nil {
			return
		}

		p.tick(ctx)
		timer.Reset(p.interval)
	}
}

func (p *Poller) tick(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	_ = p.PollOnce(ctx)
}

func (p *Poller) emit(events []Event) {
	if len(events) == 0 {
		return
	}
	p.mu.Lock()
	listeners := slices.Clone(p.listeners)
	p.mu.Unlock()

	for _, ev := range events {
		for _, fn := range listeners {
			fn(ev)
		}
	}
}
