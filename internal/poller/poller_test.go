package poller

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/handiism/quran-reels/internal/model"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// script returns snapshots in order, repeating the last one.
type script struct {
	mu    sync.Mutex
	snaps []*model.ProgressSnapshot
	calls int
}

func (s *script) fetch(ctx context.Context) (*model.ProgressSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := min(s.calls, len(s.snaps)-1)
	s.calls++
	return s.snaps[i], nil
}

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) record(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) count(t EventType) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, ev := range r.events {
		if ev.Type == t {
			n++
		}
	}
	return n
}

func (r *recorder) lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, ev := range r.events {
		out = append(out, ev.NewLines...)
	}
	return out
}

func newTestPoller(fetch FetchFunc) (*Poller, *recorder) {
	// A long interval keeps the loop from ticking; tests drive PollOnce.
	p := New(fetch, Options{Interval: time.Hour, Logger: quietLogger})
	rec := &recorder{}
	p.Subscribe(rec.record)
	return p, rec
}

func TestPoller_StartsAndStopsOnEdges(t *testing.T) {
	s := &script{snaps: []*model.ProgressSnapshot{
		{IsRunning: false},
		{IsRunning: true, Percent: 10},
		{IsRunning: true, Percent: 50},
		{IsRunning: false, IsComplete: true, Percent: 100},
		{IsRunning: false, IsComplete: true, Percent: 100},
		{IsRunning: false},
	}}
	p, rec := newTestPoller(s.fetch)
	defer p.Close()

	wantPolling := []bool{false, true, true, false, false, false}
	for i, want := range wantPolling {
		if err := p.PollOnce(context.Background()); err != nil {
			t.Fatalf("PollOnce #%d error = %v", i, err)
		}
		if got := p.IsPolling(); got != want {
			t.Errorf("after snapshot %d IsPolling() = %v, want %v", i, got, want)
		}
	}

	if n := rec.count(EventStarted); n != 1 {
		t.Errorf("started events = %d, want 1", n)
	}
	if n := rec.count(EventStopped); n != 1 {
		t.Errorf("stopped events = %d, want 1", n)
	}
	// idle, idle-after-complete-with-nothing are invisible; the rest show
	if n := rec.count(EventSnapshot); n != 4 {
		t.Errorf("snapshot events = %d, want 4", n)
	}
}

func TestPoller_SnapshotBeforeTransition(t *testing.T) {
	s := &script{snaps: []*model.ProgressSnapshot{{IsRunning: true}}}
	p, rec := newTestPoller(s.fetch)
	defer p.Close()

	p.PollOnce(context.Background())

	if len(rec.events) != 2 || rec.events[0].Type != EventSnapshot || rec.events[1].Type != EventStarted {
		t.Errorf("events = %+v, want snapshot then started", rec.events)
	}
}

func TestPoller_AppendsOnlyNewLogLines(t *testing.T) {
	s := &script{snaps: []*model.ProgressSnapshot{
		{IsRunning: true, Log: []string{"a", "b"}},
		{IsRunning: true, Log: []string{"a", "b", "c"}},
		{IsRunning: true, Log: []string{"a", "b", "c"}},
	}}
	p, rec := newTestPoller(s.fetch)
	defer p.Close()

	for i := 0; i < 3; i++ {
		p.PollOnce(context.Background())
	}

	if got := rec.lines(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("lines = %v, want [a b c]", got)
	}
	if p.Cursor() != 3 {
		t.Errorf("Cursor() = %d, want 3", p.Cursor())
	}
}

func TestPoller_CursorNeverRewinds(t *testing.T) {
	s := &script{snaps: []*model.ProgressSnapshot{
		{IsRunning: true, Log: []string{"a", "b", "c"}},
		{IsRunning: true, Log: []string{"x"}},
		{IsRunning: true, Log: []string{"x", "y", "z", "w"}},
	}}
	p, rec := newTestPoller(s.fetch)
	defer p.Close()

	for i := 0; i < 3; i++ {
		p.PollOnce(context.Background())
	}

	if got := rec.lines(); !reflect.DeepEqual(got, []string{"a", "b", "c", "w"}) {
		t.Errorf("lines = %v", got)
	}
}

func TestPoller_ResetRewindsCursor(t *testing.T) {
	s := &script{snaps: []*model.ProgressSnapshot{
		{IsRunning: true, Log: []string{"old"}},
		{IsRunning: true, Log: []string{"new"}},
	}}
	p, rec := newTestPoller(s.fetch)
	defer p.Close()

	p.PollOnce(context.Background())
	p.Reset()
	if p.Cursor() != 0 {
		t.Fatalf("Cursor() after Reset = %d", p.Cursor())
	}
	p.PollOnce(context.Background())

	if got := rec.lines(); !reflect.DeepEqual(got, []string{"old", "new"}) {
		t.Errorf("lines = %v", got)
	}
}

func TestPoller_DiscardsStaleResponse(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	fetch := func(ctx context.Context) (*model.ProgressSnapshot, error) {
		close(entered)
		<-release
		return &model.ProgressSnapshot{IsRunning: true, Log: []string{"from old job"}}, nil
	}
	p, rec := newTestPoller(fetch)
	defer p.Close()

	errc := make(chan error, 1)
	go func() { errc <- p.PollOnce(context.Background()) }()

	<-entered
	p.Reset()
	close(release)

	if err := <-errc; !errors.Is(err, ErrStale) {
		t.Fatalf("PollOnce() error = %v, want ErrStale", err)
	}
	if len(rec.events) != 0 {
		t.Errorf("stale response produced events: %+v", rec.events)
	}
	if p.IsPolling() || p.Cursor() != 0 {
		t.Errorf("stale response changed state: polling=%v cursor=%d", p.IsPolling(), p.Cursor())
	}
}

func TestPoller_FetchErrorKeepsState(t *testing.T) {
	fail := errors.New("connection refused")
	var calls atomic.Int32
	fetch := func(ctx context.Context) (*model.ProgressSnapshot, error) {
		if calls.Add(1) == 2 {
			return nil, fail
		}
		return &model.ProgressSnapshot{IsRunning: true}, nil
	}
	p, rec := newTestPoller(fetch)
	defer p.Close()

	p.PollOnce(context.Background())
	if err := p.PollOnce(context.Background()); !errors.Is(err, fail) {
		t.Fatalf("PollOnce() error = %v, want %v", err, fail)
	}
	if !p.IsPolling() {
		t.Error("fetch error stopped polling")
	}
	if rec.count(EventStopped) != 0 {
		t.Error("fetch error emitted a stop")
	}
}

func TestPoller_SharesConcurrentRequests(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	fetch := func(ctx context.Context) (*model.ProgressSnapshot, error) {
		calls.Add(1)
		<-release
		return &model.ProgressSnapshot{}, nil
	}
	p, _ := newTestPoller(fetch)
	defer p.Close()

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.PollOnce(context.Background())
		}()
	}

	// let the goroutines join the in-flight call
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if n := calls.Load(); n != 1 {
		t.Errorf("fetch calls = %d, want 1", n)
	}
}

func TestPoller_StartStopIdempotent(t *testing.T) {
	p, rec := newTestPoller(func(ctx context.Context) (*model.ProgressSnapshot, error) {
		return &model.ProgressSnapshot{}, nil
	})
	defer p.Close()

	if !p.Start() || p.Start() {
		t.Error("Start() should succeed once")
	}
	if !p.Stop() || p.Stop() {
		t.Error("Stop() should succeed once")
	}
	if rec.count(EventStarted) != 1 || rec.count(EventStopped) != 1 {
		t.Errorf("events = %+v", rec.events)
	}
}

func TestPoller_CloseBlocksRestart(t *testing.T) {
	p, _ := newTestPoller(func(ctx context.Context) (*model.ProgressSnapshot, error) {
		return &model.ProgressSnapshot{IsRunning: true}, nil
	})

	p.Close()
	p.PollOnce(context.Background())
	if p.IsPolling() || p.Start() {
		t.Error("closed poller restarted")
	}
}

func TestPoller_LoopPollsUntilFinished(t *testing.T) {
	var calls atomic.Int32
	fetch := func(ctx context.Context) (*model.ProgressSnapshot, error) {
		n := calls.Add(1)
		if n < 4 {
			return &model.ProgressSnapshot{IsRunning: true, Percent: float64(n * 25)}, nil
		}
		return &model.ProgressSnapshot{IsComplete: true, Percent: 100}, nil
	}

	p := New(fetch, Options{Interval: 5 * time.Millisecond, Logger: quietLogger})
	defer p.Close()

	stopped := make(chan struct{})
	p.Subscribe(func(ev Event) {
		if ev.Type == EventStopped {
			close(stopped)
		}
	})

	if err := p.PollOnce(context.Background()); err != nil {
		t.Fatal(err)
	}

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatalf("loop did not stop, %d calls", calls.Load())
	}

	if p.IsPolling() {
		t.Error("IsPolling() after stop")
	}
	if n := calls.Load(); n != 4 {
		t.Errorf("fetch calls = %d, want 4", n)
	}
}

func TestPoller_DeliversTransitionsInOrder(t *testing.T) {
	s := &script{snaps: []*model.ProgressSnapshot{
		{IsRunning: true},
		{IsComplete: true},
	}}
	p := New(s.fetch, Options{Interval: time.Hour, Logger: quietLogger})
	defer p.Close()

	entered := make(chan struct{})
	release := make(chan struct{})
	var (
		mu    sync.Mutex
		order []EventType
	)
	p.Subscribe(func(ev Event) {
		if ev.Type == EventStarted {
			close(entered)
			<-release
		}
		mu.Lock()
		order = append(order, ev.Type)
		mu.Unlock()
	})

	first := make(chan error, 1)
	go func() { first <- p.PollOnce(context.Background()) }()
	<-entered

	second := make(chan error, 1)
	go func() { second <- p.PollOnce(context.Background()) }()
	time.Sleep(20 * time.Millisecond)
	close(release)
	<-first
	<-second

	want := []EventType{EventSnapshot, EventStarted, EventSnapshot, EventStopped}
	mu.Lock()
	defer mu.Unlock()
	if !reflect.DeepEqual(order, want) {
		t.Errorf("events = %v, want %v", order, want)
	}
	if p.IsPolling() {
		t.Error("IsPolling() = true after completion")
	}
}
