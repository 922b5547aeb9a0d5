// Package console is the core of the generation console.
//
// A Console owns the progress poller and turns snapshots, submissions and
// failures into State values and alerts for its subscribers. It does not
// render anything; internal/tui and cmd/reels-cli do.
package console

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/handiism/quran-reels/internal/model"
	"github.com/handiism/quran-reels/internal/poller"
	"golang.org/x/sync/errgroup"
)

// ErrRejected is returned by Generate when the server refuses the job.
var ErrRejected = errors.New("job rejected by server")

// API is the subset of the backend client the console needs.
type API interface {
	Config(ctx context.Context) (*model.ServerConfig, error)
	Progress(ctx context.Context) (*model.ProgressSnapshot, error)
	Generate(ctx context.Context, req *model.GenerationRequest) (*model.GenerateResponse, error)
	Preview(ctx context.Context, req *model.PreviewRequest) error
	RefreshFonts(ctx context.Context) (*model.RefreshFontsResponse, error)
	BaseURL() string
}

// State is the rendered state of the console.
type State struct {
	// StatusVisible is set once a snapshot reports a running, complete or
	// failed job.
	StatusVisible bool
	Percent       float64
	Status        string
	JobError      string

	// Log holds every line shown since the last submission.
	Log []string

	PreviewVisible bool
	PreviewURL     string
	OutputFilename string

	// Busy disables the generate control while the poller is active.
	Busy          bool
	GenerateLabel string

	// Fonts is the font selector contents; Config is the last server
	// config, nil until loaded.
	Fonts  []model.FontOption
	Config *model.ServerConfig
}

// Alert is a user-facing message.
type Alert struct {
	Key     string
	Message string
}

// EventType classifies console events.
type EventType string

const (
	EventState EventType = "state"
	EventLog   EventType = "log"
	EventAlert EventType = "alert"
)

// Event is delivered to subscribers.
type Event struct {
	Type  EventType
	State State
	Line  string
	Alert Alert
}

// Options configures a Console.
type Options struct {
	PollInterval   time.Duration
	RequestTimeout time.Duration
	Language       string
	Logger         *slog.Logger
}

// Console coordinates the API, the poller and subscribers.
type Console struct {
	api      API
	poller   *poller.Poller
	texts    *Localization
	logger   *slog.Logger
	interval time.Duration

	mu         sync.Mutex
	state      State
	generation uint64
	finished   bool
	listeners  []func(Event)
}

// New creates a console. Call Bootstrap to load fonts and pick up a job that
// is already running.
func New(api API, opts Options) *Console {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = poller.DefaultInterval
	}

	c := &Console{
		api:      api,
		texts:    NewLocalization(opts.Language),
		logger:   opts.Logger,
		interval: opts.PollInterval,
	}
	c.state = State{
		Status:        c.texts.Text(KeyPreparing),
		GenerateLabel: c.texts.Text(KeyGenerate),
		Fonts:         model.DefaultFontOptions(),
	}
	c.poller = poller.New(api.Progress, poller.Options{
		Interval: opts.PollInterval,
		Timeout:  opts.RequestTimeout,
		Logger:   opts.Logger.With("component", "poller"),
	})
	c.poller.Subscribe(c.handlePoll)
	return c
}

// Texts returns the console's localization.
func (c *Console) Texts() *Localization { return c.texts }

// Subscribe registers a listener for state, log and alert events. Listeners
// may be called from the poll goroutine.
func (c *Console) Subscribe(fn func(Event)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// State returns a copy of the current state.
func (c *Console) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// IsPolling reports whether the poll loop is active.
func (c *Console) IsPolling() bool {
	return c.poller.IsPolling()
}

// Bootstrap loads the font list and polls once, concurrently. The group only
// joins the two calls: failures are logged, neither cancels the other, and
// the bootstrap itself never fails.
func (c *Console) Bootstrap(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error {
		c.LoadFonts(ctx)
		return nil
	})
	g.Go(func() error {
		_ = c.Poll(ctx)
		return nil
	})
	return g.Wait()
}

// LoadFonts fetches /api/config. A non-empty font list replaces the font
// options; a failure or an empty list keeps them. It reports whether the
// options were replaced.
func (c *Console) LoadFonts(ctx context.Context) bool {
	cfg, err := c.api.Config(ctx)
	if err != nil {
		c.logger.Error("failed to load fonts", "error", err)
		return false
	}

	c.mu.Lock()
	c.state.Config = cfg
	options := model.FontOptions(cfg.AvailableFonts)
	if options != nil {
		c.state.Fonts = options
	}
	st := c.snapshotLocked()
	c.mu.Unlock()

	if options == nil {
		c.logger.Info("no fonts available")
	} else {
		c.logger.Info("loaded fonts", "fonts", cfg.AvailableFonts)
	}
	c.emit(Event{Type: EventState, State: st})
	return options != nil
}

// RefreshFonts asks the backend to rescan its fonts and applies the result
// like LoadFonts.
func (c *Console) RefreshFonts(ctx context.Context) (bool, error) {
	resp, err := c.api.RefreshFonts(ctx)
	if err != nil {
		c.logger.Error("failed to refresh fonts", "error", err)
		return false, err
	}
	if !resp.Success {
		err := fmt.Errorf("%w: %s", ErrRejected, resp.Error)
		c.logger.Error("font refresh refused", "error", err)
		return false, err
	}

	options := model.FontOptions(resp.Fonts)
	if options == nil {
		c.logger.Info("no fonts after refresh")
		return false, nil
	}

	c.mu.Lock()
	c.state.Fonts = options
	if c.state.Config != nil {
		cfg := *c.state.Config
		cfg.AvailableFonts = resp.Fonts
		c.state.Config = &cfg
	}
	st := c.snapshotLocked()
	c.mu.Unlock()

	c.logger.Info("refreshed fonts", "count", resp.FontCount)
	c.emit(Event{Type: EventState, State: st})
	return true, nil
}

// Poll fetches the progress once. Responses superseded by a newer
// submission are dropped silently.
func (c *Console) Poll(ctx context.Context) error {
	err := c.poller.PollOnce(ctx)
	if errors.Is(err, poller.ErrStale) {
		return nil
	}
	return err
}

// Wait blocks until the submitted job finishes and returns the final state.
//
// The backend may report an idle job for a while after accepting it, so a
// single idle snapshot does not end the wait. Wait polls at the poll
// interval until a snapshot reports completion or an error, or until the
// poll loop has run and stopped again. It returns ctx.Err() when ctx ends
// first.
func (c *Console) Wait(ctx context.Context) (State, error) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	seenPolling := false
	for {
		if !c.poller.IsPolling() {
			if err := c.Poll(ctx); err != nil && ctx.Err() != nil {
				return c.State(), ctx.Err()
			}
		}

		polling := c.poller.IsPolling()
		seenPolling = seenPolling || polling
		if c.jobFinished() || (seenPolling && !polling) {
			return c.State(), nil
		}

		select {
		case <-ctx.Done():
			return c.State(), ctx.Err()
		case <-ticker.C:
		}
	}
}

func (c *Console) jobFinished() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.finished
}

// Generate validates and submits a generation job.
//
// An invalid range raises the KeyAyahRange alert and sends nothing. A
// refused job or a transport failure raises an alert and is returned. On
// success one poll runs immediately.
func (c *Console) Generate(ctx context.Context, req *model.GenerationRequest) error {
	if err := req.Validate(); err != nil {
		c.alert(KeyAyahRange, c.texts.Text(KeyAyahRange))
		return err
	}

	c.resetForSubmission()

	resp, err := c.api.Generate(ctx, req)
	if err != nil {
		c.logger.Error("generate request failed", "error", err)
		c.alert(KeyConnectionFailed, c.texts.Text(KeyConnectionFailed)+err.Error())
		return err
	}
	if !resp.Success {
		msg := resp.Error
		if msg == "" {
			msg = c.texts.Text(KeyStartFailed)
		}
		c.logger.Warn("generate refused", "error", resp.Error)
		c.alert(KeyStartFailed, msg)
		return fmt.Errorf("%w: %s", ErrRejected, msg)
	}

	c.logger.Info("generation started",
		"surah", req.Surah, "start", req.StartAyah, "end", req.EndAyah, "reciter", req.Reciter)
	return c.Poll(ctx)
}

// Preview submits a single-ayah preview. Failures are logged, never
// alerted.
func (c *Console) Preview(ctx context.Context, req *model.PreviewRequest) error {
	c.resetForSubmission()

	if err := c.api.Preview(ctx, req); err != nil {
		c.logger.Error("preview request failed", "error", err)
		return err
	}

	c.logger.Info("preview started", "surah", req.Surah, "ayah", req.Ayah)
	return c.Poll(ctx)
}

// Close stops polling.
func (c *Console) Close() {
	c.poller.Close()
}

func (c *Console) resetForSubmission() {
	c.mu.Lock()
	c.generation = c.poller.Reset()
	c.finished = false
	c.state.Log = nil
	c.state.PreviewVisible = false
	c.state.PreviewURL = ""
	c.state.OutputFilename = ""
	st := c.snapshotLocked()
	c.mu.Unlock()

	c.emit(Event{Type: EventState, State: st})
}

func (c *Console) handlePoll(ev poller.Event) {
	c.mu.Lock()
	if ev.Type == poller.EventSnapshot && ev.Generation != c.generation {
		c.mu.Unlock()
		return
	}

	var events []Event
	switch ev.Type {
	case poller.EventSnapshot:
		snap := ev.Snapshot
		c.state.StatusVisible = true
		c.state.Percent = snap.Percent
		c.state.Status = snap.Status
		c.state.JobError = snap.ErrorMessage()
		if snap.IsComplete || c.state.JobError != "" {
			c.finished = true
		}
		for _, line := range ev.NewLines {
			c.state.Log = append(c.state.Log, line)
			events = append(events, Event{Type: EventLog, Line: line})
		}
		if path := snap.PreviewPath(); path != "" {
			c.state.PreviewVisible = true
			c.state.PreviewURL = c.api.BaseURL() + path
			c.state.OutputFilename = snap.OutputFilename()
		}
	}
	c.syncBusyLocked()
	events = append(events, Event{Type: EventState, State: c.snapshotLocked()})
	c.mu.Unlock()

	c.emit(events...)
}

// syncBusyLocked mirrors the poller's activity into Busy and the generate
// label.
func (c *Console) syncBusyLocked() {
	c.state.Busy = c.poller.IsPolling()
	if c.state.Busy {
		c.state.GenerateLabel = c.texts.Text(KeyWorking)
	} else {
		c.state.GenerateLabel = c.texts.Text(KeyGenerate)
	}
}

func (c *Console) alert(key, message string) {
	c.emit(Event{Type: EventAlert, Alert: Alert{Key: key, Message: message}})
}

func (c *Console) snapshotLocked() State {
	st := c.state
	st.Log = slices.Clone(c.state.Log)
	st.Fonts = slices.Clone(c.state.Fonts)
	return st
}

func (c *Console) emit(events ...Event) {
	c.mu.Lock()
	listeners := slices.Clone(c.listeners)
	c.mu.Unlock()

	for _, ev := range events {
		for _, fn := range listeners {
			fn(ev)
		}
	}
}
