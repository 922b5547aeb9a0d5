// Package tui provides the Bubble Tea terminal console for the Quran reels
// generator.
package tui

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/quran-reels/internal/config"
	"github.com/handiism/quran-reels/internal/console"
	"github.com/handiism/quran-reels/internal/download"
	"github.com/handiism/quran-reels/internal/form"
	"github.com/handiism/quran-reels/internal/http"
	"github.com/handiism/quran-reels/internal/model"
)

// Field identifies a focusable form row.
type Field int

const (
	FieldSurah Field = iota
	FieldStartAyah
	FieldEndAyah
	FieldReciter
	FieldQuality
	FieldTemplate
	FieldFormat
	FieldFont
	FieldPersonName
	fieldCount
)

const logHeight = 8

// Message types
type (
	// consoleEventMsg carries one console event into the update loop.
	consoleEventMsg struct {
		Event console.Event
	}

	// bootstrapDoneMsg is sent once fonts and the first poll are loaded.
	bootstrapDoneMsg struct{}

	// submitDoneMsg is sent when a generate/preview/refresh call returns.
	submitDoneMsg struct {
		Err error
	}

	// saveDoneMsg is sent when the finished video is saved locally.
	saveDoneMsg struct {
		Path string
		Err  error
	}
)

// rangeHint is shared by every copy of the model so counter listeners can
// update it.
type rangeHint struct {
	inverted bool
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	console  *console.Console
	texts    *console.Localization
	saver    *download.Manager
	form     *form.Form
	settings *config.Settings
	events   chan console.Event

	ctx    context.Context
	cancel context.CancelFunc

	focus     Field
	rangeHint *rangeHint
	nameInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	logView   viewport.Model
	help      help.Model
	keys      keyMap

	state         console.State
	fonts         []model.FontOption
	configApplied bool
	alert         *console.Alert
	notice        string
	saving        bool

	width  int
	height int
}

// NewModel creates a TUI model around a console. The console's events are
// forwarded into the Bubble Tea loop.
func NewModel(c *console.Console, saver *download.Manager, settings *config.Settings) Model {
	ti := textinput.New()
	ti.Placeholder = c.Texts().Text(console.KeyPersonName)
	ti.CharLimit = 80
	ti.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#F8B500"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	f := form.New()
	f.Reciter.SelectValue(settings.DefaultReciter)
	f.Quality.SelectValue(settings.DefaultQuality)
	f.Template.SelectValue(settings.DefaultTemplate)
	f.Format.SelectValue(settings.DefaultFormat)

	hint := &rangeHint{}
	checkRange := func(int) {
		hint.inverted = f.StartAyah.Value() > f.EndAyah.Value()
	}
	f.StartAyah.OnChange(checkRange)
	f.EndAyah.OnChange(checkRange)

	ctx, cancel := context.WithCancel(context.Background())

	events := make(chan console.Event, 256)
	c.Subscribe(func(ev console.Event) {
		select {
		case events <- ev:
		case <-ctx.Done():
		}
	})

	return Model{
		console:   c,
		texts:     c.Texts(),
		saver:     saver,
		form:      f,
		rangeHint: hint,
		settings:  settings,
		events:    events,
		ctx:       ctx,
		cancel:    cancel,
		nameInput: ti,
		spinner:   sp,
		progress:  prog,
		logView:   viewport.New(60, logHeight),
		help:      help.New(),
		keys:      newKeyMap(),
		state:     c.State(),
		fonts:     c.State().Fonts,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitForEvent(), m.bootstrap())
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(max(msg.Width-20, 20), 80)
		m.logView.Width = min(max(msg.Width-8, 20), 100)
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)

	case consoleEventMsg:
		cmds = append(cmds, m.handleEvent(msg.Event), m.waitForEvent())

	case bootstrapDoneMsg:
		// state arrives through console events

	case submitDoneMsg:
		if msg.Err != nil {
			slog.Debug("submission finished with error", "error", msg.Err)
		}

	case saveDoneMsg:
		m.saving = false
		if msg.Err != nil {
			m.notice = m.texts.Text(console.KeySaveFailed) + msg.Err.Error()
		} else {
			m.notice = m.texts.Text(console.KeySaved) + msg.Path
		}
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		m.cancel()
		m.console.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.dismiss):
		m.alert = nil
		m.notice = ""
		return m, nil

	case key.Matches(msg, m.keys.next):
		m.setFocus((m.focus + 1) % fieldCount)
		return m, nil

	case key.Matches(msg, m.keys.prev):
		m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		return m, nil

	case key.Matches(msg, m.keys.generate):
		if m.state.Busy {
			return m, nil
		}
		m.alert = nil
		return m, m.generate()

	case key.Matches(msg, m.keys.preview):
		m.alert = nil
		return m, m.preview()

	case key.Matches(msg, m.keys.save):
		if m.saving || m.state.OutputFilename == "" || m.saver == nil {
			return m, nil
		}
		m.saving = true
		return m, m.save(m.state.OutputFilename)

	case key.Matches(msg, m.keys.fonts):
		return m, m.refreshFonts()
	}

	if m.focus == FieldPersonName {
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		m.form.PersonName = m.nameInput.Value()
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.inc):
		m.change(+1)
	case key.Matches(msg, m.keys.dec):
		m.change(-1)
	}
	return m, nil
}

func (m *Model) setFocus(f Field) {
	m.focus = f
	if f == FieldPersonName {
		m.nameInput.Focus()
	} else {
		m.nameInput.Blur()
	}
}

func (m *Model) change(dir int) {
	switch m.focus {
	case FieldSurah:
		if dir > 0 {
			m.form.NextSurah()
		} else {
			m.form.PrevSurah()
		}
	case FieldStartAyah:
		step(m.form.StartAyah, dir)
	case FieldEndAyah:
		step(m.form.EndAyah, dir)
	case FieldReciter:
		cycle(m.form.Reciter, dir)
	case FieldQuality:
		cycle(m.form.Quality, dir)
	case FieldTemplate:
		cycle(m.form.Template, dir)
	case FieldFormat:
		cycle(m.form.Format, dir)
	case FieldFont:
		cycle(m.form.Font, dir)
	}
}

func step(c *form.Counter, dir int) {
	if dir > 0 {
		c.Increment()
	} else {
		c.Decrement()
	}
}

func cycle(s *form.Select, dir int) {
	if dir > 0 {
		s.Next()
	} else {
		s.Prev()
	}
}

func (m *Model) handleEvent(ev console.Event) tea.Cmd {
	switch ev.Type {
	case console.EventAlert:
		alert := ev.Alert
		m.alert = &alert
		return nil

	case console.EventState:
		logChanged := !slices.Equal(m.state.Log, ev.State.Log)
		m.state = ev.State

		if !slices.Equal(m.fonts, ev.State.Fonts) {
			m.fonts = ev.State.Fonts
			m.form.SetFontOptions(ev.State.Fonts)
		}
		if !m.configApplied && ev.State.Config != nil {
			m.form.ApplyServerConfig(ev.State.Config)
			m.configApplied = true
		}
		if logChanged {
			m.logView.SetContent(renderLogLines(ev.State.Log))
			m.logView.GotoBottom()
		}
		return m.progress.SetPercent(ev.State.Percent / 100)
	}
	return nil
}

func (m Model) waitForEvent() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		return consoleEventMsg{Event: <-events}
	}
}

func (m Model) bootstrap() tea.Cmd {
	c, ctx := m.console, m.ctx
	return func() tea.Msg {
		_ = c.Bootstrap(ctx)
		return bootstrapDoneMsg{}
	}
}

// generate builds the request on the update goroutine and submits it in a
// command.
func (m Model) generate() tea.Cmd {
	c, ctx := m.console, m.ctx
	req := m.form.GenerationRequest()
	return func() tea.Msg {
		return submitDoneMsg{Err: c.Generate(ctx, req)}
	}
}

func (m Model) preview() tea.Cmd {
	c, ctx := m.console, m.ctx
	req := m.form.PreviewRequest()
	return func() tea.Msg {
		return submitDoneMsg{Err: c.Preview(ctx, req)}
	}
}

func (m Model) refreshFonts() tea.Cmd {
	c, ctx := m.console, m.ctx
	return func() tea.Msg {
		_, err := c.RefreshFonts(ctx)
		return submitDoneMsg{Err: err}
	}
}

func (m Model) save(filename string) tea.Cmd {
	saver, ctx := m.saver, m.ctx
	return func() tea.Msg {
		path, err := saver.Save(ctx, filename)
		return saveDoneMsg{Path: path, Err: err}
	}
}

// rememberDefaults copies the current selections into the settings so the
// next session starts from them.
func (m Model) rememberDefaults() {
	m.settings.DefaultReciter = m.form.Reciter.Value()
	m.settings.DefaultQuality = m.form.Quality.Value()
	m.settings.DefaultTemplate = m.form.Template.Value()
	m.settings.DefaultFormat = m.form.Format.Value()
}

func renderLogLines(lines []string) string {
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(logPrefixStyle.Render("> "))
		b.WriteString(logLineStyle.Render(line))
	}
	return b.String()
}

// Run starts the TUI application. On a clean exit the chosen reciter,
// quality, template and format are saved to settingsPath as the next
// session's defaults; an empty settingsPath skips the save.
func Run(settings *config.Settings, settingsPath string, logger *slog.Logger) error {
	client := http.NewClient(settings.BaseURL, http.WithTimeout(settings.Timeout()))
	c := console.New(client, console.Options{
		PollInterval:   settings.PollInterval(),
		RequestTimeout: settings.Timeout(),
		Language:       settings.Language,
		Logger:         logger,
	})
	defer c.Close()

	saver := download.NewManager(settings, client, func(ev download.ProgressEvent) {
		if ev.Message != "" {
			logger.Info(ev.Message, "level", ev.Level)
		}
	})

	logger.Info("console starting", "base_url", settings.BaseURL, "session", client.SessionID())
	p := tea.NewProgram(NewModel(c, saver, settings), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}

	if m, ok := final.(Model); ok && settingsPath != "" {
		m.rememberDefaults()
		if err := settings.Save(settingsPath); err != nil {
			logger.Error("failed to save settings", "path", settingsPath, "error", err)
		}
	}
	return nil
}
