// Package tui provides the interactive terminal view of pollygraph using
// bubbletea. It implements controller.View and runs every controller and
// store callback on the program's event loop.
package tui

import (
	"log/slog"
	"sync"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/npratt/pollygraph/internal/config"
)

// callBufferSize bounds the callbacks queued for the event loop.
const callBufferSize = 64

// Navigator exposes the store operations the view triggers directly.
type Navigator interface {
	Reload() error
	Breadcrumb() []string
}

// TUI is the terminal UI for browsing a nested graph.
type TUI struct {
	screen *Screen
	calls  chan func()
	done   chan struct{}
	once   sync.Once

	mu       sync.Mutex
	program  *tea.Program
	quitting bool

	nav         Navigator
	onQuit      func()
	clipboard   func(string) error
	logger      *slog.Logger
	view        config.ViewConfig
	programOpts []tea.ProgramOption
}

// Option configures the TUI.
type Option func(*TUI)

// New creates a new TUI with the given options.
func New(opts ...Option) *TUI {
	t := &TUI{
		calls:     make(chan func(), callBufferSize),
		done:      make(chan struct{}),
		clipboard: clipboard.WriteAll,
		logger:    slog.Default(),
		view:      config.Default().View,
	}

	for _, opt := range opts {
		opt(t)
	}

	t.screen = newScreen(ParseDensity(t.view.Density), t.view.InfoTemplate,
		t.view.Markdown, t.view.GlamourStyle, t.logger)
	return t
}

// WithViewConfig sets density, markdown rendering and the info template.
func WithViewConfig(cfg config.ViewConfig) Option {
	return func(t *TUI) {
		t.view = cfg
	}
}

// WithNavigator sets the store used for reload and the breadcrumb.
func WithNavigator(n Navigator) Option {
	return func(t *TUI) {
		t.nav = n
	}
}

// WithOnQuit sets the callback invoked when the user quits.
func WithOnQuit(fn func()) Option {
	return func(t *TUI) {
		t.onQuit = fn
	}
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(fn func(string) error) Option {
	return func(t *TUI) {
		if fn != nil {
			t.clipboard = fn
		}
	}
}

// WithLogger sets the logger. In TUI mode it must not write to the terminal.
func WithLogger(logger *slog.Logger) Option {
	return func(t *TUI) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithProgramOptions adds bubbletea program options.
func WithProgramOptions(opts ...tea.ProgramOption) Option {
	return func(t *TUI) {
		t.programOpts = append(t.programOpts, opts...)
	}
}

// Screen returns the controller.View to wire into the controller.
func (t *TUI) Screen() *Screen {
	return t.screen
}

// Dispatch queues fn to run on the event loop. It is the store's dispatcher;
// after the TUI stops, callbacks are dropped.
func (t *TUI) Dispatch(fn func()) {
	select {
	case t.calls <- fn:
	case <-t.done:
	}
}

// Stop releases goroutines blocked in Dispatch.
func (t *TUI) Stop() {
	t.once.Do(func() { close(t.done) })
}

// Run starts the TUI and blocks until it exits. start runs first on the
// event loop, typically to load the initial data source.
func (t *TUI) Run(start func() error) error {
	defer t.Stop()

	if start != nil {
		t.Dispatch(func() {
			if err := start(); err != nil {
				t.logger.Error("initial load failed", "error", err)
				t.screen.DisplayLoadError("", err)
			}
		})
	}

	opts := append([]tea.ProgramOption{tea.WithAltScreen()}, t.programOpts...)
	p := tea.NewProgram(t.newModel(), opts...)

	t.mu.Lock()
	if t.quitting {
		t.mu.Unlock()
		return nil
	}
	t.program = p
	t.mu.Unlock()

	_, err := p.Run()
	return err
}

// Quit ends a running program from outside the event loop. Quitting before
// Run makes Run return immediately.
func (t *TUI) Quit() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.quitting = true
	if t.program != nil {
		t.program.Quit()
	}
}

// newModel creates the bubbletea model bound to this TUI.
func (t *TUI) newModel() model {
	return newModel(t.screen, t.calls, t.nav, t.clipboard, t.onQuit, t.logger)
}
