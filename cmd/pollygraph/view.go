package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/npratt/pollygraph/internal/controller"
	"github.com/npratt/pollygraph/internal/shutdown"
	"github.com/npratt/pollygraph/internal/source"
	"github.com/npratt/pollygraph/internal/store"
	"github.com/npratt/pollygraph/internal/tui"
)

// shutdownTimeout bounds how long the TUI may take to restore the terminal
// after a signal.
const shutdownTimeout = 5 * time.Second

func (a *app) newViewCmd() *cobra.Command {
	viewCmd := &cobra.Command{
		Use:   "view <source>[#element]",
		Short: "Browse a graph interactively",
		Long: `Open a graph in the terminal UI. The source is a path starting with ./, ../
or /, an http(s) URL, or inline JSON text. A "#id" suffix focuses that node
or edge once the graph is loaded.

Without a terminal, a plain-text summary of the first level is printed.`,
		Args: cobra.ExactArgs(1),
		RunE: a.runView,
	}

	viewCmd.Flags().String(FlagFocus, "", "Element to focus after loading")
	viewCmd.Flags().Bool(FlagWatch, false, "Reload when the source file changes")
	viewCmd.Flags().String(FlagRoot, "", "Data root that replaces the configured UI root")
	viewCmd.Flags().Bool(FlagTUI, false, "Use the terminal UI without a TTY; --tui=false prints a summary")
	viewCmd.Flags().String(FlagDensity, "", "Label width (compact/standard/detailed)")
	viewCmd.Flags().Bool(FlagMarkdown, true, "Render the info pane as markdown")
	return viewCmd
}

func (a *app) runView(cmd *cobra.Command, args []string) error {
	path, focus := splitRef(args[0])
	if cmd.Flags().Changed(FlagFocus) {
		focus, _ = cmd.Flags().GetString(FlagFocus)
	}

	useTUI := tui.IsTerminal()
	if cmd.Flags().Changed(FlagTUI) {
		useTUI, _ = cmd.Flags().GetBool(FlagTUI)
	}
	if !useTUI {
		s, g, err := a.loadFromArgs(cmd, path)
		if err != nil {
			return err
		}
		defer s.Close()
		return tui.WriteSummary(cmd.OutOrStdout(), g, s.Path())
	}

	view := a.cfg.View
	if cmd.Flags().Changed(FlagDensity) {
		view.Density, _ = cmd.Flags().GetString(FlagDensity)
	}
	if cmd.Flags().Changed(FlagMarkdown) {
		view.Markdown, _ = cmd.Flags().GetBool(FlagMarkdown)
	}
	infoTemplate, err := a.cfg.LoadInfoTemplate()
	if err != nil {
		return err
	}
	view.InfoTemplate = infoTemplate

	// The alt screen hides stderr, so the TUI logs to a rotating file.
	if err := os.MkdirAll(a.cfg.Paths.LogDir, 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	logResult, err := SetupTUILogger(a.cfg.Paths.LogDir, a.logLevel, a.cfg.LogRotation)
	if err != nil {
		return fmt.Errorf("setup TUI logger: %w", err)
	}
	defer func() { _ = logResult.Close() }()
	logger := logResult.Logger

	var tu *tui.TUI
	s, err := a.newStore(logger, store.WithDispatcher(func(fn func()) { tu.Dispatch(fn) }))
	if err != nil {
		return err
	}
	// Run stops the TUI before this executes, releasing loads blocked in Dispatch.
	defer s.Close()

	tu = tui.New(
		tui.WithViewConfig(view),
		tui.WithNavigator(s),
		tui.WithLogger(logger),
		tui.WithProgramOptions(tea.WithoutSignalHandler()),
	)
	r := a.newRouter(cmd, logger)
	ctrl, err := controller.New(s, tu.Screen(),
		controller.WithRouter(r),
		controller.WithSearch(a.cfg.Search.Context, a.cfg.Search.CaseSensitive),
		controller.WithLogger(logger))
	if err != nil {
		return err
	}

	watch, _ := cmd.Flags().GetBool(FlagWatch)
	if watch {
		stop, err := a.watchSource(cmd.Context(), r.Resolve(path), tu, s, logger)
		if err != nil {
			return err
		}
		defer stop()
	}

	logger.Info("starting view", "source", path, "focus", focus, "log", logResult.FilePath)
	start := func() error {
		return ctrl.SetDataFromSource(r.Resolve(path), focus, false)
	}
	return shutdown.RunWithGracefulShutdown(cmd.Context(), logger, shutdownTimeout,
		func(context.Context) error { return tu.Run(start) },
		func(context.Context) error {
			tu.Quit()
			tu.Stop()
			return nil
		})
}

// watchSource reloads the current document whenever the source file
// changes. Only file sources can be watched.
func (a *app) watchSource(ctx context.Context, path string, tu *tui.TUI, s *store.Store, logger *slog.Logger) (func(), error) {
	src, err := source.Parse(path)
	if err != nil {
		return nil, err
	}
	if src.Kind() != source.KindFile {
		return nil, fmt.Errorf("--%s needs a file source, got %s", FlagWatch, src.Kind())
	}

	w, err := source.NewWatcher(src.Location(), func() {
		tu.Dispatch(func() {
			if err := s.Reload(); err != nil {
				logger.Warn("reload after change failed", "error", err)
			}
		})
	},
		source.WithDebounce(a.cfg.Source.WatchDebounce),
		source.WithOnError(func(err error) { logger.Warn("watch error", "error", err) }),
	)
	if err != nil {
		return nil, err
	}
	if err := w.Start(ctx); err != nil {
		return nil, err
	}
	return w.Stop, nil
}
