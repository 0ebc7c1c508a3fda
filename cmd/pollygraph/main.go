// Command pollygraph browses nested graphs from the keyboard.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/npratt/pollygraph/internal/config"
	"github.com/npratt/pollygraph/internal/router"
	"github.com/npratt/pollygraph/internal/source"
	"github.com/npratt/pollygraph/internal/store"
)

var version = "0.1.0"

func main() {
	logLevel := &slog.LevelVar{}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	if err := newRootCmd(logger, logLevel).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// app carries what every subcommand needs once configuration is loaded.
type app struct {
	v        *viper.Viper
	cfg      *config.Config
	logger   *slog.Logger
	logLevel *slog.LevelVar
}

func newRootCmd(logger *slog.Logger, logLevel *slog.LevelVar) *cobra.Command {
	a := &app{v: viper.New(), logger: logger, logLevel: logLevel}

	rootCmd := &cobra.Command{
		Use:   "pollygraph",
		Short: "Keyboard-navigable nested graph viewer",
		Long: `Pollygraph loads a graph document (a file, a URL or inline JSON), splits it
into clusters of connected components and lets you walk it from the keyboard:
forward and backward along edges, around a node, and into and out of inner
levels.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().Bool(FlagVerbose, false, "Enable debug logging")
	rootCmd.PersistentFlags().String(FlagConfig, "", "Config file path")
	rootCmd.PersistentFlags().String(FlagLogDir, "", "Directory for the TUI debug log")
	rootCmd.PersistentFlags().String(FlagEnvFile, "", "Load environment variables from this file")
	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		_ = a.v.BindPFlag(f.Name, f)
	})

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pollygraph %s\n", version)
		},
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(a.newViewCmd())
	rootCmd.AddCommand(a.newSearchCmd())
	rootCmd.AddCommand(a.newInspectCmd())
	rootCmd.AddCommand(a.newExportCmd())
	return rootCmd
}

// setup loads the environment and configuration, then applies global flag
// overrides.
func (a *app) setup(cmd *cobra.Command) error {
	var envFiles []string
	if f := a.v.GetString(FlagEnvFile); f != "" {
		envFiles = append(envFiles, f)
	}
	if err := config.LoadDotEnv(envFiles...); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	config.BindEnv(a.v)

	if a.v.GetBool(FlagVerbose) {
		a.logLevel.Set(slog.LevelDebug)
	}

	cfg, err := config.LoadConfig(a.v)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed(FlagLogDir) {
		cfg.Paths.LogDir = a.v.GetString(FlagLogDir)
	}
	a.cfg = cfg

	a.logger.Debug("config loaded",
		"same_path", cfg.Source.SamePath,
		"cache_size", cfg.Source.CacheSize,
		"density", cfg.View.Density)
	return nil
}

// newRouter builds the router from config; a --root flag replaces the data
// root.
func (a *app) newRouter(cmd *cobra.Command, logger *slog.Logger) *router.Router {
	dataRoot := a.cfg.Router.DataRoot
	if cmd.Flags().Changed(FlagRoot) {
		dataRoot, _ = cmd.Flags().GetString(FlagRoot)
	}
	return router.New(router.WithRoots(a.cfg.Router.UIRoot, dataRoot), router.WithLogger(logger))
}

// newStore wires the fetcher, the document cache and the store from config.
func (a *app) newStore(logger *slog.Logger, opts ...store.Option) (*store.Store, error) {
	fetcher := source.NewFetcher(source.WithHTTPTimeout(a.cfg.Source.HTTPTimeout))
	loader, err := source.NewLoader(fetcher,
		source.WithCacheSize(a.cfg.Source.CacheSize),
		source.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("create loader: %w", err)
	}

	base := []store.Option{
		store.WithLogger(logger),
		store.WithSamePathPolicy(store.SamePathPolicy(a.cfg.Source.SamePath)),
		store.WithLoadTimeout(a.cfg.Source.LoadTimeout),
	}
	return store.New(loader, append(base, opts...)...), nil
}
