package main

// Flag names.
const (
	// Global flags
	FlagVerbose = "verbose"
	FlagConfig  = "config"
	FlagLogDir  = "log-dir"
	FlagEnvFile = "env-file"

	// View flags
	FlagFocus    = "focus"
	FlagWatch    = "watch"
	FlagRoot     = "root"
	FlagTUI      = "tui"
	FlagDensity  = "density"
	FlagMarkdown = "markdown"

	// Search flags
	FlagContext       = "context"
	FlagCaseSensitive = "case-sensitive"
	FlagJSON          = "json"

	// Inspect flags
	FlagDepth = "depth"

	// Level selection, shared by search, inspect and export
	FlagInner = "inner"

	// Export flags
	FlagOut    = "out"
	FlagWidth  = "width"
	FlagHeight = "height"
	FlagTitle  = "title"
)
