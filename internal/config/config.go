// Package config provides configuration types and defaults for pollygraph.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all configuration for pollygraph.
type Config struct {
	Source      SourceConfig      `yaml:"source" mapstructure:"source"`
	View        ViewConfig        `yaml:"view" mapstructure:"view"`
	Search      SearchConfig      `yaml:"search" mapstructure:"search"`
	Export      ExportConfig      `yaml:"export" mapstructure:"export"`
	Router      RouterConfig      `yaml:"router" mapstructure:"router"`
	Paths       PathsConfig       `yaml:"paths" mapstructure:"paths"`
	LogRotation LogRotationConfig `yaml:"log_rotation" mapstructure:"log_rotation"`
}

// SourceConfig holds data-source loading settings.
type SourceConfig struct {
	SamePath      string        `yaml:"same_path" mapstructure:"same_path" validate:"oneof=renotify refetch"` // Loading the current path again: "renotify" or "refetch"
	CacheSize     int           `yaml:"cache_size" mapstructure:"cache_size" validate:"min=0"`               // Parsed documents kept in memory (0 = no cache)
	HTTPTimeout   time.Duration `yaml:"http_timeout" mapstructure:"http_timeout" validate:"min=0"`
	LoadTimeout   time.Duration `yaml:"load_timeout" mapstructure:"load_timeout" validate:"min=0"`
	WatchDebounce time.Duration `yaml:"watch_debounce" mapstructure:"watch_debounce" validate:"min=0"`
}

// ViewConfig holds settings for the terminal view.
type ViewConfig struct {
	Density          string `yaml:"density" mapstructure:"density" validate:"oneof=compact standard detailed"` // Label width: "compact", "standard", or "detailed"
	Markdown         bool   `yaml:"markdown" mapstructure:"markdown"`                                         // Render the info pane as markdown
	GlamourStyle     string `yaml:"glamour_style" mapstructure:"glamour_style"`                               // "auto", "dark", "light", "notty"
	InfoTemplate     string `yaml:"info_template" mapstructure:"info_template"`
	InfoTemplateFile string `yaml:"info_template_file" mapstructure:"info_template_file"` // Takes priority over InfoTemplate
}

// SearchConfig holds search defaults.
type SearchConfig struct {
	Context       int  `yaml:"context" mapstructure:"context" validate:"min=0"` // Characters kept around a match
	CaseSensitive bool `yaml:"case_sensitive" mapstructure:"case_sensitive"`
}

// ExportConfig holds SVG snapshot settings.
type ExportConfig struct {
	Width  int `yaml:"width" mapstructure:"width" validate:"min=100"`
	Height int `yaml:"height" mapstructure:"height" validate:"min=100"`
	Margin int `yaml:"margin" mapstructure:"margin" validate:"min=0"`
}

// RouterConfig maps UI paths onto data-source paths.
type RouterConfig struct {
	UIRoot   string `yaml:"ui_root" mapstructure:"ui_root"`
	DataRoot string `yaml:"data_root" mapstructure:"data_root"`
}

// PathsConfig holds file paths.
type PathsConfig struct {
	LogDir string `yaml:"log_dir" mapstructure:"log_dir"`
}

// LogRotationConfig holds settings for log file rotation.
// Used for the TUI debug log (lumberjack-based automatic rotation).
type LogRotationConfig struct {
	MaxSizeMB  int  `yaml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int  `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAgeDays int  `yaml:"max_age_days" mapstructure:"max_age_days"`
	Compress   bool `yaml:"compress" mapstructure:"compress"`
}

// DefaultInfoTemplate renders the info pane of a focused element.
const DefaultInfoTemplate = `## {{.Label}}

*{{.Kind}}* ` + "`{{.Ref}}`" + `

{{.Info}}
`

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			SamePath:      "renotify",
			CacheSize:     32,
			HTTPTimeout:   30 * time.Second,
			LoadTimeout:   time.Minute,
			WatchDebounce: 200 * time.Millisecond,
		},
		View: ViewConfig{
			Density:      "standard",
			Markdown:     true,
			GlamourStyle: "auto",
			InfoTemplate: DefaultInfoTemplate,
		},
		Search: SearchConfig{
			Context:       20,
			CaseSensitive: false,
		},
		Export: ExportConfig{
			Width:  960,
			Height: 720,
			Margin: 60,
		},
		Paths: PathsConfig{
			LogDir: ".pollygraph",
		},
		LogRotation: LogRotationConfig{
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field ranges and enumerations.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Config.")
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: %s=%s (got %v)", field, fe.Tag(), fe.Param(), fe.Value()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: %s (got %v)", field, fe.Tag(), fe.Value()))
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}
