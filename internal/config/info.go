package config

import (
	"fmt"
	"os"
	"strings"
)

// InfoVars holds variables for info template expansion.
type InfoVars struct {
	ID    string
	Label string
	Kind  string // "node" or "edge"
	Ref   string // Addressable reference, path#id
	Info  string
}

// LoadInfoTemplate returns the info template based on configuration priority:
// InfoTemplateFile (load from file) > InfoTemplate (inline) > DefaultInfoTemplate.
// Returns an error if InfoTemplateFile is set but the file cannot be read.
func (c *Config) LoadInfoTemplate() (string, error) {
	if c.View.InfoTemplateFile != "" {
		content, err := os.ReadFile(c.View.InfoTemplateFile)
		if err != nil {
			return "", fmt.Errorf("load info template %q: %w", c.View.InfoTemplateFile, err)
		}
		return string(content), nil
	}

	if c.View.InfoTemplate != "" {
		return c.View.InfoTemplate, nil
	}

	return DefaultInfoTemplate, nil
}

// ExpandInfo performs variable substitution on an info template.
// Replacement is single-pass, so graph text containing "{{.Label}}" is not expanded.
// Supported variables: {{.ID}}, {{.Label}}, {{.Kind}}, {{.Ref}}, {{.Info}}
func ExpandInfo(template string, vars InfoVars) string {
	r := strings.NewReplacer(
		"{{.ID}}", vars.ID,
		"{{.Label}}", vars.Label,
		"{{.Kind}}", vars.Kind,
		"{{.Ref}}", vars.Ref,
		"{{.Info}}", vars.Info,
	)
	return r.Replace(template)
}
