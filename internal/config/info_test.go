package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadInfoTemplate_File(t *testing.T) {
	tmpDir := t.TempDir()
	templateFile := filepath.Join(tmpDir, "info.md")
	content := "# {{.Label}} from file"
	if err := os.WriteFile(templateFile, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write template file: %v", err)
	}

	cfg := &Config{View: ViewConfig{
		InfoTemplateFile: templateFile,
		InfoTemplate:     "inline template",
	}}

	got, err := cfg.LoadInfoTemplate()
	if err != nil {
		t.Fatalf("LoadInfoTemplate() error = %v", err)
	}
	if got != content {
		t.Errorf("LoadInfoTemplate() = %q, want %q", got, content)
	}
}

func TestLoadInfoTemplate_FileNotFound(t *testing.T) {
	cfg := &Config{View: ViewConfig{InfoTemplateFile: "/nonexistent/path/info.md"}}

	if _, err := cfg.LoadInfoTemplate(); err == nil {
		t.Error("LoadInfoTemplate() expected error for missing file, got nil")
	}
}

func TestLoadInfoTemplate_Inline(t *testing.T) {
	cfg := &Config{View: ViewConfig{InfoTemplate: "{{.Info}}"}}

	got, err := cfg.LoadInfoTemplate()
	if err != nil {
		t.Fatalf("LoadInfoTemplate() error = %v", err)
	}
	if got != "{{.Info}}" {
		t.Errorf("LoadInfoTemplate() = %q, want %q", got, "{{.Info}}")
	}
}

func TestLoadInfoTemplate_Default(t *testing.T) {
	cfg := &Config{}

	got, err := cfg.LoadInfoTemplate()
	if err != nil {
		t.Fatalf("LoadInfoTemplate() error = %v", err)
	}
	if got != DefaultInfoTemplate {
		t.Errorf("LoadInfoTemplate() = %q, want DefaultInfoTemplate", got)
	}
}

func TestExpandInfo(t *testing.T) {
	tests := []struct {
		name     string
		template string
		vars     InfoVars
		want     string
	}{
		{
			name:     "all variables",
			template: "{{.Kind}} {{.ID}} {{.Label}} {{.Ref}}: {{.Info}}",
			vars:     InfoVars{ID: "B", Label: "Bravo", Kind: "node", Ref: "./g.json#B", Info: "middle"},
			want:     "node B Bravo ./g.json#B: middle",
		},
		{
			name:     "missing variables become empty",
			template: "[{{.Info}}]",
			vars:     InfoVars{ID: "B"},
			want:     "[]",
		},
		{
			name:     "no injection from graph text",
			template: "{{.Label}} / {{.ID}}",
			vars:     InfoVars{ID: "x", Label: "{{.ID}}"},
			want:     "{{.ID}} / x",
		},
		{
			name:     "repeated variables",
			template: "{{.ID}}{{.ID}}",
			vars:     InfoVars{ID: "a"},
			want:     "aa",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandInfo(tt.template, tt.vars); got != tt.want {
				t.Errorf("ExpandInfo() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExpandInfo_DefaultTemplate(t *testing.T) {
	got := ExpandInfo(DefaultInfoTemplate, InfoVars{
		ID: "A - B", Label: "A - B", Kind: "edge", Ref: "#A - B", Info: "First hop",
	})
	for _, want := range []string{"## A - B", "*edge*", "`#A - B`", "First hop"} {
		if !strings.Contains(got, want) {
			t.Errorf("expanded default template missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "{{") {
		t.Errorf("expanded default template still has placeholders:\n%s", got)
	}
}
