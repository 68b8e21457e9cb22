package wordformat

import (
	"errors"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.DBName != "wordformat" {
		t.Errorf("DBName = %q", cfg.DBName)
	}
	if cfg.OutputSuffix != "_formatted" {
		t.Errorf("OutputSuffix = %q", cfg.OutputSuffix)
	}
	if cfg.Classifier.Provider != "" {
		t.Errorf("default classifier provider = %q, want none", cfg.Classifier.Provider)
	}
}

func TestNewRejectsNegativeBatchSize(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BatchSize = -1
	if _, err := New(cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("New() err = %v, want ErrInvalidConfig", err)
	}
}

func TestResolveDBPath(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want func(string) bool
	}{
		{
			name: "explicit path wins",
			cfg:  Config{DBPath: "/tmp/custom.db", DBName: "ignored", StorageDir: "local"},
			want: func(p string) bool { return p == "/tmp/custom.db" },
		},
		{
			name: "local uses working directory",
			cfg:  Config{DBName: "cache", StorageDir: "local"},
			want: func(p string) bool { return p == "cache.db" },
		},
		{
			name: "home default",
			cfg:  Config{DBName: "wordformat"},
			want: func(p string) bool {
				return strings.HasSuffix(p, "wordformat.db") && strings.Contains(p, ".wordformat")
			},
		},
		{
			name: "empty name falls back",
			cfg:  Config{StorageDir: "local"},
			want: func(p string) bool { return p == "wordformat.db" },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.resolveDBPath(); !tt.want(got) {
				t.Errorf("resolveDBPath() = %q", got)
			}
		})
	}
}

func TestDerivedOutputPath(t *testing.T) {
	tests := []struct {
		path   string
		suffix string
		want   string
	}{
		{"statement.docx", "_formatted", "statement_formatted.docx"},
		{"/cases/smith/ws1.docx", "_v2", "/cases/smith/ws1_v2.docx"},
		{"noext", "_formatted", "noext_formatted"},
	}
	for _, tt := range tests {
		if got := derivedOutputPath(tt.path, tt.suffix); got != tt.want {
			t.Errorf("derivedOutputPath(%q, %q) = %q, want %q", tt.path, tt.suffix, got, tt.want)
		}
	}
}
