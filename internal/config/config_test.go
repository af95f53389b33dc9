package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"satchel/internal/config"
)

func TestLoadDefaultsExpandPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantLogDir := filepath.Join(tempHome, ".local", "share", "satchel", "logs")
	if cfg.Paths.LogDir != wantLogDir {
		t.Fatalf("unexpected log dir: got %q want %q", cfg.Paths.LogDir, wantLogDir)
	}
	if !filepath.IsAbs(cfg.Paths.ArchiveDir) {
		t.Fatalf("expected absolute archive dir, got %q", cfg.Paths.ArchiveDir)
	}
	if !filepath.IsAbs(cfg.Paths.OutputDir) {
		t.Fatalf("expected absolute output dir, got %q", cfg.Paths.OutputDir)
	}
	if cfg.Extraction.SectionLabel != "Chapter" {
		t.Fatalf("unexpected section label: %q", cfg.Extraction.SectionLabel)
	}
	if cfg.Extraction.OrdinalWidth != 2 {
		t.Fatalf("unexpected ordinal width: %d", cfg.Extraction.OrdinalWidth)
	}
	if !cfg.Extraction.PreserveTimes {
		t.Fatal("expected preserve_times enabled by default")
	}
	if cfg.Extraction.VerifyCopies {
		t.Fatal("expected verify_copies disabled by default")
	}
	if !cfg.Catalog.Enabled {
		t.Fatal("expected catalog enabled by default")
	}
	if got, want := cfg.CatalogPath(), filepath.Join(wantLogDir, "catalog.db"); got != want {
		t.Fatalf("unexpected catalog path: got %q want %q", got, want)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %q/%q", cfg.Logging.Format, cfg.Logging.Level)
	}
}

func TestLoadFromFileOverridesAndExpands(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	body := strings.Join([]string{
		"[paths]",
		`archive_dir = "~/backup"`,
		`output_dir = "~/browse"`,
		"[extraction]",
		`section_label = "Unit"`,
		"ordinal_width = 3",
		"verify_copies = true",
		"[logging]",
		`format = "JSON"`,
		`level = "Debug"`,
	}, "\n")
	if err := os.WriteFile(cfgPath, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, exists, err := config.Load(cfgPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != cfgPath {
		t.Fatalf("expected config at %q to be used, got %q exists=%v", cfgPath, resolved, exists)
	}
	if cfg.Paths.ArchiveDir != filepath.Join(tempHome, "backup") {
		t.Fatalf("archive dir not expanded: %q", cfg.Paths.ArchiveDir)
	}
	if cfg.Extraction.SectionLabel != "Unit" {
		t.Fatalf("unexpected section label: %q", cfg.Extraction.SectionLabel)
	}
	if cfg.Extraction.OrdinalWidth != 3 {
		t.Fatalf("unexpected ordinal width: %d", cfg.Extraction.OrdinalWidth)
	}
	if !cfg.Extraction.VerifyCopies {
		t.Fatal("expected verify_copies enabled")
	}
	// Format and level are lowercased during normalization.
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("logging values not normalized: %q/%q", cfg.Logging.Format, cfg.Logging.Level)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"ordinal width too small", func(c *config.Config) { c.Extraction.OrdinalWidth = 0 }},
		{"ordinal width too large", func(c *config.Config) { c.Extraction.OrdinalWidth = 9 }},
		{"unknown log format", func(c *config.Config) { c.Logging.Format = "yaml" }},
		{"unknown log level", func(c *config.Config) { c.Logging.Level = "trace" }},
		{"output equals archive", func(c *config.Config) {
			c.Paths.ArchiveDir = "/data/course"
			c.Paths.OutputDir = "/data/course"
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Extraction.OrdinalWidth = 2
			cfg.Logging.Format = "console"
			cfg.Logging.Level = "info"
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "nested", "config.toml")
	if err := config.CreateSample(target); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	var cfg config.Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("sample config does not parse: %v", err)
	}
}
