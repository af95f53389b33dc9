package testsupport

import (
	"path/filepath"
	"testing"

	"satchel/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.ArchiveDir = filepath.Join(base, "archive")
	cfg.Paths.OutputDir = filepath.Join(base, "output")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Catalog.Enabled = false

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithArchiveDir points the config at an existing archive fixture.
func WithArchiveDir(path string) ConfigOption {
	return func(c *config.Config) {
		c.Paths.ArchiveDir = path
	}
}

// WithSectionLabel overrides the folder label between ordinal and name.
func WithSectionLabel(label string) ConfigOption {
	return func(c *config.Config) {
		c.Extraction.SectionLabel = label
	}
}

// WithVerifyCopies turns on hash-verified copies.
func WithVerifyCopies() ConfigOption {
	return func(c *config.Config) {
		c.Extraction.VerifyCopies = true
	}
}
