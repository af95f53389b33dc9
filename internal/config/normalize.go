package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeExtraction()
	if err := c.normalizeCatalog(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.ArchiveDir) == "" {
		c.Paths.ArchiveDir = defaultArchiveDir
	}
	if c.Paths.ArchiveDir, err = expandPath(c.Paths.ArchiveDir); err != nil {
		return fmt.Errorf("paths.archive_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeExtraction() {
	c.Extraction.SectionLabel = strings.TrimSpace(c.Extraction.SectionLabel)
	if c.Extraction.OrdinalWidth == 0 {
		c.Extraction.OrdinalWidth = defaultOrdinalWidth
	}
}

func (c *Config) normalizeCatalog() error {
	c.Catalog.Path = strings.TrimSpace(c.Catalog.Path)
	if c.Catalog.Path == "" {
		return nil
	}
	expanded, err := expandPath(c.Catalog.Path)
	if err != nil {
		return fmt.Errorf("catalog.path: %w", err)
	}
	c.Catalog.Path = expanded
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
