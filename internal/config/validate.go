package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateExtraction(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.ArchiveDir == c.Paths.OutputDir {
		return errors.New("paths.output_dir must differ from paths.archive_dir")
	}
	return nil
}

func (c *Config) validateExtraction() error {
	if c.Extraction.OrdinalWidth < 1 || c.Extraction.OrdinalWidth > 6 {
		return fmt.Errorf("extraction.ordinal_width must be between 1 and 6, got %d", c.Extraction.OrdinalWidth)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	return nil
}
