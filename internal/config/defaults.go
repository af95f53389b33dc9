package config

const (
	defaultArchiveDir   = "."
	defaultOutputDir    = "./output"
	defaultLogDir       = "~/.local/share/satchel/logs"
	defaultSectionLabel = "Chapter"
	defaultOrdinalWidth = 2
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			ArchiveDir: defaultArchiveDir,
			OutputDir:  defaultOutputDir,
			LogDir:     defaultLogDir,
		},
		Extraction: Extraction{
			SectionLabel:  defaultSectionLabel,
			OrdinalWidth:  defaultOrdinalWidth,
			PreserveTimes: true,
		},
		Catalog: Catalog{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
