package preflight

import (
	"satchel/internal/archive"
	"satchel/internal/config"
)

// minFreeBytes is the free-space floor on the output filesystem. Course
// backups are small, so a modest floor catches only genuinely full disks.
const minFreeBytes = 64 << 20

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every preflight check for the given config. The output
// directory must already exist when this is called.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	layout := archive.NewLayout(cfg.Paths.ArchiveDir)

	results := []Result{
		CheckDirectoryAccess("Archive directory", layout.Root()),
	}
	results = append(results, CheckArchiveLayout(layout)...)
	results = append(results,
		CheckDirectoryAccess("Output directory", cfg.Paths.OutputDir),
		CheckFreeSpace("Output free space", cfg.Paths.OutputDir, minFreeBytes),
	)
	return results
}

// Passed reports whether every result in the slice passed.
func Passed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}
