package textutil

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// unsafeRuns matches runs of characters that are not allowed in path
// segments on at least one supported filesystem.
var unsafeRuns = regexp.MustCompile(`[\\/:"*?<>|]+`)

// SanitizeFileName rewrites name into a safe path segment. Runs of
// filesystem-unsafe characters collapse into a single underscore, and the
// result is NFC-normalized so names composed on macOS and Linux archives
// produce identical output paths. Returns "Unnamed" for input that
// sanitizes to nothing.
func SanitizeFileName(name string) string {
	name = norm.NFC.String(strings.TrimSpace(name))
	name = strings.TrimSpace(unsafeRuns.ReplaceAllString(name, "_"))
	if name == "" {
		return "Unnamed"
	}
	return name
}
