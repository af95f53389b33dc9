package archive

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Section is one course section as declared by its descriptor.
type Section struct {
	// Number orders and names the output folder. It need not be unique or
	// contiguous across sections; unparsable values default to 0.
	Number int
	// Name is the display name, "Unnamed" when the descriptor leaves it blank.
	Name string
	// Sequence holds the ordered activity reference ids, already trimmed and
	// with blank entries dropped.
	Sequence []string
	// Dir is the section subfolder the descriptor was read from, kept for
	// diagnostics.
	Dir string
}

type sectionXML struct {
	Number   *string `xml:"number"`
	Name     *string `xml:"name"`
	Sequence *string `xml:"sequence"`
}

// SectionDirs lists the section subfolders of the archive in directory
// enumeration order. Non-directories are ignored.
func SectionDirs(l Layout) ([]string, error) {
	entries, err := os.ReadDir(l.SectionsDir())
	if err != nil {
		return nil, fmt.Errorf("read sections dir: %w", err)
	}
	dirs := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dirs = append(dirs, filepath.Join(l.SectionsDir(), entry.Name()))
	}
	return dirs, nil
}

// DescriptorPath returns the section descriptor location inside a section
// subfolder.
func DescriptorPath(sectionDir string) string {
	return filepath.Join(sectionDir, "section.xml")
}

// ParseSection reads and decodes a section descriptor. All three elements
// (number, name, sequence) must be present; their content may be empty.
func ParseSection(sectionDir string) (Section, error) {
	path := DescriptorPath(sectionDir)
	data, err := os.ReadFile(path)
	if err != nil {
		return Section{}, fmt.Errorf("read %s: %w", path, err)
	}

	var raw sectionXML
	if err := xml.Unmarshal(data, &raw); err != nil {
		return Section{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if raw.Number == nil || raw.Name == nil || raw.Sequence == nil {
		return Section{}, fmt.Errorf("missing required element(s) in %s", path)
	}

	number, err := strconv.Atoi(strings.TrimSpace(*raw.Number))
	if err != nil {
		number = 0
	}
	name := strings.TrimSpace(*raw.Name)
	if name == "" {
		name = "Unnamed"
	}

	return Section{
		Number:   number,
		Name:     name,
		Sequence: ParseSequence(*raw.Sequence),
		Dir:      sectionDir,
	}, nil
}

// ParseSequence splits a comma-separated reference list into its ordered ids.
// Entries are trimmed and blanks are dropped, so the caller's 1-based index
// over the result is already the dense output ordinal.
func ParseSequence(raw string) []string {
	parts := strings.Split(raw, ",")
	ids := make([]string, 0, len(parts))
	for _, part := range parts {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
