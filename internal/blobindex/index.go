package blobindex

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Entry locates one piece of stored content.
type Entry struct {
	ContentHash string
	Extension   string
}

// Index maps a content identifier to its blob entry. Built once per run and
// read-only afterwards.
type Index map[string]Entry

// ErrNoUsableEntries reports a manifest that parsed but contained nothing the
// extractor can work with. Nothing downstream can succeed without the index,
// so callers treat this as fatal.
var ErrNoUsableEntries = errors.New("manifest has no usable file entries")

type manifestXML struct {
	Files []manifestFile `xml:"file"`
}

type manifestFile struct {
	ContextID   string `xml:"contextid"`
	ContentHash string `xml:"contenthash"`
	Filename    string `xml:"filename"`
}

// Build parses the manifest at path into an Index.
//
// Entries are skipped when they lack a content hash, when the filename is
// empty or the "." sentinel for directory rows, or when the filename carries
// no extension. On duplicate content identifiers the first valid entry wins;
// later duplicates are ignored so lookups stay deterministic under manifest
// ordering.
func Build(path string) (Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var manifest manifestXML
	if err := xml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}

	index := make(Index, len(manifest.Files))
	for _, file := range manifest.Files {
		contextID := strings.TrimSpace(file.ContextID)
		contentHash := strings.TrimSpace(file.ContentHash)
		filename := strings.TrimSpace(file.Filename)

		if contextID == "" || contentHash == "" {
			continue
		}
		if filename == "" || filename == "." {
			continue
		}
		extension := extensionOf(filename)
		if extension == "" {
			continue
		}
		if _, exists := index[contextID]; exists {
			continue
		}
		index[contextID] = Entry{ContentHash: contentHash, Extension: extension}
	}

	if len(index) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoUsableEntries, path)
	}
	return index, nil
}

// extensionOf returns the substring after the last dot, or "" when the name
// has no dot.
func extensionOf(filename string) string {
	idx := strings.LastIndexByte(filename, '.')
	if idx < 0 || idx == len(filename)-1 {
		return ""
	}
	return filename[idx+1:]
}
