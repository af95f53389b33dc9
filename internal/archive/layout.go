package archive

import "path/filepath"

// Layout resolves the well-known locations inside an archive root. It is an
// immutable value passed explicitly to every component that reads the
// archive.
type Layout struct {
	root string
}

// NewLayout returns a Layout anchored at root.
func NewLayout(root string) Layout {
	return Layout{root: filepath.Clean(root)}
}

// Root returns the archive root directory.
func (l Layout) Root() string { return l.root }

// ManifestPath returns the location of the content manifest.
func (l Layout) ManifestPath() string { return filepath.Join(l.root, "files.xml") }

// SectionsDir returns the directory holding per-section subfolders.
func (l Layout) SectionsDir() string { return filepath.Join(l.root, "sections") }

// ActivitiesDir returns the directory holding per-activity subfolders.
func (l Layout) ActivitiesDir() string { return filepath.Join(l.root, "activities") }

// BlobsDir returns the root of the sharded blob store.
func (l Layout) BlobsDir() string { return filepath.Join(l.root, "files") }

// BlobPath returns the sharded location of a content blob: the store nests
// each blob in a directory named by the first two characters of its hash.
// Returns "" for hashes too short to shard.
func (l Layout) BlobPath(hash string) string {
	if len(hash) < 2 {
		return ""
	}
	return filepath.Join(l.root, "files", hash[:2], hash)
}
