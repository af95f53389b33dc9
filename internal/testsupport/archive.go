package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"satchel/internal/archive"
)

// ManifestEntry is one <file> row written into a fixture manifest.
type ManifestEntry struct {
	ContextID   string
	ContentHash string
	Filename    string
}

// ArchiveBuilder assembles a throwaway course-backup tree for tests.
type ArchiveBuilder struct {
	t    testing.TB
	root string
}

// NewArchive creates an empty archive fixture rooted in a per-test temp dir.
func NewArchive(t testing.TB) *ArchiveBuilder {
	t.Helper()
	root := filepath.Join(t.TempDir(), "backup")
	for _, dir := range []string{root, filepath.Join(root, "sections"), filepath.Join(root, "activities"), filepath.Join(root, "files")} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	return &ArchiveBuilder{t: t, root: root}
}

// Root returns the archive root directory.
func (b *ArchiveBuilder) Root() string { return b.root }

// Layout returns the archive layout for the fixture.
func (b *ArchiveBuilder) Layout() archive.Layout { return archive.NewLayout(b.root) }

// WriteManifest writes files.xml with the given entries in order.
func (b *ArchiveBuilder) WriteManifest(entries ...ManifestEntry) {
	b.t.Helper()
	var sb strings.Builder
	sb.WriteString("<files>\n")
	for _, entry := range entries {
		fmt.Fprintf(&sb, "  <file><contextid>%s</contextid><contenthash>%s</contenthash><filename>%s</filename></file>\n",
			entry.ContextID, entry.ContentHash, entry.Filename)
	}
	sb.WriteString("</files>\n")
	b.writeFile(filepath.Join(b.root, "files.xml"), sb.String())
}

// AddSection writes sections/<folder>/section.xml with the given descriptor
// fields.
func (b *ArchiveBuilder) AddSection(folder, number, name, sequence string) {
	b.t.Helper()
	body := fmt.Sprintf("<section><number>%s</number><name>%s</name><sequence>%s</sequence></section>\n",
		number, name, sequence)
	b.writeFile(filepath.Join(b.root, "sections", folder, "section.xml"), body)
}

// AddResource writes a conventional resource record for refID.
func (b *ArchiveBuilder) AddResource(refID, contextID, name string) {
	b.t.Helper()
	b.addRecord("resource", refID, contextID, name)
}

// AddPage writes a conventional page record for refID.
func (b *ArchiveBuilder) AddPage(refID, contextID, name string) {
	b.t.Helper()
	b.addRecord("page", refID, contextID, name)
}

func (b *ArchiveBuilder) addRecord(kind, refID, contextID, name string) {
	body := fmt.Sprintf("<activity contextid=%q><%s><name>%s</name></%s></activity>\n",
		contextID, kind, name, kind)
	folder := fmt.Sprintf("%s_%s", kind, refID)
	b.writeFile(filepath.Join(b.root, "activities", folder, kind+".xml"), body)
}

// AddActivityFolder creates an empty activity folder, e.g. "quiz_205".
func (b *ArchiveBuilder) AddActivityFolder(folder string) {
	b.t.Helper()
	if err := os.MkdirAll(filepath.Join(b.root, "activities", folder), 0o755); err != nil {
		b.t.Fatal(err)
	}
}

// AddRawActivity writes an arbitrary descriptor body, for malformed-record
// cases.
func (b *ArchiveBuilder) AddRawActivity(folder, file, body string) {
	b.t.Helper()
	b.writeFile(filepath.Join(b.root, "activities", folder, file), body)
}

// AddBlob stores content at the sharded blob location for hash.
func (b *ArchiveBuilder) AddBlob(hash string, content []byte) {
	b.t.Helper()
	if len(hash) < 2 {
		b.t.Fatalf("blob hash %q too short to shard", hash)
	}
	path := filepath.Join(b.root, "files", hash[:2], hash)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		b.t.Fatal(err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		b.t.Fatal(err)
	}
}

func (b *ArchiveBuilder) writeFile(path, body string) {
	b.t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		b.t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		b.t.Fatal(err)
	}
}
