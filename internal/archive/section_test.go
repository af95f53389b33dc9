package archive

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSection(t *testing.T, dir, body string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "section.xml"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestParseSection(t *testing.T) {
	dir := writeSection(t, filepath.Join(t.TempDir(), "section_4"),
		`<section id="4"><number>3</number><name> Week 3 </name><sequence>101, 102 ,103</sequence></section>`)

	section, err := ParseSection(dir)
	if err != nil {
		t.Fatalf("ParseSection: %v", err)
	}
	if section.Number != 3 {
		t.Fatalf("number = %d, want 3", section.Number)
	}
	if section.Name != "Week 3" {
		t.Fatalf("name = %q, want %q", section.Name, "Week 3")
	}
	want := []string{"101", "102", "103"}
	if len(section.Sequence) != len(want) {
		t.Fatalf("sequence = %v, want %v", section.Sequence, want)
	}
	for i := range want {
		if section.Sequence[i] != want[i] {
			t.Fatalf("sequence[%d] = %q, want %q", i, section.Sequence[i], want[i])
		}
	}
}

func TestParseSectionDefaults(t *testing.T) {
	dir := writeSection(t, filepath.Join(t.TempDir(), "section_9"),
		`<section><number>not-a-number</number><name></name><sequence></sequence></section>`)

	section, err := ParseSection(dir)
	if err != nil {
		t.Fatalf("ParseSection: %v", err)
	}
	if section.Number != 0 {
		t.Fatalf("unparsable number should default to 0, got %d", section.Number)
	}
	if section.Name != "Unnamed" {
		t.Fatalf("blank name should default to Unnamed, got %q", section.Name)
	}
	if len(section.Sequence) != 0 {
		t.Fatalf("empty sequence should yield no ids, got %v", section.Sequence)
	}
}

func TestParseSectionMissingElements(t *testing.T) {
	dir := writeSection(t, filepath.Join(t.TempDir(), "section_2"),
		`<section><number>2</number><name>Partial</name></section>`)

	if _, err := ParseSection(dir); err == nil {
		t.Fatal("expected error for missing sequence element")
	}
}

func TestParseSectionMissingDescriptor(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "section_1")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if _, err := ParseSection(dir); err == nil {
		t.Fatal("expected error for missing section.xml")
	}
}

func TestParseSequenceDropsBlanks(t *testing.T) {
	got := ParseSequence("101, , 102,,  ,103")
	want := []string{"101", "102", "103"}
	if len(got) != len(want) {
		t.Fatalf("ParseSequence = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ParseSequence[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSectionDirsSkipsFiles(t *testing.T) {
	root := t.TempDir()
	layout := NewLayout(root)
	if err := os.MkdirAll(filepath.Join(layout.SectionsDir(), "section_1"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(layout.SectionsDir(), "section_2"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(layout.SectionsDir(), "stray.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	dirs, err := SectionDirs(layout)
	if err != nil {
		t.Fatalf("SectionDirs: %v", err)
	}
	if len(dirs) != 2 {
		t.Fatalf("expected 2 section dirs, got %v", dirs)
	}
}

func TestLayoutPaths(t *testing.T) {
	layout := NewLayout("/data/course")
	if got := layout.ManifestPath(); got != filepath.Join("/data/course", "files.xml") {
		t.Fatalf("manifest path = %q", got)
	}
	if got := layout.BlobPath("abcd1234"); got != filepath.Join("/data/course", "files", "ab", "abcd1234") {
		t.Fatalf("blob path = %q", got)
	}
	if got := layout.BlobPath("a"); got != "" {
		t.Fatalf("short hash should yield empty path, got %q", got)
	}
}
