package blobindex

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "files.xml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBuildIndexesValidEntries(t *testing.T) {
	path := writeManifest(t, `<files>
  <file><contextid>7</contextid><contenthash>abcd1234</contenthash><filename>intro.pdf</filename></file>
  <file><contextid>8</contextid><contenthash>ef015678</contenthash><filename>notes.tar.gz</filename></file>
</files>`)

	index, err := Build(path)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(index) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(index))
	}
	if entry := index["7"]; entry.ContentHash != "abcd1234" || entry.Extension != "pdf" {
		t.Fatalf("unexpected entry for 7: %+v", entry)
	}
	// Extension is everything after the last dot.
	if entry := index["8"]; entry.Extension != "gz" {
		t.Fatalf("expected gz extension, got %q", entry.Extension)
	}
}

func TestBuildFirstEntryWinsOnDuplicates(t *testing.T) {
	path := writeManifest(t, `<files>
  <file><contextid>7</contextid><contenthash>first000</contenthash><filename>a.pdf</filename></file>
  <file><contextid>7</contextid><contenthash>later000</contenthash><filename>b.txt</filename></file>
</files>`)

	index, err := Build(path)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	entry := index["7"]
	if entry.ContentHash == "later000" {
		t.Fatal("last-wins duplicate policy detected; first valid entry must win")
	}
	if entry.ContentHash != "first000" || entry.Extension != "pdf" {
		t.Fatalf("unexpected winner: %+v", entry)
	}
}

func TestBuildFirstValidEntryWinsPastSkippedDuplicates(t *testing.T) {
	// An invalid first occurrence does not reserve the slot.
	path := writeManifest(t, `<files>
  <file><contextid>7</contextid><contenthash></contenthash><filename>a.pdf</filename></file>
  <file><contextid>7</contextid><contenthash>valid000</contenthash><filename>b.pdf</filename></file>
</files>`)

	index, err := Build(path)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if index["7"].ContentHash != "valid000" {
		t.Fatalf("expected first valid entry to win, got %+v", index["7"])
	}
}

func TestBuildSkipRules(t *testing.T) {
	path := writeManifest(t, `<files>
  <file><contextid>1</contextid><contenthash></contenthash><filename>a.pdf</filename></file>
  <file><contextid>2</contextid><contenthash>hash0002</contenthash><filename>.</filename></file>
  <file><contextid>3</contextid><contenthash>hash0003</contenthash><filename></filename></file>
  <file><contextid>4</contextid><contenthash>hash0004</contenthash><filename>no_extension</filename></file>
  <file><contextid>5</contextid><contenthash>hash0005</contenthash><filename>trailing.</filename></file>
  <file><contextid>6</contextid><contenthash>hash0006</contenthash><filename>ok.txt</filename></file>
</files>`)

	index, err := Build(path)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(index) != 1 {
		t.Fatalf("expected only the valid entry, got %v", index)
	}
	if _, ok := index["6"]; !ok {
		t.Fatalf("expected entry 6 present, got %v", index)
	}
}

func TestBuildNoUsableEntries(t *testing.T) {
	path := writeManifest(t, `<files>
  <file><contextid>1</contextid><contenthash></contenthash><filename>a.pdf</filename></file>
</files>`)

	_, err := Build(path)
	if !errors.Is(err, ErrNoUsableEntries) {
		t.Fatalf("expected ErrNoUsableEntries, got %v", err)
	}
}

func TestBuildMissingManifest(t *testing.T) {
	if _, err := Build(filepath.Join(t.TempDir(), "files.xml")); err == nil {
		t.Fatal("expected error for missing manifest")
	}
}

func TestBuildMalformedManifest(t *testing.T) {
	path := writeManifest(t, `<files><file><contextid>1`)
	if _, err := Build(path); err == nil {
		t.Fatal("expected error for malformed manifest")
	}
}
