package main

import (
	"testing"

	"satchel/internal/testsupport"
)

func TestInspectPreviewsWithoutCopying(t *testing.T) {
	env := setupCLITestEnv(t)
	env.fixture.WriteManifest(
		testsupport.ManifestEntry{ContextID: "7", ContentHash: "abcd1234", Filename: "intro.pdf"},
	)
	env.fixture.AddSection("section_1", "1", "Week 1", "101,205")
	env.fixture.AddResource("101", "7", "Introduction")
	env.fixture.AddActivityFolder("quiz_205")
	env.fixture.AddBlob("abcd1234", []byte("x"))

	out, _, err := runCLI(t, []string{"inspect"}, env.configPath)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	requireContains(t, out, "Would extract 1 file(s), skip 1 entr(ies)")
	requireContains(t, out, "unsupported kind")
	requireContains(t, out, "Introduction")
}
