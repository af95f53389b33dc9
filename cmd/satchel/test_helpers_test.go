package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"satchel/internal/testsupport"
)

type cliTestEnv struct {
	fixture    *testsupport.ArchiveBuilder
	configPath string
	outputDir  string
	logDir     string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	fixture := testsupport.NewArchive(t)
	outputDir := filepath.Join(base, "output")
	logDir := filepath.Join(base, "logs")

	configPath := filepath.Join(homeDir, ".config", "satchel", "config.toml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	writeTestConfig(t, configPath, fixture.Root(), outputDir, logDir)

	return &cliTestEnv{
		fixture:    fixture,
		configPath: configPath,
		outputDir:  outputDir,
		logDir:     logDir,
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path, archiveDir, outputDir, logDir string) {
	t.Helper()
	content := fmt.Sprintf(`[paths]
archive_dir = %q
output_dir = %q
log_dir = %q

[logging]
format = "json"
level = "error"
`, archiveDir, outputDir, logDir)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
