package driver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeManifest(t *testing.T, dir, contents string) string {
	t.Helper()
	path := filepath.Join(dir, "manifest.yml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadManifestDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
description: "  counts down  "
expect:
  stdout: "[PRINT]: 1"
  error: " [Runtime/Semantic Error]: boom "
`)
	manifest, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if manifest.Description != "counts down" {
		t.Fatalf("unexpected description %q", manifest.Description)
	}
	if manifest.Entry != "program.yml" {
		t.Fatalf("expected default entry, got %q", manifest.Entry)
	}
	if got := manifest.EntryPath(); got != filepath.Join(dir, "program.yml") {
		t.Fatalf("EntryPath = %q", got)
	}
	if len(manifest.Expect.Stdout) != 1 || manifest.Expect.Stdout[0] != "[PRINT]: 1" {
		t.Fatalf("scalar stdout should become one line, got %v", manifest.Expect.Stdout)
	}
	if manifest.Expect.Error != "[Runtime/Semantic Error]: boom" {
		t.Fatalf("unexpected error expectation %q", manifest.Expect.Error)
	}
}

func TestLoadManifestEntryAndDump(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
entry: cases/main.yml
expect:
  stdout: ["[PRINT]: a", "[PRINT]: b"]
  dump: |
    Scope: global
`)
	manifest, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if got := manifest.EntryPath(); got != filepath.Join(dir, "cases", "main.yml") {
		t.Fatalf("EntryPath = %q", got)
	}
	if len(manifest.Expect.Stdout) != 2 {
		t.Fatalf("expected two stdout lines, got %v", manifest.Expect.Stdout)
	}
	if manifest.Expect.Dump != "Scope: global\n" {
		t.Fatalf("dump should be kept verbatim, got %q", manifest.Expect.Dump)
	}
}

func TestLoadManifestRejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "expect:\n  stderr: nope\n")
	if _, err := LoadManifest(path); err == nil || !strings.Contains(err.Error(), "stderr") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
	empty := writeManifest(t, t.TempDir(), "")
	if _, err := LoadManifest(empty); err == nil || !strings.Contains(err.Error(), "is empty") {
		t.Fatalf("expected empty manifest error, got %v", err)
	}
}
