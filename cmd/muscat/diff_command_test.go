package main

import (
	"path/filepath"
	"testing"

	"muscat/internal/testsupport"
)

func TestDiffCountCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	originDir := filepath.Join(env.baseDir, "origin")
	destDir := filepath.Join(env.baseDir, "dest")
	testsupport.WriteTree(t, originDir, map[string]string{
		"a.txt": "alpha",
		"b.txt": "beta",
	})
	testsupport.WriteTree(t, destDir, map[string]string{
		"a.txt": "alpha",
	})

	if _, _, err := runCLI(t, []string{"scan", "--path", originDir, "--scan-name", "origin"}, env.configPath); err != nil {
		t.Fatalf("scan origin: %v", err)
	}
	if _, _, err := runCLI(t, []string{"scan", "--path", destDir, "--scan-name", "dest"}, env.configPath); err != nil {
		t.Fatalf("scan dest: %v", err)
	}

	stdout, _, err := runCLI(t, []string{"diff-count", "--origin-scan", "origin", "--dest-scan", "dest"}, env.configPath)
	if err != nil {
		t.Fatalf("diff-count: %v", err)
	}
	requireContains(t, stdout, "Different files count between origin and dest: 1")
}

func TestDiffCountCommandIdenticalScans(t *testing.T) {
	env := setupCLITestEnv(t)

	src := filepath.Join(env.baseDir, "library")
	testsupport.WriteTree(t, src, map[string]string{"a.txt": "alpha"})

	for _, name := range []string{"origin", "dest"} {
		if _, _, err := runCLI(t, []string{"scan", "--path", src, "--scan-name", name}, env.configPath); err != nil {
			t.Fatalf("scan %s: %v", name, err)
		}
	}

	stdout, _, err := runCLI(t, []string{"diff-count", "--origin-scan", "origin", "--dest-scan", "dest"}, env.configPath)
	if err != nil {
		t.Fatalf("diff-count: %v", err)
	}
	requireContains(t, stdout, "Different files count between origin and dest: 0")
}

func TestDiffCountCommandUnknownScanFails(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"init-store"}, env.configPath); err != nil {
		t.Fatalf("init-store: %v", err)
	}

	_, _, err := runCLI(t, []string{"diff-count", "--origin-scan", "ghost", "--dest-scan", "also-ghost"}, env.configPath)
	if err == nil {
		t.Fatal("expected error for unknown scans")
	}
}
