package main

import (
	"path/filepath"
	"strings"
	"testing"

	"muscat/internal/testsupport"
)

func TestExtsCommandNoRecords(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"init-store"}, env.configPath); err != nil {
		t.Fatalf("init-store: %v", err)
	}

	stdout, _, err := runCLI(t, []string{"exts", "--scan-name", "ghost"}, env.configPath)
	if err != nil {
		t.Fatalf("exts: %v", err)
	}
	requireContains(t, stdout, "No records found for scan name: ghost")
}

func TestExtsCommandHistogram(t *testing.T) {
	env := setupCLITestEnv(t)

	src := filepath.Join(env.baseDir, "library")
	testsupport.WriteTree(t, src, map[string]string{
		"a.txt":    "alpha",
		"b.txt":    "beta",
		"notes.md": "gamma",
	})
	if _, _, err := runCLI(t, []string{"scan", "--path", src, "--scan-name", "first"}, env.configPath); err != nil {
		t.Fatalf("scan: %v", err)
	}

	stdout, _, err := runCLI(t, []string{"exts", "--scan-name", "first"}, env.configPath)
	if err != nil {
		t.Fatalf("exts: %v", err)
	}
	// go-pretty renders headers upper-cased
	requireContains(t, stdout, "EXTENSION")
	requireContains(t, stdout, "txt")
	requireContains(t, stdout, "md")
	requireContains(t, stdout, "2")
}

func TestListFilesCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	src := filepath.Join(env.baseDir, "library")
	testsupport.WriteTree(t, src, map[string]string{
		"a.txt":    "alpha",
		"b.txt":    "beta",
		"notes.md": "gamma",
	})
	if _, _, err := runCLI(t, []string{"scan", "--path", src, "--scan-name", "first"}, env.configPath); err != nil {
		t.Fatalf("scan: %v", err)
	}

	stdout, _, err := runCLI(t, []string{"list-files", "--ext", "txt"}, env.configPath)
	if err != nil {
		t.Fatalf("list-files: %v", err)
	}
	requireContains(t, stdout, "a.txt")
	requireContains(t, stdout, "b.txt")
	if contains := filepath.Join(src, "notes.md"); strings.Contains(stdout, contains) {
		t.Fatalf("expected output to omit %s:\n%s", contains, stdout)
	}
}

func TestListFilesCommandHonorsLimit(t *testing.T) {
	env := setupCLITestEnv(t)

	src := filepath.Join(env.baseDir, "library")
	testsupport.WriteTree(t, src, map[string]string{
		"a.txt": "alpha",
		"b.txt": "beta",
	})
	if _, _, err := runCLI(t, []string{"scan", "--path", src, "--scan-name", "first"}, env.configPath); err != nil {
		t.Fatalf("scan: %v", err)
	}

	stdout, _, err := runCLI(t, []string{"list-files", "--ext", "txt", "--limit", "1"}, env.configPath)
	if err != nil {
		t.Fatalf("list-files: %v", err)
	}
	// file_name descending puts b.txt first
	requireContains(t, stdout, "b.txt")
	if strings.Contains(stdout, "a.txt") {
		t.Fatalf("expected output limited to one record:\n%s", stdout)
	}
}

func TestScansCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	src := filepath.Join(env.baseDir, "library")
	testsupport.WriteTree(t, src, map[string]string{"a.txt": "alpha"})
	if _, _, err := runCLI(t, []string{"scan", "--path", src, "--scan-name", "first"}, env.configPath); err != nil {
		t.Fatalf("scan: %v", err)
	}

	store := testsupport.MustOpenStore(t, env.cfg)
	testsupport.NewScan(t, store, "partial")
	store.Close()

	stdout, _, err := runCLI(t, []string{"scans"}, env.configPath)
	if err != nil {
		t.Fatalf("scans: %v", err)
	}
	requireContains(t, stdout, "first")
	requireContains(t, stdout, "partial")
	requireContains(t, stdout, "incomplete")
}
