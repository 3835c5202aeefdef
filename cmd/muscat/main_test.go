package main

import (
	"os"
	"testing"
)

func TestRootWithoutCommandFails(t *testing.T) {
	env := setupCLITestEnv(t)

	stdout, _, err := runCLI(t, nil, env.configPath)
	if err == nil {
		t.Fatal("expected error when no command is given")
	}
	requireContains(t, stdout, "Usage:")
}

func TestUnknownCommandFails(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"frobnicate"}, env.configPath)
	if err == nil {
		t.Fatal("expected error for unknown command")
	}
}

func TestInitStoreCreatesDatabase(t *testing.T) {
	env := setupCLITestEnv(t)

	stdout, _, err := runCLI(t, []string{"init-store"}, env.configPath)
	if err != nil {
		t.Fatalf("init-store: %v", err)
	}
	requireContains(t, stdout, "Catalog initialized at")

	if _, err := os.Stat(env.cfg.DatabasePath()); err != nil {
		t.Fatalf("expected database file: %v", err)
	}
}

func TestInitStoreIsIdempotent(t *testing.T) {
	env := setupCLITestEnv(t)

	for i := 0; i < 2; i++ {
		if _, _, err := runCLI(t, []string{"init-store"}, env.configPath); err != nil {
			t.Fatalf("init-store run %d: %v", i+1, err)
		}
	}
}
