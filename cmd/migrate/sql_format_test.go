package main

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestSQLMigrations_HaveGooseDirectives(t *testing.T) {
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("runtime.Caller failed")
	}
	repoRoot := filepath.Clean(filepath.Join(filepath.Dir(thisFile), "..", ".."))

	for _, service := range []string{"bookservice", "booksapi"} {
		migrationsDir := filepath.Join(repoRoot, "db", "migrations", service)

		entries, err := os.ReadDir(migrationsDir)
		if err != nil {
			t.Fatalf("ReadDir(%s): %v", migrationsDir, err)
		}
		if len(entries) == 0 {
			t.Fatalf("no migrations for %s", service)
		}

		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
				continue
			}
			b, err := os.ReadFile(filepath.Join(migrationsDir, e.Name()))
			if err != nil {
				t.Fatalf("ReadFile(%s): %v", e.Name(), err)
			}
			s := string(b)
			if !strings.Contains(s, "-- +goose Up") {
				t.Fatalf("%s/%s missing '-- +goose Up'", service, e.Name())
			}
			if !strings.Contains(s, "-- +goose Down") {
				t.Fatalf("%s/%s missing '-- +goose Down'", service, e.Name())
			}
		}
	}
}

func TestSQLMigrations_BooksCarryVersionColumn(t *testing.T) {
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("runtime.Caller failed")
	}
	repoRoot := filepath.Clean(filepath.Join(filepath.Dir(thisFile), "..", ".."))

	for _, service := range []string{"bookservice", "booksapi"} {
		path := filepath.Join(repoRoot, "db", "migrations", service, "00001_create_catalog.sql")
		b, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile(%s): %v", path, err)
		}
		if !strings.Contains(string(b), "version INT NOT NULL DEFAULT 1") {
			t.Fatalf("%s books table missing version token column", service)
		}
	}
}
