package db

import (
	"strings"
	"testing"
	"testing/fstest"
	"time"
)

func mapFS(files map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, content := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return fsys
}

func newTestMigrator(t *testing.T, files map[string]string) *Migrator {
	t.Helper()
	m, err := NewMigrator(nil, mapFS(files), "")
	if err != nil {
		t.Fatalf("NewMigrator() error: %v", err)
	}
	return m
}

func TestLoadMigrations(t *testing.T) {
	m := newTestMigrator(t, map[string]string{
		"001_core.sql":  "CREATE TABLE app_user (id BIGSERIAL PRIMARY KEY);",
		"002_ward.sql":  "CREATE TABLE patient (id BIGSERIAL PRIMARY KEY);",
		"003_tasks.sql": "CREATE TABLE task (id BIGSERIAL PRIMARY KEY);",
	})

	migrations, err := m.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(migrations) != 3 {
		t.Fatalf("expected 3 migrations, got %d", len(migrations))
	}
	if migrations[0].Version != 1 || migrations[0].Name != "001_core.sql" {
		t.Errorf("unexpected first migration: %+v", migrations[0])
	}
	if migrations[0].SQL != "CREATE TABLE app_user (id BIGSERIAL PRIMARY KEY);" {
		t.Errorf("unexpected SQL content: %s", migrations[0].SQL)
	}
	if migrations[2].Version != 3 {
		t.Errorf("expected version 3, got %d", migrations[2].Version)
	}
}

func TestLoadMigrations_SortOrder(t *testing.T) {
	m := newTestMigrator(t, map[string]string{
		"010_tables.sql": "SELECT 10;",
		"002_second.sql": "SELECT 2;",
		"001_first.sql":  "SELECT 1;",
		"005_middle.sql": "SELECT 5;",
	})

	migrations, err := m.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	want := []int{1, 2, 5, 10}
	if len(migrations) != len(want) {
		t.Fatalf("expected %d migrations, got %d", len(want), len(migrations))
	}
	for i, v := range want {
		if migrations[i].Version != v {
			t.Errorf("migration[%d]: expected version %d, got %d", i, v, migrations[i].Version)
		}
	}
}

func TestLoadMigrations_SkipsUnversionedFiles(t *testing.T) {
	m := newTestMigrator(t, map[string]string{
		"001_valid.sql":      "SELECT 1;",
		"readme.sql":         "-- no version prefix",
		"notes.txt":          "not sql",
		"abc_invalid.sql":    "-- non-numeric prefix",
		"002_also_valid.sql": "SELECT 2;",
		"sub/003_nested.sql": "SELECT 3;",
	})

	migrations, err := m.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(migrations) != 2 {
		t.Fatalf("expected 2 valid migrations, got %d", len(migrations))
	}
}

func TestLoadMigrations_DuplicateVersion(t *testing.T) {
	m := newTestMigrator(t, map[string]string{
		"001_a.sql": "SELECT 1;",
		"001_b.sql": "SELECT 1;",
	})
	_, err := m.Load()
	if err == nil {
		t.Fatal("expected error for duplicate version")
	}
	if !strings.Contains(err.Error(), "duplicate migration version 1") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadMigrations_Embedded(t *testing.T) {
	m, err := NewMigrator(nil, EmbeddedMigrations(), "public")
	if err != nil {
		t.Fatalf("NewMigrator() error: %v", err)
	}
	migrations, err := m.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(migrations) == 0 {
		t.Fatal("expected embedded migrations")
	}
	if migrations[0].Name != "001_ward.sql" {
		t.Errorf("expected 001_ward.sql first, got %s", migrations[0].Name)
	}
	for _, table := range []string{"app_user", "patient", "task"} {
		if !strings.Contains(migrations[0].SQL, "CREATE TABLE IF NOT EXISTS "+table) {
			t.Errorf("expected %s table in first migration", table)
		}
	}
}

func TestNewMigrator_Schema(t *testing.T) {
	m, err := NewMigrator(nil, mapFS(nil), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.schema != "public" {
		t.Errorf("expected default schema public, got %s", m.schema)
	}

	for _, bad := range []string{"ward-test", "a.b", "drop;table", "1abc"} {
		if _, err := NewMigrator(nil, mapFS(nil), bad); err == nil {
			t.Errorf("expected error for schema %q", bad)
		}
	}
}

func TestPendingAndStatus(t *testing.T) {
	migrations := []Migration{
		{Version: 1, Name: "001_core.sql"},
		{Version: 2, Name: "002_ward.sql"},
		{Version: 3, Name: "003_tasks.sql"},
	}
	appliedAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	done := map[int]time.Time{1: appliedAt}

	todo := pending(migrations, done)
	if len(todo) != 2 || todo[0].Version != 2 || todo[1].Version != 3 {
		t.Fatalf("unexpected pending set: %+v", todo)
	}

	statuses := statusOf(migrations, done)
	if len(statuses) != 3 {
		t.Fatalf("expected 3 statuses, got %d", len(statuses))
	}
	if !statuses[0].Applied || statuses[0].AppliedAt == nil || !statuses[0].AppliedAt.Equal(appliedAt) {
		t.Errorf("expected migration 001 applied at %v, got %+v", appliedAt, statuses[0])
	}
	for _, s := range statuses[1:] {
		if s.Applied || s.AppliedAt != nil {
			t.Errorf("expected %s to be pending", s.Name)
		}
	}
}
