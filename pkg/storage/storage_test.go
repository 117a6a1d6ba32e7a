package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalStoreRoundTrip(t *testing.T) {
	s := NewLocalStore(t.TempDir())
	ctx := context.Background()

	if err := s.Put(ctx, "2026-08-30/dashboard.html", []byte("<html>")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	data, err := s.Get(ctx, "2026-08-30/dashboard.html")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(data) != "<html>" {
		t.Errorf("Get = %q", data)
	}

	keys, err := s.List(ctx, "2026-08-30")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(keys) != 1 || keys[0] != "2026-08-30/dashboard.html" {
		t.Errorf("List = %v", keys)
	}
}

func TestListMissingPrefixIsEmpty(t *testing.T) {
	s := NewLocalStore(t.TempDir())

	keys, err := s.List(context.Background(), "nothing-here")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(keys) != 0 {
		t.Errorf("List = %v, want empty", keys)
	}
}

func TestArchiveCopiesReports(t *testing.T) {
	src := t.TempDir()
	jsonPath := filepath.Join(src, "diff_report.json")
	htmlPath := filepath.Join(src, "dashboard.html")
	os.WriteFile(jsonPath, []byte("[]"), 0644)
	os.WriteFile(htmlPath, []byte("<html>"), 0644)

	s := NewLocalStore(t.TempDir())
	keys, err := Archive(context.Background(), s, "run-1", jsonPath, htmlPath, filepath.Join(src, "missing.csv"))
	if err == nil {
		t.Error("expected error for the missing file")
	}
	if len(keys) != 2 {
		t.Fatalf("archived %d files, want 2", len(keys))
	}

	data, err := s.Get(context.Background(), "run-1/diff_report.json")
	if err != nil || string(data) != "[]" {
		t.Errorf("archived copy mismatch: %q, %v", data, err)
	}
}
