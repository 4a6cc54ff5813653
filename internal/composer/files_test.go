package composer

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestReadFilesKeepsOrder(t *testing.T) {
	dir := t.TempDir()

	names := []string{"first.json", "second.html", "third.png"}
	contents := []string{`{"n":1}`, "<p>two</p>", "\x89PNG"}
	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
		if err := os.WriteFile(paths[i], []byte(contents[i]), 0o644); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}
	}

	excerpts, err := ReadFiles(context.Background(), paths)
	if err != nil {
		t.Fatalf("ReadFiles returned error: %v", err)
	}

	if len(excerpts) != len(names) {
		t.Fatalf("got %d excerpts, want %d", len(excerpts), len(names))
	}
	for i, name := range names {
		if excerpts[i].Name != name {
			t.Errorf("excerpts[%d].Name = %q, want %q", i, excerpts[i].Name, name)
		}
	}

	if excerpts[0].MimeType != "application/json" || excerpts[0].Content != contents[0] {
		t.Errorf("unexpected json excerpt: %+v", excerpts[0])
	}
	if excerpts[1].MimeType != "text/html" || excerpts[1].Content != contents[1] {
		t.Errorf("unexpected html excerpt: %+v", excerpts[1])
	}
	if excerpts[2].Content != "[File third.png (image/png), base64 omitted]" {
		t.Errorf("unexpected png excerpt: %+v", excerpts[2])
	}
}

func TestReadFilesMissingFile(t *testing.T) {
	dir := t.TempDir()
	ok := filepath.Join(dir, "ok.json")
	if err := os.WriteFile(ok, []byte("{}"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	if _, err := ReadFiles(context.Background(), []string{ok, filepath.Join(dir, "missing.json")}); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestReadFilesEmpty(t *testing.T) {
	excerpts, err := ReadFiles(context.Background(), nil)
	if err != nil {
		t.Fatalf("ReadFiles returned error: %v", err)
	}
	if len(excerpts) != 0 {
		t.Errorf("got %d excerpts, want 0", len(excerpts))
	}
}

func TestDeclaredType(t *testing.T) {
	tests := map[string]string{
		"notes.txt":    "text/plain",
		"data.JSON":    "application/json",
		"page.html":    "text/html",
		"shot.png":     "image/png",
		"no-extension": "",
	}

	for name, want := range tests {
		if got := DeclaredType(name); got != want {
			t.Errorf("DeclaredType(%q) = %q, want %q", name, got, want)
		}
	}
}
