package workspace

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTreeFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, f := range []string{
		"main.go",
		"docs/guide.md",
		"node_modules/pkg/index.js",
		".git/config",
		".env",
	} {
		path := filepath.Join(dir, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	return dir
}

func TestRefreshSkipsDotAndDependencyDirs(t *testing.T) {
	dir := writeTreeFixture(t)
	tree := NewTree(nil)
	tree.Refresh(dir)

	entries := tree.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %v", entries)
	}
	if entries[0].Path != filepath.FromSlash("docs/guide.md") || entries[1].Path != "main.go" {
		t.Fatalf("unexpected listing %v", entries)
	}
	if tree.Root() != dir {
		t.Fatalf("expected root recorded, got %q", tree.Root())
	}
}

func TestRefreshNotifiesSwapCallback(t *testing.T) {
	dir := writeTreeFixture(t)
	var swapped []Entry
	tree := NewTree(func(entries []Entry) { swapped = entries })

	tree.Refresh(dir)

	if len(swapped) != 2 {
		t.Fatalf("expected swap callback with 2 entries, got %v", swapped)
	}
}

func TestEntriesReturnsACopy(t *testing.T) {
	dir := writeTreeFixture(t)
	tree := NewTree(nil)
	tree.Refresh(dir)

	entries := tree.Entries()
	entries[0].Path = "mutated"

	if tree.Entries()[0].Path == "mutated" {
		t.Fatal("expected cached listing isolated from returned slice")
	}
}
