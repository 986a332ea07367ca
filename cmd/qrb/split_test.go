package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSplitRejectsUnreadableTocFile(t *testing.T) {
	dir := t.TempDir()
	md := filepath.Join(dir, "book.md")
	if err := os.WriteFile(md, []byte("# One\n\nbody\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	tocPath := filepath.Join(dir, "toc.json")
	if err := os.WriteFile(tocPath, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	splitTocFile = tocPath
	splitOutDir = dir
	t.Cleanup(func() {
		splitTocFile = ""
		splitOutDir = ""
	})

	err := splitCmd.RunE(splitCmd, []string{md})
	if err == nil {
		t.Fatal("expected error for unreadable toc file")
	}
	if !strings.Contains(err.Error(), "toc") {
		t.Errorf("error should name the toc file, got %v", err)
	}
}
