package toc

import (
	"path/filepath"
	"testing"
)

func TestDetectKind(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		want    Kind
	}{
		{"empty", nil, KindNone},
		{"page locator", []Entry{PageEntry("One", 0, 1)}, KindPage},
		{"href locator", []Entry{HrefEntry("One", "ch1.xhtml", 1)}, KindHref},
		{"no locator", []Entry{{Title: "One", Level: 1}}, KindNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectKind(tt.entries); got != tt.want {
				t.Errorf("expected kind %v, got %v", tt.want, got)
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "toc.json")
	entries := []Entry{
		PageEntry("Chapter One", 3, 1),
		PageEntry("A Section", 5, 2),
	}

	if err := Save(path, entries); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(loaded))
	}
	if loaded[0].Title != "Chapter One" || *loaded[0].Page != 3 || loaded[0].Level != 1 {
		t.Errorf("unexpected first entry: %+v", loaded[0])
	}
	if loaded[1].Level != 2 {
		t.Errorf("expected level 2, got %d", loaded[1].Level)
	}
}

func TestParse(t *testing.T) {
	t.Run("rejects non-array", func(t *testing.T) {
		if _, err := Parse([]byte(`{"title":"x"}`)); err == nil {
			t.Error("expected schema error for object input")
		}
	})

	t.Run("rejects missing level", func(t *testing.T) {
		if _, err := Parse([]byte(`[{"title":"x"}]`)); err == nil {
			t.Error("expected schema error for missing level")
		}
	})

	t.Run("rejects negative page", func(t *testing.T) {
		if _, err := Parse([]byte(`[{"title":"x","level":1,"page":-2}]`)); err == nil {
			t.Error("expected schema error for negative page")
		}
	})

	t.Run("accepts href entries and trims titles", func(t *testing.T) {
		entries, err := Parse([]byte(`[{"title":"  Intro  ","level":1,"href":"intro.xhtml"}]`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if entries[0].Title != "Intro" {
			t.Errorf("expected trimmed title, got %q", entries[0].Title)
		}
	})
}
