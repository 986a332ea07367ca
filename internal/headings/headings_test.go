package headings

import (
	"strings"
	"testing"
)

func TestScan(t *testing.T) {
	t.Run("records title, level and line-start position", func(t *testing.T) {
		src := "intro text\n\n# First\n\nbody\n\n## Nested\n\nmore\n\n# Second\n"
		got := Scan(src)
		if len(got) != 3 {
			t.Fatalf("expected 3 headings, got %d: %+v", len(got), got)
		}
		if got[0].Title != "First" || got[0].Level != 1 {
			t.Errorf("unexpected first heading: %+v", got[0])
		}
		if got[0].Position != strings.Index(src, "# First") {
			t.Errorf("expected position %d, got %d", strings.Index(src, "# First"), got[0].Position)
		}
		if got[1].Level != 2 || got[1].Position != strings.Index(src, "## Nested") {
			t.Errorf("unexpected nested heading: %+v", got[1])
		}
		if got[2].Position != strings.Index(src, "# Second") {
			t.Errorf("unexpected second heading: %+v", got[2])
		}
	})

	t.Run("no headings", func(t *testing.T) {
		if got := Scan("just prose\n\nwith paragraphs\n"); len(got) != 0 {
			t.Errorf("expected no headings, got %+v", got)
		}
	})

	t.Run("heading on first line", func(t *testing.T) {
		got := Scan("# Top\nbody\n")
		if len(got) != 1 || got[0].Position != 0 {
			t.Errorf("expected heading at position 0, got %+v", got)
		}
	})
}

func TestChapters(t *testing.T) {
	t.Run("keeps only shallowest level", func(t *testing.T) {
		src := "## A\n\ntext\n\n### A.1\n\n## B\n\n### B.1\n\n## C\n"
		got := Chapters(src)
		if len(got) != 3 {
			t.Fatalf("expected 3 chapters, got %d: %+v", len(got), got)
		}
		for _, h := range got {
			if h.Level != 2 {
				t.Errorf("expected level 2, got %+v", h)
			}
		}
		if got[0].Title != "A" || got[1].Title != "B" || got[2].Title != "C" {
			t.Errorf("unexpected chapter titles: %+v", got)
		}
	})

	t.Run("min level appearing late still wins", func(t *testing.T) {
		src := "## Sub\n\n# Top\n"
		got := Chapters(src)
		if len(got) != 1 || got[0].Title != "Top" {
			t.Errorf("expected only the level-1 heading, got %+v", got)
		}
	})

	t.Run("nil for heading-free text", func(t *testing.T) {
		if got := Chapters("plain text"); got != nil {
			t.Errorf("expected nil, got %+v", got)
		}
	})
}
