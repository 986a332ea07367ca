package outline

import (
	"fmt"
	"testing"
)

// fakeDoc implements Document over in-memory pages.
type fakeDoc struct {
	pages []string
	words map[int][]Word
}

func (d *fakeDoc) PageCount() int { return len(d.pages) }

func (d *fakeDoc) PageText(page int) string {
	if page < 0 || page >= len(d.pages) {
		return ""
	}
	return d.pages[page]
}

func (d *fakeDoc) PageWords(page int) []Word {
	if d.words == nil {
		return nil
	}
	return d.words[page]
}

func TestExtract_OutlineTree(t *testing.T) {
	doc := &fakeDoc{pages: []string{
		"Contents\nChapter 1 .... 5", // detectable contents page, must be ignored
		"body", "body",
	}}
	root := []Node{
		{Title: "Part One", Page: 0, Children: []Node{
			{Title: "Chapter 1", Page: 0},
			{Title: "Chapter 2", Page: 1},
		}},
		{Title: "Part Two", Page: 2},
	}

	res := Extract(doc, root, nil)
	if res.Method != MethodOutline {
		t.Fatalf("expected outline method, got %s", res.Method)
	}
	if len(res.Entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(res.Entries))
	}
	// Depth-first flattening with level per nesting depth.
	wantLevels := []int{1, 2, 2, 1}
	for i, want := range wantLevels {
		if res.Entries[i].Level != want {
			t.Errorf("entry %d: expected level %d, got %d", i, want, res.Entries[i].Level)
		}
	}
	if res.Entries[1].Title != "Chapter 1" || *res.Entries[1].Page != 0 {
		t.Errorf("unexpected entry: %+v", res.Entries[1])
	}
}

func TestExtract_OutlineSkipsUnresolvedPages(t *testing.T) {
	doc := &fakeDoc{pages: []string{"body"}}
	root := []Node{
		{Title: "Broken", Page: -1, Children: []Node{{Title: "Kept", Page: 0}}},
	}
	res := Extract(doc, root, nil)
	if res.Method != MethodOutline {
		t.Fatalf("expected outline method, got %s", res.Method)
	}
	if len(res.Entries) != 1 || res.Entries[0].Title != "Kept" || res.Entries[0].Level != 2 {
		t.Errorf("unexpected entries: %+v", res.Entries)
	}
}

func TestExtract_ContentsPage(t *testing.T) {
	t.Run("trailing page numbers and indentation", func(t *testing.T) {
		doc := &fakeDoc{pages: []string{
			"Title Page",
			"Table of Contents\nIntroduction 1\n  First Steps 5\n    Deep Dive 9\nshort 2",
			"body", "body",
		}}
		res := Extract(doc, nil, nil)
		if res.Method != MethodContentsPage {
			t.Fatalf("expected contents_page method, got %s", res.Method)
		}
		if len(res.Entries) != 4 {
			t.Fatalf("expected 4 entries, got %d: %+v", len(res.Entries), res.Entries)
		}
		e := res.Entries[0]
		if e.Title != "Introduction" || *e.Page != 1 || e.Level != 1 {
			t.Errorf("unexpected first entry: %+v", e)
		}
		if res.Entries[1].Level != 2 || res.Entries[2].Level != 3 {
			t.Errorf("indent levels wrong: %+v", res.Entries)
		}
	})

	t.Run("dotted leader", func(t *testing.T) {
		got, ok := parseTocLine("Epilogue...210")
		if !ok {
			t.Fatal("expected a match")
		}
		if got.Title != "Epilogue" || *got.Page != 210 {
			t.Errorf("unexpected entry: %+v", got)
		}
	})

	t.Run("spaced dotted leader", func(t *testing.T) {
		got, ok := parseTocLine("Prologue. . .7")
		if !ok {
			t.Fatal("expected a match")
		}
		if got.Title != "Prologue" || *got.Page != 7 {
			t.Errorf("unexpected entry: %+v", got)
		}
	})

	t.Run("cjk chapter numeral", func(t *testing.T) {
		got, ok := parseTocLine("第1章引言12")
		if !ok {
			t.Fatal("expected a match")
		}
		if *got.Page != 12 || got.Level != 1 {
			t.Errorf("unexpected entry: %+v", got)
		}
	})

	t.Run("english chapter pattern", func(t *testing.T) {
		got, ok := parseTocLine("Chapter 2:GettingStarted15")
		if !ok {
			t.Fatal("expected a match")
		}
		if got.Title != "Chapter 2: GettingStarted" || *got.Page != 15 {
			t.Errorf("unexpected entry: %+v", got)
		}
	})

	t.Run("unmatched lines are skipped", func(t *testing.T) {
		if _, ok := parseTocLine("just some prose without numbers"); ok {
			t.Error("line without digits should not match")
		}
		if _, ok := parseTocLine("ab 1"); ok {
			t.Error("too-short line should not match")
		}
	})
}

func TestExtract_StrongMarkerPinsWindow(t *testing.T) {
	pages := make([]string, 12)
	pages[0] = "toc mention here\nFirst 1" // weak marker page, superseded
	pages[3] = "目录"
	pages[4] = "第一章 起点 2"
	pages[9] = "Later 99" // outside the 5-page window
	for i, p := range pages {
		if p == "" {
			pages[i] = "body"
		}
	}
	doc := &fakeDoc{pages: pages}

	entries := scanContentsPages(doc)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry from pinned window, got %d: %+v", len(entries), entries)
	}
	if *entries[0].Page != 2 {
		t.Errorf("unexpected entry: %+v", entries[0])
	}
}

func TestExtract_Layout(t *testing.T) {
	doc := &fakeDoc{
		pages: []string{"no usable text lines here"},
		words: map[int][]Word{
			0: {
				{Text: "Introduction", X: 50, Y: 100},
				{Text: "to", X: 120, Y: 101},
				{Text: "Go", X: 140, Y: 99},
				{Text: "3", X: 500, Y: 100},
				{Text: "Advanced", X: 120, Y: 120},
				{Text: "Topics", X: 180, Y: 120},
				{Text: "42", X: 500, Y: 121},
			},
		},
	}
	res := Extract(doc, nil, nil)
	if res.Method != MethodLayout {
		t.Fatalf("expected layout method, got %s", res.Method)
	}
	if len(res.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d: %+v", len(res.Entries), res.Entries)
	}
	if res.Entries[0].Title != "Introduction to Go" || *res.Entries[0].Page != 3 || res.Entries[0].Level != 1 {
		t.Errorf("unexpected first entry: %+v", res.Entries[0])
	}
	if res.Entries[1].Title != "Advanced Topics" || *res.Entries[1].Page != 42 || res.Entries[1].Level != 2 {
		t.Errorf("unexpected second entry: %+v", res.Entries[1])
	}
}

func TestExtract_ChapterScan(t *testing.T) {
	doc := &fakeDoc{pages: []string{
		"front matter only",
		"Chapter 1 The Beginning\nsome body text",
		"more body",
		"第 二 章 中间部分\nmore text",
	}}
	res := Extract(doc, nil, nil)
	if res.Method != MethodChapterScan {
		t.Fatalf("expected chapter_scan method, got %s", res.Method)
	}
	if len(res.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d: %+v", len(res.Entries), res.Entries)
	}
	if *res.Entries[0].Page != 1 || *res.Entries[1].Page != 3 {
		t.Errorf("unexpected pages: %+v", res.Entries)
	}
	if res.Entries[0].Level != 1 {
		t.Errorf("chapter scan entries must be level 1, got %d", res.Entries[0].Level)
	}
}

func TestExtract_IntervalFallback(t *testing.T) {
	pages := make([]string, 25)
	for i := range pages {
		pages[i] = fmt.Sprintf("page %d body", i)
	}
	doc := &fakeDoc{pages: pages}

	res := Extract(doc, nil, nil)
	if res.Method != MethodInterval {
		t.Fatalf("expected interval method, got %s", res.Method)
	}
	if len(res.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(res.Entries))
	}
	wantTitles := []string{"Pages 1-10", "Pages 11-20", "Pages 21-25"}
	wantPages := []int{0, 10, 20}
	for i := range res.Entries {
		if res.Entries[i].Title != wantTitles[i] || *res.Entries[i].Page != wantPages[i] {
			t.Errorf("entry %d: got %+v", i, res.Entries[i])
		}
	}
}

func TestExtract_EmptyDocument(t *testing.T) {
	res := Extract(&fakeDoc{}, nil, nil)
	if res.Method != MethodNone || len(res.Entries) != 0 {
		t.Errorf("expected no entries for empty document, got %+v", res)
	}
}
