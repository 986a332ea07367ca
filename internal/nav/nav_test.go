package nav

import "testing"

func TestExtract_NavTree(t *testing.T) {
	tree := []Item{
		{Title: "Part I", Href: "part1.xhtml", Children: []Item{
			{Title: "Chapter 1", Href: "ch1.xhtml"},
			{Title: "Chapter 2", Href: "ch2.xhtml", Children: []Item{
				{Title: "Notes", Href: "ch2.xhtml#notes"},
			}},
		}},
		{Title: "Part II", Href: "part2.xhtml"},
	}
	// Spine present but must not be consulted when the tree matches.
	spine := []SpineItem{{Href: "other.xhtml", Content: "<h1>Other</h1>"}}

	res := Extract(tree, spine, nil)
	if res.Method != MethodNavTree {
		t.Fatalf("expected nav_tree method, got %s", res.Method)
	}
	if len(res.Entries) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(res.Entries))
	}
	wantLevels := []int{1, 2, 2, 3, 1}
	for i, want := range wantLevels {
		if res.Entries[i].Level != want {
			t.Errorf("entry %d: expected level %d, got %d", i, want, res.Entries[i].Level)
		}
	}
	if res.Entries[3].Href != "ch2.xhtml#notes" {
		t.Errorf("fragment href must be preserved, got %q", res.Entries[3].Href)
	}
}

func TestExtract_SpineFallback(t *testing.T) {
	spine := []SpineItem{
		{Href: "intro.xhtml", Content: "<html><body><h2>Introduction</h2><p>text</p></body></html>"},
		{Href: "ch1.xhtml", Content: "<html><body><p>no heading here</p></body></html>"},
		{Href: "ch2.xhtml", Content: "<div><h4> Deep  Heading </h4></div>"},
	}

	res := Extract(nil, spine, nil)
	if res.Method != MethodSpine {
		t.Fatalf("expected spine method, got %s", res.Method)
	}
	if len(res.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(res.Entries))
	}
	if res.Entries[0].Title != "Introduction" {
		t.Errorf("expected heading-derived title, got %q", res.Entries[0].Title)
	}
	if res.Entries[1].Title != "Chapter 2" {
		t.Errorf("expected ordinal placeholder, got %q", res.Entries[1].Title)
	}
	if res.Entries[2].Title != "Deep  Heading" {
		t.Errorf("expected trimmed heading text, got %q", res.Entries[2].Title)
	}
	for i, e := range res.Entries {
		if e.Level != 1 {
			t.Errorf("entry %d: spine entries must be level 1, got %d", i, e.Level)
		}
		if e.Href != spine[i].Href {
			t.Errorf("entry %d: expected href %q, got %q", i, spine[i].Href, e.Href)
		}
	}
}

func TestExtract_Empty(t *testing.T) {
	res := Extract(nil, nil, nil)
	if res.Method != MethodNone || len(res.Entries) != 0 {
		t.Errorf("expected empty result, got %+v", res)
	}
}
