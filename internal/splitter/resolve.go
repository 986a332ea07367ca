package splitter

import (
	"sort"
	"strings"

	"github.com/fueny/QRB-code/internal/headings"
	"github.com/fueny/QRB-code/internal/markers"
	"github.com/fueny/QRB-code/internal/toc"
)

// ResolvePages computes segments for page-located entries. Entries are
// sorted ascending by page number first; each chapter runs from its
// page anchor to the next chapter's page anchor, or end of text for the
// last. A page with no anchor defaults the start to 0.
func ResolvePages(text string, entries []toc.Entry, offsets map[int]int) []Segment {
	sorted := make([]toc.Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return entryPage(sorted[i]) < entryPage(sorted[j])
	})

	segments := make([]Segment, 0, len(sorted))
	for i, e := range sorted {
		start := 0
		if off, ok := offsets[entryPage(e)]; ok {
			start = off
		}
		end := len(text)
		if i < len(sorted)-1 {
			if off, ok := offsets[entryPage(sorted[i+1])]; ok {
				end = off
			}
		}
		if end < start {
			// Anchor offsets are not guaranteed monotone in page order.
			end = start
		}
		segments = append(segments, Segment{
			Title:   entryTitle(e, i),
			Level:   entryLevel(e),
			Content: strings.Clone(text[start:end]),
		})
	}
	return segments
}

func entryPage(e toc.Entry) int {
	if e.Page == nil {
		return 0
	}
	return *e.Page
}

// ResolveHrefs computes segments for href-located entries, preserving
// the original ToC order. Start offsets resolve by exact substring
// match of the href against anchor identifiers, then fragment-stripped
// match, then the i-th anchor in document order. End offsets resolve
// the same way against the next entry's href but must exceed the start;
// failing that, the smallest anchor offset past the start wins.
func ResolveHrefs(text string, entries []toc.Entry, chapters *markers.ChapterSet) []Segment {
	sortedOffsets := make([]int, 0, chapters.Len())
	for _, key := range chapters.Keys() {
		off, _ := chapters.Offset(key)
		sortedOffsets = append(sortedOffsets, off)
	}
	sort.Ints(sortedOffsets)

	segments := make([]Segment, 0, len(entries))
	for i, e := range entries {
		start, ok := matchAnchor(chapters, e.Href, -1)
		if !ok {
			if off, posOK := chapters.At(i); posOK {
				start = off
			} else {
				start = 0
			}
		}

		end := len(text)
		if i < len(entries)-1 {
			if off, nextOK := matchAnchor(chapters, entries[i+1].Href, start); nextOK {
				end = off
			} else if off, afterOK := firstAfter(sortedOffsets, start); afterOK {
				end = off
			}
		}
		if end < start {
			end = start
		}

		segments = append(segments, Segment{
			Title:   entryTitle(e, i),
			Level:   entryLevel(e),
			Content: strings.Clone(text[start:end]),
		})
	}
	return segments
}

// matchAnchor finds the first anchor (in document order) whose
// identifier contains href and whose offset exceeds min. If the full
// href does not match and carries a "#fragment" suffix, the stripped
// form is retried.
func matchAnchor(chapters *markers.ChapterSet, href string, min int) (int, bool) {
	if href == "" {
		return 0, false
	}
	if off, ok := containsMatch(chapters, href, min); ok {
		return off, true
	}
	if idx := strings.Index(href, "#"); idx >= 0 {
		return containsMatch(chapters, href[:idx], min)
	}
	return 0, false
}

func containsMatch(chapters *markers.ChapterSet, href string, min int) (int, bool) {
	if href == "" {
		return 0, false
	}
	for _, key := range chapters.Keys() {
		if !strings.Contains(key, href) {
			continue
		}
		if off, _ := chapters.Offset(key); off > min {
			return off, true
		}
	}
	return 0, false
}

// firstAfter returns the smallest offset strictly greater than pos.
func firstAfter(sorted []int, pos int) (int, bool) {
	idx := sort.SearchInts(sorted, pos+1)
	if idx == len(sorted) {
		return 0, false
	}
	return sorted[idx], true
}

// ResolveHeadings computes segments from heading positions directly; no
// anchor lookup is involved.
func ResolveHeadings(text string, hs []headings.Heading) []Segment {
	segments := make([]Segment, 0, len(hs))
	for i, h := range hs {
		end := len(text)
		if i < len(hs)-1 {
			end = hs[i+1].Position
		}
		segments = append(segments, Segment{
			Title:   h.Title,
			Level:   h.Level,
			Content: strings.Clone(text[h.Position:end]),
		})
	}
	return segments
}
