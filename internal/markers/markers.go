// Package markers scans annotated document text for positional anchors.
//
// Converters emit page anchors ("<!-- PAGE N -->", N zero-based) and
// chapter anchors ("<!-- CHAPTER id -->") while flattening a container
// format to text. This package recovers the character offset of each
// anchor so the splitter can map ToC locators back into the flat text.
package markers

import "regexp"

var (
	pageMarkerRe    = regexp.MustCompile(`<!-- PAGE (\d+) -->`)
	chapterMarkerRe = regexp.MustCompile(`<!-- CHAPTER (.*?) -->`)
)

// PageOffsets returns a map from zero-based page index to the offset of
// that page's anchor in text. Duplicate page anchors overwrite: the
// last occurrence wins.
func PageOffsets(text string) map[int]int {
	offsets := make(map[int]int)
	for _, m := range pageMarkerRe.FindAllStringSubmatchIndex(text, -1) {
		page := atoi(text[m[2]:m[3]])
		offsets[page] = m[0]
	}
	return offsets
}

// ChapterSet holds chapter anchor offsets keyed by the anchor's opaque
// identifier, preserving document order of first occurrence.
type ChapterSet struct {
	offsets map[string]int
	keys    []string
}

// ChapterOffsets scans text for chapter anchors. Identifiers are kept
// verbatim. A duplicate identifier keeps its original position in the
// key order but takes the offset of the last occurrence.
func ChapterOffsets(text string) *ChapterSet {
	cs := &ChapterSet{offsets: make(map[string]int)}
	for _, m := range chapterMarkerRe.FindAllStringSubmatchIndex(text, -1) {
		id := text[m[2]:m[3]]
		if _, seen := cs.offsets[id]; !seen {
			cs.keys = append(cs.keys, id)
		}
		cs.offsets[id] = m[0]
	}
	return cs
}

// Len returns the number of distinct chapter anchors.
func (cs *ChapterSet) Len() int { return len(cs.keys) }

// Keys returns anchor identifiers in first-occurrence order.
func (cs *ChapterSet) Keys() []string { return cs.keys }

// Offset returns the offset recorded for id.
func (cs *ChapterSet) Offset(id string) (int, bool) {
	off, ok := cs.offsets[id]
	return off, ok
}

// At returns the offset of the i-th anchor in first-occurrence order.
func (cs *ChapterSet) At(i int) (int, bool) {
	if i < 0 || i >= len(cs.keys) {
		return 0, false
	}
	return cs.offsets[cs.keys[i]], true
}

// atoi parses a string of ASCII digits. The regexp guarantees the input
// shape, so overflow aside there is no error path.
func atoi(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}
