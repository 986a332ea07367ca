// Package toc defines the recovered table-of-contents model shared by
// the extractors and the splitter, and persists it as a JSON artifact.
package toc

import "encoding/json"

// Entry is one recovered table-of-contents item. Exactly one locator
// field is meaningful:
//
//   - Page: set for page-indexed documents (PDF-style), zero-based.
//   - Href: set for item-indexed documents (EPUB-style), possibly
//     carrying a "#fragment" suffix.
type Entry struct {
	Title string `json:"title"`
	Level int    `json:"level"`
	Page  *int   `json:"page,omitempty"`
	Href  string `json:"href,omitempty"`
}

// PageEntry builds a page-located entry.
func PageEntry(title string, page, level int) Entry {
	return Entry{Title: title, Level: level, Page: &page}
}

// HrefEntry builds an href-located entry.
func HrefEntry(title, href string, level int) Entry {
	return Entry{Title: title, Level: level, Href: href}
}

// Kind describes which locator regime a ToC uses. The regime is decided
// once, from the first entry.
type Kind int

const (
	// KindNone means no usable locator; the splitter falls back to
	// heading positions or fixed-size chunking.
	KindNone Kind = iota
	// KindPage means entries locate chapters by zero-based page index.
	KindPage
	// KindHref means entries locate chapters by href-like identifiers.
	KindHref
)

// DetectKind inspects the first entry's locator.
func DetectKind(entries []Entry) Kind {
	if len(entries) == 0 {
		return KindNone
	}
	switch {
	case entries[0].Page != nil:
		return KindPage
	case entries[0].Href != "":
		return KindHref
	default:
		return KindNone
	}
}

// MarshalIndent renders entries as the canonical JSON artifact.
func MarshalIndent(entries []Entry) ([]byte, error) {
	return json.MarshalIndent(entries, "", "  ")
}
