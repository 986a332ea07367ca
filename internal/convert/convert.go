// Package convert flattens container formats (PDF, EPUB) into
// annotated markdown. It emits the positional anchors the splitter
// relies on: one "<!-- PAGE N -->" per PDF page (N zero-based) and one
// "<!-- CHAPTER href -->" per EPUB spine item. Each container's
// structural metadata (outline tree, navigation tree, spine) is
// exposed to the ToC extractors.
package convert

import (
	"path/filepath"
	"strings"
)

// Stem derives the output base name from a source file path.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
