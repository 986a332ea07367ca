package splitter

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultChunkSize is the target chunk width in characters for the
	// last-resort fixed-size split.
	DefaultChunkSize = 50000

	// chunkBreakSlack bounds how far past the target size a chunk may
	// extend to reach a paragraph break.
	chunkBreakSlack = 1000
)

// Chunk splits text into fixed-size segments, extending each boundary
// forward to the next paragraph break when one is close enough. The
// segments tile the text exactly. An empty text yields one empty
// segment so a split always produces at least one chapter.
func Chunk(text, stem string, size int) []Segment {
	if size <= 0 {
		size = DefaultChunkSize
	}

	var segments []Segment
	for start := 0; start < len(text); {
		end := start + size
		if end >= len(text) {
			end = len(text)
		} else {
			// Advance past continuation bytes so a boundary never lands
			// inside a multi-byte rune.
			for end < len(text) && !utf8.RuneStart(text[end]) {
				end++
			}
			if idx := strings.Index(text[end:min(end+chunkBreakSlack, len(text))], "\n\n"); idx >= 0 {
				end += idx + 2
			}
		}
		segments = append(segments, Segment{
			Title:   fmt.Sprintf("%s Part %d", stem, len(segments)+1),
			Level:   1,
			Content: strings.Clone(text[start:end]),
		})
		start = end
	}

	if len(segments) == 0 {
		segments = append(segments, Segment{
			Title:   fmt.Sprintf("%s Part 1", stem),
			Level:   1,
			Content: "",
		})
	}
	return segments
}
