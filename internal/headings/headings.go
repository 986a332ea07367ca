// Package headings scans rendered markdown text for heading lines. It
// is the structural fallback when neither a container outline nor a
// navigation tree produced a table of contents: the shallowest heading
// level found becomes the chapter boundary set.
package headings

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gtext "github.com/yuin/goldmark/text"
)

// Heading is one markdown heading with its character offset into the
// source text. Position points at the start of the heading line, not
// the heading text.
type Heading struct {
	Title    string
	Level    int
	Position int
}

// Scan parses src as markdown and returns every heading (levels 1-6)
// in document order. Headings with no text are skipped.
func Scan(src string) []Heading {
	source := []byte(src)
	doc := goldmark.DefaultParser().Parse(gtext.NewReader(source))

	var found []Heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		title := strings.TrimSpace(headingText(h, source))
		if title == "" || h.Lines().Len() == 0 {
			return ast.WalkContinue, nil
		}
		found = append(found, Heading{
			Title:    title,
			Level:    h.Level,
			Position: lineStart(src, h.Lines().At(0).Start),
		})
		return ast.WalkContinue, nil
	})
	return found
}

// Chapters returns only the shallowest-level headings from src: those
// act as chapter boundaries while deeper headings stay inside chapter
// bodies. Returns nil when src has no headings at all.
func Chapters(src string) []Heading {
	all := Scan(src)
	if len(all) == 0 {
		return nil
	}
	minLevel := all[0].Level
	for _, h := range all[1:] {
		if h.Level < minLevel {
			minLevel = h.Level
		}
	}
	var chapters []Heading
	for _, h := range all {
		if h.Level == minLevel {
			chapters = append(chapters, h)
		}
	}
	return chapters
}

// headingText collects the raw text of all text descendants.
func headingText(h *ast.Heading, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(h, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if t, ok := n.(*ast.Text); ok {
				sb.Write(t.Segment.Value(source))
			}
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}

// lineStart rewinds from the heading content offset to the start of its
// line, so Position covers the leading marker run.
func lineStart(src string, contentStart int) int {
	if contentStart > len(src) {
		contentStart = len(src)
	}
	if i := strings.LastIndexByte(src[:contentStart], '\n'); i >= 0 {
		return i + 1
	}
	return 0
}
