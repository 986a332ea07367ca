// Package outline recovers a table of contents from page-indexed
// documents. It cascades through independent strategies in a fixed
// priority order: the container's own outline tree, text analysis of
// candidate contents pages, positional word-layout analysis, a whole-
// document chapter-heading scan, and finally fixed page intervals. The
// first strategy that yields at least one entry wins; none of them
// returns an error.
package outline

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/fueny/QRB-code/internal/toc"
)

// Word is a positioned token from a page's visual layout.
type Word struct {
	Text string
	X    float64 // horizontal offset of the word's left edge
	Y    float64 // vertical offset of the word's baseline/top
}

// Document is the paged view a container adapter exposes to the
// extractor. Pages are zero-based. PageWords may return nil when the
// adapter has no positional data; the layout strategy then falls
// through.
type Document interface {
	PageCount() int
	PageText(page int) string
	PageWords(page int) []Word
}

// Node is one node of a container outline tree. A node with a
// non-empty title contributes an entry; Page is the zero-based page the
// container resolved its destination to, or negative when the
// destination could not be resolved. Children sit one level deeper.
type Node struct {
	Title    string
	Page     int
	Children []Node
}

// Method names the cascade strategy that produced a result.
type Method string

const (
	MethodOutline      Method = "outline"
	MethodContentsPage Method = "contents_page"
	MethodLayout       Method = "layout"
	MethodChapterScan  Method = "chapter_scan"
	MethodInterval     Method = "interval"
	MethodNone         Method = "none"
)

// Result carries the recovered entries plus the strategy that found
// them, so callers and tests can observe cascade behavior directly.
type Result struct {
	Entries []toc.Entry
	Method  Method
}

const (
	// scanPageLimit bounds how many leading pages the contents-page and
	// layout strategies inspect.
	scanPageLimit = 15
	// contentsWindow is how many pages past a strong contents marker
	// remain candidates.
	contentsWindow = 5
	// intervalPages is the chapter width of the absolute fallback.
	intervalPages = 10
)

// contentsMarkers flag a page as a possible table of contents.
var contentsMarkers = []string{"目录", "contents", "table of contents", "toc", "index"}

// strongContentsMarkers stop the scan and pin the candidate window.
var strongContentsMarkers = []string{"目录", "contents", "table of contents"}

var (
	cjkTocLineRe = regexp.MustCompile(`^(第?\s*[0-9一二三四五六七八九十百千]+\s*[章节篇部])\s*(.*?)(\d+)$`)
	engTocLineRe = regexp.MustCompile(`(?i)^(Chapter|Section|Part)\s+(\d+)[\s:]+(.+?)(\d+)$`)

	chapterHeadingRes = []*regexp.Regexp{
		regexp.MustCompile(`^第\s*[0-9一二三四五六七八九十百千]+\s*[章节篇部]`),
		regexp.MustCompile(`^Chapter\s+\d+`),
		regexp.MustCompile(`^CHAPTER\s+\d+`),
		regexp.MustCompile(`^Part\s+\d+`),
		regexp.MustCompile(`^Section\s+\d+`),
	}
)

// Extract runs the strategy cascade against doc. root is the
// container's outline tree, or nil when the container exposes none.
func Extract(doc Document, root []Node, logger *slog.Logger) Result {
	log := logger
	if log == nil {
		log = slog.Default()
	}

	strategies := []struct {
		method Method
		fn     func() []toc.Entry
	}{
		{MethodOutline, func() []toc.Entry { return flattenOutline(root, 1) }},
		{MethodContentsPage, func() []toc.Entry { return scanContentsPages(doc) }},
		{MethodLayout, func() []toc.Entry { return scanLayout(doc) }},
		{MethodChapterScan, func() []toc.Entry { return scanChapterHeadings(doc) }},
		{MethodInterval, func() []toc.Entry { return intervalEntries(doc) }},
	}

	for _, s := range strategies {
		entries := s.fn()
		if len(entries) > 0 {
			log.Info("recovered table of contents", "strategy", s.method, "entries", len(entries))
			return Result{Entries: entries, Method: s.method}
		}
		log.Debug("toc strategy found nothing", "strategy", s.method)
	}

	// Only reachable for a zero-page document: the interval fallback
	// always yields entries otherwise.
	return Result{Method: MethodNone}
}

// flattenOutline walks the outline tree depth-first, one level deeper
// per nesting step. Nodes with an unresolved page are skipped but their
// children are still visited.
func flattenOutline(nodes []Node, level int) []toc.Entry {
	var entries []toc.Entry
	for _, n := range nodes {
		if n.Title != "" && n.Page >= 0 {
			entries = append(entries, toc.PageEntry(strings.TrimSpace(n.Title), n.Page, level))
		}
		entries = append(entries, flattenOutline(n.Children, level+1)...)
	}
	return entries
}

// scanContentsPages looks for a contents page among the document's
// first pages and parses its lines into entries.
func scanContentsPages(doc Document) []toc.Entry {
	limit := doc.PageCount()
	if limit > scanPageLimit {
		limit = scanPageLimit
	}

	var candidates []int
	for i := 0; i < limit; i++ {
		lower := strings.ToLower(doc.PageText(i))
		if !containsAny(lower, contentsMarkers) {
			continue
		}
		candidates = append(candidates, i)
		if containsAny(lower, strongContentsMarkers) {
			// Strong marker: this page and the next few are the
			// contents; stop scanning further.
			candidates = candidates[:0]
			for j := i; j < i+contentsWindow && j < doc.PageCount(); j++ {
				candidates = append(candidates, j)
			}
			break
		}
	}

	var entries []toc.Entry
	for _, page := range candidates {
		for _, raw := range strings.Split(doc.PageText(page), "\n") {
			if e, ok := parseTocLine(raw); ok {
				entries = append(entries, e)
			}
		}
	}
	return entries
}

// parseTocLine attempts the per-line patterns in priority order:
// trailing page number, dotted leader, CJK chapter numeral, English
// chapter numeral. Non-matching lines are skipped, not errors.
func parseTocLine(raw string) (toc.Entry, bool) {
	line := strings.TrimSpace(raw)
	if utf8.RuneCountInString(line) < 5 {
		return toc.Entry{}, false
	}
	if containsAny(strings.ToLower(line), contentsMarkers) {
		// The contents title line itself.
		return toc.Entry{}, false
	}
	if !strings.ContainsAny(line, "0123456789") {
		return toc.Entry{}, false
	}

	level := indentLevel(raw)

	// "Title 123": page number after the last space.
	if idx := strings.LastIndex(line, " "); idx > 0 {
		if page, ok := parsePage(line[idx+1:]); ok {
			title := strings.TrimSpace(strings.TrimRight(strings.TrimSpace(line[:idx]), "."))
			if title != "" {
				return toc.PageEntry(title, page, level), true
			}
		}
	}

	// "Title ... 123": dotted leader.
	if strings.Contains(line, "...") || strings.Contains(line, ". . .") {
		parts := strings.Split(strings.ReplaceAll(line, ". . .", "..."), "...")
		if len(parts) == 2 {
			if page, ok := parsePage(strings.TrimSpace(parts[1])); ok {
				title := strings.TrimSpace(parts[0])
				if title != "" {
					return toc.PageEntry(title, page, level), true
				}
			}
		}
	}

	// "第 N 章 标题 123"
	if m := cjkTocLineRe.FindStringSubmatch(line); m != nil {
		if page, ok := parsePage(m[3]); ok {
			title := strings.TrimSpace(m[1] + " " + strings.TrimSpace(m[2]))
			return toc.PageEntry(title, page, 1), true
		}
	}

	// "Chapter 1: Title 123"
	if m := engTocLineRe.FindStringSubmatch(line); m != nil {
		if page, ok := parsePage(m[4]); ok {
			title := strings.TrimSpace(fmt.Sprintf("%s %s: %s", m[1], m[2], strings.TrimSpace(m[3])))
			return toc.PageEntry(title, page, 1), true
		}
	}

	return toc.Entry{}, false
}

// indentLevel estimates nesting depth from leading whitespace of the
// raw (untrimmed) line.
func indentLevel(raw string) int {
	switch {
	case strings.HasPrefix(raw, "    "), strings.HasPrefix(raw, "\t\t"):
		return 3
	case strings.HasPrefix(raw, "  "), strings.HasPrefix(raw, "\t"):
		return 2
	default:
		return 1
	}
}

// layoutYTolerance groups words into visual lines: words whose vertical
// position differs by less than this belong to the same line.
const layoutYTolerance = 5

// scanLayout re-examines the leading pages using per-word positions. A
// line is a candidate only when its last word is purely numeric; depth
// is bucketed from the first word's horizontal offset.
func scanLayout(doc Document) []toc.Entry {
	limit := doc.PageCount()
	if limit > scanPageLimit {
		limit = scanPageLimit
	}

	var entries []toc.Entry
	for page := 0; page < limit; page++ {
		for _, line := range groupWords(doc.PageWords(page)) {
			last := line[len(line)-1]
			pageNum, ok := parsePage(last.Text)
			if !ok {
				continue
			}
			parts := make([]string, 0, len(line)-1)
			for _, w := range line[:len(line)-1] {
				parts = append(parts, w.Text)
			}
			title := strings.TrimSpace(strings.Join(parts, " "))
			if utf8.RuneCountInString(title) <= 3 || allDigits(title) {
				continue
			}

			level := 1
			if line[0].X > 100 {
				level = 2
			}
			if line[0].X > 150 {
				level = 3
			}
			entries = append(entries, toc.PageEntry(title, pageNum, level))
		}
	}
	return entries
}

// groupWords buckets words into visual lines by vertical proximity.
// Words are assumed to arrive in reading order.
func groupWords(words []Word) [][]Word {
	var lines [][]Word
	var current []Word
	var currentY float64
	for _, w := range words {
		if len(current) == 0 || abs(w.Y-currentY) < layoutYTolerance {
			current = append(current, w)
			currentY = w.Y
			continue
		}
		lines = append(lines, current)
		current = []Word{w}
		currentY = w.Y
	}
	if len(current) > 0 {
		lines = append(lines, current)
	}
	return lines
}

// scanChapterHeadings sweeps the whole document for chapter-style
// heading lines in either locale, each becoming a level-1 entry located
// at the page it occurs on.
func scanChapterHeadings(doc Document) []toc.Entry {
	var entries []toc.Entry
	for page := 0; page < doc.PageCount(); page++ {
		for _, raw := range strings.Split(doc.PageText(page), "\n") {
			line := strings.TrimSpace(raw)
			n := utf8.RuneCountInString(line)
			if n < 5 || n > 100 {
				continue
			}
			for _, re := range chapterHeadingRes {
				if re.MatchString(line) {
					entries = append(entries, toc.PageEntry(line, page, 1))
					break
				}
			}
		}
	}
	return entries
}

// intervalEntries synthesizes fixed-width chapters as the absolute
// fallback. Empty only for a zero-page document.
func intervalEntries(doc Document) []toc.Entry {
	n := doc.PageCount()
	var entries []toc.Entry
	for i := 0; i < n; i += intervalPages {
		end := i + intervalPages - 1
		if end > n-1 {
			end = n - 1
		}
		title := fmt.Sprintf("Pages %d-%d", i+1, end+1)
		entries = append(entries, toc.PageEntry(title, i, 1))
	}
	return entries
}

// parsePage accepts a token of pure ASCII digits as a page number.
func parsePage(s string) (int, bool) {
	if s == "" || !allDigits(s) {
		return 0, false
	}
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
		if n > 1<<30 {
			return 0, false
		}
	}
	return n, true
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
