// Package nav recovers a table of contents from item-indexed documents
// that carry a navigation tree (EPUB-style). When no navigation tree is
// usable it falls back to the ordered spine listing, deriving titles
// from each item's first heading element.
package nav

import (
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/net/html"

	"github.com/fueny/QRB-code/internal/toc"
)

// Item is one node of the navigation tree: a (title, href) pair with
// nested children one level deeper.
type Item struct {
	Title    string
	Href     string
	Children []Item
}

// SpineItem is one entry of the document's reading-order listing.
// Content holds the item's rendered XHTML, used only to derive a title
// when the navigation tree is absent.
type SpineItem struct {
	Href    string
	Content string
}

// Method names the cascade strategy that produced a result.
type Method string

const (
	MethodNavTree Method = "nav_tree"
	MethodSpine   Method = "spine"
	MethodNone    Method = "none"
)

// Result carries the recovered entries plus the winning strategy.
type Result struct {
	Entries []toc.Entry
	Method  Method
}

// Extract walks the navigation tree depth-first; if that yields
// nothing, it derives one level-1 entry per spine item. An empty spine
// yields an empty result and the caller falls back to heading scanning
// or chunking.
func Extract(tree []Item, spine []SpineItem, logger *slog.Logger) Result {
	log := logger
	if log == nil {
		log = slog.Default()
	}

	if entries := flattenTree(tree, 1); len(entries) > 0 {
		log.Info("recovered table of contents", "strategy", MethodNavTree, "entries", len(entries))
		return Result{Entries: entries, Method: MethodNavTree}
	}
	log.Debug("toc strategy found nothing", "strategy", MethodNavTree)

	if entries := spineEntries(spine); len(entries) > 0 {
		log.Info("recovered table of contents", "strategy", MethodSpine, "entries", len(entries))
		return Result{Entries: entries, Method: MethodSpine}
	}
	log.Debug("toc strategy found nothing", "strategy", MethodSpine)

	return Result{Method: MethodNone}
}

func flattenTree(items []Item, level int) []toc.Entry {
	var entries []toc.Entry
	for _, it := range items {
		if it.Title != "" || it.Href != "" {
			entries = append(entries, toc.HrefEntry(strings.TrimSpace(it.Title), it.Href, level))
		}
		entries = append(entries, flattenTree(it.Children, level+1)...)
	}
	return entries
}

func spineEntries(spine []SpineItem) []toc.Entry {
	var entries []toc.Entry
	for i, item := range spine {
		title := firstHeading(item.Content)
		if title == "" {
			title = fmt.Sprintf("Chapter %d", i+1)
		}
		entries = append(entries, toc.HrefEntry(title, item.Href, 1))
	}
	return entries
}

// firstHeading returns the text of the first h1-h4 element in the
// rendered content, or "" when none exists or the content fails to
// parse.
func firstHeading(content string) string {
	if content == "" {
		return ""
	}
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return ""
	}

	var found string
	var walk func(*html.Node) bool
	walk = func(n *html.Node) bool {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "h1", "h2", "h3", "h4":
				found = strings.TrimSpace(nodeText(n))
				return true
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}
	walk(doc)
	return found
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
