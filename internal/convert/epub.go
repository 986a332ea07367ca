package convert

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/taylorskalyo/goreader/epub"
	"golang.org/x/net/html"

	"github.com/fueny/QRB-code/internal/nav"
)

// EPUBDocument is the flattened view of an EPUB: the spine in reading
// order with each item's raw XHTML, plus the parsed navigation tree
// (EPUB3 nav document, falling back to NCX).
type EPUBDocument struct {
	spine []nav.SpineItem
	tree  []nav.Item
}

// EPUB loads and flattens the EPUB at path. All content is read
// eagerly so the archive can be closed before the document is used.
// A missing or unparseable navigation tree is not an error.
func EPUB(path string) (*EPUBDocument, error) {
	rc, err := epub.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open epub: %w", err)
	}
	defer rc.Close()

	if len(rc.Rootfiles) == 0 {
		return nil, fmt.Errorf("no rootfiles found in epub")
	}
	book := rc.Rootfiles[0]

	doc := &EPUBDocument{}
	for _, ref := range book.Spine.Itemrefs {
		if ref.Item == nil {
			continue
		}
		data, err := readItem(ref.Item)
		if err != nil {
			continue
		}
		doc.spine = append(doc.spine, nav.SpineItem{
			Href:    ref.Item.HREF,
			Content: string(data),
		})
	}

	doc.tree = navTree(book)
	return doc, nil
}

// Spine returns the reading-order listing.
func (d *EPUBDocument) Spine() []nav.SpineItem { return d.spine }

// NavTree returns the parsed navigation tree, or nil.
func (d *EPUBDocument) NavTree() []nav.Item { return d.tree }

// Markdown renders the flattened document with a chapter anchor ahead
// of each spine item, its XHTML reduced to markdown-flavored text.
func (d *EPUBDocument) Markdown() string {
	var sb strings.Builder
	for _, item := range d.spine {
		fmt.Fprintf(&sb, "\n\n<!-- CHAPTER %s -->\n\n", item.Href)
		sb.WriteString(markdownFromHTML(item.Content))
	}
	return sb.String()
}

func readItem(item *epub.Item) ([]byte, error) {
	r, err := item.Open()
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

// navTree locates the navigation source: first an EPUB3 nav document
// (an XHTML manifest item containing a toc nav element), then the NCX.
func navTree(book *epub.Rootfile) []nav.Item {
	for i := range book.Manifest.Items {
		item := &book.Manifest.Items[i]
		if item.MediaType != "application/xhtml+xml" {
			continue
		}
		data, err := readItem(item)
		if err != nil || !strings.Contains(string(data), `epub:type="toc"`) {
			continue
		}
		if tree := parseNavDoc(string(data)); len(tree) > 0 {
			return tree
		}
	}

	for i := range book.Manifest.Items {
		item := &book.Manifest.Items[i]
		if item.MediaType != "application/x-dtbncx+xml" &&
			!strings.HasSuffix(strings.ToLower(item.HREF), ".ncx") {
			continue
		}
		data, err := readItem(item)
		if err != nil {
			continue
		}
		if tree := parseNCX(data); len(tree) > 0 {
			return tree
		}
	}
	return nil
}

// parseNavDoc extracts the nested ordered-list tree from an EPUB3
// navigation document. The toc-typed nav element is preferred; any nav
// element serves as fallback.
func parseNavDoc(content string) []nav.Item {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return nil
	}

	navNode := findNav(doc, true)
	if navNode == nil {
		navNode = findNav(doc, false)
	}
	if navNode == nil {
		return nil
	}
	ol := findChildElement(navNode, "ol")
	if ol == nil {
		return nil
	}
	return parseNavList(ol)
}

func findNav(n *html.Node, requireToc bool) *html.Node {
	if n.Type == html.ElementNode && n.Data == "nav" {
		if !requireToc || hasAttr(n, "epub:type", "toc") {
			return n
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findNav(c, requireToc); found != nil {
			return found
		}
	}
	return nil
}

func parseNavList(ol *html.Node) []nav.Item {
	var items []nav.Item
	for li := ol.FirstChild; li != nil; li = li.NextSibling {
		if li.Type != html.ElementNode || li.Data != "li" {
			continue
		}
		item := nav.Item{}
		if a := findChildElement(li, "a"); a != nil {
			item.Title = strings.TrimSpace(elementText(a))
			item.Href = attrValue(a, "href")
		}
		if nested := findChildElement(li, "ol"); nested != nil {
			item.Children = parseNavList(nested)
		}
		if item.Title != "" || item.Href != "" || len(item.Children) > 0 {
			items = append(items, item)
		}
	}
	return items
}

// NCX structures, per the DAISY navigation schema.
type ncx struct {
	NavMap ncxNavMap `xml:"navMap"`
}

type ncxNavMap struct {
	NavPoints []ncxNavPoint `xml:"navPoint"`
}

type ncxNavPoint struct {
	Label   ncxLabel      `xml:"navLabel"`
	Content ncxContent    `xml:"content"`
	Kids    []ncxNavPoint `xml:"navPoint"`
}

type ncxLabel struct {
	Text string `xml:"text"`
}

type ncxContent struct {
	Src string `xml:"src,attr"`
}

func parseNCX(data []byte) []nav.Item {
	var doc ncx
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil
	}
	return navPointItems(doc.NavMap.NavPoints)
}

func navPointItems(points []ncxNavPoint) []nav.Item {
	items := make([]nav.Item, 0, len(points))
	for _, np := range points {
		items = append(items, nav.Item{
			Title:    strings.TrimSpace(np.Label.Text),
			Href:     np.Content.Src,
			Children: navPointItems(np.Kids),
		})
	}
	return items
}

// markdownFromHTML reduces XHTML to markdown-flavored text: headings
// become marker runs, block elements become paragraphs.
func markdownFromHTML(src string) string {
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return ""
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "h1", "h2", "h3", "h4", "h5", "h6":
				level := int(n.Data[1] - '0')
				text := strings.TrimSpace(elementText(n))
				if text != "" {
					sb.WriteString("\n\n")
					sb.WriteString(strings.Repeat("#", level))
					sb.WriteString(" ")
					sb.WriteString(text)
					sb.WriteString("\n\n")
				}
				return
			case "p", "div", "blockquote", "li":
				defer sb.WriteString("\n\n")
			case "script", "style":
				return
			}
		}
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				sb.WriteString(t)
				sb.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return collapseBlankLines(sb.String())
}

// collapseBlankLines squeezes runs of 3+ newlines down to paragraph
// breaks and trims stray spaces before line ends.
func collapseBlankLines(s string) string {
	s = strings.ReplaceAll(s, " \n", "\n")
	for strings.Contains(s, "\n\n\n") {
		s = strings.ReplaceAll(s, "\n\n\n", "\n\n")
	}
	return strings.TrimSpace(s) + "\n"
}

func hasAttr(n *html.Node, key, val string) bool {
	for _, a := range n.Attr {
		if a.Key == key && a.Val == val {
			return true
		}
	}
	return false
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func findChildElement(n *html.Node, name string) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == name {
			return c
		}
	}
	return nil
}

func elementText(n *html.Node) string {
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
