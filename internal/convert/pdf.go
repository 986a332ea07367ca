package convert

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/fueny/QRB-code/internal/outline"
)

// PDFDocument is the flattened view of a PDF: per-page text with
// coarse word positions, plus the container's bookmark outline. It
// implements outline.Document.
type PDFDocument struct {
	pages []pdfPage
	tree  []outline.Node
}

type pdfPage struct {
	text  string
	words []outline.Word
}

// PDF loads and flattens the PDF at path. Text is recovered from page
// content streams; an unparseable outline is not an error, it just
// leaves the tree empty and the extractor cascades past it.
func PDF(path string) (*PDFDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}

	doc := &PDFDocument{pages: make([]pdfPage, 0, ctx.PageCount)}
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		doc.pages = append(doc.pages, extractPage(ctx, pageNr))
	}

	if _, err := f.Seek(0, io.SeekStart); err == nil {
		if bms, err := api.Bookmarks(f, conf); err == nil {
			doc.tree = bookmarkNodes(bms)
		}
	}
	return doc, nil
}

// PageCount implements outline.Document.
func (d *PDFDocument) PageCount() int { return len(d.pages) }

// PageText implements outline.Document. Pages are zero-based.
func (d *PDFDocument) PageText(page int) string {
	if page < 0 || page >= len(d.pages) {
		return ""
	}
	return d.pages[page].text
}

// PageWords implements outline.Document.
func (d *PDFDocument) PageWords(page int) []outline.Word {
	if page < 0 || page >= len(d.pages) {
		return nil
	}
	return d.pages[page].words
}

// Outline returns the container bookmark tree, or nil.
func (d *PDFDocument) Outline() []outline.Node { return d.tree }

// Markdown renders the flattened document with a page anchor ahead of
// each page's text.
func (d *PDFDocument) Markdown() string {
	var sb strings.Builder
	for i, p := range d.pages {
		fmt.Fprintf(&sb, "\n\n<!-- PAGE %d -->\n\n", i)
		sb.WriteString(p.text)
	}
	return sb.String()
}

// bookmarkNodes converts pdfcpu bookmarks (1-based pages) to outline
// nodes (zero-based pages).
func bookmarkNodes(bms []pdfcpu.Bookmark) []outline.Node {
	nodes := make([]outline.Node, 0, len(bms))
	for _, bm := range bms {
		nodes = append(nodes, outline.Node{
			Title:    bm.Title,
			Page:     bm.PageFrom - 1,
			Children: bookmarkNodes(bm.Kids),
		})
	}
	return nodes
}

func extractPage(ctx *model.Context, pageNr int) pdfPage {
	r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
	if err != nil {
		return pdfPage{}
	}
	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return pdfPage{}
	}
	return parseContentStream(data)
}

// pdfStringRe matches PDF string literals in parentheses: (text here)
var pdfStringRe = regexp.MustCompile(`\(([^)]*)\)`)

// parseContentStream walks PDF content-stream operators, recovering
// text lines plus a coarse (x, y) position per word from the text
// matrix and positioning operators. The position tracking is
// approximate; it only needs to support visual-line grouping and
// indent bucketing in the layout ToC strategy.
func parseContentStream(data []byte) pdfPage {
	var sb strings.Builder
	var words []outline.Word
	var x, y float64

	writeText := func(line []byte) string {
		var text strings.Builder
		for _, m := range pdfStringRe.FindAllSubmatch(line, -1) {
			text.WriteString(decodePDFString(m[1]))
		}
		return text.String()
	}

	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		switch {
		// Tm sets the text matrix; the last two operands are the
		// translation.
		case bytes.HasSuffix(line, []byte("Tm")):
			if fs := bytes.Fields(line); len(fs) >= 7 {
				ex, err1 := strconv.ParseFloat(string(fs[len(fs)-3]), 64)
				ey, err2 := strconv.ParseFloat(string(fs[len(fs)-2]), 64)
				if err1 == nil && err2 == nil {
					x, y = ex, ey
				}
			}

		// Td/TD move the text position relative to the line start.
		case bytes.HasSuffix(line, []byte("Td")), bytes.HasSuffix(line, []byte("TD")):
			if fs := bytes.Fields(line); len(fs) >= 3 {
				tx, err1 := strconv.ParseFloat(string(fs[len(fs)-3]), 64)
				ty, err2 := strconv.ParseFloat(string(fs[len(fs)-2]), 64)
				if err1 == nil && err2 == nil {
					x += tx
					y += ty
				}
			}

		// Tj and TJ show text.
		case bytes.HasSuffix(line, []byte("Tj")), bytes.HasSuffix(line, []byte("TJ")):
			if text := writeText(line); text != "" {
				sb.WriteString(text)
				sb.WriteByte('\n')
				wx := x
				for _, w := range strings.Fields(text) {
					words = append(words, outline.Word{Text: w, X: wx, Y: y})
					// Rough per-word advance keeps later words from
					// collapsing onto the line-start offset.
					wx += float64(len(w) + 1)
				}
			}

		// ' shows text on the next line.
		case bytes.HasSuffix(line, []byte("'")) && bytes.Contains(line, []byte("(")):
			if text := writeText(line); text != "" {
				sb.WriteString(text)
				sb.WriteByte('\n')
				words = append(words, outline.Word{Text: text, X: x, Y: y})
			}
		}
	}

	return pdfPage{text: sb.String(), words: words}
}

// decodePDFString handles basic PDF escape sequences.
func decodePDFString(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			sb.WriteByte(raw[i])
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '\\', '(', ')':
			sb.WriteByte(raw[i])
		default:
			if raw[i] >= '0' && raw[i] <= '7' {
				val := int(raw[i] - '0')
				for n := 0; n < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; n++ {
					i++
					val = val*8 + int(raw[i]-'0')
				}
				sb.WriteByte(byte(val))
			} else {
				sb.WriteByte(raw[i])
			}
		}
	}
	return sb.String()
}
