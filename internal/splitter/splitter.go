// Package splitter partitions annotated document text into chapter
// files using a recovered table of contents and the anchor offsets
// found in the text. It supports three locator regimes (page, href and
// heading position) and degrades to fixed-size chunking when no
// structure is detectable; a split never fails for lack of structure.
package splitter

import (
	"fmt"
	"log/slog"

	"github.com/fueny/QRB-code/internal/headings"
	"github.com/fueny/QRB-code/internal/markers"
	"github.com/fueny/QRB-code/internal/toc"
)

// Segment is a titled, contiguous slice of the source text designated
// as one output chapter. Content is the raw span; the heading prefix is
// added by the writer.
type Segment struct {
	Title   string
	Level   int
	Content string
}

// Request holds the inputs for one split operation.
type Request struct {
	Text      string       // annotated source text
	Stem      string       // base name for output files and chunk titles
	OutputDir string       // created if absent
	Entries   []toc.Entry  // recovered ToC; may be empty
	ChunkSize int          // last-resort chunk size; 0 means DefaultChunkSize
	Logger    *slog.Logger // optional
}

// Split resolves chapter boundaries, extracts segments and writes one
// file per chapter. It returns written paths in chapter order. The only
// error sources are filesystem writes; structural degradation is
// handled by falling through to coarser strategies.
func Split(req Request) ([]string, error) {
	log := req.Logger
	if log == nil {
		log = slog.Default()
	}

	segments := resolve(req, log)
	return Write(segments, req.OutputDir, req.Stem, log)
}

// resolve selects the locator regime from the first ToC entry and
// computes the segment sequence.
func resolve(req Request, log *slog.Logger) []Segment {
	switch toc.DetectKind(req.Entries) {
	case toc.KindPage:
		offsets := markers.PageOffsets(req.Text)
		if len(offsets) == 0 {
			log.Warn("no page anchors found, falling back to heading split")
			break
		}
		log.Info("splitting by page locators", "entries", len(req.Entries), "anchors", len(offsets))
		return ResolvePages(req.Text, req.Entries, offsets)
	case toc.KindHref:
		chapters := markers.ChapterOffsets(req.Text)
		if chapters.Len() == 0 {
			log.Warn("no chapter anchors found, falling back to heading split")
			break
		}
		log.Info("splitting by href locators", "entries", len(req.Entries), "anchors", chapters.Len())
		return ResolveHrefs(req.Text, req.Entries, chapters)
	}

	if hs := headings.Chapters(req.Text); len(hs) > 0 {
		log.Info("splitting by heading positions", "chapters", len(hs))
		return ResolveHeadings(req.Text, hs)
	}

	log.Warn("no structure detected, chunking by size", "chunk_size", req.ChunkSize)
	return Chunk(req.Text, req.Stem, req.ChunkSize)
}

// entryTitle supplies the ordinal placeholder for untitled entries.
func entryTitle(e toc.Entry, i int) string {
	if e.Title != "" {
		return e.Title
	}
	return fmt.Sprintf("Chapter %d", i+1)
}

func entryLevel(e toc.Entry) int {
	if e.Level < 1 {
		return 1
	}
	return e.Level
}
