package splitter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// maxSlugRunes caps the title-derived filename component.
const maxSlugRunes = 50

var (
	slugStripRe    = regexp.MustCompile(`[^\p{L}\p{N}\s_-]`)
	slugCollapseRe = regexp.MustCompile(`\s+`)
)

// Slugify derives a filesystem-safe name component from a chapter
// title: characters outside letters/digits/whitespace/hyphen are
// stripped, whitespace runs collapse to single underscores, and the
// result is truncated to 50 runes.
func Slugify(title string) string {
	s := slugStripRe.ReplaceAllString(title, "")
	s = slugCollapseRe.ReplaceAllString(strings.TrimSpace(s), "_")
	if r := []rune(s); len(r) > maxSlugRunes {
		s = string(r[:maxSlugRunes])
	}
	return s
}

// Write persists one file per segment under outDir, creating the
// directory if absent. Each file holds the heading line derived from
// the segment's level and title, a blank line, then the raw content.
// The first write failure aborts the operation; files already written
// are not rolled back.
func Write(segments []Segment, outDir, stem string, logger *slog.Logger) ([]string, error) {
	log := logger
	if log == nil {
		log = slog.Default()
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	paths := make([]string, 0, len(segments))
	for i, seg := range segments {
		name := fmt.Sprintf("%s_%02d_%s.md", stem, i+1, Slugify(seg.Title))
		path := filepath.Join(outDir, name)

		heading := strings.Repeat("#", entrySegLevel(seg)) + " " + seg.Title
		content := heading + "\n\n" + seg.Content

		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return nil, fmt.Errorf("failed to write chapter %d: %w", i+1, err)
		}
		log.Debug("wrote chapter", "index", i+1, "path", path, "bytes", len(content))
		paths = append(paths, path)
	}
	return paths, nil
}

func entrySegLevel(seg Segment) int {
	if seg.Level < 1 {
		return 1
	}
	return seg.Level
}
