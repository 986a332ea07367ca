package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fueny/QRB-code/internal/convert"
	"github.com/fueny/QRB-code/internal/toc"
)

var convertOut string

var convertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "Flatten a PDF or EPUB into annotated markdown",
	Long: `Convert flattens a container format into markdown annotated with
positional anchors (page anchors for PDF, chapter anchors for EPUB) and
writes the recovered table of contents alongside as a JSON artifact.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src := args[0]
		stem := convert.Stem(src)

		outPath := convertOut
		if outPath == "" {
			outPath = homeDir.MarkdownPath(stem)
		}

		var markdown string
		switch strings.ToLower(filepath.Ext(src)) {
		case ".epub":
			doc, err := convert.EPUB(src)
			if err != nil {
				return err
			}
			markdown = doc.Markdown()
		default:
			doc, err := convert.PDF(src)
			if err != nil {
				return err
			}
			markdown = doc.Markdown()
		}

		if err := os.WriteFile(outPath, []byte(markdown), 0o644); err != nil {
			return fmt.Errorf("failed to write markdown: %w", err)
		}
		logger.Info("wrote annotated markdown", "path", outPath, "bytes", len(markdown))

		entries, err := extractEntries(src)
		if err != nil {
			return err
		}
		tocPath := homeDir.TocPath(stem)
		if convertOut != "" {
			tocPath = strings.TrimSuffix(outPath, filepath.Ext(outPath)) + "_toc.json"
		}
		if err := toc.Save(tocPath, entries); err != nil {
			return err
		}
		logger.Info("wrote toc artifact", "path", tocPath, "entries", len(entries))

		fmt.Println(outPath)
		fmt.Println(tocPath)
		return nil
	},
}

func init() {
	convertCmd.Flags().StringVar(&convertOut, "out", "", "output markdown path (default: under the qrb home)")
}
