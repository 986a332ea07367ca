package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fueny/QRB-code/internal/convert"
	"github.com/fueny/QRB-code/internal/splitter"
	"github.com/fueny/QRB-code/internal/toc"
)

var (
	splitTocFile string
	splitOutDir  string
)

var splitCmd = &cobra.Command{
	Use:   "split <markdown-file>",
	Short: "Split annotated markdown into chapter files",
	Long: `Split partitions an annotated markdown document into one file per
chapter using a ToC artifact. Without a ToC it falls back to heading
positions, and with no structure at all to fixed-size chunks; the
operation always produces at least one chapter.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src := args[0]
		data, err := os.ReadFile(src)
		if err != nil {
			return fmt.Errorf("failed to read markdown: %w", err)
		}

		var entries []toc.Entry
		if splitTocFile != "" {
			entries, err = toc.Load(splitTocFile)
			if err != nil {
				return fmt.Errorf("failed to load toc file: %w", err)
			}
		}

		stem := convert.Stem(src)
		outDir := splitOutDir
		if outDir == "" {
			outDir = cfgManager.Get().OutputDir
		}
		if outDir == "" {
			outDir = homeDir.ChaptersDir(stem)
		}

		paths, err := splitter.Split(splitter.Request{
			Text:      string(data),
			Stem:      stem,
			OutputDir: outDir,
			Entries:   entries,
			ChunkSize: cfgManager.Get().ChunkSize,
			Logger:    logger,
		})
		if err != nil {
			return err
		}

		fmt.Printf("split complete: %d chapter files\n", len(paths))
		for _, p := range paths {
			fmt.Printf("- %s\n", p)
		}
		return nil
	},
}

func init() {
	splitCmd.Flags().StringVarP(&splitTocFile, "toc-file", "t", "", "toc JSON artifact path")
	splitCmd.Flags().StringVarP(&splitOutDir, "output-dir", "d", "", "output directory (default: config, then qrb home)")
}
