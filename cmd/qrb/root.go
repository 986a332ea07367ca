package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fueny/QRB-code/internal/config"
	"github.com/fueny/QRB-code/internal/convert"
	"github.com/fueny/QRB-code/internal/home"
	"github.com/fueny/QRB-code/internal/nav"
	"github.com/fueny/QRB-code/internal/outline"
	"github.com/fueny/QRB-code/internal/toc"
	"github.com/fueny/QRB-code/version"
)

var (
	cfgFile      string
	homePath     string
	logLevel     string
	outputFormat string

	cfgManager *config.Manager
	homeDir    *home.Dir
	logger     *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "qrb",
	Short: "Recover book structure and split documents into chapters",
	Long: `qrb flattens PDF and EPUB files into annotated markdown, recovers
their table of contents through a cascade of inference strategies, and
splits the text into one correctly-titled file per chapter.

The pipeline includes:
  - Page and chapter anchor emission during format flattening
  - ToC recovery from outlines, contents pages, layout and headings
  - Boundary resolution across page, href and heading locators
  - Fixed-size chunking as the structural last resort`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.qrb/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homePath, "home", "", "qrb home directory (default: ~/.qrb)",
	)
	rootCmd.PersistentFlags().StringVar(
		&logLevel, "log-level", "", "log level: debug, info, warn or error (overrides config)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "json", "toc output format: json or yaml",
	)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		var err error
		homeDir, err = home.New(homePath)
		if err != nil {
			return err
		}
		if err := homeDir.EnsureExists(); err != nil {
			return err
		}

		cfgManager, err = config.NewManager(cfgFile)
		if err != nil {
			return err
		}
		cfgManager.WatchConfig()

		level := cfgManager.Get().LogLevel
		if logLevel != "" {
			level = logLevel
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: parseLevel(level),
		}))
		slog.SetDefault(logger)
		return nil
	}

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(tocCmd)
	rootCmd.AddCommand(splitCmd)
	rootCmd.AddCommand(versionCmd)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// extractEntries recovers the ToC for a source file by format.
func extractEntries(path string) ([]toc.Entry, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".epub":
		doc, err := convert.EPUB(path)
		if err != nil {
			return nil, err
		}
		return nav.Extract(doc.NavTree(), doc.Spine(), logger).Entries, nil
	default:
		doc, err := convert.PDF(path)
		if err != nil {
			return nil, err
		}
		return outline.Extract(doc, doc.Outline(), logger).Entries, nil
	}
}
