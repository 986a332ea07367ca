package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fueny/QRB-code/internal/toc"
)

var tocSave string

var tocCmd = &cobra.Command{
	Use:   "toc <file>",
	Short: "Recover and print a document's table of contents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := extractEntries(args[0])
		if err != nil {
			return err
		}

		if tocSave != "" {
			if err := toc.Save(tocSave, entries); err != nil {
				return err
			}
			logger.Info("wrote toc artifact", "path", tocSave, "entries", len(entries))
		}

		switch outputFormat {
		case "yaml":
			data, err := yaml.Marshal(entries)
			if err != nil {
				return fmt.Errorf("failed to encode toc: %w", err)
			}
			os.Stdout.Write(data)
		default:
			data, err := toc.MarshalIndent(entries)
			if err != nil {
				return fmt.Errorf("failed to encode toc: %w", err)
			}
			os.Stdout.Write(append(data, '\n'))
		}
		return nil
	},
}

func init() {
	tocCmd.Flags().StringVar(&tocSave, "save", "", "also write the toc to this path as JSON")
}
