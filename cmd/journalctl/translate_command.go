package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"journal-service/internal/journal/crossref"
)

func newTranslateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "translate <file>",
		Short: "Print the candidate journal extracted from a Crossref work document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			document, err := os.ReadFile(args[0])
			if err != nil {
				return wrapf(err, "read %s", args[0])
			}
			candidate, err := crossref.Translate(document)
			if err != nil {
				return err
			}
			return writeJSON(cmd, candidate)
		},
	}
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
