package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <collection> <file>",
		Short: "Export a collection to a JSONL file",
		Long: `Export dumps every document in the collection to a JSONL file,
one document per line with its identity under _id.

Example:
  vellum export products products.jsonl`,
		Args: cobra.ExactArgs(2),
		RunE: runExport,
	}
}

func runExport(cmd *cobra.Command, args []string) error {
	collection, path := args[0], args[1]

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	n, err := s.ExportCollection(cmd.Context(), collection, path)
	if err != nil {
		return fmt.Errorf("export collection: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "exported %d document(s) from %s to %s\n", n, collection, path)
	return nil
}
