package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <collection> <file>",
		Short: "Import a JSONL file into a collection",
		Long: `Import loads documents from a JSONL file into the collection.
Records carrying an _id replace any existing document with that
identity; records without one get fresh identities.

Example:
  vellum import products products.jsonl`,
		Args: cobra.ExactArgs(2),
		RunE: runImport,
	}
}

func runImport(cmd *cobra.Command, args []string) error {
	collection, path := args[0], args[1]

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	n, err := s.ImportCollection(cmd.Context(), collection, path)
	if err != nil {
		return fmt.Errorf("import collection: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d document(s) into %s from %s\n", n, collection, path)
	return nil
}
