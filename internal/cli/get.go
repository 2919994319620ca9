package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/vellum/pkg/store"
)

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <collection> <id>",
		Short: "Get a document by ID",
		Long: `Get retrieves a document from the specified collection by its ID
and prints it as indented JSON.

Example:
  vellum get products 019234ab-...`,
		Args: cobra.ExactArgs(2),
		RunE: runGet,
	}
}

func runGet(cmd *cobra.Command, args []string) error {
	collection, id := args[0], args[1]

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	cur, err := s.Find(cmd.Context(), collection, map[string]any{store.IDKey: id})
	if err != nil {
		return fmt.Errorf("find document: %w", err)
	}
	defer cur.Close()

	if !cur.Next() {
		if err := cur.Err(); err != nil {
			return fmt.Errorf("find document: %w", err)
		}
		return fmt.Errorf("document %q not found in collection %q: %w", id, collection, store.ErrNotFound)
	}
	return printJSON(cmd, cur.Document())
}

// printJSON writes a mapping as indented JSON to the command's stdout.
func printJSON(cmd *cobra.Command, doc map[string]any) error {
	output, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(output))
	return nil
}
