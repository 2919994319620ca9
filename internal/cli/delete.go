package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <collection> <id>",
		Short: "Delete a document by ID",
		Args:  cobra.ExactArgs(2),
		RunE:  runDelete,
	}
}

func runDelete(cmd *cobra.Command, args []string) error {
	collection, id := args[0], args[1]

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.DeleteOne(cmd.Context(), collection, id); err != nil {
		return fmt.Errorf("delete document %q from %q: %w", id, collection, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "deleted")
	return nil
}
