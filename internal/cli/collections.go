package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCollectionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "collections",
		Short: "List collections in the store",
		Args:  cobra.NoArgs,
		RunE:  runCollections,
	}
}

func runCollections(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	names, err := s.Collections(cmd.Context())
	if err != nil {
		return fmt.Errorf("list collections: %w", err)
	}
	for _, name := range names {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}
