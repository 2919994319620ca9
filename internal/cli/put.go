package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newPutCmd() *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "put <collection> <json>",
		Short: "Insert or update a document",
		Long: `Put stores a JSON document in the specified collection. Without
--id a new document is inserted and its generated ID printed; with
--id the existing document is replaced.

Example:
  vellum put products '{"name": "Spam", "price": 2.99}'
  vellum put products --id 019234ab-... '{"name": "Spam", "price": 3.49}'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPut(cmd, args[0], args[1], id)
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "ID of an existing document to update")
	return cmd
}

func runPut(cmd *cobra.Command, collection, data, id string) error {
	var doc map[string]any
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return fmt.Errorf("parse document JSON: %w", err)
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	if id == "" {
		newID, err := s.InsertOne(cmd.Context(), collection, doc)
		if err != nil {
			return fmt.Errorf("insert document: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), newID)
		return nil
	}
	if err := s.UpdateOne(cmd.Context(), collection, id, doc); err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), id)
	return nil
}
