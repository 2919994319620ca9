package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newFindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find <collection> [key=value ...]",
		Short: "Find documents matching a filter",
		Long: `Find prints every document in the collection matching the given
key=value equality filters, one JSON object per match. Dotted keys
reach into embedded documents. Values parse as JSON scalars where
possible (numbers, booleans, null), otherwise as strings.

Example:
  vellum find products
  vellum find orders address.city=Anywhere status=open`,
		Args: cobra.MinimumNArgs(1),
		RunE: runFind,
	}
}

func runFind(cmd *cobra.Command, args []string) error {
	collection := args[0]
	filter, err := parseFilter(args[1:])
	if err != nil {
		return err
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	cur, err := s.Find(cmd.Context(), collection, filter)
	if err != nil {
		return fmt.Errorf("find documents: %w", err)
	}
	defer cur.Close()

	for cur.Next() {
		if err := printJSON(cmd, cur.Document()); err != nil {
			return err
		}
	}
	if err := cur.Err(); err != nil {
		return fmt.Errorf("find documents: %w", err)
	}
	return nil
}

// parseFilter converts key=value arguments into a filter mapping.
func parseFilter(args []string) (map[string]any, error) {
	if len(args) == 0 {
		return nil, nil
	}
	filter := make(map[string]any, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid filter %q: expected key=value", arg)
		}
		filter[key] = parseFilterValue(value)
	}
	return filter, nil
}

// parseFilterValue interprets a filter value as a JSON scalar where
// possible, falling back to the literal string.
func parseFilterValue(s string) any {
	switch s {
	case "true":
		return true
	case "false":
		return false
	case "null":
		return nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
