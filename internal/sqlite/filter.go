package sqlite

import (
	"sort"
	"strings"
	"time"

	"github.com/mesh-intelligence/vellum/pkg/store"
)

// buildFindQuery translates a filter mapping into a SELECT over the
// documents table. Each filter key becomes an equality predicate:
// json_extract over the body for storage keys (dotted keys descend
// into nested documents), the doc_id column for the reserved _id key.
// JSON paths are bound as parameters, never interpolated.
func buildFindQuery(collection string, filter map[string]any) (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT doc_id, body FROM documents WHERE collection = ?")
	args := []any{collection}

	// Sort keys for a stable query shape.
	keys := make([]string, 0, len(filter))
	for k := range filter {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := filter[key]
		if key == store.IDKey {
			sb.WriteString(" AND doc_id = ?")
			args = append(args, value)
			continue
		}
		if value == nil {
			sb.WriteString(" AND json_extract(body, ?) IS NULL")
			args = append(args, jsonPath(key))
			continue
		}
		sb.WriteString(" AND json_extract(body, ?) = ?")
		args = append(args, jsonPath(key), filterArg(value))
	}

	sb.WriteString(" ORDER BY rowid")
	return sb.String(), args
}

// jsonPath converts a dotted storage-key path into a json_extract path.
func jsonPath(key string) string {
	return "$." + key
}

// filterArg converts a filter value into a form comparable against
// json_extract output: booleans become SQLite JSON's 0/1 integers,
// times the RFC 3339 strings documents are stored with.
func filterArg(v any) any {
	switch t := v.(type) {
	case bool:
		if t {
			return int64(1)
		}
		return int64(0)
	case time.Time:
		return t.UTC().Format(time.RFC3339Nano)
	case int:
		return int64(t)
	default:
		return v
	}
}
