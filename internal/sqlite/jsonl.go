package sqlite

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mesh-intelligence/vellum/pkg/store"
)

// readJSONL reads a JSONL file and returns each non-empty, parseable
// line as a decoded document mapping. Empty and malformed lines are
// skipped so a partially corrupted dump still imports what it can.
func readJSONL(path string) ([]map[string]any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var records []map[string]any
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var doc map[string]any
		if err := json.Unmarshal(line, &doc); err != nil {
			continue
		}
		records = append(records, doc)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", path, err)
	}
	return records, nil
}

// writeJSONL atomically writes records to a JSONL file, one compact
// JSON object per line, using the temp-file, fsync, rename pattern.
func writeJSONL(path string, records []map[string]any) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	fail := func(step string, err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%s: %w", step, err)
	}

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		line, err := json.Marshal(rec)
		if err != nil {
			return fail("encode record", err)
		}
		if _, err := w.Write(line); err != nil {
			return fail("write record", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fail("write newline", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fail("flush buffer", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("sync temp file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// ExportCollection dumps every document in the collection to a JSONL
// file, one document per line with its identity under _id. Returns the
// number of documents written.
func (s *Store) ExportCollection(ctx context.Context, collection, path string) (int, error) {
	cur, err := s.Find(ctx, collection, nil)
	if err != nil {
		return 0, err
	}
	defer cur.Close()

	var records []map[string]any
	for cur.Next() {
		records = append(records, cur.Document())
	}
	if err := cur.Err(); err != nil {
		return 0, fmt.Errorf("export %s: %w", collection, err)
	}
	if err := writeJSONL(path, records); err != nil {
		return 0, fmt.Errorf("export %s: %w", collection, err)
	}
	return len(records), nil
}

// ImportCollection loads documents from a JSONL file into the
// collection. A record's _id, when present, becomes its identity and
// replaces any existing document; records without one get fresh
// identities. Returns the number of documents imported.
func (s *Store) ImportCollection(ctx context.Context, collection, path string) (int, error) {
	records, err := readJSONL(path)
	if err != nil {
		return 0, fmt.Errorf("import %s: %w", collection, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return 0, store.ErrDriverClosed
	}
	for i, rec := range records {
		id, _ := rec[store.IDKey].(string)
		if id == "" {
			id = newID()
		}
		delete(rec, store.IDKey)

		body, err := json.Marshal(rec)
		if err != nil {
			return i, fmt.Errorf("import %s: encode record %d: %w", collection, i, err)
		}
		now := time.Now().UTC().Format(time.RFC3339Nano)
		_, err = s.db.ExecContext(ctx,
			"INSERT INTO documents (collection, doc_id, body, created_at, updated_at) VALUES (?, ?, ?, ?, ?)"+
				" ON CONFLICT (collection, doc_id) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at",
			collection, id, string(body), now, now,
		)
		if err != nil {
			return i, fmt.Errorf("import %s: record %d: %w", collection, i, err)
		}
	}
	return len(records), nil
}
