package sqlite

// Schema DDL. Every stored document lives in one table, keyed by
// collection name and document identity, with the document body as a
// JSON text column queried through json_extract.
const (
	createDocuments = `CREATE TABLE IF NOT EXISTS documents (
    collection TEXT NOT NULL,
    doc_id TEXT NOT NULL,
    body TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    PRIMARY KEY (collection, doc_id)
);`

	idxDocumentsCollection = `CREATE INDEX IF NOT EXISTS idx_documents_collection
    ON documents(collection);`
)

// schemaDDL lists all schema statements in execution order.
var schemaDDL = []string{
	createDocuments,
	idxDocumentsCollection,
}
