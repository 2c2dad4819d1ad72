package sqlite

// Schema DDL. SQLite is a query cache over entities.jsonl and is rebuilt on
// every Attach.
const (
	createEntities = `CREATE TABLE entities (
    entity_id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    excerpt TEXT NOT NULL,
    raw_content TEXT NOT NULL,
    permalink TEXT NOT NULL,
    thumbnail_url TEXT NOT NULL,
    schema_type TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createEntityCategories = `CREATE TABLE entity_categories (
    entity_id TEXT NOT NULL,
    ordinal INTEGER NOT NULL,
    name TEXT NOT NULL,
    PRIMARY KEY (entity_id, ordinal),
    FOREIGN KEY (entity_id) REFERENCES entities(entity_id) ON DELETE CASCADE
);`

	createEntityMeta = `CREATE TABLE entity_meta (
    entity_id TEXT NOT NULL,
    meta_key TEXT NOT NULL,
    value TEXT NOT NULL,
    PRIMARY KEY (entity_id, meta_key),
    FOREIGN KEY (entity_id) REFERENCES entities(entity_id) ON DELETE CASCADE
);`
)

// Index DDL.
const (
	idxEntitiesSchemaType = `CREATE INDEX idx_entities_schema_type ON entities(schema_type);`
	idxEntitiesCreatedAt  = `CREATE INDEX idx_entities_created_at ON entities(created_at);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createEntities,
	createEntityCategories,
	createEntityMeta,
}

var indexDDL = []string{
	idxEntitiesSchemaType,
	idxEntitiesCreatedAt,
}
