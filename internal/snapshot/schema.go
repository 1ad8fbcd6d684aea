// Package snapshot persists a built catalog generation to a SQLite file so
// tooling can inspect one generation or compare two.
package snapshot

// Schema DDL for snapshot databases.
const (
	createGeneration = `CREATE TABLE generation (
    generation_id TEXT NOT NULL,
    policy TEXT NOT NULL,
    created_at TEXT NOT NULL
);`

	createComponents = `CREATE TABLE components (
    type_index INTEGER PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    byte_size INTEGER NOT NULL,
    content_hash INTEGER NOT NULL,
    engine_object INTEGER NOT NULL,
    tree_position INTEGER NOT NULL,
    descendant_count INTEGER NOT NULL
);`

	createSystems = `CREATE TABLE systems (
    type_index INTEGER PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    byte_size INTEGER NOT NULL,
    content_hash INTEGER NOT NULL,
    flags INTEGER NOT NULL,
    world_filter INTEGER NOT NULL
);`

	createSystemAttributes = `CREATE TABLE system_attributes (
    system_index INTEGER NOT NULL,
    ordinal INTEGER NOT NULL,
    kind TEXT NOT NULL,
    target_index INTEGER NOT NULL,
    PRIMARY KEY (system_index, ordinal),
    FOREIGN KEY (system_index) REFERENCES systems(type_index)
);`

	createWriteGroups = `CREATE TABLE write_groups (
    type_index INTEGER NOT NULL,
    conflict_index INTEGER NOT NULL,
    PRIMARY KEY (type_index, conflict_index)
);`
)

// schemaStatements lists the DDL in creation order.
var schemaStatements = []string{
	createGeneration,
	createComponents,
	createSystems,
	createSystemAttributes,
	createWriteGroups,
}
