// Package catalog implements the in-memory database/schema/table
// hierarchy of SPEC_FULL.md §4.6: name-based lookup and mutation with
// the create/drop/rename lifecycle and qualifier-resolution rules
// spec.md §4.6 specifies.
package catalog

import (
	"fmt"
	"sync"

	"github.com/nosqlite-go/nosqlite/internal/alloc"
	"github.com/nosqlite-go/nosqlite/internal/page"
	"github.com/nosqlite-go/nosqlite/internal/registry"
	"github.com/nosqlite-go/nosqlite/internal/table"
)

// ErrKind enumerates the catalog's error taxonomy (spec.md §7).
type ErrKind int

const (
	ErrDatabaseNotProvided ErrKind = iota + 1
	ErrSchemaNotProvided
	ErrDatabaseNotExists
	ErrSchemaNotExists
	ErrTableNotExists
	ErrDatabaseAlreadyExists
	ErrSchemaAlreadyExists
	ErrTableAlreadyExists
	ErrSchemaNotFound
)

func (k ErrKind) String() string {
	switch k {
	case ErrDatabaseNotProvided:
		return "DatabaseNotProvided"
	case ErrSchemaNotProvided:
		return "SchemaNotProvided"
	case ErrDatabaseNotExists:
		return "DatabaseNotExists"
	case ErrSchemaNotExists:
		return "SchemaNotExists"
	case ErrTableNotExists:
		return "TableNotExists"
	case ErrDatabaseAlreadyExists:
		return "DatabaseAlreadyExists"
	case ErrSchemaAlreadyExists:
		return "SchemaAlreadyExists"
	case ErrTableAlreadyExists:
		return "TableAlreadyExists"
	case ErrSchemaNotFound:
		return "SchemaNotFound"
	default:
		return "Unknown"
	}
}

// Error is the catalog's single typed error, carrying the offending
// name. Its Error text is the human-readable string the command
// dispatcher passes on unchanged (e.g. "Schema `db`.`s` not exists").
type Error struct {
	Kind ErrKind
	Name string
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrDatabaseNotProvided:
		return "Database not provided"
	case ErrSchemaNotProvided:
		return "Schema not provided"
	case ErrDatabaseNotExists:
		return fmt.Sprintf("Database `%s` not exists", e.Name)
	case ErrSchemaNotExists, ErrSchemaNotFound:
		return fmt.Sprintf("Schema `%s` not exists", e.Name)
	case ErrTableNotExists:
		return fmt.Sprintf("Table `%s` not exists", e.Name)
	case ErrDatabaseAlreadyExists:
		return fmt.Sprintf("Database `%s` already exists", e.Name)
	case ErrSchemaAlreadyExists:
		return fmt.Sprintf("Schema `%s` already exists", e.Name)
	case ErrTableAlreadyExists:
		return fmt.Sprintf("Table `%s` already exists", e.Name)
	default:
		return fmt.Sprintf("catalog: %s: %s", e.Kind, e.Name)
	}
}

func errk(kind ErrKind, name string) *Error { return &Error{Kind: kind, Name: name} }

// Schema owns an isolated set of tables by name (spec.md §3).
type Schema struct {
	Name   string
	Tables map[string]*table.Table
}

// Database owns an isolated set of schemas by name (spec.md §3).
type Database struct {
	Name    string
	Schemas map[string]*Schema
}

// Options configures how new tables within the catalog allocate and
// index (spec.md §6: NODE_SIZE default 16; §4.2: allocator strategy).
type Options struct {
	NodeSize         int
	AllocatorStrategy alloc.Strategy
}

// Catalog is the root of the ownership tree described in SPEC_FULL.md
// §5: every database, schema, table, and the shared page pool and
// identity registry they resolve to, reached through exclusive handles
// from one place.
type Catalog struct {
	mu sync.Mutex

	Databases map[string]*Database

	CurrentDB     string
	CurrentSchema string

	pool     *page.Shared
	registry *registry.Shared
	opts     Options
}

// New returns an empty catalog sharing one page pool and identity
// registry across every database it will contain.
func New(opts Options) *Catalog {
	if opts.NodeSize <= 0 {
		opts.NodeSize = 16
	}
	if opts.AllocatorStrategy == "" {
		opts.AllocatorStrategy = alloc.BestFit
	}
	return &Catalog{
		Databases: make(map[string]*Database),
		pool:      page.NewShared(),
		registry:  registry.NewShared(),
		opts:      opts,
	}
}

// CreateDatabase adds a new, empty database named name.
func (c *Catalog) CreateDatabase(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.Databases[name]; ok {
		return errk(ErrDatabaseAlreadyExists, name)
	}
	c.Databases[name] = &Database{Name: name, Schemas: make(map[string]*Schema)}
	return nil
}

// DropDatabase removes database name. Unlike DropTable, this is strict:
// dropping a missing database is an error (spec.md §4.6 asymmetry).
func (c *Catalog) DropDatabase(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.Databases[name]; !ok {
		return errk(ErrDatabaseNotExists, name)
	}
	delete(c.Databases, name)
	if c.CurrentDB == name {
		c.CurrentDB = ""
		c.CurrentSchema = ""
	}
	return nil
}

// UseDatabase sets the session's current database.
func (c *Catalog) UseDatabase(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.Databases[name]; !ok {
		return errk(ErrDatabaseNotExists, name)
	}
	c.CurrentDB = name
	c.CurrentSchema = ""
	return nil
}

// resolveDB resolves an optional database qualifier against session
// context, failing with DatabaseNotProvided if both are empty.
func (c *Catalog) resolveDB(dbName string) (*Database, string, error) {
	name := dbName
	if name == "" {
		name = c.CurrentDB
	}
	if name == "" {
		return nil, "", errk(ErrDatabaseNotProvided, "")
	}
	db, ok := c.Databases[name]
	if !ok {
		return nil, name, errk(ErrDatabaseNotExists, name)
	}
	return db, name, nil
}

func (c *Catalog) resolveSchema(dbName, schemaName string) (*Database, *Schema, string, string, error) {
	db, resolvedDB, err := c.resolveDB(dbName)
	if err != nil {
		return nil, nil, resolvedDB, "", err
	}
	name := schemaName
	if name == "" {
		name = c.CurrentSchema
	}
	if name == "" {
		return db, nil, resolvedDB, "", errk(ErrSchemaNotProvided, "")
	}
	schema, ok := db.Schemas[name]
	if !ok {
		return db, nil, resolvedDB, name, errk(ErrSchemaNotExists, fmt.Sprintf("%s`.`%s", resolvedDB, name))
	}
	return db, schema, resolvedDB, name, nil
}

// CreateSchema adds schema name to database dbName (or the current
// database if dbName is empty).
func (c *Catalog) CreateSchema(dbName, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	db, _, err := c.resolveDB(dbName)
	if err != nil {
		return err
	}
	if _, ok := db.Schemas[name]; ok {
		return errk(ErrSchemaAlreadyExists, name)
	}
	db.Schemas[name] = &Schema{Name: name, Tables: make(map[string]*table.Table)}
	return nil
}

// DropSchema removes schema name from its database. Strict: missing
// schemas are an error (spec.md §4.6).
func (c *Catalog) DropSchema(dbName, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	db, _, err := c.resolveDB(dbName)
	if err != nil {
		return err
	}
	if _, ok := db.Schemas[name]; !ok {
		return errk(ErrSchemaNotExists, name)
	}
	delete(db.Schemas, name)
	if c.CurrentSchema == name {
		c.CurrentSchema = ""
	}
	return nil
}

// RenameSchema atomically replaces schema oldName's key with newName.
// Fails with SchemaNotFound if oldName is absent, SchemaAlreadyExists if
// newName is already taken.
func (c *Catalog) RenameSchema(dbName, oldName, newName string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	db, _, err := c.resolveDB(dbName)
	if err != nil {
		return err
	}
	schema, ok := db.Schemas[oldName]
	if !ok {
		return errk(ErrSchemaNotFound, oldName)
	}
	if _, taken := db.Schemas[newName]; taken {
		return errk(ErrSchemaAlreadyExists, newName)
	}
	schema.Name = newName
	db.Schemas[newName] = schema
	delete(db.Schemas, oldName)
	if c.CurrentSchema == oldName {
		c.CurrentSchema = newName
	}
	return nil
}

// UseSchema sets the session's current schema.
func (c *Catalog) UseSchema(dbName, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	db, _, err := c.resolveDB(dbName)
	if err != nil {
		return err
	}
	if _, ok := db.Schemas[name]; !ok {
		return errk(ErrSchemaNotExists, name)
	}
	c.CurrentSchema = name
	return nil
}

// CreateTable adds a new table to the resolved schema.
func (c *Catalog) CreateTable(dbName, schemaName, name string, columns []table.ColumnDef, pk *table.PrimaryKey) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, schema, _, _, err := c.resolveSchema(dbName, schemaName)
	if err != nil {
		return err
	}
	if _, ok := schema.Tables[name]; ok {
		return errk(ErrTableAlreadyExists, name)
	}
	tbl, err := table.New(name, columns, pk, c.pool, c.registry, c.opts.AllocatorStrategy, c.opts.NodeSize)
	if err != nil {
		return err
	}
	schema.Tables[name] = tbl
	return nil
}

// DropTable removes table name from the resolved schema. Idempotent:
// dropping a table that does not exist is not an error, matching the
// source's asymmetry with databases/schemas (spec.md §4.6).
func (c *Catalog) DropTable(dbName, schemaName, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, schema, _, _, err := c.resolveSchema(dbName, schemaName)
	if err != nil {
		return err
	}
	delete(schema.Tables, name)
	return nil
}

// LookupTable resolves a table for row insert/select operations.
func (c *Catalog) LookupTable(dbName, schemaName, name string) (*table.Table, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, schema, _, _, err := c.resolveSchema(dbName, schemaName)
	if err != nil {
		return nil, err
	}
	tbl, ok := schema.Tables[name]
	if !ok {
		return nil, errk(ErrTableNotExists, name)
	}
	return tbl, nil
}

// SchemaNames lists the schema names in the resolved database, used to
// answer SHOW SCHEMAS.
func (c *Catalog) SchemaNames(dbName string) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	db, _, err := c.resolveDB(dbName)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(db.Schemas))
	for n := range db.Schemas {
		names = append(names, n)
	}
	return names, nil
}

// TableNames lists the table names in the resolved schema, used to
// answer SHOW TABLES.
func (c *Catalog) TableNames(dbName, schemaName string) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, schema, _, _, err := c.resolveSchema(dbName, schemaName)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(schema.Tables))
	for n := range schema.Tables {
		names = append(names, n)
	}
	return names, nil
}

// Context reports the session's current database and schema, used to
// answer the \get_context shortcut (spec.md §6).
func (c *Catalog) Context() (db, schema string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.CurrentDB, c.CurrentSchema
}
