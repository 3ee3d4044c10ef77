// Package parser implements the recursive-descent parser of
// SPEC_FULL.md §4.7: it turns a lexer.Token stream into an AST node
// per statement.
package parser

import "github.com/nosqlite-go/nosqlite/internal/lexer"

// ObjKind is the single-object grammar production `obj`.
type ObjKind int

const (
	ObjDatabase ObjKind = iota
	ObjSchema
	ObjTable
)

// ObjManyKind is the `obj_many` production used by SHOW.
type ObjManyKind int

const (
	ObjManySchemas ObjManyKind = iota
	ObjManyTables
)

// Ident is a possibly dotted identifier, split into its components.
// Depth validation against the target object happens in the planner
// (spec.md §4.7).
type Ident struct {
	Text  string
	Parts []string
}

// TypeSpec is a parsed column type, with Length meaningful only for
// VarChar and Bytes.
type TypeSpec struct {
	Kind   lexer.Kind
	Length uint32
}

// ColumnSpec is one parsed column declaration.
type ColumnSpec struct {
	Name      Ident
	Type      TypeSpec
	PrimaryKey bool
}

// Literal is a parsed scalar value, still in its lexical text form;
// interpreting it against a column's declared type happens at command
// dispatch time, once the table's schema is known.
type Literal struct {
	Kind lexer.Kind
	Text string
}

// Statement is implemented by every parsed command.
type Statement interface{ isStatement() }

// ShortcutStmt is `\q`, `\quit`, or `\get_context`.
type ShortcutStmt struct{ Kind lexer.Kind }

// CreateStmt is `CREATE obj ident column_list?`.
type CreateStmt struct {
	Obj     ObjKind
	Ident   Ident
	Columns []ColumnSpec
}

// DropStmt is `DROP obj ident`.
type DropStmt struct {
	Obj   ObjKind
	Ident Ident
}

// AlterRenameStmt is `ALTER obj ident RENAME TO ident`.
type AlterRenameStmt struct {
	Obj      ObjKind
	Ident    Ident
	NewIdent Ident
}

// UseStmt is `USE obj ident`.
type UseStmt struct {
	Obj   ObjKind
	Ident Ident
}

// ShowStmt is `SHOW obj_many (FROM ident)?`.
type ShowStmt struct {
	ObjMany ObjManyKind
	From    *Ident
}

// InsertStmt is the supplemented row-insertion statement:
// `INSERT ident VALUES (literal (',' literal)*)`.
type InsertStmt struct {
	Table  Ident
	Values []Literal
}

// SelectStmt is the supplemented point-lookup statement:
// `SELECT ident WHERE ident '=' literal`.
type SelectStmt struct {
	Table       Ident
	WhereColumn Ident
	WhereValue  Literal
}

func (ShortcutStmt) isStatement()    {}
func (CreateStmt) isStatement()      {}
func (DropStmt) isStatement()        {}
func (AlterRenameStmt) isStatement() {}
func (UseStmt) isStatement()         {}
func (ShowStmt) isStatement()        {}
func (InsertStmt) isStatement()      {}
func (SelectStmt) isStatement()      {}
