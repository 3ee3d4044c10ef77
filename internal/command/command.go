// Package command defines the typed command records the planner
// produces and the dispatcher (SPEC_FULL.md §6) that routes them to the
// catalog or a table controller, formatting results into the
// human-readable strings spec.md §6/§8 specifies. Errors are returned
// unchanged; a catalog error's own text is its human-readable form.
package command

import (
	"context"
	"fmt"

	"github.com/nosqlite-go/nosqlite/internal/catalog"
	"github.com/nosqlite-go/nosqlite/internal/parser"
	"github.com/nosqlite-go/nosqlite/internal/table"
)

// Kind identifies which catalog or table operation a Command runs.
type Kind int

const (
	CreateDatabase Kind = iota
	DropDatabase
	UseDatabase
	CreateSchema
	DropSchema
	RenameSchema
	UseSchema
	CreateTable
	DropTable
	ShowSchemas
	ShowTables
	Insert
	Select
	Quit
	GetContext
)

// Command is the planner's typed output: identifiers have already been
// split and depth-validated against the target object (spec.md §4.7).
type Command struct {
	Kind Kind

	DB     string
	Schema string
	Table  string

	Columns []table.ColumnDef
	PK      *table.PrimaryKey

	NewName string

	InsertValues []parser.Literal

	WhereColumn string
	WhereValue  parser.Literal
}

// Result is what Dispatch returns: a human-readable message and,
// for queries, a typed payload.
type Result struct {
	Message string
	Names   []string
	Row     table.Row
	Quit    bool
	Context *ContextInfo
}

// ContextInfo answers `\get_context`.
type ContextInfo struct {
	Database string
	Schema   string
}

// Dispatch routes cmd to the catalog or a resolved table, formatting
// its outcome the way spec.md §6/§8 literally specifies (e.g.
// "Database `test` created").
func Dispatch(ctx context.Context, cat *catalog.Catalog, cmd Command) (Result, error) {
	switch cmd.Kind {
	case Quit:
		return Result{Quit: true}, nil

	case GetContext:
		db, schema := cat.Context()
		return Result{Context: &ContextInfo{Database: db, Schema: schema}}, nil

	case CreateDatabase:
		if err := cat.CreateDatabase(cmd.DB); err != nil {
			return Result{}, err
		}
		return Result{Message: fmt.Sprintf("Database `%s` created", cmd.DB)}, nil

	case DropDatabase:
		if err := cat.DropDatabase(cmd.DB); err != nil {
			return Result{}, err
		}
		return Result{Message: fmt.Sprintf("Database `%s` dropped", cmd.DB)}, nil

	case UseDatabase:
		if err := cat.UseDatabase(cmd.DB); err != nil {
			return Result{}, err
		}
		return Result{Message: fmt.Sprintf("Using database `%s`", cmd.DB)}, nil

	case CreateSchema:
		if err := cat.CreateSchema(cmd.DB, cmd.Schema); err != nil {
			return Result{}, err
		}
		return Result{Message: fmt.Sprintf("Schema `%s` created", cmd.Schema)}, nil

	case DropSchema:
		if err := cat.DropSchema(cmd.DB, cmd.Schema); err != nil {
			return Result{}, err
		}
		return Result{Message: fmt.Sprintf("Schema `%s` dropped", cmd.Schema)}, nil

	case RenameSchema:
		if err := cat.RenameSchema(cmd.DB, cmd.Schema, cmd.NewName); err != nil {
			return Result{}, err
		}
		return Result{Message: fmt.Sprintf("Schema `%s` renamed to `%s`", cmd.Schema, cmd.NewName)}, nil

	case UseSchema:
		if err := cat.UseSchema(cmd.DB, cmd.Schema); err != nil {
			return Result{}, err
		}
		return Result{Message: fmt.Sprintf("Using schema `%s`", cmd.Schema)}, nil

	case CreateTable:
		if err := cat.CreateTable(cmd.DB, cmd.Schema, cmd.Table, cmd.Columns, cmd.PK); err != nil {
			return Result{}, err
		}
		return Result{Message: fmt.Sprintf("Table `%s` created", cmd.Table)}, nil

	case DropTable:
		if err := cat.DropTable(cmd.DB, cmd.Schema, cmd.Table); err != nil {
			return Result{}, err
		}
		return Result{Message: fmt.Sprintf("Table `%s` dropped", cmd.Table)}, nil

	case ShowSchemas:
		names, err := cat.SchemaNames(cmd.DB)
		if err != nil {
			return Result{}, err
		}
		return Result{Names: names}, nil

	case ShowTables:
		names, err := cat.TableNames(cmd.DB, cmd.Schema)
		if err != nil {
			return Result{}, err
		}
		return Result{Names: names}, nil

	case Insert:
		return dispatchInsert(cat, cmd)

	case Select:
		return dispatchSelect(cat, cmd)

	default:
		return Result{}, fmt.Errorf("command: unknown command kind %d", cmd.Kind)
	}
}

func dispatchInsert(cat *catalog.Catalog, cmd Command) (Result, error) {
	tbl, err := cat.LookupTable(cmd.DB, cmd.Schema, cmd.Table)
	if err != nil {
		return Result{}, err
	}
	row, err := rowFromLiterals(tbl, cmd.InsertValues)
	if err != nil {
		return Result{}, err
	}
	if _, err := tbl.Insert([]table.Row{row}); err != nil {
		return Result{}, err
	}
	return Result{Message: fmt.Sprintf("1 row inserted into `%s`", cmd.Table)}, nil
}

func dispatchSelect(cat *catalog.Catalog, cmd Command) (Result, error) {
	tbl, err := cat.LookupTable(cmd.DB, cmd.Schema, cmd.Table)
	if err != nil {
		return Result{}, err
	}
	if tbl.PK == nil || cmd.WhereColumn != tbl.PK.Column {
		return Result{}, fmt.Errorf("command: SELECT on table %q must filter on its primary key column, not %q", cmd.Table, cmd.WhereColumn)
	}
	value, err := literalToValueForColumn(tbl, cmd.WhereColumn, cmd.WhereValue)
	if err != nil {
		return Result{}, err
	}
	row, err := tbl.SelectByPK(value)
	if err != nil {
		return Result{}, err
	}
	return Result{Row: row}, nil
}
