// Package planner maps a parsed parser.Statement to a typed
// command.Command, splitting dotted identifiers into their (database,
// schema, table) components and validating their depth against the
// target object (spec.md §4.7).
package planner

import (
	"fmt"

	"github.com/nosqlite-go/nosqlite/internal/command"
	"github.com/nosqlite-go/nosqlite/internal/lexer"
	"github.com/nosqlite-go/nosqlite/internal/parser"
	"github.com/nosqlite-go/nosqlite/internal/table"
	"github.com/nosqlite-go/nosqlite/internal/types"
)

// Plan converts stmt into a Command ready for command.Dispatch.
func Plan(stmt parser.Statement) (command.Command, error) {
	switch s := stmt.(type) {
	case parser.ShortcutStmt:
		return planShortcut(s)
	case parser.CreateStmt:
		return planCreate(s)
	case parser.DropStmt:
		return planDrop(s)
	case parser.AlterRenameStmt:
		return planAlterRename(s)
	case parser.UseStmt:
		return planUse(s)
	case parser.ShowStmt:
		return planShow(s)
	case parser.InsertStmt:
		return planInsert(s)
	case parser.SelectStmt:
		return planSelect(s)
	default:
		return command.Command{}, &parser.Error{Kind: parser.ErrUnexpectedStatement, Got: fmt.Sprintf("%T", stmt)}
	}
}

func planShortcut(s parser.ShortcutStmt) (command.Command, error) {
	switch s.Kind {
	case lexer.ShortcutQuit, lexer.ShortcutQuitLong:
		return command.Command{Kind: command.Quit}, nil
	case lexer.ShortcutGetContext:
		return command.Command{Kind: command.GetContext}, nil
	default:
		return command.Command{}, &parser.Error{Kind: parser.ErrUnexpectedStatement, Got: s.Kind.String()}
	}
}

// splitDatabase requires a single unqualified name.
func splitDatabase(id parser.Ident) (name string, err error) {
	if len(id.Parts) != 1 {
		return "", wrongIdentifier(id, "database (unqualified name)")
	}
	return id.Parts[0], nil
}

// splitSchema accepts `schema` (uses session database) or
// `database.schema`.
func splitSchema(id parser.Ident) (db, schema string, err error) {
	switch len(id.Parts) {
	case 1:
		return "", id.Parts[0], nil
	case 2:
		return id.Parts[0], id.Parts[1], nil
	default:
		return "", "", wrongIdentifier(id, "schema or database.schema")
	}
}

// splitTable accepts `table`, `schema.table`, or `database.schema.table`.
func splitTable(id parser.Ident) (db, schema, name string, err error) {
	switch len(id.Parts) {
	case 1:
		return "", "", id.Parts[0], nil
	case 2:
		return "", id.Parts[0], id.Parts[1], nil
	case 3:
		return id.Parts[0], id.Parts[1], id.Parts[2], nil
	default:
		return "", "", "", wrongIdentifier(id, "table, schema.table, or database.schema.table")
	}
}

func wrongIdentifier(id parser.Ident, shape string) *parser.Error {
	return &parser.Error{Kind: parser.ErrWrongIdentifier, Got: id.Text, Want: shape}
}

func planCreate(s parser.CreateStmt) (command.Command, error) {
	switch s.Obj {
	case parser.ObjDatabase:
		name, err := splitDatabase(s.Ident)
		if err != nil {
			return command.Command{}, err
		}
		return command.Command{Kind: command.CreateDatabase, DB: name}, nil

	case parser.ObjSchema:
		db, schema, err := splitSchema(s.Ident)
		if err != nil {
			return command.Command{}, err
		}
		return command.Command{Kind: command.CreateSchema, DB: db, Schema: schema}, nil

	case parser.ObjTable:
		db, schema, name, err := splitTable(s.Ident)
		if err != nil {
			return command.Command{}, err
		}
		cols, pk, err := planColumns(s.Columns)
		if err != nil {
			return command.Command{}, err
		}
		return command.Command{Kind: command.CreateTable, DB: db, Schema: schema, Table: name, Columns: cols, PK: pk}, nil

	default:
		return command.Command{}, &parser.Error{Kind: parser.ErrUnexpectedStatement, Got: "CREATE"}
	}
}

func planColumns(specs []parser.ColumnSpec) ([]table.ColumnDef, *table.PrimaryKey, error) {
	cols := make([]table.ColumnDef, len(specs))
	var pk *table.PrimaryKey
	for i, spec := range specs {
		ct, err := columnType(spec.Type)
		if err != nil {
			return nil, nil, err
		}
		cols[i] = table.ColumnDef{Name: spec.Name.Text, Type: ct}
		if spec.PrimaryKey {
			pk = &table.PrimaryKey{Column: spec.Name.Text}
		}
	}
	return cols, pk, nil
}

func columnType(t parser.TypeSpec) (types.ColumnType, error) {
	switch t.Kind {
	case lexer.TypeByte:
		return types.ColumnType{Kind: types.KindByte}, nil
	case lexer.TypeBool:
		return types.ColumnType{Kind: types.KindBool}, nil
	case lexer.TypeShort:
		return types.ColumnType{Kind: types.KindShort}, nil
	case lexer.TypeUShort:
		return types.ColumnType{Kind: types.KindUShort}, nil
	case lexer.TypeInteger:
		return types.ColumnType{Kind: types.KindInteger}, nil
	case lexer.TypeUInteger:
		return types.ColumnType{Kind: types.KindUInteger}, nil
	case lexer.TypeLong:
		return types.ColumnType{Kind: types.KindLong}, nil
	case lexer.TypeULong:
		return types.ColumnType{Kind: types.KindULong}, nil
	case lexer.TypeFloat:
		return types.ColumnType{Kind: types.KindFloat}, nil
	case lexer.TypeDouble:
		return types.ColumnType{Kind: types.KindDouble}, nil
	case lexer.TypeVarChar:
		return types.ColumnType{Kind: types.KindVarChar, MaxLen: t.Length}, nil
	case lexer.TypeBytes:
		return types.ColumnType{Kind: types.KindBytes, MaxLen: t.Length}, nil
	default:
		return types.ColumnType{}, &parser.Error{Kind: parser.ErrUnexpectedToken, Got: t.Kind.String()}
	}
}

func planDrop(s parser.DropStmt) (command.Command, error) {
	switch s.Obj {
	case parser.ObjDatabase:
		name, err := splitDatabase(s.Ident)
		if err != nil {
			return command.Command{}, err
		}
		return command.Command{Kind: command.DropDatabase, DB: name}, nil
	case parser.ObjSchema:
		db, schema, err := splitSchema(s.Ident)
		if err != nil {
			return command.Command{}, err
		}
		return command.Command{Kind: command.DropSchema, DB: db, Schema: schema}, nil
	case parser.ObjTable:
		db, schema, name, err := splitTable(s.Ident)
		if err != nil {
			return command.Command{}, err
		}
		return command.Command{Kind: command.DropTable, DB: db, Schema: schema, Table: name}, nil
	default:
		return command.Command{}, &parser.Error{Kind: parser.ErrUnexpectedStatement, Got: "DROP"}
	}
}

func planAlterRename(s parser.AlterRenameStmt) (command.Command, error) {
	if s.Obj != parser.ObjSchema {
		return command.Command{}, &parser.Error{Kind: parser.ErrUnexpectedStatement, Got: "ALTER (only SCHEMA RENAME is supported)"}
	}
	db, schema, err := splitSchema(s.Ident)
	if err != nil {
		return command.Command{}, err
	}
	newName, err := splitDatabase(s.NewIdent)
	if err != nil {
		return command.Command{}, &parser.Error{Kind: parser.ErrIdentifierMismatch, Got: s.NewIdent.Text, Want: schema}
	}
	return command.Command{Kind: command.RenameSchema, DB: db, Schema: schema, NewName: newName}, nil
}

func planUse(s parser.UseStmt) (command.Command, error) {
	switch s.Obj {
	case parser.ObjDatabase:
		name, err := splitDatabase(s.Ident)
		if err != nil {
			return command.Command{}, err
		}
		return command.Command{Kind: command.UseDatabase, DB: name}, nil
	case parser.ObjSchema:
		db, schema, err := splitSchema(s.Ident)
		if err != nil {
			return command.Command{}, err
		}
		return command.Command{Kind: command.UseSchema, DB: db, Schema: schema}, nil
	default:
		return command.Command{}, &parser.Error{Kind: parser.ErrUnexpectedStatement, Got: "USE"}
	}
}

func planShow(s parser.ShowStmt) (command.Command, error) {
	switch s.ObjMany {
	case parser.ObjManySchemas:
		cmd := command.Command{Kind: command.ShowSchemas}
		if s.From != nil {
			db, err := splitDatabase(*s.From)
			if err != nil {
				return command.Command{}, err
			}
			cmd.DB = db
		}
		return cmd, nil
	case parser.ObjManyTables:
		cmd := command.Command{Kind: command.ShowTables}
		if s.From != nil {
			db, schema, err := splitSchema(*s.From)
			if err != nil {
				return command.Command{}, err
			}
			cmd.DB, cmd.Schema = db, schema
		}
		return cmd, nil
	default:
		return command.Command{}, &parser.Error{Kind: parser.ErrUnexpectedStatement, Got: "SHOW"}
	}
}

func planInsert(s parser.InsertStmt) (command.Command, error) {
	db, schema, name, err := splitTable(s.Table)
	if err != nil {
		return command.Command{}, err
	}
	return command.Command{Kind: command.Insert, DB: db, Schema: schema, Table: name, InsertValues: s.Values}, nil
}

func planSelect(s parser.SelectStmt) (command.Command, error) {
	db, schema, name, err := splitTable(s.Table)
	if err != nil {
		return command.Command{}, err
	}
	return command.Command{
		Kind:        command.Select,
		DB:          db,
		Schema:      schema,
		Table:       name,
		WhereColumn: s.WhereColumn.Text,
		WhereValue:  s.WhereValue,
	}, nil
}
