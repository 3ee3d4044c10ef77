package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nosqlite-go/nosqlite/internal/lexer"
)

func TestParseCreateDatabase(t *testing.T) {
	stmt, err := Parse("CREATE DATABASE test;")
	require.NoError(t, err)
	create, ok := stmt.(CreateStmt)
	require.True(t, ok)
	assert.Equal(t, ObjDatabase, create.Obj)
	assert.Equal(t, "test", create.Ident.Text)
}

func TestParseCreateTableWithColumns(t *testing.T) {
	stmt, err := Parse("CREATE TABLE t(id INTEGER PRIMARY KEY, name VARCHAR10);")
	require.NoError(t, err)
	create, ok := stmt.(CreateStmt)
	require.True(t, ok)
	require.Len(t, create.Columns, 2)
	assert.Equal(t, "id", create.Columns[0].Name.Text)
	assert.True(t, create.Columns[0].PrimaryKey)
	assert.Equal(t, lexer.TypeVarChar, create.Columns[1].Type.Kind)
	assert.EqualValues(t, 10, create.Columns[1].Type.Length)
}

func TestParseDottedIdentifier(t *testing.T) {
	stmt, err := Parse("CREATE TABLE db.s.t(id INTEGER PRIMARY KEY);")
	require.NoError(t, err)
	create := stmt.(CreateStmt)
	assert.Equal(t, []string{"db", "s", "t"}, create.Ident.Parts)
}

func TestParseAlterSchemaRename(t *testing.T) {
	stmt, err := Parse("ALTER SCHEMA s RENAME TO s2;")
	require.NoError(t, err)
	alter, ok := stmt.(AlterRenameStmt)
	require.True(t, ok)
	assert.Equal(t, ObjSchema, alter.Obj)
	assert.Equal(t, "s", alter.Ident.Text)
	assert.Equal(t, "s2", alter.NewIdent.Text)
}

func TestParseDropSchema(t *testing.T) {
	stmt, err := Parse("DROP SCHEMA x;")
	require.NoError(t, err)
	drop := stmt.(DropStmt)
	assert.Equal(t, ObjSchema, drop.Obj)
	assert.Equal(t, "x", drop.Ident.Text)
}

func TestParseUseDatabase(t *testing.T) {
	stmt, err := Parse("USE DATABASE db;")
	require.NoError(t, err)
	use := stmt.(UseStmt)
	assert.Equal(t, ObjDatabase, use.Obj)
	assert.Equal(t, "db", use.Ident.Text)
}

func TestParseShowTablesFrom(t *testing.T) {
	stmt, err := Parse("SHOW TABLES FROM db.s;")
	require.NoError(t, err)
	show := stmt.(ShowStmt)
	assert.Equal(t, ObjManyTables, show.ObjMany)
	require.NotNil(t, show.From)
	assert.Equal(t, "db.s", show.From.Text)
}

func TestParseShowSchemasNoFrom(t *testing.T) {
	stmt, err := Parse("SHOW SCHEMAS;")
	require.NoError(t, err)
	show := stmt.(ShowStmt)
	assert.Equal(t, ObjManySchemas, show.ObjMany)
	assert.Nil(t, show.From)
}

func TestParseInsert(t *testing.T) {
	stmt, err := Parse("INSERT db.s.t VALUES (1, 'alice');")
	require.NoError(t, err)
	ins := stmt.(InsertStmt)
	assert.Equal(t, "db.s.t", ins.Table.Text)
	require.Len(t, ins.Values, 2)
	assert.Equal(t, lexer.IntLiteral, ins.Values[0].Kind)
	assert.Equal(t, "alice", ins.Values[1].Text)
}

func TestParseSelectWhere(t *testing.T) {
	stmt, err := Parse("SELECT db.s.t WHERE id = 1;")
	require.NoError(t, err)
	sel := stmt.(SelectStmt)
	assert.Equal(t, "db.s.t", sel.Table.Text)
	assert.Equal(t, "id", sel.WhereColumn.Text)
	assert.Equal(t, "1", sel.WhereValue.Text)
}

func TestParseShortcuts(t *testing.T) {
	stmt, err := Parse(`\get_context`)
	require.NoError(t, err)
	sc, ok := stmt.(ShortcutStmt)
	require.True(t, ok)
	assert.Equal(t, lexer.ShortcutGetContext, sc.Kind)
}

func TestParseMissingSemicolonFails(t *testing.T) {
	_, err := Parse("CREATE DATABASE test")
	require.Error(t, err)
	var pe *Error
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, ErrNotEnoughTokens, pe.Kind)
}

func TestParseWrongTokenFails(t *testing.T) {
	_, err := Parse("SELECT FROM;")
	require.Error(t, err)
	var pe *Error
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, ErrWrongTokenProvided, pe.Kind)
}
