package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nosqlite-go/nosqlite/internal/command"
	"github.com/nosqlite-go/nosqlite/internal/parser"
)

func plan(t *testing.T, text string) command.Command {
	t.Helper()
	stmt, err := parser.Parse(text)
	require.NoError(t, err)
	cmd, err := Plan(stmt)
	require.NoError(t, err)
	return cmd
}

func TestPlanCreateDatabase(t *testing.T) {
	cmd := plan(t, "CREATE DATABASE test;")
	assert.Equal(t, command.CreateDatabase, cmd.Kind)
	assert.Equal(t, "test", cmd.DB)
}

func TestPlanCreateTableWithPK(t *testing.T) {
	cmd := plan(t, "CREATE TABLE db.s.t(id INTEGER PRIMARY KEY, name VARCHAR10);")
	assert.Equal(t, command.CreateTable, cmd.Kind)
	assert.Equal(t, "db", cmd.DB)
	assert.Equal(t, "s", cmd.Schema)
	assert.Equal(t, "t", cmd.Table)
	require.NotNil(t, cmd.PK)
	assert.Equal(t, "id", cmd.PK.Column)
	require.Len(t, cmd.Columns, 2)
}

func TestPlanCreateSchemaUnqualifiedUsesEmptyDB(t *testing.T) {
	cmd := plan(t, "CREATE SCHEMA s;")
	assert.Equal(t, command.CreateSchema, cmd.Kind)
	assert.Equal(t, "", cmd.DB)
	assert.Equal(t, "s", cmd.Schema)
}

func TestPlanTableTooManyQualifiersFails(t *testing.T) {
	stmt, err := parser.Parse("CREATE TABLE a.b.c.d;")
	require.NoError(t, err)
	_, err = Plan(stmt)
	require.Error(t, err)
	var pe *parser.Error
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, parser.ErrWrongIdentifier, pe.Kind)
}

func TestPlanDatabaseQualifiedFails(t *testing.T) {
	stmt, err := parser.Parse("CREATE DATABASE a.b;")
	require.NoError(t, err)
	_, err = Plan(stmt)
	require.Error(t, err)
	var pe *parser.Error
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, parser.ErrWrongIdentifier, pe.Kind)
}

func TestPlanAlterSchemaRename(t *testing.T) {
	cmd := plan(t, "ALTER SCHEMA s RENAME TO s2;")
	assert.Equal(t, command.RenameSchema, cmd.Kind)
	assert.Equal(t, "s", cmd.Schema)
	assert.Equal(t, "s2", cmd.NewName)
}

func TestPlanShowTablesFromQualified(t *testing.T) {
	cmd := plan(t, "SHOW TABLES FROM db.s;")
	assert.Equal(t, command.ShowTables, cmd.Kind)
	assert.Equal(t, "db", cmd.DB)
	assert.Equal(t, "s", cmd.Schema)
}

func TestPlanInsert(t *testing.T) {
	cmd := plan(t, "INSERT db.s.t VALUES (1, 'alice');")
	assert.Equal(t, command.Insert, cmd.Kind)
	require.Len(t, cmd.InsertValues, 2)
}

func TestPlanSelect(t *testing.T) {
	cmd := plan(t, "SELECT db.s.t WHERE id = 1;")
	assert.Equal(t, command.Select, cmd.Kind)
	assert.Equal(t, "id", cmd.WhereColumn)
	assert.Equal(t, "1", cmd.WhereValue.Text)
}

func TestPlanShortcutQuit(t *testing.T) {
	cmd := plan(t, `\q`)
	assert.Equal(t, command.Quit, cmd.Kind)
}

func TestPlanShortcutGetContext(t *testing.T) {
	cmd := plan(t, `\get_context`)
	assert.Equal(t, command.GetContext, cmd.Kind)
}
