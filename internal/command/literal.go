package command

import (
	"fmt"
	"strconv"

	"github.com/nosqlite-go/nosqlite/internal/parser"
	"github.com/nosqlite-go/nosqlite/internal/table"
	"github.com/nosqlite-go/nosqlite/internal/types"
)

// rowFromLiterals interprets raw INSERT literals against tbl's declared
// column order. This is where a parsed literal's text finally becomes a
// typed types.Value, once the table's schema is known (spec.md §4.7:
// the planner copies identifiers into typed command fields; converting
// values against column types happens here since it needs the catalog).
func rowFromLiterals(tbl *table.Table, values []parser.Literal) (table.Row, error) {
	if len(values) != len(tbl.Columns) {
		return nil, fmt.Errorf("command: expected %d values for table %q, got %d", len(tbl.Columns), tbl.Name, len(values))
	}
	row := make(table.Row, len(tbl.Columns))
	for i, col := range tbl.Columns {
		v, err := literalToValue(col.Type, values[i])
		if err != nil {
			return nil, err
		}
		row[col.Name] = v
	}
	return row, nil
}

func literalToValueForColumn(tbl *table.Table, columnName string, lit parser.Literal) (types.Value, error) {
	for _, col := range tbl.Columns {
		if col.Name == columnName {
			return literalToValue(col.Type, lit)
		}
	}
	return types.Value{}, fmt.Errorf("command: column %q does not exist on table %q", columnName, tbl.Name)
}

func literalToValue(ct types.ColumnType, lit parser.Literal) (types.Value, error) {
	switch ct.Kind {
	case types.KindVarChar:
		return types.NewVarChar(lit.Text), nil
	case types.KindBytes:
		return types.NewBytes([]byte(lit.Text)), nil
	case types.KindBool:
		b, err := strconv.ParseBool(lit.Text)
		if err != nil {
			return types.Value{}, fmt.Errorf("command: %q is not a valid bool literal", lit.Text)
		}
		return types.NewBool(b), nil
	case types.KindFloat:
		f, err := strconv.ParseFloat(lit.Text, 32)
		if err != nil {
			return types.Value{}, fmt.Errorf("command: %q is not a valid float literal", lit.Text)
		}
		return types.NewFloat(float32(f)), nil
	case types.KindDouble:
		f, err := strconv.ParseFloat(lit.Text, 64)
		if err != nil {
			return types.Value{}, fmt.Errorf("command: %q is not a valid float literal", lit.Text)
		}
		return types.NewDouble(f), nil
	case types.KindByte:
		n, err := strconv.ParseUint(lit.Text, 10, 8)
		if err != nil {
			return types.Value{}, fmt.Errorf("command: %q is not a valid byte literal", lit.Text)
		}
		return types.NewByte(uint8(n)), nil
	case types.KindShort:
		n, err := strconv.ParseInt(lit.Text, 10, 16)
		if err != nil {
			return types.Value{}, fmt.Errorf("command: %q is not a valid short literal", lit.Text)
		}
		return types.NewShort(int16(n)), nil
	case types.KindUShort:
		n, err := strconv.ParseUint(lit.Text, 10, 16)
		if err != nil {
			return types.Value{}, fmt.Errorf("command: %q is not a valid ushort literal", lit.Text)
		}
		return types.NewUShort(uint16(n)), nil
	case types.KindInteger:
		n, err := strconv.ParseInt(lit.Text, 10, 32)
		if err != nil {
			return types.Value{}, fmt.Errorf("command: %q is not a valid integer literal", lit.Text)
		}
		return types.NewInteger(int32(n)), nil
	case types.KindUInteger:
		n, err := strconv.ParseUint(lit.Text, 10, 32)
		if err != nil {
			return types.Value{}, fmt.Errorf("command: %q is not a valid uinteger literal", lit.Text)
		}
		return types.NewUInteger(uint32(n)), nil
	case types.KindLong:
		n, err := strconv.ParseInt(lit.Text, 10, 64)
		if err != nil {
			return types.Value{}, fmt.Errorf("command: %q is not a valid long literal", lit.Text)
		}
		return types.NewLong(n), nil
	case types.KindULong:
		n, err := strconv.ParseUint(lit.Text, 10, 64)
		if err != nil {
			return types.Value{}, fmt.Errorf("command: %q is not a valid ulong literal", lit.Text)
		}
		return types.NewULong(n), nil
	default:
		return types.Value{}, fmt.Errorf("command: unsupported column kind %s", ct.Kind)
	}
}
