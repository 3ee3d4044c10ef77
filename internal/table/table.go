// Package table implements the table controller of SPEC_FULL.md §4.5: it
// binds a table's column list and primary key to storage, and
// orchestrates row insert, remove, update, and lookup.
package table

import (
	"encoding/binary"
	"fmt"

	"github.com/nosqlite-go/nosqlite/internal/alloc"
	"github.com/nosqlite-go/nosqlite/internal/codec"
	"github.com/nosqlite-go/nosqlite/internal/container"
	"github.com/nosqlite-go/nosqlite/internal/page"
	"github.com/nosqlite-go/nosqlite/internal/registry"
	"github.com/nosqlite-go/nosqlite/internal/types"
)

// frameRecord and unframeRecord combine a row's descriptor and payload
// into the single byte range the page pool stores at one page.Link. The
// codec's descriptor is not self-describing about its own length (it is
// a concatenation of variable-width per-column tags), so the frame
// prefixes it with a 2-byte big-endian length.
func frameRecord(descriptor, payload []byte) []byte {
	out := make([]byte, 2+len(descriptor)+len(payload))
	binary.BigEndian.PutUint16(out[:2], uint16(len(descriptor)))
	copy(out[2:], descriptor)
	copy(out[2+len(descriptor):], payload)
	return out
}

func unframeRecord(stored []byte) (descriptor, payload []byte, err error) {
	if len(stored) < 2 {
		return nil, nil, fmt.Errorf("table: stored record too short for frame header")
	}
	dlen := int(binary.BigEndian.Uint16(stored[:2]))
	if 2+dlen > len(stored) {
		return nil, nil, fmt.Errorf("table: stored record truncated before end of descriptor")
	}
	return stored[2 : 2+dlen], stored[2+dlen:], nil
}

// ColumnDef is one (name, type) pair from a table's declared column
// list; order matches spec.md's "order returned by row iteration".
type ColumnDef struct {
	Name string
	Type types.ColumnType
}

// PrimaryKey names the column backing a table's primary-key index. The
// named column's type must be an integer variant (spec.md §3).
type PrimaryKey struct {
	Column string
}

// Row is a data unit's single entry: an ordered key-value bundle mapping
// column name to value (spec.md GLOSSARY: "Data unit").
type Row map[string]types.Value

// ErrKind enumerates the table controller's error taxonomy.
type ErrKind int

const (
	ErrColumnNotProvided ErrKind = iota + 1
	ErrColumnDoesNotExist
	ErrWrongTypeForPrimaryKey
	ErrPrimaryKeyDoesNotExist
	ErrDataStorageError
	ErrPrimaryKeyAlreadyExists
	ErrRowNotFound
)

func (k ErrKind) String() string {
	switch k {
	case ErrColumnNotProvided:
		return "ColumnNotProvided"
	case ErrColumnDoesNotExist:
		return "ColumnDoesNotExist"
	case ErrWrongTypeForPrimaryKey:
		return "WrongTypeForPrimaryKey"
	case ErrPrimaryKeyDoesNotExist:
		return "PrimaryKeyDoesNotExist"
	case ErrDataStorageError:
		return "DataStorageError"
	case ErrPrimaryKeyAlreadyExists:
		return "PrimaryKeyAlreadyExists"
	case ErrRowNotFound:
		return "RowNotFound"
	default:
		return "Unknown"
	}
}

// Error is the table controller's single typed error.
type Error struct {
	Kind    ErrKind
	Column  string
	cause   error
	Message string
}

func (e *Error) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("table: %s (column %q): %s", e.Kind, e.Column, e.Message)
	}
	return fmt.Sprintf("table: %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

func errf(kind ErrKind, column string, format string, args ...any) *Error {
	return &Error{Kind: kind, Column: column, Message: fmt.Sprintf(format, args...)}
}

func wrapStorage(err error) *Error {
	return &Error{Kind: ErrDataStorageError, Message: err.Error(), cause: err}
}

// pkEntry is the primary-key index's ordered item: (value, record-id)
// ordered purely by Value (spec.md §3: "Primary-key index ... supporting
// insertion, membership test, and ordered traversal").
type pkEntry struct {
	Value types.Value
	ID    registry.ID
}

func pkLess(a, b pkEntry) bool {
	return a.Value.Less(b.Value)
}

// Table binds a declared column list and optional primary key to shared
// storage. It is not safe for concurrent mutation beyond what the
// underlying Shared handles provide (single-threaded model, §5).
type Table struct {
	Name    string
	Columns []ColumnDef
	PK      *PrimaryKey

	pool     *page.Shared
	alloc    *alloc.Allocator
	registry *registry.Shared

	pageIndices []uint64
	pkIndex     *container.Tree[pkEntry]
}

// New constructs a Table over shared storage. strategy and nodeSize
// configure the table's own allocator and primary-key index (spec.md §6:
// NODE_SIZE, §4.2: allocator strategy).
func New(name string, columns []ColumnDef, pk *PrimaryKey, pool *page.Shared, reg *registry.Shared, strategy alloc.Strategy, nodeSize int) (*Table, error) {
	if pk != nil {
		if _, ct, ok := findColumn(columns, pk.Column); !ok {
			return nil, errf(ErrColumnDoesNotExist, pk.Column, "primary key column %q does not exist", pk.Column)
		} else if !ct.Kind.IsInteger() {
			return nil, errf(ErrWrongTypeForPrimaryKey, pk.Column, "primary key column %q has non-integer type %s", pk.Column, ct.Kind)
		}
	}
	return &Table{
		Name:     name,
		Columns:  columns,
		PK:       pk,
		pool:     pool,
		alloc:    alloc.New(pool, strategy, nodeSize),
		registry: reg,
		pkIndex:  container.New[pkEntry](nodeSize, pkLess),
	}, nil
}

func findColumn(columns []ColumnDef, name string) (int, types.ColumnType, bool) {
	for i, c := range columns {
		if c.Name == name {
			return i, c.Type, true
		}
	}
	return -1, types.ColumnType{}, false
}

// columnTypes returns the table's column types in declared order, for
// the codec.
func (t *Table) columnTypes() []types.ColumnType {
	out := make([]types.ColumnType, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Type
	}
	return out
}

// orderedRow extracts row's values in the table's declared column order,
// failing if any column is absent from row.
func (t *Table) orderedRow(row Row) ([]types.Value, error) {
	out := make([]types.Value, len(t.Columns))
	for i, c := range t.Columns {
		v, ok := row[c.Name]
		if !ok {
			return nil, errf(ErrColumnNotProvided, c.Name, "row is missing column %q", c.Name)
		}
		out[i] = v
	}
	return out, nil
}

// Insert runs the insert protocol of spec.md §4.5 for each row in rows,
// returning the record-id assigned to each in order.
func (t *Table) Insert(rows []Row) ([]registry.ID, error) {
	if t.PK == nil {
		return nil, errf(ErrPrimaryKeyDoesNotExist, "", "table %q has no primary key set", t.Name)
	}

	ids := make([]registry.ID, 0, len(rows))
	for _, row := range rows {
		pkValue, ok := row[t.PK.Column]
		if !ok {
			return ids, errf(ErrColumnNotProvided, t.PK.Column, "row is missing primary key column %q", t.PK.Column)
		}
		_, pkType, _ := findColumn(t.Columns, t.PK.Column)
		if pkValue.Kind != pkType.Kind {
			return ids, errf(ErrWrongTypeForPrimaryKey, t.PK.Column, "primary key value has kind %s, expected %s", pkValue.Kind, pkType.Kind)
		}
		if _, exists := t.pkIndex.Find(pkEntry{Value: pkValue}); exists {
			return ids, errf(ErrPrimaryKeyAlreadyExists, t.PK.Column, "primary key value already present")
		}

		values, err := t.orderedRow(row)
		if err != nil {
			return ids, err
		}

		payload, descriptor, err := codec.Encode(values, t.columnTypes())
		if err != nil {
			return ids, wrapStorage(err)
		}
		stored := frameRecord(descriptor, payload)

		link, err := t.alloc.Allocate(uint32(len(stored)))
		if err != nil {
			return ids, wrapStorage(err)
		}

		if err := t.pool.With(func(pool *page.Pool) error {
			p, err := pool.GetPage(link.PageIndex)
			if err != nil {
				return err
			}
			return p.UpdateData(stored, link)
		}); err != nil {
			return ids, wrapStorage(err)
		}
		t.trackPage(link.PageIndex)

		id := t.registry.AddLink(link)
		t.pkIndex.Insert(pkEntry{Value: pkValue, ID: id})
		ids = append(ids, id)
	}
	return ids, nil
}

func (t *Table) trackPage(idx uint64) {
	for _, p := range t.pageIndices {
		if p == idx {
			return
		}
	}
	t.pageIndices = append(t.pageIndices, idx)
}

// Remove deletes the row whose primary-key value is pkValue.
func (t *Table) Remove(pkValue types.Value) error {
	entry, ok := t.pkIndex.Find(pkEntry{Value: pkValue})
	if !ok {
		return errf(ErrRowNotFound, "", "no row with given primary key value")
	}
	link, ok := t.registry.GetLink(entry.ID)
	if !ok {
		return wrapStorage(fmt.Errorf("registry: id %d has no link", entry.ID))
	}

	t.alloc.Free(link)
	if err := t.registry.RemoveID(entry.ID); err != nil {
		return wrapStorage(err)
	}
	t.pkIndex.Delete(entry)
	return nil
}

// Update replaces the row at pkValue's existing primary key with
// newRow. No in-place update is attempted even when the encoded length
// is unchanged, matching the source (spec.md §4.5).
func (t *Table) Update(pkValue types.Value, newRow Row) error {
	if err := t.Remove(pkValue); err != nil {
		return err
	}
	_, err := t.Insert([]Row{newRow})
	return err
}

// SelectByPK looks up the row whose primary-key value is pkValue.
func (t *Table) SelectByPK(pkValue types.Value) (Row, error) {
	entry, ok := t.pkIndex.Find(pkEntry{Value: pkValue})
	if !ok {
		return nil, errf(ErrRowNotFound, "", "no row with given primary key value")
	}
	return t.readRow(entry.ID)
}

func (t *Table) readRow(id registry.ID) (Row, error) {
	link, ok := t.registry.GetLink(id)
	if !ok {
		return nil, wrapStorage(fmt.Errorf("registry: id %d has no link", id))
	}

	var stored []byte
	if err := t.pool.With(func(pool *page.Pool) error {
		p, err := pool.GetPage(link.PageIndex)
		if err != nil {
			return err
		}
		stored, err = p.GetByLink(link)
		return err
	}); err != nil {
		return nil, wrapStorage(err)
	}

	descriptor, payload, err := unframeRecord(stored)
	if err != nil {
		return nil, wrapStorage(err)
	}

	values, err := codec.Decode(payload, descriptor)
	if err != nil {
		return nil, wrapStorage(err)
	}

	row := make(Row, len(t.Columns))
	for i, c := range t.Columns {
		row[c.Name] = values[i]
	}
	return row, nil
}

// Scan returns every live row in the table, in primary-key ascending
// order.
func (t *Table) Scan() ([]Row, error) {
	var rows []Row
	var firstErr error
	t.pkIndex.Ascend(func(e pkEntry) bool {
		row, err := t.readRow(e.ID)
		if err != nil {
			firstErr = err
			return false
		}
		rows = append(rows, row)
		return true
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return rows, nil
}

// PageIndices returns the page indices this table has written to, in
// the order first encountered. Scan does not use it; it walks the
// primary-key index.
func (t *Table) PageIndices() []uint64 {
	return t.pageIndices
}
