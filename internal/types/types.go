// Package types defines the primitive column types and the tagged values
// that flow through the codec, the table controller, and the command
// layer. A Kind enumerates every scalar and variable-length type the
// engine understands; a Value pairs a Kind with its concrete Go payload.
package types

import "fmt"

// Kind identifies one of the primitive column types a table column can
// declare. Scalar kinds occupy a fixed number of bytes on the wire;
// KindVarChar and KindBytes are variable-length and carry a declared
// maximum length on their ColumnType.
type Kind uint8

const (
	KindByte Kind = iota + 1
	KindBool
	KindShort
	KindUShort
	KindInteger
	KindUInteger
	KindFloat
	KindLong
	KindULong
	KindDouble
	KindVarChar
	KindBytes
)

// String renders a Kind's SQL-ish spelling, used by error messages.
func (k Kind) String() string {
	switch k {
	case KindByte:
		return "BYTE"
	case KindBool:
		return "BOOL"
	case KindShort:
		return "SHORT"
	case KindUShort:
		return "USHORT"
	case KindInteger:
		return "INTEGER"
	case KindUInteger:
		return "UINTEGER"
	case KindFloat:
		return "FLOAT"
	case KindLong:
		return "LONG"
	case KindULong:
		return "ULONG"
	case KindDouble:
		return "DOUBLE"
	case KindVarChar:
		return "VARCHAR"
	case KindBytes:
		return "BYTES"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// IsInteger reports whether k is one of the integer-variant scalar kinds
// eligible to back a primary key (spec: "an integer variant, not a
// variable string").
func (k Kind) IsInteger() bool {
	switch k {
	case KindByte, KindShort, KindUShort, KindInteger, KindUInteger, KindLong, KindULong:
		return true
	default:
		return false
	}
}

// IsVariableLength reports whether k carries a declared maximum length
// and is encoded with a five-byte array descriptor (§4.4).
func (k Kind) IsVariableLength() bool {
	return k == KindVarChar || k == KindBytes
}

// ColumnType is the declared shape of a single table column: a Kind plus,
// for variable-length kinds, the declared maximum length N.
type ColumnType struct {
	Kind   Kind
	MaxLen uint32 // meaningful only when Kind.IsVariableLength()
}

func (t ColumnType) String() string {
	if t.Kind.IsVariableLength() {
		return fmt.Sprintf("%s(%d)", t.Kind, t.MaxLen)
	}
	return t.Kind.String()
}

// Value is a single typed row value. Exactly one of the payload fields is
// meaningful, selected by Kind; the rest are zero. This mirrors the
// source's tagged Data enum without resorting to interface{} boxing for
// every scalar read.
type Value struct {
	Kind Kind

	Byte     uint8
	Bool     bool
	Short    int16
	UShort   uint16
	Integer  int32
	UInteger uint32
	Float    float32
	Long     int64
	ULong    uint64
	Double   float64
	Str      string
	Bytes    []byte
}

func NewByte(v uint8) Value     { return Value{Kind: KindByte, Byte: v} }
func NewBool(v bool) Value      { return Value{Kind: KindBool, Bool: v} }
func NewShort(v int16) Value    { return Value{Kind: KindShort, Short: v} }
func NewUShort(v uint16) Value  { return Value{Kind: KindUShort, UShort: v} }
func NewInteger(v int32) Value  { return Value{Kind: KindInteger, Integer: v} }
func NewUInteger(v uint32) Value{ return Value{Kind: KindUInteger, UInteger: v} }
func NewFloat(v float32) Value  { return Value{Kind: KindFloat, Float: v} }
func NewLong(v int64) Value     { return Value{Kind: KindLong, Long: v} }
func NewULong(v uint64) Value   { return Value{Kind: KindULong, ULong: v} }
func NewDouble(v float64) Value { return Value{Kind: KindDouble, Double: v} }
func NewVarChar(v string) Value { return Value{Kind: KindVarChar, Str: v} }
func NewBytes(v []byte) Value   { return Value{Kind: KindBytes, Bytes: v} }

// AsInt64 widens any integer-variant value to an int64, used by the
// primary-key index's ordering comparator. Panics if Kind is not an
// integer variant; callers must check Kind.IsInteger() first.
func (v Value) AsInt64() int64 {
	switch v.Kind {
	case KindByte:
		return int64(v.Byte)
	case KindShort:
		return int64(v.Short)
	case KindUShort:
		return int64(v.UShort)
	case KindInteger:
		return int64(v.Integer)
	case KindUInteger:
		return int64(v.UInteger)
	case KindLong:
		return v.Long
	case KindULong:
		// ULong's declared domain exceeds int64; the index only needs a
		// total order, so values above math.MaxInt64 simply sort after
		// all representable int64s via the unsigned comparison in Less.
		return int64(v.ULong)
	default:
		panic(fmt.Sprintf("types: AsInt64 called on non-integer kind %s", v.Kind))
	}
}

// Less provides the total order used by the primary-key index. Both
// values must share the same integer Kind.
func (v Value) Less(other Value) bool {
	if v.Kind == KindULong {
		return v.ULong < other.ULong
	}
	return v.AsInt64() < other.AsInt64()
}
