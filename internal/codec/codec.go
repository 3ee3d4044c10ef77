// Package codec encodes and decodes table rows against an ordered list of
// column types, producing the big-endian wire layout and the
// self-describing descriptor bytes specified in SPEC_FULL.md §4.4.
package codec

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/nosqlite-go/nosqlite/internal/types"
)

// ErrKind enumerates the codec's error taxonomy.
type ErrKind int

const (
	ErrTypeMismatch ErrKind = iota + 1
	ErrInvalidType
	ErrInvalidLength
	ErrDataDecodeError
)

func (k ErrKind) String() string {
	switch k {
	case ErrTypeMismatch:
		return "TypeMismatch"
	case ErrInvalidType:
		return "InvalidType"
	case ErrInvalidLength:
		return "InvalidLength"
	case ErrDataDecodeError:
		return "DataDecodeError"
	default:
		return "Unknown"
	}
}

// Error is the codec's single typed error, carrying enough context to
// format a precise message without the caller needing to parse strings.
type Error struct {
	Kind    ErrKind
	Column  int
	Message string
}

func (e *Error) Error() string {
	if e.Column >= 0 {
		return fmt.Sprintf("codec: %s at column %d: %s", e.Kind, e.Column, e.Message)
	}
	return fmt.Sprintf("codec: %s: %s", e.Kind, e.Message)
}

func newErr(kind ErrKind, col int, format string, args ...any) *Error {
	return &Error{Kind: kind, Column: col, Message: fmt.Sprintf(format, args...)}
}

// descriptor tag bytes for scalar kinds, matching SPEC_FULL.md §4.4's
// "values 1..=20 enumerate the scalar widths and signedness".
const (
	tagByte     byte = 1
	tagBool     byte = 2
	tagShort    byte = 3
	tagUShort   byte = 4
	tagInteger  byte = 5
	tagUInteger byte = 6
	tagFloat    byte = 7
	tagLong     byte = 8
	tagULong    byte = 9
	tagDouble   byte = 10
	tagVarChar  byte = 11
	tagBytes    byte = 12

	arrayFlag byte = 0x80
)

func scalarTag(k types.Kind) (byte, bool) {
	switch k {
	case types.KindByte:
		return tagByte, true
	case types.KindBool:
		return tagBool, true
	case types.KindShort:
		return tagShort, true
	case types.KindUShort:
		return tagUShort, true
	case types.KindInteger:
		return tagInteger, true
	case types.KindUInteger:
		return tagUInteger, true
	case types.KindFloat:
		return tagFloat, true
	case types.KindLong:
		return tagLong, true
	case types.KindULong:
		return tagULong, true
	case types.KindDouble:
		return tagDouble, true
	case types.KindVarChar:
		return tagVarChar, true
	case types.KindBytes:
		return tagBytes, true
	default:
		return 0, false
	}
}

func kindFromTag(tag byte) (types.Kind, bool) {
	switch tag {
	case tagByte:
		return types.KindByte, true
	case tagBool:
		return types.KindBool, true
	case tagShort:
		return types.KindShort, true
	case tagUShort:
		return types.KindUShort, true
	case tagInteger:
		return types.KindInteger, true
	case tagUInteger:
		return types.KindUInteger, true
	case tagFloat:
		return types.KindFloat, true
	case tagLong:
		return types.KindLong, true
	case tagULong:
		return types.KindULong, true
	case tagDouble:
		return types.KindDouble, true
	case tagVarChar:
		return types.KindVarChar, true
	case tagBytes:
		return types.KindBytes, true
	default:
		return 0, false
	}
}

// scalarWidth returns the on-wire byte width of a fixed-size scalar kind.
func scalarWidth(k types.Kind) int {
	switch k {
	case types.KindByte, types.KindBool:
		return 1
	case types.KindShort, types.KindUShort:
		return 2
	case types.KindInteger, types.KindUInteger, types.KindFloat:
		return 4
	case types.KindDouble:
		return 8
	case types.KindLong, types.KindULong:
		return 16
	default:
		return 0
	}
}

// Encode produces the wire bytes and descriptor for row against the
// declared column types. len(row) must equal len(colTypes); each value's
// Kind must match the corresponding colTypes entry.
func Encode(row []types.Value, colTypes []types.ColumnType) ([]byte, []byte, error) {
	if len(row) != len(colTypes) {
		return nil, nil, newErr(ErrInvalidLength, -1, "row has %d values, expected %d", len(row), len(colTypes))
	}

	var payload, descriptor []byte
	for i, v := range row {
		ct := colTypes[i]
		if v.Kind != ct.Kind {
			return nil, nil, newErr(ErrTypeMismatch, i, "value kind %s does not match declared column kind %s", v.Kind, ct.Kind)
		}

		tag, ok := scalarTag(v.Kind)
		if !ok {
			return nil, nil, newErr(ErrInvalidType, i, "unknown column kind %s", v.Kind)
		}

		if v.Kind.IsVariableLength() {
			var raw []byte
			if v.Kind == types.KindVarChar {
				raw = []byte(v.Str)
			} else {
				raw = v.Bytes
			}
			if ct.MaxLen > 0 && uint32(len(raw)) > ct.MaxLen {
				return nil, nil, newErr(ErrInvalidLength, i, "value length %d exceeds declared maximum %d", len(raw), ct.MaxLen)
			}
			descriptor = append(descriptor, tag|arrayFlag)
			var lenBuf [4]byte
			binary.BigEndian.PutUint32(lenBuf[:], uint32(len(raw)))
			descriptor = append(descriptor, lenBuf[:]...)
			payload = append(payload, raw...)
			continue
		}

		descriptor = append(descriptor, tag)
		payload = append(payload, encodeScalar(v)...)
	}
	return payload, descriptor, nil
}

func encodeScalar(v types.Value) []byte {
	switch v.Kind {
	case types.KindByte:
		return []byte{v.Byte}
	case types.KindBool:
		if v.Bool {
			return []byte{0x01}
		}
		return []byte{0x00}
	case types.KindShort:
		var b [2]byte
		binary.BigEndian.PutUint16(b[:], uint16(v.Short))
		return b[:]
	case types.KindUShort:
		var b [2]byte
		binary.BigEndian.PutUint16(b[:], v.UShort)
		return b[:]
	case types.KindInteger:
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], uint32(v.Integer))
		return b[:]
	case types.KindUInteger:
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], v.UInteger)
		return b[:]
	case types.KindFloat:
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], math.Float32bits(v.Float))
		return b[:]
	case types.KindDouble:
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], math.Float64bits(v.Double))
		return b[:]
	case types.KindLong:
		var b [16]byte
		// The value fills the low 8 bytes of the 16-byte slot; the high
		// 8 bytes are filled with its sign for bit-for-bit compatibility
		// with the source's 128-bit-wide encoding (SPEC_FULL.md §9).
		if v.Long < 0 {
			for i := range b[:8] {
				b[i] = 0xff
			}
		}
		binary.BigEndian.PutUint64(b[8:], uint64(v.Long))
		return b[:]
	case types.KindULong:
		var b [16]byte
		binary.BigEndian.PutUint64(b[8:], v.ULong)
		return b[:]
	default:
		panic(fmt.Sprintf("codec: encodeScalar called with unsupported kind %s", v.Kind))
	}
}

// Decode reverses Encode: given the wire payload and its descriptor, it
// reconstructs the typed row. The descriptor alone determines how many
// bytes each column consumes; payload must be exactly exhausted.
func Decode(payload, descriptor []byte) ([]types.Value, error) {
	var row []types.Value
	di, pi := 0, 0

	for di < len(descriptor) {
		tagByte := descriptor[di]
		di++

		if tagByte&arrayFlag != 0 {
			baseTag := tagByte &^ arrayFlag
			kind, ok := kindFromTag(baseTag)
			if !ok || !kind.IsVariableLength() {
				return nil, newErr(ErrInvalidType, len(row), "malformed array descriptor tag 0x%02x", tagByte)
			}
			if di+4 > len(descriptor) {
				return nil, newErr(ErrDataDecodeError, len(row), "descriptor truncated before length field")
			}
			n := binary.BigEndian.Uint32(descriptor[di : di+4])
			di += 4
			if pi+int(n) > len(payload) {
				return nil, newErr(ErrDataDecodeError, len(row), "payload too short for declared length %d", n)
			}
			raw := payload[pi : pi+int(n)]
			pi += int(n)
			if kind == types.KindVarChar {
				row = append(row, types.NewVarChar(string(raw)))
			} else {
				buf := make([]byte, len(raw))
				copy(buf, raw)
				row = append(row, types.NewBytes(buf))
			}
			continue
		}

		kind, ok := kindFromTag(tagByte)
		if !ok {
			return nil, newErr(ErrInvalidType, len(row), "unknown descriptor tag 0x%02x", tagByte)
		}
		width := scalarWidth(kind)
		if pi+width > len(payload) {
			return nil, newErr(ErrDataDecodeError, len(row), "payload too short for %s (needs %d bytes)", kind, width)
		}
		v, err := decodeScalar(kind, payload[pi:pi+width])
		if err != nil {
			return nil, err
		}
		pi += width
		row = append(row, v)
	}

	if pi != len(payload) {
		return nil, newErr(ErrDataDecodeError, len(row), "payload has %d trailing bytes not covered by descriptor", len(payload)-pi)
	}
	return row, nil
}

func decodeScalar(kind types.Kind, b []byte) (types.Value, error) {
	switch kind {
	case types.KindByte:
		return types.NewByte(b[0]), nil
	case types.KindBool:
		switch b[0] {
		case 0x00:
			return types.NewBool(false), nil
		case 0x01:
			return types.NewBool(true), nil
		default:
			return types.Value{}, newErr(ErrDataDecodeError, -1, "invalid bool byte 0x%02x", b[0])
		}
	case types.KindShort:
		return types.NewShort(int16(binary.BigEndian.Uint16(b))), nil
	case types.KindUShort:
		return types.NewUShort(binary.BigEndian.Uint16(b)), nil
	case types.KindInteger:
		return types.NewInteger(int32(binary.BigEndian.Uint32(b))), nil
	case types.KindUInteger:
		return types.NewUInteger(binary.BigEndian.Uint32(b)), nil
	case types.KindFloat:
		return types.NewFloat(math.Float32frombits(binary.BigEndian.Uint32(b))), nil
	case types.KindDouble:
		return types.NewDouble(math.Float64frombits(binary.BigEndian.Uint64(b))), nil
	case types.KindLong:
		return types.NewLong(int64(binary.BigEndian.Uint64(b[8:]))), nil
	case types.KindULong:
		return types.NewULong(binary.BigEndian.Uint64(b[8:])), nil
	default:
		return types.Value{}, newErr(ErrInvalidType, -1, "unsupported scalar kind %s", kind)
	}
}
