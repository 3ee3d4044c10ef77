package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nosqlite-go/nosqlite/internal/types"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	colTypes := []types.ColumnType{
		{Kind: types.KindInteger},
		{Kind: types.KindVarChar, MaxLen: 10},
		{Kind: types.KindBool},
		{Kind: types.KindDouble},
		{Kind: types.KindLong},
		{Kind: types.KindULong},
	}
	row := []types.Value{
		types.NewInteger(42),
		types.NewVarChar("hello"),
		types.NewBool(true),
		types.NewDouble(3.14159),
		types.NewLong(-1234567890123),
		types.NewULong(18446744073709551615),
	}

	payload, descriptor, err := Encode(row, colTypes)
	require.NoError(t, err)

	got, err := Decode(payload, descriptor)
	require.NoError(t, err)
	require.Len(t, got, len(row))
	for i := range row {
		assert.Equal(t, row[i], got[i], "column %d", i)
	}
}

func TestEncodeTypeMismatch(t *testing.T) {
	colTypes := []types.ColumnType{{Kind: types.KindInteger}}
	row := []types.Value{types.NewVarChar("nope")}

	_, _, err := Encode(row, colTypes)
	require.Error(t, err)
	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ErrTypeMismatch, ce.Kind)
}

func TestEncodeWrongArity(t *testing.T) {
	colTypes := []types.ColumnType{{Kind: types.KindInteger}, {Kind: types.KindBool}}
	row := []types.Value{types.NewInteger(1)}

	_, _, err := Encode(row, colTypes)
	require.Error(t, err)
	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ErrInvalidLength, ce.Kind)
}

func TestEncodeVarCharExceedsMaxLen(t *testing.T) {
	colTypes := []types.ColumnType{{Kind: types.KindVarChar, MaxLen: 3}}
	row := []types.Value{types.NewVarChar("toolong")}

	_, _, err := Encode(row, colTypes)
	require.Error(t, err)
	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ErrInvalidLength, ce.Kind)
}

func TestDecodeDescriptorLengthMismatch(t *testing.T) {
	colTypes := []types.ColumnType{{Kind: types.KindVarChar, MaxLen: 10}}
	row := []types.Value{types.NewVarChar("hello")}

	payload, descriptor, err := Encode(row, colTypes)
	require.NoError(t, err)

	// Truncate the payload so its length disagrees with what the
	// descriptor promises; decode must fail, not silently under-read.
	_, err = Decode(payload[:len(payload)-1], descriptor)
	require.Error(t, err)
	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ErrDataDecodeError, ce.Kind)
}

func TestDecodeUnknownTag(t *testing.T) {
	_, err := Decode([]byte{1, 2, 3}, []byte{0xfe})
	require.Error(t, err)
	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ErrInvalidType, ce.Kind)
}

func TestDecodeTrailingPayloadBytes(t *testing.T) {
	// descriptor says one Byte column (1 byte), but payload has 2 bytes.
	_, err := Decode([]byte{1, 2}, []byte{tagByte})
	require.Error(t, err)
	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ErrDataDecodeError, ce.Kind)
}

func TestBytesVariant(t *testing.T) {
	colTypes := []types.ColumnType{{Kind: types.KindBytes, MaxLen: 8}}
	row := []types.Value{types.NewBytes([]byte{0xde, 0xad, 0xbe, 0xef})}

	payload, descriptor, err := Encode(row, colTypes)
	require.NoError(t, err)
	got, err := Decode(payload, descriptor)
	require.NoError(t, err)
	assert.Equal(t, row[0].Bytes, got[0].Bytes)
}
