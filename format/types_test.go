package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFieldType_Valid(t *testing.T) {
	require.True(t, Bool.Valid())
	require.True(t, Bytes.Valid())
	require.False(t, FieldType(0).Valid())
	require.False(t, FieldType(100).Valid())
}

func TestFieldType_FixedSize(t *testing.T) {
	cases := []struct {
		tag      FieldType
		wantSize int
		wantOK   bool
	}{
		{Bool, 1, true},
		{I8, 1, true},
		{U8, 1, true},
		{I16, 2, true},
		{U16, 2, true},
		{I32, 4, true},
		{U32, 4, true},
		{F32, 4, true},
		{I64, 8, true},
		{U64, 8, true},
		{F64, 8, true},
		{String, 0, false},
		{Bytes, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.tag.String(), func(t *testing.T) {
			size, ok := tc.tag.FixedSize()
			require.Equal(t, tc.wantSize, size)
			require.Equal(t, tc.wantOK, ok)
		})
	}
}

func TestFieldType_String(t *testing.T) {
	require.Equal(t, "F32", F32.String())
	require.Equal(t, "Unknown", FieldType(200).String())
}

func TestSerializationFormat_Valid(t *testing.T) {
	require.True(t, Binary.Valid())
	require.True(t, MessagePack.Valid())
	require.False(t, SerializationFormat(2).Valid())
}

func TestCompressionType_Valid(t *testing.T) {
	require.True(t, CompressionNone.Valid())
	require.True(t, CompressionLZ4.Valid())
	require.True(t, CompressionZstd.Valid())
	require.False(t, CompressionType(0x03).Valid())
}

func TestCompressionType_String(t *testing.T) {
	require.Equal(t, "Zstd", CompressionZstd.String())
	require.Equal(t, "Unknown", CompressionType(0xFF).String())
}
