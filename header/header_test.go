package header

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tx2pack/tx2pack/format"
)

func sampleHeader() *Header {
	h := New(time.Unix(1_700_000_000, 0))
	h.Format = format.Binary
	h.Compression = format.CompressionZstd
	h.CompressionLevel = 9
	h.Encrypted = true
	h.EntityCount = 2
	h.ComponentCount = 1
	h.ArchetypeCount = 1
	h.DataSize = 1234
	for i := range h.Checksum {
		h.Checksum[i] = byte(i)
	}

	return h
}

func TestHeader_RoundTrip(t *testing.T) {
	h := sampleHeader()

	b := h.Bytes(true)
	require.Len(t, b, Size)

	parsed, err := Parse(b)
	require.NoError(t, err)
	require.Equal(t, h, parsed)
}

func TestHeader_AAD_ZeroesDataSize(t *testing.T) {
	h := sampleHeader()

	aad := h.AAD()
	parsed, err := Parse(aad)
	require.NoError(t, err)
	require.Zero(t, parsed.DataSize)

	// Everything but DataSize matches.
	parsed.DataSize = h.DataSize
	require.Equal(t, h, parsed)
}

func TestHeader_Parse_BadMagic(t *testing.T) {
	h := sampleHeader()
	b := h.Bytes(true)
	b[0] = 'X'

	_, err := Parse(b)
	require.Error(t, err)
}

func TestHeader_Parse_VersionMismatch(t *testing.T) {
	h := sampleHeader()
	b := h.Bytes(true)
	// version is little-endian uint32 at offset 8
	b[8] = 0xFF

	_, err := Parse(b)
	require.Error(t, err)
}

func TestHeader_Parse_TruncatedSize(t *testing.T) {
	h := sampleHeader()
	b := h.Bytes(true)

	_, err := Parse(b[:Size-1])
	require.Error(t, err)
}

func TestHeader_Parse_InvalidFormatTag(t *testing.T) {
	h := sampleHeader()
	b := h.Bytes(true)
	b[12] = 0xFF

	_, err := Parse(b)
	require.Error(t, err)
}
