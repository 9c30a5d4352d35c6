// Package header implements the fixed-shape SnapshotHeader preamble of the
// on-disk envelope: magic, version, format/compression tags, the
// encrypted flag, the body checksum, and the section offsets/counts.
//
// The header is always Binary-encoded with a fixed little-endian layout
// regardless of the body's own serialization format, so a reader can
// bootstrap without knowing anything else about the file.
package header

import (
	"time"

	"github.com/tx2pack/tx2pack/endian"
	"github.com/tx2pack/tx2pack/errs"
	"github.com/tx2pack/tx2pack/format"
)

// Magic is the fixed 8-byte envelope magic, exactly "TX2PACK\0".
var Magic = [8]byte{'T', 'X', '2', 'P', 'A', 'C', 'K', 0}

// Version is the format version this implementation writes and the only
// version it reads; there is no schema evolution beyond a monotonic
// format version.
const Version uint32 = 1

// Size is the fixed on-disk byte size of the header.
const Size = 96

// Header is the fixed-shape preamble at the start of every envelope.
type Header struct {
	Version          uint32
	Format           format.SerializationFormat
	Compression      format.CompressionType
	CompressionLevel uint8
	Encrypted        bool
	Checksum         [32]byte // SHA-256 of post-compression, pre-encryption body
	Timestamp        int64    // unix seconds at encode time
	EntityCount      uint64
	ComponentCount   uint64
	ArchetypeCount   uint64
	DataOffset       uint64 // byte offset of body from file start; equals Size
	DataSize         uint64 // byte length of body
}

// New creates a Header stamped with the current time and this
// implementation's version, with DataOffset set to Size. Counts and
// DataSize are filled in once the body is known.
func New(now time.Time) *Header {
	return &Header{
		Version:   Version,
		DataOffset: Size,
		Timestamp:  now.Unix(),
	}
}

// engine is the header's fixed little-endian byte order: endianness is
// fixed, never per-snapshot.
func engine() endian.EndianEngine {
	return endian.GetLittleEndianEngine()
}

// Bytes serializes the header into a Size-byte slice. withDataSize
// controls whether the DataSize field is written as-is or as zero; the AAD
// used for AEAD encryption is the header encoded with withDataSize=false,
// binding the header minus data_size.
func (h *Header) Bytes(withDataSize bool) []byte {
	b := make([]byte, Size)
	e := engine()

	copy(b[0:8], Magic[:])
	e.PutUint32(b[8:12], h.Version)
	b[12] = byte(h.Format)
	b[13] = byte(h.Compression)
	b[14] = h.CompressionLevel
	if h.Encrypted {
		b[15] = 1
	}
	copy(b[16:48], h.Checksum[:])
	e.PutUint64(b[48:56], uint64(h.Timestamp))
	e.PutUint64(b[56:64], h.EntityCount)
	e.PutUint64(b[64:72], h.ComponentCount)
	e.PutUint64(b[72:80], h.ArchetypeCount)
	e.PutUint64(b[80:88], h.DataOffset)

	dataSize := h.DataSize
	if !withDataSize {
		dataSize = 0
	}
	e.PutUint64(b[88:96], dataSize)

	return b
}

// AAD returns the associated-data bytes bound into AEAD encryption: the
// header serialized with DataSize zeroed out, since DataSize is implied by
// the envelope length and therefore safe to exclude.
func (h *Header) AAD() []byte {
	return h.Bytes(false)
}

// Parse decodes a Header from exactly Size bytes, validating the magic and
// version.
func Parse(data []byte) (*Header, error) {
	if len(data) != Size {
		return nil, errs.ErrInvalidHeaderSize
	}

	var magic [8]byte
	copy(magic[:], data[0:8])
	if magic != Magic {
		return nil, errs.ErrInvalidFormat
	}

	e := engine()

	h := &Header{}
	h.Version = e.Uint32(data[8:12])
	if h.Version != Version {
		return nil, errs.NewVersionMismatch(Version, h.Version)
	}

	h.Format = format.SerializationFormat(data[12])
	if !h.Format.Valid() {
		return nil, errs.ErrInvalidFormat
	}

	h.Compression = format.CompressionType(data[13])
	if !h.Compression.Valid() {
		return nil, errs.ErrInvalidFormat
	}

	h.CompressionLevel = data[14]
	h.Encrypted = data[15] != 0
	copy(h.Checksum[:], data[16:48])
	h.Timestamp = int64(e.Uint64(data[48:56]))
	h.EntityCount = e.Uint64(data[56:64])
	h.ComponentCount = e.Uint64(data[64:72])
	h.ArchetypeCount = e.Uint64(data[72:80])
	h.DataOffset = e.Uint64(data[80:88])
	h.DataSize = e.Uint64(data[88:96])

	return h, nil
}

// TimestampAsTime returns Timestamp converted to a time.Time.
func (h *Header) TimestampAsTime() time.Time {
	return time.Unix(h.Timestamp, 0).UTC()
}
