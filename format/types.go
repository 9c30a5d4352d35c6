// Package format defines the closed sets of tag values that appear in a
// snapshot envelope: field types for columnar data, the body serialization
// format, and the body compression codec. Tag values and their on-disk
// byte encoding are frozen by the container header layout; changing a
// value here changes on-disk compatibility.
package format

// FieldType identifies the wire shape of a single FieldArray element.
// The set is closed: every column in a StructOfArraysData carries exactly
// one of these tags, and a decoder must reject anything else as
// InvalidFormat.
type FieldType uint8

const (
	Bool   FieldType = iota + 1
	I8
	I16
	I32
	I64
	U8
	U16
	U32
	U64
	F32
	F64
	String
	Bytes
)

func (t FieldType) String() string {
	switch t {
	case Bool:
		return "Bool"
	case I8:
		return "I8"
	case I16:
		return "I16"
	case I32:
		return "I32"
	case I64:
		return "I64"
	case U8:
		return "U8"
	case U16:
		return "U16"
	case U32:
		return "U32"
	case U64:
		return "U64"
	case F32:
		return "F32"
	case F64:
		return "F64"
	case String:
		return "String"
	case Bytes:
		return "Bytes"
	default:
		return "Unknown"
	}
}

// Valid reports whether t is one of the closed set of field tags.
func (t FieldType) Valid() bool {
	return t >= Bool && t <= Bytes
}

// FixedSize returns the element width in bytes for fixed-width tags, and
// (0, false) for the variable-length String/Bytes tags.
func (t FieldType) FixedSize() (int, bool) {
	switch t {
	case Bool, I8, U8:
		return 1, true
	case I16, U16:
		return 2, true
	case I32, U32, F32:
		return 4, true
	case I64, U64, F64:
		return 8, true
	default:
		return 0, false
	}
}

// SerializationFormat selects how the PackedSnapshot body is encoded
// before compression. Recorded in the header's format byte.
type SerializationFormat uint8

const (
	// Binary is the hand-rolled, length-prefixed binary body codec.
	Binary SerializationFormat = 0
	// MessagePack uses vmihailenco/msgpack/v5 for inter-runtime compatibility.
	MessagePack SerializationFormat = 1
)

func (f SerializationFormat) String() string {
	switch f {
	case Binary:
		return "Binary"
	case MessagePack:
		return "MessagePack"
	default:
		return "Unknown"
	}
}

// Valid reports whether f is a recognized serialization format.
func (f SerializationFormat) Valid() bool {
	return f == Binary || f == MessagePack
}

// CompressionType selects the body compression codec. Recorded as the
// low tag byte of the header's 2-byte compression field; the high byte
// carries the Zstd level (ignored for None/Lz4).
type CompressionType uint8

const (
	CompressionNone CompressionType = 0x00
	CompressionLZ4  CompressionType = 0x01
	CompressionZstd CompressionType = 0x02
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionLZ4:
		return "Lz4"
	case CompressionZstd:
		return "Zstd"
	default:
		return "Unknown"
	}
}

// Valid reports whether c is a recognized compression tag.
func (c CompressionType) Valid() bool {
	switch c {
	case CompressionNone, CompressionLZ4, CompressionZstd:
		return true
	default:
		return false
	}
}
