package snapshot

import (
	"fmt"
	"time"

	"github.com/tx2pack/tx2pack/compress"
	"github.com/tx2pack/tx2pack/cryptoseal"
	"github.com/tx2pack/tx2pack/errs"
	"github.com/tx2pack/tx2pack/format"
	"github.com/tx2pack/tx2pack/header"
)

// EncodeOptions configures Encode. Compression and CompressionLevel are
// always recorded in the header even when Key is nil; Key opts into AEAD
// sealing of the body.
type EncodeOptions struct {
	Format           format.SerializationFormat
	Compression      format.CompressionType
	CompressionLevel int
	Key              []byte // nil disables encryption
}

// Encode serializes, compresses, checksums, optionally encrypts, and frames
// a PackedSnapshot into the on-disk envelope: header bytes followed
// immediately by the body.
func Encode(s *PackedSnapshot, opts EncodeOptions) ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}

	w := toWireBody(s)

	bodyPlain, err := encodeBody(opts.Format, w)
	if err != nil {
		return nil, err
	}

	codec, err := compress.CreateCodec(opts.Compression, opts.CompressionLevel)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}

	bodyCompressed, err := codec.Compress(bodyPlain)
	if err != nil {
		return nil, err
	}

	checksum := cryptoseal.Checksum(bodyCompressed)

	h := header.New(time.Now())
	h.Format = opts.Format
	h.Compression = opts.Compression
	h.CompressionLevel = uint8(opts.CompressionLevel)
	h.Encrypted = opts.Key != nil
	h.Checksum = checksum
	h.EntityCount = uint64(len(s.EntityMetadata))
	h.ArchetypeCount = uint64(len(s.Archetypes))
	h.ComponentCount = h.ArchetypeCount // every archetype is exactly one component family

	bodyFinal := bodyCompressed
	if opts.Key != nil {
		sealed, err := cryptoseal.Seal(opts.Key, h.AAD(), bodyCompressed)
		if err != nil {
			return nil, err
		}
		bodyFinal = sealed
	}

	h.DataSize = uint64(len(bodyFinal))

	out := make([]byte, 0, header.Size+len(bodyFinal))
	out = append(out, h.Bytes(true)...)
	out = append(out, bodyFinal...)

	return out, nil
}

// Decode parses the envelope header, verifies its integrity, and
// reconstructs a PackedSnapshot. key must be non-nil when the envelope was
// encrypted; it is ignored otherwise.
func Decode(data []byte, key []byte) (*PackedSnapshot, error) {
	if len(data) < header.Size {
		return nil, fmt.Errorf("%w: envelope shorter than header", errs.ErrInvalidFormat)
	}

	h, err := header.Parse(data[:header.Size])
	if err != nil {
		return nil, err
	}

	start := h.DataOffset
	end := start + h.DataSize
	if end > uint64(len(data)) || start > uint64(len(data)) {
		return nil, fmt.Errorf("%w: body offset/size out of bounds", errs.ErrInvalidFormat)
	}
	body := data[start:end]

	bodyCompressed := body
	if h.Encrypted {
		if len(key) == 0 {
			return nil, fmt.Errorf("%w: envelope is encrypted but no key was provided", errs.ErrDecryption)
		}
		opened, err := cryptoseal.Open(key, h.AAD(), body)
		if err != nil {
			return nil, err
		}
		bodyCompressed = opened
	}

	if cryptoseal.Checksum(bodyCompressed) != h.Checksum {
		return nil, errs.ErrChecksumMismatch
	}

	codec, err := compress.CreateCodec(h.Compression, int(h.CompressionLevel))
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}

	bodyPlain, err := codec.Decompress(bodyCompressed)
	if err != nil {
		return nil, err
	}

	w, err := decodeBody(h.Format, bodyPlain)
	if err != nil {
		return nil, err
	}

	s := fromWireBody(w)
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}

	if uint64(len(s.EntityMetadata)) != h.EntityCount || uint64(len(s.Archetypes)) != h.ArchetypeCount {
		return nil, fmt.Errorf("%w: header counts do not match decoded body", errs.ErrInvalidFormat)
	}

	return s, nil
}

func encodeBody(f format.SerializationFormat, w wireBody) ([]byte, error) {
	switch f {
	case format.Binary:
		return encodeBinary(w)
	case format.MessagePack:
		return encodeMsgpack(w)
	default:
		return nil, fmt.Errorf("%w: invalid serialization format %d", errs.ErrSerialization, f)
	}
}

func decodeBody(f format.SerializationFormat, data []byte) (wireBody, error) {
	switch f {
	case format.Binary:
		return decodeBinary(data)
	case format.MessagePack:
		return decodeMsgpack(data)
	default:
		return wireBody{}, fmt.Errorf("%w: invalid serialization format %d", errs.ErrDeserialization, f)
	}
}
