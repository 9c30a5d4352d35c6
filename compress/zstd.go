package compress

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/tx2pack/tx2pack/errs"
)

// ZstdCodec implements the Zstd(level) compression tag.
//
// klauspost/compress/zstd exposes four speed tiers rather than 19 discrete
// levels; Level is bucketed into a tier but is still round-tripped exactly
// through the header's compression-level byte.
type ZstdCodec struct {
	level int
}

var _ Codec = ZstdCodec{}

// NewZstdCodec creates a Zstd codec at the given level (1..19). Levels
// outside that range are clamped.
func NewZstdCodec(level int) ZstdCodec {
	if level < 1 {
		level = 1
	}
	if level > 19 {
		level = 19
	}

	return ZstdCodec{level: level}
}

// Level returns the configured level (1..19).
func (c ZstdCodec) Level() int { return c.level }

func (c ZstdCodec) encoderLevel() zstd.EncoderLevel {
	switch {
	case c.level <= 3:
		return zstd.SpeedFastest
	case c.level <= 9:
		return zstd.SpeedDefault
	case c.level <= 15:
		return zstd.SpeedBetterCompression
	default:
		return zstd.SpeedBestCompression
	}
}

// zstdEncoderPools pools zstd.Encoder instances keyed by speed tier; the
// library's docs recommend reusing encoders/decoders after warmup.
var zstdEncoderPools sync.Map // zstd.EncoderLevel -> *sync.Pool

func encoderPoolFor(level zstd.EncoderLevel) *sync.Pool {
	if p, ok := zstdEncoderPools.Load(level); ok {
		return p.(*sync.Pool)
	}

	p := &sync.Pool{
		New: func() any {
			enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(level), zstd.WithEncoderCRC(false))
			if err != nil {
				panic(fmt.Sprintf("compress: failed to create zstd encoder: %v", err))
			}

			return enc
		},
	}
	actual, _ := zstdEncoderPools.LoadOrStore(level, p)

	return actual.(*sync.Pool)
}

var zstdDecoderPool = sync.Pool{
	New: func() any {
		dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
		if err != nil {
			panic(fmt.Sprintf("compress: failed to create zstd decoder: %v", err))
		}

		return dec
	},
}

// Compress compresses data using Zstandard at the codec's configured level.
func (c ZstdCodec) Compress(data []byte) ([]byte, error) {
	level := c.encoderLevel()
	pool := encoderPoolFor(level)

	enc := pool.Get().(*zstd.Encoder)
	defer pool.Put(enc)

	return enc.EncodeAll(data, nil), nil
}

// Decompress decompresses Zstd-compressed data. Decoder level is encoded
// in the stream itself, so decompression needs no level parameter.
func (c ZstdCodec) Decompress(data []byte) ([]byte, error) {
	dec := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(dec)

	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: zstd: %w", errs.ErrDecompression, err)
	}

	return out, nil
}
