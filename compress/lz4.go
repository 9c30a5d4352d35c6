package compress

import (
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/tx2pack/tx2pack/errs"
)

// lz4CompressorPool pools lz4.Compressor instances for reuse. The
// lz4.Compressor maintains internal state that benefits from reuse.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Codec implements the Lz4 compression tag.
type LZ4Codec struct{}

var _ Codec = (*LZ4Codec)(nil)

// NewLZ4Codec creates a new LZ4 codec.
func NewLZ4Codec() LZ4Codec {
	return LZ4Codec{}
}

// Compress compresses data using LZ4 block compression, using a pooled
// lz4.Compressor for better performance.
func (c LZ4Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dstSize := lz4.CompressBlockBound(len(data))
	dst := make([]byte, dstSize)

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, fmt.Errorf("%w: lz4: %w", errs.ErrCompression, err)
	}

	return dst[:n], nil
}

// Decompress decompresses LZ4 block-compressed data.
//
// Uses an adaptive buffer sizing strategy since LZ4 blocks carry no
// original-size header:
//  1. Start with a buffer 4x the compressed size (common expansion ratio).
//  2. On ErrInvalidSourceShortBuffer, double the buffer size (up to maxSize).
//  3. Fail if the buffer would exceed a safety limit (corrupt input should
//     never silently consume unbounded memory).
func (c LZ4Codec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	bufSize := len(data) * 4
	const maxSize = 128 * 1024 * 1024 // 128MB safety limit

	for bufSize <= maxSize {
		buf := make([]byte, bufSize)
		n, err := lz4.UncompressBlock(data, buf)
		if err != nil {
			if errors.Is(err, lz4.ErrInvalidSourceShortBuffer) && bufSize < maxSize {
				bufSize *= 2
				continue
			}

			return nil, fmt.Errorf("%w: lz4: %w", errs.ErrDecompression, err)
		}

		return buf[:n], nil
	}

	return nil, fmt.Errorf("%w: lz4: decompressed size exceeds %d byte limit", errs.ErrDecompression, maxSize)
}
