// Package reader implements the Reader builder: an explicit configuration
// of (optional encryption key) that recovers a PackedSnapshot from an
// envelope. Format, compression, and the encrypted flag are read from the
// envelope's header rather than configured by the caller.
package reader

import (
	"fmt"
	"os"

	"github.com/tx2pack/tx2pack/errs"
	"github.com/tx2pack/tx2pack/snapshot"
)

type config struct {
	key []byte
}

// ReaderOption configures a Reader at construction time.
type ReaderOption func(*config) error

// WithEncryptionKey configures the 32-byte key used to decrypt envelopes
// whose header reports Encrypted = true. Required only for encrypted
// envelopes; reading an unencrypted envelope ignores it.
func WithEncryptionKey(key []byte) ReaderOption {
	return func(c *config) error {
		if len(key) != 32 {
			return fmt.Errorf("%w: encryption key must be 32 bytes, got %d", errs.ErrDecryption, len(key))
		}
		c.key = key

		return nil
	}
}

// Reader decodes envelopes according to a fixed configuration.
type Reader struct {
	cfg config
}

// New builds a Reader from the given options.
func New(opts ...ReaderOption) (*Reader, error) {
	var cfg config
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	return &Reader{cfg: cfg}, nil
}

// ReadFromBytes decodes an envelope held entirely in memory. Reads are
// streaming-unaware: the whole envelope must already be in data.
func (r *Reader) ReadFromBytes(data []byte) (*snapshot.PackedSnapshot, error) {
	return snapshot.Decode(data, r.cfg.key)
}

// ReadFromFile reads path into memory and decodes it.
func (r *Reader) ReadFromFile(path string) (*snapshot.PackedSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read file: %w", errs.ErrIO, err)
	}

	return r.ReadFromBytes(data)
}
