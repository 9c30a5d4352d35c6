// Package writer implements the Writer builder: an explicit, enumerated
// configuration of (format, compression, optional encryption key) that
// turns a PackedSnapshot into an on-disk or in-memory envelope.
//
// There is no global state and no per-call named parameters; every knob is
// set through a WriterOption at construction time.
package writer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tx2pack/tx2pack/errs"
	"github.com/tx2pack/tx2pack/format"
	"github.com/tx2pack/tx2pack/snapshot"
)

// config is the Writer's explicit, enumerated option set.
type config struct {
	format           format.SerializationFormat
	compression      format.CompressionType
	compressionLevel int
	key              []byte
}

// WriterOption configures a Writer at construction time.
type WriterOption func(*config) error

// WithFormat selects the body serialization format. Defaults to Binary.
func WithFormat(f format.SerializationFormat) WriterOption {
	return func(c *config) error {
		if !f.Valid() {
			return fmt.Errorf("%w: invalid serialization format %d", errs.ErrInvalidFormat, f)
		}
		c.format = f

		return nil
	}
}

// WithCompression selects the body compression codec and, for Zstd, its
// level (1..19; ignored for None and Lz4). Defaults to CompressionNone.
func WithCompression(compressionType format.CompressionType, level int) WriterOption {
	return func(c *config) error {
		if !compressionType.Valid() {
			return fmt.Errorf("%w: invalid compression type %d", errs.ErrInvalidFormat, compressionType)
		}
		c.compression = compressionType
		c.compressionLevel = level

		return nil
	}
}

// WithEncryptionKey enables AES-256-GCM encryption of the body under key,
// which must be exactly 32 bytes. Omit this option to write unencrypted.
func WithEncryptionKey(key []byte) WriterOption {
	return func(c *config) error {
		if len(key) != 32 {
			return fmt.Errorf("%w: encryption key must be 32 bytes, got %d", errs.ErrEncryption, len(key))
		}
		c.key = key

		return nil
	}
}

// Writer encodes PackedSnapshots according to a fixed configuration.
type Writer struct {
	cfg config
}

// New builds a Writer from the given options. The zero-value defaults are
// Binary format and no compression, no encryption.
func New(opts ...WriterOption) (*Writer, error) {
	cfg := config{format: format.Binary, compression: format.CompressionNone}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	return &Writer{cfg: cfg}, nil
}

// WriteToBytes encodes s and returns the envelope bytes directly.
func (w *Writer) WriteToBytes(s *snapshot.PackedSnapshot) ([]byte, error) {
	return snapshot.Encode(s, snapshot.EncodeOptions{
		Format:           w.cfg.format,
		Compression:      w.cfg.compression,
		CompressionLevel: w.cfg.compressionLevel,
		Key:              w.cfg.key,
	})
}

// WriteToFile encodes s and durably writes it to path: the envelope is
// written to "path.tmp" in the same directory, fsynced, then renamed over
// path, so a reader never observes a partially written file.
func (w *Writer) WriteToFile(s *snapshot.PackedSnapshot, path string) error {
	data, err := w.WriteToBytes(s)
	if err != nil {
		return err
	}

	tmpPath := path + ".tmp"

	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("%w: open temp file: %w", errs.ErrIO, err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmpPath)

		return fmt.Errorf("%w: write temp file: %w", errs.ErrIO, err)
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)

		return fmt.Errorf("%w: fsync temp file: %w", errs.ErrIO, err)
	}

	if err := f.Close(); err != nil {
		os.Remove(tmpPath)

		return fmt.Errorf("%w: close temp file: %w", errs.ErrIO, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)

		return fmt.Errorf("%w: rename temp file: %w", errs.ErrIO, err)
	}

	dir, err := os.Open(filepath.Dir(path))
	if err != nil {
		return nil // best-effort directory fsync; data is already durable via file fsync+rename
	}
	defer dir.Close()
	_ = dir.Sync()

	return nil
}
