// Package tx2pack provides a binary snapshot format and storage layer for
// Entity-Component-System worlds: a self-describing, compressed,
// optionally authenticated-encrypted byte stream for durable persistence,
// checkpointing, and time-travel replay.
//
// # Core Features
//
//   - Columnar struct-of-arrays component storage (package column)
//   - Binary and MessagePack body serialization (package snapshot)
//   - Pluggable body compression: None, LZ4, Zstd (package compress)
//   - Optional AES-256-GCM encryption with a SHA-256 integrity checksum
//     (package cryptoseal)
//   - Directory-backed snapshot storage, named checkpoints, sequential
//     replay, and nearest-time lookup (packages store, checkpoint,
//     replay, timeline)
//
// This package provides convenient top-level constructors around those
// subpackages. For advanced usage, import the subpackages directly.
package tx2pack

import (
	"github.com/tx2pack/tx2pack/checkpoint"
	"github.com/tx2pack/tx2pack/reader"
	"github.com/tx2pack/tx2pack/replay"
	"github.com/tx2pack/tx2pack/snapshot"
	"github.com/tx2pack/tx2pack/store"
	"github.com/tx2pack/tx2pack/timeline"
	"github.com/tx2pack/tx2pack/writer"
)

// PackedSnapshot is the in-memory, columnar representation of a world
// snapshot.
type PackedSnapshot = snapshot.PackedSnapshot

// NewWriter builds a Writer configured by opts (format, compression,
// optional encryption key). Defaults to the Binary format, no
// compression, no encryption.
func NewWriter(opts ...writer.WriterOption) (*writer.Writer, error) {
	return writer.New(opts...)
}

// NewReader builds a Reader. Pass reader.WithEncryptionKey when the
// envelopes to be read may be encrypted.
func NewReader(opts ...reader.ReaderOption) (*reader.Reader, error) {
	return reader.New(opts...)
}

// OpenStore opens (creating if necessary) a directory-backed snapshot
// store rooted at dir.
func OpenStore(dir string) (*store.Store, error) {
	return store.New(dir)
}

// OpenCheckpointManager opens a directory of named, parent-linked
// checkpoints, rebuilding its index from the files already on disk.
func OpenCheckpointManager(dir string) (*checkpoint.Manager, error) {
	return checkpoint.New(dir)
}

// NewReplayCursor creates an empty replay cursor. Call LoadFromManager to
// populate it from a checkpoint.Manager.
func NewReplayCursor() *replay.Cursor {
	return replay.New()
}

// NewTimeTravelStore creates an empty time-travel store.
func NewTimeTravelStore() *timeline.Store {
	return timeline.New()
}
