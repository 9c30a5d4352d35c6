// Package errs defines the error taxonomy shared by every tx2pack package:
// sentinel values for errors.Is checks, a Kind enum mirroring the exhaustive
// taxonomy of the container format, and typed errors for the variants that
// carry data (VersionMismatch, SnapshotNotFound, InvalidCheckpoint).
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies an error into one of the container format's exhaustive
// error categories. It is primarily useful for callers that want to branch
// on error class without enumerating every sentinel value.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindIO
	KindSerialization
	KindDeserialization
	KindCompression
	KindDecompression
	KindEncryption
	KindDecryption
	KindInvalidFormat
	KindVersionMismatch
	KindChecksumMismatch
	KindSnapshotNotFound
	KindInvalidCheckpoint
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "Io"
	case KindSerialization:
		return "Serialization"
	case KindDeserialization:
		return "Deserialization"
	case KindCompression:
		return "Compression"
	case KindDecompression:
		return "Decompression"
	case KindEncryption:
		return "Encryption"
	case KindDecryption:
		return "Decryption"
	case KindInvalidFormat:
		return "InvalidFormat"
	case KindVersionMismatch:
		return "VersionMismatch"
	case KindChecksumMismatch:
		return "ChecksumMismatch"
	case KindSnapshotNotFound:
		return "SnapshotNotFound"
	case KindInvalidCheckpoint:
		return "InvalidCheckpoint"
	default:
		return "Unknown"
	}
}

// Sentinel errors for errors.Is comparisons. Wrap these with fmt.Errorf's
// %w verb to add context without losing the ability to test error class.
var (
	ErrIO                = errors.New("tx2pack: i/o failed")
	ErrSerialization     = errors.New("tx2pack: serialization failed")
	ErrDeserialization   = errors.New("tx2pack: deserialization failed")
	ErrCompression       = errors.New("tx2pack: compression failed")
	ErrDecompression     = errors.New("tx2pack: decompression failed")
	ErrEncryption        = errors.New("tx2pack: encryption failed")
	ErrDecryption        = errors.New("tx2pack: decryption failed")
	ErrInvalidFormat     = errors.New("tx2pack: invalid format")
	ErrChecksumMismatch  = errors.New("tx2pack: checksum mismatch")
	ErrInvalidHeaderSize = errors.New("tx2pack: invalid header size")

	ErrInvalidCheckpoint = errors.New("tx2pack: invalid checkpoint")
)

// VersionMismatchError reports a header version the implementation does not
// support. Kind() is KindVersionMismatch.
type VersionMismatchError struct {
	Expected uint32
	Actual   uint32
}

func (e *VersionMismatchError) Error() string {
	return fmt.Sprintf("tx2pack: version mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *VersionMismatchError) Kind() Kind { return KindVersionMismatch }

// NewVersionMismatch constructs a VersionMismatchError.
func NewVersionMismatch(expected, actual uint32) error {
	return &VersionMismatchError{Expected: expected, Actual: actual}
}

// SnapshotNotFoundError reports a missing store/manager lookup.
type SnapshotNotFoundError struct {
	ID string
}

func (e *SnapshotNotFoundError) Error() string {
	return fmt.Sprintf("tx2pack: snapshot not found: %s", e.ID)
}

func (e *SnapshotNotFoundError) Kind() Kind { return KindSnapshotNotFound }

// NewSnapshotNotFound constructs a SnapshotNotFoundError.
func NewSnapshotNotFound(id string) error {
	return &SnapshotNotFoundError{ID: id}
}

// InvalidCheckpointError reports a checkpoint-layer constraint violation:
// duplicate id, missing parent, a cycle, or an out-of-range cursor seek.
type InvalidCheckpointError struct {
	Reason string
}

func (e *InvalidCheckpointError) Error() string {
	return fmt.Sprintf("tx2pack: invalid checkpoint: %s", e.Reason)
}

func (e *InvalidCheckpointError) Kind() Kind { return KindInvalidCheckpoint }

func (e *InvalidCheckpointError) Is(target error) bool {
	return target == ErrInvalidCheckpoint
}

// NewInvalidCheckpoint constructs an InvalidCheckpointError.
func NewInvalidCheckpoint(reason string) error {
	return &InvalidCheckpointError{Reason: reason}
}

// Wrap annotates err with a message while preserving errors.Is/As behavior
// via %w. A no-op if err is nil.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%s: %w", msg, err)
}
