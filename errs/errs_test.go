package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKind_String(t *testing.T) {
	require.Equal(t, "ChecksumMismatch", KindChecksumMismatch.String())
	require.Equal(t, "Unknown", Kind(255).String())
}

func TestVersionMismatchError(t *testing.T) {
	err := NewVersionMismatch(1, 2)

	var vm *VersionMismatchError
	require.True(t, errors.As(err, &vm))
	require.Equal(t, uint32(1), vm.Expected)
	require.Equal(t, uint32(2), vm.Actual)
	require.Equal(t, KindVersionMismatch, vm.Kind())
}

func TestSnapshotNotFoundError(t *testing.T) {
	err := NewSnapshotNotFound("abc")

	var nf *SnapshotNotFoundError
	require.True(t, errors.As(err, &nf))
	require.Equal(t, "abc", nf.ID)
	require.Contains(t, err.Error(), "abc")
}

func TestInvalidCheckpointError_Is(t *testing.T) {
	err := NewInvalidCheckpoint("duplicate id")
	require.True(t, errors.Is(err, ErrInvalidCheckpoint))

	var ic *InvalidCheckpointError
	require.True(t, errors.As(err, &ic))
	require.Equal(t, "duplicate id", ic.Reason)
}

func TestWrap(t *testing.T) {
	require.NoError(t, Wrap(nil, "context"))

	wrapped := Wrap(ErrIO, "reading file")
	require.True(t, errors.Is(wrapped, ErrIO))
	require.Contains(t, wrapped.Error(), "reading file")
}
