package reader

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tx2pack/tx2pack/column"
	"github.com/tx2pack/tx2pack/format"
	"github.com/tx2pack/tx2pack/snapshot"
)

func TestReader_New_InvalidKeySize(t *testing.T) {
	_, err := New(WithEncryptionKey([]byte("short")))
	require.Error(t, err)
}

func TestReader_ReadFromBytes_EncryptedWithoutKeyFails(t *testing.T) {
	key := make([]byte, 32)
	s := &snapshot.PackedSnapshot{
		Archetypes:     []column.ComponentArchetype{},
		EntityMetadata: map[column.EntityID]column.EntityMetadata{},
	}

	data, err := snapshot.Encode(s, snapshot.EncodeOptions{Format: format.Binary, Compression: format.CompressionNone, Key: key})
	require.NoError(t, err)

	r, err := New()
	require.NoError(t, err)

	_, err = r.ReadFromBytes(data)
	require.Error(t, err)
}

func TestReader_ReadFromFile_MissingFile(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	_, err = r.ReadFromFile("/nonexistent/path/does-not-exist.tx2pack")
	require.Error(t, err)
}
