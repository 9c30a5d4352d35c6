package writer

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tx2pack/tx2pack/column"
	"github.com/tx2pack/tx2pack/format"
	"github.com/tx2pack/tx2pack/reader"
	"github.com/tx2pack/tx2pack/snapshot"
)

func sampleSnapshot() *snapshot.PackedSnapshot {
	return &snapshot.PackedSnapshot{
		Archetypes: []column.ComponentArchetype{
			{
				ComponentID: "Health",
				EntityIDs:   []column.EntityID{1, 2},
				Data: column.NewStructOfArrays(column.StructOfArraysData{
					FieldNames: []string{"hp"},
					FieldTypes: []format.FieldType{format.I32},
					FieldData:  []column.FieldArray{{Tag: format.I32, I32: []int32{100, 50}}},
				}),
			},
		},
		EntityMetadata: map[column.EntityID]column.EntityMetadata{
			1: {Generation: 1},
			2: {Generation: 1},
		},
	}
}

func TestWriter_New_InvalidFormat(t *testing.T) {
	_, err := New(WithFormat(format.SerializationFormat(99)))
	require.Error(t, err)
}

func TestWriter_New_InvalidCompression(t *testing.T) {
	_, err := New(WithCompression(format.CompressionType(99), 1))
	require.Error(t, err)
}

func TestWriter_New_InvalidKeySize(t *testing.T) {
	_, err := New(WithEncryptionKey([]byte("short")))
	require.Error(t, err)
}

func TestWriter_WriteToBytes_ReaderRoundTrip(t *testing.T) {
	w, err := New(WithFormat(format.MessagePack), WithCompression(format.CompressionZstd, 5))
	require.NoError(t, err)

	data, err := w.WriteToBytes(sampleSnapshot())
	require.NoError(t, err)

	r, err := reader.New()
	require.NoError(t, err)

	out, err := r.ReadFromBytes(data)
	require.NoError(t, err)
	require.Equal(t, sampleSnapshot().EntityMetadata, out.EntityMetadata)
}

func TestWriter_WriteToFile_AtomicRoundTrip(t *testing.T) {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i * 3)
	}

	w, err := New(WithEncryptionKey(key))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "world.tx2pack")
	require.NoError(t, w.WriteToFile(sampleSnapshot(), path))

	r, err := reader.New(reader.WithEncryptionKey(key))
	require.NoError(t, err)

	out, err := r.ReadFromFile(path)
	require.NoError(t, err)
	require.Equal(t, sampleSnapshot().EntityMetadata, out.EntityMetadata)

	_, err = r.ReadFromFile(path + ".tmp")
	require.Error(t, err, "temp file must not survive a successful write")
}
