package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tx2pack/tx2pack/column"
	"github.com/tx2pack/tx2pack/reader"
	"github.com/tx2pack/tx2pack/snapshot"
	"github.com/tx2pack/tx2pack/writer"
)

func emptySnapshot() *snapshot.PackedSnapshot {
	return &snapshot.PackedSnapshot{
		Archetypes:     []column.ComponentArchetype{},
		EntityMetadata: map[column.EntityID]column.EntityMetadata{},
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "snapshots"))
	require.NoError(t, err)

	return s
}

func TestStore_SaveLoad_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	w, err := writer.New()
	require.NoError(t, err)
	r, err := reader.New()
	require.NoError(t, err)

	meta := SnapshotMetadata{ID: "save-001", Name: "checkpoint", CreatedAtUnix: 100, SchemaVersion: 1}
	require.NoError(t, s.Save(emptySnapshot(), meta, w))

	_, gotMeta, err := s.Load("save-001", r)
	require.NoError(t, err)
	require.Equal(t, meta, gotMeta)
}

func TestStore_Save_EmptyID(t *testing.T) {
	s := newTestStore(t)
	w, err := writer.New()
	require.NoError(t, err)

	err = s.Save(emptySnapshot(), SnapshotMetadata{}, w)
	require.Error(t, err)
}

func TestStore_Load_NotFound(t *testing.T) {
	s := newTestStore(t)
	r, err := reader.New()
	require.NoError(t, err)

	_, _, err = s.Load("missing", r)
	require.Error(t, err)
}

func TestStore_LoadMetadata_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	w, err := writer.New()
	require.NoError(t, err)

	meta := SnapshotMetadata{ID: "meta-001", Name: "checkpoint", CreatedAtUnix: 100, SchemaVersion: 1}
	require.NoError(t, s.Save(emptySnapshot(), meta, w))

	gotMeta, err := s.LoadMetadata("meta-001")
	require.NoError(t, err)
	require.Equal(t, meta, gotMeta)
}

func TestStore_LoadMetadata_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.LoadMetadata("missing")
	require.Error(t, err)
}

func TestStore_List_SortedByCreatedAt(t *testing.T) {
	s := newTestStore(t)
	w, err := writer.New()
	require.NoError(t, err)

	require.NoError(t, s.Save(emptySnapshot(), SnapshotMetadata{ID: "c", CreatedAtUnix: 30}, w))
	require.NoError(t, s.Save(emptySnapshot(), SnapshotMetadata{ID: "a", CreatedAtUnix: 10}, w))
	require.NoError(t, s.Save(emptySnapshot(), SnapshotMetadata{ID: "b", CreatedAtUnix: 20}, w))

	ids, err := s.List()
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, ids)
}

func TestStore_List_TiesBrokenByID(t *testing.T) {
	s := newTestStore(t)
	w, err := writer.New()
	require.NoError(t, err)

	require.NoError(t, s.Save(emptySnapshot(), SnapshotMetadata{ID: "zeta", CreatedAtUnix: 5}, w))
	require.NoError(t, s.Save(emptySnapshot(), SnapshotMetadata{ID: "alpha", CreatedAtUnix: 5}, w))

	ids, err := s.List()
	require.NoError(t, err)
	require.Equal(t, []string{"alpha", "zeta"}, ids)
}

func TestStore_Delete(t *testing.T) {
	s := newTestStore(t)
	w, err := writer.New()
	require.NoError(t, err)

	require.NoError(t, s.Save(emptySnapshot(), SnapshotMetadata{ID: "doomed", CreatedAtUnix: 1}, w))
	require.NoError(t, s.Delete("doomed"))

	ids, err := s.List()
	require.NoError(t, err)
	require.NotContains(t, ids, "doomed")
}

func TestStore_Delete_NotFound(t *testing.T) {
	s := newTestStore(t)
	require.Error(t, s.Delete("never-existed"))
}
