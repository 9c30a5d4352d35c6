package timeline

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tx2pack/tx2pack/column"
	"github.com/tx2pack/tx2pack/format"
	"github.com/tx2pack/tx2pack/snapshot"
)

func snapshotAt(tag string) *snapshot.PackedSnapshot {
	return &snapshot.PackedSnapshot{
		Archetypes: []column.ComponentArchetype{
			{
				ComponentID: "Marker",
				EntityIDs:   []column.EntityID{1},
				Data: column.NewStructOfArrays(column.StructOfArraysData{
					FieldNames: []string{"tag"},
					FieldTypes: []format.FieldType{format.String},
					FieldData:  []column.FieldArray{{Tag: format.String, Str: []string{tag}}},
				}),
			},
		},
		EntityMetadata: map[column.EntityID]column.EntityMetadata{},
	}
}

func TestStore_SeekToTime_Empty(t *testing.T) {
	s := New()
	_, ok := s.SeekToTime(5)
	require.False(t, ok)
}

func TestStore_Record_RejectsNaN(t *testing.T) {
	s := New()
	require.Error(t, s.Record(math.NaN(), snapshotAt("x")))
}

func TestStore_Record_SortedOrder(t *testing.T) {
	s := New()
	require.NoError(t, s.Record(5, snapshotAt("five")))
	require.NoError(t, s.Record(1, snapshotAt("one")))
	require.NoError(t, s.Record(3, snapshotAt("three")))

	entries := s.Snapshot()
	require.Len(t, entries, 3)
	require.Equal(t, []float64{1, 3, 5}, []float64{entries[0].TimeSeconds, entries[1].TimeSeconds, entries[2].TimeSeconds})
}

func TestStore_Record_NegativeTimesAllowed(t *testing.T) {
	s := New()
	require.NoError(t, s.Record(-10, snapshotAt("past")))
	require.Equal(t, 1, s.Len())
}

func TestStore_SeekToTime_Nearest(t *testing.T) {
	s := New()
	require.NoError(t, s.Record(1, snapshotAt("one")))
	require.NoError(t, s.Record(10, snapshotAt("ten")))

	entry, ok := s.SeekToTime(8)
	require.True(t, ok)
	require.Equal(t, float64(10), entry.TimeSeconds)
}

func TestStore_SeekToTime_TieBreaksEarlier(t *testing.T) {
	s := New()
	require.NoError(t, s.Record(4, snapshotAt("four")))
	require.NoError(t, s.Record(6, snapshotAt("six")))

	entry, ok := s.SeekToTime(5)
	require.True(t, ok)
	require.Equal(t, float64(4), entry.TimeSeconds)
}

func TestStore_ForkAtTime_IsIndependent(t *testing.T) {
	s := New()
	require.NoError(t, s.Record(1, snapshotAt("original")))

	forked, ok := s.ForkAtTime(1)
	require.True(t, ok)

	forked.Archetypes[0].Data.SoA.FieldData[0].Str[0] = "mutated"

	entry, _ := s.SeekToTime(1)
	require.Equal(t, "original", entry.Snapshot.Archetypes[0].Data.SoA.FieldData[0].Str[0])
}

func TestStore_PruneBeforeAfter(t *testing.T) {
	s := New()
	for _, tm := range []float64{1, 2, 3, 4, 5} {
		require.NoError(t, s.Record(tm, snapshotAt("x")))
	}

	s.PruneBefore(3)
	require.Equal(t, []float64{3, 4, 5}, times(s))

	s.PruneAfter(4)
	require.Equal(t, []float64{3, 4}, times(s))
}

func TestStore_Range(t *testing.T) {
	s := New()
	for _, tm := range []float64{1, 2, 3, 4, 5} {
		require.NoError(t, s.Record(tm, snapshotAt("x")))
	}

	r := s.Range(2, 4)
	require.Equal(t, []float64{2, 3, 4}, timesOf(r))
}

func times(s *Store) []float64 {
	return timesOf(s.Snapshot())
}

func timesOf(entries []TimeEntry) []float64 {
	out := make([]float64, len(entries))
	for i, e := range entries {
		out[i] = e.TimeSeconds
	}

	return out
}
