// Package snapshot implements PackedSnapshot, the container body format,
// and the encode/decode pipeline that turns a PackedSnapshot into (and back
// from) the on-disk envelope.
package snapshot

import (
	"github.com/tx2pack/tx2pack/column"
)

// PackedSnapshot is the in-memory, pre-encoding representation of a world
// snapshot in columnar form. Once written it is never mutated in place; a
// loaded snapshot is handed to the caller immutable.
type PackedSnapshot struct {
	Archetypes     []column.ComponentArchetype
	EntityMetadata map[column.EntityID]column.EntityMetadata
}

// Stats summarizes a PackedSnapshot's shape: archetype count, total entity
// rows, for callers that want an at-a-glance report without re-parsing.
type Stats struct {
	ArchetypeCount int
	EntityCount    int // size of EntityMetadata
	TotalRows      int // sum of len(EntityIDs) across archetypes
}

// Stats computes summary counters over the snapshot without touching the
// encoded form.
func (s *PackedSnapshot) Stats() Stats {
	stats := Stats{
		ArchetypeCount: len(s.Archetypes),
		EntityCount:    len(s.EntityMetadata),
	}
	for _, a := range s.Archetypes {
		stats.TotalRows += len(a.EntityIDs)
	}

	return stats
}

// Validate checks the structural invariants of a decoded body: aligned
// column lengths, unique component ids, unique entity ids per archetype.
func (s *PackedSnapshot) Validate() error {
	return column.ValidateArchetypes(s.Archetypes)
}

// wireEntityMetadata is the deterministic, sorted-by-id wire shape of an
// EntityMetadata map entry. Go map iteration order is randomized per
// process, so both the Binary and MessagePack body codecs serialize this
// sorted slice form rather than the map directly.
type wireEntityMetadata struct {
	EntityID   column.EntityID `msgpack:"entity_id"`
	Generation uint32          `msgpack:"generation"`
	Flags      uint32          `msgpack:"flags"`
	HasName    bool            `msgpack:"has_name"`
	Name       string          `msgpack:"name"`
}

// wireBody is the canonical, deterministically-ordered serialization shape
// for a PackedSnapshot's body: (archetypes, entity_metadata), with
// archetypes sorted by ComponentID and entity metadata sorted by EntityID.
type wireBody struct {
	Archetypes     []column.ComponentArchetype `msgpack:"archetypes"`
	EntityMetadata []wireEntityMetadata        `msgpack:"entity_metadata"`
}

func toWireBody(s *PackedSnapshot) wireBody {
	sortedIDs := column.SortedEntityIDs(s.EntityMetadata)
	metas := make([]wireEntityMetadata, 0, len(sortedIDs))
	for _, id := range sortedIDs {
		m := s.EntityMetadata[id]
		metas = append(metas, wireEntityMetadata{
			EntityID:   id,
			Generation: m.Generation,
			Flags:      m.Flags,
			HasName:    m.HasName,
			Name:       m.Name,
		})
	}

	return wireBody{
		Archetypes:     column.SortArchetypesByComponentID(s.Archetypes),
		EntityMetadata: metas,
	}
}

func fromWireBody(w wireBody) *PackedSnapshot {
	metadata := make(map[column.EntityID]column.EntityMetadata, len(w.EntityMetadata))
	for _, m := range w.EntityMetadata {
		metadata[m.EntityID] = column.EntityMetadata{
			Generation: m.Generation,
			Flags:      m.Flags,
			HasName:    m.HasName,
			Name:       m.Name,
		}
	}

	return &PackedSnapshot{
		Archetypes:     w.Archetypes,
		EntityMetadata: metadata,
	}
}
