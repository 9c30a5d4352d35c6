// Package column implements the columnar struct-of-arrays data model of a
// PackedSnapshot: typed FieldArray columns, the ComponentData tagged union
// (typed StructOfArrays vs opaque Blob), ComponentArchetype grouping, and
// per-entity EntityMetadata.
//
// Dynamic dispatch is replaced by the closed format.FieldType tag: a
// FieldArray carries exactly one populated slice, selected by Tag.
package column

import (
	"fmt"
	"sort"

	"github.com/tx2pack/tx2pack/errs"
	"github.com/tx2pack/tx2pack/format"
)

// EntityID is the opaque 64-bit entity handle.
type EntityID = uint64

// ComponentID is the textual, per-snapshot-unique component family name.
type ComponentID = string

// FieldArray is a typed, homogeneous column: exactly one of the typed
// slices below is non-nil, selected by Tag, and its length is the
// archetype's entity count.
type FieldArray struct {
	Tag format.FieldType

	Bool  []bool
	I8    []int8
	I16   []int16
	I32   []int32
	I64   []int64
	U8    []uint8
	U16   []uint16
	U32   []uint32
	U64   []uint64
	F32   []float32
	F64   []float64
	Str   []string
	Bytes [][]byte
}

// Len returns the number of elements in the column, regardless of Tag.
func (f FieldArray) Len() int {
	switch f.Tag {
	case format.Bool:
		return len(f.Bool)
	case format.I8:
		return len(f.I8)
	case format.I16:
		return len(f.I16)
	case format.I32:
		return len(f.I32)
	case format.I64:
		return len(f.I64)
	case format.U8:
		return len(f.U8)
	case format.U16:
		return len(f.U16)
	case format.U32:
		return len(f.U32)
	case format.U64:
		return len(f.U64)
	case format.F32:
		return len(f.F32)
	case format.F64:
		return len(f.F64)
	case format.String:
		return len(f.Str)
	case format.Bytes:
		return len(f.Bytes)
	default:
		return 0
	}
}

// StructOfArraysData is the parallel-triple layout: field i's name is
// FieldNames[i], typed FieldTypes[i], stored in FieldData[i].
type StructOfArraysData struct {
	FieldNames []string
	FieldTypes []format.FieldType
	FieldData  []FieldArray
}

// Validate checks the parallel-triple invariant and that every column has
// exactly entityCount rows.
func (s StructOfArraysData) Validate(entityCount int) error {
	if len(s.FieldNames) != len(s.FieldTypes) || len(s.FieldTypes) != len(s.FieldData) {
		return fmt.Errorf("%w: struct-of-arrays field_names/field_types/field_data length mismatch", errs.ErrInvalidFormat)
	}

	for i, col := range s.FieldData {
		if col.Tag != s.FieldTypes[i] {
			return fmt.Errorf("%w: column %d tag %s does not match declared type %s", errs.ErrInvalidFormat, i, col.Tag, s.FieldTypes[i])
		}
		if !col.Tag.Valid() {
			return fmt.Errorf("%w: column %d has invalid field type %d", errs.ErrInvalidFormat, i, col.Tag)
		}
		if col.Len() != entityCount {
			return fmt.Errorf("%w: column %q has %d rows, want %d", errs.ErrInvalidFormat, s.FieldNames[i], col.Len(), entityCount)
		}
	}

	return nil
}

// ComponentKind discriminates the ComponentData tagged union.
type ComponentKind uint8

const (
	KindStructOfArrays ComponentKind = iota + 1
	KindBlob
)

// ComponentData is either a typed StructOfArrays or an opaque Blob,
// depending on whether the caller registered a typed schema for this
// component family.
type ComponentData struct {
	Kind ComponentKind
	SoA  StructOfArraysData // valid when Kind == KindStructOfArrays
	Blob []byte             // valid when Kind == KindBlob
}

// NewStructOfArrays wraps typed columnar data.
func NewStructOfArrays(s StructOfArraysData) ComponentData {
	return ComponentData{Kind: KindStructOfArrays, SoA: s}
}

// NewBlob wraps an opaque, caller-encoded component payload.
func NewBlob(b []byte) ComponentData {
	return ComponentData{Kind: KindBlob, Blob: b}
}

// ComponentArchetype groups one component family's rows: entity_ids[k]
// corresponds to row k of every column in Data.
type ComponentArchetype struct {
	ComponentID ComponentID
	EntityIDs   []EntityID
	Data        ComponentData
}

// Validate checks: no duplicate entity ids, and (for StructOfArrays data)
// that every column is aligned to len(EntityIDs).
func (a ComponentArchetype) Validate() error {
	if a.ComponentID == "" {
		return fmt.Errorf("%w: archetype has empty component id", errs.ErrInvalidFormat)
	}

	seen := make(map[EntityID]struct{}, len(a.EntityIDs))
	for _, id := range a.EntityIDs {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: archetype %q has duplicate entity id %d", errs.ErrInvalidFormat, a.ComponentID, id)
		}
		seen[id] = struct{}{}
	}

	if a.Data.Kind == KindStructOfArrays {
		if err := a.Data.SoA.Validate(len(a.EntityIDs)); err != nil {
			return fmt.Errorf("archetype %q: %w", a.ComponentID, err)
		}
	}

	return nil
}

// EntityMetadata is per-entity sidecar information: generation counter,
// flags, and an optional name.
type EntityMetadata struct {
	Generation uint32
	Flags      uint32
	HasName    bool
	Name       string
}

// ValidateArchetypes checks every archetype individually and that
// component ids are unique across the set (archetypes are keyed uniquely
// by component id within a snapshot).
func ValidateArchetypes(archetypes []ComponentArchetype) error {
	seen := make(map[ComponentID]struct{}, len(archetypes))
	for _, a := range archetypes {
		if err := a.Validate(); err != nil {
			return err
		}
		if _, dup := seen[a.ComponentID]; dup {
			return fmt.Errorf("%w: duplicate component id %q", errs.ErrInvalidFormat, a.ComponentID)
		}
		seen[a.ComponentID] = struct{}{}
	}

	return nil
}

// SortedComponentIDs returns the archetypes' component ids sorted
// lexicographically, for deterministic encode ordering.
func SortedComponentIDs(archetypes []ComponentArchetype) []ComponentID {
	ids := make([]ComponentID, len(archetypes))
	for i, a := range archetypes {
		ids[i] = a.ComponentID
	}
	sort.Strings(ids)

	return ids
}

// SortedEntityIDs returns the keys of an entity metadata map sorted
// numerically ascending, for deterministic encode ordering.
func SortedEntityIDs(metadata map[EntityID]EntityMetadata) []EntityID {
	ids := make([]EntityID, 0, len(metadata))
	for id := range metadata {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids
}

// SortArchetypesByComponentID returns a new slice of archetypes ordered by
// ComponentID ascending, without mutating the input.
func SortArchetypesByComponentID(archetypes []ComponentArchetype) []ComponentArchetype {
	out := make([]ComponentArchetype, len(archetypes))
	copy(out, archetypes)
	sort.Slice(out, func(i, j int) bool { return out[i].ComponentID < out[j].ComponentID })

	return out
}
