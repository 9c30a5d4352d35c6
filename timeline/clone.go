package timeline

import (
	"github.com/tx2pack/tx2pack/column"
	"github.com/tx2pack/tx2pack/format"
	"github.com/tx2pack/tx2pack/snapshot"
)

// cloneSnapshot deep-copies s so a forked snapshot shares no backing
// arrays with the store, satisfying ForkAtTime's independence guarantee.
func cloneSnapshot(s *snapshot.PackedSnapshot) *snapshot.PackedSnapshot {
	if s == nil {
		return nil
	}

	archetypes := make([]column.ComponentArchetype, len(s.Archetypes))
	for i, a := range s.Archetypes {
		archetypes[i] = cloneArchetype(a)
	}

	metadata := make(map[column.EntityID]column.EntityMetadata, len(s.EntityMetadata))
	for id, m := range s.EntityMetadata {
		metadata[id] = m
	}

	return &snapshot.PackedSnapshot{Archetypes: archetypes, EntityMetadata: metadata}
}

func cloneArchetype(a column.ComponentArchetype) column.ComponentArchetype {
	entityIDs := make([]column.EntityID, len(a.EntityIDs))
	copy(entityIDs, a.EntityIDs)

	out := column.ComponentArchetype{ComponentID: a.ComponentID, EntityIDs: entityIDs}

	switch a.Data.Kind {
	case column.KindBlob:
		blob := make([]byte, len(a.Data.Blob))
		copy(blob, a.Data.Blob)
		out.Data = column.NewBlob(blob)
	case column.KindStructOfArrays:
		soa := a.Data.SoA
		names := make([]string, len(soa.FieldNames))
		copy(names, soa.FieldNames)
		types := make([]format.FieldType, len(soa.FieldTypes))
		copy(types, soa.FieldTypes)
		cols := make([]column.FieldArray, len(soa.FieldData))
		for i, f := range soa.FieldData {
			cols[i] = cloneFieldArray(f)
		}
		out.Data = column.NewStructOfArrays(column.StructOfArraysData{FieldNames: names, FieldTypes: types, FieldData: cols})
	}

	return out
}

func cloneFieldArray(f column.FieldArray) column.FieldArray {
	out := column.FieldArray{Tag: f.Tag}

	switch f.Tag {
	case format.Bool:
		out.Bool = append([]bool(nil), f.Bool...)
	case format.I8:
		out.I8 = append([]int8(nil), f.I8...)
	case format.I16:
		out.I16 = append([]int16(nil), f.I16...)
	case format.I32:
		out.I32 = append([]int32(nil), f.I32...)
	case format.I64:
		out.I64 = append([]int64(nil), f.I64...)
	case format.U8:
		out.U8 = append([]uint8(nil), f.U8...)
	case format.U16:
		out.U16 = append([]uint16(nil), f.U16...)
	case format.U32:
		out.U32 = append([]uint32(nil), f.U32...)
	case format.U64:
		out.U64 = append([]uint64(nil), f.U64...)
	case format.F32:
		out.F32 = append([]float32(nil), f.F32...)
	case format.F64:
		out.F64 = append([]float64(nil), f.F64...)
	case format.String:
		out.Str = append([]string(nil), f.Str...)
	case format.Bytes:
		out.Bytes = make([][]byte, len(f.Bytes))
		for i, b := range f.Bytes {
			out.Bytes[i] = append([]byte(nil), b...)
		}
	}

	return out
}
