package snapshot

import (
	"fmt"
	"math"

	"github.com/tx2pack/tx2pack/column"
	"github.com/tx2pack/tx2pack/endian"
	"github.com/tx2pack/tx2pack/errs"
	"github.com/tx2pack/tx2pack/format"
	"github.com/tx2pack/tx2pack/internal/pool"
)

// binaryEngine is the fixed little-endian byte order for the Binary body
// format; endianness is fixed, not per-snapshot.
func binaryEngine() endian.EndianEngine {
	return endian.GetLittleEndianEngine()
}

// encodeBinary serializes a wireBody using the hand-rolled Binary format:
// a flat, length-prefixed record stream with no external schema.
func encodeBinary(w wireBody) ([]byte, error) {
	buf := pool.GetSnapshotBuffer()
	defer pool.PutSnapshotBuffer(buf)

	e := binaryEngine()

	buf.B = e.AppendUint32(buf.B, uint32(len(w.Archetypes)))
	for _, a := range w.Archetypes {
		if err := encodeArchetype(&buf.B, e, a); err != nil {
			return nil, err
		}
	}

	buf.B = e.AppendUint32(buf.B, uint32(len(w.EntityMetadata)))
	for _, m := range w.EntityMetadata {
		buf.B = e.AppendUint64(buf.B, m.EntityID)
		buf.B = e.AppendUint32(buf.B, m.Generation)
		buf.B = e.AppendUint32(buf.B, m.Flags)
		buf.B = appendBool(buf.B, m.HasName)
		buf.B = appendString(buf.B, e, m.Name)
	}

	out := make([]byte, len(buf.B))
	copy(out, buf.B)

	return out, nil
}

func encodeArchetype(b *[]byte, e endian.EndianEngine, a column.ComponentArchetype) error {
	*b = appendString(*b, e, a.ComponentID)
	*b = e.AppendUint32(*b, uint32(len(a.EntityIDs)))
	for _, id := range a.EntityIDs {
		*b = e.AppendUint64(*b, id)
	}

	*b = append(*b, byte(a.Data.Kind))
	switch a.Data.Kind {
	case column.KindStructOfArrays:
		soa := a.Data.SoA
		*b = e.AppendUint32(*b, uint32(len(soa.FieldNames)))
		for i, name := range soa.FieldNames {
			*b = appendString(*b, e, name)
			*b = append(*b, byte(soa.FieldTypes[i]))
			if err := encodeFieldArray(b, e, soa.FieldData[i]); err != nil {
				return fmt.Errorf("archetype %q field %q: %w", a.ComponentID, name, err)
			}
		}
	case column.KindBlob:
		*b = appendBytesField(*b, e, a.Data.Blob)
	default:
		return fmt.Errorf("%w: unknown component data kind %d", errs.ErrSerialization, a.Data.Kind)
	}

	return nil
}

func encodeFieldArray(b *[]byte, e endian.EndianEngine, f column.FieldArray) error {
	switch f.Tag {
	case format.Bool:
		for _, v := range f.Bool {
			*b = appendBool(*b, v)
		}
	case format.I8:
		for _, v := range f.I8 {
			*b = append(*b, byte(v))
		}
	case format.I16:
		for _, v := range f.I16 {
			*b = e.AppendUint16(*b, uint16(v))
		}
	case format.I32:
		for _, v := range f.I32 {
			*b = e.AppendUint32(*b, uint32(v))
		}
	case format.I64:
		for _, v := range f.I64 {
			*b = e.AppendUint64(*b, uint64(v))
		}
	case format.U8:
		*b = append(*b, f.U8...)
	case format.U16:
		for _, v := range f.U16 {
			*b = e.AppendUint16(*b, v)
		}
	case format.U32:
		for _, v := range f.U32 {
			*b = e.AppendUint32(*b, v)
		}
	case format.U64:
		for _, v := range f.U64 {
			*b = e.AppendUint64(*b, v)
		}
	case format.F32:
		for _, v := range f.F32 {
			*b = e.AppendUint32(*b, math.Float32bits(v))
		}
	case format.F64:
		for _, v := range f.F64 {
			*b = e.AppendUint64(*b, math.Float64bits(v))
		}
	case format.String:
		for _, v := range f.Str {
			*b = appendString(*b, e, v)
		}
	case format.Bytes:
		for _, v := range f.Bytes {
			*b = appendBytesField(*b, e, v)
		}
	default:
		return fmt.Errorf("%w: invalid field type %d", errs.ErrSerialization, f.Tag)
	}

	return nil
}

func appendBool(b []byte, v bool) []byte {
	if v {
		return append(b, 1)
	}

	return append(b, 0)
}

func appendString(b []byte, e endian.EndianEngine, s string) []byte {
	b = e.AppendUint32(b, uint32(len(s)))

	return append(b, s...)
}

func appendBytesField(b []byte, e endian.EndianEngine, data []byte) []byte {
	b = e.AppendUint32(b, uint32(len(data)))

	return append(b, data...)
}

// binaryReader is a cursor over a Binary-encoded body buffer.
type binaryReader struct {
	data []byte
	off  int
	e    endian.EndianEngine
}

func newBinaryReader(data []byte) *binaryReader {
	return &binaryReader{data: data, e: binaryEngine()}
}

func (r *binaryReader) need(n int) error {
	if r.off+n > len(r.data) {
		return fmt.Errorf("%w: unexpected end of body", errs.ErrDeserialization)
	}

	return nil
}

func (r *binaryReader) readByte() (byte, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	v := r.data[r.off]
	r.off++

	return v, nil
}

func (r *binaryReader) readBool() (bool, error) {
	v, err := r.readByte()

	return v != 0, err
}

func (r *binaryReader) readUint16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := r.e.Uint16(r.data[r.off : r.off+2])
	r.off += 2

	return v, nil
}

func (r *binaryReader) readUint32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := r.e.Uint32(r.data[r.off : r.off+4])
	r.off += 4

	return v, nil
}

func (r *binaryReader) readUint64() (uint64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	v := r.e.Uint64(r.data[r.off : r.off+8])
	r.off += 8

	return v, nil
}

func (r *binaryReader) readString() (string, error) {
	n, err := r.readUint32()
	if err != nil {
		return "", err
	}
	if err := r.need(int(n)); err != nil {
		return "", err
	}
	s := string(r.data[r.off : r.off+int(n)])
	r.off += int(n)

	return s, nil
}

func (r *binaryReader) readBytesField() ([]byte, error) {
	n, err := r.readUint32()
	if err != nil {
		return nil, err
	}
	if err := r.need(int(n)); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, r.data[r.off:r.off+int(n)])
	r.off += int(n)

	return out, nil
}

// decodeBinary deserializes a wireBody from the Binary format.
func decodeBinary(data []byte) (wireBody, error) {
	r := newBinaryReader(data)

	archetypeCount, err := r.readUint32()
	if err != nil {
		return wireBody{}, err
	}

	archetypes := make([]column.ComponentArchetype, archetypeCount)
	for i := range archetypes {
		a, err := decodeArchetype(r)
		if err != nil {
			return wireBody{}, err
		}
		archetypes[i] = a
	}

	metaCount, err := r.readUint32()
	if err != nil {
		return wireBody{}, err
	}

	metas := make([]wireEntityMetadata, metaCount)
	for i := range metas {
		entityID, err := r.readUint64()
		if err != nil {
			return wireBody{}, err
		}
		gen, err := r.readUint32()
		if err != nil {
			return wireBody{}, err
		}
		flags, err := r.readUint32()
		if err != nil {
			return wireBody{}, err
		}
		hasName, err := r.readBool()
		if err != nil {
			return wireBody{}, err
		}
		name, err := r.readString()
		if err != nil {
			return wireBody{}, err
		}
		metas[i] = wireEntityMetadata{EntityID: entityID, Generation: gen, Flags: flags, HasName: hasName, Name: name}
	}

	return wireBody{Archetypes: archetypes, EntityMetadata: metas}, nil
}

func decodeArchetype(r *binaryReader) (column.ComponentArchetype, error) {
	componentID, err := r.readString()
	if err != nil {
		return column.ComponentArchetype{}, err
	}

	entityCount, err := r.readUint32()
	if err != nil {
		return column.ComponentArchetype{}, err
	}

	entityIDs := make([]column.EntityID, entityCount)
	for i := range entityIDs {
		id, err := r.readUint64()
		if err != nil {
			return column.ComponentArchetype{}, err
		}
		entityIDs[i] = id
	}

	kindByte, err := r.readByte()
	if err != nil {
		return column.ComponentArchetype{}, err
	}

	var data column.ComponentData
	switch column.ComponentKind(kindByte) {
	case column.KindStructOfArrays:
		fieldCount, err := r.readUint32()
		if err != nil {
			return column.ComponentArchetype{}, err
		}

		names := make([]string, fieldCount)
		types := make([]format.FieldType, fieldCount)
		cols := make([]column.FieldArray, fieldCount)
		for i := range names {
			name, err := r.readString()
			if err != nil {
				return column.ComponentArchetype{}, err
			}
			tagByte, err := r.readByte()
			if err != nil {
				return column.ComponentArchetype{}, err
			}
			tag := format.FieldType(tagByte)
			if !tag.Valid() {
				return column.ComponentArchetype{}, fmt.Errorf("%w: invalid field type %d", errs.ErrInvalidFormat, tagByte)
			}

			col, err := decodeFieldArray(r, tag, int(entityCount))
			if err != nil {
				return column.ComponentArchetype{}, fmt.Errorf("component %q field %q: %w", componentID, name, err)
			}

			names[i] = name
			types[i] = tag
			cols[i] = col
		}

		data = column.NewStructOfArrays(column.StructOfArraysData{FieldNames: names, FieldTypes: types, FieldData: cols})
	case column.KindBlob:
		blob, err := r.readBytesField()
		if err != nil {
			return column.ComponentArchetype{}, err
		}
		data = column.NewBlob(blob)
	default:
		return column.ComponentArchetype{}, fmt.Errorf("%w: unknown component data kind %d", errs.ErrInvalidFormat, kindByte)
	}

	return column.ComponentArchetype{ComponentID: componentID, EntityIDs: entityIDs, Data: data}, nil
}

func decodeFieldArray(r *binaryReader, tag format.FieldType, count int) (column.FieldArray, error) {
	fa := column.FieldArray{Tag: tag}

	switch tag {
	case format.Bool:
		fa.Bool = make([]bool, count)
		for i := range fa.Bool {
			v, err := r.readBool()
			if err != nil {
				return fa, err
			}
			fa.Bool[i] = v
		}
	case format.I8:
		fa.I8 = make([]int8, count)
		for i := range fa.I8 {
			v, err := r.readByte()
			if err != nil {
				return fa, err
			}
			fa.I8[i] = int8(v)
		}
	case format.I16:
		fa.I16 = make([]int16, count)
		for i := range fa.I16 {
			v, err := r.readUint16()
			if err != nil {
				return fa, err
			}
			fa.I16[i] = int16(v)
		}
	case format.I32:
		fa.I32 = make([]int32, count)
		for i := range fa.I32 {
			v, err := r.readUint32()
			if err != nil {
				return fa, err
			}
			fa.I32[i] = int32(v)
		}
	case format.I64:
		fa.I64 = make([]int64, count)
		for i := range fa.I64 {
			v, err := r.readUint64()
			if err != nil {
				return fa, err
			}
			fa.I64[i] = int64(v)
		}
	case format.U8:
		fa.U8 = make([]uint8, count)
		for i := range fa.U8 {
			v, err := r.readByte()
			if err != nil {
				return fa, err
			}
			fa.U8[i] = v
		}
	case format.U16:
		fa.U16 = make([]uint16, count)
		for i := range fa.U16 {
			v, err := r.readUint16()
			if err != nil {
				return fa, err
			}
			fa.U16[i] = v
		}
	case format.U32:
		fa.U32 = make([]uint32, count)
		for i := range fa.U32 {
			v, err := r.readUint32()
			if err != nil {
				return fa, err
			}
			fa.U32[i] = v
		}
	case format.U64:
		fa.U64 = make([]uint64, count)
		for i := range fa.U64 {
			v, err := r.readUint64()
			if err != nil {
				return fa, err
			}
			fa.U64[i] = v
		}
	case format.F32:
		fa.F32 = make([]float32, count)
		for i := range fa.F32 {
			v, err := r.readUint32()
			if err != nil {
				return fa, err
			}
			fa.F32[i] = math.Float32frombits(v)
		}
	case format.F64:
		fa.F64 = make([]float64, count)
		for i := range fa.F64 {
			v, err := r.readUint64()
			if err != nil {
				return fa, err
			}
			fa.F64[i] = math.Float64frombits(v)
		}
	case format.String:
		fa.Str = make([]string, count)
		for i := range fa.Str {
			v, err := r.readString()
			if err != nil {
				return fa, err
			}
			fa.Str[i] = v
		}
	case format.Bytes:
		fa.Bytes = make([][]byte, count)
		for i := range fa.Bytes {
			v, err := r.readBytesField()
			if err != nil {
				return fa, err
			}
			fa.Bytes[i] = v
		}
	default:
		return fa, fmt.Errorf("%w: invalid field type %d", errs.ErrInvalidFormat, tag)
	}

	return fa, nil
}
