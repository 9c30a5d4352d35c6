package column

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tx2pack/tx2pack/format"
)

func positionArchetype() ComponentArchetype {
	return ComponentArchetype{
		ComponentID: "Position",
		EntityIDs:   []EntityID{1, 2},
		Data: NewStructOfArrays(StructOfArraysData{
			FieldNames: []string{"x", "y"},
			FieldTypes: []format.FieldType{format.F32, format.F32},
			FieldData: []FieldArray{
				{Tag: format.F32, F32: []float32{1.0, 2.0}},
				{Tag: format.F32, F32: []float32{3.0, 4.0}},
			},
		}),
	}
}

func TestComponentArchetype_Validate_OK(t *testing.T) {
	require.NoError(t, positionArchetype().Validate())
}

func TestComponentArchetype_Validate_DuplicateEntity(t *testing.T) {
	a := positionArchetype()
	a.EntityIDs = []EntityID{1, 1}
	require.Error(t, a.Validate())
}

func TestComponentArchetype_Validate_MisalignedColumn(t *testing.T) {
	a := positionArchetype()
	soa := a.Data.SoA
	soa.FieldData[0].F32 = []float32{1.0}
	a.Data.SoA = soa
	require.Error(t, a.Validate())
}

func TestComponentArchetype_Validate_EmptyComponentID(t *testing.T) {
	a := positionArchetype()
	a.ComponentID = ""
	require.Error(t, a.Validate())
}

func TestComponentArchetype_Blob(t *testing.T) {
	a := ComponentArchetype{
		ComponentID: "Opaque",
		EntityIDs:   []EntityID{5},
		Data:        NewBlob([]byte{0xDE, 0xAD, 0xBE, 0xEF}),
	}
	require.NoError(t, a.Validate())
}

func TestValidateArchetypes_DuplicateComponentID(t *testing.T) {
	a := positionArchetype()
	b := positionArchetype()
	err := ValidateArchetypes([]ComponentArchetype{a, b})
	require.Error(t, err)
}

func TestSortedComponentIDs(t *testing.T) {
	archetypes := []ComponentArchetype{
		{ComponentID: "Zeta"},
		{ComponentID: "Alpha"},
		{ComponentID: "Mid"},
	}
	require.Equal(t, []ComponentID{"Alpha", "Mid", "Zeta"}, SortedComponentIDs(archetypes))
}

func TestSortedEntityIDs(t *testing.T) {
	metadata := map[EntityID]EntityMetadata{
		30: {Generation: 1},
		10: {Generation: 1},
		20: {Generation: 1},
	}
	require.Equal(t, []EntityID{10, 20, 30}, SortedEntityIDs(metadata))
}

func TestSortArchetypesByComponentID_DoesNotMutateInput(t *testing.T) {
	archetypes := []ComponentArchetype{
		{ComponentID: "Zeta"},
		{ComponentID: "Alpha"},
	}
	sorted := SortArchetypesByComponentID(archetypes)
	require.Equal(t, "Alpha", sorted[0].ComponentID)
	require.Equal(t, "Zeta", archetypes[0].ComponentID, "input slice order must be unchanged")
}

func TestFieldArray_Len(t *testing.T) {
	cases := []struct {
		name string
		fa   FieldArray
		want int
	}{
		{"bool", FieldArray{Tag: format.Bool, Bool: []bool{true, false, true}}, 3},
		{"string", FieldArray{Tag: format.String, Str: []string{"a", "b"}}, 2},
		{"bytes", FieldArray{Tag: format.Bytes, Bytes: [][]byte{{1}, {2}}}, 2},
		{"f64", FieldArray{Tag: format.F64, F64: []float64{1, 2, 3, 4}}, 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.fa.Len())
		})
	}
}
