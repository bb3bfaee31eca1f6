package model_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/structgen/internal/codegen/model"
)

func TestReferences(t *testing.T) {
	s := model.StructModel{
		Name: "Frame",
		Fields: []model.FieldModel{
			{Name: "id", Kind: model.Primitive{Type: "u32"}},
			{Name: "origin", Kind: model.StructRef{Name: "Point"}},
			{Name: "edges", Kind: model.ArrayOf(model.StructRef{Name: "Line"}, 4)},
			{Name: "corner", Kind: model.StructRef{Name: "Point"}},
			{Name: "grid", Kind: model.ArrayOf(model.ArrayOf(model.StructRef{Name: "Cell"}, 3), 2)},
		},
	}

	assert.Equal(t, []string{"Point", "Line", "Cell"}, s.References())
	assert.Empty(t, model.StructModel{Name: "Empty"}.References())
}

func TestFlatten(t *testing.T) {
	tests := []struct {
		name     string
		kind     model.FieldKind
		wantBase model.FieldKind
		wantDims []int
	}{
		{"primitive", model.Primitive{Type: "f32"}, model.Primitive{Type: "f32"}, nil},
		{"single array", model.ArrayOf(model.Primitive{Type: "u8"}, 16), model.Primitive{Type: "u8"}, []int{16}},
		{"multi dim", model.ArrayOf(model.Primitive{Type: "f64"}, 2, 3), model.Primitive{Type: "f64"}, []int{2, 3}},
		{
			"nested arrays compose outer first",
			model.ArrayOf(model.ArrayOf(model.StructRef{Name: "P"}, 3), 2),
			model.StructRef{Name: "P"},
			[]int{2, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, dims := model.Flatten(tt.kind)
			assert.Equal(t, tt.wantBase, base)
			assert.Equal(t, tt.wantDims, dims)
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "f32[2][3]", model.ArrayOf(model.Primitive{Type: "f32"}, 2, 3).String())
	assert.Equal(t, "Point[4]", model.ArrayOf(model.StructRef{Name: "Point"}, 4).String())
}

func TestNewKeepsInsertionOrder(t *testing.T) {
	m, err := model.New("demo",
		model.StructModel{Name: "Zeta"},
		model.StructModel{Name: "Alpha"},
		model.StructModel{Name: "Mid"},
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"Zeta", "Alpha", "Mid"}, m.Names())
	assert.Equal(t, 3, m.Len())

	s, ok := m.Lookup("Alpha")
	assert.True(t, ok)
	assert.Equal(t, "Alpha", s.Name)

	_, ok = m.Lookup("Missing")
	assert.False(t, ok)
}

func TestNewRejectsBadStructNames(t *testing.T) {
	_, err := model.New("demo", model.StructModel{Name: "A"}, model.StructModel{Name: "A"})
	var verr *model.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "A", verr.Struct)
	assert.EqualError(t, err, "invalid struct A: struct already defined")

	_, err = model.New("demo", model.StructModel{Name: ""})
	assert.EqualError(t, err, "invalid model: struct name is empty")
}

func TestValidate(t *testing.T) {
	point := model.StructModel{
		Name: "Point",
		Fields: []model.FieldModel{
			{Name: "x", Kind: model.Primitive{Type: "i32"}},
			{Name: "y", Kind: model.Primitive{Type: "i32"}},
		},
	}

	tests := []struct {
		name    string
		model   *model.Model
		wantErr string
	}{
		{
			name:  "valid",
			model: model.MustNew("demo", point, model.StructModel{Name: "Line", Fields: []model.FieldModel{{Name: "a", Kind: model.StructRef{Name: "Point"}}}}),
		},
		{
			name:    "empty model name",
			model:   model.MustNew("", point),
			wantErr: "invalid model: model name is empty",
		},
		{
			name: "dangling reference",
			model: model.MustNew("demo", model.StructModel{Name: "Line", Fields: []model.FieldModel{
				{Name: "a", Kind: model.StructRef{Name: "Point"}},
			}}),
			wantErr: "struct Line field a references undefined struct Point",
		},
		{
			name: "dangling reference inside array",
			model: model.MustNew("demo", model.StructModel{Name: "Poly", Fields: []model.FieldModel{
				{Name: "pts", Kind: model.ArrayOf(model.StructRef{Name: "Vertex"}, 8)},
			}}),
			wantErr: "struct Poly field pts references undefined struct Vertex",
		},
		{
			name: "duplicate field",
			model: model.MustNew("demo", model.StructModel{Name: "P", Fields: []model.FieldModel{
				{Name: "x", Kind: model.Primitive{Type: "i32"}},
				{Name: "x", Kind: model.Primitive{Type: "i64"}},
			}}),
			wantErr: "invalid struct P field x: field already defined",
		},
		{
			name: "empty field name",
			model: model.MustNew("demo", model.StructModel{Name: "P", Fields: []model.FieldModel{
				{Name: "", Kind: model.Primitive{Type: "i32"}},
			}}),
			wantErr: "invalid struct P: field name is empty",
		},
		{
			name:    "struct name with leading digit",
			model:   model.MustNew("demo", model.StructModel{Name: "3d"}),
			wantErr: "invalid struct 3d: struct name is not an identifier",
		},
		{
			name: "field name with space",
			model: model.MustNew("demo", model.StructModel{Name: "P", Fields: []model.FieldModel{
				{Name: "my field", Kind: model.Primitive{Type: "i32"}},
			}}),
			wantErr: "invalid struct P field my field: field name is not an identifier",
		},
		{
			name: "field name with dash",
			model: model.MustNew("demo", model.StructModel{Name: "P", Fields: []model.FieldModel{
				{Name: "x-pos", Kind: model.Primitive{Type: "i32"}},
			}}),
			wantErr: "invalid struct P field x-pos: field name is not an identifier",
		},
		{
			name: "missing kind",
			model: model.MustNew("demo", model.StructModel{Name: "P", Fields: []model.FieldModel{
				{Name: "x"},
			}}),
			wantErr: "invalid struct P field x: field has no type",
		},
		{
			name: "array without dims",
			model: model.MustNew("demo", model.StructModel{Name: "P", Fields: []model.FieldModel{
				{Name: "v", Kind: model.Array{Elem: model.Primitive{Type: "f32"}}},
			}}),
			wantErr: "invalid struct P field v: array has no dimensions",
		},
		{
			name: "zero dimension",
			model: model.MustNew("demo", model.StructModel{Name: "P", Fields: []model.FieldModel{
				{Name: "v", Kind: model.ArrayOf(model.Primitive{Type: "f32"}, 3, 0)},
			}}),
			wantErr: "invalid struct P field v: dimension 1 is 0, must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.model.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestDanglingReferenceErrorFields(t *testing.T) {
	m := model.MustNew("demo", model.StructModel{Name: "Line", Fields: []model.FieldModel{
		{Name: "b", Kind: model.StructRef{Name: "Point"}},
	}})

	var dangling *model.DanglingReferenceError
	require.True(t, errors.As(m.Validate(), &dangling))
	assert.Equal(t, "Line", dangling.Struct)
	assert.Equal(t, "b", dangling.Field)
	assert.Equal(t, "Point", dangling.Missing)
}

func TestIsIdentifier(t *testing.T) {
	for name, want := range map[string]bool{
		"x":        true,
		"_private": true,
		"Point3":   true,
		"snake_1":  true,
		"":         false,
		"3d":       false,
		"my field": false,
		"a.b":      false,
		"r#type":   false,
		"café":     false,
	} {
		assert.Equal(t, want, model.IsIdentifier(name), name)
	}
}
