package render_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/structgen/internal/codegen/model"
	"github.com/Alia5/structgen/internal/codegen/render"
	"github.com/Alia5/structgen/internal/codegen/typemap"
)

const testTemplate = `{{.Header}}
{{- range .Structs}}
{{- if .Desc}}
{{comment "#" .Desc}}
{{- end}}
struct {{.Name}}
{{- range .Members}}
  {{.Name}}: {{.Type}}{{subscripts .Dims}}
{{- end}}
end
{{- end}}
strings={{.HasStrings}} guard={{.Guard}}
`

var testTypes = typemap.Table{
	"i8": "I8", "i16": "I16", "i32": "I32", "i64": "I64",
	"u8": "U8", "u16": "U16", "u32": "U32", "u64": "U64",
	"f32": "F32", "f64": "F64", "bool": "Bool", "String": "Str",
}

func testDialect() *render.Dialect {
	d := render.NewDialect("test", "txt", "#", testTypes, nil, testTemplate)
	d.Ident = func(s string) string {
		if s == "type" {
			return "type_"
		}
		return s
	}
	return d
}

func TestRender(t *testing.T) {
	m := model.MustNew("demoModel",
		model.StructModel{Name: "Point", Desc: "2D point\nin pixels", Fields: []model.FieldModel{
			{Name: "x", Kind: model.Primitive{Type: "i32"}},
			{Name: "y", Kind: model.Primitive{Type: "int32"}},
		}},
		model.StructModel{Name: "Shape", Fields: []model.FieldModel{
			{Name: "type", Kind: model.Primitive{Type: "String"}},
			{Name: "origin", Kind: model.StructRef{Name: "Point"}},
			{Name: "corners", Kind: model.ArrayOf(model.StructRef{Name: "Point"}, 4)},
			{Name: "grid", Kind: model.ArrayOf(model.ArrayOf(model.Primitive{Type: "f64"}, 3), 2)},
		}},
	)

	out, err := render.Render(m, []string{"Point", "Shape"}, testDialect(), render.Options{})
	require.NoError(t, err)

	want := `# Generated with structgen
# model : demoModel
# 2D point
# in pixels
struct Point
  x: I32
  y: I32
end
struct Shape
  type_: Str
  origin: Point
  corners: Point[4]
  grid: F64[2][3]
end
strings=true guard=DEMO_MODEL_INTERFACE_H
`
	assert.Equal(t, want, out)
}

func TestRenderHonorsOrderArgument(t *testing.T) {
	m := model.MustNew("m",
		model.StructModel{Name: "A"},
		model.StructModel{Name: "B"},
	)

	out, err := render.Render(m, []string{"B"}, testDialect(), render.Options{Banner: "custom"})
	require.NoError(t, err)
	assert.Equal(t, "# custom\n# model : m\nstruct B\nend\nstrings=false guard=M_INTERFACE_H\n", out)
}

func TestRenderUnsupportedType(t *testing.T) {
	m := model.MustNew("m", model.StructModel{Name: "A", Fields: []model.FieldModel{
		{Name: "ok", Kind: model.Primitive{Type: "u8"}},
		{Name: "bad", Kind: model.ArrayOf(model.Primitive{Type: "u128"}, 2)},
	}})

	out, err := render.Render(m, []string{"A"}, testDialect(), render.Options{})
	assert.Empty(t, out)

	unsupported, ok := err.(*typemap.UnsupportedTypeError)
	require.True(t, ok, "want an unwrapped UnsupportedTypeError, got %T", err)
	assert.Equal(t, "u128", unsupported.Type)
	assert.Equal(t, "A", unsupported.Struct)
	assert.Equal(t, "bad", unsupported.Field)
	assert.EqualError(t, err, `struct A field bad: unsupported primitive type "u128"`)
}

func TestRenderUnknownStruct(t *testing.T) {
	m := model.MustNew("m", model.StructModel{Name: "A"})
	_, err := render.Render(m, []string{"Nope"}, testDialect(), render.Options{})
	assert.EqualError(t, err, "struct Nope is not part of model m")
}

func TestRenderFingerprint(t *testing.T) {
	m := model.MustNew("m", model.StructModel{Name: "A"})
	out, err := render.Render(m, []string{"A"}, testDialect(), render.Options{Fingerprint: "abc123"})
	require.NoError(t, err)
	assert.Equal(t, "# Generated with structgen\n# model : m\n# source : abc123\nstruct A\nend\nstrings=false guard=M_INTERFACE_H\n", out)
}

func TestRenderEscapesStructNames(t *testing.T) {
	m := model.MustNew("m",
		model.StructModel{Name: "type", Fields: []model.FieldModel{
			{Name: "v", Kind: model.Primitive{Type: "u8"}},
		}},
		model.StructModel{Name: "Holder", Fields: []model.FieldModel{
			{Name: "one", Kind: model.StructRef{Name: "type"}},
			{Name: "many", Kind: model.ArrayOf(model.StructRef{Name: "type"}, 2)},
		}},
	)

	out, err := render.Render(m, []string{"type", "Holder"}, testDialect(), render.Options{})
	require.NoError(t, err)
	assert.Equal(t, "# Generated with structgen\n# model : m\nstruct type_\n  v: U8\nend\nstruct Holder\n  one: type_\n  many: type_[2]\nend\nstrings=false guard=M_INTERFACE_H\n", out)
}

func TestRenderNameCollisions(t *testing.T) {
	t.Run("fields", func(t *testing.T) {
		m := model.MustNew("m", model.StructModel{Name: "A", Fields: []model.FieldModel{
			{Name: "type", Kind: model.Primitive{Type: "u8"}},
			{Name: "type_", Kind: model.Primitive{Type: "u8"}},
		}})
		out, err := render.Render(m, []string{"A"}, testDialect(), render.Options{})
		assert.Empty(t, out)

		var collision *render.NameCollisionError
		require.True(t, errors.As(err, &collision))
		assert.Equal(t, "A", collision.Struct)
		assert.Equal(t, "type", collision.Other)
		assert.Equal(t, "type_", collision.Field)
		assert.Equal(t, "type_", collision.Name)
		assert.EqualError(t, err, "struct A: fields type and type_ both render as type_")
	})

	t.Run("structs", func(t *testing.T) {
		m := model.MustNew("m", model.StructModel{Name: "type_"}, model.StructModel{Name: "type"})
		out, err := render.Render(m, []string{"type_", "type"}, testDialect(), render.Options{})
		assert.Empty(t, out)
		assert.EqualError(t, err, "structs type_ and type both render as type_")
	})
}
