// Package idl reads interface description files and normalizes them into a
// model.Model.
//
// Three encodings of the same document shape are supported: TOML, YAML and
// HCL. Each format-specific reader produces a rawDocument; build applies the
// shared checks (known types, positive dimensions, matching defaults) and
// constructs the model. Struct order always follows document order.
package idl

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Alia5/structgen/internal/codegen/model"
	"github.com/Alia5/structgen/internal/codegen/typemap"
)

// Error reports a malformed interface description.
type Error struct {
	File   string
	Reason string
}

func (e *Error) Error() string {
	if e.File == "" {
		return e.Reason
	}
	return e.File + ": " + e.Reason
}

// Format identifies an IDL encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatHCL  Format = "hcl"
)

// Extensions lists the file extensions Load understands.
var Extensions = []string{".toml", ".yaml", ".yml", ".hcl"}

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".hcl":
		return FormatHCL, nil
	default:
		return "", &Error{File: path, Reason: fmt.Sprintf("unknown interface file extension %q (expected one of %v)", filepath.Ext(path), Extensions)}
	}
}

// Load reads and parses an interface file, choosing the format by extension.
func Load(path string) (*model.Model, error) {
	m, _, err := ReadFile(path)
	return m, err
}

// ReadFile is Load that also returns the raw file contents, for callers that
// digest the source.
func ReadFile(path string) (*model.Model, []byte, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read interface file: %w", err)
	}
	m, err := Parse(format, path, data)
	if err != nil {
		return nil, nil, err
	}
	return m, data, nil
}

// Parse decodes data in the given format. file is only used in messages.
func Parse(format Format, file string, data []byte) (*model.Model, error) {
	var (
		doc *rawDocument
		err error
	)
	switch format {
	case FormatTOML:
		doc, err = readTOML(data)
	case FormatYAML:
		doc, err = readYAML(data)
	case FormatHCL:
		doc, err = readHCL(file, data)
	default:
		return nil, &Error{File: file, Reason: fmt.Sprintf("unsupported format %q", format)}
	}
	if err != nil {
		return nil, wrap(file, err)
	}
	m, err := build(doc)
	if err != nil {
		return nil, wrap(file, err)
	}
	return m, nil
}

func wrap(file string, err error) error {
	if e, ok := err.(*Error); ok {
		if e.File == "" {
			e.File = file
		}
		return e
	}
	return fmt.Errorf("%s: %w", file, err)
}

// rawDocument is the format-independent shape of an interface file.
type rawDocument struct {
	// Sections holds which of "model", "table", "message" are present.
	Sections  map[string]bool
	ModelName any
	HasTypes  bool
	Types     []rawType
}

type rawType struct {
	Name  string
	Table map[string]any
}

func errorf(format string, args ...any) error {
	return &Error{Reason: fmt.Sprintf(format, args...)}
}

func build(doc *rawDocument) (*model.Model, error) {
	count := 0
	for _, k := range []string{"model", "table", "message"} {
		if doc.Sections[k] {
			count++
		}
	}
	if count != 1 {
		return nil, errorf("exactly one of the following must be defined as a top level key: model, table, message")
	}
	switch {
	case doc.Sections["table"]:
		return nil, errorf("table is not implemented")
	case doc.Sections["message"]:
		return nil, errorf("message is not implemented")
	}
	if !doc.HasTypes {
		return nil, errorf("model interface contains no types table")
	}
	name, ok := doc.ModelName.(string)
	if !ok || name == "" {
		return nil, errorf("model interface does not properly define a name")
	}

	declared := make(map[string]bool, len(doc.Types))
	for _, t := range doc.Types {
		if declared[t.Name] {
			return nil, errorf("type %s already defined", t.Name)
		}
		declared[t.Name] = true
	}

	structs := make([]model.StructModel, 0, len(doc.Types))
	for _, t := range doc.Types {
		s, err := buildStruct(t, declared)
		if err != nil {
			return nil, err
		}
		structs = append(structs, s)
	}

	m, err := model.New(name, structs...)
	if err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func buildStruct(t rawType, declared map[string]bool) (model.StructModel, error) {
	s := model.StructModel{Name: t.Name}
	if t.Table == nil {
		return s, errorf("type %s is not a table", t.Name)
	}
	if desc, ok := t.Table["desc"]; ok {
		str, ok := desc.(string)
		if !ok {
			return s, errorf("struct %s defines desc but it is not a string", t.Name)
		}
		s.Desc = str
	}

	rawFields, ok := t.Table["fields"]
	if !ok {
		return s, errorf("struct %s is empty, did you mean to make a forward declaration?", t.Name)
	}
	list, ok := rawFields.([]any)
	if !ok {
		return s, errorf("struct %s fields is not an array", t.Name)
	}
	for _, rf := range list {
		tbl, ok := rf.(map[string]any)
		if !ok {
			return s, errorf("struct %s fields contains a value that is not a table", t.Name)
		}
		f, err := buildField(t.Name, tbl, declared)
		if err != nil {
			return s, err
		}
		s.Fields = append(s.Fields, f)
	}
	return s, nil
}

func buildField(structName string, tbl map[string]any, declared map[string]bool) (model.FieldModel, error) {
	var f model.FieldModel

	rawName, ok := tbl["name"]
	if !ok {
		return f, errorf("struct %s: field does not define name", structName)
	}
	name, ok := rawName.(string)
	if !ok {
		return f, errorf("struct %s: field name is not a string", structName)
	}
	f.Name = name

	rawTypeName, ok := tbl["type"]
	if !ok {
		return f, errorf("field %s does not define type", name)
	}
	typeName, ok := rawTypeName.(string)
	if !ok {
		return f, errorf("field %s type is not a string", name)
	}

	var base model.FieldKind
	isStruct := declared[typeName]
	switch {
	case isStruct:
		base = model.StructRef{Name: typeName}
	case typemap.IsPrimitive(typeName):
		base = model.Primitive{Type: typeName}
	default:
		return f, errorf("field %s has base type %q, which is undefined", name, typeName)
	}

	var dims []int
	if rawDims, ok := tbl["dims"]; ok {
		var err error
		if dims, err = parseDimensions(name, rawDims); err != nil {
			return f, err
		}
	}
	f.Kind = base
	if len(dims) > 0 {
		f.Kind = model.Array{Elem: base, Dims: dims}
	}

	if desc, ok := tbl["desc"]; ok {
		str, ok := desc.(string)
		if !ok {
			return f, errorf("field %s desc is not a string", name)
		}
		f.Desc = str
	}

	if def, ok := tbl["default"]; ok && def != nil {
		if isStruct {
			return f, errorf("field %s has a default but its type %s is a struct", name, typeName)
		}
		norm, err := validateDefault(name, typemap.ClassOf(typeName), dims, def)
		if err != nil {
			return f, err
		}
		f.Default = norm
	}
	return f, nil
}

func parseDimensions(field string, raw any) ([]int, error) {
	list, ok := raw.([]any)
	if !ok {
		return nil, errorf("field %s dims is not an array", field)
	}
	dims := make([]int, 0, len(list))
	for i, v := range list {
		d, ok := asInt(v)
		if !ok {
			return nil, errorf("field %s dims[%d] is not an integer", field, i)
		}
		if d <= 0 {
			return nil, errorf("field %s dims[%d] invalid: %d", field, i, d)
		}
		dims = append(dims, int(d))
	}
	return dims, nil
}
