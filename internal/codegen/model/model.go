// Package model holds the language-agnostic description of the structs a
// generation run emits. A Model is built once, validated, and only read
// afterwards.
package model

import (
	"fmt"
)

// FieldModel describes a single struct member.
type FieldModel struct {
	Name string
	Kind FieldKind
	// Default is an optional literal checked by the IDL loaders; targets do
	// not render it.
	Default any
	Desc    string
}

// StructModel describes one struct. Field order is declaration order.
type StructModel struct {
	Name   string
	Desc   string
	Fields []FieldModel
}

// References returns the names of the structs this struct uses, directly or
// as array elements, in first-appearance order without duplicates.
func (s StructModel) References() []string {
	var refs []string
	seen := make(map[string]struct{})
	for _, f := range s.Fields {
		base, _ := Flatten(f.Kind)
		ref, ok := base.(StructRef)
		if !ok {
			continue
		}
		if _, dup := seen[ref.Name]; dup {
			continue
		}
		seen[ref.Name] = struct{}{}
		refs = append(refs, ref.Name)
	}
	return refs
}

// Model is a named, insertion-ordered set of structs.
type Model struct {
	Name    string
	structs []StructModel
	index   map[string]int
}

// New builds a Model. Struct order is preserved and drives the tie-break of
// dependency ordering. Duplicate or empty struct names are rejected here;
// everything else is checked by Validate.
func New(name string, structs ...StructModel) (*Model, error) {
	m := &Model{
		Name:    name,
		structs: make([]StructModel, 0, len(structs)),
		index:   make(map[string]int, len(structs)),
	}
	for _, s := range structs {
		if err := m.add(s); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// MustNew is New for statically known models (tests, fixtures).
func MustNew(name string, structs ...StructModel) *Model {
	m, err := New(name, structs...)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *Model) add(s StructModel) error {
	if s.Name == "" {
		return &ValidationError{Reason: "struct name is empty"}
	}
	if _, dup := m.index[s.Name]; dup {
		return &ValidationError{Struct: s.Name, Reason: "struct already defined"}
	}
	m.index[s.Name] = len(m.structs)
	m.structs = append(m.structs, s)
	return nil
}

// Len returns the number of structs.
func (m *Model) Len() int { return len(m.structs) }

// Names returns struct names in insertion order.
func (m *Model) Names() []string {
	names := make([]string, len(m.structs))
	for i, s := range m.structs {
		names[i] = s.Name
	}
	return names
}

// Structs returns a copy of the structs in insertion order.
func (m *Model) Structs() []StructModel {
	out := make([]StructModel, len(m.structs))
	copy(out, m.structs)
	return out
}

// Lookup returns the struct with the given name.
func (m *Model) Lookup(name string) (StructModel, bool) {
	i, ok := m.index[name]
	if !ok {
		return StructModel{}, false
	}
	return m.structs[i], true
}

// IsIdentifier reports whether name matches [A-Za-z_][A-Za-z0-9_]*, the
// identifier syntax every target accepts.
func IsIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// Validate checks every struct and field: names are identifiers and unique,
// kinds are set, array dimensions are positive and every struct reference
// resolves. The first violation is returned.
func (m *Model) Validate() error {
	if m.Name == "" {
		return &ValidationError{Reason: "model name is empty"}
	}
	for _, s := range m.structs {
		if !IsIdentifier(s.Name) {
			return &ValidationError{Struct: s.Name, Reason: "struct name is not an identifier"}
		}
		seen := make(map[string]struct{}, len(s.Fields))
		for _, f := range s.Fields {
			if f.Name == "" {
				return &ValidationError{Struct: s.Name, Reason: "field name is empty"}
			}
			if !IsIdentifier(f.Name) {
				return &ValidationError{Struct: s.Name, Field: f.Name, Reason: "field name is not an identifier"}
			}
			if _, dup := seen[f.Name]; dup {
				return &ValidationError{Struct: s.Name, Field: f.Name, Reason: "field already defined"}
			}
			seen[f.Name] = struct{}{}
			if err := m.validateKind(s.Name, f.Name, f.Kind); err != nil {
				return err
			}
		}
	}
	return nil
}

func (m *Model) validateKind(structName, fieldName string, k FieldKind) error {
	switch k := k.(type) {
	case nil:
		return &ValidationError{Struct: structName, Field: fieldName, Reason: "field has no type"}
	case Primitive:
		if k.Type == "" {
			return &ValidationError{Struct: structName, Field: fieldName, Reason: "primitive type name is empty"}
		}
	case StructRef:
		if _, ok := m.index[k.Name]; !ok {
			return &DanglingReferenceError{Struct: structName, Field: fieldName, Missing: k.Name}
		}
	case Array:
		if len(k.Dims) == 0 {
			return &ValidationError{Struct: structName, Field: fieldName, Reason: "array has no dimensions"}
		}
		for i, d := range k.Dims {
			if d <= 0 {
				return &ValidationError{
					Struct: structName,
					Field:  fieldName,
					Reason: fmt.Sprintf("dimension %d is %d, must be positive", i, d),
				}
			}
		}
		return m.validateKind(structName, fieldName, k.Elem)
	default:
		return &ValidationError{Struct: structName, Field: fieldName, Reason: fmt.Sprintf("unknown field kind %T", k)}
	}
	return nil
}
