// Package typemap translates source primitive type names into the spelling
// of a target language.
//
// The supported primitives are the fixed-width integers (i8..i64, u8..u64),
// f32, f64, bool and String. Common aliases ("int32", "uint8", "float64",
// "string", ...) are folded to those canonical names before lookup.
package typemap

import (
	"fmt"
	"sort"
)

// Mapper maps a primitive source type to its target equivalent.
type Mapper interface {
	Map(source string) (string, error)
}

// UnsupportedTypeError is returned for a type name outside the supported set.
// Mappers only set Type; the renderer fills in where the type was used.
type UnsupportedTypeError struct {
	Type   string
	Struct string
	Field  string
}

func (e *UnsupportedTypeError) Error() string {
	if e.Struct == "" {
		return fmt.Sprintf("unsupported primitive type %q", e.Type)
	}
	return fmt.Sprintf("struct %s field %s: unsupported primitive type %q", e.Struct, e.Field, e.Type)
}

// Primitives lists the canonical source primitive names.
var Primitives = []string{
	"i8", "i16", "i32", "i64",
	"u8", "u16", "u32", "u64",
	"f32", "f64",
	"bool", "String",
}

var aliases = map[string]string{
	"int8": "i8", "int16": "i16", "int32": "i32", "int64": "i64",
	"uint8": "u8", "uint16": "u16", "uint32": "u32", "uint64": "u64",
	"byte":    "u8",
	"float32": "f32", "float": "f32",
	"float64": "f64", "double": "f64",
	"string": "String", "str": "String",
	"boolean": "bool",
}

// Canonical returns the canonical primitive name for source and whether it
// names a supported primitive at all.
func Canonical(source string) (string, bool) {
	if a, ok := aliases[source]; ok {
		source = a
	}
	for _, p := range Primitives {
		if p == source {
			return p, true
		}
	}
	return "", false
}

// IsPrimitive reports whether source names a supported primitive.
func IsPrimitive(source string) bool {
	_, ok := Canonical(source)
	return ok
}

// Class groups primitives by the literal values they accept.
type Class int

const (
	ClassInvalid Class = iota
	ClassBool
	ClassSigned
	ClassUnsigned
	ClassFloat
	ClassString
)

// ClassOf returns the value class of a primitive (ClassInvalid if unknown).
func ClassOf(source string) Class {
	c, ok := Canonical(source)
	if !ok {
		return ClassInvalid
	}
	switch c {
	case "i8", "i16", "i32", "i64":
		return ClassSigned
	case "u8", "u16", "u32", "u64":
		return ClassUnsigned
	case "f32", "f64":
		return ClassFloat
	case "String":
		return ClassString
	case "bool":
		return ClassBool
	}
	return ClassInvalid
}

func (c Class) String() string {
	switch c {
	case ClassBool:
		return "boolean"
	case ClassSigned:
		return "signed integer"
	case ClassUnsigned:
		return "unsigned integer"
	case ClassFloat:
		return "floating"
	case ClassString:
		return "string"
	default:
		return "invalid"
	}
}

// Table is a static Mapper keyed by canonical primitive name.
type Table map[string]string

// Map implements Mapper.
func (t Table) Map(source string) (string, error) {
	c, ok := Canonical(source)
	if !ok {
		return "", &UnsupportedTypeError{Type: source}
	}
	target, ok := t[c]
	if !ok {
		return "", &UnsupportedTypeError{Type: source}
	}
	return target, nil
}

// Check reports canonical primitives missing from the table. Targets call
// it from tests to prove their table is total.
func (t Table) Check() []string {
	var missing []string
	for _, p := range Primitives {
		if _, ok := t[p]; !ok {
			missing = append(missing, p)
		}
	}
	sort.Strings(missing)
	return missing
}
