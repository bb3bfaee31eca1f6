package model

import (
	"strconv"
	"strings"
)

// FieldKind is the type of a struct field. It is one of Primitive, StructRef
// or Array; the set is closed.
type FieldKind interface {
	isFieldKind()
	String() string
}

// Primitive is a scalar of a source-language primitive type (e.g. "i32").
type Primitive struct {
	Type string
}

// StructRef is a nested struct declared elsewhere in the same model.
type StructRef struct {
	Name string
}

// Array is a fixed-size array of Elem. Dims lists the size of each axis,
// outermost first.
type Array struct {
	Elem FieldKind
	Dims []int
}

func (Primitive) isFieldKind() {}
func (StructRef) isFieldKind() {}
func (Array) isFieldKind()     {}

func (p Primitive) String() string { return p.Type }
func (s StructRef) String() string { return s.Name }

func (a Array) String() string {
	var b strings.Builder
	if a.Elem == nil {
		b.WriteString("<nil>")
	} else {
		b.WriteString(a.Elem.String())
	}
	for _, d := range a.Dims {
		b.WriteByte('[')
		b.WriteString(strconv.Itoa(d))
		b.WriteByte(']')
	}
	return b.String()
}

// Flatten unwraps nested arrays. It returns the innermost non-array kind and
// the combined dimensions, outer array's dims first.
// Example: Array{Array{f32, [3]}, [2]} -> (f32, [2 3]).
func Flatten(k FieldKind) (FieldKind, []int) {
	var dims []int
	for {
		a, ok := k.(Array)
		if !ok {
			return k, dims
		}
		dims = append(dims, a.Dims...)
		k = a.Elem
	}
}

// ArrayOf is a convenience constructor for Array.
func ArrayOf(elem FieldKind, dims ...int) Array {
	return Array{Elem: elem, Dims: dims}
}
