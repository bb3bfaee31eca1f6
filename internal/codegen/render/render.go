// Package render turns an ordered model into declaration text for one target
// dialect. Rendering is a pure function: the same model, order, dialect and
// options always produce the same bytes.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/Alia5/structgen/internal/codegen/common"
	"github.com/Alia5/structgen/internal/codegen/model"
	"github.com/Alia5/structgen/internal/codegen/typemap"
)

// Dialect is a target language: its primitive table plus the template that
// lays out the document. The template receives a Document.
type Dialect struct {
	Name      string
	Extension string
	// Comment is the line comment token used for the banner.
	Comment string
	Mapper  typemap.Mapper
	// Ident escapes a struct or field name for the target (reserved words);
	// nil keeps names unchanged.
	Ident func(string) string

	tmpl *template.Template
}

// NewDialect parses the document template once. It panics on a malformed
// template since dialects are defined statically.
func NewDialect(name, ext, comment string, mapper typemap.Mapper, funcs template.FuncMap, src string) *Dialect {
	all := baseFuncs()
	for k, v := range funcs {
		all[k] = v
	}
	return &Dialect{
		Name:      name,
		Extension: ext,
		Comment:   comment,
		Mapper:    mapper,
		tmpl:      template.Must(template.New(name).Funcs(all).Parse(src)),
	}
}

// Options customize a single render call.
type Options struct {
	// Banner replaces the default "Generated with structgen" line.
	Banner string
	// Fingerprint, when set, is written below the model line. Callers pass
	// the digest of the interface file the model came from.
	Fingerprint string
}

// Document is the template data for a whole output file.
type Document struct {
	Header  string
	Guard   string
	Structs []Struct
	// HasStrings is set when any field uses the String primitive, so
	// templates include string support only when needed.
	HasStrings bool
}

// Struct is one declaration block.
type Struct struct {
	Name    string
	Desc    string
	Members []Member
}

// Member is one field with its type already mapped to the target.
type Member struct {
	Name string
	// Type is the element type in target spelling (primitive or struct name).
	Type string
	// Dims holds array sizes, outermost first; empty for scalars.
	Dims []int
	Desc string
}

// NameCollisionError reports two source names that render to the same
// target identifier once reserved words are escaped. Field is empty when two
// struct names collide.
type NameCollisionError struct {
	Struct string
	Field  string
	Other  string
	Name   string
}

func (e *NameCollisionError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("structs %s and %s both render as %s", e.Other, e.Struct, e.Name)
	}
	return fmt.Sprintf("struct %s: fields %s and %s both render as %s", e.Struct, e.Other, e.Field, e.Name)
}

// Render emits declarations for the structs named in order. Every name must
// exist in m. Nothing is returned unless the whole document rendered.
//
// An unmapped primitive is returned as the *typemap.UnsupportedTypeError from
// the dialect's mapper, with Struct and Field filled in; it is not wrapped.
func Render(m *model.Model, order []string, d *Dialect, opts Options) (string, error) {
	doc := Document{
		Header:  header(d.Comment, opts, m.Name),
		Guard:   common.ToScreamingSnakeCase(m.Name) + "_INTERFACE_H",
		Structs: make([]Struct, 0, len(order)),
	}

	structNames := make(map[string]string, len(order))
	for _, name := range order {
		s, ok := m.Lookup(name)
		if !ok {
			return "", fmt.Errorf("struct %s is not part of model %s", name, m.Name)
		}
		block := Struct{Name: d.ident(s.Name), Desc: s.Desc, Members: make([]Member, 0, len(s.Fields))}
		if prev, dup := structNames[block.Name]; dup {
			return "", &NameCollisionError{Struct: s.Name, Other: prev, Name: block.Name}
		}
		structNames[block.Name] = s.Name

		memberNames := make(map[string]string, len(s.Fields))
		for _, f := range s.Fields {
			mem, err := d.member(f)
			if err != nil {
				var unsupported *typemap.UnsupportedTypeError
				if errors.As(err, &unsupported) {
					unsupported.Struct, unsupported.Field = s.Name, f.Name
					return "", unsupported
				}
				return "", fmt.Errorf("struct %s field %s: %w", s.Name, f.Name, err)
			}
			if prev, dup := memberNames[mem.Name]; dup {
				return "", &NameCollisionError{Struct: s.Name, Field: f.Name, Other: prev, Name: mem.Name}
			}
			memberNames[mem.Name] = f.Name

			base, _ := model.Flatten(f.Kind)
			if p, ok := base.(model.Primitive); ok && typemap.ClassOf(p.Type) == typemap.ClassString {
				doc.HasStrings = true
			}
			block.Members = append(block.Members, mem)
		}
		doc.Structs = append(doc.Structs, block)
	}

	var buf bytes.Buffer
	if err := d.tmpl.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("execute %s template: %w", d.Name, err)
	}
	return buf.String(), nil
}

func header(comment string, opts Options, modelName string) string {
	h := common.FileHeader(comment, opts.Banner, modelName)
	if opts.Fingerprint != "" {
		h += "\n" + comment + " source : " + opts.Fingerprint
	}
	return h
}

func (d *Dialect) ident(name string) string {
	if d.Ident == nil {
		return name
	}
	return d.Ident(name)
}

func (d *Dialect) member(f model.FieldModel) (Member, error) {
	typ, dims, err := d.typeOf(f.Kind)
	if err != nil {
		return Member{}, err
	}
	return Member{Name: d.ident(f.Name), Type: typ, Dims: dims, Desc: f.Desc}, nil
}

// typeOf resolves a field kind to its target element type and dimensions.
// Arrays contribute their own dims first, then their element's.
func (d *Dialect) typeOf(k model.FieldKind) (string, []int, error) {
	switch k := k.(type) {
	case model.Primitive:
		t, err := d.Mapper.Map(k.Type)
		return t, nil, err
	case model.StructRef:
		return d.ident(k.Name), nil, nil
	case model.Array:
		elem, inner, err := d.typeOf(k.Elem)
		if err != nil {
			return "", nil, err
		}
		dims := make([]int, 0, len(k.Dims)+len(inner))
		dims = append(dims, k.Dims...)
		return elem, append(dims, inner...), nil
	default:
		return "", nil, fmt.Errorf("unknown field kind %T", k)
	}
}

func baseFuncs() template.FuncMap {
	return template.FuncMap{
		// subscripts renders [2][3] for C-family declarators.
		"subscripts": func(dims []int) string {
			var b strings.Builder
			for _, d := range dims {
				b.WriteByte('[')
				b.WriteString(strconv.Itoa(d))
				b.WriteByte(']')
			}
			return b.String()
		},
		// comment prefixes every line of s, so multi-line descriptions stay
		// inside the comment.
		"comment": func(prefix, s string) string {
			lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
			for i, l := range lines {
				lines[i] = strings.TrimRight(prefix+" "+l, " ")
			}
			return strings.Join(lines, "\n")
		},
	}
}
