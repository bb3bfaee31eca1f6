package rust

import (
	"strconv"
	"text/template"

	"github.com/Alia5/structgen/internal/codegen/render"
)

// Dialect renders plain Rust structs into a .rs module. Fixed-size arrays
// become nested arrays, so f64 with dims [2, 3] is [[f64; 3]; 2].
var Dialect = func() *render.Dialect {
	d := render.NewDialect("rust", "rs", "//", Types, template.FuncMap{"rusttype": rustType}, typesTemplate)
	d.Ident = func(name string) string {
		switch {
		case noRawIdent[name]:
			return name + "_"
		case isRustKeyword(name):
			return "r#" + name
		}
		return name
	}
	return d
}()

// These keywords cannot be written as raw identifiers.
var noRawIdent = map[string]bool{"crate": true, "self": true, "Self": true, "super": true}

func rustType(m render.Member) string {
	t := m.Type
	for i := len(m.Dims) - 1; i >= 0; i-- {
		t = "[" + t + "; " + strconv.Itoa(m.Dims[i]) + "]"
	}
	return t
}
