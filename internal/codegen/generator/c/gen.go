package cgen

import (
	"github.com/Alia5/structgen/internal/codegen/common"
	"github.com/Alia5/structgen/internal/codegen/render"
)

// Dialect renders C typedef'd structs into a .h header with an include
// guard derived from the model name.
var Dialect = func() *render.Dialect {
	d := render.NewDialect("c", "h", "//", Types, nil, headerTemplate)
	d.Ident = func(name string) string { return common.EscapeKeyword(name, keywords) }
	return d
}()
