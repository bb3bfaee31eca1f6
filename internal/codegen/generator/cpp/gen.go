package cpp

import (
	"github.com/Alia5/structgen/internal/codegen/common"
	"github.com/Alia5/structgen/internal/codegen/render"
)

// Dialect renders C++ class declarations into a .hxx header.
var Dialect = func() *render.Dialect {
	d := render.NewDialect("cpp", "hxx", "//", Types, nil, typesTemplate)
	d.Ident = func(name string) string { return common.EscapeKeyword(name, keywords) }
	return d
}()
