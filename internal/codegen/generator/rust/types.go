package rust

import "github.com/Alia5/structgen/internal/codegen/typemap"

const typesTemplate = `{{.Header}}
{{range .Structs}}
{{if .Desc}}{{comment "///" .Desc}}
{{end}}#[derive(Debug, Default, Clone, PartialEq)]
pub struct {{.Name}} {
{{- range .Members}}
{{- if .Desc}}
{{comment "    ///" .Desc}}
{{- end}}
    pub {{.Name}}: {{rusttype .}},
{{- end}}
}
{{end}}`

// Types maps source primitives to Rust; the source names are Rust already.
var Types = typemap.Table{
	"u8":     "u8",
	"u16":    "u16",
	"u32":    "u32",
	"u64":    "u64",
	"i8":     "i8",
	"i16":    "i16",
	"i32":    "i32",
	"i64":    "i64",
	"String": "String",
	"bool":   "bool",
	"f32":    "f32",
	"f64":    "f64",
}

func isRustKeyword(s string) bool {
	keywords := map[string]bool{
		"as": true, "break": true, "const": true, "continue": true, "crate": true,
		"else": true, "enum": true, "extern": true, "false": true, "fn": true,
		"for": true, "if": true, "impl": true, "in": true, "let": true,
		"loop": true, "match": true, "mod": true, "move": true, "mut": true,
		"pub": true, "ref": true, "return": true, "static": true, "struct": true,
		"trait": true, "true": true, "type": true, "unsafe": true, "use": true,
		"where": true, "while": true, "async": true, "await": true, "dyn": true,
	}
	return keywords[s]
}
