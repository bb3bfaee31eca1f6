package cgen

import "github.com/Alia5/structgen/internal/codegen/typemap"

// Types maps source primitives to C99 spellings. Strings are borrowed
// pointers; the header does not own their storage.
var Types = typemap.Table{
	"u8":     "uint8_t",
	"u16":    "uint16_t",
	"u32":    "uint32_t",
	"u64":    "uint64_t",
	"i8":     "int8_t",
	"i16":    "int16_t",
	"i32":    "int32_t",
	"i64":    "int64_t",
	"String": "const char*",
	"bool":   "bool",
	"f32":    "float",
	"f64":    "double",
}

var keywords = map[string]bool{
	"auto": true, "bool": true, "break": true, "case": true, "char": true,
	"const": true, "continue": true, "default": true, "do": true, "double": true,
	"else": true, "enum": true, "extern": true, "float": true, "for": true,
	"goto": true, "if": true, "inline": true, "int": true, "long": true,
	"register": true, "restrict": true, "return": true, "short": true,
	"signed": true, "sizeof": true, "static": true, "struct": true,
	"switch": true, "typedef": true, "union": true, "unsigned": true,
	"void": true, "volatile": true, "while": true,
	// C++ keywords too, since the header is also included from C++.
	"class": true, "namespace": true, "new": true, "delete": true,
	"private": true, "public": true, "protected": true, "template": true,
	"this": true, "virtual": true, "true": true, "false": true,
}
