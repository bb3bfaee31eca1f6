package cpp

import "github.com/Alia5/structgen/internal/codegen/typemap"

// Types maps source primitives to the <cstdint> spellings.
var Types = typemap.Table{
	"u8":     "uint8_t",
	"u16":    "uint16_t",
	"u32":    "uint32_t",
	"u64":    "uint64_t",
	"i8":     "int8_t",
	"i16":    "int16_t",
	"i32":    "int32_t",
	"i64":    "int64_t",
	"String": "std::string",
	"bool":   "bool",
	"f32":    "float",
	"f64":    "double",
}

var keywords = map[string]bool{
	"alignas": true, "alignof": true, "and": true, "asm": true, "auto": true,
	"bool": true, "break": true, "case": true, "catch": true, "char": true,
	"class": true, "const": true, "constexpr": true, "continue": true,
	"decltype": true, "default": true, "delete": true, "do": true, "double": true,
	"else": true, "enum": true, "explicit": true, "export": true, "extern": true,
	"false": true, "float": true, "for": true, "friend": true, "goto": true,
	"if": true, "inline": true, "int": true, "long": true, "mutable": true,
	"namespace": true, "new": true, "noexcept": true, "not": true, "nullptr": true,
	"operator": true, "or": true, "private": true, "protected": true, "public": true,
	"register": true, "return": true, "short": true, "signed": true, "sizeof": true,
	"static": true, "struct": true, "switch": true, "template": true, "this": true,
	"throw": true, "true": true, "try": true, "typedef": true, "typename": true,
	"union": true, "unsigned": true, "using": true, "virtual": true, "void": true,
	"volatile": true, "while": true, "xor": true,
}
