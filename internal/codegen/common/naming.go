package common

import (
	"strings"
	"unicode"
)

func ToSnakeCase(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '-' || unicode.IsSpace(r) {
			b.WriteByte('_')
			continue
		}
		isUpper := r >= 'A' && r <= 'Z'

		if i > 0 && isUpper {
			prevIsLower := runes[i-1] >= 'a' && runes[i-1] <= 'z'
			// "XMLParser" -> "xml_parser", not "x_m_l_parser"
			nextIsLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'
			prevIsSep := runes[i-1] == '_'

			if (prevIsLower || nextIsLower) && !prevIsSep {
				b.WriteByte('_')
			}
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}

// ToScreamingSnakeCase turns "demoModel" into "DEMO_MODEL". Characters that
// are not valid in a C identifier become underscores.
func ToScreamingSnakeCase(s string) string {
	snake := ToSnakeCase(s)
	var b strings.Builder
	for _, r := range snake {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		b.WriteByte('_')
	}
	return SanitizeLeadingDigit(b.String())
}

// SanitizeLeadingDigit prefixes names that start with a digit with "N"
// to keep identifiers valid in target languages.
func SanitizeLeadingDigit(name string) string {
	if name == "" {
		return ""
	}
	if name[0] >= '0' && name[0] <= '9' {
		return "N" + name
	}
	return name
}

// EscapeKeyword appends an underscore to name when it is a reserved word of
// the target. C and C++ have no raw identifiers, so "class" becomes "class_".
func EscapeKeyword(name string, keywords map[string]bool) string {
	if keywords[name] {
		return name + "_"
	}
	return name
}
