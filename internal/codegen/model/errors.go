package model

import "fmt"

// DanglingReferenceError reports a field whose struct type is not part of
// the model.
type DanglingReferenceError struct {
	Struct  string
	Field   string
	Missing string
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("struct %s field %s references undefined struct %s", e.Struct, e.Field, e.Missing)
}

// ValidationError reports a malformed struct or field.
type ValidationError struct {
	Struct string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Struct == "":
		return "invalid model: " + e.Reason
	case e.Field == "":
		return fmt.Sprintf("invalid struct %s: %s", e.Struct, e.Reason)
	default:
		return fmt.Sprintf("invalid struct %s field %s: %s", e.Struct, e.Field, e.Reason)
	}
}
