// Package resolver orders the structs of a model so that every struct comes
// after the structs it references.
package resolver

import (
	"strings"

	"github.com/Alia5/structgen/internal/codegen/model"
)

// CyclicDependencyError reports a struct that transitively contains itself.
// Cycle starts and ends with the same struct name.
type CyclicDependencyError struct {
	Cycle []string
}

func (e *CyclicDependencyError) Error() string {
	return "cyclic struct dependency: " + strings.Join(e.Cycle, " -> ")
}

type color uint8

const (
	unvisited color = iota
	inProgress
	done
)

// Order returns struct names in dependency order using a depth-first walk.
// Roots are visited in model order and references in field order, so structs
// without an ordering constraint keep their relative input order.
func Order(m *model.Model) ([]string, error) {
	state := make(map[string]color, m.Len())
	order := make([]string, 0, m.Len())
	var path []string

	var visit func(name string) error
	visit = func(name string) error {
		s, _ := m.Lookup(name)
		state[name] = inProgress
		path = append(path, name)

		for _, ref := range s.References() {
			if _, ok := m.Lookup(ref); !ok {
				return danglingError(s, ref)
			}
			switch state[ref] {
			case done:
				continue
			case inProgress:
				return &CyclicDependencyError{Cycle: cycleFrom(path, ref)}
			}
			if err := visit(ref); err != nil {
				return err
			}
		}

		path = path[:len(path)-1]
		state[name] = done
		order = append(order, name)
		return nil
	}

	for _, name := range m.Names() {
		if state[name] != unvisited {
			continue
		}
		if err := visit(name); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// cycleFrom cuts the DFS stack at the first occurrence of ref and closes the
// loop back to it.
func cycleFrom(path []string, ref string) []string {
	start := 0
	for i, n := range path {
		if n == ref {
			start = i
			break
		}
	}
	cycle := make([]string, 0, len(path)-start+1)
	cycle = append(cycle, path[start:]...)
	return append(cycle, ref)
}

func danglingError(s model.StructModel, missing string) error {
	for _, f := range s.Fields {
		base, _ := model.Flatten(f.Kind)
		if ref, ok := base.(model.StructRef); ok && ref.Name == missing {
			return &model.DanglingReferenceError{Struct: s.Name, Field: f.Name, Missing: missing}
		}
	}
	return &model.DanglingReferenceError{Struct: s.Name, Missing: missing}
}
