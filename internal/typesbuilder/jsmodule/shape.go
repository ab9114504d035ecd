// Package jsmodule loads a compiled CommonJS module in an embedded JavaScript
// runtime and describes the shape of its exports.
package jsmodule

import "sort"

// Kind is the runtime category of an exported value.
type Kind string

const (
	KindFunction  Kind = "function"
	KindClass     Kind = "class"
	KindObject    Kind = "object"
	KindArray     Kind = "array"
	KindString    Kind = "string"
	KindNumber    Kind = "number"
	KindBoolean   Kind = "boolean"
	KindNull      Kind = "null"
	KindUndefined Kind = "undefined"
	KindAny       Kind = "any"
)

// Export describes one named value.
type Export struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`

	// Params is the declared parameter count of functions, methods and class
	// constructors.
	Params int `json:"params,omitempty"`

	// Members holds object properties, or static members of functions and classes.
	Members []Export `json:"members,omitempty"`

	// Methods holds prototype members of classes.
	Methods []Export `json:"methods,omitempty"`
}

// Shape is the exported surface of a module.
type Shape struct {
	// Root is set when module.exports itself is a function or class.
	Root *Export `json:"root,omitempty"`

	// Exports lists the own enumerable properties of module.exports.
	Exports []Export `json:"exports"`

	// ESModule reports the transpiler's __esModule interop marker.
	ESModule bool `json:"esModule"`
}

// Lookup returns the top-level export with the given name.
func (s *Shape) Lookup(name string) (Export, bool) {
	for _, e := range s.Exports {
		if e.Name == name {
			return e, true
		}
	}
	return Export{}, false
}

// normalize sorts every export list by name and drops empty lists so output
// is deterministic.
func (s *Shape) normalize() {
	s.Exports = normalizeList(s.Exports)
	if s.Root != nil {
		s.Root.Members = normalizeList(s.Root.Members)
		s.Root.Methods = normalizeList(s.Root.Methods)
	}
}

func normalizeList(list []Export) []Export {
	if len(list) == 0 {
		return nil
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	for i := range list {
		list[i].Members = normalizeList(list[i].Members)
		list[i].Methods = normalizeList(list[i].Methods)
	}
	return list
}
