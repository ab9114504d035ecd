// Package dts synthesizes TypeScript declaration text from the runtime shape
// of a module's exports.
//
// The output is deliberately loose: every parameter and return type is any,
// because a runtime value carries no type information beyond its category.
package dts

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"git.home.luguber.info/inful/typesbuilder/internal/typesbuilder/jsmodule"
)

const indentUnit = "    "

var identifierPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// reserved words cannot be used as declaration names.
var reserved = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true, "do": true,
	"else": true, "enum": true, "export": true, "extends": true, "false": true,
	"finally": true, "for": true, "function": true, "if": true, "import": true,
	"in": true, "instanceof": true, "new": true, "null": true, "return": true,
	"super": true, "switch": true, "this": true, "throw": true, "true": true,
	"try": true, "typeof": true, "var": true, "void": true, "while": true, "with": true,
}

// Generator renders declarations. The zero value is ready to use.
type Generator struct{}

// GenerateTypesForModule renders a declaration file for the module described
// by shape, using name for the module's own binding when it is callable.
func (Generator) GenerateTypesForModule(name string, shape *jsmodule.Shape) (string, error) {
	if shape == nil {
		return "", errors.New("no module shape to generate declarations from")
	}
	if !IsIdentifier(name) {
		return "", fmt.Errorf("invalid module name %q", name)
	}

	var w writer
	w.line(0, "// Declarations inferred from the runtime exports of "+name+".")
	w.line(0, "// Parameter and return types are not recoverable at runtime and are typed as any.")
	w.blank()

	if shape.Root != nil {
		writeCallableRoot(&w, name, shape)
	} else {
		writeNamedExports(&w, shape)
	}
	return w.String(), nil
}

// IsIdentifier reports whether s can be used as a declaration name.
func IsIdentifier(s string) bool {
	return identifierPattern.MatchString(s) && !reserved[s]
}

func writeNamedExports(w *writer, shape *jsmodule.Shape) {
	for _, e := range shape.Exports {
		if e.Name == "default" && shape.ESModule {
			writeDeclaration(w, 0, "declare ", renamed(e, "_default"))
			w.line(0, "export default _default;")
			continue
		}
		if !IsIdentifier(e.Name) {
			w.line(0, "// skipped export "+strconv.Quote(e.Name)+": not a valid identifier")
			continue
		}
		writeDeclaration(w, 0, "export declare ", e)
	}
}

func writeCallableRoot(w *writer, name string, shape *jsmodule.Shape) {
	root := renamed(*shape.Root, name)
	var extra []jsmodule.Export
	for _, e := range shape.Exports {
		if IsIdentifier(e.Name) {
			extra = append(extra, e)
		}
	}

	if root.Kind == jsmodule.KindClass {
		root.Members = extra
		writeDeclaration(w, 0, "declare ", root)
	} else {
		root.Members = nil
		writeDeclaration(w, 0, "declare ", root)
		if len(extra) > 0 {
			w.line(0, "declare namespace "+name+" {")
			for _, e := range extra {
				writeDeclaration(w, 1, "", e)
			}
			w.line(0, "}")
		}
	}
	w.line(0, "export = "+name+";")
}

// writeDeclaration emits one statement-level declaration.
func writeDeclaration(w *writer, depth int, prefix string, e jsmodule.Export) {
	switch e.Kind {
	case jsmodule.KindFunction:
		w.line(depth, prefix+"function "+e.Name+"("+params(e.Params)+"): any;")
	case jsmodule.KindClass:
		w.line(depth, prefix+"class "+e.Name+" {")
		if e.Params > 0 {
			w.line(depth+1, "constructor("+params(e.Params)+");")
		}
		for _, m := range e.Members {
			writeMember(w, depth+1, "static ", m)
		}
		for _, m := range e.Methods {
			writeMember(w, depth+1, "", m)
		}
		w.line(depth, "}")
	case jsmodule.KindObject:
		if len(e.Members) == 0 {
			w.line(depth, prefix+"const "+e.Name+": {};")
			return
		}
		w.line(depth, prefix+"const "+e.Name+": {")
		for _, m := range e.Members {
			writeMember(w, depth+1, "", m)
		}
		w.line(depth, "};")
	default:
		w.line(depth, prefix+"const "+e.Name+": "+scalarType(e.Kind)+";")
	}
}

// writeMember emits a property or method signature inside a class body or
// type literal.
func writeMember(w *writer, depth int, modifier string, m jsmodule.Export) {
	key := propertyKey(m.Name)
	switch m.Kind {
	case jsmodule.KindFunction:
		w.line(depth, modifier+key+"("+params(m.Params)+"): any;")
	case jsmodule.KindClass:
		w.line(depth, modifier+key+": new ("+params(m.Params)+") => any;")
	case jsmodule.KindObject:
		if len(m.Members) == 0 {
			w.line(depth, modifier+key+": {};")
			return
		}
		w.line(depth, modifier+key+": {")
		for _, child := range m.Members {
			writeMember(w, depth+1, "", child)
		}
		w.line(depth, "};")
	default:
		w.line(depth, modifier+key+": "+scalarType(m.Kind)+";")
	}
}

func scalarType(k jsmodule.Kind) string {
	switch k {
	case jsmodule.KindString, jsmodule.KindNumber, jsmodule.KindBoolean, jsmodule.KindNull, jsmodule.KindUndefined:
		return string(k)
	case jsmodule.KindArray:
		return "any[]"
	default:
		return "any"
	}
}

func params(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = "p" + strconv.Itoa(i) + ": any"
	}
	return strings.Join(parts, ", ")
}

func propertyKey(name string) string {
	if identifierPattern.MatchString(name) {
		return name
	}
	return strconv.Quote(name)
}

func renamed(e jsmodule.Export, name string) jsmodule.Export {
	e.Name = name
	return e
}

type writer struct {
	b strings.Builder
}

func (w *writer) line(depth int, s string) {
	w.b.WriteString(strings.Repeat(indentUnit, depth))
	w.b.WriteString(s)
	w.b.WriteByte('\n')
}

func (w *writer) blank() {
	w.b.WriteByte('\n')
}

func (w *writer) String() string {
	return w.b.String()
}

// Generate is shorthand for Generator{}.GenerateTypesForModule.
func Generate(name string, shape *jsmodule.Shape) (string, error) {
	return Generator{}.GenerateTypesForModule(name, shape)
}
