// Package prettyprinter renders type names, ancestor chains, method
// tables and diagnostics for human-facing output.
package prettyprinter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/typegraph/typegraph/internal/ancestry"
	"github.com/typegraph/typegraph/internal/decl"
	"github.com/typegraph/typegraph/internal/definitions"
	"github.com/typegraph/typegraph/internal/diagnostics"
)

// TypeName renders a qualified type name.
func TypeName(n decl.TypeName) string { return n.String() }

// Method renders a (kind, type, method) triple: Foo#bar or Foo.bar.
func Method(kind decl.MethodKind, typeName decl.TypeName, method string) string {
	return decl.MethodRef{Kind: kind, Type: typeName, Method: method}.String()
}

// Entry renders one ancestor chain hop.
func Entry(e ancestry.Entry) string {
	name := e.Name.String()
	if e.Kind == ancestry.SingletonEntry {
		return fmt.Sprintf("singleton(%s)", name)
	}
	if len(e.Args) > 0 {
		args := make([]string, len(e.Args))
		for i, a := range e.Args {
			args[i] = a.String()
		}
		name = fmt.Sprintf("%s<%s>", name, strings.Join(args, ", "))
	}
	return name
}

// Chain renders a full ancestor chain, nearest first.
func Chain(entries []ancestry.Entry) string {
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = Entry(e)
	}
	return strings.Join(parts, " < ")
}

// Definition renders one resolved definition with its overload set.
func Definition(d *definitions.Definition) string {
	sigs := make([]string, len(d.Overloads))
	for i, sig := range d.Overloads {
		sigs[i] = sig.String()
	}
	ref := decl.MethodRef{Kind: d.Kind, Type: d.Owner, Method: d.Name}
	return fmt.Sprintf("%s: %s", ref, strings.Join(sigs, " | "))
}

// Definitions renders a method table with names sorted for stable
// output.
func Definitions(defs map[string]*definitions.Definition) []string {
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, len(names))
	for i, name := range names {
		lines[i] = Definition(defs[name])
	}
	return lines
}

// Diagnostic renders "file:line:col [CODE] message"; the location part
// is omitted for location-less diagnostics.
func Diagnostic(d diagnostics.Diagnostic) string {
	if loc := d.Location(); loc != nil {
		return fmt.Sprintf("%s [%s] %s", loc, d.Code(), d.Error())
	}
	return fmt.Sprintf("[%s] %s", d.Code(), d.Error())
}
