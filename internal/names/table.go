// Package names implements the declaration name table: an append-only
// multimap from type names to their (possibly partial) declarations,
// plus lexical resolution of relative references.
package names

import (
	"github.com/typegraph/typegraph/internal/decl"
	"github.com/typegraph/typegraph/internal/diagnostics"
)

// Table stores every input declaration, keyed by qualified name. It is
// bulk-loaded once per build session and read-only afterwards; partial
// declarations of one name keep their input order.
type Table struct {
	decls map[string][]decl.Declaration
	order []string // insertion order of keys, for deterministic iteration
}

func NewTable() *Table {
	return &Table{decls: make(map[string][]decl.Declaration)}
}

// Add appends a declaration. Reopenings of a known name accumulate in
// order; kind conflicts are detected later, when the ancestor builder
// merges partials.
func (t *Table) Add(d decl.Declaration) {
	key := d.DeclName().Key()
	if _, ok := t.decls[key]; !ok {
		t.order = append(t.order, key)
	}
	t.decls[key] = append(t.decls[key], d)
}

// DeclarationsOf returns the ordered partial declarations of a name, or
// an empty list for unknown names.
func (t *Table) DeclarationsOf(name decl.TypeName) []decl.Declaration {
	return t.decls[name.Key()]
}

// Has reports whether any declaration exists for the name.
func (t *Table) Has(name decl.TypeName) bool {
	return len(t.decls[name.Key()]) > 0
}

// TypeNames returns the canonical name of every declared type in
// insertion order. The kind tag comes from the first declaration.
func (t *Table) TypeNames() []decl.TypeName {
	result := make([]decl.TypeName, 0, len(t.order))
	for _, key := range t.order {
		partials := t.decls[key]
		name := partials[0].DeclName().WithKind(decl.KindOf(partials[0]))
		name.Relative = false
		result = append(result, name)
	}
	return result
}

// Len returns the number of distinct declared names.
func (t *Table) Len() int { return len(t.order) }

// Resolve turns a reference into the canonical absolute name of a
// declared type. Relative references search from the innermost
// enclosing namespace outward to the root; the first namespace holding
// a declaration wins. Resolution is deterministic and side-effect-free.
func (t *Table) Resolve(ref decl.TypeName, context []string) (decl.TypeName, error) {
	if !ref.Relative {
		if canonical, ok := t.lookup(ref); ok {
			return canonical, nil
		}
		return decl.TypeName{}, &diagnostics.NoTypeFoundError{TypeName: ref}
	}

	for i := len(context); i >= 0; i-- {
		candidate := decl.TypeName{
			Namespace: joinNamespace(context[:i], ref.Namespace),
			Name:      ref.Name,
			Kind:      ref.Kind,
		}
		if canonical, ok := t.lookup(candidate); ok {
			return canonical, nil
		}
	}
	return decl.TypeName{}, &diagnostics.NoTypeFoundError{TypeName: ref}
}

// lookup finds the canonical name for a fully-qualified candidate,
// filling in the kind tag from the stored declarations.
func (t *Table) lookup(name decl.TypeName) (decl.TypeName, bool) {
	partials, ok := t.decls[name.Key()]
	if !ok {
		return decl.TypeName{}, false
	}
	canonical := partials[0].DeclName().WithKind(decl.KindOf(partials[0]))
	canonical.Relative = false
	return canonical, true
}

func joinNamespace(outer, inner []string) []string {
	if len(outer) == 0 {
		return inner
	}
	joined := make([]string, 0, len(outer)+len(inner))
	joined = append(joined, outer...)
	return append(joined, inner...)
}
