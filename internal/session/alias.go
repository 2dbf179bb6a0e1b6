package session

import (
	"github.com/typegraph/typegraph/internal/decl"
)

// ExpandAlias recursively expands type-level aliases in a type
// expression to their underlying types. Alias cycles stop expanding at
// the first revisit and leave the reference in place.
func (s *Session) ExpandAlias(t decl.Type) decl.Type {
	return s.expandAliasWithCycleCheck(t, make(map[string]bool))
}

func (s *Session) expandAliasWithCycleCheck(t decl.Type, visited map[string]bool) decl.Type {
	named, ok := t.(decl.TNamed)
	if !ok {
		return t
	}

	resolved, err := s.Table.Resolve(named.Name, nil)
	if err == nil && resolved.Kind == decl.AliasName {
		key := resolved.Key()
		if !visited[key] {
			partials := s.Table.DeclarationsOf(resolved)
			if alias, ok := partials[0].(*decl.Alias); ok {
				visited[key] = true
				defer delete(visited, key)
				return s.expandAliasWithCycleCheck(alias.Type, visited)
			}
		}
		return t
	}

	if len(named.Args) == 0 {
		return t
	}
	args := make([]decl.Type, len(named.Args))
	for i, a := range named.Args {
		args[i] = s.expandAliasWithCycleCheck(a, visited)
	}
	return decl.TNamed{Name: named.Name, Args: args}
}
