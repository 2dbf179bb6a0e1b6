package definitions

import (
	"github.com/typegraph/typegraph/internal/decl"
	"github.com/typegraph/typegraph/internal/diagnostics"
)

// resolveAliases folds alias members into the table. An alias looks up
// its target in the same ancestor's already-built partial table; chains
// are followed transitively and cycles are fatal.
func (t *ownTable) resolveAliases(owner decl.TypeName, kind decl.MethodKind, aliases []*decl.AliasMember) error {
	byNewName := make(map[string]*decl.AliasMember, len(aliases))
	for _, a := range aliases {
		// Two aliases introducing one name at the same ancestor position
		// conflict just like two method members would.
		if _, ok := byNewName[a.NewName]; ok {
			return &diagnostics.DuplicatedMethodDefinitionError{
				Method: decl.MethodRef{Kind: kind, Type: owner, Method: a.NewName},
				Loc:    a.Loc,
			}
		}
		byNewName[a.NewName] = a
	}

	for _, alias := range aliases {
		if existing, ok := t.defs[alias.NewName]; ok && !existing.fromAlias {
			return &diagnostics.DuplicatedMethodDefinitionError{
				Method:  decl.MethodRef{Kind: kind, Type: owner, Method: alias.NewName},
				Members: []*decl.MethodDef{existing.member},
				Loc:     alias.Loc,
			}
		}
		target, err := t.followAlias(owner, kind, alias, byNewName)
		if err != nil {
			return err
		}

		copied := *target.def
		copied.Name = alias.NewName
		copied.Sources = append(append([]Source{}, target.def.Sources...),
			Source{Type: owner, Member: alias, Loc: alias.Loc})
		if _, ok := t.defs[alias.NewName]; !ok {
			t.order = append(t.order, alias.NewName)
		}
		t.defs[alias.NewName] = &ownDef{
			def:       &copied,
			member:    target.member,
			fromAlias: true,
		}
	}
	return nil
}

// followAlias walks an alias chain until it reaches a real method
// definition in this ancestor.
func (t *ownTable) followAlias(owner decl.TypeName, kind decl.MethodKind, alias *decl.AliasMember, byNewName map[string]*decl.AliasMember) (*ownDef, error) {
	visited := map[string]*decl.AliasMember{alias.NewName: alias}
	chain := []*decl.AliasMember{alias}
	current := alias

	for {
		if def, ok := t.defs[current.OldName]; ok && !def.fromAlias {
			return def, nil
		}
		next, ok := byNewName[current.OldName]
		if !ok {
			return nil, &diagnostics.UnknownMethodAliasError{
				TypeName:     owner,
				OriginalName: current.OldName,
				AliasedName:  current.NewName,
				Kind:         kind,
				Loc:          current.Loc,
			}
		}
		if _, seen := visited[next.NewName]; seen {
			return nil, &diagnostics.RecursiveAliasDefinitionError{
				TypeName: owner,
				Defs:     chain,
				Loc:      alias.Loc,
			}
		}
		visited[next.NewName] = next
		chain = append(chain, next)
		current = next
	}
}
