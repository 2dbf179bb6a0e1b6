package ancestry

import (
	"github.com/typegraph/typegraph/internal/decl"
	"github.com/typegraph/typegraph/internal/diagnostics"
)

// mergedDecl is the view of one type after folding its partial
// declarations (reopenings) together. Member order across partials
// follows input order, which the name table pins.
type mergedDecl struct {
	Name       decl.TypeName
	Kind       decl.NameKind
	TypeParams []decl.TypeParam
	Superclass *decl.TypeApp
	SelfTypes  []decl.TypeApp
	Partials   []decl.Declaration
	Loc        *decl.Location
}

// mergePartials validates that reopenings of one name agree with each
// other: same declaration kind, same parameter count, same superclass.
func mergePartials(name decl.TypeName, partials []decl.Declaration) (*mergedDecl, error) {
	first := partials[0]
	merged := &mergedDecl{
		Name:       first.DeclName().WithKind(decl.KindOf(first)),
		Kind:       decl.KindOf(first),
		TypeParams: first.Params(),
		Partials:   partials,
		Loc:        first.Location(),
	}
	merged.Name.Relative = false

	for _, d := range partials {
		if decl.KindOf(d) != merged.Kind {
			return nil, &diagnostics.DuplicatedDeclarationError{
				TypeName:     merged.Name,
				Declarations: partials,
				Loc:          d.Location(),
			}
		}
		if len(d.Params()) != len(merged.TypeParams) {
			return nil, &diagnostics.GenericParameterMismatchError{
				TypeName:     merged.Name,
				Declarations: []decl.Declaration{first, d},
				Loc:          d.Location(),
			}
		}

		switch v := d.(type) {
		case *decl.Class:
			if v.Superclass == nil {
				continue
			}
			if merged.Superclass == nil {
				merged.Superclass = v.Superclass
				continue
			}
			if !sameSuperclass(merged.Superclass, v.Superclass) {
				return nil, &diagnostics.SuperclassMismatchError{
					TypeName:     merged.Name,
					Declarations: []decl.Declaration{first, d},
					Loc:          v.Superclass.Loc,
				}
			}
		case *decl.Module:
			merged.SelfTypes = append(merged.SelfTypes, v.SelfTypes...)
		}
	}
	return merged, nil
}

// sameSuperclass compares superclass identity by name segments only:
// reopenings may restate the superclass with the same name, but naming
// a different class is a mismatch.
func sameSuperclass(a, b *decl.TypeApp) bool {
	if a.Name.Name != b.Name.Name || len(a.Name.Namespace) != len(b.Name.Namespace) {
		return false
	}
	for i, seg := range a.Name.Namespace {
		if b.Name.Namespace[i] != seg {
			return false
		}
	}
	return true
}

// members returns every member across partials in input order.
func (m *mergedDecl) members() []decl.Member {
	var all []decl.Member
	for _, d := range m.Partials {
		all = append(all, d.DeclMembers()...)
	}
	return all
}

// mixins returns the mixin directives of the requested kind across
// partials, in input order.
func (m *mergedDecl) mixins(kind decl.MixinKind) []*decl.Mixin {
	var result []*decl.Mixin
	for _, member := range m.members() {
		if mixin, ok := member.(*decl.Mixin); ok && mixin.Kind == kind {
			result = append(result, mixin)
		}
	}
	return result
}
