package definitions

import (
	"github.com/typegraph/typegraph/internal/decl"
	"github.com/typegraph/typegraph/internal/diagnostics"
)

// Source tags one original signature contribution: the declaring type
// and the member that produced it.
type Source struct {
	Type   decl.TypeName
	Member decl.Member
	Loc    *decl.Location
}

// Definition is the resolved entry for one (type, method, kind) triple:
// the effective overload set plus every original source, nearest first.
type Definition struct {
	Name      string
	Kind      decl.MethodKind
	Owner     decl.TypeName
	Overloads []decl.MethodSig
	Sources   []Source
}

// ownDef is a definition under construction within one ancestor.
type ownDef struct {
	def         *Definition
	member      *decl.MethodDef
	overloading bool
	fromAlias   bool
}

// ownTable is the method table contributed by a single ancestor
// position: the members the ancestor itself declares, aliases resolved,
// before any inheritance merging.
type ownTable struct {
	defs  map[string]*ownDef
	order []string
}

// buildOwnTable collects one ancestor's own members of the requested
// kind, validates overload sets, detects same-position conflicts and
// resolves method aliases against the same ancestor.
func buildOwnTable(owner decl.TypeName, partials []decl.Declaration, kind decl.MethodKind, subst decl.Subst) (*ownTable, error) {
	table := &ownTable{defs: make(map[string]*ownDef)}
	var aliases []*decl.AliasMember

	for _, d := range partials {
		for _, member := range d.DeclMembers() {
			switch m := member.(type) {
			case *decl.MethodDef:
				if m.Kind != kind {
					continue
				}
				if err := table.addMethod(owner, m, m, subst); err != nil {
					return nil, err
				}
			case *decl.AttrDef:
				if m.Kind != kind {
					continue
				}
				if err := table.addMethod(owner, m.ReaderDef(), m, subst); err != nil {
					return nil, err
				}
				if writer := m.WriterDef(); writer != nil {
					if err := table.addMethod(owner, writer, m, subst); err != nil {
						return nil, err
					}
				}
			case *decl.AliasMember:
				if m.Kind != kind {
					continue
				}
				aliases = append(aliases, m)
			}
		}
	}

	if err := table.resolveAliases(owner, kind, aliases); err != nil {
		return nil, err
	}
	return table, nil
}

func (t *ownTable) addMethod(owner decl.TypeName, m *decl.MethodDef, source decl.Member, subst decl.Subst) error {
	if err := checkOverloadSet(owner, m); err != nil {
		return err
	}

	sigs := make([]decl.MethodSig, len(m.Overloads))
	for i, sig := range m.Overloads {
		sigs[i] = sig.Apply(subst)
	}
	src := Source{Type: owner, Member: source, Loc: m.Loc}

	existing, ok := t.defs[m.Name]
	if !ok {
		t.defs[m.Name] = &ownDef{
			def: &Definition{
				Name:      m.Name,
				Kind:      m.Kind,
				Owner:     owner,
				Overloads: sigs,
				Sources:   []Source{src},
			},
			member:      m,
			overloading: m.Overloading,
		}
		t.order = append(t.order, m.Name)
		return nil
	}

	// Two members at the same ancestor position define the same name.
	// Explicit overload groups accumulate; anything else conflicts
	// unless the restatement is structurally identical.
	switch {
	case existing.overloading && m.Overloading:
		existing.def.Overloads = append(existing.def.Overloads, sigs...)
		existing.def.Sources = append(existing.def.Sources, src)
		return nil
	case !existing.overloading && !m.Overloading && sigSetsEqual(existing.def.Overloads, sigs):
		existing.def.Sources = append(existing.def.Sources, src)
		return nil
	default:
		return &diagnostics.DuplicatedMethodDefinitionError{
			Method:  decl.MethodRef{Kind: m.Kind, Type: owner, Method: m.Name},
			Members: []*decl.MethodDef{existing.member, m},
			Loc:     m.Loc,
		}
	}
}

// checkOverloadSet rejects overload sets containing a signature that
// normal overload resolution could never select: an exact duplicate, or
// one whose parameter shape is identical to an earlier signature.
func checkOverloadSet(owner decl.TypeName, m *decl.MethodDef) error {
	for i := 0; i < len(m.Overloads); i++ {
		for j := i + 1; j < len(m.Overloads); j++ {
			if sameParamShape(m.Overloads[i], m.Overloads[j]) {
				return &diagnostics.InvalidOverloadMethodError{
					Method: decl.MethodRef{Kind: m.Kind, Type: owner, Method: m.Name},
					Member: m,
					Loc:    m.Overloads[j].Loc,
				}
			}
		}
	}
	return nil
}

func sameParamShape(a, b decl.MethodSig) bool {
	if len(a.Params) != len(b.Params) {
		return false
	}
	for i := range a.Params {
		if !decl.TypesEqual(a.Params[i], b.Params[i]) {
			return false
		}
	}
	return true
}

func sigSetsEqual(a, b []decl.MethodSig) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !decl.SigsEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}
