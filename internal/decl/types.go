package decl

import (
	"fmt"
	"strings"
)

// Type is the interface for all type expressions appearing in
// declarations: superclass arguments, member signatures, bounds.
type Type interface {
	String() string
	Apply(Subst) Type
	FreeVariables() []string
}

// TVariable references a type parameter of the enclosing declaration.
type TVariable struct {
	Name string
}

func (t TVariable) String() string { return t.Name }

func (t TVariable) Apply(s Subst) Type {
	return applyWithCycleCheck(t, s, make(map[string]bool))
}

func (t TVariable) FreeVariables() []string { return []string{t.Name} }

// TNamed is a reference to a declared type, possibly with applied
// generic arguments (e.g. List<Integer>).
type TNamed struct {
	Name TypeName
	Args []Type
}

func (t TNamed) String() string {
	if len(t.Args) == 0 {
		return t.Name.String()
	}
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s<%s>", t.Name.String(), strings.Join(args, ", "))
}

func (t TNamed) Apply(s Subst) Type {
	return applyWithCycleCheck(t, s, make(map[string]bool))
}

func (t TNamed) FreeVariables() []string {
	vars := []string{}
	for _, a := range t.Args {
		vars = append(vars, a.FreeVariables()...)
	}
	return uniqueVars(vars)
}

// TUntyped is the unconstrained top type, used for omitted bounds and
// unannotated positions.
type TUntyped struct{}

func (t TUntyped) String() string          { return "untyped" }
func (t TUntyped) Apply(Subst) Type        { return t }
func (t TUntyped) FreeVariables() []string { return nil }

// Subst maps type-parameter names to the types applied for them.
type Subst map[string]Type

// NewSubst binds declared parameters to applied arguments positionally.
// The caller guarantees matching lengths (the generics validator checks
// arity before substitution happens).
func NewSubst(params []TypeParam, args []Type) Subst {
	s := make(Subst, len(params))
	for i, p := range params {
		if i < len(args) {
			s[p.Name] = args[i]
		}
	}
	return s
}

// applyWithCycleCheck applies a substitution, guarding against
// self-referential bindings (a -> List<a>) looping forever.
func applyWithCycleCheck(t Type, s Subst, visited map[string]bool) Type {
	switch typ := t.(type) {
	case TVariable:
		if visited[typ.Name] {
			return typ
		}
		replacement, ok := s[typ.Name]
		if !ok {
			return typ
		}
		if v, ok := replacement.(TVariable); ok && v.Name == typ.Name {
			return typ
		}
		newVisited := copyVisited(visited)
		newVisited[typ.Name] = true
		return applyWithCycleCheck(replacement, s, newVisited)

	case TNamed:
		if len(typ.Args) == 0 {
			return typ
		}
		newArgs := make([]Type, len(typ.Args))
		for i, a := range typ.Args {
			newArgs[i] = applyWithCycleCheck(a, s, visited)
		}
		return TNamed{Name: typ.Name, Args: newArgs}

	default:
		return t
	}
}

func copyVisited(m map[string]bool) map[string]bool {
	newMap := make(map[string]bool, len(m))
	for k, v := range m {
		newMap[k] = v
	}
	return newMap
}

func uniqueVars(vars []string) []string {
	unique := []string{}
	seen := map[string]bool{}
	for _, v := range vars {
		if !seen[v] {
			seen[v] = true
			unique = append(unique, v)
		}
	}
	return unique
}

// TypesEqual compares two type expressions structurally.
func TypesEqual(a, b Type) bool {
	switch at := a.(type) {
	case TVariable:
		bt, ok := b.(TVariable)
		return ok && at.Name == bt.Name
	case TUntyped:
		_, ok := b.(TUntyped)
		return ok
	case TNamed:
		bt, ok := b.(TNamed)
		if !ok || !at.Name.Equal(bt.Name) || len(at.Args) != len(bt.Args) {
			return false
		}
		for i := range at.Args {
			if !TypesEqual(at.Args[i], bt.Args[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
