// Package generics validates generic type applications (argument arity)
// and variance-position consistency of declared type parameters.
package generics

import (
	"github.com/typegraph/typegraph/internal/decl"
	"github.com/typegraph/typegraph/internal/diagnostics"
	"github.com/typegraph/typegraph/internal/names"
)

// CheckApplication verifies that an applied argument list matches the
// declared parameter count.
func CheckApplication(name decl.TypeName, args []decl.Type, params []decl.TypeParam, loc *decl.Location) error {
	if len(args) != len(params) {
		return &diagnostics.InvalidTypeApplicationError{
			TypeName: name,
			Args:     args,
			Params:   params,
			Loc:      loc,
		}
	}
	return nil
}

// Validator runs declaration-site checks: variance positions of every
// member signature, application arity of every generic reference inside
// signatures, and resolvability of parameter bounds.
type Validator struct {
	table *names.Table
}

func NewValidator(table *names.Table) *Validator {
	return &Validator{table: table}
}

// CheckDeclaration validates one declaration and returns its first
// inconsistency, or nil.
func (v *Validator) CheckDeclaration(d decl.Declaration) error {
	name := d.DeclName().WithKind(decl.KindOf(d))
	params := d.Params()

	for _, p := range params {
		if p.Bound == nil {
			continue
		}
		if err := v.checkSignatureType(p.Bound, name, p.Loc); err != nil {
			return err
		}
	}

	for _, m := range d.DeclMembers() {
		switch member := m.(type) {
		case *decl.MethodDef:
			if err := v.checkMethod(name, params, member); err != nil {
				return err
			}
		case *decl.AttrDef:
			if err := v.checkMethod(name, params, member.ReaderDef()); err != nil {
				return err
			}
			if writer := member.WriterDef(); writer != nil {
				if err := v.checkMethod(name, params, writer); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (v *Validator) checkMethod(name decl.TypeName, params []decl.TypeParam, m *decl.MethodDef) error {
	ref := decl.MethodRef{Kind: m.Kind, Type: name, Method: m.Name}
	for _, sig := range m.Overloads {
		for _, paramType := range sig.Params {
			if err := v.checkSignatureType(paramType, name, sig.Loc); err != nil {
				return err
			}
			if err := checkVariancePosition(name, ref, params, paramType, inputPosition, sig.Loc); err != nil {
				return err
			}
		}
		if sig.Return != nil {
			if err := v.checkSignatureType(sig.Return, name, sig.Loc); err != nil {
				return err
			}
			if err := checkVariancePosition(name, ref, params, sig.Return, outputPosition, sig.Loc); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkSignatureType arity-checks every generic application inside a
// type expression. Names that do not resolve are tolerated here: member
// signatures may reference the pre-declared surface library, which is
// input data owned by the upstream collaborator. Applications of types
// the corpus does declare must match the declared parameter count.
func (v *Validator) checkSignatureType(t decl.Type, context decl.TypeName, loc *decl.Location) error {
	named, ok := t.(decl.TNamed)
	if !ok {
		return nil
	}
	if resolved, err := v.table.Resolve(named.Name, context.Segments()); err == nil {
		partials := v.table.DeclarationsOf(resolved)
		if err := CheckApplication(resolved, named.Args, partials[0].Params(), loc); err != nil {
			return err
		}
	}
	for _, arg := range named.Args {
		if err := v.checkSignatureType(arg, context, loc); err != nil {
			return err
		}
	}
	return nil
}

type position int

const (
	inputPosition position = iota
	outputPosition
)

// checkVariancePosition rejects covariant parameters occurring in input
// positions and contravariant parameters in output positions. Invariant
// parameters may occur anywhere.
func checkVariancePosition(name decl.TypeName, ref decl.MethodRef, params []decl.TypeParam, t decl.Type, pos position, loc *decl.Location) error {
	byName := make(map[string]decl.TypeParam, len(params))
	for _, p := range params {
		byName[p.Name] = p
	}
	for _, varName := range t.FreeVariables() {
		p, ok := byName[varName]
		if !ok {
			continue
		}
		if (p.Variance == decl.Covariant && pos == inputPosition) ||
			(p.Variance == decl.Contravariant && pos == outputPosition) {
			return &diagnostics.InvalidVarianceAnnotationError{
				TypeName: name,
				Param:    p,
				Method:   ref,
				Loc:      loc,
			}
		}
	}
	return nil
}
