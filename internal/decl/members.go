package decl

import (
	"fmt"
	"strings"

	"github.com/typegraph/typegraph/internal/config"
)

// MethodKind distinguishes instance-side and singleton-side members.
type MethodKind int

const (
	InstanceKind MethodKind = iota
	SingletonKind
)

func (k MethodKind) String() string {
	if k == SingletonKind {
		return "singleton"
	}
	return "instance"
}

// Sep returns the separator used when rendering a method reference of
// this kind (Foo#bar vs Foo.bar).
func (k MethodKind) Sep() string {
	if k == SingletonKind {
		return config.SingletonMethodSep
	}
	return config.InstanceMethodSep
}

// MethodRef is a fully qualified (kind, type, method) triple. Its String
// is the human-readable renderer shared by diagnostics and reports.
type MethodRef struct {
	Kind   MethodKind
	Type   TypeName
	Method string
}

func (r MethodRef) String() string {
	return r.Type.String() + r.Kind.Sep() + r.Method
}

// MethodSig is one signature of a method definition.
type MethodSig struct {
	Params []Type
	Return Type
	Loc    *Location
}

func (s MethodSig) String() string {
	params := make([]string, len(s.Params))
	for i, p := range s.Params {
		params[i] = p.String()
	}
	ret := "untyped"
	if s.Return != nil {
		ret = s.Return.String()
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(params, ", "), ret)
}

// Apply substitutes type arguments through the whole signature.
func (s MethodSig) Apply(subst Subst) MethodSig {
	params := make([]Type, len(s.Params))
	for i, p := range s.Params {
		params[i] = p.Apply(subst)
	}
	ret := s.Return
	if ret != nil {
		ret = ret.Apply(subst)
	}
	return MethodSig{Params: params, Return: ret, Loc: s.Loc}
}

// SigsEqual compares two signatures structurally, ignoring locations.
func SigsEqual(a, b MethodSig) bool {
	if len(a.Params) != len(b.Params) {
		return false
	}
	for i := range a.Params {
		if !TypesEqual(a.Params[i], b.Params[i]) {
			return false
		}
	}
	aRet := a.Return
	bRet := b.Return
	if aRet == nil {
		aRet = TUntyped{}
	}
	if bRet == nil {
		bRet = TUntyped{}
	}
	return TypesEqual(aRet, bRet)
}

// Member is the closed set of declaration body members.
type Member interface {
	Location() *Location
	memberNode()
}

// MethodDef declares a method with one or more overload signatures.
// Overloading marks the definition as an overload extension: instead of
// shadowing a farther same-named method it accumulates its signatures.
type MethodDef struct {
	Name         string
	Kind         MethodKind
	Overloads    []MethodSig
	Overloading  bool
	Incompatible bool
	Loc          *Location
}

func (m *MethodDef) Location() *Location { return m.Loc }
func (m *MethodDef) memberNode()         {}

// AttrDef declares an attribute; it desugars to accessor methods.
type AttrDef struct {
	Name     string
	Kind     MethodKind
	Type     Type
	Writable bool
	Loc      *Location
}

func (a *AttrDef) Location() *Location { return a.Loc }
func (a *AttrDef) memberNode()         {}

// ReaderDef returns the reader method this attribute desugars to.
func (a *AttrDef) ReaderDef() *MethodDef {
	return &MethodDef{
		Name:      a.Name,
		Kind:      a.Kind,
		Overloads: []MethodSig{{Return: a.Type, Loc: a.Loc}},
		Loc:       a.Loc,
	}
}

// WriterDef returns the writer method for writable attributes, nil
// otherwise.
func (a *AttrDef) WriterDef() *MethodDef {
	if !a.Writable {
		return nil
	}
	return &MethodDef{
		Name:      a.Name + config.WriterMethodSuffix,
		Kind:      a.Kind,
		Overloads: []MethodSig{{Params: []Type{a.Type}, Return: a.Type, Loc: a.Loc}},
		Loc:       a.Loc,
	}
}

// MixinKind is the flavor of a mixin directive.
type MixinKind int

const (
	Include MixinKind = iota
	Extend
	Prepend
)

func (k MixinKind) String() string {
	switch k {
	case Extend:
		return "extend"
	case Prepend:
		return "prepend"
	default:
		return "include"
	}
}

// Mixin directs another module/interface into the host's ancestor chain.
type Mixin struct {
	Kind MixinKind
	App  TypeApp
	Loc  *Location
}

func (m *Mixin) Location() *Location { return m.Loc }
func (m *Mixin) memberNode()         {}

// AliasMember declares a method alias: NewName resolves to OldName
// within the same ancestor.
type AliasMember struct {
	NewName string
	OldName string
	Kind    MethodKind
	Loc     *Location
}

func (a *AliasMember) Location() *Location { return a.Loc }
func (a *AliasMember) memberNode()         {}
