package decl

// Variance tags how a type parameter may vary across subtyping.
type Variance int

const (
	Invariant Variance = iota
	Covariant
	Contravariant
)

func (v Variance) String() string {
	switch v {
	case Covariant:
		return "covariant"
	case Contravariant:
		return "contravariant"
	default:
		return "invariant"
	}
}

// TypeParam is one declared generic parameter.
type TypeParam struct {
	Name     string
	Variance Variance
	Bound    Type // nil when unbounded
	Loc      *Location
}

// TypeApp is an applied reference to another type: superclass targets,
// mixin targets and module self-type constraints all use this shape.
type TypeApp struct {
	Name TypeName
	Args []Type
	Loc  *Location
}

// Declaration is the closed set of top-level declaration forms. A single
// TypeName may have several partial Declarations (reopened types); the
// name table keeps them in input order.
type Declaration interface {
	DeclName() TypeName
	Params() []TypeParam
	DeclMembers() []Member
	Location() *Location
	declNode()
}

// Class declares (or reopens) a class.
type Class struct {
	Name       TypeName
	TypeParams []TypeParam
	Superclass *TypeApp // nil for root classes
	Members    []Member
	Loc        *Location
}

func (c *Class) DeclName() TypeName    { return c.Name }
func (c *Class) Params() []TypeParam   { return c.TypeParams }
func (c *Class) DeclMembers() []Member { return c.Members }
func (c *Class) Location() *Location   { return c.Loc }
func (c *Class) declNode()             {}

// Module declares (or reopens) a mixin module.
type Module struct {
	Name       TypeName
	TypeParams []TypeParam
	SelfTypes  []TypeApp // constraints on the mixing-in host
	Members    []Member
	Loc        *Location
}

func (m *Module) DeclName() TypeName    { return m.Name }
func (m *Module) Params() []TypeParam   { return m.TypeParams }
func (m *Module) DeclMembers() []Member { return m.Members }
func (m *Module) Location() *Location   { return m.Loc }
func (m *Module) declNode()             {}

// Interface declares a structural interface: method signatures only.
type Interface struct {
	Name       TypeName
	TypeParams []TypeParam
	Members    []Member
	Loc        *Location
}

func (i *Interface) DeclName() TypeName    { return i.Name }
func (i *Interface) Params() []TypeParam   { return i.TypeParams }
func (i *Interface) DeclMembers() []Member { return i.Members }
func (i *Interface) Location() *Location   { return i.Loc }
func (i *Interface) declNode()             {}

// Alias declares a type-level alias for a type expression.
type Alias struct {
	Name TypeName
	Type Type
	Loc  *Location
}

func (a *Alias) DeclName() TypeName    { return a.Name }
func (a *Alias) Params() []TypeParam   { return nil }
func (a *Alias) DeclMembers() []Member { return nil }
func (a *Alias) Location() *Location   { return a.Loc }
func (a *Alias) declNode()             {}

// KindOf returns the name-kind tag for a declaration variant.
func KindOf(d Declaration) NameKind {
	switch d.(type) {
	case *Class:
		return ClassName
	case *Module:
		return ModuleName
	case *Interface:
		return InterfaceName
	case *Alias:
		return AliasName
	default:
		return UnknownName
	}
}
