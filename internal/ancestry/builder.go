// Package ancestry computes linearized ancestor chains: the ordered,
// cycle-free sequence of types consulted for method resolution.
package ancestry

import (
	"github.com/typegraph/typegraph/internal/decl"
	"github.com/typegraph/typegraph/internal/diagnostics"
	"github.com/typegraph/typegraph/internal/generics"
	"github.com/typegraph/typegraph/internal/names"
)

// EntryKind tags one hop of an ancestor chain.
type EntryKind int

const (
	ClassEntry EntryKind = iota
	ModuleEntry
	SingletonEntry
)

func (k EntryKind) String() string {
	switch k {
	case ModuleEntry:
		return "module"
	case SingletonEntry:
		return "singleton"
	default:
		return "class"
	}
}

// Entry is one ancestor: a class, a mixed-in module/interface, or a
// singleton. Args are the generic arguments applied at this hop, already
// substituted through the applying type. Origin records the mixin
// directive that contributed a module entry.
type Entry struct {
	Kind      EntryKind
	Name      decl.TypeName
	Args      []decl.Type
	Origin    *decl.Mixin
	SelfTypes []decl.TypeApp
}

// Builder resolves ancestor chains against an immutable name table. It
// holds no per-request state; the visited path lives on the call stack
// of each top-level request, so concurrent resolutions of unrelated
// types never share cycle-detection state.
type Builder struct {
	table *names.Table
}

func NewBuilder(table *names.Table) *Builder {
	return &Builder{table: table}
}

// InstanceAncestors returns the instance-side ancestor chain of a type,
// nearest (most derived) first, with args applied positionally.
func (b *Builder) InstanceAncestors(name decl.TypeName, args []decl.Type) ([]Entry, error) {
	return b.instanceAncestors(name, args, newPath())
}

// SingletonAncestors returns the singleton-side chain: the singleton
// itself, extended modules, then the superclass's singleton chain.
func (b *Builder) SingletonAncestors(name decl.TypeName) ([]Entry, error) {
	return b.singletonAncestors(name, newPath())
}

// SelfArgs builds the identity argument list of a declaration: each
// declared parameter applied as itself. definitions_of uses it so an
// unapplied type keeps its parameters symbolic.
func SelfArgs(params []decl.TypeParam) []decl.Type {
	args := make([]decl.Type, len(params))
	for i, p := range params {
		args[i] = decl.TVariable{Name: p.Name}
	}
	return args
}

func (b *Builder) instanceAncestors(name decl.TypeName, args []decl.Type, path *visitPath) ([]Entry, error) {
	key := "instance:" + name.Key()
	if path.contains(key) {
		return nil, &diagnostics.RecursiveAncestorError{Path: path.cycle(key, name)}
	}
	path.push(key, name)
	defer path.pop()

	merged, err := b.mergedOf(name)
	if err != nil {
		return nil, err
	}
	if err := generics.CheckApplication(merged.Name, args, merged.TypeParams, merged.Loc); err != nil {
		return nil, err
	}
	subst := decl.NewSubst(merged.TypeParams, args)

	if err := b.checkSelfTypes(merged); err != nil {
		return nil, err
	}

	var chain []Entry

	// Prepended mixins come before self, most recent directive nearest.
	prepends, err := b.mixinEntries(merged, decl.Prepend, subst, path)
	if err != nil {
		return nil, err
	}
	chain = append(chain, prepends...)

	self := Entry{Kind: ClassEntry, Name: merged.Name, Args: args}
	if merged.Kind != decl.ClassName {
		self.Kind = ModuleEntry
		self.SelfTypes = merged.SelfTypes
	}
	chain = append(chain, self)

	// Included mixins come after self, most recent directive nearest.
	includes, err := b.mixinEntries(merged, decl.Include, subst, path)
	if err != nil {
		return nil, err
	}
	chain = append(chain, includes...)

	if merged.Superclass != nil {
		superChain, err := b.superclassChain(merged, subst, path)
		if err != nil {
			return nil, err
		}
		chain = append(chain, superChain...)
	}
	return chain, nil
}

func (b *Builder) singletonAncestors(name decl.TypeName, path *visitPath) ([]Entry, error) {
	key := "singleton:" + name.Key()
	if path.contains(key) {
		return nil, &diagnostics.RecursiveAncestorError{Path: path.cycle(key, name)}
	}
	path.push(key, name)
	defer path.pop()

	merged, err := b.mergedOf(name)
	if err != nil {
		return nil, err
	}

	chain := []Entry{{Kind: SingletonEntry, Name: merged.Name}}

	// Extended modules contribute their instance members to the
	// singleton side.
	extends, err := b.mixinEntries(merged, decl.Extend, decl.Subst{}, path)
	if err != nil {
		return nil, err
	}
	chain = append(chain, extends...)

	if merged.Superclass != nil {
		superName, err := b.resolveSuperclass(merged)
		if err != nil {
			return nil, err
		}
		superChain, err := b.singletonAncestors(superName, path)
		if err != nil {
			return nil, err
		}
		chain = append(chain, superChain...)
	}
	return chain, nil
}

func (b *Builder) mergedOf(name decl.TypeName) (*mergedDecl, error) {
	partials := b.table.DeclarationsOf(name)
	if len(partials) == 0 {
		return nil, &diagnostics.NoTypeFoundError{TypeName: name}
	}
	merged, err := mergePartials(name, partials)
	if err != nil {
		return nil, err
	}
	if merged.Kind == decl.AliasName {
		// Aliases have no ancestry of their own.
		return nil, &diagnostics.NoTypeFoundError{TypeName: name, Loc: merged.Loc}
	}
	return merged, nil
}

func (b *Builder) checkSelfTypes(merged *mergedDecl) error {
	for _, self := range merged.SelfTypes {
		if _, err := b.table.Resolve(self.Name, merged.Name.Segments()); err != nil {
			return &diagnostics.NoSelfTypeFoundError{
				TypeName: merged.Name,
				Self:     self,
				Loc:      self.Loc,
			}
		}
	}
	return nil
}

func (b *Builder) resolveSuperclass(merged *mergedDecl) (decl.TypeName, error) {
	superName, err := b.table.Resolve(merged.Superclass.Name, merged.Name.Segments())
	if err != nil || superName.Kind != decl.ClassName {
		return decl.TypeName{}, &diagnostics.NoSuperclassFoundError{
			TypeName:   merged.Name,
			Superclass: *merged.Superclass,
			Loc:        merged.Superclass.Loc,
		}
	}
	return superName, nil
}

func (b *Builder) superclassChain(merged *mergedDecl, subst decl.Subst, path *visitPath) ([]Entry, error) {
	superName, err := b.resolveSuperclass(merged)
	if err != nil {
		return nil, err
	}
	superArgs := make([]decl.Type, len(merged.Superclass.Args))
	for i, a := range merged.Superclass.Args {
		superArgs[i] = a.Apply(subst)
	}
	return b.instanceAncestors(superName, superArgs, path)
}
