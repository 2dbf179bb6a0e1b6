// Package definitions merges member declarations along ancestor chains
// into one method definition table per type.
package definitions

import (
	"github.com/typegraph/typegraph/internal/ancestry"
	"github.com/typegraph/typegraph/internal/decl"
	"github.com/typegraph/typegraph/internal/diagnostics"
	"github.com/typegraph/typegraph/internal/names"
)

// Builder computes definition tables over an immutable name table and
// an ancestor builder. It holds no per-request state.
type Builder struct {
	table    *names.Table
	ancestry *ancestry.Builder
}

func NewBuilder(table *names.Table, ancestors *ancestry.Builder) *Builder {
	return &Builder{table: table, ancestry: ancestors}
}

// InstanceDefinitions returns the instance method table of a type: one
// Definition per method name, merged most-derived first along the
// instance ancestor chain.
func (b *Builder) InstanceDefinitions(name decl.TypeName) (map[string]*Definition, error) {
	partials := b.table.DeclarationsOf(name)
	if len(partials) == 0 {
		return nil, &diagnostics.NoTypeFoundError{TypeName: name}
	}
	chain, err := b.ancestry.InstanceAncestors(name, ancestry.SelfArgs(partials[0].Params()))
	if err != nil {
		return nil, err
	}
	return b.merge(chain, decl.InstanceKind)
}

// SingletonDefinitions returns the singleton method table: the type's
// own singleton-scoped members plus instance members of extended
// modules, merged along the singleton ancestor chain.
func (b *Builder) SingletonDefinitions(name decl.TypeName) (map[string]*Definition, error) {
	chain, err := b.ancestry.SingletonAncestors(name)
	if err != nil {
		return nil, err
	}
	return b.merge(chain, decl.SingletonKind)
}

// mergeState tracks one method across the walk: whether the nearest
// definition left an open overload group, and which interface owns it.
type mergeState struct {
	def             *Definition
	pendingOverload bool
	interfaceOwner  *decl.TypeName
}

// merge walks the chain nearest to farthest. The first table that
// defines a name wins; farther definitions are shadowed unless the
// nearer one is an explicit overload extension, in which case farther
// signatures accumulate into the same overload set.
func (b *Builder) merge(chain []ancestry.Entry, kind decl.MethodKind) (map[string]*Definition, error) {
	result := make(map[string]*mergeState)

	for _, entry := range chain {
		own, err := b.ownTableOf(entry, kind)
		if err != nil {
			return nil, err
		}
		if err := b.mergeEntry(result, entry, own, kind); err != nil {
			return nil, err
		}
	}

	defs := make(map[string]*Definition, len(result))
	for name, state := range result {
		defs[name] = state.def
	}
	return defs, nil
}

func (b *Builder) mergeEntry(result map[string]*mergeState, entry ancestry.Entry, own *ownTable, kind decl.MethodKind) error {
	var ifaceOwner *decl.TypeName
	if entry.Kind == ancestry.ModuleEntry && entry.Name.Kind == decl.InterfaceName {
		name := entry.Name
		ifaceOwner = &name
	}

	for _, methodName := range own.order {
		ownDef := own.defs[methodName]
		existing, ok := result[methodName]
		if !ok {
			result[methodName] = &mergeState{
				def:             ownDef.def,
				pendingOverload: ownDef.overloading,
				interfaceOwner:  ifaceOwner,
			}
			continue
		}

		if existing.pendingOverload {
			existing.def.Overloads = append(existing.def.Overloads, ownDef.def.Overloads...)
			existing.def.Sources = append(existing.def.Sources, ownDef.def.Sources...)
			existing.pendingOverload = ownDef.overloading
			continue
		}

		// Two interfaces independently declaring one method must agree;
		// anything else along the chain is ordinary shadowing.
		if existing.interfaceOwner != nil && ifaceOwner != nil && !existing.interfaceOwner.Equal(*ifaceOwner) {
			if !sigSetsEqual(existing.def.Overloads, ownDef.def.Overloads) {
				return &diagnostics.DuplicatedInterfaceMethodDefinitionError{
					Method: decl.MethodRef{Kind: kind, Type: existing.def.Owner, Method: methodName},
					Mixins: []decl.TypeName{*existing.interfaceOwner, *ifaceOwner},
					Loc:    ownDef.def.Sources[0].Loc,
				}
			}
		}
	}
	return nil
}

// ownTableOf builds the member table one ancestor entry contributes.
// Singleton entries pull the type's singleton-scoped members; module
// entries in a singleton chain (extended modules) pull instance members.
func (b *Builder) ownTableOf(entry ancestry.Entry, kind decl.MethodKind) (*ownTable, error) {
	memberKind := kind
	if kind == decl.SingletonKind && entry.Kind == ancestry.ModuleEntry {
		memberKind = decl.InstanceKind
	}

	partials := b.table.DeclarationsOf(entry.Name)
	if len(partials) == 0 {
		return nil, &diagnostics.NoTypeFoundError{TypeName: entry.Name}
	}
	subst := decl.NewSubst(partials[0].Params(), entry.Args)
	return buildOwnTable(entry.Name, partials, memberKind, subst)
}
