package ancestry

import (
	"github.com/typegraph/typegraph/internal/decl"
	"github.com/typegraph/typegraph/internal/diagnostics"
	"github.com/typegraph/typegraph/internal/generics"
)

// mixinEntries expands the host's mixin directives of one kind into
// ancestor entries. Directives are walked in reverse input order so the
// most recent directive lands nearest in the chain; each target module
// contributes its own full module chain (its prepends, itself, its
// includes), recursively.
func (b *Builder) mixinEntries(host *mergedDecl, kind decl.MixinKind, subst decl.Subst, path *visitPath) ([]Entry, error) {
	directives := host.mixins(kind)
	var entries []Entry
	for i := len(directives) - 1; i >= 0; i-- {
		mixin := directives[i]
		expanded, err := b.expandMixin(host, mixin, subst, path)
		if err != nil {
			return nil, err
		}
		entries = append(entries, expanded...)
	}
	return entries, nil
}

func (b *Builder) expandMixin(host *mergedDecl, mixin *decl.Mixin, subst decl.Subst, path *visitPath) ([]Entry, error) {
	target, err := b.table.Resolve(mixin.App.Name, host.Name.Segments())
	if err != nil {
		return nil, &diagnostics.NoTypeFoundError{TypeName: mixin.App.Name, Loc: mixin.Loc}
	}
	if target.Kind != decl.ModuleName && target.Kind != decl.InterfaceName {
		return nil, &diagnostics.NoMixinFoundError{
			TypeName: host.Name,
			Mixin:    mixin,
			Loc:      mixin.Loc,
		}
	}

	targetMerged, err := b.mergedOf(target)
	if err != nil {
		return nil, err
	}
	args := make([]decl.Type, len(mixin.App.Args))
	for i, a := range mixin.App.Args {
		args[i] = a.Apply(subst)
	}
	if err := generics.CheckApplication(target, args, targetMerged.TypeParams, mixin.Loc); err != nil {
		return nil, err
	}

	// The target's own chain (it may include/prepend further modules).
	chain, err := b.instanceAncestors(target, args, path)
	if err != nil {
		return nil, err
	}

	// Tag entries lacking an originating directive with this one: the
	// target itself and anything it contributed without its own mixin.
	for i := range chain {
		chain[i].Kind = ModuleEntry
		if chain[i].Origin == nil {
			chain[i].Origin = mixin
		}
	}
	return chain, nil
}

// visitPath is the in-progress resolution stack used for cycle
// detection. It is scoped to one top-level request and never shared
// across goroutines.
type visitPath struct {
	keys  []string
	names []decl.TypeName
	seen  map[string]bool
}

func newPath() *visitPath {
	return &visitPath{seen: make(map[string]bool)}
}

func (p *visitPath) contains(key string) bool { return p.seen[key] }

func (p *visitPath) push(key string, name decl.TypeName) {
	p.keys = append(p.keys, key)
	p.names = append(p.names, name)
	p.seen[key] = true
}

func (p *visitPath) pop() {
	last := len(p.keys) - 1
	delete(p.seen, p.keys[last])
	p.keys = p.keys[:last]
	p.names = p.names[:last]
}

// cycle returns the full cycle path: every name from the first
// occurrence of key onward, closed with the revisited name.
func (p *visitPath) cycle(key string, name decl.TypeName) []decl.TypeName {
	start := 0
	for i, k := range p.keys {
		if k == key {
			start = i
			break
		}
	}
	cycle := make([]decl.TypeName, 0, len(p.names)-start+1)
	cycle = append(cycle, p.names[start:]...)
	return append(cycle, name)
}
