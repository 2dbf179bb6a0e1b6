// Package session owns one build session: an immutable snapshot of all
// input declarations plus memoized ancestor chains and definition
// tables, computed at most once per type even under concurrent access.
package session

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/typegraph/typegraph/internal/ancestry"
	"github.com/typegraph/typegraph/internal/decl"
	"github.com/typegraph/typegraph/internal/definitions"
	"github.com/typegraph/typegraph/internal/names"
)

// Session is the per-build resolution context. It is created after the
// name table is fully loaded and discarded when the build ends; results
// are immutable after first computation and never cached across
// sessions.
type Session struct {
	ID       string
	Table    *names.Table
	Ancestry *ancestry.Builder
	Defs     *definitions.Builder

	mu             sync.Mutex
	instanceCells  map[string]*cell[[]ancestry.Entry]
	singletonCells map[string]*cell[[]ancestry.Entry]
	instanceDefs   map[string]*cell[map[string]*definitions.Definition]
	singletonDefs  map[string]*cell[map[string]*definitions.Definition]
}

func New(table *names.Table) *Session {
	builder := ancestry.NewBuilder(table)
	return &Session{
		ID:             uuid.NewString(),
		Table:          table,
		Ancestry:       builder,
		Defs:           definitions.NewBuilder(table, builder),
		instanceCells:  make(map[string]*cell[[]ancestry.Entry]),
		singletonCells: make(map[string]*cell[[]ancestry.Entry]),
		instanceDefs:   make(map[string]*cell[map[string]*definitions.Definition]),
		singletonDefs:  make(map[string]*cell[map[string]*definitions.Definition]),
	}
}

// cell is a single-assignment result slot: the first caller computes,
// every later caller waits for the same result. This makes the
// at-most-one-computation guarantee explicit instead of relying on ad
// hoc caching flags.
type cell[T any] struct {
	done chan struct{}
	val  T
	err  error
}

func computeOnce[T any](mu *sync.Mutex, cells map[string]*cell[T], key string, compute func() (T, error)) (T, error) {
	mu.Lock()
	c, ok := cells[key]
	if !ok {
		c = &cell[T]{done: make(chan struct{})}
		cells[key] = c
	}
	mu.Unlock()

	if ok {
		<-c.done
		return c.val, c.err
	}
	c.val, c.err = compute()
	close(c.done)
	return c.val, c.err
}

// InstanceAncestors memoizes the instance ancestor chain of a type,
// applied with its own parameters kept symbolic.
func (s *Session) InstanceAncestors(name decl.TypeName) ([]ancestry.Entry, error) {
	return computeOnce(&s.mu, s.instanceCells, name.Key(), func() ([]ancestry.Entry, error) {
		partials := s.Table.DeclarationsOf(name)
		var args []decl.Type
		if len(partials) > 0 {
			args = ancestry.SelfArgs(partials[0].Params())
		}
		return s.Ancestry.InstanceAncestors(name, args)
	})
}

// SingletonAncestors memoizes the singleton ancestor chain of a type.
func (s *Session) SingletonAncestors(name decl.TypeName) ([]ancestry.Entry, error) {
	return computeOnce(&s.mu, s.singletonCells, name.Key(), func() ([]ancestry.Entry, error) {
		return s.Ancestry.SingletonAncestors(name)
	})
}

// InstanceDefinitions memoizes the instance method table of a type.
func (s *Session) InstanceDefinitions(name decl.TypeName) (map[string]*definitions.Definition, error) {
	return computeOnce(&s.mu, s.instanceDefs, name.Key(), func() (map[string]*definitions.Definition, error) {
		return s.Defs.InstanceDefinitions(name)
	})
}

// SingletonDefinitions memoizes the singleton method table of a type.
func (s *Session) SingletonDefinitions(name decl.TypeName) (map[string]*definitions.Definition, error) {
	return computeOnce(&s.mu, s.singletonDefs, name.Key(), func() (map[string]*definitions.Definition, error) {
		return s.Defs.SingletonDefinitions(name)
	})
}

// ResolveAll resolves every declared type in parallel: ancestor chains
// and definition tables on both sides. Each failing type contributes
// one error to the report and does not hide unrelated diagnostics;
// cancelling the context abandons the whole session.
func (s *Session) ResolveAll(ctx context.Context) (*Report, error) {
	typeNames := s.Table.TypeNames()
	report := NewReport(s.ID, len(typeNames))

	g, ctx := errgroup.WithContext(ctx)
	for i, name := range typeNames {
		i, name := i, name
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			report.results[i] = s.resolveOne(name)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *Session) resolveOne(name decl.TypeName) TypeResult {
	result := TypeResult{Name: name}
	if name.Kind == decl.AliasName {
		// Aliases carry no ancestry or method table of their own.
		return result
	}

	var err error
	if result.InstanceAncestors, err = s.InstanceAncestors(name); err != nil {
		result.Err = err
		return result
	}
	if result.SingletonAncestors, err = s.SingletonAncestors(name); err != nil {
		result.Err = err
		return result
	}
	if result.InstanceMethods, err = s.InstanceDefinitions(name); err != nil {
		result.Err = err
		return result
	}
	if result.SingletonMethods, err = s.SingletonDefinitions(name); err != nil {
		result.Err = err
		return result
	}
	return result
}
