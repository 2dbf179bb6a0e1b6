package names

import (
	"errors"
	"testing"

	"github.com/typegraph/typegraph/internal/decl"
	"github.com/typegraph/typegraph/internal/diagnostics"
)

func classDecl(name string, ns ...string) *decl.Class {
	return &decl.Class{Name: decl.TypeName{Namespace: ns, Name: name, Kind: decl.ClassName}}
}

func moduleDecl(name string, ns ...string) *decl.Module {
	return &decl.Module{Name: decl.TypeName{Namespace: ns, Name: name, Kind: decl.ModuleName}}
}

func TestDeclarationsOfKeepsOrder(t *testing.T) {
	table := NewTable()
	first := classDecl("Foo")
	second := classDecl("Foo")
	table.Add(first)
	table.Add(second)

	partials := table.DeclarationsOf(decl.TypeName{Name: "Foo"})
	if len(partials) != 2 {
		t.Fatalf("expected 2 partials, got %d", len(partials))
	}
	if partials[0] != decl.Declaration(first) || partials[1] != decl.Declaration(second) {
		t.Errorf("partials out of input order")
	}
}

func TestDeclarationsOfUnknown(t *testing.T) {
	table := NewTable()
	if got := table.DeclarationsOf(decl.TypeName{Name: "Nope"}); len(got) != 0 {
		t.Errorf("expected empty list for unknown name, got %d", len(got))
	}
}

func TestResolveLexicalSearch(t *testing.T) {
	table := NewTable()
	table.Add(classDecl("C"))           // ::C
	table.Add(classDecl("C", "A", "B")) // ::A::B::C
	table.Add(moduleDecl("M", "A"))     // ::A::M

	tests := []struct {
		name    string
		ref     string
		context []string
		want    string
	}{
		{"innermost wins", "C", []string{"A", "B"}, "::A::B::C"},
		{"outward fallback", "C", []string{"A"}, "::C"},
		{"root context", "C", nil, "::C"},
		{"sibling namespace", "M", []string{"A", "B"}, "::A::M"},
		{"qualified relative", "B::C", []string{"A"}, "::A::B::C"},
		{"absolute ignores context", "::C", []string{"A", "B"}, "::C"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := table.Resolve(decl.ParseTypeName(tt.ref), tt.context)
			if err != nil {
				t.Fatalf("Resolve(%s) error: %v", tt.ref, err)
			}
			if got.String() != tt.want {
				t.Errorf("Resolve(%s) = %s, want %s", tt.ref, got, tt.want)
			}
		})
	}
}

func TestResolveFillsKind(t *testing.T) {
	table := NewTable()
	table.Add(moduleDecl("M"))

	got, err := table.Resolve(decl.ParseTypeName("M"), nil)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if got.Kind != decl.ModuleName {
		t.Errorf("Kind = %s, want module", got.Kind)
	}
}

func TestResolveUnknown(t *testing.T) {
	table := NewTable()
	table.Add(classDecl("C"))

	_, err := table.Resolve(decl.ParseTypeName("Missing"), []string{"A"})
	var notFound *diagnostics.NoTypeFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NoTypeFoundError, got %v", err)
	}
	if notFound.TypeName.Name != "Missing" {
		t.Errorf("error names %s, want Missing", notFound.TypeName.Name)
	}
}

func TestTypeNamesDeterministic(t *testing.T) {
	table := NewTable()
	table.Add(classDecl("B"))
	table.Add(classDecl("A"))
	table.Add(classDecl("B")) // reopening must not move B

	names := table.TypeNames()
	if len(names) != 2 {
		t.Fatalf("expected 2 names, got %d", len(names))
	}
	if names[0].Name != "B" || names[1].Name != "A" {
		t.Errorf("names = %v, want [B A]", names)
	}
}
