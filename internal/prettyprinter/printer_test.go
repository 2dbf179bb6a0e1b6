package prettyprinter

import (
	"testing"

	"github.com/typegraph/typegraph/internal/ancestry"
	"github.com/typegraph/typegraph/internal/decl"
	"github.com/typegraph/typegraph/internal/definitions"
	"github.com/typegraph/typegraph/internal/diagnostics"
)

func TestEntry(t *testing.T) {
	integer := decl.TNamed{Name: decl.TypeName{Name: "Integer", Kind: decl.ClassName}}
	tests := []struct {
		name  string
		entry ancestry.Entry
		want  string
	}{
		{
			"plain class",
			ancestry.Entry{Kind: ancestry.ClassEntry, Name: decl.TypeName{Name: "C", Kind: decl.ClassName}},
			"::C",
		},
		{
			"applied module",
			ancestry.Entry{
				Kind: ancestry.ModuleEntry,
				Name: decl.TypeName{Name: "M", Kind: decl.ModuleName},
				Args: []decl.Type{integer},
			},
			"::M<::Integer>",
		},
		{
			"singleton",
			ancestry.Entry{Kind: ancestry.SingletonEntry, Name: decl.TypeName{Name: "C", Kind: decl.ClassName}},
			"singleton(::C)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Entry(tt.entry); got != tt.want {
				t.Errorf("Entry = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestChain(t *testing.T) {
	chain := []ancestry.Entry{
		{Kind: ancestry.ClassEntry, Name: decl.TypeName{Name: "C", Kind: decl.ClassName}},
		{Kind: ancestry.ModuleEntry, Name: decl.TypeName{Name: "M", Kind: decl.ModuleName}},
		{Kind: ancestry.ClassEntry, Name: decl.TypeName{Name: "Base", Kind: decl.ClassName}},
	}
	want := "::C < ::M < ::Base"
	if got := Chain(chain); got != want {
		t.Errorf("Chain = %s, want %s", got, want)
	}
}

func TestDefinitions(t *testing.T) {
	owner := decl.TypeName{Name: "C", Kind: decl.ClassName}
	integer := decl.TNamed{Name: decl.TypeName{Name: "Integer", Kind: decl.ClassName}}
	defs := map[string]*definitions.Definition{
		"size": {
			Name: "size", Kind: decl.InstanceKind, Owner: owner,
			Overloads: []decl.MethodSig{{Return: integer}},
		},
		"add": {
			Name: "add", Kind: decl.InstanceKind, Owner: owner,
			Overloads: []decl.MethodSig{
				{Params: []decl.Type{integer}, Return: integer},
				{Return: integer},
			},
		},
	}

	lines := Definitions(defs)
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	// Sorted by method name for stable output.
	if lines[0] != "::C#add: (::Integer) -> ::Integer | () -> ::Integer" {
		t.Errorf("lines[0] = %s", lines[0])
	}
	if lines[1] != "::C#size: () -> ::Integer" {
		t.Errorf("lines[1] = %s", lines[1])
	}
}

func TestDiagnostic(t *testing.T) {
	name := decl.TypeName{Name: "Ghost", Kind: decl.ClassName}

	located := &diagnostics.NoTypeFoundError{
		TypeName: name,
		Loc:      &decl.Location{File: "a.tg.yaml", Line: 3, Column: 7},
	}
	want := "a.tg.yaml:3:7 [TG001] cannot find type `::Ghost`"
	if got := Diagnostic(located); got != want {
		t.Errorf("Diagnostic = %s, want %s", got, want)
	}

	bare := &diagnostics.NoTypeFoundError{TypeName: name}
	if got := Diagnostic(bare); got != "[TG001] cannot find type `::Ghost`" {
		t.Errorf("Diagnostic = %s", got)
	}
}
