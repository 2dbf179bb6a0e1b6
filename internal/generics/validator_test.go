package generics

import (
	"errors"
	"testing"

	"github.com/typegraph/typegraph/internal/decl"
	"github.com/typegraph/typegraph/internal/diagnostics"
	"github.com/typegraph/typegraph/internal/names"
)

func named(name string, args ...decl.Type) decl.TNamed {
	return decl.TNamed{Name: decl.ParseTypeName(name), Args: args}
}

func tvar(name string) decl.TVariable { return decl.TVariable{Name: name} }

func TestCheckApplicationArity(t *testing.T) {
	pair := decl.TypeName{Name: "Pair", Kind: decl.ClassName}
	params := []decl.TypeParam{{Name: "A"}, {Name: "B"}}

	if err := CheckApplication(pair, []decl.Type{named("Integer"), named("String")}, params, nil); err != nil {
		t.Fatalf("matching arity should pass: %v", err)
	}

	err := CheckApplication(pair, []decl.Type{named("Integer")}, params, nil)
	var applied *diagnostics.InvalidTypeApplicationError
	if !errors.As(err, &applied) {
		t.Fatalf("expected InvalidTypeApplicationError, got %v", err)
	}
	if len(applied.Params) != 2 || len(applied.Args) != 1 {
		t.Errorf("params=%d args=%d, want params=2 args=1", len(applied.Params), len(applied.Args))
	}
}

func TestCheckVariancePositions(t *testing.T) {
	tests := []struct {
		name     string
		variance decl.Variance
		sig      decl.MethodSig
		wantErr  bool
	}{
		{
			name:     "covariant in return is fine",
			variance: decl.Covariant,
			sig:      decl.MethodSig{Return: tvar("T")},
			wantErr:  false,
		},
		{
			name:     "covariant in param fails",
			variance: decl.Covariant,
			sig:      decl.MethodSig{Params: []decl.Type{tvar("T")}, Return: named("Integer")},
			wantErr:  true,
		},
		{
			name:     "contravariant in param is fine",
			variance: decl.Contravariant,
			sig:      decl.MethodSig{Params: []decl.Type{tvar("T")}, Return: named("Integer")},
			wantErr:  false,
		},
		{
			name:     "contravariant in return fails",
			variance: decl.Contravariant,
			sig:      decl.MethodSig{Return: tvar("T")},
			wantErr:  true,
		},
		{
			name:     "invariant anywhere",
			variance: decl.Invariant,
			sig:      decl.MethodSig{Params: []decl.Type{tvar("T")}, Return: tvar("T")},
			wantErr:  false,
		},
		{
			name:     "covariant nested in param fails",
			variance: decl.Covariant,
			sig:      decl.MethodSig{Params: []decl.Type{named("List", tvar("T"))}, Return: named("Integer")},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := names.NewTable()
			class := &decl.Class{
				Name:       decl.TypeName{Name: "Box", Kind: decl.ClassName},
				TypeParams: []decl.TypeParam{{Name: "T", Variance: tt.variance}},
				Members: []decl.Member{
					&decl.MethodDef{Name: "m", Kind: decl.InstanceKind, Overloads: []decl.MethodSig{tt.sig}},
				},
			}
			table.Add(class)

			err := NewValidator(table).CheckDeclaration(class)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckDeclaration error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var varErr *diagnostics.InvalidVarianceAnnotationError
				if !errors.As(err, &varErr) {
					t.Fatalf("expected InvalidVarianceAnnotationError, got %v", err)
				}
				if varErr.Param.Name != "T" {
					t.Errorf("implicated param = %s, want T", varErr.Param.Name)
				}
			}
		})
	}
}

func TestVarianceOnAttributes(t *testing.T) {
	// A writable attribute of a covariant parameter type has a writer
	// taking T as input, which is a variance violation.
	table := names.NewTable()
	class := &decl.Class{
		Name:       decl.TypeName{Name: "Cell", Kind: decl.ClassName},
		TypeParams: []decl.TypeParam{{Name: "T", Variance: decl.Covariant}},
		Members: []decl.Member{
			&decl.AttrDef{Name: "value", Kind: decl.InstanceKind, Type: tvar("T"), Writable: true},
		},
	}
	table.Add(class)

	err := NewValidator(table).CheckDeclaration(class)
	var varErr *diagnostics.InvalidVarianceAnnotationError
	if !errors.As(err, &varErr) {
		t.Fatalf("expected InvalidVarianceAnnotationError, got %v", err)
	}

	readonly := &decl.Class{
		Name:       decl.TypeName{Name: "Cell2", Kind: decl.ClassName},
		TypeParams: []decl.TypeParam{{Name: "T", Variance: decl.Covariant}},
		Members: []decl.Member{
			&decl.AttrDef{Name: "value", Kind: decl.InstanceKind, Type: tvar("T")},
		},
	}
	table.Add(readonly)
	if err := NewValidator(table).CheckDeclaration(readonly); err != nil {
		t.Errorf("read-only covariant attribute should pass: %v", err)
	}
}

func TestSignatureApplicationArity(t *testing.T) {
	// Pair is declared with two parameters; a member signature applying
	// it with one argument is rejected at declaration-validation time.
	table := names.NewTable()
	pair := &decl.Class{
		Name:       decl.TypeName{Name: "Pair", Kind: decl.ClassName},
		TypeParams: []decl.TypeParam{{Name: "A"}, {Name: "B"}},
	}
	table.Add(pair)

	user := &decl.Class{
		Name: decl.TypeName{Name: "User", Kind: decl.ClassName},
		Members: []decl.Member{
			&decl.MethodDef{Name: "pair", Kind: decl.InstanceKind, Overloads: []decl.MethodSig{
				{Return: named("Pair", named("Integer"))},
			}},
		},
	}
	table.Add(user)

	err := NewValidator(table).CheckDeclaration(user)
	var applied *diagnostics.InvalidTypeApplicationError
	if !errors.As(err, &applied) {
		t.Fatalf("expected InvalidTypeApplicationError, got %v", err)
	}

	// Signature types nested inside the declaring type resolve through
	// its own namespace, so their arity is checked too.
	nestedPair := &decl.Class{
		Name:       decl.TypeName{Namespace: []string{"Deep"}, Name: "Pair", Kind: decl.ClassName},
		TypeParams: []decl.TypeParam{{Name: "A"}, {Name: "B"}},
	}
	table.Add(nestedPair)
	deep := &decl.Class{
		Name: decl.TypeName{Name: "Deep", Kind: decl.ClassName},
		Members: []decl.Member{
			&decl.MethodDef{Name: "pair", Kind: decl.InstanceKind, Overloads: []decl.MethodSig{
				{Return: named("Pair", named("Integer"))},
			}},
		},
	}
	table.Add(deep)

	err = NewValidator(table).CheckDeclaration(deep)
	if !errors.As(err, &applied) {
		t.Fatalf("expected InvalidTypeApplicationError for nested Pair, got %v", err)
	}
	if !applied.TypeName.Equal(nestedPair.Name) {
		t.Errorf("arity checked against %s, want ::Deep::Pair", applied.TypeName)
	}

	// Types the corpus does not declare pass through unchecked: they
	// belong to the surface library input data.
	unknown := &decl.Class{
		Name: decl.TypeName{Name: "Free", Kind: decl.ClassName},
		Members: []decl.Member{
			&decl.MethodDef{Name: "m", Kind: decl.InstanceKind, Overloads: []decl.MethodSig{
				{Return: named("Whatever", named("Integer"))},
			}},
		},
	}
	table.Add(unknown)
	if err := NewValidator(table).CheckDeclaration(unknown); err != nil {
		t.Errorf("unknown signature type should pass: %v", err)
	}
}
