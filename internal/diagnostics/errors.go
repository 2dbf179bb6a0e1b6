package diagnostics

import (
	"fmt"
	"strings"

	"github.com/typegraph/typegraph/internal/decl"
)

// Diagnostic is a structured, typed failure. Every diagnostic carries a
// stable code and an optional source location; the concrete types expose
// the implicated names and members for programmatic consumers.
type Diagnostic interface {
	error
	Code() ErrorCode
	Location() *decl.Location
}

// NoTypeFoundError reports a reference to an undeclared type name.
type NoTypeFoundError struct {
	TypeName decl.TypeName
	Loc      *decl.Location
}

func (e *NoTypeFoundError) Error() string {
	return fmt.Sprintf("cannot find type `%s`", e.TypeName)
}
func (e *NoTypeFoundError) Code() ErrorCode          { return ErrNoTypeFound }
func (e *NoTypeFoundError) Location() *decl.Location { return e.Loc }

// NoSuperclassFoundError reports a declared superclass that does not
// resolve to a class declaration.
type NoSuperclassFoundError struct {
	TypeName   decl.TypeName
	Superclass decl.TypeApp
	Loc        *decl.Location
}

func (e *NoSuperclassFoundError) Error() string {
	return fmt.Sprintf("cannot find superclass `%s` of `%s`", e.Superclass.Name, e.TypeName)
}
func (e *NoSuperclassFoundError) Code() ErrorCode          { return ErrNoSuperclassFound }
func (e *NoSuperclassFoundError) Location() *decl.Location { return e.Loc }

// NoSelfTypeFoundError reports a module self-type constraint that does
// not resolve.
type NoSelfTypeFoundError struct {
	TypeName decl.TypeName
	Self     decl.TypeApp
	Loc      *decl.Location
}

func (e *NoSelfTypeFoundError) Error() string {
	return fmt.Sprintf("cannot find self-type `%s` of module `%s`", e.Self.Name, e.TypeName)
}
func (e *NoSelfTypeFoundError) Code() ErrorCode          { return ErrNoSelfTypeFound }
func (e *NoSelfTypeFoundError) Location() *decl.Location { return e.Loc }

// NoMixinFoundError reports a mixin target that is missing or is not a
// module/interface declaration.
type NoMixinFoundError struct {
	TypeName decl.TypeName
	Mixin    *decl.Mixin
	Loc      *decl.Location
}

func (e *NoMixinFoundError) Error() string {
	return fmt.Sprintf("cannot %s `%s` into `%s`: not a module or interface",
		e.Mixin.Kind, e.Mixin.App.Name, e.TypeName)
}
func (e *NoMixinFoundError) Code() ErrorCode          { return ErrNoMixinFound }
func (e *NoMixinFoundError) Location() *decl.Location { return e.Loc }

// RecursiveAncestorError reports a cycle in the ancestor graph. Path is
// the full cycle, first repeated name last.
type RecursiveAncestorError struct {
	Path []decl.TypeName
	Loc  *decl.Location
}

func (e *RecursiveAncestorError) Error() string {
	names := make([]string, len(e.Path))
	for i, n := range e.Path {
		names[i] = n.String()
	}
	return fmt.Sprintf("ancestor cycle: %s", strings.Join(names, " -> "))
}
func (e *RecursiveAncestorError) Code() ErrorCode          { return ErrRecursiveAncestor }
func (e *RecursiveAncestorError) Location() *decl.Location { return e.Loc }

// InvalidTypeApplicationError reports a generic argument count mismatch.
type InvalidTypeApplicationError struct {
	TypeName decl.TypeName
	Args     []decl.Type
	Params   []decl.TypeParam
	Loc      *decl.Location
}

func (e *InvalidTypeApplicationError) Error() string {
	return fmt.Sprintf("`%s` expects %d type argument(s), got %d",
		e.TypeName, len(e.Params), len(e.Args))
}
func (e *InvalidTypeApplicationError) Code() ErrorCode          { return ErrInvalidTypeApplication }
func (e *InvalidTypeApplicationError) Location() *decl.Location { return e.Loc }

// InvalidVarianceAnnotationError reports a type parameter used outside
// its variance-permitted position.
type InvalidVarianceAnnotationError struct {
	TypeName decl.TypeName
	Param    decl.TypeParam
	Method   decl.MethodRef
	Loc      *decl.Location
}

func (e *InvalidVarianceAnnotationError) Error() string {
	position := "input"
	if e.Param.Variance == decl.Contravariant {
		position = "output"
	}
	return fmt.Sprintf("%s parameter `%s` of `%s` appears in an %s position of `%s`",
		e.Param.Variance, e.Param.Name, e.TypeName, position, e.Method)
}
func (e *InvalidVarianceAnnotationError) Code() ErrorCode          { return ErrInvalidVarianceAnnotation }
func (e *InvalidVarianceAnnotationError) Location() *decl.Location { return e.Loc }

// SuperclassMismatchError reports reopened class declarations that
// disagree on the superclass.
type SuperclassMismatchError struct {
	TypeName     decl.TypeName
	Declarations []decl.Declaration
	Loc          *decl.Location
}

func (e *SuperclassMismatchError) Error() string {
	return fmt.Sprintf("superclass mismatch across declarations of `%s`", e.TypeName)
}
func (e *SuperclassMismatchError) Code() ErrorCode          { return ErrSuperclassMismatch }
func (e *SuperclassMismatchError) Location() *decl.Location { return e.Loc }

// GenericParameterMismatchError reports reopened declarations that
// disagree on the type parameter count.
type GenericParameterMismatchError struct {
	TypeName     decl.TypeName
	Declarations []decl.Declaration
	Loc          *decl.Location
}

func (e *GenericParameterMismatchError) Error() string {
	return fmt.Sprintf("generic parameter count mismatch across declarations of `%s`", e.TypeName)
}
func (e *GenericParameterMismatchError) Code() ErrorCode          { return ErrGenericParameterMismatch }
func (e *GenericParameterMismatchError) Location() *decl.Location { return e.Loc }

// DuplicatedDeclarationError reports one name declared as incompatible
// kinds (class vs module, class vs alias, ...).
type DuplicatedDeclarationError struct {
	TypeName     decl.TypeName
	Declarations []decl.Declaration
	Loc          *decl.Location
}

func (e *DuplicatedDeclarationError) Error() string {
	kinds := make([]string, len(e.Declarations))
	for i, d := range e.Declarations {
		kinds[i] = decl.KindOf(d).String()
	}
	return fmt.Sprintf("`%s` declared as incompatible kinds: %s",
		e.TypeName, strings.Join(kinds, ", "))
}
func (e *DuplicatedDeclarationError) Code() ErrorCode          { return ErrDuplicatedDeclaration }
func (e *DuplicatedDeclarationError) Location() *decl.Location { return e.Loc }

// DuplicatedMethodDefinitionError reports conflicting definitions of one
// method at the same ancestor position.
type DuplicatedMethodDefinitionError struct {
	Method  decl.MethodRef
	Members []*decl.MethodDef
	Loc     *decl.Location
}

func (e *DuplicatedMethodDefinitionError) Error() string {
	return fmt.Sprintf("duplicated method definition: `%s`", e.Method)
}
func (e *DuplicatedMethodDefinitionError) Code() ErrorCode          { return ErrDuplicatedMethodDefinition }
func (e *DuplicatedMethodDefinitionError) Location() *decl.Location { return e.Loc }

// DuplicatedInterfaceMethodDefinitionError reports two mixed-in
// interfaces independently declaring one method with incompatible
// signatures.
type DuplicatedInterfaceMethodDefinitionError struct {
	Method decl.MethodRef
	Mixins []decl.TypeName
	Loc    *decl.Location
}

func (e *DuplicatedInterfaceMethodDefinitionError) Error() string {
	names := make([]string, len(e.Mixins))
	for i, n := range e.Mixins {
		names[i] = n.String()
	}
	return fmt.Sprintf("duplicated interface method definition: `%s` (from %s)",
		e.Method, strings.Join(names, ", "))
}
func (e *DuplicatedInterfaceMethodDefinitionError) Code() ErrorCode {
	return ErrDuplicatedInterfaceMethodDefinition
}
func (e *DuplicatedInterfaceMethodDefinitionError) Location() *decl.Location { return e.Loc }

// InvalidOverloadMethodError reports an overload set containing a
// duplicate or strictly-dominated signature.
type InvalidOverloadMethodError struct {
	Method decl.MethodRef
	Member *decl.MethodDef
	Loc    *decl.Location
}

func (e *InvalidOverloadMethodError) Error() string {
	return fmt.Sprintf("invalid overload set for `%s`: unreachable signature", e.Method)
}
func (e *InvalidOverloadMethodError) Code() ErrorCode          { return ErrInvalidOverloadMethod }
func (e *InvalidOverloadMethodError) Location() *decl.Location { return e.Loc }

// UnknownMethodAliasError reports an alias whose target method is not
// defined on the same ancestor.
type UnknownMethodAliasError struct {
	TypeName     decl.TypeName
	OriginalName string
	AliasedName  string
	Kind         decl.MethodKind
	Loc          *decl.Location
}

func (e *UnknownMethodAliasError) Error() string {
	ref := decl.MethodRef{Kind: e.Kind, Type: e.TypeName, Method: e.OriginalName}
	return fmt.Sprintf("cannot alias `%s` as `%s`: unknown method `%s`",
		e.OriginalName, e.AliasedName, ref)
}
func (e *UnknownMethodAliasError) Code() ErrorCode          { return ErrUnknownMethodAlias }
func (e *UnknownMethodAliasError) Location() *decl.Location { return e.Loc }

// RecursiveAliasDefinitionError reports a cycle of method aliases. Defs
// holds every alias member involved in the cycle.
type RecursiveAliasDefinitionError struct {
	TypeName decl.TypeName
	Defs     []*decl.AliasMember
	Loc      *decl.Location
}

func (e *RecursiveAliasDefinitionError) Error() string {
	names := make([]string, len(e.Defs))
	for i, d := range e.Defs {
		names[i] = d.NewName
	}
	return fmt.Sprintf("alias cycle in `%s`: %s", e.TypeName, strings.Join(names, " -> "))
}
func (e *RecursiveAliasDefinitionError) Code() ErrorCode          { return ErrRecursiveAliasDefinition }
func (e *RecursiveAliasDefinitionError) Location() *decl.Location { return e.Loc }

// CorpusError reports a malformed declaration corpus file. It is the
// only diagnostic raised outside the resolution core.
type CorpusError struct {
	Message string
	Loc     *decl.Location
}

func (e *CorpusError) Error() string            { return e.Message }
func (e *CorpusError) Code() ErrorCode          { return ErrMalformedCorpus }
func (e *CorpusError) Location() *decl.Location { return e.Loc }
