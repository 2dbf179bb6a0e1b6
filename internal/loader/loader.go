// Package loader ingests declaration corpus files: the structured YAML
// interchange format supplied by the upstream parser collaborator. It
// produces the in-memory declarations the name table is bulk-loaded
// with; it is not a source-text parser.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/typegraph/typegraph/internal/config"
	"github.com/typegraph/typegraph/internal/decl"
	"github.com/typegraph/typegraph/internal/diagnostics"
)

// LoadFile reads one corpus file.
func LoadFile(path string) ([]decl.Declaration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(path, data)
}

// LoadDir reads every corpus file under a directory tree, in
// lexicographic walk order so reopening order is stable.
func LoadDir(dir string) ([]decl.Declaration, error) {
	var decls []decl.Declaration
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || !isCorpusFile(path) {
			return err
		}
		loaded, err := LoadFile(path)
		if err != nil {
			return err
		}
		decls = append(decls, loaded...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return decls, nil
}

func isCorpusFile(path string) bool {
	for _, ext := range config.CorpusFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// Parse converts raw corpus YAML into declarations.
func Parse(file string, data []byte) ([]decl.Declaration, error) {
	var corpus corpusFile
	if err := yaml.Unmarshal(data, &corpus); err != nil {
		return nil, &diagnostics.CorpusError{
			Message: fmt.Sprintf("malformed corpus file %s: %v", file, err),
			Loc:     &decl.Location{File: file},
		}
	}

	decls := make([]decl.Declaration, 0, len(corpus.Declarations))
	for _, node := range corpus.Declarations {
		converted, err := convertDecl(file, node)
		if err != nil {
			return nil, err
		}
		decls = append(decls, converted)
	}
	return decls, nil
}

func convertDecl(file string, node declNode) (decl.Declaration, error) {
	if node.Name == "" {
		return nil, corpusErr(file, node.line, node.column, "declaration without a name")
	}
	name := declaredName(node.Name)
	loc := location(file, node.line, node.column)

	params, err := convertParams(file, node.TypeParams)
	if err != nil {
		return nil, err
	}
	members, err := convertMembers(file, node.Members)
	if err != nil {
		return nil, err
	}

	switch node.Kind {
	case "class", "":
		var super *decl.TypeApp
		if node.Superclass != nil {
			app := convertApp(file, *node.Superclass)
			super = &app
		}
		return &decl.Class{
			Name:       name.WithKind(decl.ClassName),
			TypeParams: params,
			Superclass: super,
			Members:    members,
			Loc:        loc,
		}, nil
	case "module":
		selfTypes := make([]decl.TypeApp, len(node.SelfTypes))
		for i, st := range node.SelfTypes {
			selfTypes[i] = convertApp(file, st)
		}
		return &decl.Module{
			Name:       name.WithKind(decl.ModuleName),
			TypeParams: params,
			SelfTypes:  selfTypes,
			Members:    members,
			Loc:        loc,
		}, nil
	case "interface":
		return &decl.Interface{
			Name:       name.WithKind(decl.InterfaceName),
			TypeParams: params,
			Members:    members,
			Loc:        loc,
		}, nil
	case "alias":
		if node.Type == nil {
			return nil, corpusErr(file, node.line, node.column, "alias declaration without a type")
		}
		return &decl.Alias{
			Name: name.WithKind(decl.AliasName),
			Type: convertType(*node.Type),
			Loc:  loc,
		}, nil
	default:
		return nil, corpusErr(file, node.line, node.column,
			fmt.Sprintf("unknown declaration kind %q", node.Kind))
	}
}

func convertParams(file string, nodes []paramNode) ([]decl.TypeParam, error) {
	params := make([]decl.TypeParam, 0, len(nodes))
	for _, p := range nodes {
		variance, err := parseVariance(p.Variance)
		if err != nil {
			return nil, corpusErr(file, 0, 0, fmt.Sprintf("parameter %s: %v", p.Name, err))
		}
		var bound decl.Type
		if p.Bound != nil {
			bound = convertType(*p.Bound)
		}
		params = append(params, decl.TypeParam{Name: p.Name, Variance: variance, Bound: bound})
	}
	return params, nil
}

func convertMembers(file string, nodes []memberNode) ([]decl.Member, error) {
	members := make([]decl.Member, 0, len(nodes))
	for _, node := range nodes {
		m, err := convertMember(file, node)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, nil
}

func convertMember(file string, node memberNode) (decl.Member, error) {
	loc := location(file, node.line, node.column)
	kind, err := parseMethodKind(node.Kind)
	if err != nil {
		return nil, corpusErr(file, node.line, node.column, err.Error())
	}

	switch {
	case node.Method != "":
		if len(node.Signatures) == 0 {
			return nil, corpusErr(file, node.line, node.column,
				fmt.Sprintf("method %s has no signatures", node.Method))
		}
		overloads := make([]decl.MethodSig, len(node.Signatures))
		for i, sig := range node.Signatures {
			overloads[i] = convertSig(file, sig)
		}
		return &decl.MethodDef{
			Name:         node.Method,
			Kind:         kind,
			Overloads:    overloads,
			Overloading:  node.Overloading,
			Incompatible: node.Incompatible,
			Loc:          loc,
		}, nil

	case node.Attr != "":
		if node.Type == nil {
			return nil, corpusErr(file, node.line, node.column,
				fmt.Sprintf("attribute %s without a type", node.Attr))
		}
		return &decl.AttrDef{
			Name:     node.Attr,
			Kind:     kind,
			Type:     convertType(*node.Type),
			Writable: node.Writable,
			Loc:      loc,
		}, nil

	case node.Include != nil:
		return convertMixin(file, decl.Include, *node.Include, loc), nil
	case node.Extend != nil:
		return convertMixin(file, decl.Extend, *node.Extend, loc), nil
	case node.Prepend != nil:
		return convertMixin(file, decl.Prepend, *node.Prepend, loc), nil

	case node.Alias != nil:
		aliasKind, err := parseMethodKind(node.Alias.Kind)
		if err != nil {
			return nil, corpusErr(file, node.line, node.column, err.Error())
		}
		return &decl.AliasMember{
			NewName: node.Alias.New,
			OldName: node.Alias.Old,
			Kind:    aliasKind,
			Loc:     loc,
		}, nil

	default:
		return nil, corpusErr(file, node.line, node.column, "unrecognized member")
	}
}

func convertMixin(file string, kind decl.MixinKind, app appNode, loc *decl.Location) *decl.Mixin {
	return &decl.Mixin{Kind: kind, App: convertApp(file, app), Loc: loc}
}

func convertApp(file string, node appNode) decl.TypeApp {
	args := make([]decl.Type, len(node.Args))
	for i, a := range node.Args {
		args[i] = convertType(a)
	}
	return decl.TypeApp{
		Name: decl.ParseTypeName(node.Name),
		Args: args,
		Loc:  location(file, node.line, node.column),
	}
}

func convertSig(file string, node sigNode) decl.MethodSig {
	params := make([]decl.Type, len(node.Params))
	for i, p := range node.Params {
		params[i] = convertType(p)
	}
	var ret decl.Type
	if node.Return != nil {
		ret = convertType(*node.Return)
	}
	return decl.MethodSig{Params: params, Return: ret, Loc: location(file, node.line, node.column)}
}

func convertType(node typeNode) decl.Type {
	switch {
	case node.Var != "":
		return decl.TVariable{Name: node.Var}
	case node.Name != "":
		args := make([]decl.Type, len(node.Args))
		for i, a := range node.Args {
			args[i] = convertType(a)
		}
		return decl.TNamed{Name: decl.ParseTypeName(node.Name), Args: args}
	default:
		return decl.TUntyped{}
	}
}

// declaredName parses a declaration-site name. Declaration names are
// always anchored at the root namespace, with or without a leading
// "::" in the corpus.
func declaredName(s string) decl.TypeName {
	name := decl.ParseTypeName(s)
	name.Relative = false
	return name
}

func parseVariance(s string) (decl.Variance, error) {
	switch s {
	case "", "invariant":
		return decl.Invariant, nil
	case "covariant", "out":
		return decl.Covariant, nil
	case "contravariant", "in":
		return decl.Contravariant, nil
	default:
		return decl.Invariant, fmt.Errorf("unknown variance %q", s)
	}
}

func parseMethodKind(s string) (decl.MethodKind, error) {
	switch s {
	case "", "instance":
		return decl.InstanceKind, nil
	case "singleton", "self":
		return decl.SingletonKind, nil
	default:
		return decl.InstanceKind, fmt.Errorf("unknown method kind %q", s)
	}
}

func location(file string, line, column int) *decl.Location {
	if line == 0 {
		if file == "" {
			return nil
		}
		return &decl.Location{File: file}
	}
	return &decl.Location{File: file, Line: line, Column: column}
}

func corpusErr(file string, line, column int, msg string) error {
	return &diagnostics.CorpusError{Message: msg, Loc: location(file, line, column)}
}
