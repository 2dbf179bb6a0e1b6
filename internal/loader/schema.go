package loader

import (
	"gopkg.in/yaml.v3"
)

// corpusFile is the top-level shape of one declaration corpus file, the
// interchange format the upstream parser/loader collaborator emits.
type corpusFile struct {
	Declarations []declNode `yaml:"declarations"`
}

// declNode is one declaration. Kind selects the variant; unused fields
// stay zero. Line/column come from the YAML node for diagnostics.
type declNode struct {
	Kind       string       `yaml:"kind"`
	Name       string       `yaml:"name"`
	TypeParams []paramNode  `yaml:"type_params"`
	Superclass *appNode     `yaml:"superclass"`
	SelfTypes  []appNode    `yaml:"self_types"`
	Members    []memberNode `yaml:"members"`
	Type       *typeNode    `yaml:"type"`

	line   int
	column int
}

func (d *declNode) UnmarshalYAML(node *yaml.Node) error {
	type raw declNode
	var r raw
	if err := node.Decode(&r); err != nil {
		return err
	}
	*d = declNode(r)
	d.line = node.Line
	d.column = node.Column
	return nil
}

// paramNode is one generic parameter.
type paramNode struct {
	Name     string    `yaml:"name"`
	Variance string    `yaml:"variance"`
	Bound    *typeNode `yaml:"bound"`
}

// appNode is an applied type reference (superclass, mixin target,
// self-type constraint).
type appNode struct {
	Name string     `yaml:"name"`
	Args []typeNode `yaml:"args"`

	line   int
	column int
}

func (a *appNode) UnmarshalYAML(node *yaml.Node) error {
	type raw appNode
	var r raw
	if err := node.Decode(&r); err != nil {
		return err
	}
	*a = appNode(r)
	a.line = node.Line
	a.column = node.Column
	return nil
}

// typeNode is a type expression: exactly one of Name (with optional
// Args), Var, or Untyped is set.
type typeNode struct {
	Name    string     `yaml:"name"`
	Args    []typeNode `yaml:"args"`
	Var     string     `yaml:"var"`
	Untyped bool       `yaml:"untyped"`
}

// memberNode is one declaration body member; the populated field picks
// the variant.
type memberNode struct {
	Method       string    `yaml:"method"`
	Kind         string    `yaml:"kind"`
	Overloading  bool      `yaml:"overloading"`
	Incompatible bool      `yaml:"incompatible"`
	Signatures   []sigNode `yaml:"signatures"`

	Attr     string    `yaml:"attr"`
	Type     *typeNode `yaml:"type"`
	Writable bool      `yaml:"writable"`

	Include *appNode `yaml:"include"`
	Extend  *appNode `yaml:"extend"`
	Prepend *appNode `yaml:"prepend"`

	Alias *aliasNode `yaml:"alias"`

	line   int
	column int
}

func (m *memberNode) UnmarshalYAML(node *yaml.Node) error {
	type raw memberNode
	var r raw
	if err := node.Decode(&r); err != nil {
		return err
	}
	*m = memberNode(r)
	m.line = node.Line
	m.column = node.Column
	return nil
}

// sigNode is one method signature.
type sigNode struct {
	Params []typeNode `yaml:"params"`
	Return *typeNode  `yaml:"return"`

	line   int
	column int
}

func (s *sigNode) UnmarshalYAML(node *yaml.Node) error {
	type raw sigNode
	var r raw
	if err := node.Decode(&r); err != nil {
		return err
	}
	*s = sigNode(r)
	s.line = node.Line
	s.column = node.Column
	return nil
}

// aliasNode is a method alias member.
type aliasNode struct {
	New  string `yaml:"new"`
	Old  string `yaml:"old"`
	Kind string `yaml:"kind"`
}
