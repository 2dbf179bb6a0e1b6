package decl

import (
	"strconv"
	"strings"

	"github.com/typegraph/typegraph/internal/config"
)

// NameKind distinguishes the namespace a TypeName lives in.
type NameKind int

const (
	ClassName NameKind = iota
	ModuleName
	InterfaceName
	AliasName
	ConstantName
	// UnknownName marks reference-site names whose kind is discovered
	// when the name table resolves them.
	UnknownName
)

func (k NameKind) String() string {
	switch k {
	case ClassName:
		return "class"
	case ModuleName:
		return "module"
	case InterfaceName:
		return "interface"
	case AliasName:
		return "alias"
	case ConstantName:
		return "constant"
	default:
		return "unknown"
	}
}

// TypeName is a namespace-qualified type identifier. Relative names are
// reference-site names still subject to lexical resolution; absolute names
// are anchored at the root namespace. Immutable once constructed.
type TypeName struct {
	Namespace []string
	Name      string
	Kind      NameKind
	Relative  bool
}

// Segments returns namespace segments plus the simple name.
func (n TypeName) Segments() []string {
	segs := make([]string, 0, len(n.Namespace)+1)
	segs = append(segs, n.Namespace...)
	return append(segs, n.Name)
}

// Equal reports whether two names refer to the same type: segment
// sequences and kind must both match.
func (n TypeName) Equal(other TypeName) bool {
	if n.Name != other.Name || n.Kind != other.Kind || len(n.Namespace) != len(other.Namespace) {
		return false
	}
	for i, seg := range n.Namespace {
		if other.Namespace[i] != seg {
			return false
		}
	}
	return true
}

// Key is the kind-insensitive identity used by the name table, so that a
// class and a module sharing one path collide on the same slot.
func (n TypeName) Key() string {
	return strings.Join(n.Segments(), config.NamespaceSep)
}

func (n TypeName) String() string {
	if n.Relative {
		return strings.Join(n.Segments(), config.NamespaceSep)
	}
	return config.NamespaceSep + strings.Join(n.Segments(), config.NamespaceSep)
}

// WithKind returns a copy carrying the given kind tag.
func (n TypeName) WithKind(kind NameKind) TypeName {
	n.Kind = kind
	return n
}

// ParseTypeName parses "A::B::C" (relative) or "::A::B::C" (absolute).
// The kind tag is UnknownName; resolution fills it in.
func ParseTypeName(s string) TypeName {
	relative := true
	if strings.HasPrefix(s, config.NamespaceSep) {
		relative = false
		s = s[len(config.NamespaceSep):]
	}
	segs := strings.Split(s, config.NamespaceSep)
	return TypeName{
		Namespace: segs[:len(segs)-1],
		Name:      segs[len(segs)-1],
		Kind:      UnknownName,
		Relative:  relative,
	}
}

// Location is a source position attached to declarations and members.
// Nil locations are legal and yield location-less diagnostics.
type Location struct {
	File   string
	Line   int
	Column int
}

func (l *Location) String() string {
	if l == nil {
		return "<unknown>"
	}
	s := l.File
	if l.Line > 0 {
		s += ":" + strconv.Itoa(l.Line)
		if l.Column > 0 {
			s += ":" + strconv.Itoa(l.Column)
		}
	}
	return s
}
