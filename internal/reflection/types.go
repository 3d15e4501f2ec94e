package reflection

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrForeignReflection indicates a node that does not belong to the project.
	ErrForeignReflection = errors.New("reflection does not belong to project")
	// ErrInvalidDocument indicates a malformed tree document.
	ErrInvalidDocument = errors.New("invalid tree document")
)

// Kind classifies a declaration.
type Kind string

const (
	KindProject     Kind = "project"
	KindModule      Kind = "module"
	KindNamespace   Kind = "namespace"
	KindClass       Kind = "class"
	KindInterface   Kind = "interface"
	KindEnum        Kind = "enum"
	KindEnumMember  Kind = "enum_member"
	KindFunction    Kind = "function"
	KindMethod      Kind = "method"
	KindConstructor Kind = "constructor"
	KindProperty    Kind = "property"
	KindAccessor    Kind = "accessor"
	KindVariable    Kind = "variable"
	KindTypeAlias   Kind = "type_alias"
)

var knownKinds = map[Kind]bool{
	KindProject:     true,
	KindModule:      true,
	KindNamespace:   true,
	KindClass:       true,
	KindInterface:   true,
	KindEnum:        true,
	KindEnumMember:  true,
	KindFunction:    true,
	KindMethod:      true,
	KindConstructor: true,
	KindProperty:    true,
	KindAccessor:    true,
	KindVariable:    true,
	KindTypeAlias:   true,
}

// ParseKind parses a kind name. Empty input yields KindModule.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return KindModule, nil
	}
	k := Kind(s)
	if !knownKinds[k] {
		return "", fmt.Errorf("%w: unknown kind %q", ErrInvalidDocument, s)
	}
	return k, nil
}

// Flag is a visibility or modifier flag on a declaration.
type Flag uint16

const (
	FlagPrivate Flag = 1 << iota
	FlagProtected
	FlagStatic
	FlagReadonly
	FlagExternal
)

var flagNames = []struct {
	flag Flag
	name string
}{
	{FlagPrivate, "private"},
	{FlagProtected, "protected"},
	{FlagStatic, "static"},
	{FlagReadonly, "readonly"},
	{FlagExternal, "external"},
}

// Names returns flag names in a stable order.
func (f Flag) Names() []string {
	var out []string
	for _, fn := range flagNames {
		if f&fn.flag != 0 {
			out = append(out, fn.name)
		}
	}
	return out
}

// ParseFlag parses one flag name.
func ParseFlag(s string) (Flag, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, fn := range flagNames {
		if fn.name == s {
			return fn.flag, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown flag %q", ErrInvalidDocument, s)
}

// Node is the view of a reflection that the filter pipeline reads and flags.
type Node interface {
	// Name returns the symbol name.
	Name() string
	// Kind returns the declaration kind.
	Kind() Kind
	// Parent returns the owning node, or nil for top-level declarations.
	Parent() Node
	// SetFlag sets a flag on the node.
	SetFlag(flag Flag)
	// HasFlag reports whether a flag is set.
	HasFlag(flag Flag) bool
}

// Remover removes nodes from a tree.
type Remover interface {
	RemoveReflection(node Node) error
}
