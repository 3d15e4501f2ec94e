package reflection

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects a tree document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported format %q (expected yaml or json)", s)
	}
}

// document is the serialized form of a Project.
type document struct {
	Name     string    `yaml:"name" json:"name"`
	Children []nodeDoc `yaml:"children,omitempty" json:"children,omitempty"`
}

// nodeDoc is the serialized form of a Declaration.
type nodeDoc struct {
	Name     string    `yaml:"name" json:"name"`
	Kind     string    `yaml:"kind,omitempty" json:"kind,omitempty"`
	Flags    []string  `yaml:"flags,omitempty" json:"flags,omitempty"`
	Children []nodeDoc `yaml:"children,omitempty" json:"children,omitempty"`
}

// Decode reads a YAML or JSON tree document.
func Decode(r io.Reader) (*Project, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidDocument)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	p := NewProject(doc.Name)
	for i := range doc.Children {
		d, err := decodeNode(&doc.Children[i])
		if err != nil {
			return nil, err
		}
		p.AddChild(d)
	}
	return p, nil
}

func decodeNode(n *nodeDoc) (*Declaration, error) {
	if strings.TrimSpace(n.Name) == "" {
		return nil, fmt.Errorf("%w: declaration without name", ErrInvalidDocument)
	}
	kind, err := ParseKind(n.Kind)
	if err != nil {
		return nil, fmt.Errorf("declaration %q: %w", n.Name, err)
	}

	d := NewDeclaration(n.Name, kind)
	for _, name := range n.Flags {
		f, err := ParseFlag(name)
		if err != nil {
			return nil, fmt.Errorf("declaration %q: %w", n.Name, err)
		}
		d.SetFlag(f)
	}

	for i := range n.Children {
		c, err := decodeNode(&n.Children[i])
		if err != nil {
			return nil, err
		}
		d.AddChild(c)
	}
	return d, nil
}

// Encode writes the attached part of the project as a tree document.
func Encode(w io.Writer, p *Project, format Format) error {
	doc := document{Name: p.Name()}
	for _, c := range p.Children() {
		doc.Children = append(doc.Children, encodeNode(c))
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	}
}

func encodeNode(d *Declaration) nodeDoc {
	n := nodeDoc{
		Name:  d.Name(),
		Kind:  string(d.Kind()),
		Flags: d.Flags().Names(),
	}
	for _, c := range d.Children() {
		n.Children = append(n.Children, encodeNode(c))
	}
	return n
}
