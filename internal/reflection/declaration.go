package reflection

// Declaration is one node of a project's reflection tree.
type Declaration struct {
	name     string
	kind     Kind
	flags    Flag
	parent   *Declaration
	children []*Declaration
	project  *Project
	detached bool
}

// NewDeclaration creates a detached declaration. Attach it with
// Project.AddChild or Declaration.AddChild.
func NewDeclaration(name string, kind Kind) *Declaration {
	return &Declaration{name: name, kind: kind}
}

// Name returns the symbol name.
func (d *Declaration) Name() string { return d.name }

// Kind returns the declaration kind.
func (d *Declaration) Kind() Kind { return d.kind }

// Parent returns the parent declaration, or nil for top-level declarations.
func (d *Declaration) Parent() Node {
	if d.parent == nil {
		return nil
	}
	return d.parent
}

// SetFlag sets a flag.
func (d *Declaration) SetFlag(flag Flag) { d.flags |= flag }

// HasFlag reports whether a flag is set.
func (d *Declaration) HasFlag(flag Flag) bool { return d.flags&flag != 0 }

// Flags returns all flags.
func (d *Declaration) Flags() Flag { return d.flags }

// Children returns a copy of the direct children.
func (d *Declaration) Children() []*Declaration {
	out := make([]*Declaration, len(d.children))
	copy(out, d.children)
	return out
}

// Detached reports whether the declaration has been removed from its project.
func (d *Declaration) Detached() bool { return d.detached }

// AddChild attaches child below d and returns child.
func (d *Declaration) AddChild(child *Declaration) *Declaration {
	child.parent = d
	d.children = append(d.children, child)
	if d.project != nil {
		d.project.adopt(child)
	}
	return child
}

// Path returns the dotted path from the top-level declaration to d.
func (d *Declaration) Path() string {
	if d.parent == nil {
		return d.name
	}
	return d.parent.Path() + "." + d.name
}

// removeChild unlinks child from d's children.
func (d *Declaration) removeChild(child *Declaration) {
	for i, c := range d.children {
		if c == child {
			d.children = append(d.children[:i], d.children[i+1:]...)
			return
		}
	}
}
