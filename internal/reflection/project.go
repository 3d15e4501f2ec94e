package reflection

import "fmt"

// Project is the root of a reflection tree.
type Project struct {
	name     string
	children []*Declaration
	size     int
}

// NewProject creates an empty project.
func NewProject(name string) *Project {
	return &Project{name: name}
}

// Name returns the project name.
func (p *Project) Name() string { return p.name }

// Children returns a copy of the top-level declarations.
func (p *Project) Children() []*Declaration {
	out := make([]*Declaration, len(p.children))
	copy(out, p.children)
	return out
}

// Len returns the number of attached declarations.
func (p *Project) Len() int { return p.size }

// AddChild attaches a top-level declaration and returns it.
func (p *Project) AddChild(child *Declaration) *Declaration {
	child.parent = nil
	p.children = append(p.children, child)
	p.adopt(child)
	return child
}

// adopt binds d and its subtree to the project.
func (p *Project) adopt(d *Declaration) {
	d.project = p
	d.detached = false
	p.size++
	for _, c := range d.children {
		p.adopt(c)
	}
}

// Walk visits attached declarations in pre-order. Returning false from fn
// skips the declaration's children.
func (p *Project) Walk(fn func(d *Declaration) bool) {
	for _, c := range p.Children() {
		walk(c, fn)
	}
}

func walk(d *Declaration, fn func(d *Declaration) bool) {
	if !fn(d) {
		return
	}
	for _, c := range d.Children() {
		walk(c, fn)
	}
}

// Find returns the first declaration with the given dotted path.
func (p *Project) Find(path string) (*Declaration, bool) {
	var found *Declaration
	p.Walk(func(d *Declaration) bool {
		if found != nil {
			return false
		}
		if d.Path() == path {
			found = d
			return false
		}
		return true
	})
	return found, found != nil
}

// RemoveReflection detaches node and its descendants from the project.
//
// Removing an already detached declaration is a no-op. Nodes that were never
// attached to this project yield ErrForeignReflection.
func (p *Project) RemoveReflection(node Node) error {
	d, ok := node.(*Declaration)
	if !ok || d == nil {
		return fmt.Errorf("%w: %T", ErrForeignReflection, node)
	}
	if d.project != p {
		return fmt.Errorf("%w: %s", ErrForeignReflection, d.Path())
	}
	if d.detached {
		return nil
	}

	if d.parent != nil {
		d.parent.removeChild(d)
	} else {
		p.removeChild(d)
	}
	p.detach(d)
	return nil
}

func (p *Project) removeChild(child *Declaration) {
	for i, c := range p.children {
		if c == child {
			p.children = append(p.children[:i], p.children[i+1:]...)
			return
		}
	}
}

// detach marks d and its subtree as removed. Parent links are kept so removed
// nodes can still be described in logs.
func (p *Project) detach(d *Declaration) {
	d.detached = true
	p.size--
	for _, c := range d.children {
		p.detach(c)
	}
}
