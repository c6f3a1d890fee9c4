package routegen

// Decl is one node of a route declaration: a name, a path pattern,
// optional view bindings, and ordered children. Declarations are plain
// builders; nothing is classified or validated until Compile runs.
type Decl struct {
	name     string
	pattern  string
	layout   string
	view     string
	fallback string
	children []*Decl
}

// NewDecl starts a declaration subtree.
func NewDecl(name, pattern string) *Decl {
	return &Decl{
		name:     name,
		pattern:  pattern,
		children: make([]*Decl, 0),
	}
}

// Root is shorthand for the conventional "/" root declaration.
func Root(children ...*Decl) *Decl {
	return NewDecl("root", "/").Children(children...)
}

// Layout names the layout binding wrapping this node's children.
func (d *Decl) Layout(name string) *Decl {
	d.layout = name
	return d
}

// View names the view binding rendered for this node.
func (d *Decl) View(name string) *Decl {
	d.view = name
	return d
}

// Fallback names the binding rendered when none of this node's
// children match.
func (d *Decl) Fallback(name string) *Decl {
	d.fallback = name
	return d
}

// Children appends child declarations in order and returns the
// receiver so subtrees read as nested literals.
func (d *Decl) Children(children ...*Decl) *Decl {
	d.children = append(d.children, children...)
	return d
}

// Child creates a child declaration, appends it, and returns the child
// for continued chaining.
func (d *Decl) Child(name, pattern string) *Decl {
	child := NewDecl(name, pattern)
	d.children = append(d.children, child)
	return child
}

// Name returns the declared node name.
func (d *Decl) Name() string {
	return d.name
}

// Pattern returns the declared path pattern.
func (d *Decl) Pattern() string {
	return d.pattern
}
