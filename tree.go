package routegen

import (
	"fmt"

	"github.com/google/uuid"
)

// ViewBinding carries the optional role identifiers attached to a
// node. Identifiers are opaque here; they resolve against a Bindings
// registry when an assembly is generated.
type ViewBinding struct {
	Layout   string
	View     string
	Fallback string
}

func (b *ViewBinding) isZero() bool {
	return b == nil || (b.Layout == "" && b.View == "" && b.Fallback == "")
}

// RouteNode is one entry in the canonical route tree. Nodes are built
// once by Compile and frozen; none of the fields may be mutated after
// the tree is handed out.
type RouteNode struct {
	// ID is the node's opaque identity, used for parent lookups
	// without back-pointers.
	ID uuid.UUID
	// Name is the declared node name, unique among its siblings.
	Name string
	// Pattern is the declared path pattern, as written.
	Pattern string
	// Segments is the classified local segment list.
	Segments []Segment
	// Binding holds the node's role identifiers, nil when none were
	// declared.
	Binding *ViewBinding
	// Children in declaration order. The order is semantically
	// significant: assemblies dispatch first-declared, first-matched.
	Children []*RouteNode
}

// Leaf reports whether the node has no children.
func (n *RouteNode) Leaf() bool {
	return len(n.Children) == 0
}

// RouteTree is the canonical, validated route tree. It is acyclic by
// construction and never mutated after buildTree returns it.
type RouteTree struct {
	Root *RouteNode

	parents map[uuid.UUID]*RouteNode
	paths   map[uuid.UUID]string
	nodes   []*RouteNode
}

// Nodes returns every node in declaration (preorder) order.
func (t *RouteTree) Nodes() []*RouteNode {
	out := make([]*RouteNode, len(t.nodes))
	copy(out, t.nodes)
	return out
}

// Walk visits every node in declaration (preorder) order.
func (t *RouteTree) Walk(fn func(*RouteNode)) {
	for _, n := range t.nodes {
		fn(n)
	}
}

// ParentOf returns the parent of n, or nil for the root.
func (t *RouteTree) ParentOf(n *RouteNode) *RouteNode {
	return t.parents[n.ID]
}

// PathOf returns the dotted name path from the root to n, e.g.
// "root.users.user". Diagnostics use the same form.
func (t *RouteTree) PathOf(n *RouteNode) string {
	return t.paths[n.ID]
}

// Lookup finds a node by its dotted name path.
func (t *RouteTree) Lookup(path string) (*RouteNode, bool) {
	for _, n := range t.nodes {
		if t.paths[n.ID] == path {
			return n, true
		}
	}
	return nil, false
}

// AncestorsOf returns the chain of nodes from the root down to and
// including n.
func (t *RouteTree) AncestorsOf(n *RouteNode) []*RouteNode {
	var chain []*RouteNode
	for cur := n; cur != nil; cur = t.parents[cur.ID] {
		chain = append(chain, cur)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// ChainOf returns the node's parameter chain: every dynamic segment
// found walking root to n, in that order. This is the authoritative
// argument order for the node's materializer.
func (t *RouteTree) ChainOf(n *RouteNode) []Segment {
	var chain []Segment
	for _, ancestor := range t.AncestorsOf(n) {
		for _, seg := range ancestor.Segments {
			if seg.IsDynamic() {
				chain = append(chain, seg)
			}
		}
	}
	return chain
}

// buildTree classifies every declared pattern and links the canonical
// tree. Name collisions inside a sibling scope and malformed patterns
// are collected as located diagnostics; any diagnostic yields a nil
// tree so nothing malformed reaches downstream passes.
func buildTree(root *Decl) (*RouteTree, []Diagnostic) {
	tree := &RouteTree{
		parents: make(map[uuid.UUID]*RouteNode),
		paths:   make(map[uuid.UUID]string),
	}

	var diags []Diagnostic

	var build func(decl *Decl, parent *RouteNode, parentPath string) *RouteNode
	build = func(decl *Decl, parent *RouteNode, parentPath string) *RouteNode {
		nodePath := decl.name
		if parentPath != "" {
			nodePath = parentPath + "." + decl.name
		}

		if decl.name == "" {
			diags = append(diags, Diagnostic{
				NodePath: parentPath,
				Pattern:  decl.pattern,
				Code:     DiagBadName,
				Message:  fmt.Sprintf("declaration with pattern %q has no name", decl.pattern),
				Metadata: map[string]any{"pattern": decl.pattern},
			})
		}

		segments, faults := parsePattern(decl.pattern)
		for _, fault := range faults {
			diags = append(diags, Diagnostic{
				NodePath: nodePath,
				Pattern:  decl.pattern,
				Code:     DiagBadPattern,
				Message:  fault.message,
				Metadata: fault.metadata,
			})
		}

		node := &RouteNode{
			ID:       uuid.New(),
			Name:     decl.name,
			Pattern:  decl.pattern,
			Segments: segments,
		}

		if !(&ViewBinding{Layout: decl.layout, View: decl.view, Fallback: decl.fallback}).isZero() {
			node.Binding = &ViewBinding{
				Layout:   decl.layout,
				View:     decl.view,
				Fallback: decl.fallback,
			}
		}

		tree.parents[node.ID] = parent
		tree.paths[node.ID] = nodePath
		tree.nodes = append(tree.nodes, node)

		seen := make(map[string]bool, len(decl.children))
		for _, childDecl := range decl.children {
			if childDecl.name != "" && seen[childDecl.name] {
				diags = append(diags, Diagnostic{
					NodePath: nodePath + "." + childDecl.name,
					Pattern:  childDecl.pattern,
					Code:     DiagDuplicateName,
					Message:  fmt.Sprintf("node name %q is declared twice under %q", childDecl.name, nodePath),
					Metadata: map[string]any{
						"name":  childDecl.name,
						"scope": nodePath,
					},
				})
			}
			seen[childDecl.name] = true

			node.Children = append(node.Children, build(childDecl, node, nodePath))
		}

		return node
	}

	tree.Root = build(root, nil, "")

	if len(diags) > 0 {
		return nil, diags
	}
	return tree, nil
}
