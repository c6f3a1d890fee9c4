package routegen

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

// Bindings registers the identifiers a declaration may reference as
// layout, view, or fallback. Values are opaque to the compiler: they
// are resolved by name at generation time and handed through untouched
// to whatever mounts the assembly.
type Bindings map[string]any

// Register adds a named binding and returns the registry for chaining.
func (b Bindings) Register(name string, v any) Bindings {
	b[name] = v
	return b
}

// MustRegisterFunc adds function bindings under their own names,
// derived via reflection. It panics when a name cannot be derived
// (anonymous functions or non-functions); register those explicitly
// with Register.
func (b Bindings) MustRegisterFunc(fns ...any) Bindings {
	for _, fn := range fns {
		name := funcName(fn)
		if name == "" {
			panic(fmt.Sprintf("routegen: cannot derive a binding name for %T; use Register(name, v)", fn))
		}
		b[name] = fn
	}
	return b
}

// Has reports whether name resolves.
func (b Bindings) Has(name string) bool {
	_, ok := b[name]
	return ok
}

// Resolve returns the registered value for name.
func (b Bindings) Resolve(name string) (any, bool) {
	v, ok := b[name]
	return v, ok
}

// funcName returns a friendly name for a bound constructor function,
// or "" if the function is anonymous or its name is not extractable.
func funcName(fn any) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return ""
	}

	f := runtime.FuncForPC(v.Pointer())
	if f == nil {
		return ""
	}

	fullName := f.Name()

	// trim package path to keep only the name.
	if idx := strings.LastIndex(fullName, "."); idx != -1 {
		fullName = fullName[idx+1:]
	}

	if strings.HasPrefix(fullName, "func") {
		return ""
	}

	return fullName
}

// AssemblyNode mirrors one route node with its resolved role bindings.
// Children keep declaration order; the fallback, when present,
// dispatches after every child as the unmatched-case branch at the
// node's own path.
type AssemblyNode struct {
	// Name is the dotted name path of the mirrored route node.
	Name string
	// Pattern is the node's local pattern, relative to its parent.
	Pattern string
	// Layout wraps the children of an internal node.
	Layout string
	// View renders a leaf node. Always empty on internal nodes.
	View string
	// Fallback renders when none of the children match.
	Fallback string
	Children []*AssemblyNode
}

// Leaf reports whether the node has no children.
func (n *AssemblyNode) Leaf() bool {
	return len(n.Children) == 0
}

// Assembly is the optional nested routing structure generated from
// view bindings. It mirrors the route tree's shape and sibling order;
// consumers must dispatch first-declared, first-matched.
type Assembly struct {
	Root *AssemblyNode
	// NotFound names the binding rendered when no root-level pattern
	// matches at all; empty when not configured.
	NotFound string

	bindings Bindings
}

// Binding resolves a registered binding by name.
func (a *Assembly) Binding(name string) (any, bool) {
	return a.bindings.Resolve(name)
}

// Walk visits every assembly node in declaration order, handing each
// visit the chain of ancestors from the root down to the node's
// parent.
func (a *Assembly) Walk(fn func(node *AssemblyNode, ancestors []*AssemblyNode)) {
	var walk func(n *AssemblyNode, ancestors []*AssemblyNode)
	walk = func(n *AssemblyNode, ancestors []*AssemblyNode) {
		fn(n, ancestors)

		childAncestors := make([]*AssemblyNode, 0, len(ancestors)+1)
		childAncestors = append(childAncestors, ancestors...)
		childAncestors = append(childAncestors, n)

		for _, child := range n.Children {
			walk(child, childAncestors)
		}
	}
	walk(a.Root, nil)
}

// buildAssembly mirrors the validated tree into an assembly,
// resolving every referenced binding against the registry. Role rules
// were already enforced by the validation pass; only resolution can
// fail here.
func buildAssembly(tree *RouteTree, cfg *config) (*Assembly, []Diagnostic) {
	var diags []Diagnostic

	resolve := func(node *RouteNode, role, name string) {
		if name == "" || cfg.bindings.Has(name) {
			return
		}
		nodePath := tree.PathOf(node)
		diags = append(diags, Diagnostic{
			NodePath: nodePath,
			Pattern:  node.Pattern,
			Code:     DiagUnknownBinding,
			Message:  fmt.Sprintf("%s binding %q is not registered", role, name),
			Metadata: map[string]any{
				"role":    role,
				"binding": name,
			},
		})
	}

	var build func(node *RouteNode) *AssemblyNode
	build = func(node *RouteNode) *AssemblyNode {
		var binding ViewBinding
		if node.Binding != nil {
			binding = *node.Binding
		}

		resolve(node, "layout", binding.Layout)
		resolve(node, "view", binding.View)
		resolve(node, "fallback", binding.Fallback)

		out := &AssemblyNode{
			Name:     tree.PathOf(node),
			Pattern:  node.Pattern,
			Layout:   binding.Layout,
			View:     binding.View,
			Fallback: binding.Fallback,
		}

		if !node.Leaf() && binding.View != "" {
			// validation guarantees a fallback exists in this case.
			cfg.logger.Warn("routegen: route %q has child routes; its view is unused, the fallback handles the parent path", out.Name)
			out.View = ""
		}

		for _, child := range node.Children {
			out.Children = append(out.Children, build(child))
		}
		return out
	}

	root := build(tree.Root)

	if cfg.notFound != "" && !cfg.bindings.Has(cfg.notFound) {
		diags = append(diags, Diagnostic{
			NodePath: tree.PathOf(tree.Root),
			Pattern:  tree.Root.Pattern,
			Code:     DiagUnknownBinding,
			Message:  fmt.Sprintf("global not-found binding %q is not registered", cfg.notFound),
			Metadata: map[string]any{
				"role":    "not-found",
				"binding": cfg.notFound,
			},
		})
	}

	if len(diags) > 0 {
		return nil, diags
	}

	return &Assembly{
		Root:     root,
		NotFound: cfg.notFound,
		bindings: cfg.bindings,
	}, nil
}
