package routegen

import "fmt"

// validateTree is the global pass over a built tree. Parameter-chain
// collisions can only be seen from the root, so this walks every
// root-to-node path once, carrying the dynamic names seen so far.
// Role rules (layout/view/fallback) only apply when an assembly will
// be generated.
func validateTree(tree *RouteTree, cfg *config) []Diagnostic {
	var diags []Diagnostic

	var walk func(node *RouteNode, chainNames map[string]string)
	walk = func(node *RouteNode, chainNames map[string]string) {
		nodePath := tree.PathOf(node)

		names := make(map[string]string, len(chainNames)+len(node.Segments))
		for k, v := range chainNames {
			names[k] = v
		}

		for _, seg := range node.Segments {
			if !seg.IsDynamic() {
				continue
			}
			if prev, ok := names[seg.Value]; ok {
				diags = append(diags, Diagnostic{
					NodePath: nodePath,
					Pattern:  node.Pattern,
					Code:     DiagParamShadowed,
					Message:  fmt.Sprintf("parameter %q is already bound by %s; a parameter chain cannot repeat names", seg.Value, prev),
					Metadata: map[string]any{
						"param":       seg.Value,
						"bound_by":    prev,
						"shadowed_at": nodePath,
					},
				})
				continue
			}
			names[seg.Value] = nodePath
		}

		if cfg.views {
			diags = append(diags, validateRoles(tree, node)...)
		}

		for _, child := range node.Children {
			walk(child, names)
		}
	}

	walk(tree.Root, map[string]string{})

	return diags
}

// validateRoles enforces the leaf/internal binding rules for assembly
// generation: a leaf renders a view, an internal node wraps a layout
// around its children, and an internal node may only carry a view if a
// fallback handles the unmatched case.
func validateRoles(tree *RouteTree, node *RouteNode) []Diagnostic {
	var diags []Diagnostic
	nodePath := tree.PathOf(node)

	var binding ViewBinding
	if node.Binding != nil {
		binding = *node.Binding
	}

	if node.Leaf() {
		if binding.View == "" {
			diags = append(diags, Diagnostic{
				NodePath: nodePath,
				Pattern:  node.Pattern,
				Code:     DiagMissingView,
				Message:  fmt.Sprintf("leaf route %q requires a view", nodePath),
				Metadata: map[string]any{"node": nodePath},
			})
		}
		return diags
	}

	if binding.Layout == "" {
		diags = append(diags, Diagnostic{
			NodePath: nodePath,
			Pattern:  node.Pattern,
			Code:     DiagMissingLayout,
			Message:  fmt.Sprintf("route %q has child routes and requires a layout", nodePath),
			Metadata: map[string]any{"node": nodePath},
		})
	}

	if binding.View != "" && binding.Fallback == "" {
		diags = append(diags, Diagnostic{
			NodePath: nodePath,
			Pattern:  node.Pattern,
			Code:     DiagMissingFallback,
			Message:  fmt.Sprintf("route %q has child routes; a view only renders on leaf routes, declare a fallback for the unmatched case instead", nodePath),
			Metadata: map[string]any{"node": nodePath, "view": binding.View},
		})
	}

	return diags
}
