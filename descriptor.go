package routegen

import "strings"

// Descriptor is the generated artifact for one route node: the node's
// own segment list plus a materializer over the full ancestor chain.
// Descriptors are derived from the frozen tree and hold no mutable
// state; they are safe for concurrent use.
type Descriptor struct {
	node *RouteNode

	name   string    // dotted name path from the root, e.g. "root.users.user"
	full   string    // full pattern text, e.g. "/users/:id"
	tokens []Segment // every ancestor's local segments, root first
	chain  []Segment // the dynamic tokens only, in chain order

	optionalWildcards bool
}

// Name returns the descriptor's dotted name path, e.g.
// "root.users.user.details".
func (d *Descriptor) Name() string {
	return d.name
}

// Node returns the underlying route node.
func (d *Descriptor) Node() *RouteNode {
	return d.node
}

// FullPattern returns the node's pattern joined with every ancestor
// pattern, e.g. "/users/:id/details".
func (d *Descriptor) FullPattern() string {
	return d.full
}

// LocalSegments returns the node's own classified segments, exactly as
// declared and independent of any ancestor. The returned slice is a
// copy; the tree stays frozen.
func (d *Descriptor) LocalSegments() []Segment {
	out := make([]Segment, len(d.node.Segments))
	copy(out, d.node.Segments)
	return out
}

// ParamChain returns every dynamic segment from the root down to this
// node, in the order Materialize consumes values.
func (d *Descriptor) ParamChain() []Segment {
	out := make([]Segment, len(d.chain))
	copy(out, d.chain)
	return out
}

// ParamNames returns the chain's parameter names in order.
func (d *Descriptor) ParamNames() []string {
	names := make([]string, len(d.chain))
	for i, seg := range d.chain {
		names[i] = seg.Value
	}
	return names
}

// Arity returns the exact number of values Materialize expects.
func (d *Descriptor) Arity() int {
	return len(d.chain)
}

// Materialize substitutes one value per chain parameter, in chain
// order, and returns the full concrete path. The value count is bound
// to the chain arity fixed at generation time; a mismatch returns an
// error, never a panic. Optional parameters drop their segment when
// given the empty string, as do wildcards when the tree was compiled
// with WithOptionalWildcards.
func (d *Descriptor) Materialize(values ...string) (string, error) {
	if len(values) != len(d.chain) {
		return "", newArityError(d.name, len(d.chain), len(values))
	}

	var sb strings.Builder
	vi := 0
	for _, seg := range d.tokens {
		token := seg.Value
		if seg.IsDynamic() {
			value := values[vi]
			vi++

			if value == "" {
				if d.segmentOptional(seg) {
					continue
				}
				return "", newEmptyValueError(d.name, seg)
			}
			token = value
		}
		sb.WriteByte('/')
		sb.WriteString(token)
	}

	if sb.Len() == 0 {
		return "/", nil
	}
	return sb.String(), nil
}

// MustMaterialize is Materialize for static call sites; it panics on
// the errors Materialize would return.
func (d *Descriptor) MustMaterialize(values ...string) string {
	path, err := d.Materialize(values...)
	if err != nil {
		panic(err)
	}
	return path
}

func (d *Descriptor) segmentOptional(seg Segment) bool {
	if seg.Kind == SegmentOptionalParam {
		return true
	}
	return seg.Kind == SegmentWildcard && d.optionalWildcards
}

// buildDescriptors derives one descriptor per node, in declaration
// order.
func buildDescriptors(tree *RouteTree, cfg *config) ([]*Descriptor, map[string]*Descriptor) {
	descriptors := make([]*Descriptor, 0, len(tree.nodes))
	byName := make(map[string]*Descriptor, len(tree.nodes))

	tree.Walk(func(node *RouteNode) {
		var tokens []Segment
		for _, ancestor := range tree.AncestorsOf(node) {
			tokens = append(tokens, ancestor.Segments...)
		}

		var chain []Segment
		parts := make([]string, 0, len(tokens))
		for _, seg := range tokens {
			parts = append(parts, seg.Pattern())
			if seg.IsDynamic() {
				chain = append(chain, seg)
			}
		}

		full := "/" + strings.Join(parts, "/")

		d := &Descriptor{
			node:              node,
			name:              tree.PathOf(node),
			full:              full,
			tokens:            tokens,
			chain:             chain,
			optionalWildcards: cfg.optionalWildcards,
		}
		descriptors = append(descriptors, d)
		byName[d.name] = d
	})

	return descriptors, byName
}
