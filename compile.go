package routegen

type config struct {
	views             bool
	bindings          Bindings
	notFound          string
	optionalWildcards bool
	logger            Logger
}

// Option configures a compilation pass.
type Option func(*config)

func defaultConfig() *config {
	return &config{
		logger: getLogger(),
	}
}

// WithViews enables the assembly pass. The registry supplies every
// identifier the declaration may reference as layout, view, or
// fallback; an unresolved reference is a generation-time diagnostic.
func WithViews(bindings Bindings) Option {
	return func(cfg *config) {
		cfg.views = true
		cfg.bindings = bindings
	}
}

// WithGlobalNotFound names the binding rendered when no root-level
// pattern matches at all. Only meaningful together with WithViews.
func WithGlobalNotFound(name string) Option {
	return func(cfg *config) {
		cfg.notFound = name
	}
}

// WithOptionalWildcards makes wildcard segments drop from materialized
// paths when given the empty string, the same way optional parameters
// do. Without it a wildcard requires a non-empty value.
func WithOptionalWildcards() Option {
	return func(cfg *config) {
		cfg.optionalWildcards = true
	}
}

// WithLogger routes pass-level logging through lgr.
func WithLogger(lgr Logger) Option {
	return func(cfg *config) {
		if lgr != nil {
			cfg.logger = lgr
		}
	}
}

// Compilation is the complete artifact set derived from one frozen
// declaration: the canonical tree, one descriptor per node, and the
// optional view assembly. It carries no mutable state.
type Compilation struct {
	Tree        *RouteTree
	Descriptors []*Descriptor
	// Assembly is nil unless the pass ran with WithViews.
	Assembly *Assembly

	byName map[string]*Descriptor
}

// Descriptor finds a descriptor by its dotted name path, e.g.
// "root.users.user".
func (c *Compilation) Descriptor(name string) (*Descriptor, bool) {
	d, ok := c.byName[name]
	return d, ok
}

// Root returns the root descriptor.
func (c *Compilation) Root() *Descriptor {
	return c.Descriptors[0]
}

// Materialize is a by-name convenience over Descriptor lookup.
func (c *Compilation) Materialize(name string, values ...string) (string, error) {
	d, ok := c.byName[name]
	if !ok {
		return "", newUnknownRouteError(name)
	}
	return d.Materialize(values...)
}

// Compile freezes the declaration into a validated route tree and
// derives every downstream artifact in one pass. All failures are
// diagnostics located to their declaration node; any diagnostic aborts
// the pass with a *GenerationError and no partial output.
func Compile(root *Decl, opts ...Option) (*Compilation, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if root == nil {
		return nil, newConfigError("nil route declaration", nil)
	}

	tree, diags := buildTree(root)
	if len(diags) > 0 {
		return nil, newGenerationError(diags)
	}

	if diags := validateTree(tree, cfg); len(diags) > 0 {
		return nil, newGenerationError(diags)
	}

	descriptors, byName := buildDescriptors(tree, cfg)

	comp := &Compilation{
		Tree:        tree,
		Descriptors: descriptors,
		byName:      byName,
	}

	if cfg.views {
		assembly, diags := buildAssembly(tree, cfg)
		if len(diags) > 0 {
			return nil, newGenerationError(diags)
		}
		comp.Assembly = assembly
	} else if cfg.notFound != "" {
		cfg.logger.Warn("routegen: WithGlobalNotFound(%q) has no effect without WithViews", cfg.notFound)
	}

	cfg.logger.Debug("routegen: compiled %d route(s)", len(descriptors))

	return comp, nil
}
