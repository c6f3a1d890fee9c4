package mount

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"

	"github.com/goliatone/go-routegen"
)

// Registrar is the slice of go-router's Router interface that mounting
// needs. Every Router[T] backend satisfies it.
type Registrar interface {
	Handle(method router.HTTPMethod, path string, handler router.HandlerFunc, middlewares ...router.MiddlewareFunc) router.RouteInfo
}

// Config adjusts how an assembly registers onto a router.
type Config struct {
	// BasePath is prepended to every registered pattern.
	BasePath string
	// NotFoundPattern is the catch-all pattern used for the global
	// not-found binding. Adapters disagree on wildcard spelling, so it
	// is configurable.
	NotFoundPattern string
	// SkipNames disables naming registered routes after their
	// qualified route names.
	SkipNames bool
}

var ConfigDefault = Config{
	NotFoundPattern: "/*path",
}

func configDefault(config ...Config) Config {
	if len(config) == 0 {
		return ConfigDefault
	}

	cfg := config[0]

	if cfg.NotFoundPattern == "" {
		cfg.NotFoundPattern = ConfigDefault.NotFoundPattern
	}

	return cfg
}

// Routes registers comp's assembly on reg. Bindings must hold
// router.HandlerFunc values for views and fallbacks and
// router.MiddlewareFunc values for layouts; every mismatch is
// collected and reported in one error. Registration order follows
// declaration order, with each fallback after its node's children and
// the global not-found last, so backends that match in registration
// order dispatch the way the assembly reads.
func Routes(reg Registrar, comp *routegen.Compilation, config ...Config) error {
	cfg := configDefault(config...)

	if comp == nil || comp.Assembly == nil {
		return goerrors.New("compilation has no assembly, compile with WithViews", goerrors.CategoryRouting).
			WithTextCode("ROUTEGEN_MOUNT")
	}

	m := &mounter{reg: reg, comp: comp, asm: comp.Assembly, cfg: cfg}
	m.walk(comp.Assembly.Root, nil)

	if name := m.asm.NotFound; name != "" {
		if handler, ok := m.handlerFor(m.asm.Root, "not-found", name); ok {
			pattern := routegen.JoinPatterns(cfg.BasePath, cfg.NotFoundPattern)
			m.register(pattern, m.asm.Root.Name+".not_found", handler, nil)
		}
	}

	if len(m.errs) > 0 {
		return goerrors.Wrap(errors.Join(m.errs...), goerrors.CategoryRouting, "assembly mount failed").
			WithTextCode("ROUTEGEN_MOUNT")
	}

	return nil
}

type mounter struct {
	reg  Registrar
	comp *routegen.Compilation
	asm  *routegen.Assembly
	cfg  Config
	errs []error
}

// walk registers node and its subtree. mws carries the layout chain
// accumulated from the root, outermost first.
func (m *mounter) walk(node *routegen.AssemblyNode, mws []router.MiddlewareFunc) {
	if node.Layout != "" {
		if mw, ok := m.middlewareFor(node, node.Layout); ok {
			chain := make([]router.MiddlewareFunc, 0, len(mws)+1)
			chain = append(chain, mws...)
			mws = append(chain, mw)
		}
	}

	if node.View != "" {
		if handler, ok := m.handlerFor(node, "view", node.View); ok {
			m.register(m.pattern(node), node.Name, handler, mws)
		}
	}

	for _, child := range node.Children {
		m.walk(child, mws)
	}

	// A leaf's path is already served by its view; fallbacks only make
	// sense where children can fail to match.
	if node.Fallback != "" && !node.Leaf() {
		if handler, ok := m.handlerFor(node, "fallback", node.Fallback); ok {
			m.register(m.pattern(node), node.Name+".fallback", handler, mws)
		}
	}
}

// pattern resolves the node's full pattern, prefixed with BasePath.
func (m *mounter) pattern(node *routegen.AssemblyNode) string {
	full := node.Pattern
	if d, ok := m.comp.Descriptor(node.Name); ok {
		full = d.FullPattern()
	}
	return routegen.JoinPatterns(m.cfg.BasePath, full)
}

func (m *mounter) register(pattern, name string, handler router.HandlerFunc, mws []router.MiddlewareFunc) {
	info := m.reg.Handle(router.GET, pattern, handler, mws...)
	if !m.cfg.SkipNames && info != nil {
		info.SetName(name)
	}
}

func (m *mounter) handlerFor(node *routegen.AssemblyNode, role, name string) (router.HandlerFunc, bool) {
	v, ok := m.asm.Binding(name)
	if !ok {
		m.errs = append(m.errs, fmt.Errorf("route %q: %s binding %q is not registered", node.Name, role, name))
		return nil, false
	}

	switch h := v.(type) {
	case router.HandlerFunc:
		return h, true
	case func(router.Context) error:
		return h, true
	}

	m.errs = append(m.errs, fmt.Errorf("route %q: %s binding %q is %T, want router.HandlerFunc", node.Name, role, name, v))
	return nil, false
}

func (m *mounter) middlewareFor(node *routegen.AssemblyNode, name string) (router.MiddlewareFunc, bool) {
	v, ok := m.asm.Binding(name)
	if !ok {
		m.errs = append(m.errs, fmt.Errorf("route %q: layout binding %q is not registered", node.Name, name))
		return nil, false
	}

	switch mw := v.(type) {
	case router.MiddlewareFunc:
		return mw, true
	case func(router.HandlerFunc) router.HandlerFunc:
		return mw, true
	}

	m.errs = append(m.errs, fmt.Errorf("route %q: layout binding %q is %T, want router.MiddlewareFunc", node.Name, name, v))
	return nil, false
}
