package routegen

import (
	"fmt"

	"github.com/gobwas/glob"
)

// GenConfig configures the source generators. The zero value emits
// everything with default naming; NewGoGenerator and NewTSGenerator
// start from defaultGenConfig.
type GenConfig struct {
	// Package is the package clause for generated Go source. The
	// TypeScript generator ignores it.
	Package string
	// Prefix prepends to every generated type and function name.
	Prefix string
	// Include keeps only routes whose dotted names match one of the
	// globs (e.g. "root.admin.*"). Empty keeps every route.
	Include []string
	// Exclude drops routes whose dotted names match, applied after
	// Include.
	Exclude []string
	// OmitManifest drops the route manifest from generated source.
	OmitManifest bool
}

// GenOption configures a source generator.
type GenOption func(*GenConfig)

// WithPackageName sets the package clause of generated Go source.
func WithPackageName(name string) GenOption {
	return func(cfg *GenConfig) {
		cfg.Package = name
	}
}

// WithNamePrefix prepends prefix to every generated type and function
// name.
func WithNamePrefix(prefix string) GenOption {
	return func(cfg *GenConfig) {
		cfg.Prefix = prefix
	}
}

// WithInclude keeps only routes whose dotted names match one of the
// glob patterns.
func WithInclude(globs ...string) GenOption {
	return func(cfg *GenConfig) {
		cfg.Include = append(cfg.Include, globs...)
	}
}

// WithExclude drops routes whose dotted names match one of the glob
// patterns.
func WithExclude(globs ...string) GenOption {
	return func(cfg *GenConfig) {
		cfg.Exclude = append(cfg.Exclude, globs...)
	}
}

// WithoutManifest drops the route manifest from generated source.
func WithoutManifest() GenOption {
	return func(cfg *GenConfig) {
		cfg.OmitManifest = true
	}
}

func defaultGenConfig() GenConfig {
	return GenConfig{
		Package: "routes",
	}
}

// routeFilter is the compiled include/exclude matcher over dotted
// route names. Dots separate glob segments, so "root.*" matches
// "root.users" but not "root.users.user".
type routeFilter struct {
	include []glob.Glob
	exclude []glob.Glob
}

func newRouteFilter(cfg GenConfig) (*routeFilter, error) {
	compile := func(patterns []string) ([]glob.Glob, error) {
		globs := make([]glob.Glob, 0, len(patterns))
		for _, pattern := range patterns {
			g, err := glob.Compile(pattern, '.')
			if err != nil {
				return nil, newConfigError(
					fmt.Sprintf("bad route filter %q: %v", pattern, err),
					map[string]any{"filter": pattern},
				)
			}
			globs = append(globs, g)
		}
		return globs, nil
	}

	include, err := compile(cfg.Include)
	if err != nil {
		return nil, err
	}
	exclude, err := compile(cfg.Exclude)
	if err != nil {
		return nil, err
	}

	return &routeFilter{include: include, exclude: exclude}, nil
}

func (f *routeFilter) match(name string) bool {
	if len(f.include) > 0 {
		matched := false
		for _, g := range f.include {
			if g.Match(name) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	for _, g := range f.exclude {
		if g.Match(name) {
			return false
		}
	}
	return true
}
