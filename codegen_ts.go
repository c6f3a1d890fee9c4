package routegen

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ettle/strcase"
)

// tsReserved covers the JavaScript keywords that can collide with
// generated identifiers after case conversion.
var tsReserved = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true,
	"const": true, "continue": true, "default": true, "delete": true,
	"do": true, "else": true, "export": true, "extends": true,
	"finally": true, "for": true, "function": true, "if": true,
	"import": true, "in": true, "instanceof": true, "let": true,
	"new": true, "return": true, "static": true, "super": true,
	"switch": true, "this": true, "throw": true, "try": true,
	"typeof": true, "var": true, "void": true, "while": true,
	"with": true, "yield": true,
}

// TSGenerator renders a compilation as TypeScript link helpers: one
// exported path-builder function per route plus a routes table. Every
// chain parameter stays a required string; callers pass "" for an
// absent optional segment, mirroring Materialize.
type TSGenerator struct {
	comp *Compilation
	cfg  GenConfig
}

// NewTSGenerator prepares a generator over comp.
func NewTSGenerator(comp *Compilation, opts ...GenOption) *TSGenerator {
	cfg := defaultGenConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &TSGenerator{comp: comp, cfg: cfg}
}

// Generate renders the source file.
func (g *TSGenerator) Generate() ([]byte, error) {
	filter, err := newRouteFilter(g.cfg)
	if err != nil {
		return nil, err
	}

	var routes []*Descriptor
	for _, d := range g.comp.Descriptors {
		if !filter.match(d.Name()) {
			continue
		}
		routes = append(routes, d)
	}

	var out bytes.Buffer
	out.WriteString(generatedHeader + "\n")

	emitted := make(map[string]string)
	for _, d := range routes {
		name := g.funcName(d.Name())
		if prev, taken := emitted[name]; taken {
			return nil, newConfigError(
				fmt.Sprintf("generated function %q for route %q collides with route %q; rename a route or set a name prefix", name, d.Name(), prev),
				map[string]any{"function": name, "route": d.Name(), "existing": prev},
			)
		}
		emitted[name] = d.Name()

		g.writeFunc(&out, name, d)
	}

	if !g.cfg.OmitManifest {
		g.writeRoutesTable(&out, routes)
	}

	return out.Bytes(), nil
}

// funcName derives the exported function name for a dotted route name,
// dropping the root component the same way the Go generator does.
func (g *TSGenerator) funcName(name string) string {
	components := strings.Split(name, ".")
	if len(components) > 1 {
		components = components[1:]
	}

	var sb strings.Builder
	sb.WriteString(g.cfg.Prefix)
	for _, component := range components {
		sb.WriteString(exportedName(component))
	}

	fn := sb.String()
	if g.cfg.Prefix == "" {
		fn = strings.ToLower(fn[:1]) + fn[1:]
	}
	if tsReserved[fn] {
		fn += "Route"
	}
	return fn
}

func tsParamName(param string, used map[string]bool) string {
	name := strcase.ToCamel(param)
	if name == "" {
		name = "v"
	}
	if name[0] >= '0' && name[0] <= '9' {
		name = "p" + name
	}
	if tsReserved[name] {
		name += "Param"
	}

	candidate := name
	for i := 2; used[candidate]; i++ {
		candidate = fmt.Sprintf("%s%d", name, i)
	}
	used[candidate] = true
	return candidate
}

func (g *TSGenerator) writeFunc(buf *bytes.Buffer, name string, d *Descriptor) {
	used := make(map[string]bool)
	args := make([]string, 0, d.Arity())
	for _, seg := range d.ParamChain() {
		args = append(args, tsParamName(seg.Value, used))
	}

	params := make([]string, len(args))
	for i, arg := range args {
		params[i] = arg + ": string"
	}

	fmt.Fprintf(buf, "\n// %s builds %q.\n", name, d.FullPattern())
	fmt.Fprintf(buf, "export function %s(%s): string {\n", name, strings.Join(params, ", "))
	for _, line := range g.funcBody(d, args, used) {
		fmt.Fprintf(buf, "  %s\n", line)
	}
	buf.WriteString("}\n")
}

func (g *TSGenerator) funcBody(d *Descriptor, args []string, used map[string]bool) []string {
	groups := materializeGroups(d, args)

	if len(groups) == 0 {
		return []string{`return "/";`}
	}

	if len(groups) == 1 && !groups[0].optional {
		return []string{fmt.Sprintf("return %s;", groups[0].expr)}
	}

	acc := uniqueName("p", used)

	var lines []string
	allOptional := true
	first := true

	for _, group := range groups {
		if group.optional {
			lines = append(lines,
				fmt.Sprintf("if (%s !== \"\") {", group.arg),
				fmt.Sprintf("  %s += \"/\" + %s;", acc, group.arg),
				"}",
			)
			if first {
				lines = append([]string{fmt.Sprintf("let %s = \"\";", acc)}, lines...)
				first = false
			}
			continue
		}

		allOptional = false
		if first {
			lines = append(lines, fmt.Sprintf("let %s = %s;", acc, group.expr))
			first = false
		} else {
			lines = append(lines, fmt.Sprintf("%s += %s;", acc, group.expr))
		}
	}

	if allOptional {
		lines = append(lines,
			fmt.Sprintf("if (%s === \"\") {", acc),
			`  return "/";`,
			"}",
		)
	}

	return append(lines, fmt.Sprintf("return %s;", acc))
}

func (g *TSGenerator) writeRoutesTable(buf *bytes.Buffer, routes []*Descriptor) {
	buf.WriteString("\n// routes lists every generated route in declaration order.\n")
	buf.WriteString("export const routes = [\n")
	for _, d := range routes {
		names := d.ParamNames()
		quoted := make([]string, len(names))
		for i, n := range names {
			quoted[i] = fmt.Sprintf("%q", n)
		}
		fmt.Fprintf(buf, "  { name: %q, pattern: %q, params: [%s], leaf: %t },\n",
			d.Name(), d.FullPattern(), strings.Join(quoted, ", "), d.Node().Leaf())
	}
	buf.WriteString("] as const;\n")
}
