package routegen

import (
	"bytes"
	"fmt"
	"go/token"
	"strings"

	"github.com/ettle/strcase"
)

const generatedHeader = "// Code generated by routegen. DO NOT EDIT."

// GoGenerator renders a compilation as one standalone Go source file:
// an exported struct per route with Segments, Pattern, and a
// fixed-arity Materialize method typed one parameter per chain entry,
// plus an optional manifest and an assembly mirror. Output is
// deterministic: the same compilation renders identical bytes.
type GoGenerator struct {
	comp *Compilation
	cfg  GenConfig
}

// NewGoGenerator prepares a generator over comp.
func NewGoGenerator(comp *Compilation, opts ...GenOption) *GoGenerator {
	cfg := defaultGenConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &GoGenerator{comp: comp, cfg: cfg}
}

// Generate renders the source file.
func (g *GoGenerator) Generate() ([]byte, error) {
	if !token.IsIdentifier(g.cfg.Package) {
		return nil, newConfigError(
			fmt.Sprintf("package name %q is not a valid Go identifier", g.cfg.Package),
			map[string]any{"package": g.cfg.Package},
		)
	}
	if g.cfg.Prefix != "" && !token.IsIdentifier(g.cfg.Prefix) {
		return nil, newConfigError(
			fmt.Sprintf("name prefix %q is not a valid Go identifier", g.cfg.Prefix),
			map[string]any{"prefix": g.cfg.Prefix},
		)
	}

	filter, err := newRouteFilter(g.cfg)
	if err != nil {
		return nil, err
	}

	var body bytes.Buffer
	emitted := make(map[string]string) // generated name -> route

	var routes []*Descriptor
	for _, d := range g.comp.Descriptors {
		if !filter.match(d.Name()) {
			continue
		}
		routes = append(routes, d)
	}

	for _, d := range routes {
		name := g.routeTypeName(d.Name())
		if prev, taken := emitted[name]; taken {
			return nil, newConfigError(
				fmt.Sprintf("generated type %q for route %q collides with route %q; rename a route or set a name prefix", name, d.Name(), prev),
				map[string]any{"type": name, "route": d.Name(), "existing": prev},
			)
		}
		emitted[name] = d.Name()

		g.writeRoute(&body, name, d)
	}

	manifest := !g.cfg.OmitManifest
	if manifest {
		g.writeManifest(&body, routes)
	}

	assembly := g.comp.Assembly != nil
	if assembly {
		g.writeAssembly(&body, g.comp.Assembly)
	}

	var out bytes.Buffer
	out.WriteString(generatedHeader + "\n\n")
	fmt.Fprintf(&out, "package %s\n", g.cfg.Package)

	if len(routes) > 0 || manifest || assembly {
		out.WriteString("\nimport \"github.com/goliatone/go-routegen\"\n")
	}

	out.Write(body.Bytes())

	return out.Bytes(), nil
}

// routeTypeName derives the exported type name for a dotted route
// name. The root component is dropped except for the root route
// itself, so "root.users.user" becomes "UsersUser".
func (g *GoGenerator) routeTypeName(name string) string {
	components := strings.Split(name, ".")
	if len(components) > 1 {
		components = components[1:]
	}

	var sb strings.Builder
	sb.WriteString(g.cfg.Prefix)
	for _, component := range components {
		sb.WriteString(exportedName(component))
	}
	return sb.String()
}

// exportedName renders one name component as an exported identifier
// chunk.
func exportedName(component string) string {
	name := strcase.ToPascal(component)
	if name == "" {
		return "X"
	}
	if name[0] >= '0' && name[0] <= '9' {
		return "R" + name
	}
	return name
}

// paramArgName renders a chain parameter as a function argument
// identifier, guarding Go keywords and collisions after case
// conversion.
func paramArgName(param string, used map[string]bool) string {
	name := strcase.ToCamel(param)
	if name == "" {
		name = "v"
	}
	if name[0] >= '0' && name[0] <= '9' {
		name = "p" + name
	}
	if token.IsKeyword(name) {
		name += "Param"
	}
	return uniqueName(name, used)
}

// uniqueName claims name in used, suffixing a counter when taken.
func uniqueName(name string, used map[string]bool) string {
	candidate := name
	for i := 2; used[candidate]; i++ {
		candidate = fmt.Sprintf("%s%d", name, i)
	}
	used[candidate] = true
	return candidate
}

func segmentCtor(seg Segment) string {
	switch seg.Kind {
	case SegmentParam:
		return fmt.Sprintf("routegen.ParamSegment(%q)", seg.Value)
	case SegmentOptionalParam:
		return fmt.Sprintf("routegen.OptionalParamSegment(%q)", seg.Value)
	case SegmentWildcard:
		return fmt.Sprintf("routegen.WildcardSegment(%q)", seg.Value)
	default:
		return fmt.Sprintf("routegen.StaticSegment(%q)", seg.Value)
	}
}

func (g *GoGenerator) writeRoute(buf *bytes.Buffer, name string, d *Descriptor) {
	used := make(map[string]bool)
	args := make([]string, 0, d.Arity())
	for _, seg := range d.ParamChain() {
		args = append(args, paramArgName(seg.Value, used))
	}

	fmt.Fprintf(buf, "\n// %s is the generated descriptor for route %q.\n", name, d.Name())
	fmt.Fprintf(buf, "type %s struct{}\n", name)

	buf.WriteString("\n// Segments returns the route's own pattern segments.\n")
	fmt.Fprintf(buf, "func (%s) Segments() []routegen.Segment {\n", name)
	local := d.LocalSegments()
	if len(local) == 0 {
		buf.WriteString("\treturn nil\n")
	} else {
		buf.WriteString("\treturn []routegen.Segment{\n")
		for _, seg := range local {
			fmt.Fprintf(buf, "\t\t%s,\n", segmentCtor(seg))
		}
		buf.WriteString("\t}\n")
	}
	buf.WriteString("}\n")

	buf.WriteString("\n// Pattern returns the full route pattern.\n")
	fmt.Fprintf(buf, "func (%s) Pattern() string {\n", name)
	fmt.Fprintf(buf, "\treturn %q\n", d.FullPattern())
	buf.WriteString("}\n")

	params := make([]string, len(args))
	for i, arg := range args {
		params[i] = arg + " string"
	}

	buf.WriteString("\n// Materialize builds the concrete path, one value per chain\n// parameter in declaration order.\n")
	fmt.Fprintf(buf, "func (%s) Materialize(%s) string {\n", name, strings.Join(params, ", "))
	for _, line := range g.materializeBody(d, args, used) {
		fmt.Fprintf(buf, "\t%s\n", line)
	}
	buf.WriteString("}\n")
}

// materializeGroup is one run of the token stream: either a chunk that
// always contributes (statics and required values merged into a single
// expression) or a single optional value guarded at call time.
type materializeGroup struct {
	expr     string
	optional bool
	arg      string
}

func (g *GoGenerator) materializeBody(d *Descriptor, args []string, used map[string]bool) []string {
	groups := materializeGroups(d, args)

	if len(groups) == 0 {
		return []string{`return "/"`}
	}

	if len(groups) == 1 && !groups[0].optional {
		return []string{fmt.Sprintf("return %s", groups[0].expr)}
	}

	// the accumulator must not shadow a parameter ("*path" is common)
	acc := uniqueName("path", used)

	var lines []string
	allOptional := true
	first := true

	for _, group := range groups {
		if group.optional {
			lines = append(lines,
				fmt.Sprintf("if %s != \"\" {", group.arg),
				fmt.Sprintf("\t%s += \"/\" + %s", acc, group.arg),
				"}",
			)
			if first {
				lines = append([]string{fmt.Sprintf("%s := \"\"", acc)}, lines...)
				first = false
			}
			continue
		}

		allOptional = false
		if first {
			lines = append(lines, fmt.Sprintf("%s := %s", acc, group.expr))
			first = false
		} else {
			lines = append(lines, fmt.Sprintf("%s += %s", acc, group.expr))
		}
	}

	if allOptional {
		lines = append(lines,
			fmt.Sprintf("if %s == \"\" {", acc),
			"\treturn \"/\"",
			"}",
		)
	}

	return append(lines, fmt.Sprintf("return %s", acc))
}

// materializeGroups folds the full token stream into emission groups,
// merging adjacent always-present tokens into one expression. Both
// source generators build their bodies from the same grouping.
func materializeGroups(d *Descriptor, args []string) []materializeGroup {
	var groups []materializeGroup

	var parts []string
	pending := ""
	flush := func() {
		if pending != "" {
			parts = append(parts, fmt.Sprintf("%q", pending))
			pending = ""
		}
		if len(parts) > 0 {
			groups = append(groups, materializeGroup{expr: strings.Join(parts, " + ")})
			parts = nil
		}
	}

	argIdx := 0
	for _, seg := range d.tokens {
		if !seg.IsDynamic() {
			pending += "/" + seg.Value
			continue
		}

		arg := args[argIdx]
		argIdx++

		if d.segmentOptional(seg) {
			flush()
			groups = append(groups, materializeGroup{optional: true, arg: arg})
			continue
		}

		pending += "/"
		parts = append(parts, fmt.Sprintf("%q", pending), arg)
		pending = ""
	}
	flush()

	return groups
}

func (g *GoGenerator) writeManifest(buf *bytes.Buffer, routes []*Descriptor) {
	buf.WriteString("\n// Routes lists every generated route in declaration order.\n")
	if len(routes) == 0 {
		buf.WriteString("var Routes = []routegen.ManifestEntry{}\n")
		return
	}
	buf.WriteString("var Routes = []routegen.ManifestEntry{\n")
	for _, d := range routes {
		fields := []string{
			fmt.Sprintf("Name: %q", d.Name()),
			fmt.Sprintf("Pattern: %q", d.FullPattern()),
		}
		if names := d.ParamNames(); len(names) > 0 {
			quoted := make([]string, len(names))
			for i, n := range names {
				quoted[i] = fmt.Sprintf("%q", n)
			}
			fields = append(fields, fmt.Sprintf("Params: []string{%s}", strings.Join(quoted, ", ")))
		}
		if b := d.Node().Binding; b != nil {
			if b.Layout != "" {
				fields = append(fields, fmt.Sprintf("Layout: %q", b.Layout))
			}
			if b.View != "" {
				fields = append(fields, fmt.Sprintf("View: %q", b.View))
			}
			if b.Fallback != "" {
				fields = append(fields, fmt.Sprintf("Fallback: %q", b.Fallback))
			}
		}
		if d.Node().Leaf() {
			fields = append(fields, "Leaf: true")
		}
		fmt.Fprintf(buf, "\t{%s},\n", strings.Join(fields, ", "))
	}
	buf.WriteString("}\n")
}

func (g *GoGenerator) writeAssembly(buf *bytes.Buffer, assembly *Assembly) {
	buf.WriteString("\n// AssemblyTree mirrors the compiled view assembly. Children keep\n// declaration order; dispatch is first-declared, first-matched.\n")
	fmt.Fprintf(buf, "func %sAssemblyTree() *routegen.AssemblyNode {\n", g.cfg.Prefix)
	buf.WriteString("\treturn ")
	writeAssemblyNode(buf, assembly.Root, 1)
	buf.WriteString("\n}\n")

	if assembly.NotFound != "" {
		buf.WriteString("\n// AssemblyNotFound names the global not-found binding.\n")
		fmt.Fprintf(buf, "func %sAssemblyNotFound() string {\n", g.cfg.Prefix)
		fmt.Fprintf(buf, "\treturn %q\n", assembly.NotFound)
		buf.WriteString("}\n")
	}
}

// writeAssemblyNode emits one aligned composite literal per node,
// recursing into children.
func writeAssemblyNode(buf *bytes.Buffer, node *AssemblyNode, depth int) {
	indent := strings.Repeat("\t", depth)

	type field struct {
		key   string
		value string
	}
	fields := []field{
		{"Name", fmt.Sprintf("%q", node.Name)},
		{"Pattern", fmt.Sprintf("%q", node.Pattern)},
	}
	if node.Layout != "" {
		fields = append(fields, field{"Layout", fmt.Sprintf("%q", node.Layout)})
	}
	if node.View != "" {
		fields = append(fields, field{"View", fmt.Sprintf("%q", node.View)})
	}
	if node.Fallback != "" {
		fields = append(fields, field{"Fallback", fmt.Sprintf("%q", node.Fallback)})
	}

	// single-line fields align among themselves; the multi-line
	// Children entry sits outside the alignment run, as gofmt has it
	width := 0
	for _, f := range fields {
		if len(f.key) > width {
			width = len(f.key)
		}
	}

	buf.WriteString("&routegen.AssemblyNode{\n")
	for _, f := range fields {
		fmt.Fprintf(buf, "%s\t%-*s %s,\n", indent, width+1, f.key+":", f.value)
	}
	if len(node.Children) > 0 {
		fmt.Fprintf(buf, "%s\tChildren: []*routegen.AssemblyNode{\n", indent)
		for _, child := range node.Children {
			fmt.Fprintf(buf, "%s\t\t", indent)
			writeAssemblyNode(buf, child, depth+2)
			buf.WriteString(",\n")
		}
		fmt.Fprintf(buf, "%s\t},\n", indent)
	}
	fmt.Fprintf(buf, "%s}", indent)
}
