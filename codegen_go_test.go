package routegen

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateGo(t *testing.T, comp *Compilation, opts ...GenOption) string {
	t.Helper()
	out, err := NewGoGenerator(comp, opts...).Generate()
	require.NoError(t, err)
	return string(out)
}

func TestGoGenerator_FileShape(t *testing.T) {
	comp := mustCompile(t, demoDecl())
	src := generateGo(t, comp)

	assert.True(t, strings.HasPrefix(src, "// Code generated by routegen. DO NOT EDIT.\n"))
	assert.Contains(t, src, "\npackage routes\n")
	assert.Contains(t, src, "\nimport \"github.com/goliatone/go-routegen\"\n")
}

func TestGoGenerator_RouteTypes(t *testing.T) {
	comp := mustCompile(t, demoDecl())
	src := generateGo(t, comp)

	// the root component is dropped from every name but the root's own
	assert.Contains(t, src, "type Root struct{}")
	assert.Contains(t, src, "type Users struct{}")
	assert.Contains(t, src, "type UsersUser struct{}")
	assert.Contains(t, src, "type UsersUserDetails struct{}")
	assert.Contains(t, src, "type UsersNew struct{}")
	assert.Contains(t, src, "type About struct{}")
}

func TestGoGenerator_Accessors(t *testing.T) {
	comp := mustCompile(t, demoDecl())
	src := generateGo(t, comp)

	assert.Contains(t, src, "func (UsersUser) Segments() []routegen.Segment {\n\treturn []routegen.Segment{\n\t\troutegen.ParamSegment(\"id\"),\n\t}\n}")
	assert.Contains(t, src, "func (Root) Segments() []routegen.Segment {\n\treturn nil\n}")
	assert.Contains(t, src, "func (UsersUserDetails) Pattern() string {\n\treturn \"/users/:id/details\"\n}")
}

func TestGoGenerator_MaterializeBodies(t *testing.T) {
	comp := mustCompile(t, demoDecl())
	src := generateGo(t, comp)

	assert.Contains(t, src, "func (Root) Materialize() string {\n\treturn \"/\"\n}")
	assert.Contains(t, src, "func (Users) Materialize() string {\n\treturn \"/users\"\n}")
	assert.Contains(t, src, "func (UsersUser) Materialize(id string) string {\n\treturn \"/users/\" + id\n}")
	assert.Contains(t, src, "func (UsersUserDetails) Materialize(id string) string {\n\treturn \"/users/\" + id + \"/details\"\n}")
}

func TestGoGenerator_OptionalBodies(t *testing.T) {
	comp := mustCompile(t, complexDecl())
	src := generateGo(t, comp)

	assert.Contains(t, src, "func (Complex) Materialize(foo string, bar string, baz string) string {")
	assert.Contains(t, src, "path := \"/complex/\" + foo")
	assert.Contains(t, src, "if bar != \"\" {\n\t\tpath += \"/\" + bar\n\t}")
	assert.Contains(t, src, "path += \"/\" + baz")
	assert.Contains(t, src, "return path")
}

func TestGoGenerator_AllOptionalBody(t *testing.T) {
	comp := mustCompile(t, Root(NewDecl("tab", "/:tab?")))
	src := generateGo(t, comp)

	assert.Contains(t, src, "path := \"\"")
	assert.Contains(t, src, "if path == \"\" {\n\t\treturn \"/\"\n\t}")
}

func TestGoGenerator_AccumulatorNeverShadowsParam(t *testing.T) {
	comp := mustCompile(t, Root(NewDecl("docs", "/docs/:section?/*path")))
	src := generateGo(t, comp)

	assert.Contains(t, src, "func (Docs) Materialize(section string, path string) string {")
	assert.Contains(t, src, "path2 := \"/docs\"")
	assert.Contains(t, src, "return path2")
}

func TestGoGenerator_ParamNameSanitizing(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    string
	}{
		{name: "keyword becomes suffixed", pattern: "/:type", want: "Materialize(typeParam string)"},
		{name: "kebab becomes camel", pattern: "/:user-id", want: "Materialize(userId string)"},
		{name: "leading digit prefixed", pattern: "/:2fa", want: "Materialize(p2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comp := mustCompile(t, Root(NewDecl("node", tt.pattern)))
			src := generateGo(t, comp)
			assert.Contains(t, src, tt.want)
		})
	}
}

func TestGoGenerator_Manifest(t *testing.T) {
	comp := mustCompile(t, demoDecl())

	src := generateGo(t, comp)
	assert.Contains(t, src, "var Routes = []routegen.ManifestEntry{")
	assert.Contains(t, src, "{Name: \"root\", Pattern: \"/\"},")
	assert.Contains(t, src, "{Name: \"root.users.user.details\", Pattern: \"/users/:id/details\", Params: []string{\"id\"}, Leaf: true},")

	src = generateGo(t, comp, WithoutManifest())
	assert.NotContains(t, src, "var Routes")
}

func TestGoGenerator_Assembly(t *testing.T) {
	comp := mustCompile(t, demoViewDecl(), WithViews(demoBindings()), WithGlobalNotFound("NotFoundPage"))
	src := generateGo(t, comp)

	assert.Contains(t, src, "func AssemblyTree() *routegen.AssemblyNode {")
	assert.Contains(t, src, "Layout:  \"AppLayout\",")
	assert.Contains(t, src, "View:    \"UserDetails\",")
	assert.Contains(t, src, "func AssemblyNotFound() string {\n\treturn \"NotFoundPage\"\n}")

	// no assembly compiled, none emitted
	src = generateGo(t, mustCompile(t, demoDecl()))
	assert.NotContains(t, src, "AssemblyTree")
}

func TestGoGenerator_Filters(t *testing.T) {
	comp := mustCompile(t, demoDecl())

	src := generateGo(t, comp, WithInclude("root.users", "root.users.**"))
	assert.Contains(t, src, "type Users struct{}")
	assert.Contains(t, src, "type UsersUserDetails struct{}")
	assert.NotContains(t, src, "type About struct{}")
	assert.NotContains(t, src, "type Root struct{}")

	src = generateGo(t, comp, WithExclude("**.details"))
	assert.Contains(t, src, "type UsersUser struct{}")
	assert.NotContains(t, src, "type UsersUserDetails struct{}")
}

func TestGoGenerator_BadInputs(t *testing.T) {
	comp := mustCompile(t, demoDecl())

	_, err := NewGoGenerator(comp, WithInclude("[")).Generate()
	require.Error(t, err)
	assert.Equal(t, "ROUTEGEN_CONFIG", textCode(t, err))

	_, err = NewGoGenerator(comp, WithPackageName("bad name")).Generate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a valid Go identifier")

	_, err = NewGoGenerator(comp, WithNamePrefix("bad prefix")).Generate()
	require.Error(t, err)
}

func TestGoGenerator_Prefix(t *testing.T) {
	comp := mustCompile(t, demoDecl())
	src := generateGo(t, comp, WithNamePrefix("Admin"))

	assert.Contains(t, src, "type AdminUsersUser struct{}")
	assert.Contains(t, src, "type AdminRoot struct{}")
}

func TestGoGenerator_NameCollision(t *testing.T) {
	comp := mustCompile(t, Root(
		NewDecl("userDetails", "/a"),
		NewDecl("user-details", "/b"),
	))

	_, err := NewGoGenerator(comp).Generate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collides")
}

func TestGoGenerator_DigitRouteName(t *testing.T) {
	comp := mustCompile(t, Root(NewDecl("404", "/not-found")))
	src := generateGo(t, comp)

	assert.Contains(t, src, "type R404 struct{}")
}

func TestGoGenerator_Deterministic(t *testing.T) {
	comp := mustCompile(t, demoViewDecl(), WithViews(demoBindings()), WithGlobalNotFound("NotFoundPage"))

	first, err := NewGoGenerator(comp).Generate()
	require.NoError(t, err)
	second, err := NewGoGenerator(comp).Generate()
	require.NoError(t, err)
	assert.True(t, bytes.Equal(first, second))
}
