package routegen

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateTS(t *testing.T, comp *Compilation, opts ...GenOption) string {
	t.Helper()
	out, err := NewTSGenerator(comp, opts...).Generate()
	require.NoError(t, err)
	return string(out)
}

func TestTSGenerator_FileShape(t *testing.T) {
	comp := mustCompile(t, demoDecl())
	src := generateTS(t, comp)

	assert.True(t, strings.HasPrefix(src, "// Code generated by routegen. DO NOT EDIT.\n"))
	assert.NotContains(t, src, "import")
}

func TestTSGenerator_Functions(t *testing.T) {
	comp := mustCompile(t, demoDecl())
	src := generateTS(t, comp)

	assert.Contains(t, src, "export function root(): string {\n  return \"/\";\n}")
	assert.Contains(t, src, "export function users(): string {\n  return \"/users\";\n}")
	assert.Contains(t, src, "export function usersUserDetails(id: string): string {\n  return \"/users/\" + id + \"/details\";\n}")
}

func TestTSGenerator_OptionalBody(t *testing.T) {
	comp := mustCompile(t, complexDecl())
	src := generateTS(t, comp)

	assert.Contains(t, src, "export function complex(foo: string, bar: string, baz: string): string {")
	assert.Contains(t, src, "let p = \"/complex/\" + foo;")
	assert.Contains(t, src, "if (bar !== \"\") {\n    p += \"/\" + bar;\n  }")
	assert.Contains(t, src, "p += \"/\" + baz;")
	assert.Contains(t, src, "return p;")
}

func TestTSGenerator_AccumulatorNeverShadowsParam(t *testing.T) {
	comp := mustCompile(t, Root(NewDecl("docs", "/docs/:p?/*rest")))
	src := generateTS(t, comp)

	assert.Contains(t, src, "export function docs(p: string, rest: string): string {")
	assert.Contains(t, src, "let p2 = \"/docs\";")
	assert.Contains(t, src, "return p2;")
}

func TestTSGenerator_ReservedNames(t *testing.T) {
	comp := mustCompile(t, Root(NewDecl("new", "/new")))
	src := generateTS(t, comp)

	assert.Contains(t, src, "export function newRoute(): string {")

	comp = mustCompile(t, Root(NewDecl("node", "/:class")))
	src = generateTS(t, comp)
	assert.Contains(t, src, "export function node(classParam: string): string {")
}

func TestTSGenerator_RoutesTable(t *testing.T) {
	comp := mustCompile(t, demoDecl())

	src := generateTS(t, comp)
	assert.Contains(t, src, "export const routes = [")
	assert.Contains(t, src, "{ name: \"root\", pattern: \"/\", params: [], leaf: false },")
	assert.Contains(t, src, "{ name: \"root.users.user.details\", pattern: \"/users/:id/details\", params: [\"id\"], leaf: true },")
	assert.Contains(t, src, "] as const;")

	src = generateTS(t, comp, WithoutManifest())
	assert.NotContains(t, src, "export const routes")
}

func TestTSGenerator_Filters(t *testing.T) {
	comp := mustCompile(t, demoDecl())

	src := generateTS(t, comp, WithInclude("root.about"))
	assert.Contains(t, src, "export function about(")
	assert.NotContains(t, src, "export function users(")

	_, err := NewTSGenerator(comp, WithExclude("[")).Generate()
	require.Error(t, err)
	assert.Equal(t, "ROUTEGEN_CONFIG", textCode(t, err))
}

func TestTSGenerator_Prefix(t *testing.T) {
	comp := mustCompile(t, demoDecl())
	src := generateTS(t, comp, WithNamePrefix("API"))

	assert.Contains(t, src, "export function APIUsersUser(")
	assert.Contains(t, src, "export function APIRoot(")
}

func TestTSGenerator_NameCollision(t *testing.T) {
	comp := mustCompile(t, Root(
		NewDecl("userDetails", "/a"),
		NewDecl("user-details", "/b"),
	))

	_, err := NewTSGenerator(comp).Generate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collides")
}

func TestTSGenerator_Deterministic(t *testing.T) {
	comp := mustCompile(t, demoDecl())

	first, err := NewTSGenerator(comp).Generate()
	require.NoError(t, err)
	second, err := NewTSGenerator(comp).Generate()
	require.NoError(t, err)
	assert.True(t, bytes.Equal(first, second))
}
