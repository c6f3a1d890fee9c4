package routegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func demoDecl() *Decl {
	return Root(
		NewDecl("users", "/users").Children(
			NewDecl("user", "/:id").Children(
				NewDecl("details", "/details"),
			),
			NewDecl("new", "/new"),
		),
		NewDecl("about", "/about"),
	)
}

func TestBuildTree_Shape(t *testing.T) {
	tree, diags := buildTree(demoDecl())
	require.Empty(t, diags)
	require.NotNil(t, tree)

	require.Equal(t, "root", tree.Root.Name)
	require.Len(t, tree.Root.Children, 2)

	users := tree.Root.Children[0]
	assert.Equal(t, "users", users.Name)
	assert.Equal(t, "/users", users.Pattern)
	require.Len(t, users.Children, 2)

	// sibling order is declaration order
	assert.Equal(t, "user", users.Children[0].Name)
	assert.Equal(t, "new", users.Children[1].Name)

	user := users.Children[0]
	require.Len(t, user.Segments, 1)
	assert.Equal(t, ParamSegment("id"), user.Segments[0])
	assert.False(t, user.Leaf())
	assert.True(t, users.Children[1].Leaf())
}

func TestBuildTree_PathsAndParents(t *testing.T) {
	tree, diags := buildTree(demoDecl())
	require.Empty(t, diags)

	var names []string
	tree.Walk(func(n *RouteNode) {
		names = append(names, tree.PathOf(n))
	})
	assert.Equal(t, []string{
		"root",
		"root.users",
		"root.users.user",
		"root.users.user.details",
		"root.users.new",
		"root.about",
	}, names)

	details, ok := tree.Lookup("root.users.user.details")
	require.True(t, ok)
	assert.Equal(t, "details", details.Name)

	user := tree.ParentOf(details)
	require.NotNil(t, user)
	assert.Equal(t, "user", user.Name)

	assert.Nil(t, tree.ParentOf(tree.Root))

	ancestors := tree.AncestorsOf(details)
	require.Len(t, ancestors, 4)
	assert.Equal(t, "root", ancestors[0].Name)
	assert.Equal(t, "details", ancestors[3].Name)

	_, ok = tree.Lookup("root.nope")
	assert.False(t, ok)
}

func TestBuildTree_ChainOrder(t *testing.T) {
	root := Root(
		NewDecl("orgs", "/orgs/:org").Children(
			NewDecl("repos", "/repos/:repo").Children(
				NewDecl("file", "/blob/*path"),
			),
		),
	)

	tree, diags := buildTree(root)
	require.Empty(t, diags)

	file, ok := tree.Lookup("root.orgs.repos.file")
	require.True(t, ok)

	chain := tree.ChainOf(file)
	require.Len(t, chain, 3)
	// root-to-node order, never reversed
	assert.Equal(t, "org", chain[0].Value)
	assert.Equal(t, "repo", chain[1].Value)
	assert.Equal(t, "path", chain[2].Value)
}

func TestBuildTree_DuplicateSiblingNames(t *testing.T) {
	root := Root(
		NewDecl("users", "/users"),
		NewDecl("users", "/people"),
	)

	tree, diags := buildTree(root)
	assert.Nil(t, tree)
	require.Len(t, diags, 1)
	assert.Equal(t, DiagDuplicateName, diags[0].Code)
	assert.Equal(t, "root.users", diags[0].NodePath)
	assert.Equal(t, "/people", diags[0].Pattern)
}

func TestBuildTree_BadPatternLocated(t *testing.T) {
	root := Root(
		NewDecl("users", "/users").Children(
			NewDecl("file", "/files/*rest/meta"),
		),
	)

	tree, diags := buildTree(root)
	assert.Nil(t, tree)
	require.Len(t, diags, 1)
	assert.Equal(t, DiagBadPattern, diags[0].Code)
	assert.Equal(t, "root.users.file", diags[0].NodePath)
	assert.Contains(t, diags[0].Message, "wildcard")
}

func TestBuildTree_EmptyName(t *testing.T) {
	root := Root(NewDecl("", "/users"))

	tree, diags := buildTree(root)
	assert.Nil(t, tree)
	require.NotEmpty(t, diags)
	assert.Equal(t, DiagBadName, diags[0].Code)
}

func TestBuildTree_CollectsEveryDiagnostic(t *testing.T) {
	root := Root(
		NewDecl("a", "/files/*rest/meta"),
		NewDecl("b", "no-slash"),
	)

	tree, diags := buildTree(root)
	assert.Nil(t, tree)
	require.Len(t, diags, 2)
	assert.Equal(t, "root.a", diags[0].NodePath)
	assert.Equal(t, "root.b", diags[1].NodePath)
}
