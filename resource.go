package routegen

import (
	"github.com/ettle/strcase"
	"github.com/gertd/go-pluralize"
)

var pluralizer = pluralize.NewClient()

// Resource actions in declaration order. Index is the collection node
// itself; Show is the member node.
const (
	ActionIndex = "index"
	ActionNew   = "new"
	ActionShow  = "show"
	ActionEdit  = "edit"
)

type resourceConfig struct {
	idParam string
	only    map[string]bool
}

// ResourceOption adjusts the conventional resource subtree.
type ResourceOption func(*resourceConfig)

// WithIDParam overrides the member parameter name derived from the
// resource name.
func WithIDParam(name string) ResourceOption {
	return func(cfg *resourceConfig) {
		cfg.idParam = name
	}
}

// WithOnly keeps just the named actions. ActionIndex is always kept:
// it is the collection node the rest of the subtree hangs from.
func WithOnly(actions ...string) ResourceOption {
	return func(cfg *resourceConfig) {
		cfg.only = make(map[string]bool, len(actions))
		for _, action := range actions {
			cfg.only[action] = true
		}
	}
}

// Resource declares the conventional subtree for a resource: a
// pluralized collection node with a "new" leaf, and a member node
// keyed by a singular-derived parameter with an "edit" leaf.
//
//	Resource("user")  =>  /users, /users/new, /users/:user_id,
//	                      /users/:user_id/edit
//
// The returned declaration composes into any tree; bind views with the
// usual Decl methods before compiling.
func Resource(name string, opts ...ResourceOption) *Decl {
	singular := pluralizer.Singular(name)
	plural := pluralizer.Plural(name)

	cfg := resourceConfig{idParam: strcase.ToSnake(singular) + "_id"}
	for _, opt := range opts {
		opt(&cfg)
	}
	keep := func(action string) bool {
		return cfg.only == nil || cfg.only[action]
	}

	collection := NewDecl(plural, "/"+strcase.ToKebab(plural))
	if keep(ActionNew) {
		collection.Children(NewDecl(ActionNew, "/new"))
	}

	if keep(ActionShow) || keep(ActionEdit) {
		member := NewDecl(singular, "/:"+cfg.idParam)
		if keep(ActionEdit) {
			member.Children(NewDecl(ActionEdit, "/edit"))
		}
		collection.Children(member)
	}

	return collection
}
