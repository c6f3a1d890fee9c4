package routegen

import "strings"

// PathParam returns a parameter segment (e.g., ":id").
func PathParam(name string) string {
	return ":" + name
}

// OptionalPathParam returns an optional parameter segment (e.g., ":tab?").
func OptionalPathParam(name string) string {
	return ":" + name + "?"
}

// PathWildcard returns a trailing wildcard segment (e.g., "*rest").
func PathWildcard(name string) string {
	return "*" + name
}

// JoinPatterns concatenates pattern fragments into one pattern,
// collapsing duplicate slashes. Empty fragments are skipped; joining
// nothing yields "/".
//
// Example:
//
//	JoinPatterns("/users", "/"+PathParam("id"), "/edit") // "/users/:id/edit"
func JoinPatterns(patterns ...string) string {
	var sb strings.Builder
	for _, pattern := range patterns {
		for _, chunk := range strings.Split(pattern, "/") {
			if chunk == "" {
				continue
			}
			sb.WriteString("/")
			sb.WriteString(chunk)
		}
	}
	if sb.Len() == 0 {
		return "/"
	}
	return sb.String()
}
