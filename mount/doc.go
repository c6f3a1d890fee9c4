// Package mount registers a compiled routing assembly onto a go-router
// backend: layouts become middleware wrapping their subtree, leaf views
// become GET handlers at their full pattern, fallbacks register after
// their node's children at the node's own pattern, and the global
// not-found binding registers last as a catch-all.
//
// This is the only package in the module that imports go-router; the
// compiler core stays transport-free.
package mount
