// Package memdom is an in-memory implementation of the document host
// contract in pkg/dom.
//
// A memdom Document holds a single body node under which apps are
// mounted. Nodes support the full set of host primitives plus event
// handler binding: the first handler bound to a node assigns it a stable
// reference id ("h1", "h2", ...) which is serialized as a data-loom
// attribute so a remote client can address the node in event frames.
// Document.Dispatch routes such a frame back to the bound handler.
//
// The document counts every mutating primitive (Mutations), which lets
// tests assert that a reconciliation pass touched the tree a known number
// of times — in particular, zero.
//
// memdom is not safe for concurrent use; the run loop that owns a
// document must be the only goroutine mutating it.
package memdom
