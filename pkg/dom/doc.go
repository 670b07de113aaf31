// Package dom defines the document host boundary consumed by the
// reconciler.
//
// The reconciler in pkg/vdom never manipulates a document directly; it
// speaks to a host through the Document and Node interfaces defined here.
// A host supplies primitive operations only: create element and text
// nodes, insert a node before a reference sibling (or at the end of its
// parent), remove a node, and read or write attributes and text content.
//
// The in-memory host in pkg/memdom is the reference implementation and is
// what the live session server and the test suite run against.
//
// # Errors
//
// Every failing host primitive returns an *OpError carrying the host's
// native failure. The reconciler propagates these unchanged; it never
// attempts recovery. See the package-level error documentation on OpError.
package dom
