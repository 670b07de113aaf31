package dom

import "fmt"

// Document is the entry point into a live document tree.
type Document interface {
	// CreateElement creates a detached element node with the given tag.
	CreateElement(tag string) (Node, error)

	// CreateText creates a detached text node with the given content.
	CreateText(text string) (Node, error)

	// ElementByID finds the element whose "id" attribute equals id.
	// The second return value reports whether such an element exists.
	ElementByID(id string) (Node, bool)
}

// Node is a handle to a live node owned by a Document.
//
// Handles are exclusively owned, transitively, by whatever currently
// represents them; inserting a node that already has a parent transfers
// it (the host detaches it first, it is never duplicated).
type Node interface {
	// InsertBefore inserts child before ref. A nil ref appends child at
	// the end of the receiver's children.
	InsertBefore(child, ref Node) error

	// RemoveChild detaches child from the receiver.
	RemoveChild(child Node) error

	// SetAttribute sets an attribute on an element node.
	SetAttribute(key, value string) error

	// RemoveAttribute removes an attribute from an element node.
	RemoveAttribute(key string) error

	// SetText replaces the content of a text node.
	SetText(text string) error

	// Bind attaches a handler for the named event, replacing any handler
	// previously bound for that event.
	Bind(event string, fn func()) error

	// Unbind detaches the handler for the named event, if any.
	Unbind(event string) error

	// OuterHTML returns the serialized markup of the node and its
	// subtree. Used for verification and testing only.
	OuterHTML() string

	// InnerHTML returns the serialized markup of the node's children.
	// Used for verification and testing only.
	InnerHTML() string

	// Document returns the owning document.
	Document() Document
}

// OpError is the single failure kind produced by document hosts. It
// wraps the host's native error together with the primitive that failed.
type OpError struct {
	Op  string // primitive that failed, e.g. "insertBefore"
	Err error  // the host's native failure
}

// Error implements the error interface.
func (e *OpError) Error() string {
	return fmt.Sprintf("dom: %s: %v", e.Op, e.Err)
}

// Unwrap returns the host's native failure for errors.Is/As support.
func (e *OpError) Unwrap() error {
	return e.Err
}
