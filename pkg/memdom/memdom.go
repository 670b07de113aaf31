package memdom

import (
	"errors"
	"fmt"

	"github.com/loomui/loom/pkg/dom"
)

// Sentinel errors wrapped by *dom.OpError on failing primitives.
var (
	// ErrNotChild is returned when a child operation names a node that is
	// not a child of the receiver.
	ErrNotChild = errors.New("memdom: node is not a child")

	// ErrWrongKind is returned when a primitive is applied to the wrong
	// node kind, e.g. SetAttribute on a text node.
	ErrWrongKind = errors.New("memdom: wrong node kind")

	// ErrEmptyTag is returned when creating an element with an empty tag.
	ErrEmptyTag = errors.New("memdom: empty tag")

	// ErrNoHandler is returned by Dispatch when no handler is bound for
	// the addressed node and event.
	ErrNoHandler = errors.New("memdom: no handler bound")

	// ErrUnknownRef is returned by Dispatch for an unknown reference id.
	ErrUnknownRef = errors.New("memdom: unknown node reference")
)

type nodeKind uint8

const (
	kindElement nodeKind = iota
	kindText
)

// Document is an in-memory document tree.
type Document struct {
	body      *Node
	refs      map[string]*Node
	refCount  int
	mutations uint64
}

// NewDocument creates an empty document with a body node.
func NewDocument() *Document {
	d := &Document{refs: make(map[string]*Node)}
	d.body = &Node{doc: d, kind: kindElement, tag: "body", attrs: make(map[string]string)}
	return d
}

// Body returns the document's body node.
func (d *Document) Body() dom.Node {
	return d.body
}

// Mutations returns the number of mutating primitives applied so far.
func (d *Document) Mutations() uint64 {
	return d.mutations
}

// CreateElement implements dom.Document.
func (d *Document) CreateElement(tag string) (dom.Node, error) {
	if tag == "" {
		return nil, &dom.OpError{Op: "createElement", Err: ErrEmptyTag}
	}
	return &Node{doc: d, kind: kindElement, tag: tag, attrs: make(map[string]string)}, nil
}

// CreateText implements dom.Document.
func (d *Document) CreateText(text string) (dom.Node, error) {
	return &Node{doc: d, kind: kindText, text: text}, nil
}

// ElementByID implements dom.Document.
func (d *Document) ElementByID(id string) (dom.Node, bool) {
	if n := findByID(d.body, id); n != nil {
		return n, true
	}
	return nil, false
}

func findByID(n *Node, id string) *Node {
	if n.kind == kindElement && n.attrs["id"] == id {
		return n
	}
	for _, c := range n.children {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

// Dispatch invokes the handler bound for event on the node addressed by
// ref. Reference ids are assigned on the first Bind and serialized as a
// data-loom attribute.
func (d *Document) Dispatch(ref, event string) error {
	n, ok := d.refs[ref]
	if !ok {
		return &dom.OpError{Op: "dispatch", Err: fmt.Errorf("%w: %q", ErrUnknownRef, ref)}
	}
	fn, ok := n.handlers[event]
	if !ok {
		return &dom.OpError{Op: "dispatch", Err: fmt.Errorf("%w: %q on %q", ErrNoHandler, event, ref)}
	}
	fn()
	return nil
}

func (d *Document) nextRef() string {
	d.refCount++
	return fmt.Sprintf("h%d", d.refCount)
}

// Node is an in-memory document node.
type Node struct {
	doc      *Document
	kind     nodeKind
	tag      string
	attrs    map[string]string
	text     string
	parent   *Node
	children []*Node
	handlers map[string]func()
	ref      string
}

var _ dom.Node = (*Node)(nil)

// Ref returns the node's reference id, or "" if no handler was ever bound.
func (n *Node) Ref() string {
	return n.ref
}

// Document implements dom.Node.
func (n *Node) Document() dom.Document {
	return n.doc
}

// InsertBefore implements dom.Node. A child that already has a parent is
// detached from it first; nodes are moved, never duplicated.
func (n *Node) InsertBefore(child, ref dom.Node) error {
	c, err := n.own(child, "insertBefore")
	if err != nil {
		return err
	}
	if n.kind != kindElement {
		return &dom.OpError{Op: "insertBefore", Err: ErrWrongKind}
	}
	if c.parent != nil {
		c.parent.detach(c)
	}
	n.doc.mutations++
	if ref == nil {
		c.parent = n
		n.children = append(n.children, c)
		return nil
	}
	r, err := n.own(ref, "insertBefore")
	if err != nil {
		return err
	}
	for i, existing := range n.children {
		if existing == r {
			c.parent = n
			n.children = append(n.children[:i], append([]*Node{c}, n.children[i:]...)...)
			return nil
		}
	}
	return &dom.OpError{Op: "insertBefore", Err: fmt.Errorf("%w: reference node", ErrNotChild)}
}

// RemoveChild implements dom.Node.
func (n *Node) RemoveChild(child dom.Node) error {
	c, err := n.own(child, "removeChild")
	if err != nil {
		return err
	}
	if c.parent != n {
		return &dom.OpError{Op: "removeChild", Err: ErrNotChild}
	}
	n.doc.mutations++
	n.detach(c)
	return nil
}

func (n *Node) detach(c *Node) {
	for i, existing := range n.children {
		if existing == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			break
		}
	}
	c.parent = nil
}

// SetAttribute implements dom.Node.
func (n *Node) SetAttribute(key, value string) error {
	if n.kind != kindElement {
		return &dom.OpError{Op: "setAttribute", Err: ErrWrongKind}
	}
	n.doc.mutations++
	n.attrs[key] = value
	return nil
}

// RemoveAttribute implements dom.Node.
func (n *Node) RemoveAttribute(key string) error {
	if n.kind != kindElement {
		return &dom.OpError{Op: "removeAttribute", Err: ErrWrongKind}
	}
	n.doc.mutations++
	delete(n.attrs, key)
	return nil
}

// SetText implements dom.Node.
func (n *Node) SetText(text string) error {
	if n.kind != kindText {
		return &dom.OpError{Op: "setText", Err: ErrWrongKind}
	}
	n.doc.mutations++
	n.text = text
	return nil
}

// Bind implements dom.Node. The first bind assigns the node its stable
// reference id.
func (n *Node) Bind(event string, fn func()) error {
	if n.kind != kindElement {
		return &dom.OpError{Op: "bind", Err: ErrWrongKind}
	}
	if n.handlers == nil {
		n.handlers = make(map[string]func())
	}
	if n.ref == "" {
		n.ref = n.doc.nextRef()
		n.doc.refs[n.ref] = n
	}
	n.handlers[event] = fn
	return nil
}

// Unbind implements dom.Node.
func (n *Node) Unbind(event string) error {
	if n.kind != kindElement {
		return &dom.OpError{Op: "unbind", Err: ErrWrongKind}
	}
	delete(n.handlers, event)
	return nil
}

// own narrows a dom.Node handle to this document's node type.
func (n *Node) own(h dom.Node, op string) (*Node, error) {
	c, ok := h.(*Node)
	if !ok || c.doc != n.doc {
		return nil, &dom.OpError{Op: op, Err: errors.New("memdom: foreign node handle")}
	}
	return c, nil
}
