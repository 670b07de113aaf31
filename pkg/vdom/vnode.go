package vdom

import (
	"github.com/loomui/loom/pkg/dom"
)

// VKind is the node type discriminator.
type VKind uint8

const (
	KindText      VKind = iota // plain text node
	KindElement                // <div>, <button>, etc.
	KindComponent              // nested component
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindText:
		return "Text"
	case KindElement:
		return "Element"
	case KindComponent:
		return "Component"
	default:
		return "Unknown"
	}
}

// Notifier is the scheduler handle a component instance uses to request a
// future re-render. Implementations coalesce requests; see pkg/scheduler.
type Notifier interface {
	Notify()
}

// VNode is a unit of renderable structure. It is produced fresh on every
// render call and immutable once produced; the unexported node handle is
// the only field the reconciler writes, transferring ownership of the
// live document node from the previous tree to the new one.
type VNode struct {
	Kind VKind

	// Key is the optional stable reconciliation key. It travels with
	// every node; keyed children are matched by it instead of by
	// position.
	Key string

	// Text is the content for KindText.
	Text string

	// Tag, Attrs, Events and Children describe a KindElement.
	Tag      string
	Attrs    map[string]string
	Events   map[string]func()
	Children []*VNode

	// mgr is the type-erased manager for KindComponent.
	mgr Manager

	// node is the live document node currently backing a text or element
	// node; nil until rendered.
	node dom.Node
}

// DOMNode returns the concrete document node this virtual node currently
// occupies at its root, or nil if unrendered.
func (v *VNode) DOMNode() dom.Node {
	if v.Kind == KindComponent {
		return v.mgr.DOMNode()
	}
	return v.node
}

// Keyed sets the node's reconciliation key and returns the node.
func (v *VNode) Keyed(key string) *VNode {
	v.Key = key
	return v
}
