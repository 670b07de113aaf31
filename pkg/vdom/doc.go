// Package vdom provides the virtual node tree and the reconciliation
// engine that keeps a document host synchronized with it.
//
// # Core Types
//
// VNode is the tagged union over text, element, and component nodes. A
// VNode tree is produced fresh on every render call and is immutable once
// produced; the reconciler compares a new tree against the previous one
// and applies the minimal set of host mutations.
//
// # Patch Protocol
//
// Every node kind implements the same four operations: RenderWalk, Patch,
// Remove, and DOMNode. They operate against a parent node handle and an
// optional "insert before" sibling handle, and propagate document
// failures unchanged. The scheduler handle threaded through RenderWalk
// and Patch is what newly constructed components use to request future
// re-renders.
//
// # Components
//
// A component is a struct that embeds Core[P] (P is its props type) and
// implements Render. Comp[C](props) places one in a tree:
//
//	type Counter struct {
//	    vdom.Core[CounterProps]
//	    clicks int
//	}
//
//	func (c *Counter) Render() *vdom.VNode {
//	    return vdom.El("button",
//	        vdom.On("click", func() {
//	            c.SetState(func() { c.clicks++ })
//	        }),
//	        vdom.Textf("%d clicks", c.clicks),
//	    )
//	}
//
//	node := vdom.Comp[Counter](CounterProps{Step: 1})
//
// Component identity across re-renders is decided by the concrete wrapper
// type: when a new tree places the same component type at a position, the
// live instance and its internal state are reused; a different type tears
// the old subtree down (firing Destroyed) and mounts fresh.
package vdom
