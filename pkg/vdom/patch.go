package vdom

import (
	"fmt"

	"github.com/loomui/loom/pkg/dom"
)

// RenderWalk ensures every component reachable from this node has been
// rendered, re-rendering the ones that are dirty. Text and element nodes
// have no render state of their own; they recurse so that nested
// components are visited exactly once per pass regardless of whether an
// ancestor re-rendered.
func (v *VNode) RenderWalk(parent, ref dom.Node, sched Notifier) error {
	switch v.Kind {
	case KindText:
		return nil
	case KindElement:
		for i, child := range v.Children {
			if err := child.RenderWalk(v.node, v.siblingAfter(i), sched); err != nil {
				return err
			}
		}
		return nil
	case KindComponent:
		return v.mgr.RenderWalk(parent, ref, sched)
	default:
		panic(fmt.Sprintf("vdom: render walk on unknown node kind %d", v.Kind))
	}
}

// Patch reconciles this node against the previous node occupying the same
// position, mutating the document under parent. A nil old mounts fresh.
func (v *VNode) Patch(old *VNode, parent, ref dom.Node, sched Notifier) error {
	switch v.Kind {
	case KindText:
		return v.patchText(old, parent, ref)
	case KindElement:
		return v.patchElement(old, parent, ref, sched)
	case KindComponent:
		if old != nil {
			if old.Kind == KindComponent {
				return v.mgr.Patch(old.mgr, parent, ref, sched)
			}
			if err := old.Remove(parent); err != nil {
				return err
			}
		}
		return v.mgr.Patch(nil, parent, ref, sched)
	default:
		panic(fmt.Sprintf("vdom: patch on unknown node kind %d", v.Kind))
	}
}

// Remove detaches this node's subtree from the document, firing Destroyed
// on every component in it. Removing an unrendered node is a no-op.
func (v *VNode) Remove(parent dom.Node) error {
	switch v.Kind {
	case KindText:
		if v.node == nil {
			return nil
		}
		return parent.RemoveChild(v.node)
	case KindElement:
		if v.node == nil {
			return nil
		}
		for _, child := range v.Children {
			if err := child.Remove(v.node); err != nil {
				return err
			}
		}
		return parent.RemoveChild(v.node)
	case KindComponent:
		return v.mgr.Remove(parent)
	default:
		panic(fmt.Sprintf("vdom: remove on unknown node kind %d", v.Kind))
	}
}

func (v *VNode) patchText(old *VNode, parent, ref dom.Node) error {
	if old != nil && old.Kind == KindText {
		v.node = old.node
		if old.Text != v.Text {
			return v.node.SetText(v.Text)
		}
		return nil
	}
	if old != nil {
		if err := old.Remove(parent); err != nil {
			return err
		}
	}
	n, err := parent.Document().CreateText(v.Text)
	if err != nil {
		return err
	}
	if err := parent.InsertBefore(n, ref); err != nil {
		return err
	}
	v.node = n
	return nil
}

func (v *VNode) patchElement(old *VNode, parent, ref dom.Node, sched Notifier) error {
	if old != nil && old.Kind == KindElement && old.Tag == v.Tag {
		v.node = old.node
		if err := v.patchAttrs(old); err != nil {
			return err
		}
		if err := v.patchEvents(old); err != nil {
			return err
		}
		return patchChildren(old.Children, v.Children, v.node, sched)
	}

	if old != nil {
		if err := old.Remove(parent); err != nil {
			return err
		}
	}

	n, err := parent.Document().CreateElement(v.Tag)
	if err != nil {
		return err
	}
	for key, value := range v.Attrs {
		if err := n.SetAttribute(key, value); err != nil {
			return err
		}
	}
	for event, fn := range v.Events {
		if err := n.Bind(event, fn); err != nil {
			return err
		}
	}
	if err := parent.InsertBefore(n, ref); err != nil {
		return err
	}
	v.node = n
	return patchChildren(nil, v.Children, n, sched)
}

// patchAttrs applies the attribute delta between old and v to the shared
// document node.
func (v *VNode) patchAttrs(old *VNode) error {
	for key := range old.Attrs {
		if _, ok := v.Attrs[key]; !ok {
			if err := v.node.RemoveAttribute(key); err != nil {
				return err
			}
		}
	}
	for key, value := range v.Attrs {
		if prev, ok := old.Attrs[key]; !ok || prev != value {
			if err := v.node.SetAttribute(key, value); err != nil {
				return err
			}
		}
	}
	return nil
}

// patchEvents rebinds the new tree's handlers. Handlers are fresh
// closures every render, so present events are always rebound; absent
// ones are unbound.
func (v *VNode) patchEvents(old *VNode) error {
	for event := range old.Events {
		if _, ok := v.Events[event]; !ok {
			if err := v.node.Unbind(event); err != nil {
				return err
			}
		}
	}
	for event, fn := range v.Events {
		if err := v.node.Bind(event, fn); err != nil {
			return err
		}
	}
	return nil
}

// siblingAfter returns the document node of the nearest rendered sibling
// after index i, used as the insertion reference for in-place patches.
func (v *VNode) siblingAfter(i int) dom.Node {
	for _, sib := range v.Children[i+1:] {
		if n := sib.DOMNode(); n != nil {
			return n
		}
	}
	return nil
}

// patchChildren reconciles two child lists under parent. Children match
// positionally unless any carries a key, in which case they match by key.
func patchChildren(old, next []*VNode, parent dom.Node, sched Notifier) error {
	if hasKeys(old) || hasKeys(next) {
		return patchKeyedChildren(old, next, parent, sched)
	}

	max := len(old)
	if len(next) > max {
		max = len(next)
	}
	for i := 0; i < max; i++ {
		var o, n *VNode
		if i < len(old) {
			o = old[i]
		}
		if i < len(next) {
			n = next[i]
		}
		switch {
		case n == nil:
			if err := o.Remove(parent); err != nil {
				return err
			}
		case o == nil:
			if err := n.Patch(nil, parent, nil, sched); err != nil {
				return err
			}
		default:
			if err := n.Patch(o, parent, refAfter(old, i), sched); err != nil {
				return err
			}
		}
	}
	return nil
}

// patchKeyedChildren matches children by key so list reorders move nodes
// instead of rewriting them. Unkeyed children in a keyed list mount
// fresh, matching old unkeyed occupants are removed.
func patchKeyedChildren(old, next []*VNode, parent dom.Node, sched Notifier) error {
	oldByKey := make(map[string]int, len(old))
	for i, o := range old {
		if o.Key != "" {
			oldByKey[o.Key] = i
		}
	}

	matched := make(map[int]bool, len(old))
	moved := make([]bool, len(next))

	for i, n := range next {
		if n.Key != "" {
			if oldIdx, ok := oldByKey[n.Key]; ok {
				matched[oldIdx] = true
				if err := n.Patch(old[oldIdx], parent, nil, sched); err != nil {
					return err
				}
				// A rebuilt node (kind or tag changed under the same key)
				// lands at the end of parent and needs placing too.
				moved[i] = oldIdx != i || n.DOMNode() != old[oldIdx].DOMNode()
				continue
			}
		}
		// New (or unkeyed) child: mount at the end, positioned below.
		if err := n.Patch(nil, parent, nil, sched); err != nil {
			return err
		}
		moved[i] = true
	}

	for i, o := range old {
		if !matched[i] {
			if err := o.Remove(parent); err != nil {
				return err
			}
		}
	}

	// Right-to-left placement: inserting each displaced node before its
	// already-final successor converges on the target order.
	var ref dom.Node
	for i := len(next) - 1; i >= 0; i-- {
		n := next[i].DOMNode()
		if n == nil {
			continue
		}
		if moved[i] {
			if err := parent.InsertBefore(n, ref); err != nil {
				return err
			}
		}
		ref = n
	}
	return nil
}

// refAfter returns the document node of the first still-rendered old
// sibling after index i.
func refAfter(old []*VNode, i int) dom.Node {
	for _, sib := range old[i+1:] {
		if n := sib.DOMNode(); n != nil {
			return n
		}
	}
	return nil
}

func hasKeys(children []*VNode) bool {
	for _, child := range children {
		if child.Key != "" {
			return true
		}
	}
	return false
}
