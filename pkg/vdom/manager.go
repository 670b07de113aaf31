package vdom

import (
	"github.com/loomui/loom/pkg/dom"
)

// Manager is the type-erased boundary over a component wrapper. It lets
// the reconciler hold sibling positions whose concrete component types
// differ without knowing those types; the identity check that decides
// reuse-versus-replace happens behind Patch.
type Manager interface {
	// RenderWalk ensures the managed component has been created and
	// initially rendered, re-renders it if dirty, then recurses into the
	// rendered subtree.
	RenderWalk(parent, ref dom.Node, sched Notifier) error

	// Patch reconciles this manager against the previous occupant of the
	// same position (old, may be nil), then performs a RenderWalk.
	Patch(old Manager, parent, ref dom.Node, sched Notifier) error

	// Remove detaches the rendered subtree and fires the component's
	// Destroyed hook; a no-op success if nothing was ever rendered.
	Remove(parent dom.Node) error

	// DOMNode returns the document node the component currently occupies
	// at its root, or nil if unrendered.
	DOMNode() dom.Node
}

// wrapper owns at most one live instance of component type C. The type
// parameters make each component type its own wrapper type, so the
// reuse-versus-replace decision in Patch is a plain type assertion.
type wrapper[C any, P any, PC interface {
	*C
	Renderable[P]
}] struct {
	comp     PC
	props    P
	hasProps bool
	cached   *VNode
}

// Comp places a component of type C in a virtual tree with the given
// props. The instance itself is constructed lazily, on the first
// RenderWalk after the node is patched in:
//
//	vdom.Comp[Counter](CounterProps{Step: 2})
func Comp[C any, P any, PC interface {
	*C
	Renderable[P]
}](props P) *VNode {
	return &VNode{
		Kind: KindComponent,
		mgr:  &wrapper[C, P, PC]{props: props, hasProps: true},
	}
}

// takeProps consumes the stored props. They are absent only in the window
// between construction/update and replacement; reading in that window is
// a programming error, not a runtime condition.
func (w *wrapper[C, P, PC]) takeProps() P {
	if !w.hasProps {
		panic("vdom: component props taken twice")
	}
	w.hasProps = false
	return w.props
}

// RenderWalk implements Manager.
//
// Unmounted: consume the initial props, construct the instance with
// default state, fire Created, render, and patch the result in with no
// previous tree. Mounted: commit pending state if dirty, and if state or
// props changed, re-render and patch against the cached tree rather than
// the raw document. Either way, recurse into the cached subtree so nested
// components are visited independently of this node's dirtiness.
func (w *wrapper[C, P, PC]) RenderWalk(parent, ref dom.Node, sched Notifier) error {
	if w.comp == nil {
		props := w.takeProps()
		comp := PC(new(C))
		comp.attach(NewStatus(sched))
		comp.setProps(props)
		comp.Init(props)
		comp.Created()

		initial := comp.Render()
		if err := initial.Patch(nil, parent, ref, sched); err != nil {
			return err
		}
		w.comp = comp
		w.cached = initial
	} else {
		stateChanged := false
		if w.comp.StateDirty() {
			stateChanged = w.comp.RefreshState()
		}

		if stateChanged || w.comp.PropsDirty() {
			rerender := w.comp.Render()
			if err := rerender.Patch(w.cached, parent, ref, sched); err != nil {
				return err
			}
			w.cached = rerender
			w.comp.clearPropsDirty()
		}
	}

	return w.cached.RenderWalk(parent, ref, sched)
}

// Patch implements Manager.
//
// The incoming old manager is reinterpreted as this wrapper's own
// concrete type. Same type: the old live instance and its cached render
// are reused, and the new props flow through the instance's Update hook
// (firing Updated if they differed). Different type: the old subtree is
// removed from the document, firing its Destroyed hooks, and this wrapper
// proceeds as a fresh mount. A type mismatch is control flow, never an
// error.
func (w *wrapper[C, P, PC]) Patch(old Manager, parent, ref dom.Node, sched Notifier) error {
	if old != nil {
		if same, ok := old.(*wrapper[C, P, PC]); ok {
			comp := same.comp
			if comp == nil {
				panic("vdom: patch against a component that was never rendered")
			}
			if oldProps, changed := comp.Update(w.takeProps()); changed {
				comp.Updated(oldProps)
			}
			w.comp = comp
			// Reuse the cached render too, as the diff base.
			w.cached = same.cached
		} else if err := old.Remove(parent); err != nil {
			return err
		}
	}
	return w.RenderWalk(parent, ref, sched)
}

// Remove implements Manager.
func (w *wrapper[C, P, PC]) Remove(parent dom.Node) error {
	if w.cached == nil {
		return nil
	}
	if err := w.cached.Remove(parent); err != nil {
		return err
	}
	w.cached = nil
	w.comp.Destroyed()
	return nil
}

// DOMNode implements Manager.
func (w *wrapper[C, P, PC]) DOMNode() dom.Node {
	if w.cached == nil {
		return nil
	}
	return w.cached.DOMNode()
}
