package vdom

import (
	"reflect"
	"sync/atomic"
)

// Component is the erased behavioural surface every component presents to
// the reconciler. The unexported methods are provided by Core[P]; user
// code satisfies Component by embedding Core and implementing Render.
type Component interface {
	// Render produces the component's subtree. Called on mount and on
	// every re-render; the result is immutable once returned.
	Render() *VNode

	// Created fires once, after the component has been constructed and
	// before its first render is patched in.
	Created()

	// Destroyed fires once, after the component's rendered subtree has
	// been detached from the document.
	Destroyed()

	// StateDirty reports whether state changed since the last committed
	// render.
	StateDirty() bool

	// RefreshState commits pending state and reports whether it actually
	// changed.
	RefreshState() bool

	// PropsDirty reports whether props changed since the last committed
	// render.
	PropsDirty() bool

	attach(*Status)
	clearPropsDirty()
}

// Renderable is a Component with typed props. *C satisfies it when C
// embeds Core[P].
type Renderable[P any] interface {
	Component

	// Init is the user construction hook, called once with the initial
	// props after the instance has been created with default state.
	Init(props P)

	// Update hands new props to a live instance, returning the previous
	// props and whether they differed.
	Update(next P) (old P, changed bool)

	// Updated fires after Update reported a change, with the old props.
	Updated(old P)

	setProps(P)
}

// Status is the dirty-state cell shared between a live component instance
// and the render-trigger callbacks it hands out. The wrapper owns the
// instance; callbacks reach the shared cell through the instance pointer,
// so both sides observe the same flag.
type Status struct {
	dirty atomic.Bool
	sched Notifier
}

// NewStatus creates a Status that wakes sched when state is marked dirty.
// A nil sched records dirtiness without scheduling (useful for detached
// rendering in tests).
func NewStatus(sched Notifier) *Status {
	return &Status{sched: sched}
}

// MarkDirty flags pending state and requests a re-render. Flagging an
// already-dirty status is a no-op; the in-flight wake-up covers it.
func (s *Status) MarkDirty() {
	if s.dirty.CompareAndSwap(false, true) && s.sched != nil {
		s.sched.Notify()
	}
}

// Dirty reports whether uncommitted state is pending.
func (s *Status) Dirty() bool {
	return s.dirty.Load()
}

// take clears the dirty flag, reporting whether it was set.
func (s *Status) take() bool {
	return s.dirty.Swap(false)
}

// Core supplies the mechanical half of the component contract: props
// storage and change detection, the shared dirty-state cell, and no-op
// lifecycle hooks. Embed it by value and override the hooks you need.
type Core[P any] struct {
	props      P
	propsDirty bool
	status     *Status
}

// Props returns the current props.
func (c *Core[P]) Props() P {
	return c.props
}

// SetState applies a state mutation and requests a re-render. The
// mutation runs synchronously; the render happens later, coalesced with
// any other pending changes.
func (c *Core[P]) SetState(mutate func()) {
	if mutate != nil {
		mutate()
	}
	if c.status == nil {
		panic("vdom: SetState on a component that was never mounted")
	}
	c.status.MarkDirty()
}

// Init is the default construction hook; override it to derive state from
// the initial props, which are already stored and readable via Props.
func (c *Core[P]) Init(P) {}

// Created is the default no-op lifecycle hook.
func (c *Core[P]) Created() {}

// Updated is the default no-op lifecycle hook.
func (c *Core[P]) Updated(P) {}

// Destroyed is the default no-op lifecycle hook.
func (c *Core[P]) Destroyed() {}

// Update stores the new props, returning the previous ones and whether
// they differed. A difference marks the props dirty for the next walk.
func (c *Core[P]) Update(next P) (P, bool) {
	old := c.props
	c.props = next
	if reflect.DeepEqual(old, next) {
		return old, false
	}
	c.propsDirty = true
	return old, true
}

// StateDirty implements Component.
func (c *Core[P]) StateDirty() bool {
	return c.status != nil && c.status.Dirty()
}

// RefreshState implements Component.
func (c *Core[P]) RefreshState() bool {
	if c.status == nil {
		return false
	}
	return c.status.take()
}

// PropsDirty implements Component.
func (c *Core[P]) PropsDirty() bool {
	return c.propsDirty
}

func (c *Core[P]) clearPropsDirty() {
	c.propsDirty = false
}

func (c *Core[P]) attach(s *Status) {
	c.status = s
}

func (c *Core[P]) setProps(props P) {
	c.props = props
}

// NoProps is the props type for components that take none.
type NoProps struct{}
