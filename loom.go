// Package loom renders a declarative component tree onto a live document
// and keeps the two synchronized as application state changes.
//
// An App ties a root component, a document host, and the update scheduler
// together:
//
//	doc := memdom.NewDocument()
//	app := loom.New[Counter](doc, CounterProps{}, loom.Config{})
//	app.Mount(loom.AtNode(doc.Body()))
//	go app.Run(ctx)
//
// Components signal state changes through SetState; the scheduler
// coalesces any number of signals raised between frames into a single
// render pass, which walks the component tree and re-renders only dirty
// subtrees. See pkg/vdom for the component model and pkg/server for
// serving mounted apps to remote clients.
package loom

import "github.com/loomui/loom/pkg/vdom"

// VNode is a virtual document node. See pkg/vdom.
type VNode = vdom.VNode

// Component is the behavioural contract of a mounted component.
type Component = vdom.Component

// NoProps is the props type for components that take none.
type NoProps = vdom.NoProps
