package vdom

import "fmt"

// Attr is a single element attribute.
type Attr struct {
	Key   string
	Value string
}

// Handler attaches an event handler to an element.
type Handler struct {
	Event string
	Fn    func()
}

// A sets an attribute.
func A(key, value string) Attr {
	return Attr{Key: key, Value: value}
}

// ID sets the id attribute.
func ID(id string) Attr {
	return Attr{Key: "id", Value: id}
}

// Class sets the class attribute.
func Class(class string) Attr {
	return Attr{Key: "class", Value: class}
}

// On attaches a handler for the named event ("click", "input", ...).
func On(event string, fn func()) Handler {
	return Handler{Event: event, Fn: fn}
}

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{Kind: KindText, Text: content}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// El creates an element node with the given tag. Arguments may be nil
// (ignored, allows conditionals), Attr, []Attr, Handler, *VNode, []*VNode,
// or string (shorthand for a text child).
func El(tag string, args ...any) *VNode {
	node := &VNode{
		Kind:  KindElement,
		Tag:   tag,
		Attrs: make(map[string]string),
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			continue

		case Attr:
			if v.Key != "" {
				node.Attrs[v.Key] = v.Value
			}

		case []Attr:
			for _, attr := range v {
				if attr.Key != "" {
					node.Attrs[attr.Key] = attr.Value
				}
			}

		case Handler:
			if node.Events == nil {
				node.Events = make(map[string]func())
			}
			node.Events[v.Event] = v.Fn

		case *VNode:
			if v != nil {
				node.Children = append(node.Children, v)
			}

		case []*VNode:
			for _, child := range v {
				if child != nil {
					node.Children = append(node.Children, child)
				}
			}

		case string:
			node.Children = append(node.Children, Text(v))

		default:
			panic(fmt.Sprintf("vdom: El(%q): unsupported argument type %T", tag, arg))
		}
	}

	return node
}

// If returns the node if condition is true, nil otherwise.
func If(condition bool, node *VNode) *VNode {
	if condition {
		return node
	}
	return nil
}

// Range maps a slice to child nodes.
func Range[T any](items []T, fn func(item T, index int) *VNode) []*VNode {
	result := make([]*VNode, 0, len(items))
	for i, item := range items {
		if node := fn(item, i); node != nil {
			result = append(result, node)
		}
	}
	return result
}
