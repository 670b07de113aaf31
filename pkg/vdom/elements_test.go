package vdom

import "testing"

func TestElAttrs(t *testing.T) {
	n := El("div", Class("card"), ID("main"), A("title", "t"))

	if n.Tag != "div" {
		t.Errorf("Tag = %q, want div", n.Tag)
	}
	want := map[string]string{"class": "card", "id": "main", "title": "t"}
	for k, v := range want {
		if n.Attrs[k] != v {
			t.Errorf("Attrs[%q] = %q, want %q", k, n.Attrs[k], v)
		}
	}
}

func TestElAttrSlice(t *testing.T) {
	attrs := []Attr{A("a", "1"), A("b", "2")}
	n := El("div", attrs)

	if n.Attrs["a"] != "1" || n.Attrs["b"] != "2" {
		t.Errorf("Attrs = %v, want a=1 b=2", n.Attrs)
	}
}

func TestElStringShorthand(t *testing.T) {
	n := El("p", "hello")

	if len(n.Children) != 1 {
		t.Fatalf("children = %d, want 1", len(n.Children))
	}
	child := n.Children[0]
	if child.Kind != KindText || child.Text != "hello" {
		t.Errorf("child = %v %q, want text hello", child.Kind, child.Text)
	}
}

func TestElNilArgsIgnored(t *testing.T) {
	n := El("div", nil, If(false, El("span")), []*VNode{nil})

	if len(n.Children) != 0 {
		t.Errorf("children = %d, want 0", len(n.Children))
	}
}

func TestElHandler(t *testing.T) {
	n := El("button", On("click", func() {}))

	if n.Events["click"] == nil {
		t.Error("click handler not registered")
	}
}

func TestElUnsupportedArgPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unsupported argument type")
		}
	}()
	El("div", 42)
}

func TestTextf(t *testing.T) {
	n := Textf("%d items", 3)

	if n.Kind != KindText || n.Text != "3 items" {
		t.Errorf("node = %v %q, want text \"3 items\"", n.Kind, n.Text)
	}
}

func TestIf(t *testing.T) {
	node := El("span")

	if If(true, node) != node {
		t.Error("If(true) did not return the node")
	}
	if If(false, node) != nil {
		t.Error("If(false) did not return nil")
	}
}

func TestRange(t *testing.T) {
	items := []string{"a", "b", "c"}
	nodes := Range(items, func(item string, i int) *VNode {
		if item == "b" {
			return nil
		}
		return El("li", Textf("%d:%s", i, item))
	})

	if len(nodes) != 2 {
		t.Fatalf("nodes = %d, want 2 (nil results dropped)", len(nodes))
	}
	if nodes[1].Children[0].Text != "2:c" {
		t.Errorf("second node text = %q, want 2:c", nodes[1].Children[0].Text)
	}
}

func TestKeyed(t *testing.T) {
	n := El("li").Keyed("row-1")

	if n.Key != "row-1" {
		t.Errorf("Key = %q, want row-1", n.Key)
	}
}

func TestVKindString(t *testing.T) {
	cases := map[VKind]string{
		KindText:      "Text",
		KindElement:   "Element",
		KindComponent: "Component",
		VKind(9):      "Unknown",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("VKind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}
