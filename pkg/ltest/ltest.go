// Package ltest provides testing helpers for loom components.
//
// It reduces boilerplate when asserting on a component's rendered
// markup:
//
//	func TestGreeting(t *testing.T) {
//	    ltest.ExpectContains(t, vdom.Comp[Greeting](GreetingProps{Name: "Ada"}), "Hello, Ada")
//	}
package ltest

import (
	"strings"
	"testing"

	"github.com/loomui/loom/pkg/memdom"
	"github.com/loomui/loom/pkg/vdom"
)

// RenderToString mounts node into a detached document and returns the
// resulting markup.
func RenderToString(t *testing.T, node *vdom.VNode) string {
	t.Helper()
	doc := memdom.NewDocument()
	if err := node.Patch(nil, doc.Body(), nil, nil); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	return doc.Body().InnerHTML()
}

// ExpectContains asserts that the node's rendered markup contains the
// expected substring.
func ExpectContains(t *testing.T, node *vdom.VNode, expected string) {
	t.Helper()
	html := RenderToString(t, node)
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that the node's rendered markup does not
// contain the given substring.
func ExpectNotContains(t *testing.T, node *vdom.VNode, unexpected string) {
	t.Helper()
	html := RenderToString(t, node)
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to not contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
