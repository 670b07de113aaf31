package loom

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/loomui/loom/pkg/memdom"
	"github.com/loomui/loom/pkg/vdom"
)

type counterProps struct {
	Step int
}

type counter struct {
	vdom.Core[counterProps]
	clicks int
}

func (c *counter) Render() *vdom.VNode {
	return vdom.El("button",
		vdom.On("click", func() {
			c.SetState(func() { c.clicks += c.Props().Step })
		}),
		vdom.Textf("count:%d", c.clicks),
	)
}

func newCounterApp(t *testing.T) (*App, *memdom.Document) {
	t.Helper()
	doc := memdom.NewDocument()
	app := New[counter](doc, counterProps{Step: 1}, Config{})
	if err := app.Mount(AtNode(doc.Body())); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	return app, doc
}

func TestMountRendersRoot(t *testing.T) {
	app, _ := newCounterApp(t)

	if !strings.Contains(app.Markup(), "count:0") {
		t.Errorf("Markup = %q, want initial count", app.Markup())
	}
	if app.Passes() != 1 {
		t.Errorf("Passes = %d, want 1", app.Passes())
	}
}

func TestMountByID(t *testing.T) {
	doc := memdom.NewDocument()
	anchor, err := doc.CreateElement("main")
	if err != nil {
		t.Fatalf("CreateElement: %v", err)
	}
	if err := anchor.SetAttribute("id", "app"); err != nil {
		t.Fatalf("SetAttribute: %v", err)
	}
	if err := doc.Body().InsertBefore(anchor, nil); err != nil {
		t.Fatalf("InsertBefore: %v", err)
	}

	app := New[counter](doc, counterProps{Step: 1}, Config{})
	if err := app.Mount(ByID("app")); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if !strings.Contains(anchor.InnerHTML(), "count:0") {
		t.Errorf("anchor InnerHTML = %q, want the counter inside it", anchor.InnerHTML())
	}
}

func TestMountUnresolvableTargetPanics(t *testing.T) {
	doc := memdom.NewDocument()
	app := New[counter](doc, counterProps{Step: 1}, Config{})

	defer func() {
		if recover() == nil {
			t.Error("expected panic for an unresolvable mount target")
		}
	}()
	_ = app.Mount(ByID("missing"))
}

func TestRenderPassBeforeMountPanics(t *testing.T) {
	doc := memdom.NewDocument()
	app := New[counter](doc, counterProps{Step: 1}, Config{})

	defer func() {
		if recover() == nil {
			t.Error("expected panic for render pass before Mount")
		}
	}()
	_ = app.RenderPass(context.Background())
}

func TestEventThenFlush(t *testing.T) {
	app, doc := newCounterApp(t)

	// The first Bind in a fresh document assigns "h1".
	if err := doc.Dispatch("h1", "click"); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	did, err := app.Flush(context.Background())
	if err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if !did {
		t.Fatal("Flush did not run a pass after an event")
	}
	if !strings.Contains(app.Markup(), "count:1") {
		t.Errorf("Markup = %q, want count:1", app.Markup())
	}

	did, err = app.Flush(context.Background())
	if err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if did {
		t.Error("Flush ran a pass with nothing pending")
	}
}

func TestEventsCoalesceIntoOnePass(t *testing.T) {
	app, doc := newCounterApp(t)

	for i := 0; i < 5; i++ {
		if err := doc.Dispatch("h1", "click"); err != nil {
			t.Fatalf("Dispatch: %v", err)
		}
	}

	before := app.Passes()
	for {
		did, err := app.Flush(context.Background())
		if err != nil {
			t.Fatalf("Flush: %v", err)
		}
		if !did {
			break
		}
	}
	if got := app.Passes() - before; got != 1 {
		t.Errorf("passes = %d, want 1 for five coalesced events", got)
	}
	if !strings.Contains(app.Markup(), "count:5") {
		t.Errorf("Markup = %q, want count:5", app.Markup())
	}
}

func TestNotifyWakesFlush(t *testing.T) {
	app, _ := newCounterApp(t)

	app.Notify()
	did, err := app.Flush(context.Background())
	if err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if !did {
		t.Error("Flush did not run a pass after Notify")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	app, _ := newCounterApp(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestMarkupBeforeMount(t *testing.T) {
	doc := memdom.NewDocument()
	app := New[counter](doc, counterProps{Step: 1}, Config{})

	if got := app.Markup(); got != "" {
		t.Errorf("Markup = %q, want empty before Mount", got)
	}
}
