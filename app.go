package loom

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/loomui/loom/pkg/dom"
	"github.com/loomui/loom/pkg/metrics"
	"github.com/loomui/loom/pkg/scheduler"
	"github.com/loomui/loom/pkg/vdom"
)

// App owns the mount lifecycle of a root component on a document host.
// It lives for the whole process (or session); there is no unmount.
type App struct {
	root    *vdom.VNode
	doc     dom.Document
	sched   *scheduler.Scheduler
	target  dom.Node
	passes  atomic.Uint64
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *metrics.Metrics
}

// New creates an App around a root component of type C with the given
// initial props:
//
//	app := loom.New[Dashboard](doc, DashboardProps{User: u}, loom.Config{})
func New[C any, P any, PC interface {
	*C
	vdom.Renderable[P]
}](doc dom.Document, props P, cfg Config) *App {
	cfg.applyDefaults()
	return &App{
		root:    vdom.Comp[C, P, PC](props),
		doc:     doc,
		sched:   scheduler.New(),
		logger:  cfg.Logger,
		tracer:  cfg.Tracer,
		metrics: cfg.Metrics,
	}
}

// Target names the node an App mounts onto: an element id looked up in
// the document, or a node handle directly.
type Target interface {
	resolve(doc dom.Document) (dom.Node, error)
}

type elementID string

func (id elementID) resolve(doc dom.Document) (dom.Node, error) {
	n, ok := doc.ElementByID(string(id))
	if !ok {
		return nil, fmt.Errorf("loom: no element with id %q to mount the app on", string(id))
	}
	return n, nil
}

type nodeTarget struct{ n dom.Node }

func (t nodeTarget) resolve(dom.Document) (dom.Node, error) {
	return t.n, nil
}

// ByID mounts on the element whose id attribute matches.
func ByID(id string) Target {
	return elementID(id)
}

// AtNode mounts directly on a node handle.
func AtNode(n dom.Node) Target {
	return nodeTarget{n: n}
}

// Mount resolves the target and runs the first render pass. A target that
// cannot be resolved panics: mounting a UI with no anchor is not a
// recoverable condition. A document failure during the first pass is
// returned and should be treated as fatal by the caller.
func (a *App) Mount(target Target) error {
	n, err := target.resolve(a.doc)
	if err != nil {
		a.logger.Error("mount target unresolvable", "err", err)
		panic(err)
	}
	a.target = n
	return a.RenderPass(context.Background())
}

// RenderPass runs one full render walk from the root. It opens a new
// coalescing window first, so state changes made during the pass schedule
// exactly one future pass. Most callers want Run or Flush, which pair
// passes with wake-up consumption.
func (a *App) RenderPass(ctx context.Context) error {
	if a.target == nil {
		panic("loom: render pass before Mount")
	}
	a.sched.Begin()

	pass := a.passes.Add(1)
	var span trace.Span
	if a.tracer != nil {
		_, span = a.tracer.Start(ctx, "loom.render_pass",
			trace.WithAttributes(attribute.Int64("loom.pass", int64(pass))))
		defer span.End()
	}

	start := time.Now()
	err := a.root.RenderWalk(a.target, nil, a.sched)
	elapsed := time.Since(start)

	a.metrics.ObserveRender(elapsed, err)
	if err != nil {
		if span != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "render pass failed")
		}
		a.logger.Error("render pass failed", "pass", pass, "err", err)
		return err
	}
	a.logger.Debug("render pass", "pass", pass, "elapsed", elapsed)
	return nil
}

// Run drives the render loop until ctx is cancelled or a pass fails.
// Every consumed wake-up triggers exactly one pass.
func (a *App) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-a.sched.Wake():
			if err := a.RenderPass(ctx); err != nil {
				return err
			}
		}
	}
}

// Flush synchronously runs one render pass if a wake-up is pending, and
// reports whether it did. It is the deterministic driver used by tests
// and by session loops that interleave event dispatch with rendering.
func (a *App) Flush(ctx context.Context) (bool, error) {
	select {
	case <-a.sched.Wake():
		return true, a.RenderPass(ctx)
	default:
		return false, nil
	}
}

// Wake exposes the scheduler's wake channel for run loops that multiplex
// rendering with other work. Consumers must follow each receive with a
// RenderPass.
func (a *App) Wake() <-chan struct{} {
	return a.sched.Wake()
}

// Notify requests a re-render from outside the component tree.
func (a *App) Notify() {
	a.sched.Notify()
}

// Markup returns the serialized markup currently under the mount target.
func (a *App) Markup() string {
	if a.target == nil {
		return ""
	}
	return a.target.InnerHTML()
}

// Passes returns the number of render passes started so far.
func (a *App) Passes() uint64 {
	return a.passes.Load()
}
