// Package metrics exposes Prometheus instrumentation for the render loop
// and the live session server.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Config configures metric registration.
type Config struct {
	// Namespace is the metrics namespace (default: "loom").
	Namespace string

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// Option configures metric registration.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

// Metrics holds the instrument set. A nil *Metrics is valid and records
// nothing, so instrumentation is optional everywhere it is accepted.
type Metrics struct {
	renderPasses   prometheus.Counter
	renderErrors   prometheus.Counter
	renderDuration prometheus.Histogram

	sessionsActive prometheus.Gauge
	framesSent     prometheus.Counter
	eventsReceived prometheus.Counter
	eventsDropped  prometheus.Counter
}

// New registers and returns the instrument set.
func New(opts ...Option) *Metrics {
	cfg := Config{
		Namespace: "loom",
		Registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	factory := promauto.With(cfg.Registry)

	return &Metrics{
		renderPasses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "render_passes_total",
			Help:      "Render passes completed.",
		}),
		renderErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "render_errors_total",
			Help:      "Render passes that failed with a document error.",
		}),
		renderDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "render_duration_seconds",
			Help:      "Wall time of a full render pass.",
			Buckets:   prometheus.DefBuckets,
		}),
		sessionsActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Name:      "sessions_active",
			Help:      "Live sessions currently connected.",
		}),
		framesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "frames_sent_total",
			Help:      "Markup frames streamed to clients.",
		}),
		eventsReceived: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "events_received_total",
			Help:      "Event frames received from clients.",
		}),
		eventsDropped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "events_dropped_total",
			Help:      "Event frames dropped because the queue was full.",
		}),
	}
}

// ObserveRender records one render pass.
func (m *Metrics) ObserveRender(d time.Duration, err error) {
	if m == nil {
		return
	}
	m.renderPasses.Inc()
	m.renderDuration.Observe(d.Seconds())
	if err != nil {
		m.renderErrors.Inc()
	}
}

// SessionOpened records a session connect.
func (m *Metrics) SessionOpened() {
	if m == nil {
		return
	}
	m.sessionsActive.Inc()
}

// SessionClosed records a session disconnect.
func (m *Metrics) SessionClosed() {
	if m == nil {
		return
	}
	m.sessionsActive.Dec()
}

// FrameSent records one markup frame written to a client.
func (m *Metrics) FrameSent() {
	if m == nil {
		return
	}
	m.framesSent.Inc()
}

// EventReceived records one event frame read from a client.
func (m *Metrics) EventReceived() {
	if m == nil {
		return
	}
	m.eventsReceived.Inc()
}

// EventDropped records one event frame dropped under backpressure.
func (m *Metrics) EventDropped() {
	if m == nil {
		return
	}
	m.eventsDropped.Inc()
}
