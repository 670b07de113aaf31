package loom

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/loomui/loom/pkg/metrics"
)

// Config configures an App. The zero value is usable.
type Config struct {
	// Logger receives structured render-loop logs.
	// Default: slog.Default().
	Logger *slog.Logger

	// Tracer, when set, wraps every render pass in a span.
	Tracer trace.Tracer

	// Metrics, when set, records render passes and durations.
	Metrics *metrics.Metrics
}

func (c *Config) applyDefaults() {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}
