package ports

import (
	"context"
	"time"
)

// Renderer is the abstraction for progress output. It decouples telemetry
// collection from presentation, letting the same span stream drive either
// an interactive tape display or linear CI logs.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Start initializes the renderer and begins its lifecycle. Asynchronous
	// renderers may launch background goroutines here.
	Start(ctx context.Context) error

	// Stop signals the renderer to stop accepting new events and flush any
	// buffered output.
	Stop() error

	// Wait blocks until the renderer has fully terminated. Synchronous
	// renderers may return immediately.
	Wait() error

	// OnPlanEmit is called once the rewrite plan is known.
	// archives: display paths of the archives that will be rewritten.
	OnPlanEmit(archives []string)

	// OnSpanStart is called when a phase or archive rewrite begins.
	OnSpanStart(spanID, parentID, name string, startTime time.Time)

	// OnSpanLog is called when a span emits output. data may contain
	// partial lines.
	OnSpanLog(spanID string, data []byte)

	// OnSpanEnd is called when a span finishes. err is nil on success.
	OnSpanEnd(spanID string, endTime time.Time, err error)
}
