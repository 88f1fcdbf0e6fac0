// Package tape provides an interactive progress renderer backed by a
// progrock tape and a Bubble Tea display.
package tape

import (
	"context"
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
)

// updateChannel is a progrock.Writer that exposes written status updates as
// a TapeSource. It decouples the recorder (engine side) from the Bubble Tea
// model (display side).
type updateChannel struct {
	ch chan *progrock.StatusUpdate

	mu     sync.Mutex
	closed bool
}

func newUpdateChannel(size int) *updateChannel {
	return &updateChannel{
		ch: make(chan *progrock.StatusUpdate, size),
	}
}

// WriteStatus forwards an update to the display. Updates are dropped when
// the buffer is full so a stalled display never blocks the engine.
func (u *updateChannel) WriteStatus(update *progrock.StatusUpdate) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.closed {
		return nil
	}
	select {
	case u.ch <- update:
	default:
	}
	return nil
}

// Close ends the stream. Subsequent reads return io.EOF once the buffer
// drains.
func (u *updateChannel) Close() error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if !u.closed {
		u.closed = true
		close(u.ch)
	}
	return nil
}

// Read satisfies TapeSource.
func (u *updateChannel) Read() (*progrock.StatusUpdate, error) {
	update, ok := <-u.ch
	if !ok {
		return nil, io.EOF
	}
	return update, nil
}

// Renderer implements ports.Renderer using a progrock recorder feeding a
// Bubble Tea model. Each span becomes a vertex on the tape.
type Renderer struct {
	source  *updateChannel
	rec     *progrock.Recorder
	program *tea.Program
	teaOpts []tea.ProgramOption
	errCh   chan error

	mu       sync.Mutex
	vertices map[string]*progrock.VertexRecorder
}

// NewRenderer creates a new tape Renderer. Additional tea.ProgramOptions are
// primarily used by tests to disable input/output.
func NewRenderer(opts ...tea.ProgramOption) *Renderer {
	source := newUpdateChannel(1024)
	return &Renderer{
		source:   source,
		rec:      progrock.NewRecorder(source),
		teaOpts:  opts,
		errCh:    make(chan error, 1),
		vertices: make(map[string]*progrock.VertexRecorder),
	}
}

// Start launches the display in a background goroutine.
func (r *Renderer) Start(ctx context.Context) error {
	model := NewModel(r.source)
	opts := append([]tea.ProgramOption{tea.WithContext(ctx)}, r.teaOpts...)
	r.program = tea.NewProgram(model, opts...)

	go func() {
		_, err := r.program.Run()
		r.errCh <- err
	}()
	return nil
}

// Stop ends the tape. The display quits once it has drained the remaining
// updates.
func (r *Renderer) Stop() error {
	return r.source.Close()
}

// Wait blocks until the display has terminated.
func (r *Renderer) Wait() error {
	return <-r.errCh
}

// OnPlanEmit is a no-op for the tape renderer; archives appear as vertices
// as their rewrites start.
func (r *Renderer) OnPlanEmit(_ []string) {}

// OnSpanStart records a new vertex for the span.
func (r *Renderer) OnSpanStart(spanID, _ /* parentID */, name string, _ time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d := digest.FromString(spanID)
	r.vertices[spanID] = r.rec.Vertex(d, name)
}

// OnSpanLog streams log output to the span's vertex.
func (r *Renderer) OnSpanLog(spanID string, data []byte) {
	r.mu.Lock()
	vertex, ok := r.vertices[spanID]
	r.mu.Unlock()

	if !ok {
		return
	}
	_, _ = vertex.Stdout().Write(data)
}

// OnSpanEnd completes the span's vertex.
func (r *Renderer) OnSpanEnd(spanID string, _ time.Time, err error) {
	r.mu.Lock()
	vertex, ok := r.vertices[spanID]
	delete(r.vertices, spanID)
	r.mu.Unlock()

	if !ok {
		return
	}
	vertex.Done(err)
}

// Program returns the underlying tea.Program for testing.
func (r *Renderer) Program() *tea.Program {
	return r.program
}
