// Package render drives the frame cadence: on a fixed tick it snapshots
// the view, rasterizes a full frame against the snapshot, and publishes
// the result for the platform layer to blit. Publication is
// double-buffered so a consumer never sees a partially rasterized
// frame: the loop rasterizes into a locked back frame and swaps it with
// the front frame only when the tick's render is complete.
package render

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/ethanzmuda/mandelbrot/fractal"
	"github.com/ethanzmuda/mandelbrot/view"
)

// Fallback viewport dimensions, used while the surface has not been
// laid out and still reports zero.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// TickInterval is the render cadence, about 60 frames per second.
const TickInterval = 16 * time.Millisecond

// Surface is the presentation side of the loop: it owns the viewport
// dimensions and is told when a new frame is ready to show.
type Surface interface {
	// Size returns the current viewport dimensions in pixels. A zero
	// or negative dimension means the surface is not laid out yet.
	Size() (width, height int)

	// FrameReady is called after each publish. It must be cheap and
	// safe to call from the render goroutine.
	FrameReady()
}

// Loop re-rasterizes the viewport on a fixed cadence. Create with
// NewLoop and drive with Run on a dedicated goroutine.
type Loop struct {
	view     *view.View
	surface  Surface
	interval time.Duration

	frames [2]Frame
	back   *Frame // locked by the loop between publishes
	front  atomic.Pointer[Frame]
	seq    uint64
}

// NewLoop returns a loop rendering v onto s at the standard cadence.
func NewLoop(v *view.View, s Surface) *Loop {
	l := &Loop{
		view:     v,
		surface:  s,
		interval: TickInterval,
	}
	l.back = &l.frames[0]
	l.back.mu.Lock()
	l.front.Store(&l.frames[1])
	return l
}

// Run renders one frame per tick until ctx is cancelled, then returns
// ctx.Err(). The first frame is rendered immediately rather than one
// tick late.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.renderOnce()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			l.renderOnce()
		}
	}
}

// renderOnce performs one tick: snapshot, rasterize into the back
// frame, publish. The view lock is held only inside Snapshot; the
// expensive pixel loop runs against the copy.
func (l *Loop) renderOnce() {
	width, height := l.surface.Size()
	if width <= 0 || height <= 0 {
		width, height = DefaultWidth, DefaultHeight
	}

	l.back.resize(width, height)
	fractal.Render(l.view.Snapshot(), width, height, l.back.Pix)

	l.seq++
	l.back.Seq = l.seq
	l.publish()
	l.surface.FrameReady()
}

// publish swaps the finished back frame with the front frame. Locking
// the new back frame blocks until any reader of the previous frame is
// done with it.
func (l *Loop) publish() {
	l.back.mu.Unlock()
	l.back = l.front.Swap(l.back)
	l.back.mu.Lock()
}

// Front calls visit with the latest published frame, holding its lock
// for the duration so the loop cannot start overwriting it. Before the
// first publish the frame is empty (zero dimensions). visit must not
// retain the frame or its pixel slice.
func (l *Loop) Front(visit func(f *Frame)) {
	f := l.front.Load()
	f.mu.Lock()
	defer f.mu.Unlock()
	visit(f)
}
