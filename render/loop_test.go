package render

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ethanzmuda/mandelbrot/fractal"
	"github.com/ethanzmuda/mandelbrot/view"
)

// fakeSurface is a Surface with a settable size and a channel that
// receives a tick per published frame.
type fakeSurface struct {
	mu     sync.Mutex
	w, h   int
	frames chan struct{}
}

func newFakeSurface(w, h int) *fakeSurface {
	return &fakeSurface{w: w, h: h, frames: make(chan struct{}, 64)}
}

func (s *fakeSurface) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w, s.h
}

func (s *fakeSurface) setSize(w, h int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.w, s.h = w, h
}

func (s *fakeSurface) FrameReady() {
	select {
	case s.frames <- struct{}{}:
	default:
	}
}

func TestRenderOncePublishes(t *testing.T) {
	surface := newFakeSurface(64, 48)
	l := NewLoop(view.New(), surface)
	l.renderOnce()

	select {
	case <-surface.frames:
	default:
		t.Fatal("FrameReady not called")
	}

	l.Front(func(f *Frame) {
		if f.Width != 64 || f.Height != 48 {
			t.Fatalf("frame is %dx%d, want 64x48", f.Width, f.Height)
		}
		if len(f.Pix) != 64*48 {
			t.Fatalf("len(Pix) = %d, want %d", len(f.Pix), 64*48)
		}
		if f.Seq != 1 {
			t.Fatalf("seq = %d, want 1", f.Seq)
		}
	})
}

func TestZeroSizeFallsBack(t *testing.T) {
	surface := newFakeSurface(0, 0)
	l := NewLoop(view.New(), surface)
	l.renderOnce()

	l.Front(func(f *Frame) {
		if f.Width != DefaultWidth || f.Height != DefaultHeight {
			t.Fatalf("frame is %dx%d, want %dx%d", f.Width, f.Height, DefaultWidth, DefaultHeight)
		}
		if len(f.Pix) != DefaultWidth*DefaultHeight {
			t.Fatalf("len(Pix) = %d, want %d", len(f.Pix), DefaultWidth*DefaultHeight)
		}
	})
}

func TestResizeReallocates(t *testing.T) {
	surface := newFakeSurface(64, 48)
	l := NewLoop(view.New(), surface)
	l.renderOnce()

	surface.setSize(32, 16)
	l.renderOnce()

	l.Front(func(f *Frame) {
		if f.Width != 32 || f.Height != 16 {
			t.Fatalf("frame is %dx%d, want 32x16", f.Width, f.Height)
		}
		if len(f.Pix) != 32*16 {
			t.Fatalf("len(Pix) = %d, want %d", len(f.Pix), 32*16)
		}
		if f.Seq != 2 {
			t.Fatalf("seq = %d, want 2", f.Seq)
		}
	})
}

func TestFrontSeesOnlyCompleteFrames(t *testing.T) {
	// Every published frame must be consistent: all pixels belong to
	// the same snapshot, so the corner pixel always matches a direct
	// evaluation under the frame's implied transform. Mutate the view
	// between ticks and re-check.
	surface := newFakeSurface(32, 24)
	v := view.New()
	l := NewLoop(v, surface)

	for i := 0; i < 5; i++ {
		l.renderOnce()
		s := v.Snapshot()
		l.Front(func(f *Frame) {
			zx, zy := s.PixelToComplex(0, 0, f.Width, f.Height)
			want := uint32(fractal.Interior)
			if iter, escaped := fractal.EscapeTime(zx, zy); escaped {
				want = fractal.EscapeColor(iter)
			}
			if f.Pix[0] != want {
				t.Fatalf("tick %d: corner = %#06x, want %#06x", i, f.Pix[0], want)
			}
		})
		v.Pan(5, 3)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	surface := newFakeSurface(32, 24)
	l := NewLoop(view.New(), surface)
	l.interval = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- l.Run(ctx)
	}()

	// Wait for at least one published frame, then cancel.
	select {
	case <-surface.frames:
	case <-time.After(5 * time.Second):
		t.Fatal("no frame published")
	}
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
