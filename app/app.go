// Package app is the platform layer: an ebiten window that delivers
// pan/zoom gestures to the view, hosts the render loop, and blits each
// published frame to the screen. Everything fractal-specific lives in
// the view, fractal, and render packages; this package is glue.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/ethanzmuda/mandelbrot/render"
	"github.com/ethanzmuda/mandelbrot/view"
)

// App implements ebiten.Game for the ebiten run loop and
// render.Surface for the render loop.
type App struct {
	view *view.View
	loop *render.Loop

	sizeMu sync.Mutex
	width  int
	height int

	fresh atomic.Bool // set by FrameReady, consumed by Draw

	offscreen *ebiten.Image
	pix       []byte // RGBA upload scratch, len = width*height*4

	dragging     bool
	lastX, lastY int
	showHUD      bool
}

// New wires a fresh view to a render loop presented by this app.
func New() *App {
	a := &App{
		view:    view.New(),
		showHUD: true,
	}
	a.loop = render.NewLoop(a.view, a)
	return a
}

// Run opens the window, starts the render goroutine, and blocks until
// the window is closed or rendering fails.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- a.loop.Run(ctx)
	}()

	ebiten.SetWindowTitle("Mandelbrot Set")
	ebiten.SetWindowSize(render.DefaultWidth, render.DefaultHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(a); err != nil {
		return fmt.Errorf("run game: %w", err)
	}

	cancel()
	if err := <-done; err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("render loop: %w", err)
	}
	return nil
}

// Size reports the viewport dimensions to the render loop. Called from
// the render goroutine.
func (a *App) Size() (width, height int) {
	a.sizeMu.Lock()
	defer a.sizeMu.Unlock()
	return a.width, a.height
}

// FrameReady tells the app a new frame has been published. Ebiten
// repaints continuously; the flag lets Draw skip the front-frame lock
// when nothing changed.
func (a *App) FrameReady() {
	a.fresh.Store(true)
}

// Update polls input once per ebiten tick and applies the resulting
// gestures to the view.
func (a *App) Update() error {
	return a.handleInput()
}

// Draw uploads the latest published frame if there is a new one, then
// blits it.
func (a *App) Draw(screen *ebiten.Image) {
	if a.fresh.Swap(false) {
		a.loop.Front(a.upload)
	}
	if a.offscreen != nil {
		screen.DrawImage(a.offscreen, nil)
	}
	if a.showHUD {
		s := a.view.Snapshot()
		ebitenutil.DebugPrint(screen, fmt.Sprintf(
			"center (%.6g, %.6g)  zoom %.6g px/unit  %.0f fps\ndrag pan | wheel zoom | arrows pan | R reset | S shot | H hud",
			s.CenterX, s.CenterY, s.Zoom, ebiten.ActualFPS()))
	}
}

// upload copies a published frame into the offscreen image. Runs with
// the frame lock held; must not retain f.
func (a *App) upload(f *render.Frame) {
	if f.Width <= 0 || f.Height <= 0 {
		return
	}
	if a.offscreen == nil || a.offscreen.Bounds().Dx() != f.Width || a.offscreen.Bounds().Dy() != f.Height {
		a.offscreen = ebiten.NewImage(f.Width, f.Height)
		a.pix = make([]byte, f.Width*f.Height*4)
	}
	packedToRGBA(f.Pix, a.pix)
	a.offscreen.WritePixels(a.pix)
}

// Layout records the window size for the render loop and renders 1:1.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.sizeMu.Lock()
	a.width = outsideWidth
	a.height = outsideHeight
	a.sizeMu.Unlock()
	return outsideWidth, outsideHeight
}

// packedToRGBA expands packed 0xRRGGBB pixels into RGBA bytes for
// WritePixels. dst must be 4*len(src).
func packedToRGBA(src []uint32, dst []byte) {
	for i, c := range src {
		dst[4*i+0] = byte(c >> 16)
		dst[4*i+1] = byte(c >> 8)
		dst[4*i+2] = byte(c)
		dst[4*i+3] = 0xff
	}
}
