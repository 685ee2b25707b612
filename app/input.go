package app

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// arrowStep is how many pixels an arrow key pans per update tick.
const arrowStep = 8

// handleInput turns the polled input state into view mutations: left
// drag pans, the wheel zooms toward the cursor, arrows pan, R resets.
// The same gesture set as the mouse handlers of the original desktop
// build, plus the keyboard extras.
func (a *App) handleInput() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	mx, my := ebiten.CursorPosition()

	// Wheel zoom, anchored at the cursor. Ebiten reports wheel-up as a
	// positive offset where the original wheel events were negative, so
	// flip the sign before applying the rotation step.
	if _, wy := ebiten.Wheel(); wy != 0 {
		w, h := a.Size()
		a.view.ZoomAt(float64(mx), float64(my), w, h, -wy)
	}

	// Left-button drag pans by the cursor displacement since the last
	// tick.
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if a.dragging {
			a.view.Pan(float64(mx-a.lastX), float64(my-a.lastY))
		}
		a.dragging = true
		a.lastX, a.lastY = mx, my
	} else {
		a.dragging = false
	}

	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		a.view.Pan(arrowStep, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		a.view.Pan(-arrowStep, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		a.view.Pan(0, arrowStep)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		a.view.Pan(0, -arrowStep)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		a.view.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		a.showHUD = !a.showHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		a.saveScreenshot()
	}
	return nil
}
