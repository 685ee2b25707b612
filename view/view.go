// Package view holds the mapping from viewport pixels to the complex
// plane: a center coordinate and a zoom scale, mutated by pan and zoom
// gestures and read by the renderer. All access goes through a single
// mutex so a render never observes a half-applied gesture.
package view

import (
	"math"
	"sync"
)

// Default view: the classic framing of the whole set.
const (
	DefaultCenterX = -0.75
	DefaultCenterY = 0.0
	DefaultZoom    = 200.0 // pixels per unit length in the plane
)

// wheelSensitivity scales a wheel rotation step into a zoom factor:
// zoom *= 1 + rotation*wheelSensitivity.
const wheelSensitivity = 0.2

// Zoom factor clamp. A single gesture may at most halve or double the
// scale; keeps one step finite and strictly positive no matter what the
// platform reports for a rotation step.
const (
	minZoomStep = 0.5
	maxZoomStep = 2.0
)

// Absolute zoom bounds. Repeated same-direction steps would otherwise
// underflow zoom to 0 (the anchor math then divides by zero) or
// overflow it to +Inf, where it sticks. float64 pixel mapping runs out
// of mantissa long before maxZoom, so nothing usable is clamped away.
const (
	minZoom = 1e-6
	maxZoom = 1e15
)

// View is the shared view state. The zero value is not useful; use New.
type View struct {
	mu      sync.Mutex
	centerX float64
	centerY float64
	zoom    float64
}

// Snapshot is an immutable copy of the view transform, taken under the
// lock and then used freely without it. The mapping methods live here so
// the rasterizer works against a consistent frame-long transform.
type Snapshot struct {
	CenterX float64
	CenterY float64
	Zoom    float64
}

// New returns a view at the default center and zoom.
func New() *View {
	return &View{
		centerX: DefaultCenterX,
		centerY: DefaultCenterY,
		zoom:    DefaultZoom,
	}
}

// Snapshot returns a consistent copy of the current transform.
func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Snapshot{CenterX: v.centerX, CenterY: v.centerY, Zoom: v.zoom}
}

// Pan shifts the view by a pixel-space displacement. Dragging follows
// the cursor: moving the pointer right shifts the visible window left,
// so the center moves by -delta/zoom.
func (v *View) Pan(dx, dy float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.centerX -= dx / v.zoom
	v.centerY -= dy / v.zoom
}

// ZoomAt scales the view by a wheel rotation step, keeping the plane
// point under the cursor (px, py) fixed on screen. Negative rotation
// steps and positive ones scale in opposite directions; the applied
// factor is clamped so zoom stays finite and positive.
func (v *View) ZoomAt(px, py float64, width, height int, rotation float64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	step := 1 + rotation*wheelSensitivity
	if math.IsNaN(step) {
		return
	}
	if step < minZoomStep {
		step = minZoomStep
	} else if step > maxZoomStep {
		step = maxZoomStep
	}

	// Plane point under the cursor before the scale change.
	re := v.centerX + (px-float64(width)/2)/v.zoom
	im := v.centerY + (py-float64(height)/2)/v.zoom

	v.zoom *= step
	if v.zoom < minZoom {
		v.zoom = minZoom
	} else if v.zoom > maxZoom {
		v.zoom = maxZoom
	}

	// Recenter so the same plane point is still under the cursor.
	v.centerX = re - (px-float64(width)/2)/v.zoom
	v.centerY = im - (py-float64(height)/2)/v.zoom
}

// Reset restores the default center and zoom.
func (v *View) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.centerX = DefaultCenterX
	v.centerY = DefaultCenterY
	v.zoom = DefaultZoom
}

// PixelToComplex maps a pixel coordinate to its plane coordinate under
// this transform. Pure; safe from any goroutine.
func (s Snapshot) PixelToComplex(px, py float64, width, height int) (re, im float64) {
	re = s.CenterX + (px-float64(width)/2)/s.Zoom
	im = s.CenterY + (py-float64(height)/2)/s.Zoom
	return re, im
}

// ComplexToPixel is the inverse of PixelToComplex.
func (s Snapshot) ComplexToPixel(re, im float64, width, height int) (px, py float64) {
	px = (re-s.CenterX)*s.Zoom + float64(width)/2
	py = (im-s.CenterY)*s.Zoom + float64(height)/2
	return px, py
}
