// Package fractal rasterizes the Mandelbrot set into a packed-RGB pixel
// buffer using the escape-time algorithm. Rendering is a pure function
// of a view snapshot and the buffer dimensions: no shared state, so it
// runs off the lock that guards the live view.
package fractal

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ethanzmuda/mandelbrot/view"
)

const (
	// MaxIterations caps the escape-time loop.
	MaxIterations = 1000

	// Interior is the color of points that never escape.
	Interior = 0xFFFFFF

	// escapeRadiusSq is the squared escape radius (|z| > 2).
	escapeRadiusSq = 4.0
)

// EscapeTime iterates z = z² + c from z = 0 for c = (cr, ci) and
// returns the iteration index at which the orbit left the escape
// radius, with escaped = false if it stayed bounded for MaxIterations.
func EscapeTime(cr, ci float64) (iter int, escaped bool) {
	var zr, zi float64
	for i := 0; i < MaxIterations; i++ {
		// The imaginary part must use the pre-update real part.
		zr, zi = zr*zr-zi*zi+cr, 2*zr*zi+ci
		if zr*zr+zi*zi > escapeRadiusSq {
			return i, true
		}
	}
	return MaxIterations, false
}

// EscapeColor maps an escape iteration count to a packed 0xRRGGBB
// value. The scaling constants are kept bit-for-bit compatible with the
// original renderer; the banding they produce is part of the look.
func EscapeColor(iter int) uint32 {
	c := uint32(iter*255/100) % 255
	r := c
	g := (c * 2) % 255
	b := (c * 4) % 255
	return r<<16 | g<<8 | b
}

// Render fills pix, a row-major width×height buffer of packed 0xRRGGBB
// values, with the set as seen through s. Rows are sharded across one
// worker per CPU; each worker writes only its own rows and reads only
// the immutable snapshot. len(pix) must be width*height.
func Render(s view.Snapshot, width, height int, pix []uint32) {
	if len(pix) != width*height {
		panic("fractal: pixel buffer does not match dimensions")
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > height {
		workers = height
	}
	if workers < 1 {
		workers = 1
	}

	var g errgroup.Group
	band := (height + workers - 1) / workers
	for y0 := 0; y0 < height; y0 += band {
		y0, y1 := y0, y0+band
		if y1 > height {
			y1 = height
		}
		g.Go(func() error {
			renderRows(s, width, height, y0, y1, pix)
			return nil
		})
	}
	_ = g.Wait() // workers never fail; the group only joins them
}

// renderRows rasterizes rows [y0, y1). The inner loop allocates
// nothing.
func renderRows(s view.Snapshot, width, height, y0, y1 int, pix []uint32) {
	for y := y0; y < y1; y++ {
		row := pix[y*width : (y+1)*width]
		for x := 0; x < width; x++ {
			zx, zy := s.PixelToComplex(float64(x), float64(y), width, height)
			iter, escaped := EscapeTime(zx, zy)
			if escaped {
				row[x] = EscapeColor(iter)
			} else {
				row[x] = Interior
			}
		}
	}
}
