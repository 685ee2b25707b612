package render

import "sync"

// Frame is one rasterized image of the viewport: a row-major
// width×height buffer of packed 0xRRGGBB values. Seq increases with
// every published frame so consumers can skip re-uploading one they
// have already shown.
type Frame struct {
	mu     sync.Mutex
	Width  int
	Height int
	Pix    []uint32
	Seq    uint64
}

// resize reallocates the pixel buffer if it no longer matches the
// requested dimensions. Existing contents are discarded on mismatch;
// the caller always overwrites the whole buffer afterwards.
func (f *Frame) resize(width, height int) {
	if f.Width == width && f.Height == height && len(f.Pix) == width*height {
		return
	}
	f.Width = width
	f.Height = height
	f.Pix = make([]uint32, width*height)
}
