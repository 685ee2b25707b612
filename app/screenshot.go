package app

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"time"

	"github.com/ethanzmuda/mandelbrot/render"
)

// saveScreenshot writes the latest published frame to a timestamped PNG
// in the working directory. Failures are logged and otherwise ignored;
// a failed screenshot must not disturb the session.
func (a *App) saveScreenshot() {
	var img *image.RGBA
	a.loop.Front(func(f *render.Frame) {
		if f.Width <= 0 || f.Height <= 0 {
			return
		}
		img = image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
		packedToRGBA(f.Pix, img.Pix)
	})
	if img == nil {
		return
	}

	name := fmt.Sprintf("mandelbrot-%s.png", time.Now().Format("20060102-150405"))
	if err := writePNG(name, img); err != nil {
		log.Printf("screenshot: %v", err)
		return
	}
	log.Printf("saved %s", name)
}

func writePNG(name string, img image.Image) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}
	return nil
}
