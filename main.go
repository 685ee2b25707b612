// Command mandelbrot is an interactive Mandelbrot set explorer: a live
// view of the set with drag panning and wheel zoom toward the cursor.
package main

import (
	"log"

	"github.com/ethanzmuda/mandelbrot/app"
)

func main() {
	log.SetPrefix("mandelbrot: ")
	log.SetFlags(0)

	if err := app.New().Run(); err != nil {
		log.Fatal(err)
	}
}
