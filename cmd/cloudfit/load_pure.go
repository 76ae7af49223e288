//go:build purego || js

package main

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/tiff"

	"cloudfit/pkg/cloudfit"
)

// loadImage decodes a PNG, JPEG or TIFF file into a grayscale float grid.
func loadImage(path string) (*cloudfit.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	g, gridErr := cloudfit.NewGrid(h, w)
	if gridErr != nil {
		return nil, gridErr
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, gr, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			// Grayscale luminance in the uint16 range.
			gray := float64((19595*r + 38470*gr + 7471*b + 1<<15) >> 16)
			g.Set(y, x, gray)
		}
	}
	return g, nil
}
