//go:build !purego && !js

package main

import (
	"fmt"

	"gocv.io/x/gocv"

	"cloudfit/pkg/cloudfit"
)

// loadImage reads any OpenCV-supported image format as a grayscale float
// grid.
func loadImage(path string) (*cloudfit.Grid, error) {
	src := gocv.IMRead(path, gocv.IMReadGrayScale)
	if src.Empty() {
		return nil, fmt.Errorf("could not load image: %s", path)
	}
	defer src.Close()

	floatMat := gocv.NewMat()
	defer floatMat.Close()
	src.ConvertTo(&floatMat, gocv.MatTypeCV32F)

	rows, cols := floatMat.Rows(), floatMat.Cols()
	g, err := cloudfit.NewGrid(rows, cols)
	if err != nil {
		return nil, err
	}
	data, _ := floatMat.DataPtrFloat32()
	for i, v := range data[:rows*cols] {
		g.Data()[i] = float64(v)
	}
	return g, nil
}
