//go:build !purego && !js

package cloudfit

import (
	"image"

	"gocv.io/x/gocv"
)

// Downsample shrinks the grid by the given zoom factor using OpenCV area
// resampling. A zoom of 1 returns an independent copy.
func Downsample(g *Grid, zoom float64) *Grid {
	if zoom == 1 {
		return g.Clone()
	}
	rows, cols := downsampledDims(g, zoom)

	src := gocv.NewMatWithSize(g.Rows(), g.Cols(), gocv.MatTypeCV32F)
	defer src.Close()
	srcData, _ := src.DataPtrFloat32()
	for i, v := range g.Data() {
		srcData[i] = float32(v)
	}

	dst := gocv.NewMat()
	defer dst.Close()
	gocv.Resize(src, &dst, image.Pt(cols, rows), 0, 0, gocv.InterpolationArea)

	out, _ := NewGrid(rows, cols)
	dstData, _ := dst.DataPtrFloat32()
	for i := range out.Data() {
		out.Data()[i] = float64(dstData[i])
	}
	return out
}
