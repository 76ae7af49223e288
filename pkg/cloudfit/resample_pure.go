//go:build purego || js

package cloudfit

import "math"

// Downsample shrinks the grid by the given zoom factor, sampling the source
// bilinearly at each downsampled pixel center. A zoom of 1 returns an
// independent copy.
func Downsample(g *Grid, zoom float64) *Grid {
	if zoom == 1 {
		return g.Clone()
	}
	rows, cols := downsampledDims(g, zoom)
	out, _ := NewGrid(rows, cols)
	for i := 0; i < rows; i++ {
		x := float64(i) * zoom
		for j := 0; j < cols; j++ {
			out.Set(i, j, bilinearSample(g, x, float64(j)*zoom))
		}
	}
	return out
}

// bilinearSample interpolates the grid value at fractional row x, column y.
func bilinearSample(g *Grid, x, y float64) float64 {
	x0 := int(math.Floor(x))
	if x0 > g.Rows()-1 {
		x0 = g.Rows() - 1
	}
	x1 := x0 + 1
	if x1 > g.Rows()-1 {
		x1 = g.Rows() - 1
	}
	y0 := int(math.Floor(y))
	if y0 > g.Cols()-1 {
		y0 = g.Cols() - 1
	}
	y1 := y0 + 1
	if y1 > g.Cols()-1 {
		y1 = g.Cols() - 1
	}
	fx := x - float64(x0)
	fy := y - float64(y0)

	top := g.At(x0, y0)*(1-fy) + g.At(x0, y1)*fy
	bottom := g.At(x1, y0)*(1-fy) + g.At(x1, y1)*fy
	return top*(1-fx) + bottom*fx
}
