package cloudfit

import (
	"fmt"
	"math"
)

// imageMoments computes the intensity-weighted centroid and spread of the
// image from its zeroth, first and second moments. It returns
// ErrDegenerateImage when the integrated intensity or either variance is
// non-positive, which happens for very noisy or background-dominated images.
func imageMoments(g *Grid) (x0, y0, sx, sy float64, err error) {
	tot := g.Sum()
	if tot <= 0 {
		return 0, 0, 0, 0, fmt.Errorf("%w: integrated intensity %g <= 0", ErrDegenerateImage, tot)
	}
	for i := 0; i < g.Rows(); i++ {
		for j := 0; j < g.Cols(); j++ {
			v := g.At(i, j)
			x0 += v * float64(i)
			y0 += v * float64(j)
		}
	}
	x0 /= tot
	y0 /= tot

	var varX, varY float64
	for i := 0; i < g.Rows(); i++ {
		dx := float64(i) - x0
		for j := 0; j < g.Cols(); j++ {
			v := g.At(i, j)
			dy := float64(j) - y0
			varX += v * dx * dx
			varY += v * dy * dy
		}
	}
	varX /= tot
	varY /= tot
	if varX <= 0 || varY <= 0 {
		return 0, 0, 0, 0, fmt.Errorf("%w: varx=%g vary=%g", ErrDegenerateImage, varX, varY)
	}
	return x0, y0, math.Sqrt(varX), math.Sqrt(varY), nil
}

// guessParams produces the initial parameter estimate for the fit. Center
// and spread come from image moments; when those are degenerate the guess
// falls back to the image center and half the dimensions. The amplitude
// guess is max-min and the offset guess is min.
func guessParams(g *Grid, logf func(format string, args ...any)) ModelParams {
	min := g.Min()
	p := ModelParams{
		Amp:    g.Max() - min,
		Offset: min,
	}
	x0, y0, sx, sy, err := imageMoments(g)
	if err != nil {
		logf("%v; using default guess values", err)
		x0 = float64(g.Rows()) / 2
		y0 = float64(g.Cols()) / 2
		sx = float64(g.Rows()) / 2
		sy = float64(g.Cols()) / 2
	}
	p.X0, p.Y0, p.SX, p.SY = x0, y0, sx, sy
	logf("guess: x0=%.1f y0=%.1f sx=%.1f sy=%.1f", x0, y0, sx, sy)
	return p
}
