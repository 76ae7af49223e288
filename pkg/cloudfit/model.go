package cloudfit

import "math"

// minSigma is the lower clamp for sx and sy during model evaluation. A width
// at or below the clamp yields a near-delta profile instead of a division by
// zero.
const minSigma = 1e-12

// ModelParams holds the full parameter set of the 2D Gaussian model. Locked
// parameters are simply zero.
type ModelParams struct {
	X0, Y0 float64 // center, in pixels (x = row, y = column)
	SX, SY float64 // Gaussian widths along the rotated axes
	Amp    float64 // peak amplitude above the background
	Offset float64 // constant background
	Angle  float64 // tilt angle, degrees
	XSlope float64 // linear background gradient along x
	YSlope float64 // linear background gradient along y
}

func (p ModelParams) get(k Param) float64 {
	switch k {
	case ParamX0:
		return p.X0
	case ParamY0:
		return p.Y0
	case ParamSX:
		return p.SX
	case ParamSY:
		return p.SY
	case ParamAmp:
		return p.Amp
	case ParamOffset:
		return p.Offset
	case ParamAngle:
		return p.Angle
	case ParamXSlope:
		return p.XSlope
	case ParamYSlope:
		return p.YSlope
	}
	return 0
}

func (p *ModelParams) set(k Param, v float64) {
	switch k {
	case ParamX0:
		p.X0 = v
	case ParamY0:
		p.Y0 = v
	case ParamSX:
		p.SX = v
	case ParamSY:
		p.SY = v
	case ParamAmp:
		p.Amp = v
	case ParamOffset:
		p.Offset = v
	case ParamAngle:
		p.Angle = v
	case ParamXSlope:
		p.XSlope = v
	case ParamYSlope:
		p.YSlope = v
	}
}

// Eval computes the model at coordinate (x, y): the coordinates are rotated
// about (X0, Y0) by Angle and an anisotropic Gaussian plus a planar
// background is evaluated,
//
//	A*exp(-1/2*((rx/sx)^2 + (ry/sy)^2)) + offset + x_slope*(x-x0) + y_slope*(y-y0)
func (p ModelParams) Eval(x, y float64) float64 {
	sx := math.Max(math.Abs(p.SX), minSigma)
	sy := math.Max(math.Abs(p.SY), minSigma)
	th := p.Angle * math.Pi / 180
	cosT, sinT := math.Cos(th), math.Sin(th)
	dx, dy := x-p.X0, y-p.Y0
	rx := cosT*dx - sinT*dy
	ry := sinT*dx + cosT*dy
	u := rx / sx
	v := ry / sy
	return p.Amp*math.Exp(-0.5*(u*u+v*v)) + p.Offset + p.XSlope*dx + p.YSlope*dy
}

// gradient writes the nine partial derivatives of Eval at (x, y) into grad,
// indexed by Param. The angle partial is per degree.
func (p ModelParams) gradient(x, y float64, grad []float64) {
	sx := math.Max(math.Abs(p.SX), minSigma)
	sy := math.Max(math.Abs(p.SY), minSigma)
	th := p.Angle * math.Pi / 180
	cosT, sinT := math.Cos(th), math.Sin(th)
	dx, dy := x-p.X0, y-p.Y0
	rx := cosT*dx - sinT*dy
	ry := sinT*dx + cosT*dy
	sx2, sy2 := sx*sx, sy*sy
	e := math.Exp(-0.5 * (rx*rx/sx2 + ry*ry/sy2))
	g := p.Amp * e

	grad[ParamX0] = g*(rx*cosT/sx2+ry*sinT/sy2) - p.XSlope
	grad[ParamY0] = g*(-rx*sinT/sx2+ry*cosT/sy2) - p.YSlope
	grad[ParamSX] = g * rx * rx / (sx2 * sx)
	grad[ParamSY] = g * ry * ry / (sy2 * sy)
	grad[ParamAmp] = e
	grad[ParamOffset] = 1
	// d(rx)/dtheta = -ry and d(ry)/dtheta = rx, so the exponent derivative
	// is rx*ry*(1/sx^2 - 1/sy^2).
	grad[ParamAngle] = g * rx * ry * (1/sx2 - 1/sy2) * math.Pi / 180
	grad[ParamXSlope] = dx
	grad[ParamYSlope] = dy
}

// modelImage evaluates the model over a rows x cols grid whose pixel (i, j)
// sits at coordinate (i*scale, j*scale).
func modelImage(p ModelParams, rows, cols int, scale float64) *Grid {
	g, _ := NewGrid(rows, cols)
	for i := 0; i < rows; i++ {
		x := float64(i) * scale
		for j := 0; j < cols; j++ {
			g.Set(i, j, p.Eval(x, float64(j)*scale))
		}
	}
	return g
}
