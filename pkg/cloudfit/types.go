package cloudfit

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Param identifies a fit parameter. The declaration order is the canonical
// ordering of the parameter vector and of the Jacobian columns.
type Param int

const (
	ParamX0 Param = iota
	ParamY0
	ParamSX
	ParamSY
	ParamAmp
	ParamOffset
	ParamAngle
	ParamXSlope
	ParamYSlope
)

func (p Param) String() string {
	switch p {
	case ParamX0:
		return "x0"
	case ParamY0:
		return "y0"
	case ParamSX:
		return "sx"
	case ParamSY:
		return "sy"
	case ParamAmp:
		return "A"
	case ParamOffset:
		return "offset"
	case ParamAngle:
		return "angle"
	case ParamXSlope:
		return "x_slope"
	case ParamYSlope:
		return "y_slope"
	default:
		return "unknown"
	}
}

// Column indices of sx and sy in the parameter vector and Jacobian. The base
// six parameters are always present and always lead the layout, so these are
// fixed.
const (
	sigmaXCol = 2
	sigmaYCol = 3
)

// DefaultConfLevel is the one-sigma coverage probability erf(1/sqrt(2)).
var DefaultConfLevel = math.Erf(1 / math.Sqrt2)

// FitConfig contains the tunable parameters of FitGaussian2D.
type FitConfig struct {
	// Zoom is the downsample factor applied to the image before fitting.
	// Must be >= 1; 1 means no downsampling.
	Zoom float64
	// AngleOffset is the center, in degrees, of the ±45 degree window the
	// fitted tilt angle is normalized into. It does not constrain the fit
	// itself. Fits with a tilt angle near the edge of the window may swap
	// sx and sy for similar looking images.
	AngleOffset float64
	// FixAngle constrains the tilt angle to zero instead of fitting it.
	FixAngle bool
	// FixSlope constrains the linear background gradient to zero instead
	// of fitting it.
	FixSlope bool
	// ConfLevel is the coverage probability for confidence intervals,
	// in (0, 1).
	ConfLevel float64
	// Logf, when non-nil, receives fit diagnostics (guess values, timing,
	// recovered faults).
	Logf func(format string, args ...any)
}

// NewFitConfig returns a FitConfig with default settings: no downsampling,
// free angle and slopes, one-sigma confidence intervals.
func NewFitConfig() *FitConfig {
	return &FitConfig{
		Zoom:      1,
		ConfLevel: DefaultConfLevel,
	}
}

func (c *FitConfig) logf(format string, args ...any) {
	if c.Logf != nil {
		c.Logf(format, args...)
	}
}

// paramLayout returns the ordered list of free parameters for this
// configuration: the base six, then angle unless fixed, then the slope pair
// unless fixed.
func (c *FitConfig) paramLayout() []Param {
	keys := []Param{ParamX0, ParamY0, ParamSX, ParamSY, ParamAmp, ParamOffset}
	if !c.FixAngle {
		keys = append(keys, ParamAngle)
	}
	if !c.FixSlope {
		keys = append(keys, ParamXSlope, ParamYSlope)
	}
	return keys
}

// packParams extracts the free entries of p in layout order.
func packParams(p ModelParams, layout []Param) []float64 {
	out := make([]float64, len(layout))
	for i, k := range layout {
		out[i] = p.get(k)
	}
	return out
}

// unpackParams builds a full parameter set from a free-parameter vector.
// Parameters absent from the layout stay zero, which is the locked value for
// both the angle and the slopes.
func unpackParams(x []float64, layout []Param) ModelParams {
	var p ModelParams
	for i, k := range layout {
		p.set(k, x[i])
	}
	return p
}

// FitParam carries the statistics of a single fitted parameter. It is
// immutable once created.
type FitParam struct {
	// Name is the parameter name.
	Name string
	// Val is the central fit value.
	Val float64
	// Std is the standard deviation extracted from the fit Jacobian.
	Std float64
	// ConfLevel is the coverage probability of the confidence interval.
	ConfLevel float64
	// ErrHalfRange is half the confidence interval width.
	ErrHalfRange float64
	// ErrFullRange is the full confidence interval width.
	ErrFullRange float64
	// ValLB and ValUB are the confidence interval bounds.
	ValLB float64
	ValUB float64
}

// FitResult is the output of FitGaussian2D. It is read-only after
// construction and owns its copies of the data and model images.
//
// A zero-width confidence interval on every parameter means the covariance
// estimate was unavailable (singular Jacobian), not a perfect fit.
type FitResult struct {
	// Keys lists the free parameters in fit order.
	Keys []Param
	// Params maps each free parameter to its fitted statistics.
	Params map[Param]FitParam
	// Cov is the parameter covariance matrix, index-aligned with Keys.
	Cov *mat.Dense
	// DataImg is a copy of the input image.
	DataImg *Grid
	// ModelImg is the best-fit model evaluated over the full image grid.
	ModelImg *Grid
	// NGauss is the infinite-plane integral of the fitted Gaussian,
	// A * 2π * sx * sy.
	NGauss float64
	// NSum is the integrated pixel value of the input image.
	NSum float64
	// NSumBGSubtract is NSum minus the fitted background offset.
	NSumBGSubtract float64
}

// Param returns the record for parameter k. The zero FitParam is returned
// for parameters that were not part of the fit.
func (r *FitResult) Param(k Param) FitParam { return r.Params[k] }
