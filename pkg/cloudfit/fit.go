package cloudfit

import (
	"fmt"
	"math"
	"time"

	"github.com/maorshutman/lm"
	"gonum.org/v1/gonum/mat"
)

// lmSettings are the solver tuning knobs. They are deliberately exposed as
// package variables rather than hardcoded into the fit so callers with
// unusually flat or noisy images can retune them.
var (
	lmIterations   = 200
	lmObjectiveTol = 1e-16
	lmTau          = 1e-6
	lmEps          = 1e-8
)

// FitGaussian2D fits the 2D Gaussian model to img.
//
// The initial guess comes from image moments (with a geometric fallback for
// degenerate images), the least-squares minimization runs on the
// downsampled image, sx and sy are normalized to their absolute values, the
// tilt angle is canonicalized into cfg.AngleOffset ± 45 degrees, and
// parameter statistics are synthesized from the Jacobian at the solution.
//
// A nil cfg uses NewFitConfig defaults. Each call is independent: fits of
// different images may run concurrently.
func FitGaussian2D(img *Grid, cfg *FitConfig) (*FitResult, error) {
	if img == nil || img.Rows() < 1 || img.Cols() < 1 {
		return nil, ErrEmptyImage
	}
	if cfg == nil {
		cfg = NewFitConfig()
	}
	if cfg.Zoom < 1 {
		return nil, fmt.Errorf("%w: got %g", ErrBadZoom, cfg.Zoom)
	}
	if cfg.ConfLevel <= 0 || cfg.ConfLevel >= 1 {
		return nil, fmt.Errorf("%w: got %g", ErrBadConfLevel, cfg.ConfLevel)
	}

	down := Downsample(img, cfg.Zoom)
	cfg.logf("image downsampled by factor %.1f to %dx%d", cfg.Zoom, down.Rows(), down.Cols())

	layout := cfg.paramLayout()
	guess := guessParams(img, cfg.logf)
	init := packParams(guess, layout)

	nPix := down.Rows() * down.Cols()
	resid := func(dst, x []float64) {
		p := unpackParams(x, layout)
		idx := 0
		for i := 0; i < down.Rows(); i++ {
			xc := float64(i) * cfg.Zoom
			for j := 0; j < down.Cols(); j++ {
				dst[idx] = p.Eval(xc, float64(j)*cfg.Zoom) - down.At(i, j)
				idx++
			}
		}
	}

	numJac := lm.NumJac{Func: resid}
	prob := lm.LMProblem{
		Dim:        len(layout),
		Size:       nPix,
		Func:       resid,
		Jac:        numJac.Jac,
		InitParams: init,
		Tau:        lmTau,
		Eps1:       lmEps,
		Eps2:       lmEps,
	}
	start := time.Now()
	sol, lmErr := lm.LM(prob, &lm.Settings{Iterations: lmIterations, ObjectiveTol: lmObjectiveTol})
	if lmErr != nil {
		cfg.logf("least-squares solver: %v", lmErr)
	}
	cfg.logf("fit time = %.2f s", time.Since(start).Seconds())

	popt := make([]float64, len(layout))
	copy(popt, sol.X)

	// The sign of a fitted width is a solver artifact.
	popt[sigmaXCol] = math.Abs(popt[sigmaXCol])
	popt[sigmaYCol] = math.Abs(popt[sigmaYCol])

	cost := residualCost(resid, popt, nPix)
	p := unpackParams(popt, layout)
	jac := solutionJacobian(p, layout, down.Rows(), down.Cols(), cfg.Zoom)

	if !cfg.FixAngle {
		canon, swap := canonicalAngle(p.Angle, cfg.AngleOffset)
		if swap {
			popt[sigmaXCol], popt[sigmaYCol] = popt[sigmaYCol], popt[sigmaXCol]
			jac = swapSigmaColumns(jac)
		}
		popt[angleIndex(layout)] = canon
		p = unpackParams(popt, layout)
	}

	dof := nPix - len(layout)
	cov := covarianceFromJacobian(jac, cost, dof, cfg.logf)

	return assembleResult(img, p, popt, layout, cov, cfg.ConfLevel, dof), nil
}

// angleIndex returns the position of the angle parameter in the layout. The
// angle, when free, always follows the base six parameters.
func angleIndex(layout []Param) int {
	for i, k := range layout {
		if k == ParamAngle {
			return i
		}
	}
	return -1
}

// residualCost evaluates half the sum of squared residuals at x.
func residualCost(resid func(dst, x []float64), x []float64, n int) float64 {
	r := make([]float64, n)
	resid(r, x)
	var s float64
	for _, v := range r {
		s += v * v
	}
	return s / 2
}

// solutionJacobian evaluates the analytic residual Jacobian at the solution:
// one row per downsampled pixel, one column per free parameter in layout
// order. The residual is model minus data, so its partials are those of the
// model.
func solutionJacobian(p ModelParams, layout []Param, rows, cols int, scale float64) *mat.Dense {
	jac := mat.NewDense(rows*cols, len(layout), nil)
	grad := make([]float64, ParamYSlope+1)
	idx := 0
	for i := 0; i < rows; i++ {
		x := float64(i) * scale
		for j := 0; j < cols; j++ {
			p.gradient(x, float64(j)*scale, grad)
			for c, k := range layout {
				jac.Set(idx, c, grad[k])
			}
			idx++
		}
	}
	return jac
}

// assembleResult reconstructs the model image over the original grid and
// packages all parameter statistics into the immutable result.
func assembleResult(img *Grid, p ModelParams, popt []float64, layout []Param, cov *mat.Dense, confLevel float64, dof int) *FitResult {
	res := &FitResult{
		Keys:     append([]Param(nil), layout...),
		Params:   make(map[Param]FitParam, len(layout)),
		Cov:      cov,
		DataImg:  img.Clone(),
		ModelImg: modelImage(p, img.Rows(), img.Cols(), 1),
	}
	for i, k := range layout {
		res.Params[k] = newFitParam(k.String(), popt[i], stdFromCov(cov, i), confLevel, dof)
	}
	res.NGauss = p.Amp * 2 * math.Pi * p.SX * p.SY
	res.NSum = img.Sum()
	res.NSumBGSubtract = res.NSum - p.Offset
	return res
}
