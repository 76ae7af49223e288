package cloudfit

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// canonicalAngle maps a raw fitted tilt angle into [offset-45, offset+45)
// degrees. The model is periodic with period 180 and additionally ambiguous
// mod 90 up to which axis is labeled sx versus sy, so the raw angle is
// classified into one of five 90 degree bins. swap reports whether the
// mapping relabels the axes, in which case the caller must exchange sx and
// sy together with the corresponding Jacobian columns.
func canonicalAngle(angle, offset float64) (canonical float64, swap bool) {
	diff := math.Mod(angle-offset, 360)
	if diff < 0 {
		diff += 360
	}
	switch {
	case diff < 45:
		return offset + diff, false
	case diff < 135:
		return offset + diff - 90, true
	case diff < 225:
		return offset + diff - 180, false
	case diff < 315:
		return offset + diff - 270, true
	default:
		return offset + diff - 360, false
	}
}

// swapSigmaColumns returns a copy of jac with the sx and sy columns
// exchanged, leaving the input untouched. Swapping the parameter values
// without permuting the Jacobian columns would corrupt the derived
// covariance for sx and sy.
func swapSigmaColumns(jac *mat.Dense) *mat.Dense {
	r, c := jac.Dims()
	out := mat.NewDense(r, c, nil)
	out.Copy(jac)
	for i := 0; i < r; i++ {
		out.Set(i, sigmaXCol, jac.At(i, sigmaYCol))
		out.Set(i, sigmaYCol, jac.At(i, sigmaXCol))
	}
	return out
}
