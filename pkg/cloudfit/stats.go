package cloudfit

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// covarianceFromJacobian estimates the parameter covariance matrix
// sigma^2 * (J^T J)^-1 with sigma^2 = 2*cost/dof. When J^T J is singular or
// dof is non-positive the all-zero matrix is returned instead; the fit still
// succeeds but every confidence interval collapses to zero width.
func covarianceFromJacobian(jac *mat.Dense, cost float64, dof int, logf func(format string, args ...any)) *mat.Dense {
	_, n := jac.Dims()
	cov := mat.NewDense(n, n, nil)
	if dof <= 0 {
		logf("%v: dof=%d, covariance unavailable", ErrSingularJacobian, dof)
		return cov
	}
	var jtj mat.Dense
	jtj.Mul(jac.T(), jac)
	var inv mat.Dense
	if err := inv.Inverse(&jtj); err != nil {
		logf("%v: %v", ErrSingularJacobian, err)
		return cov
	}
	sigma2 := 2 * cost / float64(dof)
	cov.Scale(sigma2, &inv)
	return cov
}

// tCritical returns the two-sided critical value at the given confidence
// level: Student's t with dof degrees of freedom, or the normal quantile
// when dof is not usable.
func tCritical(confLevel float64, dof int) float64 {
	p := (1 + confLevel) / 2
	if dof > 0 {
		return distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(dof)}.Quantile(p)
	}
	return distuv.Normal{Mu: 0, Sigma: 1}.Quantile(p)
}

// newFitParam builds the statistics record of one fitted parameter from its
// value and standard deviation.
func newFitParam(name string, val, std, confLevel float64, dof int) FitParam {
	half := tCritical(confLevel, dof) * std
	return FitParam{
		Name:         name,
		Val:          val,
		Std:          std,
		ConfLevel:    confLevel,
		ErrHalfRange: half,
		ErrFullRange: 2 * half,
		ValLB:        val - half,
		ValUB:        val + half,
	}
}

// stdFromCov reads the standard deviation of parameter i off the covariance
// diagonal, guarding against tiny negative diagonal entries from round-off.
func stdFromCov(cov *mat.Dense, i int) float64 {
	d := cov.At(i, i)
	if d <= 0 {
		return 0
	}
	return math.Sqrt(d)
}
