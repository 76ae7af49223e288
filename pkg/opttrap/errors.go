package opttrap

import "errors"

var (
	// ErrBadSteps indicates a field sampling axis with fewer than two steps.
	ErrBadSteps = errors.New("opttrap: each axis needs at least two sample steps")
	// ErrBoxMismatch indicates fields sampled over different boxes or grids.
	ErrBoxMismatch = errors.New("opttrap: fields must share box and grid dimensions")
	// ErrBoundaryPoint indicates a Hessian request too close to the field edge.
	ErrBoundaryPoint = errors.New("opttrap: Hessian point must be interior to the field")
	// ErrBadUnits indicates an unsupported gradient unit string.
	ErrBadUnits = errors.New("opttrap: only T/m and G/cm gradient units are supported")
	// ErrNoBeams indicates a trap built without any beams.
	ErrNoBeams = errors.New("opttrap: trap needs at least one beam")
	// ErrEigenFailed indicates the Hessian eigendecomposition did not converge.
	ErrEigenFailed = errors.New("opttrap: Hessian eigendecomposition failed")
)
