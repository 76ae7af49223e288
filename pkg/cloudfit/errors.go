package cloudfit

import "errors"

// Sentinel errors for fit input validation and recovered fit faults.
var (
	// ErrEmptyImage indicates an image with no rows or no columns.
	ErrEmptyImage = errors.New("cloudfit: image must have at least one row and one column")
	// ErrRaggedImage indicates image rows of differing lengths.
	ErrRaggedImage = errors.New("cloudfit: all image rows must have the same length")
	// ErrBadZoom indicates a downsample factor below 1.
	ErrBadZoom = errors.New("cloudfit: zoom factor must be >= 1")
	// ErrBadConfLevel indicates a confidence level outside (0, 1).
	ErrBadConfLevel = errors.New("cloudfit: confidence level must be in (0, 1)")

	// ErrDegenerateImage indicates that image moments cannot be computed
	// because the integrated intensity or a variance is non-positive.
	// It is recovered inside the fit by a geometric fallback guess and is
	// never returned by FitGaussian2D.
	ErrDegenerateImage = errors.New("cloudfit: image too noisy for moment statistics")
	// ErrSingularJacobian indicates that J^T J could not be inverted.
	// It is recovered inside the fit by a zero covariance matrix and is
	// never returned by FitGaussian2D.
	ErrSingularJacobian = errors.New("cloudfit: singular fit Jacobian")
)
