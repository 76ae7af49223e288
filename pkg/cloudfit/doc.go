// Package cloudfit fits a tilted 2D Gaussian model with an optional linear
// background gradient to an image, as used for absorption images of cold
// atom clouds.
//
// The entry point is FitGaussian2D. It estimates initial parameters from
// image moments, runs a Levenberg-Marquardt least-squares fit, normalizes
// the tilt angle into a ±45 degree window around a caller-chosen reference,
// and derives per-parameter standard deviations and confidence intervals
// from the fit Jacobian.
//
// Throughout the package the x axis indexes image rows and the y axis
// indexes image columns.
package cloudfit
