// Package opttrap models optical dipole traps built from superposed
// Gaussian laser beams, with optional gravitational and magnetic-quadrupole
// potential terms.
//
// A trap is described by one or more Beams and an Atom. The total potential
// is sampled onto a Field3D scalar field; trap depth comes from the field
// maximum and trap frequencies from the eigenvalues of the potential Hessian
// at the trap center.
package opttrap
