package opttrap

import "math"

// GravityPotential samples the gravitational potential -m*g*(r·gravVec) of
// a particle of the given mass, with gravVec the unit vector pointing
// "down".
func GravityPotential(mass float64, gravVec Vec3, box Box, steps [3]int) (*Field3D, error) {
	return SampleField(func(x, y, z float64) float64 {
		comp := x*gravVec[0] + y*gravVec[1] + z*gravVec[2]
		return -mass * gravAccel * comp
	}, box, steps)
}

// QuadConfig describes a spherical-quadrupole magnetic potential.
type QuadConfig struct {
	// GF and MF select the Zeeman sublevel; the default (-1/2, -1) is the
	// magnetically trappable Rb87 lower state.
	GF, MF float64
	// BGrad is the field gradient along the strong axis, in Units.
	BGrad float64
	// Units is "T/m" (default) or "G/cm".
	Units string
	// StrongAxis orients the quadrupole; the zero value means +z.
	StrongAxis Vec3
}

// NewQuadConfig returns a QuadConfig with the default sublevel, a 1 T/m
// gradient and a +z strong axis.
func NewQuadConfig() QuadConfig {
	return QuadConfig{GF: -0.5, MF: -1, BGrad: 1, Units: "T/m", StrongAxis: Vec3{0, 0, 1}}
}

// SphereQuadPotential samples the Zeeman potential of a spherical quadrupole
// field, gF*mF*gamma*hbar*|B(r)|, where the field magnitude is
// sqrt((Bgrad*x/2)^2 + (Bgrad*y/2)^2 + (Bgrad*z)^2) in the quadrupole frame.
func SphereQuadPotential(cfg QuadConfig, box Box, steps [3]int) (*Field3D, error) {
	grad := cfg.BGrad
	switch cfg.Units {
	case "", "T/m":
	case "G/cm":
		grad *= 1e-4 * 1e2 // G/cm to T/m
	default:
		return nil, ErrBadUnits
	}

	axis := cfg.StrongAxis
	if axis == (Vec3{}) {
		axis = Vec3{0, 0, 1}
	}
	rot := rotationOnto(Vec3{0, 0, 1}, axis)
	tilted := axis != (Vec3{0, 0, 1})

	return SampleField(func(x, y, z float64) float64 {
		v := Vec3{x, y, z}
		if tilted {
			v = matVec(rot, v)
		}
		b := math.Sqrt(0.25*grad*grad*(v[0]*v[0]+v[1]*v[1]) + grad*grad*v[2]*v[2])
		return cfg.GF * cfg.MF * gyromagneticClassical * hbar * b
	}, box, steps)
}
