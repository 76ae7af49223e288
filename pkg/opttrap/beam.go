package opttrap

import "math"

// Vec3 is a Cartesian position in meters.
type Vec3 [3]float64

// Beam models a Gaussian laser beam propagating along +z in its own frame.
// Translate, Rotate and Transform compose a chain of geometry
// transformations applied to lab-frame coordinates before evaluation, so
// beams can be placed and crossed arbitrarily.
type Beam struct {
	WaistX, WaistY float64 // 1/e^2 intensity radii at focus, m
	Power          float64 // W
	Wavelength     float64 // m
	Z0X, Z0Y       float64 // focus positions along z for the two axes, m

	transforms []func(Vec3) Vec3
}

// NewBeam creates a cylindrically symmetric beam with the given focus waist,
// power and wavelength. Astigmatic beams are built by setting WaistY, Z0X or
// Z0Y afterwards.
func NewBeam(waist, power, wavelength float64) *Beam {
	return &Beam{
		WaistX:     waist,
		WaistY:     waist,
		Power:      power,
		Wavelength: wavelength,
	}
}

// RayleighRangeX returns pi*w0x^2/lambda.
func (b *Beam) RayleighRangeX() float64 { return math.Pi * b.WaistX * b.WaistX / b.Wavelength }

// RayleighRangeY returns pi*w0y^2/lambda.
func (b *Beam) RayleighRangeY() float64 { return math.Pi * b.WaistY * b.WaistY / b.Wavelength }

// PeakIntensity returns the focal intensity 2P/(pi*w0x*w0y).
func (b *Beam) PeakIntensity() float64 {
	return 2 * b.Power / (math.Pi * b.WaistX * b.WaistY)
}

// Translate shifts the beam by vec in the lab frame.
func (b *Beam) Translate(vec Vec3) {
	b.transforms = append(b.transforms, func(v Vec3) Vec3 {
		return Vec3{v[0] - vec[0], v[1] - vec[1], v[2] - vec[2]}
	})
}

// Rotate rotates the beam about the given axis through the origin by angle
// radians.
func (b *Beam) Rotate(axis Vec3, angle float64) {
	m := rotationMatrix(axis, -angle)
	b.Transform(m)
}

// Transform applies a 3x3 matrix to lab coordinates before beam evaluation.
func (b *Beam) Transform(m [3][3]float64) {
	b.transforms = append(b.transforms, func(v Vec3) Vec3 {
		return matVec(m, v)
	})
}

// Intensity evaluates the beam intensity (W/m^2) at the lab-frame point
// (x, y, z), applying the transform chain most recent first.
func (b *Beam) Intensity(x, y, z float64) float64 {
	v := Vec3{x, y, z}
	for i := len(b.transforms) - 1; i >= 0; i-- {
		v = b.transforms[i](v)
	}
	wx := waistProfile(b.WaistX, b.Wavelength, v[2]-b.Z0X)
	wy := waistProfile(b.WaistY, b.Wavelength, v[2]-b.Z0Y)
	// Transverse profile is a Gaussian with sigma = w/2 along each axis.
	gauss := math.Exp(-0.5 * (v[0]*v[0]/(wx*wx/4) + v[1]*v[1]/(wy*wy/4)))
	return b.PeakIntensity() * (b.WaistX / wx) * (b.WaistY / wy) * gauss
}

// Field samples the beam intensity over box onto a steps-sized grid.
func (b *Beam) Field(box Box, steps [3]int) (*Field3D, error) {
	return SampleField(b.Intensity, box, steps)
}

// waistProfile returns the beam radius w0*sqrt(1+(z/zr)^2) a distance z from
// the focus.
func waistProfile(w0, wavelength, z float64) float64 {
	zr := math.Pi * w0 * w0 / wavelength
	return w0 * math.Sqrt(1+(z/zr)*(z/zr))
}

// rotationMatrix builds the Rodrigues rotation matrix for the given axis and
// angle in radians.
func rotationMatrix(axis Vec3, angle float64) [3][3]float64 {
	n := math.Sqrt(axis[0]*axis[0] + axis[1]*axis[1] + axis[2]*axis[2])
	ux, uy, uz := axis[0]/n, axis[1]/n, axis[2]/n
	c, s := math.Cos(angle), math.Sin(angle)
	omc := 1 - c
	return [3][3]float64{
		{c + ux*ux*omc, ux*uy*omc - uz*s, ux*uz*omc + uy*s},
		{uy*ux*omc + uz*s, c + uy*uy*omc, uy*uz*omc - ux*s},
		{uz*ux*omc - uy*s, uz*uy*omc + ux*s, c + uz*uz*omc},
	}
}

// rotationOnto builds a rotation matrix mapping unit direction v onto w.
func rotationOnto(v, w Vec3) [3][3]float64 {
	vn := normalize(v)
	wn := normalize(w)
	cross := Vec3{
		vn[1]*wn[2] - vn[2]*wn[1],
		vn[2]*wn[0] - vn[0]*wn[2],
		vn[0]*wn[1] - vn[1]*wn[0],
	}
	dot := vn[0]*wn[0] + vn[1]*wn[1] + vn[2]*wn[2]
	sinA := math.Sqrt(cross[0]*cross[0] + cross[1]*cross[1] + cross[2]*cross[2])
	if sinA == 0 {
		if dot > 0 {
			return identityMatrix()
		}
		// Antiparallel: rotate half a turn about any perpendicular axis.
		perp := Vec3{1, 0, 0}
		if math.Abs(vn[0]) > 0.9 {
			perp = Vec3{0, 1, 0}
		}
		return rotationMatrix(perp, math.Pi)
	}
	return rotationMatrix(cross, math.Atan2(sinA, dot))
}

func identityMatrix() [3][3]float64 {
	return [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

func normalize(v Vec3) Vec3 {
	n := math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	return Vec3{v[0] / n, v[1] / n, v[2] / n}
}

func matVec(m [3][3]float64, v Vec3) Vec3 {
	return Vec3{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}
