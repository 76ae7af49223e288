package opttrap

import "math"

// Atom carries the spectroscopic data needed to turn an optical intensity
// into a dipole potential. Numerical values follow Steck's alkali data
// tables.
type Atom struct {
	Name    string
	IsBoson bool

	// D1 and D2 line data: decay rate (1/s), center transition frequency
	// (Hz), and far-detuned pi-polarized saturation intensity (W/m^2).
	GammaD1, FreqD1, IsatD1 float64
	GammaD2, FreqD2, IsatD2 float64

	// Gamma and Freq average the two lines for rough two-level estimates.
	Gamma, Freq            float64
	FineStructureSplitting float64

	NuclearSpin, Spin, GJ  float64
	Mass, ScatteringLength float64
}

// NewAtom returns the atom data for the given species. Only rubidium-87 is
// tabulated; unknown species fall back to Rb87 so a forward model can still
// run, with the fallback recorded in the Name field.
func NewAtom(species string) *Atom {
	a := &Atom{
		Name:    "Rb87",
		IsBoson: true,
		GammaD1: 1 / 27.679e-9,
		FreqD1:  377.107463380e12,
		IsatD1:  4.4876e-3 * 1e4,
		GammaD2: 1 / 26.2348e-9,
		FreqD2:  384.2304844685e12,
		IsatD2:  2.50399e-3 * 1e4,

		NuclearSpin:      1.5,
		Spin:             0.5,
		GJ:               2.00233113,
		Mass:             1.443160648e-25,
		ScatteringLength: 100.4 * bohrRadius,
	}
	a.Gamma = 0.5 * (a.GammaD1 + a.GammaD2)
	a.Freq = 0.5 * (a.FreqD1 + a.FreqD2)
	a.FineStructureSplitting = a.FreqD2 - a.FreqD1
	if species != "Rb87" {
		a.Name = "Rb87 (fallback for " + species + ")"
	}
	return a
}

// OpticalPotential converts an optical intensity (W/m^2) at the given field
// frequency (Hz) into a dipole potential (J), including rotating and
// counter-rotating terms for both D lines. Red detuning gives a negative,
// trapping potential.
func (a *Atom) OpticalPotential(intensity, fieldFreq float64) float64 {
	rotating := (hbar * intensity / 8) *
		(a.GammaD1*a.GammaD1/(2*math.Pi*(fieldFreq-a.FreqD1)*a.IsatD1) +
			a.GammaD2*a.GammaD2/(2*math.Pi*(fieldFreq-a.FreqD2)*a.IsatD2))
	counterRotating := (hbar * intensity / 8) *
		(a.GammaD1*a.GammaD1/(2*math.Pi*(fieldFreq+a.FreqD1)*a.IsatD1) +
			a.GammaD2*a.GammaD2/(2*math.Pi*(fieldFreq+a.FreqD2)*a.IsatD2))
	return rotating + counterRotating
}

// OpticalPotentialAtWavelength is OpticalPotential with the field given as a
// vacuum wavelength in meters.
func (a *Atom) OpticalPotentialAtWavelength(intensity, wavelength float64) float64 {
	return a.OpticalPotential(intensity, lightSpeed/wavelength)
}
