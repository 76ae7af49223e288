package opttrap

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Default sampling volume for trap characterization: a 2 micron box around
// the crossing on a 10-point grid, matching the curvature scale of typical
// dipole traps.
var (
	defaultTrapBox   = CenteredBox(1e-6)
	defaultTrapSteps = [3]int{10, 10, 10}
)

// OptTrap characterizes the optical trap formed by superposing one or more
// Gaussian beams on an atom.
type OptTrap struct {
	Beams []*Beam
	Atom  *Atom

	// TrapFreqs are the angular trap frequencies along the principal axes
	// of the potential curvature at the trap center. An anti-trapping axis
	// produces a NaN entry.
	TrapFreqs [3]float64
	// TrapFreqGMean is the geometric mean of the trap frequencies.
	TrapFreqGMean float64
	// TrapDepth is the potential depth in joules, positive for a trapping
	// potential.
	TrapDepth float64

	potField *Field3D
}

// NewOptTrap builds a trap from the given beams and atom and characterizes
// it over the default sampling volume. A nil atom defaults to Rb87.
func NewOptTrap(beams []*Beam, atom *Atom) (*OptTrap, error) {
	if len(beams) == 0 {
		return nil, ErrNoBeams
	}
	if atom == nil {
		atom = NewAtom("Rb87")
	}
	t := &OptTrap{Beams: beams, Atom: atom}
	if err := t.characterize(defaultTrapBox, defaultTrapSteps); err != nil {
		return nil, err
	}
	return t, nil
}

// PotentialField samples the summed dipole potential of all beams over box.
func (t *OptTrap) PotentialField(box Box, steps [3]int) (*Field3D, error) {
	var total *Field3D
	for _, b := range t.Beams {
		beam := b
		pot, err := SampleField(func(x, y, z float64) float64 {
			return t.Atom.OpticalPotentialAtWavelength(beam.Intensity(x, y, z), beam.Wavelength)
		}, box, steps)
		if err != nil {
			return nil, err
		}
		if total == nil {
			total = pot
		} else if err := total.Add(pot); err != nil {
			return nil, err
		}
	}
	return total, nil
}

// characterize derives trap depth and frequencies from the potential field:
// the depth is the negated field maximum and the frequencies are
// sqrt(eig(H)/m) for the Hessian H at the trap center.
func (t *OptTrap) characterize(box Box, steps [3]int) error {
	field, err := t.PotentialField(box, steps)
	if err != nil {
		return err
	}
	t.potField = field
	t.TrapDepth = -field.Max()

	hess, err := field.HessianAt(Vec3{0, 0, 0})
	if err != nil {
		return err
	}
	var eig mat.EigenSym
	if !eig.Factorize(hess, false) {
		return ErrEigenFailed
	}
	vals := eig.Values(nil)
	prod := 1.0
	for i, v := range vals {
		t.TrapFreqs[i] = math.Sqrt(v / t.Atom.Mass)
		prod *= t.TrapFreqs[i]
	}
	t.TrapFreqGMean = math.Cbrt(prod)
	return nil
}

// PSD returns the phase-space density of N atoms at temperature T (kelvin)
// in the harmonic approximation.
func (t *OptTrap) PSD(n, temp float64) float64 {
	x := hbar * t.TrapFreqGMean / (boltzmannK * temp)
	return n * x * x * x
}

// PeakDensity returns the peak spatial density (1/m^3) of N thermal atoms at
// temperature T.
func (t *OptTrap) PeakDensity(n, temp float64) float64 {
	lambdaDB := planckH / math.Sqrt(2*math.Pi*t.Atom.Mass*boltzmannK*temp)
	return t.PSD(n, temp) / (lambdaDB * lambdaDB * lambdaDB)
}
