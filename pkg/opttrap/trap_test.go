package opttrap

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBeam() *Beam {
	// 10 W at 1064 nm focused to a 50 um waist, a typical single-beam
	// dipole trap.
	return NewBeam(50e-6, 10, 1064e-9)
}

func TestNewOptTrapNoBeams(t *testing.T) {
	_, err := NewOptTrap(nil, nil)
	assert.ErrorIs(t, err, ErrNoBeams)
}

func TestNewOptTrapDefaultsToRb87(t *testing.T) {
	trap, err := NewOptTrap([]*Beam{testBeam()}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Rb87", trap.Atom.Name)
}

func TestSingleBeamTrap(t *testing.T) {
	trap, err := NewOptTrap([]*Beam{testBeam()}, nil)
	require.NoError(t, err)

	assert.Positive(t, trap.TrapDepth)

	prod := 1.0
	for a, freq := range trap.TrapFreqs {
		require.False(t, math.IsNaN(freq), "axis %d", a)
		assert.Positive(t, freq, "axis %d", a)
		prod *= freq
	}
	assert.InEpsilon(t, math.Cbrt(prod), trap.TrapFreqGMean, 1e-12)

	// The axial curvature of a single focused beam is far weaker than the
	// transverse one. Eigenvalues come back sorted ascending, so the
	// softest axis is first.
	assert.Less(t, trap.TrapFreqs[0]*100, trap.TrapFreqs[2])
	// The two transverse frequencies of a round beam agree.
	assert.InEpsilon(t, trap.TrapFreqs[1], trap.TrapFreqs[2], 1e-3)

	// Transverse frequency of a Gaussian beam: omega = sqrt(4*U0/(m*w0^2)).
	u0 := -trap.Atom.OpticalPotentialAtWavelength(testBeam().PeakIntensity(), 1064e-9)
	want := math.Sqrt(4 * u0 / (trap.Atom.Mass * 50e-6 * 50e-6))
	assert.InEpsilon(t, want, trap.TrapFreqs[2], 0.05)
}

func TestPotentialFieldSumsBeams(t *testing.T) {
	box := CenteredBox(1e-6)
	steps := [3]int{6, 6, 6}

	single, err := NewOptTrap([]*Beam{testBeam()}, nil)
	require.NoError(t, err)
	double, err := NewOptTrap([]*Beam{testBeam(), testBeam()}, nil)
	require.NoError(t, err)

	f1, err := single.PotentialField(box, steps)
	require.NoError(t, err)
	f2, err := double.PotentialField(box, steps)
	require.NoError(t, err)

	assert.InEpsilon(t, 2*f1.At(2, 3, 4), f2.At(2, 3, 4), 1e-12)
	assert.InEpsilon(t, 2*single.TrapDepth, double.TrapDepth, 1e-9)
}

func TestPSDAndPeakDensity(t *testing.T) {
	trap, err := NewOptTrap([]*Beam{testBeam()}, nil)
	require.NoError(t, err)

	const n, temp = 1e6, 1e-6
	x := hbar * trap.TrapFreqGMean / (boltzmannK * temp)
	assert.InEpsilon(t, n*x*x*x, trap.PSD(n, temp), 1e-12)

	lambdaDB := planckH / math.Sqrt(2*math.Pi*trap.Atom.Mass*boltzmannK*temp)
	assert.InEpsilon(t, trap.PSD(n, temp)/(lambdaDB*lambdaDB*lambdaDB),
		trap.PeakDensity(n, temp), 1e-12)

	// Colder clouds at fixed atom number are denser in phase space.
	assert.Greater(t, trap.PSD(n, 1e-7), trap.PSD(n, 1e-6))
}
