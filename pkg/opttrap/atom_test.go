package opttrap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAtomRb87(t *testing.T) {
	a := NewAtom("Rb87")

	assert.Equal(t, "Rb87", a.Name)
	assert.True(t, a.IsBoson)
	assert.Equal(t, 0.5*(a.GammaD1+a.GammaD2), a.Gamma)
	assert.Equal(t, 0.5*(a.FreqD1+a.FreqD2), a.Freq)
	assert.Equal(t, a.FreqD2-a.FreqD1, a.FineStructureSplitting)
	assert.Positive(t, a.FineStructureSplitting)
}

func TestNewAtomUnknownSpecies(t *testing.T) {
	a := NewAtom("Cs133")
	assert.Contains(t, a.Name, "fallback")
	// Fallback still carries usable Rb87 data.
	assert.Positive(t, a.Mass)
	assert.Positive(t, a.GammaD2)
}

func TestOpticalPotentialSign(t *testing.T) {
	a := NewAtom("Rb87")
	const intensity = 1e7 // W/m^2

	// 1064 nm sits far red of both D lines: attractive potential.
	red := a.OpticalPotentialAtWavelength(intensity, 1064e-9)
	assert.Negative(t, red)

	// 532 nm is blue of both lines: repulsive.
	blue := a.OpticalPotentialAtWavelength(intensity, 532e-9)
	assert.Positive(t, blue)
}

func TestOpticalPotentialLinearInIntensity(t *testing.T) {
	a := NewAtom("Rb87")
	u1 := a.OpticalPotentialAtWavelength(1e6, 1064e-9)
	u2 := a.OpticalPotentialAtWavelength(2e6, 1064e-9)
	assert.InEpsilon(t, 2*u1, u2, 1e-12)
}
