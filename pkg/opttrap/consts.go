package opttrap

import "math"

// Physical constants, CODATA 2018 / SI exact values.
const (
	planckH    = 6.62607015e-34  // J s
	lightSpeed = 299792458.0     // m/s
	boltzmannK = 1.380649e-23    // J/K
	gravAccel  = 9.80665         // m/s^2
	bohrRadius = 5.29177210903e-11 // m
)

var (
	hbar = planckH / (2 * math.Pi)

	// gyromagneticClassical converts the conventional 1.4 MHz/G electron
	// gyromagnetic ratio into angular frequency per tesla.
	gyromagneticClassical = 2 * math.Pi * 1.4e6 * 1e4 // rad/s per T
)
