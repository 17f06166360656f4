package consts

const (
	LIGHTSPEED = 2.99792458e8 // Speed of light in vacuum (m/s)

	DefaultZ0       = 50.0   // Default port reference impedance (ohm)
	DefaultVelocity = 2e8    // Default line propagation velocity (m/s)
	MagnitudeFloor  = -100.0 // dB floor for matched/zero magnitude responses
	PivotTolerance  = 1e-15  // Singular pivot threshold for elimination
)
