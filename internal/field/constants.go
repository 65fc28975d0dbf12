package field

const (
	// Coulomb is the Coulomb constant in N*m^2/C^2.
	Coulomb = 8.9875517923e9

	// Elementary is the elementary charge in coulombs.
	Elementary = 1.602176634e-19

	// MetersPerPixel converts pixel-space geometry to physical length:
	// one pixel is a millimeter, so a default body spans ten centimeters.
	MetersPerPixel = 1e-3

	// Mobility converts tangential force on an electron to angular
	// velocity. Tuned so ordinary same-body and neighbor fields produce
	// sub-clamp steps at 60 Hz; only sources inside roughly the minDist
	// floor reach MaxStep.
	Mobility = 3e22

	// MaxStep bounds the per-tick angular step regardless of field
	// spikes at close range.
	MaxStep = 0.25

	// crossBodySoft softens fixed-charge interactions across bodies so
	// nearly touching surfaces do not produce singular forces (pixels).
	crossBodySoft = 4.0

	// crossElectronSoft softens electron-electron interactions across
	// bodies; smaller than the fixed-charge term so induced-dipole
	// response survives at close range (pixels).
	crossElectronSoft = 1.0

	// sameBodySpacingFactor scales the local inter-electron arc spacing
	// into the same-body electron softening length, so electrons are not
	// repelled below their natural spacing.
	sameBodySpacingFactor = 0.5

	// minDist is the hard floor on any source distance (pixels); keeps
	// coincident points from dividing by zero.
	minDist = 0.5

	// potentialSoft smooths scalar potential sampling over roughly the
	// inter-charge arc spacing (pixels), so a sample point landing next
	// to one lattice charge does not swamp the surface average.
	potentialSoft = 5.0
)
