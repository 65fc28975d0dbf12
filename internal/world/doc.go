// Package world defines the simulation data model: circular conductive
// and insulating bodies, the mobile-electron and proton-lattice layout
// rules for conductors, and the World aggregate that the stepping
// pipeline mutates in place.
//
// Bodies are tagged variants: a [Conductor] carries an integer charge
// offset, a grounded flag, and angular layouts for its mobile electrons
// and fixed proton lattice; an [Insulator] carries only user-painted
// static point charges. Invalid combinations (an insulator with an
// offset, a conductor with painted charges) are unrepresentable.
//
// All randomized layout phases come from an explicitly passed
// *rand.Rand, so simulations are reproducible given a seed.
package world
