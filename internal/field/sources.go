// Package field evaluates the pairwise Coulomb interaction between every
// charge source in the world and advances mobile electrons along their
// body's surface. It also provides the scalar potential sampling used by
// the grounding controller.
package field

import (
	"math"

	"github.com/san-kum/chargesim/internal/world"
)

// SourceKind categorizes a point charge for the softening and exclusion
// rules, which differ by charge-pair category.
type SourceKind uint8

const (
	// SourceElectron is a mobile electron on a conductor.
	SourceElectron SourceKind = iota
	// SourceProton is a fixed positive lattice point on a conductor.
	SourceProton
	// SourceStaticPos is a user-painted positive charge on an insulator.
	SourceStaticPos
	// SourceStaticNeg is a user-painted negative charge on an insulator.
	SourceStaticNeg
)

// Mobile reports whether the source moves (only electrons do).
func (k SourceKind) Mobile() bool { return k == SourceElectron }

// Source is one point charge flattened out of the body tree for the
// per-tick force and potential sums.
type Source struct {
	Kind SourceKind
	Body int // index into World.Bodies
	Idx  int // angle index for electrons; unused otherwise
	Pos  world.Vec2
	Sign float64 // charge in elementary units: +1 or -1
}

// Gather flattens every charge source in the world: mobile electrons
// and proton lattices of conductors, painted charges of insulators.
func Gather(w *world.World) []Source {
	var out []Source
	for bi, b := range w.Bodies {
		switch t := b.(type) {
		case *world.Conductor:
			for i, th := range t.Angles {
				out = append(out, Source{Kind: SourceElectron, Body: bi, Idx: i, Pos: t.PointAt(th), Sign: -1})
			}
			for _, th := range t.ProtonAngles {
				out = append(out, Source{Kind: SourceProton, Body: bi, Pos: t.PointAt(th), Sign: +1})
			}
		case *world.Insulator:
			for _, rel := range t.StaticPosRel {
				out = append(out, Source{Kind: SourceStaticPos, Body: bi, Pos: t.Pos.Add(rel), Sign: +1})
			}
			for _, rel := range t.StaticNegRel {
				out = append(out, Source{Kind: SourceStaticNeg, Body: bi, Pos: t.Pos.Add(rel), Sign: -1})
			}
		}
	}
	return out
}

// PotentialAt sums the softened scalar Coulomb potential of every
// source at point p, in volts. The softening keeps coincident points
// finite and keeps surface averages smooth against the discrete
// lattice.
func PotentialAt(srcs []Source, p world.Vec2) float64 {
	soft2 := potentialSoft * MetersPerPixel * potentialSoft * MetersPerPixel
	v := 0.0
	for _, s := range srcs {
		d := s.Pos.Sub(p)
		dx := d.X * MetersPerPixel
		dy := d.Y * MetersPerPixel
		r := math.Sqrt(dx*dx + dy*dy + soft2)
		v += Coulomb * s.Sign * Elementary / r
	}
	return v
}
