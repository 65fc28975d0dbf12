package field

import (
	"math"

	"github.com/san-kum/chargesim/internal/world"
)

type angleDelta struct {
	body, idx int
	dth       float64
}

// Integrate advances every mobile electron by one tick of length dt
// seconds. Forces are evaluated against a snapshot of all positions and
// applied after the full sweep, so the result does not depend on body
// order.
func Integrate(w *world.World, dt float64) {
	if dt <= 0 {
		return
	}

	srcs := Gather(w)

	neutral := make([]bool, len(w.Bodies))
	selfSoft := make([]float64, len(w.Bodies))
	for i, b := range w.Bodies {
		c, ok := b.(*world.Conductor)
		if !ok {
			continue
		}
		neutral[i] = c.Offset == 0
		if n := len(c.Angles); n > 0 {
			selfSoft[i] = sameBodySpacingFactor * c.R * 2 * math.Pi / float64(n)
		}
	}

	floor2 := minDist * MetersPerPixel * minDist * MetersPerPixel

	deltas := make([]angleDelta, 0, len(srcs))
	for _, e := range srcs {
		if e.Kind != SourceElectron {
			continue
		}
		c := w.Bodies[e.Body].(*world.Conductor)
		th := c.Angles[e.Idx]

		var ex, ey float64
		for _, s := range srcs {
			if s.Body == e.Body && s.Kind == SourceElectron && s.Idx == e.Idx {
				continue
			}
			soft, skip := pairSoftening(e, s, neutral, selfSoft)
			if skip {
				continue
			}

			// Displacement from source to electron, in meters.
			dx := (e.Pos.X - s.Pos.X) * MetersPerPixel
			dy := (e.Pos.Y - s.Pos.Y) * MetersPerPixel
			sm := soft * MetersPerPixel
			r2 := dx*dx + dy*dy + sm*sm
			if r2 < floor2 {
				r2 = floor2
			}
			inv := 1.0 / (r2 * math.Sqrt(r2))
			q := Coulomb * s.Sign * Elementary
			ex += q * dx * inv
			ey += q * dy * inv
		}

		et := -math.Sin(th)*ex + math.Cos(th)*ey
		dth := Mobility * (-Elementary * et) * dt
		if dth > MaxStep {
			dth = MaxStep
		} else if dth < -MaxStep {
			dth = -MaxStep
		}
		deltas = append(deltas, angleDelta{body: e.Body, idx: e.Idx, dth: dth})
	}

	for _, d := range deltas {
		c := w.Bodies[d.body].(*world.Conductor)
		c.Angles[d.idx] = world.WrapAngle(c.Angles[d.idx] + d.dth)
	}
}

// pairSoftening returns the softening length (pixels) for the term
// between electron e and source s, or skip=true when the term is
// omitted. All cross terms between two mutually neutral conductors are
// skipped.
func pairSoftening(e, s Source, neutral []bool, selfSoft []float64) (soft float64, skip bool) {
	sameBody := s.Body == e.Body
	if !sameBody && neutral[e.Body] && neutral[s.Body] {
		return 0, true
	}

	if s.Kind.Mobile() {
		if sameBody {
			return selfSoft[e.Body], false
		}
		return crossElectronSoft, false
	}

	if sameBody {
		return 0, false
	}
	return crossBodySoft, false
}
