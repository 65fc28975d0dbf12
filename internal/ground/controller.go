// Package ground drives grounded conductors toward zero average surface
// potential, one electron per tick, with a dead zone so the offset does
// not hunt around the target.
package ground

import (
	"math"
	"math/rand"

	"github.com/san-kum/chargesim/internal/field"
	"github.com/san-kum/chargesim/internal/world"
)

const (
	// Samples is the number of equally spaced surface points used to
	// estimate the average potential of a grounded conductor.
	Samples = 48

	// DeadZone is the bang-bang threshold, in offset units: corrections
	// smaller than this are ignored, which stops the controller from
	// oscillating once the potential sits inside the band.
	DeadZone = 0.6
)

// Adjustment records one grounding commit, for logging.
type Adjustment struct {
	Body   int
	Vavg   float64
	Delta  int
	Offset int
}

// Adjust runs the grounding pass: for every grounded conductor it
// samples the average surface potential against every charge source in
// the world, converts the error to at most a one-unit offset change, and
// on commit re-equilibrates the body's layout. Un-grounded conductors
// and insulators are never touched.
func Adjust(w *world.World, rng *rand.Rand) []Adjustment {
	srcs := field.Gather(w)

	var out []Adjustment
	for bi, b := range w.Bodies {
		c, ok := b.(*world.Conductor)
		if !ok || !c.Grounded {
			continue
		}

		vavg := averagePotential(srcs, c)

		// Potential change per unit of offset at the body's own surface.
		alpha := field.Coulomb * field.Elementary / (c.R * field.MetersPerPixel)
		delta := bangBang(-vavg / alpha)
		if delta == 0 {
			continue
		}

		next := clampOffset(c.Offset + delta)
		if next == c.Offset {
			continue
		}

		c.Offset = next
		c.Relayout(rng)
		out = append(out, Adjustment{Body: bi, Vavg: vavg, Delta: delta, Offset: next})
	}
	return out
}

func averagePotential(srcs []field.Source, c *world.Conductor) float64 {
	sum := 0.0
	for i := 0; i < Samples; i++ {
		th := 2 * math.Pi * float64(i) / Samples
		sum += field.PotentialAt(srcs, c.PointAt(th))
	}
	return sum / Samples
}

func bangBang(deltaFloat float64) int {
	switch {
	case deltaFloat > DeadZone:
		return 1
	case deltaFloat < -DeadZone:
		return -1
	default:
		return 0
	}
}

func clampOffset(v int) int {
	if v > world.DefaultElectronCount {
		return world.DefaultElectronCount
	}
	if v < -world.DefaultElectronCount {
		return -world.DefaultElectronCount
	}
	return v
}
