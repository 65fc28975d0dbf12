package contact

import (
	"math"
	"sort"

	"github.com/san-kum/chargesim/internal/world"
)

// minRadius guards the proportional split against degenerate geometry.
const minRadius = 1e-6

// Apportion splits the total charge of a touching conductor cluster
// across its members proportional to radius (capacitance of a sphere
// scales with radius, so larger bodies absorb more of the shared net
// charge). The result is integer-exact: sum(out) == sum(offsets).
//
// Each proportional target is floored; the leftover integer remainder is
// handed out one unit at a time, to the largest fractional remainders
// first when positive and the smallest first when negative. Exact
// fractional ties break by ascending member index. Finally every
// allocation is clamped to the per-conductor offset bound, pushing any
// clipped units to members that still have headroom; since every input
// offset respects the bound, the cluster total always fits.
func Apportion(offsets []int, radii []float64) []int {
	n := len(offsets)
	out := make([]int, n)
	if n == 0 {
		return out
	}

	sum := 0
	for _, o := range offsets {
		sum += o
	}

	sumR := 0.0
	for _, r := range radii {
		sumR += math.Max(minRadius, r)
	}
	if sumR <= 0 {
		copy(out, offsets)
		return out
	}

	fracs := make([]float64, n)
	allocated := 0
	for i := range out {
		target := float64(sum) * math.Max(minRadius, radii[i]) / sumR
		base := math.Floor(target)
		out[i] = int(base)
		fracs[i] = target - base
		allocated += out[i]
	}

	rem := sum - allocated
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	if rem > 0 {
		sort.SliceStable(order, func(a, b int) bool {
			if fracs[order[a]] != fracs[order[b]] {
				return fracs[order[a]] > fracs[order[b]]
			}
			return order[a] < order[b]
		})
		for i := 0; rem > 0; i = (i + 1) % n {
			out[order[i]]++
			rem--
		}
	} else if rem < 0 {
		sort.SliceStable(order, func(a, b int) bool {
			if fracs[order[a]] != fracs[order[b]] {
				return fracs[order[a]] < fracs[order[b]]
			}
			return order[a] < order[b]
		})
		for i := 0; rem < 0; i = (i + 1) % n {
			out[order[i]]--
			rem++
		}
	}

	clampAllocations(out)
	return out
}

// clampAllocations enforces |out[i]| <= DefaultElectronCount while
// preserving the sum, moving clipped units to members with headroom in
// ascending index order.
func clampAllocations(out []int) {
	const bound = world.DefaultElectronCount

	residue := 0
	for i, v := range out {
		if v > bound {
			residue += v - bound
			out[i] = bound
		} else if v < -bound {
			residue += v + bound
			out[i] = -bound
		}
	}

	for residue > 0 {
		moved := false
		for i := range out {
			if residue == 0 {
				break
			}
			if out[i] < bound {
				out[i]++
				residue--
				moved = true
			}
		}
		if !moved {
			return
		}
	}
	for residue < 0 {
		moved := false
		for i := range out {
			if residue == 0 {
				break
			}
			if out[i] > -bound {
				out[i]--
				residue++
				moved = true
			}
		}
		if !moved {
			return
		}
	}
}
