// Package contact detects touching conductor pairs, redistributes charge
// across connected touching clusters on new contact, and manages the
// global motion pause with resume hysteresis.
package contact

import (
	"math"
	"math/rand"
	"sort"

	"github.com/san-kum/chargesim/internal/world"
)

const (
	// TouchSlack is the gap, in pixels, at or below which a conductor
	// pair counts as touching.
	TouchSlack = 0.5

	// ResumeGap is the minimum gap, in pixels, at which motion resumes
	// even if some pair is still nominally touching.
	ResumeGap = 3.0
)

// Report summarizes one resolver pass, for logging and metrics.
type Report struct {
	Touching   int
	MinGap     float64
	NewContact bool
	Clusters   int
}

// Resolve runs the per-tick contact pass: rebuild the touching set,
// redistribute clusters on a rising edge, evaluate the pause
// hysteresis. PrevTouching is always replaced with the current set.
func Resolve(w *world.World, rng *rand.Rand) Report {
	touching := make(world.PairSet)
	minGap := math.Inf(1)

	for i := 0; i < len(w.Bodies); i++ {
		ci, ok := w.Bodies[i].(*world.Conductor)
		if !ok {
			continue
		}
		for j := i + 1; j < len(w.Bodies); j++ {
			cj, ok := w.Bodies[j].(*world.Conductor)
			if !ok {
				continue
			}
			gap := ci.Pos.Sub(cj.Pos).Len() - (ci.R + cj.R)
			if gap < minGap {
				minGap = gap
			}
			if gap <= TouchSlack {
				touching[world.MakePair(i, j)] = struct{}{}
			}
		}
	}

	rep := Report{Touching: len(touching), MinGap: minGap}

	for p := range touching {
		if !w.PrevTouching.Has(p) {
			rep.NewContact = true
			break
		}
	}

	if rep.NewContact {
		for _, comp := range components(touching) {
			redistribute(w, comp, rng)
			rep.Clusters++
		}
		// The pause is global, not per-cluster.
		w.ContactPaused = true
	}

	if w.ContactPaused {
		if len(touching) == 0 || minGap >= ResumeGap {
			w.ContactPaused = false
		}
	}

	w.PrevTouching = touching
	return rep
}

// redistribute re-apportions the summed offset of one touching cluster
// and resets each member to a fresh equilibrated layout.
func redistribute(w *world.World, members []int, rng *rand.Rand) {
	offsets := make([]int, len(members))
	radii := make([]float64, len(members))
	for k, idx := range members {
		c := w.Bodies[idx].(*world.Conductor)
		offsets[k] = c.Offset
		radii[k] = c.R
	}

	alloc := Apportion(offsets, radii)

	for k, idx := range members {
		c := w.Bodies[idx].(*world.Conductor)
		c.Offset = alloc[k]
		c.Relayout(rng)
	}
}

// components returns the connected components of the touching graph,
// each sorted ascending, ordered by smallest member. A-B plus B-C
// merges all three even if A and C never touch directly.
func components(touching world.PairSet) [][]int {
	adj := make(map[int][]int)
	for p := range touching {
		adj[p.A] = append(adj[p.A], p.B)
		adj[p.B] = append(adj[p.B], p.A)
	}

	nodes := make([]int, 0, len(adj))
	for n := range adj {
		nodes = append(nodes, n)
	}
	sort.Ints(nodes)

	seen := make(map[int]bool, len(nodes))
	var out [][]int

	for _, start := range nodes {
		if seen[start] {
			continue
		}
		comp := []int{}
		queue := []int{start}
		seen[start] = true
		for len(queue) > 0 {
			n := queue[0]
			queue = queue[1:]
			comp = append(comp, n)
			for _, m := range adj[n] {
				if !seen[m] {
					seen[m] = true
					queue = append(queue, m)
				}
			}
		}
		sort.Ints(comp)
		out = append(out, comp)
	}
	return out
}
