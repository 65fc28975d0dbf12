package world

// Pair is an unordered conductor index pair, normalized so A < B. Pairs
// are only meaningful within a single tick's body ordering; any body
// deletion invalidates them.
type Pair struct {
	A, B int
}

// MakePair builds a normalized pair from two distinct body indices.
func MakePair(i, j int) Pair {
	if i > j {
		i, j = j, i
	}
	return Pair{A: i, B: j}
}

// PairSet is a set of touching conductor pairs.
type PairSet map[Pair]struct{}

func (s PairSet) Has(p Pair) bool {
	_, ok := s[p]
	return ok
}

// World is the top-level simulation state. All mutation happens through
// the stepping pipeline or, between ticks, through the external
// collaborators described by the body lifecycle (creation, dragging,
// painting, deletion).
type World struct {
	Bodies []Body

	// ContactPaused is set while any conductor pair is in (or has just
	// exited) a charge-sharing contact event; motion and grounding are
	// suspended until the resume hysteresis clears it.
	ContactPaused bool

	// PrevTouching is the touching-pair set as of the previous tick,
	// keyed by body index. Used to detect rising-edge contact events.
	PrevTouching PairSet
}

func New() *World {
	return &World{PrevTouching: make(PairSet)}
}

// AllNeutral reports whether every body is net-neutral. An empty world
// is not considered all-neutral; the caller's short-circuit applies only
// to non-empty worlds.
func (w *World) AllNeutral() bool {
	if len(w.Bodies) == 0 {
		return false
	}
	for _, b := range w.Bodies {
		if !b.Neutral() {
			return false
		}
	}
	return true
}

// NetCharge returns the signed sum of all body charges, in elementary
// charge units (positive = electron deficit).
func (w *World) NetCharge() int {
	total := 0
	for _, b := range w.Bodies {
		switch t := b.(type) {
		case *Conductor:
			total += t.Offset
		case *Insulator:
			total += len(t.StaticPosRel) - len(t.StaticNegRel)
		}
	}
	return total
}

// RemoveBody deletes the body at index i. Indices shift, so the cached
// contact pairs are invalidated: stale pair keys referring to a reused
// index would corrupt rising-edge detection.
func (w *World) RemoveBody(i int) {
	if i < 0 || i >= len(w.Bodies) {
		return
	}
	w.Bodies = append(w.Bodies[:i], w.Bodies[i+1:]...)
	w.InvalidateContacts()
}

// InvalidateContacts clears the cached touching-pair set. Must be called
// whenever body indices may have shifted.
func (w *World) InvalidateContacts() {
	w.PrevTouching = make(PairSet)
}

// Clone returns a deep copy sharing no mutable state with the original.
func (w *World) Clone() *World {
	out := &World{
		Bodies:        make([]Body, len(w.Bodies)),
		ContactPaused: w.ContactPaused,
		PrevTouching:  make(PairSet, len(w.PrevTouching)),
	}
	for p := range w.PrevTouching {
		out.PrevTouching[p] = struct{}{}
	}
	for i, b := range w.Bodies {
		switch t := b.(type) {
		case *Conductor:
			c := *t
			c.Angles = append([]float64(nil), t.Angles...)
			c.ProtonAngles = append([]float64(nil), t.ProtonAngles...)
			out.Bodies[i] = &c
		case *Insulator:
			in := *t
			in.StaticPosRel = append([]Vec2(nil), t.StaticPosRel...)
			in.StaticNegRel = append([]Vec2(nil), t.StaticNegRel...)
			out.Bodies[i] = &in
		}
	}
	return out
}
