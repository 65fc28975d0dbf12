package world

import (
	"math"
	"math/rand"
)

const (
	// DefaultElectronCount is the mobile-electron count of a conductor at
	// DefaultRadius, and the bound on |Offset| for every conductor.
	DefaultElectronCount = 64

	// DefaultRadius is the reference radius, in pixels, at which a
	// conductor carries exactly DefaultElectronCount electrons.
	DefaultRadius = 50.0

	minElectronCount = 8
	maxElectronCount = 256
)

// Kind discriminates the two body variants.
type Kind int

const (
	KindConductor Kind = iota
	KindInsulator
)

func (k Kind) String() string {
	if k == KindConductor {
		return "conductor"
	}
	return "insulator"
}

// Body is one circular object in the world. The concrete type is either
// *Conductor or *Insulator; the stepping pipeline type-switches where it
// needs variant-specific state.
type Body interface {
	Kind() Kind
	Center() Vec2
	SetCenter(Vec2)
	Radius() float64

	// Neutral reports whether the body contributes zero net charge.
	Neutral() bool
}

// TargetElectronCount returns the mobile-electron count for a conductor
// of radius r: proportional to radius (capacitance of a sphere scales
// with r), clamped so tiny and huge bodies stay tractable.
func TargetElectronCount(r float64) int {
	n := int(math.Round(DefaultElectronCount * r / DefaultRadius))
	if n < minElectronCount {
		n = minElectronCount
	}
	if n > maxElectronCount {
		n = maxElectronCount
	}
	return n
}

// Conductor is a circular conductive body. Net charge is an integer
// electron offset: positive means electron deficit (net positive),
// negative means surplus. Mobile electrons live on the circle as angles;
// the fixed positive lattice is a second angle list whose count tracks
// the offset.
type Conductor struct {
	Pos      Vec2
	R        float64
	Offset   int
	Grounded bool

	// Angles holds mobile-electron angular positions in (-pi, pi].
	Angles []float64

	// ProtonAngles holds the fixed positive lattice. Its length is
	// len(Angles) + Offset, floored at zero.
	ProtonAngles []float64

	phase        float64
	latticePhase float64
}

// NewConductor creates a conductor with a fresh electron layout. The
// random source seeds the layout phases so bodies do not start in phase
// with each other.
func NewConductor(pos Vec2, r float64, offset int, grounded bool, rng *rand.Rand) *Conductor {
	c := &Conductor{Pos: pos, R: r, Offset: offset, Grounded: grounded}
	c.Relayout(rng)
	return c
}

func (c *Conductor) Kind() Kind         { return KindConductor }
func (c *Conductor) Center() Vec2       { return c.Pos }
func (c *Conductor) SetCenter(p Vec2)   { c.Pos = p }
func (c *Conductor) Radius() float64    { return c.R }
func (c *Conductor) Neutral() bool      { return c.Offset == 0 }
func (c *Conductor) ElectronCount() int { return len(c.Angles) }

// ElectronPos returns the world position of electron i.
func (c *Conductor) ElectronPos(i int) Vec2 {
	return c.PointAt(c.Angles[i])
}

// PointAt returns the world position of the surface point at angle th.
func (c *Conductor) PointAt(th float64) Vec2 {
	return Vec2{c.Pos.X + c.R*math.Cos(th), c.Pos.Y + c.R*math.Sin(th)}
}

// Relayout discards the current layout and rebuilds it from scratch:
// new random phases, evenly spaced electrons and protons. Used when a
// contact or grounding event instantaneously re-equilibrates the body.
func (c *Conductor) Relayout(rng *rand.Rand) {
	c.phase = rng.Float64() * 2 * math.Pi
	c.latticePhase = rng.Float64() * 2 * math.Pi

	n := TargetElectronCount(c.R)
	c.Angles = evenAngles(n, c.phase)
	c.ProtonAngles = evenAngles(c.protonCount(n), c.latticePhase)
}

// SyncLayout resizes the layouts to match the current radius and offset
// without disturbing electrons that already exist: surviving electrons
// keep their angle by index, only newly added ones take an evenly spaced
// default plus the body's phase. The proton lattice is rebuilt evenly.
// Used when an external collaborator paints charge or resizes the body.
func (c *Conductor) SyncLayout() {
	n := TargetElectronCount(c.R)
	switch {
	case len(c.Angles) > n:
		c.Angles = c.Angles[:n]
	case len(c.Angles) < n:
		fresh := evenAngles(n, c.phase)
		for i := len(c.Angles); i < n; i++ {
			c.Angles = append(c.Angles, fresh[i])
		}
	}
	c.ProtonAngles = evenAngles(c.protonCount(n), c.latticePhase)
}

func (c *Conductor) protonCount(electrons int) int {
	n := electrons + c.Offset
	if n < 0 {
		n = 0
	}
	return n
}

func evenAngles(n int, phase float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = WrapAngle(2*math.Pi*float64(i)/float64(n) + phase)
	}
	return out
}

// Insulator is a circular insulating body carrying only user-painted
// point charges, stored as offsets from the center so the body can be
// dragged without rewriting them. The core never moves these charges.
type Insulator struct {
	Pos Vec2
	R   float64

	StaticPosRel []Vec2
	StaticNegRel []Vec2
}

func NewInsulator(pos Vec2, r float64) *Insulator {
	return &Insulator{Pos: pos, R: r}
}

func (in *Insulator) Kind() Kind       { return KindInsulator }
func (in *Insulator) Center() Vec2     { return in.Pos }
func (in *Insulator) SetCenter(p Vec2) { in.Pos = p }
func (in *Insulator) Radius() float64  { return in.R }

func (in *Insulator) Neutral() bool {
	return len(in.StaticPosRel) == len(in.StaticNegRel)
}

// PaintPos and PaintNeg bake a point charge into the body at the given
// offset from its center.
func (in *Insulator) PaintPos(rel Vec2) { in.StaticPosRel = append(in.StaticPosRel, rel) }
func (in *Insulator) PaintNeg(rel Vec2) { in.StaticNegRel = append(in.StaticNegRel, rel) }
