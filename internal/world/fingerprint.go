package world

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint digests the externally observable simulation state into a
// single hash: body geometry, charge offsets, every electron and lattice
// angle, painted charges, and the pause flag. Two worlds with equal
// fingerprints are indistinguishable to a renderer. Used to assert
// no-op ticks in tests and to tag stored runs.
func (w *World) Fingerprint() uint64 {
	d := xxhash.New()
	var buf [8]byte

	u64 := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		d.Write(buf[:])
	}
	f64 := func(v float64) { u64(math.Float64bits(v)) }
	vec := func(v Vec2) { f64(v.X); f64(v.Y) }

	if w.ContactPaused {
		u64(1)
	} else {
		u64(0)
	}
	u64(uint64(len(w.Bodies)))

	for _, b := range w.Bodies {
		switch t := b.(type) {
		case *Conductor:
			u64(uint64(KindConductor))
			vec(t.Pos)
			f64(t.R)
			u64(uint64(int64(t.Offset)))
			if t.Grounded {
				u64(1)
			} else {
				u64(0)
			}
			u64(uint64(len(t.Angles)))
			for _, a := range t.Angles {
				f64(a)
			}
			u64(uint64(len(t.ProtonAngles)))
			for _, a := range t.ProtonAngles {
				f64(a)
			}
		case *Insulator:
			u64(uint64(KindInsulator))
			vec(t.Pos)
			f64(t.R)
			u64(uint64(len(t.StaticPosRel)))
			for _, p := range t.StaticPosRel {
				vec(p)
			}
			u64(uint64(len(t.StaticNegRel)))
			for _, p := range t.StaticNegRel {
				vec(p)
			}
		}
	}
	return d.Sum64()
}
