package world

import (
	"math"
	"math/rand"
	"testing"
)

func TestWrapAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2},
		{5 * math.Pi, math.Pi},
		{2 * math.Pi, 0},
	}

	for _, tt := range tests {
		got := WrapAngle(tt.in)
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("WrapAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
		if got <= -math.Pi || got > math.Pi {
			t.Errorf("WrapAngle(%v) = %v outside (-pi, pi]", tt.in, got)
		}
	}
}

func TestTargetElectronCount(t *testing.T) {
	tests := []struct {
		radius float64
		want   int
	}{
		{DefaultRadius, DefaultElectronCount},
		{DefaultRadius * 2, DefaultElectronCount * 2},
		{DefaultRadius / 2, DefaultElectronCount / 2},
		{0.1, minElectronCount},
		{1e6, maxElectronCount},
	}

	for _, tt := range tests {
		if got := TargetElectronCount(tt.radius); got != tt.want {
			t.Errorf("TargetElectronCount(%v) = %d, want %d", tt.radius, got, tt.want)
		}
	}
}

func TestConductorLayoutCounts(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	tests := []struct {
		name        string
		offset      int
		wantProtons int
	}{
		{"neutral", 0, 64},
		{"deficit", 4, 68},
		{"surplus", -2, 62},
		{"deep surplus floors at zero", -200, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewConductor(Vec2{0, 0}, DefaultRadius, tt.offset, false, rng)
			if len(c.Angles) != DefaultElectronCount {
				t.Errorf("electron count = %d, want %d", len(c.Angles), DefaultElectronCount)
			}
			if len(c.ProtonAngles) != tt.wantProtons {
				t.Errorf("proton count = %d, want %d", len(c.ProtonAngles), tt.wantProtons)
			}
			for _, a := range c.Angles {
				if a <= -math.Pi || a > math.Pi {
					t.Fatalf("angle %v outside (-pi, pi]", a)
				}
			}
		})
	}
}

func TestSyncLayoutKeepsExistingAngles(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	c := NewConductor(Vec2{0, 0}, DefaultRadius, 0, false, rng)

	marker := []float64{0.1, -0.2, 0.3}
	copy(c.Angles, marker)

	// Growing the body adds electrons without moving the old ones.
	c.R = DefaultRadius * 1.5
	c.SyncLayout()

	if len(c.Angles) != TargetElectronCount(c.R) {
		t.Fatalf("electron count = %d, want %d", len(c.Angles), TargetElectronCount(c.R))
	}
	for i, want := range marker {
		if c.Angles[i] != want {
			t.Errorf("angle[%d] = %v, want %v (existing angles must survive by index)", i, c.Angles[i], want)
		}
	}

	// Shrinking truncates from the tail.
	c.R = DefaultRadius / 2
	c.SyncLayout()
	if len(c.Angles) != TargetElectronCount(c.R) {
		t.Fatalf("electron count after shrink = %d, want %d", len(c.Angles), TargetElectronCount(c.R))
	}
	if c.Angles[0] != marker[0] {
		t.Errorf("angle[0] = %v, want %v after shrink", c.Angles[0], marker[0])
	}
}

func TestMakePair(t *testing.T) {
	if p := MakePair(3, 1); p.A != 1 || p.B != 3 {
		t.Errorf("MakePair(3,1) = %+v, want {1 3}", p)
	}
	if MakePair(1, 3) != MakePair(3, 1) {
		t.Error("pair keys must be order-independent")
	}
}

func TestAllNeutral(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	w := New()
	if w.AllNeutral() {
		t.Error("empty world must not report all-neutral")
	}

	w.Bodies = append(w.Bodies, NewConductor(Vec2{0, 0}, 50, 0, false, rng))
	in := NewInsulator(Vec2{200, 0}, 40)
	in.PaintPos(Vec2{1, 0})
	in.PaintNeg(Vec2{-1, 0})
	w.Bodies = append(w.Bodies, in)

	if !w.AllNeutral() {
		t.Error("expected all-neutral world")
	}

	in.PaintPos(Vec2{0, 2})
	if w.AllNeutral() {
		t.Error("unbalanced insulator must break neutrality")
	}
}

func TestRemoveBodyInvalidatesContacts(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	w := New()
	for i := 0; i < 3; i++ {
		w.Bodies = append(w.Bodies, NewConductor(Vec2{float64(i) * 200, 0}, 50, 0, false, rng))
	}
	w.PrevTouching[MakePair(0, 1)] = struct{}{}

	w.RemoveBody(0)

	if len(w.Bodies) != 2 {
		t.Fatalf("body count = %d, want 2", len(w.Bodies))
	}
	if len(w.PrevTouching) != 0 {
		t.Error("deletion must clear cached contact pairs")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	w := New()
	c := NewConductor(Vec2{0, 0}, 50, 3, true, rng)
	w.Bodies = append(w.Bodies, c)
	w.PrevTouching[MakePair(0, 1)] = struct{}{}

	cp := w.Clone()
	if cp.Fingerprint() != w.Fingerprint() {
		t.Fatal("clone must fingerprint identically")
	}

	cc := cp.Bodies[0].(*Conductor)
	cc.Angles[0] = 1.234
	cc.Offset = -7
	if w.Bodies[0].(*Conductor).Angles[0] == 1.234 {
		t.Error("clone shares angle storage with original")
	}
	if w.Bodies[0].(*Conductor).Offset == -7 {
		t.Error("clone shares offset with original")
	}
}

func TestFingerprintSensitivity(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	w := New()
	w.Bodies = append(w.Bodies, NewConductor(Vec2{0, 0}, 50, 1, false, rng))

	base := w.Fingerprint()
	if w.Fingerprint() != base {
		t.Fatal("fingerprint must be deterministic")
	}

	w.Bodies[0].(*Conductor).Angles[0] += 1e-9
	if w.Fingerprint() == base {
		t.Error("fingerprint must change when an angle changes")
	}
}
