package world

import "math"

// Vec2 is a 2D point or displacement in pixel units.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) LenSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

func (v Vec2) Len() float64 {
	return math.Sqrt(v.LenSq())
}

func (v Vec2) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// WrapAngle normalizes an angle into (-pi, pi].
func WrapAngle(th float64) float64 {
	th = math.Mod(th+math.Pi, 2*math.Pi)
	if th <= 0 {
		th += 2 * math.Pi
	}
	return th - math.Pi
}
