package math

import "math"

// Angle constants as float32, to avoid per-call conversions.
const (
	Pi     = float32(math.Pi)
	HalfPi = float32(math.Pi / 2)
	TwoPi  = float32(2 * math.Pi)
)

// WrapAngle maps an angle into [0, 2*pi).
func WrapAngle(angle float32) float32 {
	a := float32(math.Mod(float64(angle), float64(TwoPi)))
	if a < 0 {
		a += TwoPi
	}
	// Rounding back to float32 can land on exactly 2*pi for inputs a hair
	// below a multiple of it; the interval is half-open.
	if a >= TwoPi {
		a = 0
	}
	return a
}
