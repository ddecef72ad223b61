// Package property provides the editable value cells a view controller
// exposes: bounded floats with a clamp-or-wrap policy and vector cells.
// Hosts bind them to whatever settings panel they use; the controller only
// relies on Get/Set/Add keeping each cell inside its bounds.
package property

import (
	gomath "math"

	"github.com/robolens/robolens/pkg/math"
)

// Policy decides how a Float handles values outside [Min, Max].
type Policy int

const (
	// Unbounded cells accept any value.
	Unbounded Policy = iota
	// Clamp pins values to the nearest bound.
	Clamp
	// Wrap maps values into [Min, Max) by modular arithmetic.
	Wrap
)

// Float is a scalar cell. The bound policy is applied on every Set and Add,
// so a Float can never be observed outside its range.
type Float struct {
	value  float32
	min    float32
	max    float32
	policy Policy
}

// NewFloat creates an unbounded float cell.
func NewFloat(value float32) *Float {
	return &Float{value: value}
}

// NewWrappedFloat creates a float cell that wraps into [min, max).
func NewWrappedFloat(value, min, max float32) *Float {
	f := &Float{min: min, max: max, policy: Wrap}
	f.Set(value)
	return f
}

// Get returns the current value.
func (f *Float) Get() float32 {
	return f.value
}

// Set stores a value after applying the bound policy.
func (f *Float) Set(v float32) {
	f.value = f.apply(v)
}

// Add adds a delta, applying the bound policy to the result.
func (f *Float) Add(delta float32) {
	f.Set(f.value + delta)
}

// SetMin sets the lower bound and switches the cell to clamping.
func (f *Float) SetMin(min float32) {
	f.min = min
	f.policy = Clamp
	f.value = f.apply(f.value)
}

// SetMax sets the upper bound and switches the cell to clamping.
func (f *Float) SetMax(max float32) {
	f.max = max
	f.policy = Clamp
	f.value = f.apply(f.value)
}

// Min returns the lower bound.
func (f *Float) Min() float32 { return f.min }

// Max returns the upper bound.
func (f *Float) Max() float32 { return f.max }

func (f *Float) apply(v float32) float32 {
	switch f.policy {
	case Clamp:
		if v < f.min {
			return f.min
		}
		if v > f.max {
			return f.max
		}
	case Wrap:
		span := float64(f.max - f.min)
		w := gomath.Mod(float64(v-f.min), span)
		if w < 0 {
			w += span
		}
		out := float32(w) + f.min
		// The float64 to float32 conversion can round a value just under
		// the span up to exactly max; the interval is half-open.
		if out >= f.max {
			out = f.min
		}
		return out
	}
	return v
}

// Vector is a 3D vector cell.
type Vector struct {
	value math.Vec3
}

// NewVector creates a vector cell.
func NewVector(value math.Vec3) *Vector {
	return &Vector{value: value}
}

// Get returns the current value.
func (v *Vector) Get() math.Vec3 {
	return v.value
}

// Set stores a value.
func (v *Vector) Set(value math.Vec3) {
	v.value = value
}

// Add adds a delta to the stored vector.
func (v *Vector) Add(delta math.Vec3) {
	v.value = v.value.Add(delta)
}
