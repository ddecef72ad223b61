package math

import "math"

// Quat represents a rotation as a quaternion.
// Components are stored as X, Y, Z, W where W is the scalar part.
type Quat struct {
	X, Y, Z, W float32
}

// QuatIdentity returns an identity quaternion (no rotation).
func QuatIdentity() Quat {
	return Quat{X: 0, Y: 0, Z: 0, W: 1}
}

// QuatFromAxisAngle creates a quaternion from axis-angle rotation.
// axis should be normalized, angle is in radians.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	halfAngle := angle / 2
	s := float32(math.Sin(float64(halfAngle)))
	return Quat{
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
		W: float32(math.Cos(float64(halfAngle))),
	}
}

// QuatFromAxes creates a quaternion from three orthonormal basis vectors,
// the local X, Y and Z axes expressed in the parent frame.
func QuatFromAxes(xAxis, yAxis, zAxis Vec3) Quat {
	// The axes are the columns of the rotation matrix.
	m00, m01, m02 := xAxis.X, yAxis.X, zAxis.X
	m10, m11, m12 := xAxis.Y, yAxis.Y, zAxis.Y
	m20, m21, m22 := xAxis.Z, yAxis.Z, zAxis.Z

	trace := m00 + m11 + m22
	if trace > 0 {
		s := float32(math.Sqrt(float64(trace + 1)))
		w := s / 2
		s = 0.5 / s
		return Quat{(m21 - m12) * s, (m02 - m20) * s, (m10 - m01) * s, w}
	}

	switch {
	case m00 >= m11 && m00 >= m22:
		s := float32(math.Sqrt(float64(1 + m00 - m11 - m22)))
		x := s / 2
		s = 0.5 / s
		return Quat{x, (m01 + m10) * s, (m02 + m20) * s, (m21 - m12) * s}
	case m11 >= m22:
		s := float32(math.Sqrt(float64(1 + m11 - m00 - m22)))
		y := s / 2
		s = 0.5 / s
		return Quat{(m01 + m10) * s, y, (m12 + m21) * s, (m02 - m20) * s}
	default:
		s := float32(math.Sqrt(float64(1 + m22 - m00 - m11)))
		z := s / 2
		s = 0.5 / s
		return Quat{(m02 + m20) * s, (m12 + m21) * s, z, (m10 - m01) * s}
	}
}

// Normalize returns a normalized quaternion.
func (q Quat) Normalize() Quat {
	length := float32(math.Sqrt(float64(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)))
	if length < 0.0001 {
		return QuatIdentity()
	}
	invLen := 1.0 / length
	return Quat{
		X: q.X * invLen,
		Y: q.Y * invLen,
		Z: q.Z * invLen,
		W: q.W * invLen,
	}
}

// Dot returns the dot product of two quaternions.
func (q Quat) Dot(other Quat) float32 {
	return q.X*other.X + q.Y*other.Y + q.Z*other.Z + q.W*other.W
}

// Mul multiplies two quaternions (combines rotations).
func (q Quat) Mul(other Quat) Quat {
	return Quat{
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}
}

// Inverse returns the inverse rotation. For a unit quaternion this is the
// conjugate; non-unit quaternions are handled via the squared norm.
func (q Quat) Inverse() Quat {
	n := q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W
	if n == 0 {
		return QuatIdentity()
	}
	inv := 1.0 / n
	return Quat{X: -q.X * inv, Y: -q.Y * inv, Z: -q.Z * inv, W: q.W * inv}
}

// Rotate applies the rotation to a vector.
func (q Quat) Rotate(v Vec3) Vec3 {
	// v' = v + 2w(u x v) + 2(u x (u x v)), with u the vector part.
	u := Vec3{q.X, q.Y, q.Z}
	uv := u.Cross(v)
	uuv := u.Cross(uv)
	return v.Add(uv.Scale(2 * q.W)).Add(uuv.Scale(2))
}

// Roll returns the rotation about the Z axis, without projecting the
// quaternion onto that axis first. For a camera that looks down local -Z
// this is the angle a viewer would call "roll".
func (q Quat) Roll() float32 {
	return float32(math.Atan2(
		float64(2*(q.X*q.Y+q.W*q.Z)),
		float64(q.W*q.W+q.X*q.X-q.Y*q.Y-q.Z*q.Z),
	))
}

// Pitch returns the rotation about the X axis, without reprojection.
func (q Quat) Pitch() float32 {
	return float32(math.Atan2(
		float64(2*(q.Y*q.Z+q.W*q.X)),
		float64(q.W*q.W-q.X*q.X-q.Y*q.Y+q.Z*q.Z),
	))
}

// Yaw returns the rotation about the Y axis, without reprojection.
func (q Quat) Yaw() float32 {
	s := -2 * (q.X*q.Z - q.W*q.Y)
	// Guard asin against drift just outside [-1, 1].
	if s > 1 {
		s = 1
	} else if s < -1 {
		s = -1
	}
	return float32(math.Asin(float64(s)))
}

// ToMat4 converts the quaternion to a 4x4 rotation matrix.
func (q Quat) ToMat4() Mat4 {
	q = q.Normalize()

	xx := q.X * q.X
	xy := q.X * q.Y
	xz := q.X * q.Z
	xw := q.X * q.W
	yy := q.Y * q.Y
	yz := q.Y * q.Z
	yw := q.Y * q.W
	zz := q.Z * q.Z
	zw := q.Z * q.W

	return Mat4{
		1 - 2*(yy+zz), 2 * (xy + zw), 2 * (xz - yw), 0,
		2 * (xy - zw), 1 - 2*(xx+zz), 2 * (yz + xw), 0,
		2 * (xz + yw), 2 * (yz - xw), 1 - 2*(xx+yy), 0,
		0, 0, 0, 1,
	}
}

// LookAtOrientation returns the orientation of a viewer at eye looking at
// target, keeping the given up direction as the fixed yaw axis. The viewer
// convention is the usual rendering one: local -Z is forward, local +Y up.
func LookAtOrientation(eye, target, up Vec3) Quat {
	zAxis := eye.Sub(target).Normalize()
	xAxis := up.Cross(zAxis)
	if xAxis.Length() < 1e-6 {
		// Looking straight along up; any perpendicular right vector works.
		xAxis = Vec3{Y: 1}.Cross(zAxis)
	}
	xAxis = xAxis.Normalize()
	yAxis := zAxis.Cross(xAxis)
	return QuatFromAxes(xAxis, yAxis, zAxis)
}
