// Package camera provides the render camera that view controllers drive.
package camera

import (
	"github.com/robolens/robolens/pkg/math"
)

// Projection selects the camera projection type.
type Projection int

const (
	Perspective Projection = iota
	Orthographic
)

// Camera is a free camera: a world position plus an orientation quaternion.
// The camera looks down its local -Z axis with +Y up, the usual rendering
// convention. Controllers own the mapping from world conventions (Z-up
// robotics frames) onto this.
type Camera struct {
	position    math.Vec3
	orientation math.Quat
	projection  Projection

	// Perspective parameters, used by ProjectionMatrix.
	FOV    float32 // vertical field of view, radians
	Aspect float32 // width / height
	Near   float32
	Far    float32

	// Orthographic half-height, used when projection is Orthographic.
	OrthoScale float32
}

// New creates a camera at the origin with an identity orientation.
func New() *Camera {
	return &Camera{
		orientation: math.QuatIdentity(),
		projection:  Perspective,
		FOV:         0.785,
		Aspect:      16.0 / 9.0,
		Near:        0.05,
		Far:         1000,
		OrthoScale:  10,
	}
}

// SetPosition moves the camera.
func (c *Camera) SetPosition(p math.Vec3) {
	c.position = p
}

// Position returns the camera position.
func (c *Camera) Position() math.Vec3 {
	return c.position
}

// SetOrientation sets the camera orientation.
func (c *Camera) SetOrientation(q math.Quat) {
	c.orientation = q
}

// Orientation returns the camera orientation.
func (c *Camera) Orientation() math.Quat {
	return c.orientation
}

// SetProjection selects perspective or orthographic projection.
func (c *Camera) SetProjection(p Projection) {
	c.projection = p
}

// GetProjection returns the current projection type.
func (c *Camera) GetProjection() Projection {
	return c.projection
}

// LookAt points the camera at a world-space target, keeping world Z as the
// fixed up axis.
func (c *Camera) LookAt(target math.Vec3) {
	c.orientation = math.LookAtOrientation(c.position, target, math.Vec3{Z: 1})
}

// Forward returns the world-space direction the camera is facing.
func (c *Camera) Forward() math.Vec3 {
	return c.orientation.Rotate(math.Vec3{Z: -1})
}

// ViewMatrix returns the world-to-camera matrix.
func (c *Camera) ViewMatrix() math.Mat4 {
	rot := c.orientation.Inverse().ToMat4()
	return rot.Mul(math.Translate(-c.position.X, -c.position.Y, -c.position.Z))
}

// ProjectionMatrix returns the projection matrix for the current type.
func (c *Camera) ProjectionMatrix() math.Mat4 {
	if c.projection == Orthographic {
		h := c.OrthoScale
		w := h * c.Aspect
		return math.Ortho(-w, w, -h, h, c.Near, c.Far)
	}
	return math.Perspective(c.FOV, c.Aspect, c.Near, c.Far)
}
