// Package view implements interactive camera view controllers for the
// robolens scene.
package view

import (
	"github.com/robolens/robolens/internal/engine/camera"
	"github.com/robolens/robolens/internal/property"
	"github.com/robolens/robolens/internal/tracking"
	"github.com/robolens/robolens/pkg/math"
)

// robotToCamera reconciles the Z-up robotics world convention with the
// render camera convention (Y up, looking down -Z).
var robotToCamera = math.QuatFromAxisAngle(math.Vec3{Y: 1}, -math.HalfPi).
	Mul(math.QuatFromAxisAngle(math.Vec3{Z: 1}, -math.HalfPi))

// Pitch stops just short of the poles where yaw and roll degenerate.
const (
	pitchLimitLow  = -math.HalfPi + 0.001
	pitchLimitHigh = math.HalfPi - 0.001
)

// Fixed axis terms of the composed orientation. Kept as the historical
// 1.57 literals rather than an exact half pi.
const (
	fixedPitch float32 = -1.57 // about camera Y
	fixedRoll  float32 = 1.57  // about camera X
)

// Pointer and wheel sensitivities, in radians or meters per count.
const (
	rotateSensitivity float32 = 0.005
	panSensitivity    float32 = 0.01
	dollySensitivity  float32 = 0.1
	wheelSensitivity  float32 = 0.01
)

const (
	statusDefault = "Left-Click: Rotate.  Middle-Click: Move X/Y.  Right-Click: Zoom.  Shift: More options."
	statusShift   = "Left-Click: Move X/Y.  Right-Click: Move Z."
)

var defaultHome = math.Vec3{X: -10, Y: 0, Z: 1}

// Config carries the tunable behavior of an FPSRollController.
type Config struct {
	// ComposeYaw folds the stored yaw into the computed camera orientation.
	// Historically the yaw field was tracked but never composed; leave this
	// false for that behavior.
	ComposeYaw bool

	// Home is the position the camera starts at and returns to on Reset.
	// The zero vector selects the default (-10, 0, 1).
	Home math.Vec3
}

// FPSRollController is a first-person view controller that keeps the camera
// anchored to a tracked reference frame. Pointer drags rotate and translate
// the camera; each tick folds the tracked frame's motion into the camera
// position and overwrites roll/yaw/pitch from the frame's orientation.
//
// All methods must be called from the thread that delivers input and ticks.
type FPSRollController struct {
	cam     *camera.Camera
	tracker *tracking.Tracker

	yawCell   *property.Float
	pitchCell *property.Float
	rollCell  *property.Float
	position  *property.Vector

	composeYaw bool
	home       math.Vec3

	status string
	cursor Cursor
}

// New creates a controller driving cam, following tracker's target frame.
func New(cam *camera.Camera, tracker *tracking.Tracker, cfg Config) *FPSRollController {
	home := cfg.Home
	if home == (math.Vec3{}) {
		home = defaultHome
	}

	pitch := property.NewFloat(0)
	pitch.SetMax(pitchLimitHigh)
	pitch.SetMin(pitchLimitLow)

	c := &FPSRollController{
		cam:        cam,
		tracker:    tracker,
		yawCell:    property.NewWrappedFloat(0, 0, math.TwoPi),
		pitchCell:  pitch,
		rollCell:   property.NewFloat(0),
		position:   property.NewVector(home),
		composeYaw: cfg.ComposeYaw,
		home:       home,
		status:     statusDefault,
		cursor:     CursorRotate3D,
	}

	tracker.OnReferenceMoved(func(delta math.Vec3) {
		c.position.Add(delta)
	})
	tracker.OnTargetFrameChanged(c.onTargetFrameChanged)

	return c
}

// OnActivate prepares the camera when this controller takes over the view.
func (c *FPSRollController) OnActivate() {
	c.cam.SetProjection(camera.Perspective)
}

// Camera returns the camera this controller drives.
func (c *FPSRollController) Camera() *camera.Camera {
	return c.cam
}

// YawAngle returns the stored yaw, always in [0, 2*pi).
func (c *FPSRollController) YawAngle() float32 { return c.yawCell.Get() }

// PitchAngle returns the stored pitch, always within the pole limits.
func (c *FPSRollController) PitchAngle() float32 { return c.pitchCell.Get() }

// RollAngle returns the stored roll.
func (c *FPSRollController) RollAngle() float32 { return c.rollCell.Get() }

// Position returns the stored camera position.
func (c *FPSRollController) Position() math.Vec3 { return c.position.Get() }

// SetPosition overwrites the stored camera position.
func (c *FPSRollController) SetPosition(p math.Vec3) { c.position.Set(p) }

// Status describes the gestures currently available, for a status bar.
func (c *FPSRollController) Status() string { return c.status }

// CursorHint returns the pointer shape for the current gesture.
func (c *FPSRollController) CursorHint() Cursor { return c.cursor }

// GetOrientation composes the camera-space orientation from the fixed axis
// convention. The stored pitch is not part of the composition, and yaw only
// is when ComposeYaw was set; the default reproduces the long-standing
// behavior where drag-rotate updates the fields but not the rendered view.
func (c *FPSRollController) GetOrientation() math.Quat {
	pitch := math.QuatFromAxisAngle(math.Vec3{Y: 1}, fixedPitch)
	roll := math.QuatFromAxisAngle(math.Vec3{X: 1}, fixedRoll)
	if c.composeYaw {
		// World-frame yaw goes on the left so it actually swings the view
		// direction about world Z.
		yaw := math.QuatFromAxisAngle(math.Vec3{Z: 1}, c.yawCell.Get())
		return yaw.Mul(roll).Mul(pitch)
	}
	return roll.Mul(pitch)
}

// UpdateCamera pushes the composed orientation and stored position to the
// camera.
func (c *FPSRollController) UpdateCamera() {
	c.cam.SetOrientation(c.GetOrientation())
	c.cam.SetPosition(c.position.Get())
}

// SetPropertiesFromCamera extracts yaw, pitch and position from a camera's
// current pose so that this controller would (approximately) reproduce it.
func (c *FPSRollController) SetPropertiesFromCamera(source *camera.Camera) {
	quat := source.Orientation().Mul(robotToCamera.Inverse())
	// The camera frame looks along -Z with +Y up, so rotation about Z reads
	// as the camera's roll and rotation about Y as its yaw.
	yaw := quat.Roll()
	pitch := quat.Yaw()

	direction := quat.Rotate(math.Vec3{Z: -1})

	// Facing the back hemisphere: fold pitch into the supplementary range
	// and flip yaw to keep the pair unambiguous across the +-90 degree
	// pitch boundary.
	if direction.Dot(math.Vec3{Z: -1}) < 0 {
		if pitch > math.HalfPi {
			pitch -= math.Pi
		} else if pitch < -math.HalfPi {
			pitch += math.Pi
		}

		yaw = -yaw

		if direction.Dot(math.Vec3{X: 1}) < 0 {
			yaw -= math.Pi
		} else {
			yaw += math.Pi
		}
	}

	c.pitchCell.Set(pitch)
	c.yawCell.Set(math.WrapAngle(yaw))
	c.position.Set(source.Position())
}

// Yaw adds an increment to the stored yaw, wrapping into [0, 2*pi).
func (c *FPSRollController) Yaw(angle float32) {
	c.yawCell.Add(angle)
}

// Pitch adds an increment to the stored pitch, clamped at the pole limits.
func (c *FPSRollController) Pitch(angle float32) {
	c.pitchCell.Add(angle)
}

// Roll is a no-op: roll is driven by the tracked frame's orientation on
// every tick, so a user increment would be clobbered immediately.
func (c *FPSRollController) Roll(angle float32) {
}

// Move translates the camera by (x, y, z) in its own frame: the displacement
// is rotated by the composed orientation before being added to the position.
func (c *FPSRollController) Move(x, y, z float32) {
	c.position.Add(c.GetOrientation().Rotate(math.Vec3{X: x, Y: y, Z: z}))
}

// HandleMouseEvent maps a pointer event onto camera motion. It reports
// whether anything moved, i.e. whether a redraw is needed.
func (c *FPSRollController) HandleMouseEvent(event MouseEvent) bool {
	state := event.Buttons()

	if state.Shift {
		c.status = statusShift
	} else {
		c.status = statusDefault
	}

	moved := false
	var diffX, diffY, wheel int32

	switch e := event.(type) {
	case MouseMove:
		diffX = e.X - e.LastX
		diffY = e.Y - e.LastY
		moved = true
	case MouseWheel:
		wheel = e.Delta
	}

	switch {
	case state.Left && !state.Shift:
		c.cursor = CursorRotate3D
		c.Yaw(float32(-diffX) * rotateSensitivity)
		c.Pitch(float32(diffY) * rotateSensitivity)
	case state.Middle || (state.Shift && state.Left):
		c.cursor = CursorMoveXY
		c.Move(float32(diffX)*panSensitivity, float32(-diffY)*panSensitivity, 0)
	case state.Right:
		c.cursor = CursorMoveZ
		c.Move(0, 0, float32(diffY)*dollySensitivity)
	default:
		if state.Shift {
			c.cursor = CursorMoveXY
		} else {
			c.cursor = CursorRotate3D
		}
	}

	if wheel != 0 {
		c.Move(0, 0, float32(-wheel)*wheelSensitivity)
		moved = true
	}

	return moved
}

// Update runs one frame-follow tick: base tracking first, then the node
// orientation reapply, the frame query, the field overwrite, and finally the
// camera write-back. A failed frame query freezes the fields but the
// write-back still happens, so the view holds rather than errors.
func (c *FPSRollController) Update(dt, simDT float32) {
	c.tracker.Update(dt, simDT)
	c.tracker.ApplyReferenceOrientation()

	if _, orient, err := c.tracker.Resolve(); err == nil {
		c.rollCell.Set(orient.Roll())
		c.yawCell.Set(orient.Yaw())
		c.pitchCell.Set(orient.Pitch())
	}

	c.UpdateCamera()
}

// LookAt points the camera at a world-space point and re-derives the stored
// fields from the result.
func (c *FPSRollController) LookAt(point math.Vec3) {
	c.cam.LookAt(point)
	c.SetPropertiesFromCamera(c.cam)
}

// Mimic adopts another controller's view: its target frame, reference pose
// and camera pose.
func (c *FPSRollController) Mimic(source *FPSRollController) {
	c.tracker.Mimic(source.tracker)
	c.SetPropertiesFromCamera(source.cam)
}

// Reset returns the camera to its home pose looking at the origin.
func (c *FPSRollController) Reset() {
	c.cam.SetPosition(c.home)
	c.cam.LookAt(math.Vec3{})
	c.SetPropertiesFromCamera(c.cam)

	// One pass is not enough right after a controller switch: the camera
	// ends up positioned correctly but pointing the wrong way for a frame.
	// Write the composed orientation back, then re-aim and re-extract.
	c.UpdateCamera()
	c.cam.LookAt(math.Vec3{})
	c.SetPropertiesFromCamera(c.cam)
}

func (c *FPSRollController) onTargetFrameChanged(oldPosition math.Vec3, _ math.Quat) {
	c.position.Add(oldPosition.Sub(c.tracker.ReferencePosition()))
}
