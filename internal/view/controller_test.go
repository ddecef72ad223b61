package view

import (
	gomath "math"
	"testing"

	"github.com/robolens/robolens/internal/engine/camera"
	"github.com/robolens/robolens/internal/tracking"
	"github.com/robolens/robolens/pkg/math"
)

func closeTo(a, b, tol float32) bool {
	return gomath.Abs(float64(a-b)) < float64(tol)
}

func vecCloseTo(a, b math.Vec3, tol float32) bool {
	return closeTo(a.X, b.X, tol) && closeTo(a.Y, b.Y, tol) && closeTo(a.Z, b.Z, tol)
}

// newTestController wires a controller to an empty frame manager, so frame
// lookups fail unless a test publishes the target frame.
func newTestController(cfg Config) (*FPSRollController, *tracking.FrameManager) {
	frames := tracking.NewFrameManager("odom")
	tracker := tracking.NewTracker(frames, nil, "base_link", nil)
	return New(camera.New(), tracker, cfg), frames
}

func TestYawWrap(t *testing.T) {
	c, _ := newTestController(Config{})

	for _, delta := range []float32{0.9, -2.5, 7.3, -0.001, 123.456} {
		for i := 0; i < 50; i++ {
			c.Yaw(delta)
			if got := c.YawAngle(); got < 0 || got >= math.TwoPi {
				t.Fatalf("yaw out of [0, 2pi) after Yaw(%v): %v", delta, got)
			}
		}
	}

	// A sub-ulp negative delta wraps to a value that rounds back up to
	// exactly 2*pi in float32; the interval stays half-open regardless.
	c.yawCell.Set(0)
	c.Yaw(-5.96e-8)
	if got := c.YawAngle(); got >= math.TwoPi {
		t.Errorf("yaw = %v, want < 2pi (%v)", got, math.TwoPi)
	}
}

func TestPitchClamp(t *testing.T) {
	c, _ := newTestController(Config{})

	for i := 0; i < 100; i++ {
		c.Pitch(0.5)
	}
	if got := c.PitchAngle(); got > pitchLimitHigh {
		t.Errorf("pitch exceeded upper limit: %v", got)
	}

	for i := 0; i < 100; i++ {
		c.Pitch(-0.5)
	}
	if got := c.PitchAngle(); got < pitchLimitLow {
		t.Errorf("pitch exceeded lower limit: %v", got)
	}
}

func TestRollIsNoOp(t *testing.T) {
	c, _ := newTestController(Config{})
	c.Roll(1.2)
	if got := c.RollAngle(); got != 0 {
		t.Errorf("Roll should not change stored roll, got %v", got)
	}
}

func TestDragRotate(t *testing.T) {
	c, _ := newTestController(Config{})

	moved := c.HandleMouseEvent(MouseMove{
		X: 200, Y: 50, LastX: 100, LastY: 50,
		State: ButtonState{Left: true},
	})
	if !moved {
		t.Fatalf("pointer move should request a redraw")
	}

	// dx=100 at 0.005 rad per count: yaw drops by 0.5 and wraps.
	if got := c.YawAngle(); !closeTo(got, math.TwoPi-0.5, 1e-4) {
		t.Errorf("yaw = %v, want %v", got, math.TwoPi-0.5)
	}
	if got := c.PitchAngle(); got != 0 {
		t.Errorf("pitch should be unchanged, got %v", got)
	}
	if c.CursorHint() != CursorRotate3D {
		t.Errorf("cursor = %v, want rotate", c.CursorHint())
	}
}

func TestDragPanAndDolly(t *testing.T) {
	c, _ := newTestController(Config{})
	start := c.Position()

	c.HandleMouseEvent(MouseMove{
		X: 10, Y: 0, LastX: 0, LastY: 0,
		State: ButtonState{Middle: true},
	})
	if c.CursorHint() != CursorMoveXY {
		t.Errorf("middle drag cursor = %v, want move XY", c.CursorHint())
	}
	panDelta := c.Position().Sub(start)
	want := c.GetOrientation().Rotate(math.Vec3{X: 0.1})
	if !vecCloseTo(panDelta, want, 1e-4) {
		t.Errorf("pan delta = %v, want %v", panDelta, want)
	}

	// Shift+left pans exactly like middle.
	c.SetPosition(start)
	c.HandleMouseEvent(MouseMove{
		X: 10, Y: 0, LastX: 0, LastY: 0,
		State: ButtonState{Left: true, Shift: true},
	})
	if got := c.Position().Sub(start); !vecCloseTo(got, want, 1e-4) {
		t.Errorf("shift+left pan delta = %v, want %v", got, want)
	}

	c.SetPosition(start)
	c.HandleMouseEvent(MouseMove{
		X: 0, Y: 10, LastX: 0, LastY: 0,
		State: ButtonState{Right: true},
	})
	if c.CursorHint() != CursorMoveZ {
		t.Errorf("right drag cursor = %v, want move Z", c.CursorHint())
	}
	dollyDelta := c.Position().Sub(start)
	wantDolly := c.GetOrientation().Rotate(math.Vec3{Z: 1})
	if !vecCloseTo(dollyDelta, wantDolly, 1e-4) {
		t.Errorf("dolly delta = %v, want %v", dollyDelta, wantDolly)
	}
}

func TestWheelZoom(t *testing.T) {
	c, _ := newTestController(Config{})
	start := c.Position()

	moved := c.HandleMouseEvent(MouseWheel{Delta: 100})
	if !moved {
		t.Fatalf("wheel motion should request a redraw")
	}

	delta := c.Position().Sub(start)
	want := c.GetOrientation().Rotate(math.Vec3{Z: -1})
	if !vecCloseTo(delta, want, 1e-4) {
		t.Errorf("wheel delta = %v, want %v", delta, want)
	}
	if !closeTo(delta.Length(), 1.0, 1e-3) {
		t.Errorf("wheel of 100 counts should move one unit, moved %v", delta.Length())
	}
}

func TestMoveIsOrientationRelative(t *testing.T) {
	c, _ := newTestController(Config{})
	start := c.Position()

	c.Move(1, 0, 0)
	delta := c.Position().Sub(start)

	// Under the fixed axis convention, camera-local X maps to world -Y,
	// not world X.
	if !vecCloseTo(delta, math.Vec3{Y: -1}, 0.01) {
		t.Errorf("Move(1,0,0) delta = %v, want about (0,-1,0)", delta)
	}
}

func TestStatusTextFollowsShift(t *testing.T) {
	c, _ := newTestController(Config{})

	c.HandleMouseEvent(MouseMove{State: ButtonState{Shift: true}})
	if c.Status() != statusShift {
		t.Errorf("shift status = %q", c.Status())
	}
	if c.CursorHint() != CursorMoveXY {
		t.Errorf("shift idle cursor = %v, want move XY", c.CursorHint())
	}

	c.HandleMouseEvent(MouseMove{})
	if c.Status() != statusDefault {
		t.Errorf("default status = %q", c.Status())
	}
	if c.CursorHint() != CursorRotate3D {
		t.Errorf("idle cursor = %v, want rotate", c.CursorHint())
	}
}

func TestRoundTripThroughCamera(t *testing.T) {
	c, _ := newTestController(Config{})

	source := camera.New()
	source.SetPosition(math.Vec3{X: 2.5, Y: -1, Z: 4})
	source.SetOrientation(c.GetOrientation())

	c.SetPropertiesFromCamera(source)
	c.UpdateCamera()

	if got := c.Camera().Position(); got != source.Position() {
		t.Errorf("position round trip: got %v, want %v", got, source.Position())
	}

	// Orientations match up to quaternion sign.
	dot := c.Camera().Orientation().Dot(source.Orientation())
	if gomath.Abs(float64(dot)) < 0.9999 {
		t.Errorf("orientation round trip: |dot| = %v, want ~1", dot)
	}
}

func TestSetPropertiesFromCameraBackHemisphere(t *testing.T) {
	c, _ := newTestController(Config{})

	// Aim the camera into the back hemisphere; extraction must still land
	// pitch inside the pole limits and yaw inside [0, 2pi).
	source := camera.New()
	source.SetPosition(math.Vec3{X: 5, Y: 1, Z: 2})
	source.LookAt(math.Vec3{X: 20, Y: 3, Z: 30})

	c.SetPropertiesFromCamera(source)

	if yaw := c.YawAngle(); yaw < 0 || yaw >= math.TwoPi {
		t.Errorf("yaw out of range: %v", yaw)
	}
	if pitch := c.PitchAngle(); pitch < pitchLimitLow || pitch > pitchLimitHigh {
		t.Errorf("pitch out of range: %v", pitch)
	}
	if got := c.Position(); got != source.Position() {
		t.Errorf("position = %v, want %v", got, source.Position())
	}
}

func TestComposeYawAffectsView(t *testing.T) {
	plain, _ := newTestController(Config{})
	composed, _ := newTestController(Config{ComposeYaw: true})

	plain.Yaw(math.HalfPi)
	composed.Yaw(math.HalfPi)

	baseForward := plain.GetOrientation().Rotate(math.Vec3{Z: -1})
	yawForward := composed.GetOrientation().Rotate(math.Vec3{Z: -1})

	// Faithful mode ignores the stored yaw entirely.
	if !vecCloseTo(baseForward, math.Vec3{X: 1}, 0.01) {
		t.Errorf("faithful forward = %v, want about +X", baseForward)
	}
	// Composed mode swings the view a quarter turn about world Z.
	if !vecCloseTo(yawForward, math.Vec3{Y: 1}, 0.01) {
		t.Errorf("composed forward = %v, want about +Y", yawForward)
	}
}

func TestComposeYawRoundTrip(t *testing.T) {
	c, _ := newTestController(Config{ComposeYaw: true})
	c.Yaw(1.0)
	c.UpdateCamera()

	other, _ := newTestController(Config{ComposeYaw: true})
	other.SetPropertiesFromCamera(c.Camera())
	// The fixed-axis terms use 1.57 rather than an exact half pi, which
	// leaks a couple of milliradians into the extraction.
	if got := other.YawAngle(); !closeTo(got, 1.0, 5e-3) {
		t.Errorf("extracted yaw = %v, want 1.0", got)
	}
}

func TestUpdateOverwritesAnglesFromFrame(t *testing.T) {
	c, frames := newTestController(Config{})

	orient := math.QuatFromAxisAngle(math.Vec3{X: 1}, 0.25)
	frames.SetTransform("base_link", math.Vec3{X: 1}, orient)

	c.Update(0.016, 0.016)

	if got := c.RollAngle(); !closeTo(got, orient.Roll(), 1e-4) {
		t.Errorf("roll = %v, want %v", got, orient.Roll())
	}
	if got := c.PitchAngle(); !closeTo(got, orient.Pitch(), 1e-4) {
		t.Errorf("pitch = %v, want %v", got, orient.Pitch())
	}
	if got := c.YawAngle(); !closeTo(got, math.WrapAngle(orient.Yaw()), 1e-4) {
		t.Errorf("yaw = %v, want %v", got, math.WrapAngle(orient.Yaw()))
	}
}

func TestUpdateFoldsFrameMotionIntoPosition(t *testing.T) {
	c, frames := newTestController(Config{})

	frames.SetTransform("base_link", math.Vec3{}, math.QuatIdentity())
	c.Update(0.016, 0.016)
	start := c.Position()

	frames.SetTransform("base_link", math.Vec3{X: 2, Y: 1}, math.QuatIdentity())
	c.Update(0.016, 0.016)

	if got := c.Position().Sub(start); got != (math.Vec3{X: 2, Y: 1}) {
		t.Errorf("frame motion fold = %v, want (2,1,0)", got)
	}
}

func TestFailedFrameLookupFreezesButWritesBack(t *testing.T) {
	c, _ := newTestController(Config{})

	c.Yaw(0.4)
	c.Pitch(0.2)
	yaw, pitch, roll := c.YawAngle(), c.PitchAngle(), c.RollAngle()
	pos := c.Position()

	// No frame was ever published; the lookup fails.
	c.Update(0.016, 0.016)

	if c.YawAngle() != yaw || c.PitchAngle() != pitch || c.RollAngle() != roll {
		t.Errorf("failed lookup changed angles")
	}
	if c.Position() != pos {
		t.Errorf("failed lookup changed position")
	}
	if got := c.Camera().Position(); got != pos {
		t.Errorf("camera write-back missing: camera at %v, want %v", got, pos)
	}
	dot := c.Camera().Orientation().Dot(c.GetOrientation())
	if gomath.Abs(float64(dot)) < 0.9999 {
		t.Errorf("camera write-back missing: orientation dot = %v", dot)
	}
}

func TestTargetFrameReanchor(t *testing.T) {
	frames := tracking.NewFrameManager("odom")
	tracker := tracking.NewTracker(frames, nil, "a", nil)
	c := New(camera.New(), tracker, Config{})

	frames.SetTransform("a", math.Vec3{X: 1, Y: 1, Z: 1}, math.QuatIdentity())
	frames.SetTransform("b", math.Vec3{}, math.QuatIdentity())
	c.Update(0, 0)
	start := c.Position()

	tracker.SetTargetFrame("b")

	// old reference (1,1,1) minus new reference (0,0,0) gets folded in.
	if got := c.Position().Sub(start); got != (math.Vec3{X: 1, Y: 1, Z: 1}) {
		t.Errorf("re-anchor delta = %v, want (1,1,1)", got)
	}
}

func TestResetRestoresHome(t *testing.T) {
	c, _ := newTestController(Config{})

	c.Move(3, -2, 5)
	c.Yaw(1)
	c.Reset()

	if got := c.Position(); got != defaultHome {
		t.Errorf("reset position = %v, want %v", got, defaultHome)
	}
	if got := c.Camera().Position(); got != defaultHome {
		t.Errorf("reset camera position = %v, want %v", got, defaultHome)
	}
	if yaw := c.YawAngle(); yaw < 0 || yaw >= math.TwoPi {
		t.Errorf("reset yaw out of range: %v", yaw)
	}
}

func TestMimic(t *testing.T) {
	frames := tracking.NewFrameManager("odom")
	gripperPos := math.Vec3{X: 2, Y: 1, Z: 0.5}
	gripperOrient := math.QuatFromAxisAngle(math.Vec3{Z: 1}, 0.4)
	frames.SetTransform("gripper", gripperPos, gripperOrient)

	srcTracker := tracking.NewTracker(frames, nil, "base_link", nil)
	src := New(camera.New(), srcTracker, Config{ComposeYaw: true})
	srcTracker.SetTargetFrame("gripper")
	src.SetPosition(math.Vec3{X: 4, Y: -3, Z: 2})
	src.Yaw(1.0)
	src.UpdateCamera()

	dstTracker := tracking.NewTracker(frames, nil, "base_link", nil)
	dst := New(camera.New(), dstTracker, Config{ComposeYaw: true})
	dst.Mimic(src)

	if got := dstTracker.TargetFrame(); got != "gripper" {
		t.Errorf("target frame = %q, want %q", got, "gripper")
	}
	if got := dstTracker.ReferencePosition(); !vecCloseTo(got, gripperPos, 1e-5) {
		t.Errorf("reference position = %v, want %v", got, gripperPos)
	}
	if dot := dstTracker.ReferenceOrientation().Dot(gripperOrient); gomath.Abs(float64(dot)) < 0.9999 {
		t.Errorf("reference orientation not adopted, |dot| = %v", gomath.Abs(float64(dot)))
	}

	if got := dst.Position(); !vecCloseTo(got, src.Position(), 1e-5) {
		t.Errorf("position = %v, want %v", got, src.Position())
	}
	// Tolerance for the 1.57 axis constants, as in the round-trip test.
	if got := dst.YawAngle(); !closeTo(got, src.YawAngle(), 5e-3) {
		t.Errorf("yaw = %v, want %v", got, src.YawAngle())
	}
	if got := dst.PitchAngle(); !closeTo(got, 0, 5e-3) {
		t.Errorf("pitch = %v, want 0", got)
	}

	// The adopted view must not jump: pushing the copied state to the
	// destination camera reproduces the source camera's pose.
	dst.UpdateCamera()
	if got := dst.Camera().Position(); !vecCloseTo(got, src.Camera().Position(), 1e-5) {
		t.Errorf("camera position = %v, want %v", got, src.Camera().Position())
	}
	dot := dst.Camera().Orientation().Dot(src.Camera().Orientation())
	if gomath.Abs(float64(dot)) < 0.9999 {
		t.Errorf("camera orientation diverged, |dot| = %v", gomath.Abs(float64(dot)))
	}
}
