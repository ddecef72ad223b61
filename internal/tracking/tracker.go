package tracking

import (
	"time"

	"go.uber.org/zap"

	"github.com/robolens/robolens/pkg/math"
)

// NodeSink is where the tracker mirrors the tracked frame's pose,
// typically a scene node the camera-relative geometry hangs on.
type NodeSink interface {
	SetPosition(math.Vec3)
	SetOrientation(math.Quat)
}

// Tracker follows a named target frame. Each Update re-resolves the frame,
// mirrors its pose onto the node sink, and reports positional deltas so the
// owning controller can keep the camera anchored to the frame's motion.
// Lookups that fail leave the reference pose untouched.
//
// Tracker is not safe for concurrent use; like the controllers that own it,
// it expects all calls on a single UI thread.
type Tracker struct {
	provider    FrameProvider
	node        NodeSink
	targetFrame string

	refPosition    math.Vec3
	refOrientation math.Quat
	resolved       bool

	onTargetFrameChanged func(oldPosition math.Vec3, oldOrientation math.Quat)
	onReferenceMoved     func(delta math.Vec3)

	log *zap.Logger
}

// NewTracker creates a tracker for targetFrame. node may be nil when the
// host has no scene node to mirror onto.
func NewTracker(provider FrameProvider, node NodeSink, targetFrame string, log *zap.Logger) *Tracker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tracker{
		provider:       provider,
		node:           node,
		targetFrame:    targetFrame,
		refOrientation: math.QuatIdentity(),
		log:            log,
	}
}

// OnTargetFrameChanged registers the callback invoked when the target frame
// is switched to a different frame. It receives the reference pose the old
// frame last had.
func (t *Tracker) OnTargetFrameChanged(fn func(oldPosition math.Vec3, oldOrientation math.Quat)) {
	t.onTargetFrameChanged = fn
}

// OnReferenceMoved registers the callback invoked whenever a tick observes
// the target frame at a new position. The delta is new minus old.
func (t *Tracker) OnReferenceMoved(fn func(delta math.Vec3)) {
	t.onReferenceMoved = fn
}

// TargetFrame returns the name of the tracked frame.
func (t *Tracker) TargetFrame() string {
	return t.targetFrame
}

// ReferencePosition returns the last known position of the tracked frame.
func (t *Tracker) ReferencePosition() math.Vec3 {
	return t.refPosition
}

// ReferenceOrientation returns the last known orientation of the tracked
// frame.
func (t *Tracker) ReferenceOrientation() math.Quat {
	return t.refOrientation
}

// SetTargetFrame switches tracking to a different frame. The previous
// reference pose is handed to the OnTargetFrameChanged callback after the
// new frame has been resolved, so the callback can rebase positions.
func (t *Tracker) SetTargetFrame(frame string) {
	if frame == t.targetFrame {
		return
	}
	oldPosition := t.refPosition
	oldOrientation := t.refOrientation

	t.targetFrame = frame
	t.resolved = false
	if pos, orient, err := t.provider.GetTransform(frame, time.Time{}); err == nil {
		t.refPosition = pos
		t.refOrientation = orient
		t.resolved = true
	} else {
		t.log.Debug("target frame not yet available", zap.String("frame", frame), zap.Error(err))
	}

	if t.onTargetFrameChanged != nil {
		t.onTargetFrameChanged(oldPosition, oldOrientation)
	}
}

// Resolve queries the provider for the tracked frame's current pose.
func (t *Tracker) Resolve() (math.Vec3, math.Quat, error) {
	return t.provider.GetTransform(t.targetFrame, time.Time{})
}

// Update is the per-tick half of frame following: re-resolve the target
// frame, mirror the pose to the node sink, and report how far the frame
// moved since the previous tick. The time deltas are unused by the math
// but keep the tick signature uniform across controllers.
func (t *Tracker) Update(dt, simDT float32) {
	_ = dt
	_ = simDT

	pos, orient, err := t.Resolve()
	if err != nil {
		t.log.Debug("frame lookup failed",
			zap.String("frame", t.targetFrame),
			zap.Error(err),
		)
		return
	}

	delta := pos.Sub(t.refPosition)
	firstResolve := !t.resolved

	t.refPosition = pos
	t.refOrientation = orient
	t.resolved = true

	if t.node != nil {
		t.node.SetPosition(t.refPosition)
	}

	// The first successful resolve establishes the reference; there is no
	// motion to fold in yet.
	if !firstResolve && t.onReferenceMoved != nil && delta != (math.Vec3{}) {
		t.onReferenceMoved(delta)
	}
}

// ApplyReferenceOrientation re-applies the tracked orientation to the node
// sink. Controllers call this every tick so the node's frame stays aligned
// with the tracked frame regardless of what the camera does.
func (t *Tracker) ApplyReferenceOrientation() {
	if t.node != nil {
		t.node.SetOrientation(t.refOrientation)
	}
}

// Mimic adopts another tracker's target frame and reference pose, used when
// switching between controllers without jumping the view.
func (t *Tracker) Mimic(source *Tracker) {
	t.targetFrame = source.targetFrame
	t.refPosition = source.refPosition
	t.refOrientation = source.refOrientation
	t.resolved = source.resolved
}
