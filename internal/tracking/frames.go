// Package tracking resolves named coordinate frames to poses and keeps a
// view controller's reference frame in sync with the frames' motion.
package tracking

import (
	"errors"
	"fmt"
	"time"

	"github.com/robolens/robolens/pkg/math"
)

// ErrFrameNotFound is returned when a frame has never been published.
var ErrFrameNotFound = errors.New("tracking: frame not found")

// FrameProvider resolves a named frame to a pose. A zero time means
// "latest available". Implementations report failures (unknown frame,
// no transform yet) through the error; callers are expected to treat a
// failed lookup as "keep the last pose".
type FrameProvider interface {
	GetTransform(frame string, at time.Time) (math.Vec3, math.Quat, error)
}

type framePose struct {
	position    math.Vec3
	orientation math.Quat
	stamp       time.Time
}

// FrameManager is an in-memory FrameProvider fed by SetTransform calls.
// It keeps only the most recent pose per frame; historical lookups are not
// supported, so any requested time resolves to the latest pose.
type FrameManager struct {
	fixedFrame string
	frames     map[string]framePose
}

// NewFrameManager creates an empty frame manager. fixedFrame names the
// frame all published poses are expressed in; it is descriptive only.
func NewFrameManager(fixedFrame string) *FrameManager {
	return &FrameManager{
		fixedFrame: fixedFrame,
		frames:     make(map[string]framePose),
	}
}

// FixedFrame returns the frame poses are expressed in.
func (m *FrameManager) FixedFrame() string {
	return m.fixedFrame
}

// SetTransform publishes the current pose of a frame.
func (m *FrameManager) SetTransform(frame string, position math.Vec3, orientation math.Quat) {
	m.frames[frame] = framePose{
		position:    position,
		orientation: orientation,
		stamp:       time.Now(),
	}
}

// RemoveFrame forgets a frame. Later lookups fail with ErrFrameNotFound.
func (m *FrameManager) RemoveFrame(frame string) {
	delete(m.frames, frame)
}

// GetTransform returns the latest pose of the frame.
func (m *FrameManager) GetTransform(frame string, _ time.Time) (math.Vec3, math.Quat, error) {
	pose, ok := m.frames[frame]
	if !ok {
		return math.Vec3{}, math.QuatIdentity(), fmt.Errorf("%w: %q", ErrFrameNotFound, frame)
	}
	return pose.position, pose.orientation, nil
}
