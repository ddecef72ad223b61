package tracking

import (
	"errors"
	"testing"
	"time"

	"github.com/robolens/robolens/pkg/math"
)

type recordingNode struct {
	position    math.Vec3
	orientation math.Quat
	posSets     int
	orientSets  int
}

func (n *recordingNode) SetPosition(p math.Vec3) {
	n.position = p
	n.posSets++
}

func (n *recordingNode) SetOrientation(q math.Quat) {
	n.orientation = q
	n.orientSets++
}

func TestFrameManagerLookup(t *testing.T) {
	m := NewFrameManager("odom")

	if _, _, err := m.GetTransform("base_link", time.Time{}); !errors.Is(err, ErrFrameNotFound) {
		t.Fatalf("unpublished frame should return ErrFrameNotFound, got %v", err)
	}

	want := math.Vec3{X: 1, Y: 2, Z: 3}
	m.SetTransform("base_link", want, math.QuatIdentity())
	pos, orient, err := m.GetTransform("base_link", time.Time{})
	if err != nil {
		t.Fatalf("GetTransform: %v", err)
	}
	if pos != want {
		t.Errorf("position = %v, want %v", pos, want)
	}
	if orient != math.QuatIdentity() {
		t.Errorf("orientation = %v, want identity", orient)
	}

	m.RemoveFrame("base_link")
	if _, _, err := m.GetTransform("base_link", time.Time{}); err == nil {
		t.Errorf("removed frame should fail lookup")
	}
}

func TestTrackerFollowsFrameMotion(t *testing.T) {
	m := NewFrameManager("odom")
	node := &recordingNode{}
	tr := NewTracker(m, node, "base_link", nil)

	var moved []math.Vec3
	tr.OnReferenceMoved(func(delta math.Vec3) {
		moved = append(moved, delta)
	})

	m.SetTransform("base_link", math.Vec3{X: 1}, math.QuatIdentity())
	tr.Update(0.016, 0.016)

	// The first resolve establishes the reference without reporting motion.
	if len(moved) != 0 {
		t.Fatalf("first resolve should not report motion, got %v", moved)
	}
	if tr.ReferencePosition() != (math.Vec3{X: 1}) {
		t.Fatalf("reference position = %v", tr.ReferencePosition())
	}
	if node.position != (math.Vec3{X: 1}) {
		t.Errorf("node position not mirrored: %v", node.position)
	}

	m.SetTransform("base_link", math.Vec3{X: 3, Y: -1}, math.QuatIdentity())
	tr.Update(0.016, 0.016)

	if len(moved) != 1 || moved[0] != (math.Vec3{X: 2, Y: -1}) {
		t.Errorf("motion delta = %v, want [(2,-1,0)]", moved)
	}
}

func TestTrackerFailedLookupKeepsReference(t *testing.T) {
	m := NewFrameManager("odom")
	tr := NewTracker(m, nil, "base_link", nil)

	m.SetTransform("base_link", math.Vec3{X: 5}, math.QuatIdentity())
	tr.Update(0, 0)

	m.RemoveFrame("base_link")
	tr.Update(0, 0)

	if tr.ReferencePosition() != (math.Vec3{X: 5}) {
		t.Errorf("failed lookup should keep last reference, got %v", tr.ReferencePosition())
	}
}

func TestTrackerSetTargetFrame(t *testing.T) {
	m := NewFrameManager("odom")
	tr := NewTracker(m, nil, "base_link", nil)

	m.SetTransform("base_link", math.Vec3{X: 1, Y: 1, Z: 1}, math.QuatIdentity())
	m.SetTransform("gripper", math.Vec3{X: 4}, math.QuatIdentity())
	tr.Update(0, 0)

	var gotOld math.Vec3
	calls := 0
	tr.OnTargetFrameChanged(func(oldPos math.Vec3, _ math.Quat) {
		gotOld = oldPos
		calls++
	})

	tr.SetTargetFrame("gripper")
	if calls != 1 {
		t.Fatalf("OnTargetFrameChanged calls = %d, want 1", calls)
	}
	if gotOld != (math.Vec3{X: 1, Y: 1, Z: 1}) {
		t.Errorf("old reference position = %v, want (1,1,1)", gotOld)
	}
	if tr.ReferencePosition() != (math.Vec3{X: 4}) {
		t.Errorf("new reference position = %v, want (4,0,0)", tr.ReferencePosition())
	}

	// Switching to the same frame is a no-op.
	tr.SetTargetFrame("gripper")
	if calls != 1 {
		t.Errorf("same-frame switch should not fire callback")
	}
}

func TestTrackerApplyReferenceOrientation(t *testing.T) {
	m := NewFrameManager("odom")
	node := &recordingNode{}
	tr := NewTracker(m, node, "base_link", nil)

	q := math.QuatFromAxisAngle(math.Vec3{Z: 1}, 0.5)
	m.SetTransform("base_link", math.Vec3{}, q)
	tr.Update(0, 0)
	tr.ApplyReferenceOrientation()

	if node.orientation != q {
		t.Errorf("node orientation = %v, want %v", node.orientation, q)
	}
}
