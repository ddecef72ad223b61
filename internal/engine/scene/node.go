// Package scene provides the scene nodes external systems hang geometry on.
package scene

import (
	"github.com/robolens/robolens/pkg/math"
)

// Node is a named transform in the scene. The tracking layer keeps the
// target node's pose synchronized with the tracked frame; renderers draw
// whatever is attached at the node using Transform.
type Node struct {
	name        string
	position    math.Vec3
	orientation math.Quat
}

// NewNode creates a node with an identity transform.
func NewNode(name string) *Node {
	return &Node{
		name:        name,
		orientation: math.QuatIdentity(),
	}
}

// Name returns the node's name.
func (n *Node) Name() string {
	return n.name
}

// SetPosition moves the node.
func (n *Node) SetPosition(p math.Vec3) {
	n.position = p
}

// Position returns the node position.
func (n *Node) Position() math.Vec3 {
	return n.position
}

// SetOrientation rotates the node.
func (n *Node) SetOrientation(q math.Quat) {
	n.orientation = q
}

// Orientation returns the node orientation.
func (n *Node) Orientation() math.Quat {
	return n.orientation
}

// Transform returns the node's local-to-world matrix.
func (n *Node) Transform() math.Mat4 {
	t := math.Translate(n.position.X, n.position.Y, n.position.Z)
	return t.Mul(n.orientation.ToMat4())
}
