package view

// ButtonState is an immutable snapshot of the pointer buttons and the shift
// modifier at the moment an event fired.
type ButtonState struct {
	Left   bool
	Middle bool
	Right  bool
	Shift  bool
}

// MouseEvent is a pointer event delivered to a view controller.
type MouseEvent interface {
	Buttons() ButtonState
}

// MouseMove reports pointer motion in window coordinates.
type MouseMove struct {
	X, Y         int32
	LastX, LastY int32
	State        ButtonState
}

// Buttons returns the button snapshot taken when the event fired.
func (m MouseMove) Buttons() ButtonState { return m.State }

// MouseWheel reports scroll wheel ticks.
type MouseWheel struct {
	Delta int32
	State ButtonState
}

// Buttons returns the button snapshot taken when the event fired.
func (m MouseWheel) Buttons() ButtonState { return m.State }

// Cursor is the pointer shape a controller wants shown for the gesture
// currently available under the pointer.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorRotate3D
	CursorMoveXY
	CursorMoveZ
)
