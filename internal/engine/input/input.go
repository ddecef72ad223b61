// Package input polls SDL2 events and converts them into the event types
// the view controllers consume.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/robolens/robolens/internal/view"
)

// EventType tags the non-pointer events the application loop reacts to.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventMouse
)

// Event is a processed input event. For EventMouse the Mouse field carries
// the controller-facing pointer event; the other fields are zero.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	Mouse  view.MouseEvent
}

// Input handles all input processing.
type Input struct {
	events []Event
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events and converts them. Returns true if the
// application should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN {
				i.events = append(i.events, Event{
					Type: EventKeyDown,
					Key:  e.Keysym.Scancode,
				})
			}

		case *sdl.MouseMotionEvent:
			i.events = append(i.events, Event{
				Type: EventMouse,
				Mouse: view.MouseMove{
					X:     e.X,
					Y:     e.Y,
					LastX: e.X - e.XRel,
					LastY: e.Y - e.YRel,
					State: snapshotButtons(e.State),
				},
			})

		case *sdl.MouseButtonEvent:
			// Buttons matter to controllers only as held state on motion
			// and wheel events, but a press/release without motion still
			// refreshes the cursor and status hints.
			_, _, held := sdl.GetMouseState()
			i.events = append(i.events, Event{
				Type: EventMouse,
				Mouse: view.MouseMove{
					X: e.X, Y: e.Y,
					LastX: e.X, LastY: e.Y,
					State: snapshotButtons(held),
				},
			})

		case *sdl.MouseWheelEvent:
			_, _, held := sdl.GetMouseState()
			i.events = append(i.events, Event{
				Type: EventMouse,
				Mouse: view.MouseWheel{
					Delta: e.Y * wheelStep,
					State: snapshotButtons(held),
				},
			})
		}
	}

	return false
}

// wheelStep scales SDL's one-per-notch wheel counts up to the 100-ish
// counts-per-notch convention the controllers' zoom factor assumes.
const wheelStep = 100

// snapshotButtons freezes the held-button mask and shift modifier into an
// immutable controller event snapshot.
func snapshotButtons(mask uint32) view.ButtonState {
	return view.ButtonState{
		Left:   mask&sdl.ButtonLMask() != 0,
		Middle: mask&sdl.ButtonMMask() != 0,
		Right:  mask&sdl.ButtonRMask() != 0,
		Shift:  sdl.GetModState()&sdl.KMOD_SHIFT != 0,
	}
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}
