package core

import "fmt"

// DefaultMaxQueuedEvents is the per-queue bound used when none is configured.
const DefaultMaxQueuedEvents = 16

type KeyAction uint8

const (
	KeyPress KeyAction = iota
	KeyRelease
)

func (a KeyAction) String() string {
	if a == KeyPress {
		return "press"
	}
	return "release"
}

// KeyEvent is a single key transition.
type KeyEvent struct {
	Action KeyAction
	Code   Key
}

type MouseAction uint8

const (
	MousePress MouseAction = iota
	MouseRelease
	MouseMove
	MouseScrollUp
	MouseScrollDown
)

func (a MouseAction) String() string {
	switch a {
	case MousePress:
		return "press"
	case MouseRelease:
		return "release"
	case MouseMove:
		return "move"
	case MouseScrollUp:
		return "scroll-up"
	case MouseScrollDown:
		return "scroll-down"
	}
	return fmt.Sprintf("MouseAction(%d)", uint8(a))
}

// MouseEvent is a single mouse occurrence with the cursor position at the
// time it was observed.
type MouseEvent struct {
	Action   MouseAction
	Button   MouseButton
	Position [2]int
}

// InputHandler keeps the current hold state of keys and mouse buttons and two
// bounded queues of pending transitions. Hold state and queues are
// independent: draining events never changes IsKeyPressed.
//
// The windowing layer calls the On* methods from its callbacks; the
// application drains the queues once per frame with KeyEvent and MouseEvent.
type InputHandler struct {
	keys    [MaxKeys / 64]uint64
	buttons uint8

	keyEvents   eventQueue[KeyEvent]
	mouseEvents eventQueue[MouseEvent]

	mouse [2]int
}

// NewInput returns a handler whose queues hold at most maxQueued events each.
func NewInput(maxQueued int) *InputHandler {
	return &InputHandler{
		keyEvents:   newEventQueue[KeyEvent](maxQueued),
		mouseEvents: newEventQueue[MouseEvent](maxQueued),
	}
}

func (in *InputHandler) OnKeyPressed(code Key) {
	if !code.valid() {
		return
	}
	in.keys[code/64] |= 1 << (uint(code) % 64)
	in.keyEvents.push(KeyEvent{Action: KeyPress, Code: code})
}

func (in *InputHandler) OnKeyReleased(code Key) {
	if !code.valid() {
		return
	}
	in.keys[code/64] &^= 1 << (uint(code) % 64)
	in.keyEvents.push(KeyEvent{Action: KeyRelease, Code: code})
}

func (in *InputHandler) IsKeyPressed(code Key) bool {
	if !code.valid() {
		return false
	}
	return in.keys[code/64]&(1<<(uint(code)%64)) != 0
}

// ClearKeys forgets all held keys and buttons, e.g. after focus loss when
// release callbacks will never arrive. Queued events are kept.
func (in *InputHandler) ClearKeys() {
	in.keys = [MaxKeys / 64]uint64{}
	in.buttons = 0
}

// KeyEvent pops the oldest pending key event.
func (in *InputHandler) KeyEvent() (KeyEvent, bool) { return in.keyEvents.pop() }

func (in *InputHandler) PendingKeyEvents() int { return in.keyEvents.len() }

func (in *InputHandler) IsMouseButtonPressed(b MouseButton) bool {
	if !b.valid() {
		return false
	}
	return in.buttons&(1<<uint(b)) != 0
}

func (in *InputHandler) OnMousePressed(b MouseButton) {
	if !b.valid() {
		return
	}
	in.buttons |= 1 << uint(b)
	in.mouseEvents.push(MouseEvent{Action: MousePress, Button: b, Position: in.mouse})
}

func (in *InputHandler) OnMouseReleased(b MouseButton) {
	if !b.valid() {
		return
	}
	in.buttons &^= 1 << uint(b)
	in.mouseEvents.push(MouseEvent{Action: MouseRelease, Button: b, Position: in.mouse})
}

// OnMouseMove records the new cursor position. The event carries the
// lowest-numbered held button, or MouseButtonNone.
func (in *InputHandler) OnMouseMove(x, y int) {
	button := MouseButtonNone
	for b := MouseButton(0); b < NumMouseButtons; b++ {
		if in.IsMouseButtonPressed(b) {
			button = b
			break
		}
	}
	in.mouse = [2]int{x, y}
	in.mouseEvents.push(MouseEvent{Action: MouseMove, Button: button, Position: in.mouse})
}

func (in *InputHandler) OnMouseWheel(yOffset float64) {
	action := MouseScrollDown
	if yOffset > 0 {
		action = MouseScrollUp
	}
	in.mouseEvents.push(MouseEvent{Action: action, Button: MouseButtonNone, Position: in.mouse})
}

// MouseEvent pops the oldest pending mouse event.
func (in *InputHandler) MouseEvent() (MouseEvent, bool) { return in.mouseEvents.pop() }

func (in *InputHandler) PendingMouseEvents() int { return in.mouseEvents.len() }

func (in *InputHandler) MousePosition() (int, int) { return in.mouse[0], in.mouse[1] }
