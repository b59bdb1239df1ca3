package core

// Key is a native key code as reported by the windowing layer (GLFW key
// space). Codes are passed through unmodified.
type Key int

// MaxKeys bounds the key hold-state bitset. GLFW's highest code is 348.
const MaxKeys = 512

// Subset of GLFW key codes used by the engine and the sandbox scenes.
const (
	KeyUnknown      Key = -1
	KeySpace        Key = 32
	KeyComma        Key = 44
	KeyPeriod       Key = 46
	KeyA            Key = 65
	KeyD            Key = 68
	KeyE            Key = 69
	KeyP            Key = 80
	KeyQ            Key = 81
	KeyS            Key = 83
	KeyW            Key = 87
	KeyEscape       Key = 256
	KeyEnter        Key = 257
	KeyTab          Key = 258
	KeyBackspace    Key = 259
	KeyRight        Key = 262
	KeyLeft         Key = 263
	KeyDown         Key = 264
	KeyUp           Key = 265
	KeyLeftShift    Key = 340
	KeyLeftControl  Key = 341
	KeyRightShift   Key = 344
	KeyRightControl Key = 345
)

func (k Key) valid() bool { return k >= 0 && k < MaxKeys }

// MouseButton mirrors GLFW's mouse button numbering.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
	MouseButton4
	MouseButton5
	MouseButton6
	MouseButton7
	MouseButton8

	NumMouseButtons = 8
)

// MouseButtonNone is carried by events that are not tied to a button.
const MouseButtonNone MouseButton = -1

func (b MouseButton) valid() bool { return b >= 0 && b < NumMouseButtons }

func (b MouseButton) String() string {
	switch b {
	case MouseButtonLeft:
		return "left"
	case MouseButtonRight:
		return "right"
	case MouseButtonMiddle:
		return "middle"
	case MouseButtonNone:
		return "none"
	default:
		if b.valid() {
			return "button" + string(rune('1'+int(b)))
		}
		return "invalid"
	}
}
