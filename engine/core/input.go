package core

import "sync"

type Button uint16

const (
	BUTTON_LEFT Button = iota
	BUTTON_RIGHT
	BUTTON_MIDDLE
	BUTTON_MAX_BUTTONS
)

// KeyCode values follow the printable ASCII range for letters, digits and
// space. Other keys get codes above 127.
type KeyCode uint16

const (
	KEY_SPACE KeyCode = ' '
	KEY_0     KeyCode = '0'
	KEY_1     KeyCode = '1'
	KEY_2     KeyCode = '2'
	KEY_3     KeyCode = '3'
	KEY_4     KeyCode = '4'
	KEY_5     KeyCode = '5'
	KEY_6     KeyCode = '6'
	KEY_7     KeyCode = '7'
	KEY_8     KeyCode = '8'
	KEY_9     KeyCode = '9'
	KEY_A     KeyCode = 'A'
	KEY_D     KeyCode = 'D'
	KEY_E     KeyCode = 'E'
	KEY_Q     KeyCode = 'Q'
	KEY_R     KeyCode = 'R'
	KEY_S     KeyCode = 'S'
	KEY_W     KeyCode = 'W'
)

const (
	KEY_ESCAPE KeyCode = 0x80 + iota
	KEY_ENTER
	KEY_TAB
	KEY_BACKSPACE
	KEY_LEFT
	KEY_RIGHT
	KEY_UP
	KEY_DOWN
	KEY_LSHIFT
	KEY_RSHIFT
	KEY_LCONTROL
	KEY_RCONTROL
	KEY_F1
	KEY_F2
	KEY_F3
	KEY_F4
	KEY_F5
)

const KEYS_MAX_KEYS KeyCode = 256

type MouseState struct {
	X       uint16
	Y       uint16
	Buttons [BUTTON_MAX_BUTTONS]bool
}

type KeyboardState struct {
	Keys [KEYS_MAX_KEYS]bool
}

// InputState holds the current and previous frame of keyboard and mouse.
type InputState struct {
	mu               sync.RWMutex
	KeyboardCurrent  KeyboardState
	KeyboardPrevious KeyboardState
	MouseCurrent     MouseState
	MousePrevious    MouseState
}

var inputState = &InputState{}

func InputInitialize() {
	inputState.mu.Lock()
	inputState.KeyboardCurrent, inputState.KeyboardPrevious = KeyboardState{}, KeyboardState{}
	inputState.MouseCurrent, inputState.MousePrevious = MouseState{}, MouseState{}
	inputState.mu.Unlock()
	LogInfo("input subsystem initialized")
}

// InputUpdate makes the current state the previous one. Call once per frame
// after the game update.
func InputUpdate() {
	inputState.mu.Lock()
	defer inputState.mu.Unlock()
	inputState.KeyboardPrevious = inputState.KeyboardCurrent
	inputState.MousePrevious = inputState.MouseCurrent
}

func InputIsKeyDown(key KeyCode) bool {
	inputState.mu.RLock()
	defer inputState.mu.RUnlock()
	return key < KEYS_MAX_KEYS && inputState.KeyboardCurrent.Keys[key]
}

func InputWasKeyDown(key KeyCode) bool {
	inputState.mu.RLock()
	defer inputState.mu.RUnlock()
	return key < KEYS_MAX_KEYS && inputState.KeyboardPrevious.Keys[key]
}

// InputKeyPressed is true on the frame key went down.
func InputKeyPressed(key KeyCode) bool {
	return InputIsKeyDown(key) && !InputWasKeyDown(key)
}

func InputIsButtonDown(button Button) bool {
	inputState.mu.RLock()
	defer inputState.mu.RUnlock()
	return button < BUTTON_MAX_BUTTONS && inputState.MouseCurrent.Buttons[button]
}

func InputGetMousePosition() (int32, int32) {
	inputState.mu.RLock()
	defer inputState.mu.RUnlock()
	return int32(inputState.MouseCurrent.X), int32(inputState.MouseCurrent.Y)
}

func InputGetPreviousMousePosition() (int32, int32) {
	inputState.mu.RLock()
	defer inputState.mu.RUnlock()
	return int32(inputState.MousePrevious.X), int32(inputState.MousePrevious.Y)
}

// InputProcessKey records a key transition and fires a key event when the
// state changed.
func InputProcessKey(key KeyCode, pressed bool) {
	if key >= KEYS_MAX_KEYS {
		return
	}
	inputState.mu.Lock()
	changed := inputState.KeyboardCurrent.Keys[key] != pressed
	inputState.KeyboardCurrent.Keys[key] = pressed
	inputState.mu.Unlock()
	if !changed {
		return
	}
	code := EVENT_CODE_KEY_RELEASED
	if pressed {
		code = EVENT_CODE_KEY_PRESSED
	}
	EventFire(EventContext{Type: code, Data: KeyEvent{KeyCode: key}})
}

func InputProcessButton(button Button, pressed bool) {
	if button >= BUTTON_MAX_BUTTONS {
		return
	}
	inputState.mu.Lock()
	changed := inputState.MouseCurrent.Buttons[button] != pressed
	inputState.MouseCurrent.Buttons[button] = pressed
	inputState.mu.Unlock()
	if !changed {
		return
	}
	code := EVENT_CODE_BUTTON_RELEASED
	if pressed {
		code = EVENT_CODE_BUTTON_PRESSED
	}
	EventFire(EventContext{Type: code, Data: MouseEvent{Button: button}})
}

func InputProcessMouseMove(x, y uint16) {
	inputState.mu.Lock()
	changed := inputState.MouseCurrent.X != x || inputState.MouseCurrent.Y != y
	inputState.MouseCurrent.X, inputState.MouseCurrent.Y = x, y
	inputState.mu.Unlock()
	if changed {
		EventFire(EventContext{Type: EVENT_CODE_MOUSE_MOVED, Data: MouseEvent{PosX: x, PosY: y}})
	}
}

func InputProcessMouseWheel(zDelta int8) {
	EventFire(EventContext{Type: EVENT_CODE_MOUSE_WHEEL, Data: MouseEvent{Scroll: zDelta}})
}
