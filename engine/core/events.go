package core

import "sync"

// System internal event codes. Applications should use codes beyond 255.
type EventCode uint16

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT EventCode = 0x01
	// Data: KeyEvent.
	EVENT_CODE_KEY_PRESSED  EventCode = 0x02
	EVENT_CODE_KEY_RELEASED EventCode = 0x03
	// Data: MouseEvent with Button set.
	EVENT_CODE_BUTTON_PRESSED  EventCode = 0x04
	EVENT_CODE_BUTTON_RELEASED EventCode = 0x05
	// Data: MouseEvent with PosX and PosY set.
	EVENT_CODE_MOUSE_MOVED EventCode = 0x06
	// Data: MouseEvent with Scroll set.
	EVENT_CODE_MOUSE_WHEEL EventCode = 0x07
	// Framebuffer size changed. Data: ResizeEvent.
	EVENT_CODE_RESIZED EventCode = 0x08
	// A watched asset changed on disk. Data: the path as a string.
	EVENT_CODE_ASSET_CHANGED EventCode = 0x09

	MAX_EVENT_CODE EventCode = 0xFF
)

type KeyEvent struct {
	KeyCode KeyCode
}

type MouseEvent struct {
	Button Button
	PosX   uint16
	PosY   uint16
	Scroll int8
}

type ResizeEvent struct {
	Width  uint16
	Height uint16
}

type EventContext struct {
	Type   EventCode
	Sender interface{}
	Data   interface{}
}

// Should return true if handled.
type FnOnEvent func(ctx EventContext, listener interface{}) bool

type registeredEvent struct {
	listener interface{}
	callback FnOnEvent
}

type eventSystemState struct {
	mu         sync.RWMutex
	registered map[EventCode][]registeredEvent
}

var eventState = &eventSystemState{}

func EventInitialize() {
	eventState.mu.Lock()
	defer eventState.mu.Unlock()
	if eventState.registered == nil {
		eventState.registered = make(map[EventCode][]registeredEvent)
	}
}

// EventShutdown drops every registration.
func EventShutdown() {
	eventState.mu.Lock()
	defer eventState.mu.Unlock()
	eventState.registered = nil
}

/**
 * Registers onEvent for code. A listener can only be registered once per
 * code; a duplicate returns false.
 */
func EventRegister(code EventCode, listener interface{}, onEvent FnOnEvent) bool {
	eventState.mu.Lock()
	defer eventState.mu.Unlock()
	if eventState.registered == nil {
		return false
	}
	for _, e := range eventState.registered[code] {
		if e.listener == listener {
			LogWarn("listener already registered for event code %d", code)
			return false
		}
	}
	eventState.registered[code] = append(eventState.registered[code], registeredEvent{listener: listener, callback: onEvent})
	return true
}

// EventUnregister removes the registration of listener for code.
func EventUnregister(code EventCode, listener interface{}) bool {
	eventState.mu.Lock()
	defer eventState.mu.Unlock()
	events := eventState.registered[code]
	for i, e := range events {
		if e.listener == listener {
			eventState.registered[code] = append(events[:i], events[i+1:]...)
			return true
		}
	}
	return false
}

/**
 * Fires an event to the listeners of its code in registration order. When a
 * handler returns true the event is considered handled and is not passed on.
 */
func EventFire(ctx EventContext) bool {
	eventState.mu.RLock()
	events := append([]registeredEvent(nil), eventState.registered[ctx.Type]...)
	eventState.mu.RUnlock()
	for _, e := range events {
		if e.callback(ctx, e.listener) {
			return true
		}
	}
	return false
}
