package platform

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/spaghettifunk/idraw/engine/config"
	"github.com/spaghettifunk/idraw/engine/core"
)

func init() {
	// GLFW event handling and the GL context must stay on the main OS thread.
	runtime.LockOSThread()
}

// Platform owns the glfw window and its OpenGL 3.3 core context. Input and
// resize callbacks are forwarded to the core input and event systems.
type Platform struct {
	Window    *glfw.Window
	startTime float64
}

func New() *Platform {
	return &Platform{}
}

func (p *Platform) Startup(cfg config.WindowConfig) error {
	if err := glfw.Init(); err != nil {
		core.LogError("failed to initialize glfw: %s", err)
		return err
	}

	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(int(cfg.Width), int(cfg.Height), cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		core.LogError("failed to create window: %s", err)
		return fmt.Errorf("failed to create window: %w", err)
	}
	window.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	p.Window = window

	p.Window.SetKeyCallback(keyCallback)
	p.Window.SetMouseButtonCallback(mouseButtonCallback)
	p.Window.SetCursorPosCallback(cursorPosCallback)
	p.Window.SetScrollCallback(scrollCallback)
	p.Window.SetFramebufferSizeCallback(framebufferSizeCallback)
	p.Window.SetPos(int(cfg.X), int(cfg.Y))
	p.Window.Show()

	p.startTime = glfw.GetTime()
	return nil
}

func (p *Platform) Shutdown() error {
	if p.Window != nil {
		p.Window.Destroy()
		p.Window = nil
	}
	glfw.Terminate()
	return nil
}

// PumpMessages processes pending window events. It returns false once the
// window was asked to close.
func (p *Platform) PumpMessages() bool {
	glfw.PollEvents()
	return !p.ShouldClose()
}

func (p *Platform) ShouldClose() bool {
	return p.Window == nil || p.Window.ShouldClose()
}

func (p *Platform) SwapBuffers() {
	p.Window.SwapBuffers()
}

func (p *Platform) FramebufferSize() (uint32, uint32) {
	w, h := p.Window.GetFramebufferSize()
	return uint32(max(w, 0)), uint32(max(h, 0))
}

// Time is the number of seconds since Startup.
func (p *Platform) Time() float64 {
	return glfw.GetTime() - p.startTime
}

var keyMap = map[glfw.Key]core.KeyCode{
	glfw.KeyEscape:       core.KEY_ESCAPE,
	glfw.KeyEnter:        core.KEY_ENTER,
	glfw.KeyTab:          core.KEY_TAB,
	glfw.KeyBackspace:    core.KEY_BACKSPACE,
	glfw.KeyLeft:         core.KEY_LEFT,
	glfw.KeyRight:        core.KEY_RIGHT,
	glfw.KeyUp:           core.KEY_UP,
	glfw.KeyDown:         core.KEY_DOWN,
	glfw.KeyLeftShift:    core.KEY_LSHIFT,
	glfw.KeyRightShift:   core.KEY_RSHIFT,
	glfw.KeyLeftControl:  core.KEY_LCONTROL,
	glfw.KeyRightControl: core.KEY_RCONTROL,
	glfw.KeyF1:           core.KEY_F1,
	glfw.KeyF2:           core.KEY_F2,
	glfw.KeyF3:           core.KEY_F3,
	glfw.KeyF4:           core.KEY_F4,
	glfw.KeyF5:           core.KEY_F5,
}

// translateKey maps glfw keys to engine key codes. Printable keys share
// their ASCII value.
func translateKey(key glfw.Key) (core.KeyCode, bool) {
	if k, ok := keyMap[key]; ok {
		return k, true
	}
	if key >= glfw.KeySpace && key <= glfw.KeyZ {
		return core.KeyCode(key), true
	}
	return 0, false
}

func keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action == glfw.Repeat {
		return
	}
	if k, ok := translateKey(key); ok {
		core.InputProcessKey(k, action == glfw.Press)
	}
}

func mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	var b core.Button
	switch button {
	case glfw.MouseButtonLeft:
		b = core.BUTTON_LEFT
	case glfw.MouseButtonRight:
		b = core.BUTTON_RIGHT
	case glfw.MouseButtonMiddle:
		b = core.BUTTON_MIDDLE
	default:
		return
	}
	core.InputProcessButton(b, action == glfw.Press)
}

func cursorPosCallback(w *glfw.Window, xpos, ypos float64) {
	core.InputProcessMouseMove(uint16(max(xpos, 0)), uint16(max(ypos, 0)))
}

func scrollCallback(w *glfw.Window, xoff, yoff float64) {
	var z int8
	switch {
	case yoff > 0:
		z = 1
	case yoff < 0:
		z = -1
	}
	core.InputProcessMouseWheel(z)
}

func framebufferSizeCallback(w *glfw.Window, width, height int) {
	core.EventFire(core.EventContext{
		Type:   core.EVENT_CODE_RESIZED,
		Sender: w,
		Data:   core.ResizeEvent{Width: uint16(width), Height: uint16(height)},
	})
}
