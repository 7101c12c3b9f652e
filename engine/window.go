package engine

import (
	"time"

	"github.com/spaghettifunk/idraw/engine/config"
	"github.com/spaghettifunk/idraw/engine/platform"
)

// Window is the surface frames are presented to.
type Window interface {
	PumpMessages() bool
	SwapBuffers()
	FramebufferSize() (uint32, uint32)
	Time() float64
	Shutdown() error
}

var _ Window = (*platform.Platform)(nil)

// offscreenWindow stands in for a real window when rendering headless.
type offscreenWindow struct {
	width, height uint32
	start         time.Time
}

func newOffscreenWindow(cfg config.WindowConfig) *offscreenWindow {
	return &offscreenWindow{width: cfg.Width, height: cfg.Height, start: time.Now()}
}

func (w *offscreenWindow) PumpMessages() bool { return true }

func (w *offscreenWindow) SwapBuffers() {}

func (w *offscreenWindow) FramebufferSize() (uint32, uint32) {
	return w.width, w.height
}

func (w *offscreenWindow) Time() float64 {
	return time.Since(w.start).Seconds()
}

func (w *offscreenWindow) Shutdown() error { return nil }
