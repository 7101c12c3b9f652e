package engine

import (
	"github.com/spaghettifunk/idraw/engine/core"
	"github.com/spaghettifunk/idraw/engine/idraw"
	"github.com/spaghettifunk/idraw/engine/systems"
)

// Game is the set of callbacks the engine drives. SystemManager and Metrics
// are filled in by Engine.Initialize before FnInitialize runs.
type Game struct {
	SystemManager *systems.SystemManager
	Metrics       *core.Metrics
	State         interface{}
	FnInitialize  Initialize
	FnUpdate      Update
	FnRender      Render
	FnOnResize    OnResize
	FnShutdown    Shutdown
}

type Initialize func() error
type Update func(deltaTime float64) error

// Render records the frame into ctx. The engine submits it afterwards.
type Render func(ctx *idraw.Context, width, height uint32, deltaTime float64) error
type OnResize func(width uint32, height uint32) error
type Shutdown func() error
