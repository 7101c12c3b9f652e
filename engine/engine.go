package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/spaghettifunk/idraw/engine/assets"
	"github.com/spaghettifunk/idraw/engine/config"
	"github.com/spaghettifunk/idraw/engine/core"
	"github.com/spaghettifunk/idraw/engine/idraw"
	"github.com/spaghettifunk/idraw/engine/platform"
	"github.com/spaghettifunk/idraw/engine/renderer"
	"github.com/spaghettifunk/idraw/engine/renderer/headless"
	"github.com/spaghettifunk/idraw/engine/renderer/metadata"
	"github.com/spaghettifunk/idraw/engine/renderer/opengl"
	"github.com/spaghettifunk/idraw/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

const defaultFontName = "ui"

type Engine struct {
	config        *config.Config
	currentStage  Stage
	gameInstance  *Game
	isRunning     atomic.Bool
	isSuspended   bool
	window        Window
	device        *renderer.Device
	context       *idraw.Context
	frame         *renderer.CommandBuffer
	assetManager  *assets.AssetManager
	systemManager *systems.SystemManager
	width         uint32
	height        uint32
	clock         *core.Clock
	metrics       *core.Metrics
	lastTime      float64
}

func New(cfg *config.Config, g *Game) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	core.SetLogLevel(cfg.LogLevel())

	return &Engine{
		config:       cfg,
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		assetManager: assets.NewAssetManager(0),
		clock:        core.NewClock(),
		metrics:      core.NewMetrics(),
		width:        cfg.Window.Width,
		height:       cfg.Window.Height,
	}, nil
}

// newBackend opens the window the backend draws into and returns both.
func (e *Engine) newBackend() (Window, renderer.RendererBackend, error) {
	switch e.config.Renderer.Backend {
	case config.BackendOpenGL:
		p := platform.New()
		if err := p.Startup(e.config.Window); err != nil {
			return nil, nil, err
		}
		return p, opengl.New(), nil
	case config.BackendHeadless:
		return newOffscreenWindow(e.config.Window), headless.New(), nil
	}
	return nil, nil, fmt.Errorf("renderer backend '%s': %w", e.config.Renderer.Backend, core.ErrUnknownBackend)
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing

	core.InputInitialize()
	core.EventInitialize()
	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, e, e.onEvent)
	core.EventRegister(core.EVENT_CODE_KEY_PRESSED, e, e.onKey)
	core.EventRegister(core.EVENT_CODE_RESIZED, e, e.onResized)

	window, backend, err := e.newBackend()
	if err != nil {
		return err
	}
	e.window = window
	e.width, e.height = window.FramebufferSize()

	e.device, err = renderer.NewDevice(backend)
	if err != nil {
		return err
	}
	rc := e.config.Renderer
	e.context, err = idraw.New(e.device,
		idraw.WithVertexCapacity(rc.VertexBufferSize),
		idraw.WithCommandCapacity(rc.CommandBufferSize),
		idraw.WithCircleErrorRate(rc.CircleErrorRate),
	)
	if err != nil {
		return err
	}
	e.frame = renderer.NewCommandBuffer(rc.CommandBufferSize)

	if err := e.initializeAssets(); err != nil {
		return err
	}
	e.systemManager, err = systems.NewSystemManager(e.device, e.assetManager)
	if err != nil {
		return err
	}
	e.loadDefaultFont()

	e.gameInstance.SystemManager = e.systemManager
	e.gameInstance.Metrics = e.metrics
	if e.gameInstance.FnInitialize != nil {
		if err := e.gameInstance.FnInitialize(); err != nil {
			return err
		}
	}

	e.currentStage = EngineStageInitialized
	core.LogInfo("engine initialized with context %s (%dx%d)", e.context.ID(), e.width, e.height)
	return nil
}

func (e *Engine) initializeAssets() error {
	dir := e.config.Assets.Dir
	if dir == "" {
		return nil
	}
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		core.LogWarn("assets directory '%s' not found, hot reload disabled", dir)
		return nil
	}
	return e.assetManager.Initialize(dir, e.config.Assets.HotReload)
}

// loadDefaultFont keeps the built-in font when the configured one fails.
func (e *Engine) loadDefaultFont() {
	path := e.config.Renderer.DefaultFont
	if path == "" {
		return
	}
	fonts := e.systemManager.FontSystem
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".fnt":
		_, err = fonts.LoadBitmapFont(defaultFontName, path)
	default:
		_, err = fonts.LoadTrueType(defaultFontName, path, e.config.Renderer.DefaultFontSize)
	}
	if err == nil {
		err = fonts.SetDefault(defaultFontName)
	}
	if err != nil {
		core.LogWarn("failed to load default font '%s', using the built-in one: %s", path, err)
	}
}

// Run drives frames until the window closes or Stop is called.
func (e *Engine) Run() error {
	return e.run(-1)
}

// RunFrames renders at most n frames.
func (e *Engine) RunFrames(n int) error {
	return e.run(n)
}

func (e *Engine) run(frames int) error {
	if e.currentStage != EngineStageInitialized {
		return fmt.Errorf("engine is not initialized")
	}
	e.currentStage = EngineStageRunning
	e.isRunning.Store(true)
	e.clock.Start()
	e.lastTime = 0
	defer func() { e.currentStage = EngineStageInitialized }()

	for i := 0; e.isRunning.Load() && (frames < 0 || i < frames); i++ {
		if err := e.Frame(); err != nil {
			e.isRunning.Store(false)
			return err
		}
	}
	return nil
}

// Frame pumps window events and, unless suspended, updates, records and
// submits one frame.
func (e *Engine) Frame() error {
	if !e.window.PumpMessages() {
		e.isRunning.Store(false)
		return nil
	}
	if e.isSuspended {
		return nil
	}

	e.clock.Update()
	currentTime := e.clock.Elapsed()
	delta := currentTime - e.lastTime
	frameStartTime := e.window.Time()

	e.assetManager.Drain(func(ev assets.AssetEvent) {
		e.systemManager.HandleAssetEvent(ev)
		core.EventFire(core.EventContext{Type: core.EVENT_CODE_ASSET_CHANGED, Sender: e, Data: ev.Path})
	})

	if e.gameInstance.FnUpdate != nil {
		if err := e.gameInstance.FnUpdate(delta); err != nil {
			core.LogError("game update failed, shutting down: %s", err)
			return err
		}
	}
	if e.gameInstance.FnRender != nil {
		if err := e.gameInstance.FnRender(e.context, e.width, e.height, delta); err != nil {
			core.LogError("game render failed, shutting down: %s", err)
			return err
		}
	}

	cc := e.config.Renderer.ClearColor
	e.context.Submit(e.frame,
		metadata.Rect{Width: int32(e.width), Height: int32(e.height)},
		metadata.ClearDesc{Flags: metadata.ClearFlagAll, Color: cc, Depth: 1},
	)
	stats := e.device.Submit(e.frame)
	e.metrics.RecordSubmission(stats.Commands, stats.DrawCalls)
	e.window.SwapBuffers()

	e.metrics.Update(e.window.Time() - frameStartTime)
	core.InputUpdate()
	e.lastTime = currentTime
	return nil
}

// Stop ends Run after the current frame. Safe to call from any goroutine.
func (e *Engine) Stop() {
	e.isRunning.Store(false)
}

func (e *Engine) Shutdown() error {
	e.currentStage = EngineStageShuttingDown
	var errs []error
	if e.gameInstance.FnShutdown != nil {
		errs = append(errs, e.gameInstance.FnShutdown())
	}
	if e.systemManager != nil {
		errs = append(errs, e.systemManager.Shutdown())
	}
	errs = append(errs, e.assetManager.Shutdown())
	if e.device != nil {
		errs = append(errs, e.device.Shutdown())
	}
	if e.window != nil {
		errs = append(errs, e.window.Shutdown())
	}
	core.EventShutdown()
	e.currentStage = EngineStageUninitialized
	return errors.Join(errs...)
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

func (e *Engine) Context() *idraw.Context {
	return e.context
}

func (e *Engine) Device() *renderer.Device {
	return e.device
}

func (e *Engine) Metrics() *core.Metrics {
	return e.metrics
}

func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

func (e *Engine) onEvent(ctx core.EventContext, _ interface{}) bool {
	if ctx.Type == core.EVENT_CODE_APPLICATION_QUIT {
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down")
		e.Stop()
		return true
	}
	return false
}

func (e *Engine) onKey(ctx core.EventContext, _ interface{}) bool {
	ke, ok := ctx.Data.(core.KeyEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", ctx.Type)
		return false
	}
	if ke.KeyCode == core.KEY_ESCAPE {
		core.EventFire(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT, Sender: e})
		return true
	}
	return false
}

func (e *Engine) onResized(ctx core.EventContext, _ interface{}) bool {
	re, ok := ctx.Data.(core.ResizeEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", ctx.Type)
		return false
	}
	width, height := uint32(re.Width), uint32(re.Height)
	if width == e.width && height == e.height {
		return false
	}
	e.width, e.height = width, height
	core.LogDebug("window resize: %d, %d", width, height)

	if width == 0 || height == 0 {
		core.LogInfo("window minimized, suspending application")
		e.isSuspended = true
		return true
	}
	if e.isSuspended {
		core.LogInfo("window restored, resuming application")
		e.isSuspended = false
	}
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(width, height); err != nil {
			core.LogError(err.Error())
		}
	}
	return false
}
