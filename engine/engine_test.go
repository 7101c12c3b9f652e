package engine

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/idraw/engine/config"
	"github.com/spaghettifunk/idraw/engine/core"
	"github.com/spaghettifunk/idraw/engine/idraw"
	"github.com/spaghettifunk/idraw/engine/math"
	"github.com/spaghettifunk/idraw/engine/renderer/headless"
	"github.com/spaghettifunk/idraw/engine/renderer/metadata"
)

func headlessConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Renderer.Backend = config.BackendHeadless
	cfg.Window.Width, cfg.Window.Height = 320, 200
	cfg.Assets.Dir = t.TempDir()
	cfg.Assets.HotReload = false
	cfg.Log.Level = "error"
	return cfg
}

func newEngine(t *testing.T, cfg *config.Config, g *Game) *Engine {
	t.Helper()
	e, err := New(cfg, g)
	require.NoError(t, err)
	require.NoError(t, e.Initialize())
	t.Cleanup(func() { _ = e.Shutdown() })
	return e
}

func backend(e *Engine) *headless.Backend {
	return e.Device().Backend().(*headless.Backend)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := headlessConfig(t)
	cfg.Renderer.Backend = "vulkan"
	_, err := New(cfg, &Game{})
	assert.ErrorIs(t, err, core.ErrUnknownBackend)
}

func TestFrameRendersGame(t *testing.T) {
	var initialized bool
	var updates, renders int
	g := &Game{
		FnInitialize: func() error { initialized = true; return nil },
		FnUpdate:     func(float64) error { updates++; return nil },
		FnRender: func(ctx *idraw.Context, w, h uint32, _ float64) error {
			renders++
			ctx.Camera2D(w, h)
			ctx.Rect(0, 0, 10, 10, math.ColorRed, metadata.PrimitiveTypeTriangles)
			return nil
		},
	}
	e := newEngine(t, headlessConfig(t), g)
	assert.True(t, initialized)
	assert.NotNil(t, g.SystemManager)
	assert.Same(t, e.Metrics(), g.Metrics)

	require.NoError(t, e.RunFrames(3))
	assert.Equal(t, 3, updates)
	assert.Equal(t, 3, renders)

	b := backend(e)
	assert.Equal(t, 3, b.Submissions())
	require.NotEmpty(t, b.Viewports())
	assert.Equal(t, metadata.Rect{Width: 320, Height: 200}, b.Viewports()[len(b.Viewports())-1])
	require.NotEmpty(t, b.Calls())
	assert.Equal(t, 6, b.Calls()[len(b.Calls())-1].VertexCount())

	cmds, draws := e.Metrics().Submission()
	assert.Equal(t, uint32(1), draws)
	assert.Positive(t, cmds)
	assert.Equal(t, EngineStageInitialized, e.Stage())
}

func TestRunRequiresInitialize(t *testing.T) {
	e, err := New(headlessConfig(t), &Game{})
	require.NoError(t, err)
	assert.Error(t, e.Run())
}

func TestRenderErrorStopsRun(t *testing.T) {
	boom := errors.New("boom")
	frames := 0
	g := &Game{FnRender: func(*idraw.Context, uint32, uint32, float64) error {
		frames++
		if frames == 2 {
			return boom
		}
		return nil
	}}
	e := newEngine(t, headlessConfig(t), g)
	assert.ErrorIs(t, e.RunFrames(10), boom)
	assert.Equal(t, 2, frames)
}

func TestQuitEventStopsRun(t *testing.T) {
	frames := 0
	g := &Game{FnUpdate: func(float64) error {
		frames++
		if frames == 2 {
			core.InputProcessKey(core.KEY_ESCAPE, true)
		}
		return nil
	}}
	e := newEngine(t, headlessConfig(t), g)
	require.NoError(t, e.Run())
	assert.Equal(t, 2, frames)
}

func TestResizeSuspendsAndResumes(t *testing.T) {
	var resized [2]uint32
	renders := 0
	g := &Game{
		FnOnResize: func(w, h uint32) error { resized = [2]uint32{w, h}; return nil },
		FnRender:   func(*idraw.Context, uint32, uint32, float64) error { renders++; return nil },
	}
	e := newEngine(t, headlessConfig(t), g)

	core.EventFire(core.EventContext{Type: core.EVENT_CODE_RESIZED, Data: core.ResizeEvent{Width: 0, Height: 0}})
	require.NoError(t, e.RunFrames(2))
	assert.Zero(t, renders)

	core.EventFire(core.EventContext{Type: core.EVENT_CODE_RESIZED, Data: core.ResizeEvent{Width: 640, Height: 480}})
	require.NoError(t, e.RunFrames(1))
	assert.Equal(t, 1, renders)
	assert.Equal(t, [2]uint32{640, 480}, resized)
	w, h := e.GetFramebufferSize()
	assert.Equal(t, uint32(640), w)
	assert.Equal(t, uint32(480), h)
}

func TestMissingDefaultFontFallsBack(t *testing.T) {
	cfg := headlessConfig(t)
	cfg.Renderer.DefaultFont = filepath.Join(t.TempDir(), "missing.ttf")
	e := newEngine(t, cfg, &Game{})
	assert.Same(t, e.Context().Static().Font, e.systemManager.FontSystem.Default())
}

func TestMissingAssetsDirIsNotFatal(t *testing.T) {
	cfg := headlessConfig(t)
	cfg.Assets.Dir = filepath.Join(t.TempDir(), "nope")
	newEngine(t, cfg, &Game{})
}

func TestNewApplicationUsesConfigFile(t *testing.T) {
	cfg := headlessConfig(t)
	cfg.Window.Title = "from file"
	path := filepath.Join(t.TempDir(), "anima.toml")
	require.NoError(t, cfg.Save(path))

	e, err := NewApplication(path, &Game{})
	require.NoError(t, err)
	defer e.Shutdown()
	assert.Equal(t, "from file", e.config.Window.Title)

	require.NoError(t, os.WriteFile(path, []byte("[renderer]\nbackend = 'metal'\n"), 0o644))
	_, err = NewApplication(path, &Game{})
	assert.ErrorIs(t, err, core.ErrUnknownBackend)
}

func TestCameraFromSystemDrivesProjection(t *testing.T) {
	var mvp mgl32.Mat4
	g := &Game{}
	g.FnRender = func(ctx *idraw.Context, w, h uint32, _ float64) error {
		cam, err := g.SystemManager.CameraSystem.Acquire("main")
		if err != nil {
			return err
		}
		ctx.Camera(*cam, w, h)
		mvp = cam.ViewProjection(float32(w), float32(h))
		ctx.Box(mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}, math.ColorWhite, metadata.PrimitiveTypeLines)
		return nil
	}
	e := newEngine(t, headlessConfig(t), g)
	require.NoError(t, e.RunFrames(1))
	calls := backend(e).Calls()
	require.Len(t, calls, 1)
	assert.True(t, calls[0].HasMVP)
	assert.Equal(t, mvp, calls[0].MVP)
}
