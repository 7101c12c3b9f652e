package testbed

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/idraw/engine"
	"github.com/spaghettifunk/idraw/engine/core"
	"github.com/spaghettifunk/idraw/engine/idraw"
	"github.com/spaghettifunk/idraw/engine/math"
	"github.com/spaghettifunk/idraw/engine/renderer/metadata"
)

type TestGame struct {
	*engine.Game
}

type gameState struct {
	rotation  float32
	wireframe bool
	camera    *idraw.Camera
	checker   metadata.TextureHandle
}

func NewTestGame() *TestGame {
	tg := &TestGame{
		Game: &engine.Game{
			State: &gameState{},
		},
	}
	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnRender = tg.Render
	tg.FnOnResize = tg.OnResize
	tg.FnShutdown = tg.Shutdown
	return tg
}

func (g *TestGame) state() *gameState {
	return g.State.(*gameState)
}

func (g *TestGame) Initialize() error {
	core.LogInfo("initializing testbed...")
	s := g.state()
	cam, err := g.SystemManager.CameraSystem.Acquire("world")
	if err != nil {
		return err
	}
	cam.Position = mgl32.Vec3{2, 2, 4}
	s.camera = cam

	// A missing file resolves to the checkerboard.
	s.checker = g.SystemManager.TextureSystem.Acquire("assets/textures/checker.png", false)
	return nil
}

func (g *TestGame) Update(deltaTime float64) error {
	s := g.state()
	s.rotation += float32(deltaTime) * 45
	if s.rotation >= 360 {
		s.rotation -= 360
	}
	if core.InputKeyPressed(core.KEY_SPACE) {
		s.wireframe = !s.wireframe
	}
	return nil
}

func (g *TestGame) Render(ctx *idraw.Context, width, height uint32, deltaTime float64) error {
	s := g.state()

	// world
	ctx.Camera(*s.camera, width, height)
	ctx.SetDepthEnabled(true)
	ctx.PushMatrix(idraw.MatrixModelview)
	ctx.Rotate(s.rotation, 0, 1, 0)
	prim := metadata.PrimitiveTypeTriangles
	if s.wireframe {
		prim = metadata.PrimitiveTypeLines
	}
	ctx.Box(mgl32.Vec3{}, mgl32.Vec3{0.5, 0.5, 0.5}, math.ColorCyan, prim)
	ctx.Sphere(mgl32.Vec3{1.5, 0, 0}, 0.4, 12, 16, math.ColorMagenta, metadata.PrimitiveTypeLines)
	ctx.PopMatrix()
	ctx.Cone(mgl32.Vec3{-1.5, -0.5, 0}, 0.4, 1, 16, math.ColorYellow, prim)
	ctx.SetDepthEnabled(false)

	// overlay
	ctx.Camera2D(width, height)
	ctx.Rect(10, 10, 250, 70, math.ColorBlack.WithAlpha(160), metadata.PrimitiveTypeTriangles)
	ctx.Rect(10, 10, 250, 70, math.ColorWhite, metadata.PrimitiveTypeLines)
	ctx.RectTextured(mgl32.Vec2{float32(width) - 74, 10}, mgl32.Vec2{float32(width) - 10, 74}, s.checker, math.ColorWhite)
	ctx.Circle(float32(width)-120, 42, 24, 0, math.ColorGreen, metadata.PrimitiveTypeTriangles)
	ctx.Arc(float32(width)-180, 42, 16, 24, 0, s.rotation, 0, math.ColorRed, metadata.PrimitiveTypeTriangles)
	ctx.Bezier(mgl32.Vec2{20, float32(height) - 20}, mgl32.Vec2{120, float32(height) - 160},
		mgl32.Vec2{220, float32(height) + 120}, mgl32.Vec2{320, float32(height) - 20}, 32, math.ColorYellow)

	font := g.SystemManager.FontSystem.Default()
	fps, frameMS := g.Metrics.Frame()
	cmds, draws := g.Metrics.Submission()
	ctx.Text(20, 20, fmt.Sprintf("FPS: %.0f (%.2f ms)\ncommands: %d draws: %d", fps, frameMS, cmds, draws), font, math.ColorWhite, false)
	return nil
}

func (g *TestGame) OnResize(width uint32, height uint32) error {
	core.LogDebug("testbed resized to %dx%d", width, height)
	return nil
}

func (g *TestGame) Shutdown() error {
	g.SystemManager.CameraSystem.Release("world")
	core.LogInfo("testbed shut down")
	return nil
}
