package systems

import (
	"runtime"

	"github.com/spaghettifunk/idraw/engine/assets"
	"github.com/spaghettifunk/idraw/engine/core"
	"github.com/spaghettifunk/idraw/engine/renderer"
	"github.com/spaghettifunk/idraw/engine/renderer/metadata"
)

type SystemManager struct {
	CameraSystem  *CameraSystem
	FontSystem    *FontSystem
	JobSystem     *JobSystem
	ShaderSystem  *ShaderSystem
	TextureSystem *TextureSystem
}

func NewSystemManager(device *renderer.Device, am *assets.AssetManager) (*SystemManager, error) {
	js, err := NewJobSystem(max(1, runtime.NumCPU()-1), 64)
	if err != nil {
		return nil, err
	}
	cs, err := NewCameraSystem(&CameraSystemConfig{
		MaxCameraCount: 100,
	})
	if err != nil {
		return nil, err
	}
	ts, err := NewTextureSystem(&TextureSystemConfig{
		MaxTextureCount: 1000,
		MinFilter:       metadata.TextureFilterLinear,
		MagFilter:       metadata.TextureFilterLinear,
	}, am, device)
	if err != nil {
		return nil, err
	}
	ss, err := NewShaderSystem(&ShaderSystemConfig{
		MaxShaderCount: 100,
	}, am, device)
	if err != nil {
		return nil, err
	}
	fs, err := NewFontSystem(&FontSystemConfig{
		MaxFontCount: 32,
	}, am, device)
	if err != nil {
		return nil, err
	}
	return &SystemManager{
		CameraSystem:  cs,
		FontSystem:    fs,
		JobSystem:     js,
		ShaderSystem:  ss,
		TextureSystem: ts,
	}, nil
}

// HandleAssetEvent reloads whatever was built from the changed file. It must
// run on the goroutine that owns the graphics context.
func (sm *SystemManager) HandleAssetEvent(e assets.AssetEvent) {
	if e.Op != assets.AssetChanged {
		core.LogDebug("asset '%s' %s, keeping the loaded copy", e.Path, e.Op)
		return
	}
	switch e.Type {
	case metadata.ResourceTypeImage:
		if _, ok := sm.TextureSystem.Get(e.Path); ok {
			_ = sm.TextureSystem.Reload(e.Path)
		}
	case metadata.ResourceTypeShader:
		_ = sm.ShaderSystem.Reload(e.Path)
	default:
		core.LogDebug("no hot reload for %s asset '%s'", e.Type, e.Path)
	}
}

func (sm *SystemManager) Shutdown() error {
	if err := sm.FontSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.ShaderSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.TextureSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.CameraSystem.Shutdown(); err != nil {
		return err
	}
	return sm.JobSystem.Shutdown()
}
