package systems

import (
	"fmt"

	"github.com/spaghettifunk/idraw/engine/core"
	"github.com/spaghettifunk/idraw/engine/idraw"
)

const DEFAULT_CAMERA_NAME = "default"

type CameraLookup struct {
	Camera         *idraw.Camera
	ReferenceCount uint16
}

/** @brief The camera system configuration. */
type CameraSystemConfig struct {
	/** @brief The maximum number of cameras that can be managed by the system. */
	MaxCameraCount uint16
}

type CameraSystem struct {
	Config  *CameraSystemConfig
	Cameras map[string]*CameraLookup
	// A default, non-registered camera that always exists as a fallback.
	DefaultCamera *idraw.Camera
}

func NewCameraSystem(config *CameraSystemConfig) (*CameraSystem, error) {
	if config.MaxCameraCount == 0 {
		err := fmt.Errorf("func NewCameraSystem - config.MaxCameraCount must be > 0")
		core.LogError(err.Error())
		return nil, err
	}
	def := idraw.DefaultCamera3D()
	return &CameraSystem{
		Config:        config,
		Cameras:       make(map[string]*CameraLookup, config.MaxCameraCount),
		DefaultCamera: &def,
	}, nil
}

func (cs *CameraSystem) Shutdown() error {
	clear(cs.Cameras)
	return nil
}

/**
 * @brief Acquires a camera by name, creating it from the default 3D
 * camera if it does not exist. The reference count is incremented.
 */
func (cs *CameraSystem) Acquire(name string) (*idraw.Camera, error) {
	if name == DEFAULT_CAMERA_NAME {
		return cs.DefaultCamera, nil
	}
	if l, ok := cs.Cameras[name]; ok {
		l.ReferenceCount++
		return l.Camera, nil
	}
	if len(cs.Cameras) >= int(cs.Config.MaxCameraCount) {
		err := fmt.Errorf("func CameraSystem Acquire failed to acquire new slot for '%s'. Adjust camera system config to allow more", name)
		core.LogError(err.Error())
		return nil, err
	}
	core.LogDebug("creating new camera named '%s'", name)
	cam := idraw.DefaultCamera3D()
	cs.Cameras[name] = &CameraLookup{Camera: &cam, ReferenceCount: 1}
	return &cam, nil
}

/**
 * @brief Releases a camera. When the reference count reaches zero the
 * camera is forgotten.
 */
func (cs *CameraSystem) Release(name string) {
	if name == DEFAULT_CAMERA_NAME {
		core.LogDebug("cannot release default camera. Nothing was done.")
		return
	}
	l, ok := cs.Cameras[name]
	if !ok {
		core.LogWarn("CameraSystem Release failed lookup for '%s'. Nothing was done.", name)
		return
	}
	l.ReferenceCount--
	if l.ReferenceCount < 1 {
		delete(cs.Cameras, name)
	}
}

func (cs *CameraSystem) GetDefault() *idraw.Camera {
	return cs.DefaultCamera
}
