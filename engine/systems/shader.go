package systems

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spaghettifunk/idraw/engine/assets"
	"github.com/spaghettifunk/idraw/engine/core"
	"github.com/spaghettifunk/idraw/engine/renderer"
	"github.com/spaghettifunk/idraw/engine/renderer/metadata"
)

type ShaderSystemConfig struct {
	/** @brief The maximum number of shaders held by the system. */
	MaxShaderCount uint16
}

/** @brief A program built from <base>.vert and <base>.frag. */
type ShaderReference struct {
	Name   string
	Handle metadata.ShaderHandle
	/** @brief Path without the stage extension. */
	Base string
	/** @brief Number of successful reloads. */
	Generation uint32
}

type ShaderSystem struct {
	Config *ShaderSystemConfig
	// Lookup by shader name.
	Shaders map[string]*ShaderReference

	device       *renderer.Device
	assetManager *assets.AssetManager
}

func NewShaderSystem(config *ShaderSystemConfig, am *assets.AssetManager, device *renderer.Device) (*ShaderSystem, error) {
	if config.MaxShaderCount == 0 {
		err := fmt.Errorf("func NewShaderSystem - config.MaxShaderCount must be > 0")
		core.LogError(err.Error())
		return nil, err
	}
	return &ShaderSystem{
		Config:       config,
		Shaders:      make(map[string]*ShaderReference),
		device:       device,
		assetManager: am,
	}, nil
}

func (ss *ShaderSystem) Shutdown() error {
	for name, ref := range ss.Shaders {
		ss.device.Backend().ShaderDestroy(ref.Handle)
		delete(ss.Shaders, name)
	}
	return nil
}

// shaderBase strips the stage extension from a shader file path.
func shaderBase(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}

func (ss *ShaderSystem) readDesc(name, base string) (*metadata.ShaderDesc, error) {
	desc := &metadata.ShaderDesc{Name: name}
	for _, ext := range []string{".vert", ".frag"} {
		res, err := ss.assetManager.Load(base+ext, nil)
		if err != nil {
			return nil, err
		}
		src := res.Data.(*metadata.ShaderResourceData)
		desc.Sources = append(desc.Sources, metadata.ShaderSource{Stage: src.Stage, Source: src.Source})
	}
	return desc, nil
}

/**
 * @brief Builds the program from <base>.vert and <base>.frag and registers
 * it under name. Loading an already registered name returns its handle.
 */
func (ss *ShaderSystem) Load(name, base string) (metadata.ShaderHandle, error) {
	if ref, ok := ss.Shaders[name]; ok {
		return ref.Handle, nil
	}
	if len(ss.Shaders) >= int(ss.Config.MaxShaderCount) {
		return metadata.ShaderHandle{}, fmt.Errorf("shader system is full (%d shaders)", ss.Config.MaxShaderCount)
	}
	base = shaderBase(base)
	desc, err := ss.readDesc(name, base)
	if err != nil {
		return metadata.ShaderHandle{}, err
	}
	h, err := ss.device.CreateShader(desc)
	if err != nil {
		return metadata.ShaderHandle{}, err
	}
	ss.Shaders[name] = &ShaderReference{Name: name, Handle: h, Base: base}
	core.LogDebug("shader '%s' created from '%s'", name, base)
	return h, nil
}

func (ss *ShaderSystem) Get(name string) (metadata.ShaderHandle, bool) {
	ref, ok := ss.Shaders[name]
	if !ok {
		return metadata.ShaderHandle{}, false
	}
	return ref.Handle, true
}

/**
 * @brief Recompiles every shader built from the stage file at path. A
 * failed compile keeps the previous program and is returned.
 */
func (ss *ShaderSystem) Reload(path string) error {
	base := shaderBase(path)
	var errs []error
	for _, ref := range ss.Shaders {
		if ref.Base != base {
			continue
		}
		desc, err := ss.readDesc(ref.Name, base)
		if err == nil {
			err = ss.device.Backend().ShaderReload(ref.Handle, desc)
		}
		if err != nil {
			core.LogError("shader '%s' reload failed, keeping previous program: %s", ref.Name, err)
			errs = append(errs, err)
			continue
		}
		ref.Generation++
		core.LogInfo("shader '%s' reloaded", ref.Name)
	}
	return errors.Join(errs...)
}
