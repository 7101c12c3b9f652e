package systems

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/spaghettifunk/idraw/engine/assets"
	"github.com/spaghettifunk/idraw/engine/core"
	"github.com/spaghettifunk/idraw/engine/renderer"
	"github.com/spaghettifunk/idraw/engine/renderer/metadata"
)

type TextureSystemConfig struct {
	/** @brief The maximum number of textures that can be loaded at once. */
	MaxTextureCount uint32
	/** @brief Flip loaded images so row 0 is the bottom. */
	FlipY bool
	MinFilter metadata.TextureFilter
	MagFilter metadata.TextureFilter
}

/** @brief A registered texture and how many users hold it. */
type TextureReference struct {
	Handle         metadata.TextureHandle
	ReferenceCount uint32
	AutoRelease    bool
	/** @brief Source file, empty for textures created from memory. */
	Path   string
	Width  uint32
	Height uint32
}

type TextureSystem struct {
	Config *TextureSystemConfig
	// Lookup by name. Files are registered under their path.
	RegisteredTextures map[string]*TextureReference
	// sub systems
	device       *renderer.Device
	static       *renderer.StaticResources
	assetManager *assets.AssetManager
}

func NewTextureSystem(config *TextureSystemConfig, am *assets.AssetManager, device *renderer.Device) (*TextureSystem, error) {
	if config.MaxTextureCount == 0 {
		err := fmt.Errorf("func NewTextureSystem - config.MaxTextureCount must be > 0")
		core.LogError(err.Error())
		return nil, err
	}
	static, err := device.Static()
	if err != nil {
		return nil, err
	}
	return &TextureSystem{
		Config:             config,
		RegisteredTextures: make(map[string]*TextureReference),
		device:             device,
		static:             static,
		assetManager:       am,
	}, nil
}

func (ts *TextureSystem) Shutdown() error {
	for name, ref := range ts.RegisteredTextures {
		ts.device.DestroyTexture(ref.Handle)
		delete(ts.RegisteredTextures, name)
	}
	return nil
}

/** @brief The checkerboard returned for textures that failed to load. */
func (ts *TextureSystem) Default() metadata.TextureHandle {
	return ts.static.CheckerTexture
}

func (ts *TextureSystem) desc(name string, img *metadata.ImageResourceData) *metadata.TextureDesc {
	return &metadata.TextureDesc{
		Name:      name,
		Width:     img.Width,
		Height:    img.Height,
		Format:    metadata.TextureFormatRGBA8,
		MinFilter: ts.Config.MinFilter,
		MagFilter: ts.Config.MagFilter,
		WrapS:     metadata.TextureWrapRepeat,
		WrapT:     metadata.TextureWrapRepeat,
		Data:      img.Pixels,
	}
}

func (ts *TextureSystem) decode(path string) (*metadata.ImageResourceData, error) {
	res, err := ts.assetManager.Load(path, &metadata.ImageResourceParams{FlipY: ts.Config.FlipY})
	if err != nil {
		return nil, err
	}
	img, ok := res.Data.(*metadata.ImageResourceData)
	if !ok {
		return nil, fmt.Errorf("%w: '%s' is not an image", core.ErrTextureLoad, path)
	}
	return img, nil
}

/**
 * @brief Acquires the texture stored at path, loading it on first use.
 * A file that cannot be loaded resolves to the default checkerboard and
 * is not registered, so a later Acquire tries again.
 */
func (ts *TextureSystem) Acquire(path string, autoRelease bool) metadata.TextureHandle {
	if ref, ok := ts.RegisteredTextures[path]; ok {
		ref.ReferenceCount++
		return ref.Handle
	}
	img, err := ts.decode(path)
	if err != nil {
		core.LogWarn("failed to load texture '%s', using default: %s", path, err)
		return ts.Default()
	}
	h, err := ts.register(path, path, img, autoRelease)
	if err != nil {
		core.LogWarn("failed to create texture '%s', using default: %s", path, err)
		return ts.Default()
	}
	return h
}

func (ts *TextureSystem) register(name, path string, img *metadata.ImageResourceData, autoRelease bool) (metadata.TextureHandle, error) {
	if uint32(len(ts.RegisteredTextures)) >= ts.Config.MaxTextureCount {
		return metadata.TextureHandle{}, fmt.Errorf("texture system is full (%d textures)", ts.Config.MaxTextureCount)
	}
	h, err := ts.device.CreateTexture(ts.desc(name, img))
	if err != nil {
		return metadata.TextureHandle{}, err
	}
	ts.RegisteredTextures[name] = &TextureReference{
		Handle:         h,
		ReferenceCount: 1,
		AutoRelease:    autoRelease,
		Path:           path,
		Width:          img.Width,
		Height:         img.Height,
	}
	core.LogDebug("texture '%s' registered as %s (%dx%d)", name, h, img.Width, img.Height)
	return h, nil
}

/**
 * @brief Creates a texture from RGBA8 pixels under a generated name.
 */
func (ts *TextureSystem) Create(width, height uint32, pixels []byte) (string, metadata.TextureHandle, error) {
	name := "texture." + uuid.NewString()
	h, err := ts.register(name, "", &metadata.ImageResourceData{Width: width, Height: height, Pixels: pixels}, false)
	return name, h, err
}

/**
 * @brief Decodes the given files on the job system, then uploads them on
 * the calling goroutine. Returns the handles in the order of paths.
 */
func (ts *TextureSystem) Preload(js *JobSystem, paths ...string) []metadata.TextureHandle {
	var mu sync.Mutex
	decoded := make(map[string]*metadata.ImageResourceData, len(paths))
	for _, path := range paths {
		if _, ok := ts.RegisteredTextures[path]; ok {
			continue
		}
		js.Submit(Job{
			Name: "decode " + path,
			Run: func() error {
				img, err := ts.decode(path)
				if err != nil {
					return err
				}
				mu.Lock()
				decoded[path] = img
				mu.Unlock()
				return nil
			},
		})
	}
	js.Wait()

	handles := make([]metadata.TextureHandle, len(paths))
	for i, path := range paths {
		img, ok := decoded[path]
		if !ok {
			handles[i] = ts.Acquire(path, false)
			continue
		}
		delete(decoded, path)
		h, err := ts.register(path, path, img, false)
		if err != nil {
			core.LogWarn("failed to create texture '%s', using default: %s", path, err)
			h = ts.Default()
		}
		handles[i] = h
	}
	return handles
}

/**
 * @brief Drops one reference. Auto-release textures are destroyed when
 * the count reaches zero.
 */
func (ts *TextureSystem) Release(name string) {
	ref, ok := ts.RegisteredTextures[name]
	if !ok {
		core.LogWarn("texture system Release called for unknown texture '%s'", name)
		return
	}
	if ref.ReferenceCount > 0 {
		ref.ReferenceCount--
	}
	if ref.ReferenceCount == 0 && ref.AutoRelease {
		ts.device.DestroyTexture(ref.Handle)
		delete(ts.RegisteredTextures, name)
		core.LogDebug("texture '%s' released", name)
	}
}

func (ts *TextureSystem) Get(name string) (*TextureReference, bool) {
	ref, ok := ts.RegisteredTextures[name]
	return ref, ok
}

var ErrTextureNotRegistered = errors.New("texture not registered")

/**
 * @brief Re-reads the file behind a registered texture and replaces its
 * pixels in place. Handles held by callers stay valid. On failure the old
 * pixels are kept.
 */
func (ts *TextureSystem) Reload(path string) error {
	ref, ok := ts.RegisteredTextures[path]
	if !ok {
		return fmt.Errorf("%s: %w", path, ErrTextureNotRegistered)
	}
	img, err := ts.decode(path)
	if err != nil {
		core.LogWarn("texture '%s' reload failed, keeping previous pixels: %s", path, err)
		return err
	}
	if err := ts.device.Backend().TextureUpdate(ref.Handle, img.Width, img.Height, img.Pixels); err != nil {
		return err
	}
	ref.Width, ref.Height = img.Width, img.Height
	core.LogInfo("texture '%s' reloaded", path)
	return nil
}
