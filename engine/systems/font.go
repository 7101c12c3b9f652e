package systems

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"

	"github.com/spaghettifunk/idraw/engine/assets"
	"github.com/spaghettifunk/idraw/engine/assets/loaders"
	"github.com/spaghettifunk/idraw/engine/core"
	"github.com/spaghettifunk/idraw/engine/renderer"
	"github.com/spaghettifunk/idraw/engine/renderer/metadata"
)

type FontSystemConfig struct {
	MaxFontCount uint8
	/** @brief Pixels per inch used when sizing TrueType faces. */
	DPI float64
}

// FontSystem owns the fonts text is drawn with. The font baked into the
// device's static resources is always available as the default.
type FontSystem struct {
	Config *FontSystemConfig
	Fonts  map[string]*metadata.Font

	defaultName string
	device      *renderer.Device
	static      *renderer.StaticResources
	assets      *assets.AssetManager
}

func NewFontSystem(config *FontSystemConfig, am *assets.AssetManager, device *renderer.Device) (*FontSystem, error) {
	if config.MaxFontCount == 0 {
		err := fmt.Errorf("func NewFontSystem - config.MaxFontCount must be > 0")
		core.LogError(err.Error())
		return nil, err
	}
	if config.DPI == 0 {
		config.DPI = 72
	}
	static, err := device.Static()
	if err != nil {
		return nil, err
	}
	return &FontSystem{
		Config: config,
		Fonts:  make(map[string]*metadata.Font),
		device: device,
		static: static,
		assets: am,
	}, nil
}

func (fs *FontSystem) Shutdown() error {
	for name, f := range fs.Fonts {
		fs.device.DestroyTexture(f.Atlas)
		delete(fs.Fonts, name)
	}
	fs.defaultName = ""
	return nil
}

func (fs *FontSystem) checkCapacity(name string) error {
	if _, ok := fs.Fonts[name]; ok {
		return fmt.Errorf("font '%s' is already loaded", name)
	}
	if len(fs.Fonts) >= int(fs.Config.MaxFontCount) {
		return fmt.Errorf("font system is full (%d fonts)", fs.Config.MaxFontCount)
	}
	return nil
}

/**
 * @brief Loads an AngelCode .fnt descriptor and uploads its page as the
 * atlas.
 */
func (fs *FontSystem) LoadBitmapFont(name, path string) (*metadata.Font, error) {
	if err := fs.checkCapacity(name); err != nil {
		return nil, err
	}
	res, err := fs.assets.Load(path, nil)
	if err != nil {
		return nil, err
	}
	data, ok := res.Data.(*loaders.BitmapFontResourceData)
	if !ok {
		return nil, fmt.Errorf("%w: '%s' is not a bitmap font", core.ErrFontNotFound, path)
	}

	f := data.Font
	f.Name = name
	f.Atlas, err = fs.device.CreateTexture(&metadata.TextureDesc{
		Name:      "font." + name,
		Width:     data.Page.Width,
		Height:    data.Page.Height,
		Format:    metadata.TextureFormatRGBA8,
		MinFilter: metadata.TextureFilterLinear,
		MagFilter: metadata.TextureFilterLinear,
		WrapS:     metadata.TextureWrapClampToEdge,
		WrapT:     metadata.TextureWrapClampToEdge,
		Data:      data.Page.Pixels,
	})
	if err != nil {
		return nil, err
	}
	fs.Fonts[name] = f
	core.LogDebug("bitmap font '%s' loaded from '%s' (%d glyphs)", name, path, len(f.Glyphs))
	return f, nil
}

/**
 * @brief Rasterizes a TrueType or OpenType file at size points into a
 * new atlas.
 */
func (fs *FontSystem) LoadTrueType(name, path string, size float64) (*metadata.Font, error) {
	if err := fs.checkCapacity(name); err != nil {
		return nil, err
	}
	res, err := fs.assets.Load(path, nil)
	if err != nil {
		return nil, err
	}
	otf, ok := res.Data.(*opentype.Font)
	if !ok {
		return nil, fmt.Errorf("%w: '%s' is not a TrueType font", core.ErrFontNotFound, path)
	}
	face, err := opentype.NewFace(otf, &opentype.FaceOptions{
		Size:    size,
		DPI:     fs.Config.DPI,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	defer face.Close()
	return fs.LoadFace(name, face)
}

/**
 * @brief Bakes an already opened face.
 */
func (fs *FontSystem) LoadFace(name string, face font.Face) (*metadata.Font, error) {
	if err := fs.checkCapacity(name); err != nil {
		return nil, err
	}
	f, atlas := renderer.BakeFont(face, name)
	var err error
	f.Atlas, err = fs.device.CreateTexture(renderer.FontTextureDesc(f, atlas))
	if err != nil {
		return nil, err
	}
	fs.Fonts[name] = f
	core.LogDebug("font '%s' baked (%d glyphs, line height %d)", name, len(f.Glyphs), f.LineHeight)
	return f, nil
}

func (fs *FontSystem) Get(name string) (*metadata.Font, error) {
	if name == renderer.DEFAULT_FONT_NAME {
		return fs.Default(), nil
	}
	f, ok := fs.Fonts[name]
	if !ok {
		return nil, fmt.Errorf("'%s': %w", name, core.ErrFontNotFound)
	}
	return f, nil
}

/** @brief Makes a loaded font the one returned by Default. */
func (fs *FontSystem) SetDefault(name string) error {
	if _, ok := fs.Fonts[name]; !ok {
		return fmt.Errorf("'%s': %w", name, core.ErrFontNotFound)
	}
	fs.defaultName = name
	return nil
}

func (fs *FontSystem) Default() *metadata.Font {
	if f, ok := fs.Fonts[fs.defaultName]; ok {
		return f
	}
	return fs.static.Font
}
