package metadata

import "fmt"

const (
	/** @brief The default texture name. */
	DEFAULT_TEXTURE_NAME string = "default"
	/** @brief The plain white texture used for untextured primitives. */
	WHITE_TEXTURE_NAME string = "white"
	/** @brief Size in pixels of each side of the default texture. */
	DEFAULT_TEXTURE_DIMENSION uint32 = 32
)

/** @brief Pixel layouts a texture can be created with. */
type TextureFormat uint32

const (
	TextureFormatRGBA8 TextureFormat = iota
	TextureFormatRGB8
	TextureFormatR8
	/** @brief Single channel alpha. Sampled as (1, 1, 1, a). */
	TextureFormatA8
	TextureFormatRGBA16F
)

/** @brief Bytes per pixel for the format. */
func (f TextureFormat) PixelSize() int {
	switch f {
	case TextureFormatRGBA8:
		return 4
	case TextureFormatRGB8:
		return 3
	case TextureFormatR8, TextureFormatA8:
		return 1
	case TextureFormatRGBA16F:
		return 8
	}
	return 0
}

type TextureFilter uint32

const (
	TextureFilterNearest TextureFilter = iota
	TextureFilterLinear
)

/** @brief Filter between mip levels. None disables mipmapping. */
type TextureMipFilter uint32

const (
	TextureMipFilterNone TextureMipFilter = iota
	TextureMipFilterNearest
	TextureMipFilterLinear
)

type TextureWrap uint32

const (
	TextureWrapRepeat TextureWrap = iota
	TextureWrapMirroredRepeat
	TextureWrapClampToEdge
	TextureWrapClampToBorder
)

/**
 * @brief Everything the backend needs to create a two-dimensional texture.
 */
type TextureDesc struct {
	/** @brief The texture name, used in logs and lookups. */
	Name   string
	Width  uint32
	Height uint32
	Format TextureFormat
	/** @brief Minification and magnification filters. */
	MinFilter TextureFilter
	MagFilter TextureFilter
	MipFilter TextureMipFilter
	WrapS     TextureWrap
	WrapT     TextureWrap
	/** @brief Tightly packed pixel rows. May be nil for an empty texture. */
	Data []byte
}

func (d *TextureDesc) Validate() error {
	if d.Width == 0 || d.Height == 0 {
		return fmt.Errorf("texture '%s' has invalid size %dx%d", d.Name, d.Width, d.Height)
	}
	if d.Format.PixelSize() == 0 {
		return fmt.Errorf("texture '%s' has unknown format %d", d.Name, d.Format)
	}
	want := int(d.Width) * int(d.Height) * d.Format.PixelSize()
	if d.Data != nil && len(d.Data) != want {
		return fmt.Errorf("texture '%s' expects %d bytes of pixels, got %d", d.Name, want, len(d.Data))
	}
	return nil
}
