package opengl

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/spaghettifunk/idraw/engine/core"
	"github.com/spaghettifunk/idraw/engine/renderer/metadata"
)

// glTextureFormat returns the internal format, pixel format and pixel type.
func glTextureFormat(f metadata.TextureFormat) (int32, uint32, uint32) {
	switch f {
	case metadata.TextureFormatRGB8:
		return gl.RGB8, gl.RGB, gl.UNSIGNED_BYTE
	case metadata.TextureFormatR8, metadata.TextureFormatA8:
		return gl.R8, gl.RED, gl.UNSIGNED_BYTE
	case metadata.TextureFormatRGBA16F:
		return gl.RGBA16F, gl.RGBA, gl.HALF_FLOAT
	}
	return gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE
}

func glFilter(f metadata.TextureFilter, mip metadata.TextureMipFilter) int32 {
	switch mip {
	case metadata.TextureMipFilterNearest:
		if f == metadata.TextureFilterLinear {
			return gl.LINEAR_MIPMAP_NEAREST
		}
		return gl.NEAREST_MIPMAP_NEAREST
	case metadata.TextureMipFilterLinear:
		if f == metadata.TextureFilterLinear {
			return gl.LINEAR_MIPMAP_LINEAR
		}
		return gl.NEAREST_MIPMAP_LINEAR
	}
	if f == metadata.TextureFilterLinear {
		return gl.LINEAR
	}
	return gl.NEAREST
}

func glWrap(w metadata.TextureWrap) int32 {
	switch w {
	case metadata.TextureWrapMirroredRepeat:
		return gl.MIRRORED_REPEAT
	case metadata.TextureWrapClampToEdge:
		return gl.CLAMP_TO_EDGE
	case metadata.TextureWrapClampToBorder:
		return gl.CLAMP_TO_BORDER
	}
	return gl.REPEAT
}

func pixelPointer(pixels []byte) unsafe.Pointer {
	if len(pixels) == 0 {
		return nil
	}
	return gl.Ptr(pixels)
}

func (b *Backend) TextureCreate(desc *metadata.TextureDesc) (metadata.TextureHandle, error) {
	if err := desc.Validate(); err != nil {
		return metadata.TextureHandle{}, fmt.Errorf("%w: %s", core.ErrTextureLoad, err)
	}
	t := &texture{desc: *desc}
	t.desc.Data = nil

	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	internal, format, xtype := glTextureFormat(desc.Format)
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, int32(desc.Width), int32(desc.Height), 0, format, xtype, pixelPointer(desc.Data))

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, glFilter(desc.MinFilter, desc.MipFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, glFilter(desc.MagFilter, metadata.TextureMipFilterNone))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, glWrap(desc.WrapS))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, glWrap(desc.WrapT))
	if desc.Format == metadata.TextureFormatA8 {
		swizzle := []int32{gl.ONE, gl.ONE, gl.ONE, gl.RED}
		gl.TexParameteriv(gl.TEXTURE_2D, gl.TEXTURE_SWIZZLE_RGBA, &swizzle[0])
	}
	if desc.MipFilter != metadata.TextureMipFilterNone {
		gl.GenerateMipmap(gl.TEXTURE_2D)
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return metadata.TextureHandle{ID: b.textures.Insert(t)}, nil
}

func (b *Backend) TextureUpdate(h metadata.TextureHandle, width, height uint32, pixels []byte) error {
	t, ok := b.textures.Get(h.ID)
	if !ok {
		return fmt.Errorf("texture %s: %w", h, core.ErrInvalidHandle)
	}
	if want := int(width) * int(height) * t.desc.Format.PixelSize(); len(pixels) != want {
		return fmt.Errorf("texture '%s' update expects %d bytes, got %d", t.desc.Name, want, len(pixels))
	}
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	internal, format, xtype := glTextureFormat(t.desc.Format)
	if width == t.desc.Width && height == t.desc.Height {
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(width), int32(height), format, xtype, pixelPointer(pixels))
	} else {
		gl.TexImage2D(gl.TEXTURE_2D, 0, internal, int32(width), int32(height), 0, format, xtype, pixelPointer(pixels))
		t.desc.Width, t.desc.Height = width, height
	}
	if t.desc.MipFilter != metadata.TextureMipFilterNone {
		gl.GenerateMipmap(gl.TEXTURE_2D)
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return nil
}

func (b *Backend) TextureDestroy(h metadata.TextureHandle) {
	t, ok := b.textures.Get(h.ID)
	if !ok {
		return
	}
	gl.DeleteTextures(1, &t.id)
	_ = b.textures.Remove(h.ID)
}
