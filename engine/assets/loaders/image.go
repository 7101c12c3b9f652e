package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/spaghettifunk/idraw/engine/core"
	"github.com/spaghettifunk/idraw/engine/renderer/metadata"
)

// ImageLoader decodes png, jpeg, bmp and webp files into RGBA8 pixels.
type ImageLoader struct{}

func (il *ImageLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	flipY := false
	if p, ok := params.(*metadata.ImageResourceParams); ok && p != nil {
		flipY = p.FlipY
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrTextureLoad, err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode '%s': %w", core.ErrTextureLoad, path, err)
	}
	rgba := ToRGBA(img)
	if flipY {
		FlipRows(rgba)
	}
	core.LogDebug("decoded %s image '%s' (%dx%d)", format, path, rgba.Rect.Dx(), rgba.Rect.Dy())

	return &metadata.Resource{
		Name:     path,
		FullPath: path,
		Type:     metadata.ResourceTypeImage,
		DataSize: uint64(len(rgba.Pix)),
		Data: &metadata.ImageResourceData{
			Width:  uint32(rgba.Rect.Dx()),
			Height: uint32(rgba.Rect.Dy()),
			Pixels: rgba.Pix,
		},
	}, nil
}

func (il *ImageLoader) Unload(res *metadata.Resource) error {
	res.Data = nil
	res.DataSize = 0
	return nil
}

// ToRGBA returns img as a tightly packed RGBA image with its origin at 0, 0.
func ToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) && rgba.Stride == 4*b.Dx() {
		return rgba
	}
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// FlipRows mirrors img vertically in place.
func FlipRows(img *image.RGBA) {
	h := img.Rect.Dy()
	row := make([]byte, img.Stride)
	for y := 0; y < h/2; y++ {
		top := img.Pix[y*img.Stride : (y+1)*img.Stride]
		bottom := img.Pix[(h-1-y)*img.Stride : (h-y)*img.Stride]
		copy(row, top)
		copy(top, bottom)
		copy(bottom, row)
	}
}
